package report

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sort"

	"github.com/kevinkasson/boardsim/internal/sim"
)

// Chart dimensions in pixels.
const (
	ChartWidth   = 720
	ChartHeight  = 600
	chartPadding = 4

	PieSize   = 600
	pieMargin = 20
)

// spaceColors follows the board's colour groups; card, tax and corner spaces are grey.
var spaceColors = [sim.NumPositions]color.RGBA{
	grey, purple, grey, purple, grey, black, lightBlue, grey, lightBlue, lightBlue,
	grey, pink, grey, pink, pink, black, orange, grey, orange, orange,
	grey, red, grey, red, red, black, yellow, yellow, grey, yellow,
	grey, green, darkGreen, green, green, black, grey, blue, grey, blue,
	jailGrey,
}

var (
	grey      = color.RGBA{150, 150, 150, 255}
	purple    = color.RGBA{100, 17, 105, 255}
	black     = color.RGBA{0, 0, 0, 255}
	lightBlue = color.RGBA{195, 211, 250, 255}
	pink      = color.RGBA{207, 54, 168, 255}
	orange    = color.RGBA{235, 155, 28, 255}
	red       = color.RGBA{255, 0, 0, 255}
	yellow    = color.RGBA{255, 255, 40, 255}
	green     = color.RGBA{40, 150, 30, 255}
	darkGreen = color.RGBA{60, 60, 60, 255}
	blue      = color.RGBA{73, 28, 235, 255}
	jailGrey  = color.RGBA{200, 200, 200, 255}

	white    = color.RGBA{255, 255, 255, 255}
	edgeLite = color.RGBA{238, 238, 238, 255}
	edgeDark = color.RGBA{127, 127, 127, 255}
)

// BarChart draws one bar per position, scaled to the most landed-on position.
func BarChart(landings [sim.NumPositions]int64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ChartWidth, ChartHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)

	var top int64
	for _, n := range landings {
		if n > top {
			top = n
		}
	}
	if top == 0 {
		return img
	}

	colWidth := ChartWidth / sim.NumPositions
	for i, n := range landings {
		h := int(float64(ChartHeight) * float64(n) / float64(top))
		x1 := i * colWidth
		x2 := (i+1)*colWidth - chartPadding
		y1 := ChartHeight - h
		draw.Draw(img, image.Rect(x1, y1, x2, ChartHeight), image.NewUniform(spaceColors[i]), image.Point{}, draw.Src)
		if h == 0 {
			continue
		}
		for y := y1; y < ChartHeight; y++ {
			img.SetRGBA(x1, y, edgeLite)
			img.SetRGBA(x2-1, y, edgeDark)
		}
		for x := x1; x < x2; x++ {
			img.SetRGBA(x, ChartHeight-1, edgeLite)
		}
	}
	return img
}

// WriteBarChart encodes the bar chart as PNG.
func WriteBarChart(w io.Writer, landings [sim.NumPositions]int64) error {
	return png.Encode(w, BarChart(landings))
}

// PieChart draws one slice per position, clockwise from twelve o'clock,
// starting with Go and ending with the jail sentinel.
func PieChart(landings [sim.NumPositions]int64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, PieSize, PieSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)

	var total int64
	for _, n := range landings {
		total += n
	}
	if total == 0 {
		return img
	}

	// upper edge of every slice as a fraction of a full turn
	var edges [sim.NumPositions]float64
	var acc int64
	for i, n := range landings {
		acc += n
		edges[i] = float64(acc) / float64(total)
	}

	c := float64(PieSize) / 2
	r := c - pieMargin
	for y := 0; y < PieSize; y++ {
		for x := 0; x < PieSize; x++ {
			dx := float64(x) + 0.5 - c
			dy := float64(y) + 0.5 - c
			if dx*dx+dy*dy > r*r {
				continue
			}
			turn := math.Atan2(dx, -dy) / (2 * math.Pi)
			if turn < 0 {
				turn++
			}
			i := sort.SearchFloat64s(edges[:], turn)
			if i >= sim.NumPositions {
				i = sim.NumPositions - 1
			}
			img.SetRGBA(x, y, spaceColors[i])
		}
	}
	return img
}

// WritePieChart encodes the pie chart as PNG.
func WritePieChart(w io.Writer, landings [sim.NumPositions]int64) error {
	return png.Encode(w, PieChart(landings))
}
