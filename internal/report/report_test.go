package report

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinkasson/boardsim/internal/sim"
)

func TestPercentagesZeroTotal(t *testing.T) {
	var empty [sim.NumPositions]int64
	for _, p := range Percentages(empty) {
		assert.Equal(t, 0.0, p)
	}
}

func TestPercentages(t *testing.T) {
	var l [sim.NumPositions]int64
	l[0] = 1
	l[sim.Jail] = 3
	pct := Percentages(l)
	assert.InDelta(t, 25.0, pct[0], 1e-9)
	assert.InDelta(t, 75.0, pct[sim.Jail], 1e-9)
}

func TestWriteTable(t *testing.T) {
	res := sim.Result{Rolls: 5000}
	res.Landings[sim.Boardwalk] = 1200
	res.Landings[sim.Jail] = 2800

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, res, nil))
	out := buf.String()

	assert.Equal(t, sim.NumPositions+2, strings.Count(out, "\n"))
	assert.Contains(t, out, "Boardwalk")
	assert.Contains(t, out, "2,800")
	assert.Contains(t, out, "70.00%")
	assert.Contains(t, out, "[1,000 rolls while in jail]")
	assert.NotContains(t, out, "stddev")
}

func TestWriteTableWithReplicationStats(t *testing.T) {
	res := sim.Result{Rolls: 10}
	res.Landings[0] = 10
	share := make([]sim.Stats, sim.NumPositions)
	share[0] = sim.Stats{Mean: 1, StdDev: 0.0125, P50: 0.5, P90: 0.75}

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, res, share))
	out := buf.String()

	assert.Contains(t, out, "stddev")
	assert.Contains(t, out, "1.25%")
	assert.Contains(t, out, "75.00%")
	assert.Equal(t, sim.NumPositions+2, strings.Count(out, "\n"))
}

func TestWriteBarChart(t *testing.T) {
	res, err := sim.Run(sim.Params{Players: 2, Rounds: 200}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteBarChart(&buf, res.Landings))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, ChartWidth, img.Bounds().Dx())
	assert.Equal(t, ChartHeight, img.Bounds().Dy())
}

func TestBarChartTallestBarReachesTop(t *testing.T) {
	var l [sim.NumPositions]int64
	l[sim.Jail] = 10
	l[0] = 5
	img := BarChart(l)

	colWidth := ChartWidth / sim.NumPositions
	jailX := int(sim.Jail)*colWidth + 1
	assert.Equal(t, spaceColors[sim.Jail], img.RGBAAt(jailX, 0))
	assert.Equal(t, white, img.RGBAAt(1, 0), "half-height bar must not reach the top")
	assert.Equal(t, spaceColors[0], img.RGBAAt(1, ChartHeight-2))
}

func TestBarChartEmpty(t *testing.T) {
	var l [sim.NumPositions]int64
	img := BarChart(l)
	assert.Equal(t, white, img.RGBAAt(ChartWidth/2, ChartHeight/2))
}

func TestPieChartSlices(t *testing.T) {
	var l [sim.NumPositions]int64
	l[0] = 1
	l[sim.Jail] = 1
	img := PieChart(l)

	mid := PieSize / 2
	assert.Equal(t, spaceColors[0], img.RGBAAt(mid+100, mid), "first half turn is on the right")
	assert.Equal(t, spaceColors[sim.Jail], img.RGBAAt(mid-100, mid))
	assert.Equal(t, white, img.RGBAAt(1, 1), "corners stay blank")
}

func TestWritePieChart(t *testing.T) {
	var l [sim.NumPositions]int64
	l[sim.Boardwalk] = 3
	var buf bytes.Buffer
	require.NoError(t, WritePieChart(&buf, l))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, PieSize, img.Bounds().Dx())
}

func TestPieChartEmpty(t *testing.T) {
	var l [sim.NumPositions]int64
	assert.Equal(t, white, PieChart(l).RGBAAt(PieSize/2, PieSize/2))
}
