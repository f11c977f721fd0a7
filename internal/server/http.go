package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/kevinkasson/boardsim/internal/config"
	"github.com/kevinkasson/boardsim/internal/report"
	"github.com/kevinkasson/boardsim/internal/sim"
	"github.com/kevinkasson/boardsim/internal/store"
)

type simulateResp struct {
	ID          string       `json:"id,omitempty"`
	Players     int          `json:"players,omitempty"`
	Rounds      int          `json:"rounds,omitempty"`
	Seed        *uint64      `json:"seed,omitempty"`
	Trials      int          `json:"trials,omitempty"`
	Rolls       int64        `json:"rolls"`
	Total       int64        `json:"total"`
	JailRetries int64        `json:"jail_retries"`
	Spaces      []SpaceShare `json:"spaces,omitempty"`
	CreatedAt   *time.Time   `json:"created_at,omitempty"`
	Err         string       `json:"err,omitempty"`
}

type runsResp struct {
	Runs []simulateResp `json:"runs"`
	Err  string         `json:"err,omitempty"`
}

func toResp(id string, trials int, res sim.Result, share []sim.Stats) simulateResp {
	return simulateResp{
		ID:          id,
		Players:     res.Players,
		Rounds:      res.Rounds,
		Seed:        res.Seed,
		Trials:      trials,
		Rolls:       res.Rolls,
		Total:       res.Total(),
		JailRetries: res.JailRetries(),
		Spaces:      Shares(res, share),
	}
}

func parseInt(r *http.Request, key string) (*int, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, ""
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, "invalid " + key
	}
	return &v, ""
}

func parseUint(r *http.Request, key string) (*uint64, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, ""
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, "invalid " + key
	}
	return &v, ""
}

// parseOverrides reads players, rounds, seed and replications from the query.
func parseOverrides(r *http.Request) (config.Overrides, string) {
	var o config.Overrides
	var msg string
	if o.Players, msg = parseInt(r, "players"); msg != "" {
		return o, msg
	}
	if o.Rounds, msg = parseInt(r, "rounds"); msg != "" {
		return o, msg
	}
	if o.Seed, msg = parseUint(r, "seed"); msg != "" {
		return o, msg
	}
	if o.Replications, msg = parseInt(r, "replications"); msg != "" {
		return o, msg
	}
	// default rounds follows the requested player count, not the profile's
	if o.Players != nil && o.Rounds == nil && *o.Players > 0 {
		rounds := config.DefaultTurns / *o.Players
		o.Rounds = &rounds
	}
	return o, ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// GET /simulate?players=&rounds=&seed=&replications=
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	o, msg := parseOverrides(r)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, simulateResp{Err: msg})
		return
	}
	out, err := s.Simulate(r.Context(), o)
	if err != nil {
		writeJSON(w, statusFor(err), simulateResp{Err: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, toResp(out.ID, out.Trials, out.Result, out.Share))
}

type chartWriter func(io.Writer, [sim.NumPositions]int64) error

// GET /chart.png and /pie.png, with the /simulate query parameters
func (s *Server) handleChart(write chartWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, msg := parseOverrides(r)
		if msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		out, err := s.Simulate(r.Context(), o)
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}
		w.Header().Set("Content-Type", "image/png")
		if err := write(w, out.Result.Landings); err != nil {
			s.logger.Error("write chart", "path", r.URL.Path, "err", err)
		}
	}
}

// GET /runs?limit=
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeJSON(w, http.StatusNotFound, runsResp{Err: "no store configured"})
		return
	}
	limit, msg := parseInt(r, "limit")
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, runsResp{Err: msg})
		return
	}
	n := 0
	if limit != nil {
		n = *limit
	}
	runs, err := s.runs.List(r.Context(), n)
	if err != nil {
		writeJSON(w, statusFor(err), runsResp{Err: err.Error()})
		return
	}
	resp := runsResp{Runs: make([]simulateResp, 0, len(runs))}
	for _, run := range runs {
		item := toResp(run.ID, run.Trials, run.Result, nil)
		item.Spaces = nil
		at := run.CreatedAt
		item.CreatedAt = &at
		resp.Runs = append(resp.Runs, item)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /runs/{id}
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeJSON(w, http.StatusNotFound, simulateResp{Err: "no store configured"})
		return
	}
	run, err := s.runs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeJSON(w, statusFor(err), simulateResp{Err: err.Error()})
		return
	}
	resp := toResp(run.ID, run.Trials, run.Result, run.Share)
	at := run.CreatedAt
	resp.CreatedAt = &at
	writeJSON(w, http.StatusOK, resp)
}

// Handler returns the HTTP routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /simulate", s.handleSimulate)
	mux.HandleFunc("GET /chart.png", s.handleChart(report.WriteBarChart))
	mux.HandleFunc("GET /pie.png", s.handleChart(report.WritePieChart))
	mux.HandleFunc("GET /runs", s.handleListRuns)
	mux.HandleFunc("GET /runs/{id}", s.handleGetRun)
	return s.logRequests(mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("http",
			"method", r.Method, "path", r.URL.Path,
			"status", rec.status, "elapsed", time.Since(start),
		)
	})
}
