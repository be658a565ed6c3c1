// Package api serves the evaluator, range parser and equity simulator as a
// small JSON HTTP API.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lox/holdem-trainer/poker"
	"github.com/lox/holdem-trainer/sdk/analysis"
)

// MaxIterations caps a single equity request.
const MaxIterations = 1_000_000

// maxBodyBytes bounds request bodies; every request is a handful of strings.
const maxBodyBytes = 1 << 16

// Server holds the dependencies shared by the handlers.
type Server struct {
	logger     *log.Logger
	simulator  *analysis.Simulator
	iterations int
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithSimulator sets the simulator and the iteration count used when a
// request does not name one.
func WithSimulator(sim *analysis.Simulator, iterations int) Option {
	return func(s *Server) {
		s.simulator = sim
		s.iterations = iterations
	}
}

// NewServer creates a Server with a discard logger and a default simulator.
func NewServer(opts ...Option) *Server {
	s := &Server{
		logger:     log.New(io.Discard),
		iterations: analysis.DefaultIterations,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithPrefix("api")
	if s.simulator == nil {
		s.simulator = analysis.NewSimulator(analysis.WithLogger(s.logger))
	}
	return s
}

// Router returns the HTTP handler for every route.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/evaluate", s.handleEvaluate)
		r.Post("/equity", s.handleEquity)
		r.Get("/range", s.handleRange)
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// EvaluateRequest is the body of POST /v1/evaluate.
type EvaluateRequest struct {
	Cards string `json:"cards"`
}

// EvaluateResponse describes the best five card hand.
type EvaluateResponse struct {
	Cards       string `json:"cards"`
	Category    string `json:"category"`
	Strength    uint32 `json:"strength"`
	Description string `json:"description"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	cards, err := poker.ParseHand(req.Cards)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(cards) < 5 || len(cards) > 7 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: need 5 to 7 cards, got %d", poker.ErrInvalidInput, len(cards)))
		return
	}

	v := poker.Evaluate(cards...)
	writeJSON(w, http.StatusOK, EvaluateResponse{
		Cards:       poker.FormatCards(cards, " "),
		Category:    v.Category.String(),
		Strength:    v.Strength,
		Description: v.String(),
	})
}

// EquityRequest is the body of POST /v1/equity. Opponent is either two
// cards or range shorthand.
type EquityRequest struct {
	Hero       string `json:"hero"`
	Opponent   string `json:"opponent"`
	Board      string `json:"board"`
	Iterations int    `json:"iterations"`
}

// EquityResponse reports a simulation.
type EquityResponse struct {
	Equity     float64        `json:"equity"`
	Lower      float64        `json:"ci_lower"`
	Upper      float64        `json:"ci_upper"`
	Wins       int            `json:"wins"`
	Ties       int            `json:"ties"`
	Losses     int            `json:"losses"`
	Iterations int            `json:"iterations"`
	DurationMS int64          `json:"duration_ms"`
	Categories map[string]int `json:"hero_categories"`
	Texture    string         `json:"board_texture,omitempty"`
	Draws      []string       `json:"draws,omitempty"`
	Outs       int            `json:"outs,omitempty"`
}

func (s *Server) handleEquity(w http.ResponseWriter, r *http.Request) {
	var req EquityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Iterations == 0 {
		req.Iterations = s.iterations
	}
	if req.Iterations > MaxIterations {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: iterations must be at most %d", poker.ErrInvalidInput, MaxIterations))
		return
	}

	hero, err := analysis.ParseCombo(req.Hero)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", analysis.ErrInvalidHero, err))
		return
	}
	board, err := poker.ParseHand(req.Board)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	opponents, err := analysis.ParseOpponents(req.Opponent, poker.NewDeck().Remove(hero.Hand(), poker.NewHand(board...)))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.simulator.Simulate(r.Context(), hero, opponents, board, req.Iterations)
	switch {
	case errors.Is(err, analysis.ErrInvalidHero),
		errors.Is(err, analysis.ErrEmptyRange),
		errors.Is(err, poker.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		s.logger.Error("simulation failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	lo, hi := res.ConfidenceInterval()
	categories := make(map[string]int, len(res.HeroCategories))
	for c, n := range res.HeroCategories {
		categories[c.String()] = n
	}
	resp := EquityResponse{
		Equity:     res.Equity,
		Lower:      lo,
		Upper:      hi,
		Wins:       res.Wins,
		Ties:       res.Ties,
		Losses:     res.Losses,
		Iterations: res.Iterations,
		DurationMS: res.Duration.Milliseconds(),
		Categories: categories,
	}
	if len(board) >= 3 {
		boardHand := poker.NewHand(board...)
		resp.Texture = analysis.AnalyzeTexture(boardHand).String()
		draws := analysis.DetectDraws(hero.Hand(), boardHand)
		for _, d := range draws.Draws {
			resp.Draws = append(resp.Draws, d.String())
		}
		resp.Outs = draws.Outs
	}
	writeJSON(w, http.StatusOK, resp)
}

// RangeResponse lists the classes in a parsed range.
type RangeResponse struct {
	Range     string   `json:"range"`
	Notations []string `json:"notations"`
	Combos    int      `json:"combos"`
}

func (s *Server) handleRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	rng, err := analysis.ParseRange(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(rng) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: empty range", poker.ErrInvalidInput))
		return
	}

	notations := make([]string, len(rng))
	for i, n := range rng {
		notations[i] = n.String()
	}
	writeJSON(w, http.StatusOK, RangeResponse{
		Range:     rng.String(),
		Notations: notations,
		Combos:    rng.Size(),
	})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
