package server

import (
	"errors"
	"net"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rgehrsitz/earlypension/internal/breakeven"
	"github.com/rgehrsitz/earlypension/internal/calculation"
	"github.com/rgehrsitz/earlypension/internal/compare"
	"github.com/rgehrsitz/earlypension/internal/domain"
	"github.com/rgehrsitz/earlypension/internal/output"
	"github.com/valyala/fasthttp"
)

// Server exposes the comparison engine over HTTP
type Server struct {
	Settings Settings
	Engine   *compare.CompareEngine
	Solver   *breakeven.Solver
	Metrics  *Metrics
	Logger   calculation.Logger
	Version  string

	httpServer *fasthttp.Server
}

// New wires a server; a nil engine or logger gets the default
func New(settings Settings, engine *compare.CompareEngine, logger calculation.Logger) *Server {
	if engine == nil {
		engine = compare.NewCompareEngine(nil)
	}
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	s := &Server{
		Settings: settings,
		Engine:   engine,
		Solver:   breakeven.NewDefaultSolver(engine),
		Metrics:  NewMetrics(),
		Logger:   logger,
	}
	s.httpServer = &fasthttp.Server{
		Handler:            s.Handler(),
		Name:               "earlypension",
		ReadTimeout:        settings.ReadTimeout,
		WriteTimeout:       settings.WriteTimeout,
		MaxRequestBodySize: settings.MaxRequestBodySize,
	}
	return s
}

// Handler routes requests and records their duration
func (s *Server) Handler() fasthttp.RequestHandler {
	metricsHandler := s.Metrics.Handler()

	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		path := string(ctx.Path())

		switch path {
		case "/compare":
			s.handleCompare(ctx)
		case "/explain":
			s.handleExplain(ctx)
		case "/breakeven":
			s.handleBreakeven(ctx)
		case "/healthz":
			s.handleHealth(ctx)
		case "/metrics":
			if !ctx.IsGet() {
				writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
				break
			}
			metricsHandler(ctx)
		default:
			path = "other"
			writeError(ctx, fasthttp.StatusNotFound, "Not found")
		}

		elapsed := time.Since(start)
		status := ctx.Response.StatusCode()
		s.Metrics.RequestDuration.
			WithLabelValues(string(ctx.Method()), path, strconv.Itoa(status)).
			Observe(elapsed.Seconds())
		s.Logger.Debugf("%s %s %d in %s", ctx.Method(), ctx.Path(), status, elapsed)
	}
}

// ListenAndServe blocks serving on Settings.Addr until Shutdown is called
func (s *Server) ListenAndServe() error {
	s.Logger.Infof("earlypension service listening on %s", s.Settings.Addr)
	return s.httpServer.ListenAndServe(s.Settings.Addr)
}

// Serve handles connections from ln until Shutdown is called
func (s *Server) Serve(ln net.Listener) error {
	s.Logger.Infof("earlypension service listening on %s", ln.Addr())
	return s.httpServer.Serve(ln)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown() error {
	return s.httpServer.Shutdown()
}

func (s *Server) handleCompare(ctx *fasthttp.RequestCtx) {
	start := time.Now()

	result, ok := s.runRequest(ctx)
	if !ok {
		return
	}

	found := "false"
	if result.HasCrossover() {
		found = "true"
	}
	s.Metrics.CrossoverTotal.WithLabelValues(found).Inc()

	writeJSON(ctx, fasthttp.StatusOK, CompareResponse{
		CalculationMetadata: newMetadata(start),
		Summary:             s.Engine.MetricsCalculator.CalculateMetrics(result),
		Result:              result,
	})
}

func (s *Server) handleExplain(ctx *fasthttp.RequestCtx) {
	start := time.Now()

	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	// check the query before doing any work
	if !ctx.QueryArgs().Has("age") {
		s.Metrics.ComparisonsTotal.WithLabelValues(outcomeInvalidInput).Inc()
		writeError(ctx, fasthttp.StatusBadRequest, "Query parameter age is required")
		return
	}
	age, err := ctx.QueryArgs().GetUint("age")
	if err != nil {
		s.Metrics.ComparisonsTotal.WithLabelValues(outcomeInvalidInput).Inc()
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid age: "+string(ctx.QueryArgs().Peek("age")))
		return
	}

	result, ok := s.runRequest(ctx)
	if !ok {
		return
	}

	breakdown, err := output.Explain(result, age)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, ExplainResponse{
		CalculationMetadata: newMetadata(start),
		Breakdown:           breakdown,
		Narration:           breakdown.Render(),
	})
}

func (s *Server) handleBreakeven(ctx *fasthttp.RequestCtx) {
	start := time.Now()

	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	target := string(ctx.QueryArgs().Peek("target"))
	if target == "" {
		target = "all"
	}
	var parsed breakeven.Target
	if target != "all" {
		var err error
		if parsed, err = breakeven.ParseTarget(target); err != nil {
			s.Metrics.ComparisonsTotal.WithLabelValues(outcomeInvalidInput).Inc()
			writeError(ctx, fasthttp.StatusBadRequest, "Invalid target: "+target)
			return
		}
	}

	var req CompareRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.Metrics.ComparisonsTotal.WithLabelValues(outcomeInvalidInput).Inc()
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	scenario := req.Scenario()

	var multi *breakeven.MultiResult
	var err error
	if target == "all" {
		multi, err = s.Solver.SolveAll(ctx, scenario)
	} else {
		var result *breakeven.Result
		result, err = s.Solver.Solve(ctx, breakeven.Request{Scenario: scenario, Target: parsed})
		if err == nil {
			multi = &breakeven.MultiResult{ScenarioName: scenario.Name, Results: []breakeven.Result{*result}}
		}
	}

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOutOfRange):
			s.Metrics.ComparisonsTotal.WithLabelValues(outcomeInvalidInput).Inc()
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		case errors.Is(err, breakeven.ErrNoBreakEven):
			s.Metrics.ComparisonsTotal.WithLabelValues(outcomeSuccess).Inc()
			writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
		default:
			s.Metrics.ComparisonsTotal.WithLabelValues(outcomeError).Inc()
			s.Logger.Errorf("break-even search failed: %v", err)
			writeError(ctx, fasthttp.StatusInternalServerError, "Break-even search failed")
		}
		return
	}

	s.Metrics.ComparisonsTotal.WithLabelValues(outcomeSuccess).Inc()
	writeJSON(ctx, fasthttp.StatusOK, BreakevenResponse{
		CalculationMetadata: newMetadata(start),
		Breakeven:           multi,
	})
}

// runRequest decodes the body and runs one comparison, writing the error response itself on failure
func (s *Server) runRequest(ctx *fasthttp.RequestCtx) (*domain.ComparisonResult, bool) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return nil, false
	}

	var req CompareRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.Metrics.ComparisonsTotal.WithLabelValues(outcomeInvalidInput).Inc()
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}

	scenario := req.Scenario()
	result, err := s.Engine.Run(scenario.Plan, scenario.Assumptions)
	if err != nil {
		if errors.Is(err, domain.ErrOutOfRange) {
			s.Metrics.ComparisonsTotal.WithLabelValues(outcomeInvalidInput).Inc()
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return nil, false
		}
		s.Metrics.ComparisonsTotal.WithLabelValues(outcomeError).Inc()
		s.Logger.Errorf("comparison failed: %v", err)
		writeError(ctx, fasthttp.StatusInternalServerError, "Comparison failed")
		return nil, false
	}

	s.Metrics.ComparisonsTotal.WithLabelValues(outcomeSuccess).Inc()
	return result, true
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, HealthResponse{Status: "ok", Version: s.Version})
}

func newMetadata(start time.Time) CalculationMetadata {
	elapsed := time.Since(start)
	now := time.Now().UTC()
	return CalculationMetadata{
		CalculationID:          uuid.New().String(),
		CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339Nano),
		CalculationCompletedAt: now.Format(time.RFC3339Nano),
		CalculationDurationMs:  elapsed.Milliseconds(),
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	data, _ := json.Marshal(ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}
