package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/iwvelando/fitness-forecast/internal/config"
	"github.com/iwvelando/fitness-forecast/internal/forecast"
	"github.com/iwvelando/fitness-forecast/internal/optimizer"
	"github.com/iwvelando/fitness-forecast/pkg/adapters"
	"github.com/iwvelando/fitness-forecast/pkg/constants"
	"github.com/iwvelando/fitness-forecast/pkg/datetime"
	"github.com/iwvelando/fitness-forecast/pkg/engine"
	"github.com/iwvelando/fitness-forecast/pkg/fitness"
	"github.com/iwvelando/fitness-forecast/pkg/history"
	"github.com/iwvelando/fitness-forecast/pkg/muscle"
	"github.com/iwvelando/fitness-forecast/pkg/output"
)

// Options configures the HTTP handler.
type Options struct {
	MaxUploadSize  int64
	Version        string
	AllowedOrigins []string
	// Forecast supplies engine constants for /api/predict. Nil keeps the
	// built-in defaults.
	Forecast *config.Configuration
	// History is used by requests that carry no log entries.
	History []fitness.LogEntry
	// Registry receives the server metrics and is served on /metrics. Nil
	// creates a fresh registry.
	Registry *prometheus.Registry
}

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	engine        *engine.Engine
	history       []fitness.LogEntry
	metrics       *Metrics
}

// NewHandler constructs the HTTP handler that serves the prediction API.
func NewHandler(logger *zap.Logger, opts Options) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxUploadSize := opts.MaxUploadSize
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	params := engine.DefaultParams()
	if opts.Forecast != nil {
		var err error
		if params, err = adapters.EngineParams(*opts.Forecast); err != nil {
			return nil, fmt.Errorf("failed to build engine parameters: %w", err)
		}
	}

	reg := opts.Registry
	if reg == nil {
		reg = NewRegistry()
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		engine:        engine.New(logger, params),
		history:       opts.History,
		metrics:       NewMetrics(reg),
	}

	router := mux.NewRouter()
	router.Use(h.metrics.middleware)
	// Router middleware only wraps matched routes.
	router.NotFoundHandler = h.metrics.middleware(http.HandlerFunc(h.handleNotFound))
	router.MethodNotAllowedHandler = h.metrics.middleware(http.HandlerFunc(h.handleMethodNotAllowed))

	// Single-goal prediction against posted or server-side history
	router.HandleFunc("/api/predict", h.handlePredict).Methods(http.MethodPost)

	// Scenario file upload, mirroring the CLI
	router.HandleFunc("/api/forecast", h.handleForecast).Methods(http.MethodPost)

	router.HandleFunc("/api/muscle-groups", h.handleMuscleGroups).Methods(http.MethodGet)
	router.HandleFunc("/api/version", h.handleVersion).Methods(http.MethodGet)

	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(router), nil
}

type predictRequest struct {
	TimeframeDays int                `json:"timeframe_days"`
	TargetMetrics targetMetrics      `json:"target_metrics"`
	Entries       []fitness.LogEntry `json:"entries"`
}

// targetMetrics is the baseline-relative target; an omitted cardio target
// means no change.
type targetMetrics struct {
	Date                    string               `json:"date"`
	WeightChange            float64              `json:"weightChange"`
	CardiovascularEndurance *float64             `json:"cardiovascularEndurance"`
	MuscleStrength          fitness.MuscleScores `json:"muscleStrength"`
}

func (t targetMetrics) spec(timeframeDays int) (fitness.TargetSpec, error) {
	cardio := constants.BaselineScore
	if t.CardiovascularEndurance != nil {
		cardio = *t.CardiovascularEndurance
	}
	spec := fitness.TargetFromBaseline(timeframeDays, t.WeightChange, cardio, t.MuscleStrength)
	if t.Date != "" {
		date, err := datetime.ParseDate(t.Date)
		if err != nil {
			return fitness.TargetSpec{}, fitness.Invalid("target_metrics.date", "%v", err)
		}
		spec.Date = date
	}
	return spec, nil
}

func (h *handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePredict"

	shape := r.URL.Query().Get("shape")
	switch shape {
	case "":
		shape = fitness.ShapeFull
	case fitness.ShapePredicted, fitness.ShapeDifferences, fitness.ShapeFull:
	default:
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("unknown response shape %q", shape), op)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}

	target, err := req.TargetMetrics.spec(req.TimeframeDays)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	entries := req.Entries
	if entries == nil {
		entries = h.history
	}

	result, err := h.engine.Run(entries, target)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), op)
		return
	}
	h.metrics.ObserveRecommendations(result.Recommendations)

	h.logger.Debug("prediction computed",
		zap.String("op", op),
		zap.Int("entries", len(entries)),
		zap.String("shape", shape),
		zap.Int("recommendations", len(result.Recommendations)),
	)
	h.writeJSON(w, http.StatusOK, result.Response(shape))
}

type forecastResponse struct {
	Scenarios []string                  `json:"scenarios"`
	Results   []output.ScenarioResponse `json:"results"`
	CSV       string                    `json:"csv"`
	Warnings  []string                  `json:"warnings,omitempty"`
	Duration  string                    `json:"duration"`
}

func (h *handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleForecast"

	start := time.Now()
	optimize := false
	if raw := r.URL.Query().Get("optimize"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid optimize value %q", raw), op)
			return
		}
		optimize = parsed
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer h.closeUpload(file, op)

	cfg, err := config.LoadConfigurationFromReader(file)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	if err := cfg.Validate(); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid configuration: %v", err), op)
		return
	}

	entries := h.history
	historyFile, _, err := r.FormFile("history")
	switch {
	case err == nil:
		defer h.closeUpload(historyFile, op)
		if entries, err = history.Load(historyFile, adapters.DailyLogConverter(*cfg)); err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to read history: %v", err), op)
			return
		}
		// The uploaded history stands in for the configured file.
		cfg.Common.HistoryFile = "upload"
	case !errors.Is(err, http.ErrMissingFile):
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to read history: %v", err), op)
		return
	}
	warnings := cfg.ValidateConfiguration()

	results, err := forecast.GetForecast(r.Context(), h.logger, *cfg, entries)
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), fmt.Sprintf("failed to compute forecast: %v", err), op)
		return
	}
	for _, result := range results {
		h.metrics.ObserveRecommendations(result.Result.Recommendations)
	}

	if optimize {
		runner, err := optimizer.NewRunner(h.logger, cfg)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to prepare optimizer: %v", err), op)
			return
		}
		optResult, err := runner.Run(r.Context(), entries)
		if err != nil {
			h.respondErrorWithOp(w, statusFor(err), fmt.Sprintf("failed to optimize horizons: %v", err), op)
			return
		}
		optResult.Apply(results)
	}

	elapsed := time.Since(start)
	response := forecastResponse{
		Scenarios: extractScenarioNames(results),
		Results:   output.Responses(results, fitness.ShapeFull),
		CSV:       output.CsvString(results),
		Warnings:  warnings,
		Duration:  elapsed.String(),
	}

	h.logger.Info("forecast computed",
		zap.String("op", op),
		zap.Int("scenarios", len(response.Scenarios)),
		zap.Int("entries", len(entries)),
		zap.Duration("duration", elapsed),
	)
	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleMuscleGroups(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string][]string{
		"muscleGroups": muscle.All(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// statusFor maps engine errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, fitness.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) closeUpload(file multipart.File, op string) {
	if err := file.Close(); err != nil {
		h.logger.Warn("failed to close uploaded file",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (h *handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.respondErrorWithOp(w, http.StatusNotFound, fmt.Sprintf("no route for %s", r.URL.Path), "server.handleNotFound")
}

func (h *handler) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.respondErrorWithOp(w, http.StatusMethodNotAllowed,
		fmt.Sprintf("method %s not allowed on %s", r.Method, r.URL.Path), "server.handleMethodNotAllowed")
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func extractScenarioNames(results []forecast.Forecast) []string {
	names := make([]string, 0, len(results))
	for _, scenario := range results {
		names = append(names, scenario.Name)
	}
	return names
}
