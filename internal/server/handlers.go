package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/muliwe/go-fizzbuzz-classifier/internal/classifier"
	"github.com/muliwe/go-fizzbuzz-classifier/internal/fizzbuzz"
	"github.com/muliwe/go-fizzbuzz-classifier/internal/logger"
	"github.com/muliwe/go-fizzbuzz-classifier/internal/metrics"
)

// Version is reported by every JSON response
const Version = "0.5.0"

// Response represents a single classification
type Response struct {
	Input     int             `json:"input"`
	Kind      fizzbuzz.Kind   `json:"kind"`
	Value     fizzbuzz.Result `json:"value"`
	Reason    string          `json:"reason"`
	RequestID string          `json:"request_id"`
	Timestamp time.Time       `json:"timestamp"`
	Version   string          `json:"version"`
}

// RangeResponse represents a range classification
type RangeResponse struct {
	From      int                `json:"from"`
	To        int                `json:"to"`
	Results   []fizzbuzz.Result  `json:"results"`
	Summary   classifier.Summary `json:"summary"`
	RequestID string             `json:"request_id"`
	Timestamp time.Time          `json:"timestamp"`
	Version   string             `json:"version"`
}

// UsageResponse is returned by / when no input is given
type UsageResponse struct {
	Message string   `json:"message"`
	Usage   []string `json:"usage"`
	Version string   `json:"version"`
}

// ErrorResponse represents a rejected request
type ErrorResponse struct {
	Error   string `json:"error"`
	Version string `json:"version"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	classifier *classifier.Classifier
	logger     *logger.Logger
	metrics    *metrics.Metrics
	console    *logrus.Logger
	quiet      bool // suppress console logging (useful for tests)
}

// NewHandler creates a new handler with dependencies.
// The result logger, metrics and console logger are optional.
func NewHandler(cl *classifier.Classifier, l *logger.Logger, m *metrics.Metrics, console *logrus.Logger) *Handler {
	if console == nil {
		console = logger.Discard()
	}
	return &Handler{
		classifier: cl,
		logger:     l,
		metrics:    m,
		console:    console,
		quiet:      false,
	}
}

// SetQuiet enables or disables console logging
func (h *Handler) SetQuiet(quiet bool) {
	h.quiet = quiet
}

// Routes builds the request router
func (h *Handler) Routes(enableDebug, enableMetrics bool) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /", h.instrument("/", h.HandleClassify))
	mux.Handle("GET /classify/{n}", h.instrument("/classify", h.HandleClassifyPath))
	mux.Handle("GET /range", h.instrument("/range", h.HandleRange))
	mux.Handle("GET /health", h.instrument("/health", h.HandleHealth))
	if enableDebug {
		mux.Handle("GET /debug", h.instrument("/debug", h.HandleDebug))
	}
	if enableMetrics && h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics.Handler())
	}
	return mux
}

// HandleClassify handles the root endpoint: /?n=15
func (h *Handler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	// Only handle exact root path
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if !r.URL.Query().Has("n") {
		writeJSON(w, http.StatusOK, UsageResponse{
			Message: "FizzBuzz classifier",
			Usage: []string{
				"GET /?n=15",
				"GET /classify/{n}",
				"GET /range?from=1&to=15",
			},
			Version: Version,
		})
		return
	}

	h.classify(w, r, r.URL.Query().Get("n"))
}

// HandleClassifyPath handles /classify/{n}
func (h *Handler) HandleClassifyPath(w http.ResponseWriter, r *http.Request) {
	h.classify(w, r, r.PathValue("n"))
}

func (h *Handler) classify(w http.ResponseWriter, r *http.Request, raw string) {
	startTime := time.Now()

	n, err := fizzbuzz.ParseInput(raw)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result := h.classifier.Classify(n)
	responseTime := time.Since(startTime).Milliseconds()

	if h.metrics != nil {
		h.metrics.ObserveClassification(result.Kind)
	}
	if h.logger != nil {
		if err := h.logger.LogResult(result, r.RemoteAddr, responseTime); err != nil {
			h.console.WithError(err).Error("Error logging result")
		}
	}

	if !h.quiet {
		h.console.WithFields(logrus.Fields{
			"remote": r.RemoteAddr,
			"input":  n,
			"kind":   result.Kind.String(),
			"ms":     responseTime,
		}).Info("classified")
	}

	writeJSON(w, http.StatusOK, Response{
		Input:     result.Input,
		Kind:      result.Kind,
		Value:     result.Value,
		Reason:    result.Reason,
		RequestID: result.RequestID,
		Timestamp: result.Timestamp,
		Version:   Version,
	})
}

// HandleRange handles /range?from=1&to=15
func (h *Handler) HandleRange(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	q := r.URL.Query()
	from, to, err := fizzbuzz.ParseRange(q.Get("from"), q.Get("to"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	batch, err := h.classifier.ClassifyRange(from, to)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	responseTime := time.Since(startTime).Milliseconds()

	if h.metrics != nil {
		for _, res := range batch.Results {
			h.metrics.ObserveClassification(res.Kind)
		}
	}
	if h.logger != nil {
		if err := h.logger.LogBatch(batch, r.RemoteAddr, responseTime); err != nil {
			h.console.WithError(err).Error("Error logging batch")
		}
	}

	if !h.quiet {
		h.console.WithFields(logrus.Fields{
			"remote": r.RemoteAddr,
			"from":   from,
			"to":     to,
			"ms":     responseTime,
		}).Info("classified range")
	}

	writeJSON(w, http.StatusOK, RangeResponse{
		From:      batch.From,
		To:        batch.To,
		Results:   batch.Results,
		Summary:   batch.Summary,
		RequestID: batch.RequestID,
		Timestamp: batch.Timestamp,
		Version:   Version,
	})
}

// HandleHealth handles the health check endpoint
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleDebug returns the full classification record, indented
func (h *Handler) HandleDebug(w http.ResponseWriter, r *http.Request) {
	n, err := fizzbuzz.ParseInput(r.URL.Query().Get("n"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	result := h.classifier.Classify(n)

	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		h.console.WithError(err).Error("Error encoding debug response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, fizzbuzz.ErrInvalidInput),
		errors.Is(err, fizzbuzz.ErrInvalidRange),
		errors.Is(err, fizzbuzz.ErrRangeTooLarge):
		status = http.StatusBadRequest
	}

	if !h.quiet {
		h.console.WithFields(logrus.Fields{
			"remote": r.RemoteAddr,
			"path":   r.URL.Path,
		}).WithError(err).Warn("rejected request")
	}

	writeJSON(w, status, ErrorResponse{
		Error:   err.Error(),
		Version: Version,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status is already sent; an encode failure can only be a broken connection
	_ = json.NewEncoder(w).Encode(v)
}
