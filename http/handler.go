package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sagarc03/filegate"
	"github.com/sagarc03/filegate/metrics"
)

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled" yaml:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods" yaml:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers" yaml:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers" yaml:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials" yaml:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age" yaml:"max_age"`
}

type HandlerConfig struct {
	// FallbackDetail makes the standalone fallback answer 400/403/405
	// instead of a plain 404 when the reason is known.
	FallbackDetail bool
	// MetricsPath exposes Prometheus metrics on the standalone router when set.
	MetricsPath string
	CORS        CORSConfig
}

// Handler serves files described by a filegate.ServeConfig.
type Handler struct {
	config HandlerConfig
	serve  *filegate.ServeConfig
}

// NewHandler creates a new Handler with the given configuration.
func NewHandler(config *HandlerConfig, serve *filegate.ServeConfig) *Handler {
	return &Handler{
		config: *config,
		serve:  serve,
	}
}

// Router returns a standalone http.Handler: every request the engine does not
// take falls through to an HTML error page.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	if h.config.MetricsPath != "" {
		r.Handle(h.config.MetricsPath, promhttp.Handler())
	}

	r.Handle("/*", h.Middleware(NotFoundHandler(h.config.FallbackDetail)))

	return r
}

// Middleware returns an http.Handler that serves what it can and passes
// everything else to next. The fallthrough reason is available to next
// through filegate.RejectionFromContext.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handled, err := h.Serve(w, r)
		if handled {
			return
		}

		if filegate.IsFallthrough(err) {
			next.ServeHTTP(w, r.WithContext(filegate.WithRejection(r.Context(), err)))
			return
		}

		WriteError(w, http.StatusInternalServerError, "internal_error", err.Error())
	})
}

// Serve runs a request through resolution, access policy, conditional
// evaluation and streaming.
//
// It returns handled == true once a response has been started. When handled is
// false nothing was written and err says why: a fallthrough reason
// (filegate.IsFallthrough), or, in development mode, an internal error for the
// caller to report. In production mode internal errors are answered with a
// generic 500 and returned with handled == true.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) (bool, error) {
	ctx := r.Context()

	target, err := h.serve.Resolve(ctx, r.URL.EscapedPath())
	if err != nil {
		return false, h.pass(r, err)
	}

	if err := h.serve.Authorize(r.Method, target, r.URL.Query()); err != nil {
		if errors.Is(err, filegate.ErrUnauthorized) {
			if h.serve.Debug() {
				slog.Debug("signature rejected", "path", r.URL.Path, "reason", err)
			}
			metrics.RequestsTotal.WithLabelValues(metrics.OutcomeUnauthorized).Inc()
			HandleError(w, err)
			return true, err
		}
		return false, h.pass(r, err)
	}

	if h.serve.NotModified(r.Header, target.Info) {
		h.setValidators(w.Header(), target)
		w.WriteHeader(http.StatusNotModified)
		metrics.RequestsTotal.WithLabelValues(metrics.OutcomeNotModified).Inc()
		return true, nil
	}

	if r.Method == http.MethodHead {
		plan := planResponse(r, target)
		h.writeHeader(w, target, plan)
		metrics.RequestsTotal.WithLabelValues(plan.outcome()).Inc()
		return true, nil
	}

	f, err := h.serve.Open(ctx, target)
	if err != nil {
		return h.internalError(w, r, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close file", "path", target.Name, "err", closeErr)
		}
	}()

	plan := planResponse(r, target)
	if plan.offset > 0 {
		if _, err := f.Seek(plan.offset, io.SeekStart); err != nil {
			return h.internalError(w, r, fmt.Errorf("seek %s: %w: %w", target.Name, filegate.ErrInternal, err))
		}
	}

	h.writeHeader(w, target, plan)
	metrics.RequestsTotal.WithLabelValues(plan.outcome()).Inc()
	metrics.ServedFileSize.Observe(float64(target.Info.Size()))

	written, err := copyChunks(ctx, w, f, plan.length)
	metrics.StreamedBytes.Add(float64(written))
	if err != nil {
		slog.Warn("stream aborted", "path", r.URL.Path, "written", written, "err", err)
		return true, err
	}

	return true, nil
}

func (h *Handler) pass(r *http.Request, err error) error {
	if errors.Is(err, filegate.ErrNotMounted) {
		return err
	}

	metrics.RequestsTotal.WithLabelValues(metrics.OutcomeFallthrough).Inc()
	if h.serve.Debug() {
		slog.Debug("fallthrough", "method", r.Method, "path", r.URL.Path, "reason", err)
	}
	return err
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, err error) (bool, error) {
	slog.Error("serve file", "path", r.URL.Path, "err", err)
	metrics.RequestsTotal.WithLabelValues(metrics.OutcomeError).Inc()

	if h.serve.Mode() == filegate.ModeProduction {
		HandleError(w, err)
		return true, err
	}

	return false, err
}
