// Package relay implements the same-origin dev proxy. A browser client in
// proxy mode sends every backend call here with the target endpoint as a
// query parameter; the relay forwards it to the real backend and copies the
// response back unchanged.
package relay

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/mealmart-storefront/api/middleware"
	"github.com/angelmondragon/mealmart-storefront/api/responses"
	"github.com/angelmondragon/mealmart-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/mealmart-storefront/pkg/errors"
	"github.com/angelmondragon/mealmart-storefront/pkg/logger"
	"github.com/angelmondragon/mealmart-storefront/pkg/metrics"
)

const endpointParam = "endpoint"

// maxRelayBody caps forwarded request bodies.
const maxRelayBody = 1 << 20

// Handler forwards relayed calls to the backend base URL.
type Handler struct {
	baseURL string
	client  *http.Client
	logg    *logger.Logger
	metrics *metrics.RelayMetrics
}

// NewHandler builds the relay handler. The metrics argument may be nil.
func NewHandler(cfg config.APIConfig, relayCfg config.RelayConfig, logg *logger.Logger, m *metrics.RelayMetrics) (*Handler, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "backend base URL is required")
	}
	timeout := relayCfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Handler{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logg:    logg,
		metrics: m,
	}, nil
}

// Router wires the relay endpoints with the shared middleware stack.
func Router(h *Handler, relayCfg config.RelayConfig, logg *logger.Logger, reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(relayCfg.AllowedOrigins),
	)

	r.Get("/healthz", h.Health)
	if reg != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}
	r.HandleFunc("/relay", h.Relay)
	return r
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	responses.WriteSuccess(w, "ok", map[string]string{"backend": h.baseURL})
}

// Relay forwards one call to the backend. The endpoint query parameter is
// required; every other parameter, the body, and the Authorization header
// pass through untouched.
func (h *Handler) Relay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	endpoint := r.URL.Query().Get(endpointParam)
	if endpoint == "" {
		responses.WriteError(ctx, h.logg, w,
			pkgerrors.New(pkgerrors.CodeValidation, "endpoint query parameter is required"))
		return
	}
	if h.logg != nil {
		ctx = h.logg.WithEndpoint(ctx, endpoint)
	}

	target, err := h.buildTarget(endpoint, r.URL.Query())
	if err != nil {
		responses.WriteError(ctx, h.logg, w, err)
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxRelayBody)
	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		responses.WriteError(ctx, h.logg, w,
			pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building backend request"))
		return
	}
	req.Header.Set("Accept", "application/json")
	if ct := r.Header.Get("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}
	if auth := r.Header.Get("Authorization"); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	h.metrics.ObserveDuration(endpoint, time.Since(start))
	if err != nil {
		h.metrics.IncFailure(endpoint)
		responses.WriteError(ctx, h.logg, w,
			pkgerrors.Wrap(pkgerrors.CodeTransport, err, "reaching backend"))
		return
	}
	defer resp.Body.Close()
	h.metrics.IncRequest(endpoint, resp.StatusCode)

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil && h.logg != nil {
		h.logg.Error(ctx, "copying backend response", err)
	}
}

func (h *Handler) buildTarget(endpoint string, query url.Values) (string, error) {
	u, err := url.Parse(h.baseURL + "/" + url.PathEscape(endpoint))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "building backend URL")
	}
	forwarded := url.Values{}
	for key, values := range query {
		if key == endpointParam {
			continue
		}
		for _, val := range values {
			forwarded.Add(key, val)
		}
	}
	u.RawQuery = forwarded.Encode()
	return u.String(), nil
}
