// Package mock serves the canned fixtures over HTTP so a client in direct
// mode can point its base URL at a local server instead of the real
// backend.
package mock

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/mealmart-storefront/api/middleware"
	"github.com/angelmondragon/mealmart-storefront/api/responses"
	"github.com/angelmondragon/mealmart-storefront/internal/mockdata"
	"github.com/angelmondragon/mealmart-storefront/pkg/dispatch"
	"github.com/angelmondragon/mealmart-storefront/pkg/logger"
)

// Handler answers every endpoint from the fixture responder.
type Handler struct {
	responder *mockdata.Responder
	logg      *logger.Logger
}

// NewHandler builds the mock handler.
func NewHandler(responder *mockdata.Responder, logg *logger.Logger) (*Handler, error) {
	if responder == nil {
		responder = mockdata.NewResponder()
	}
	return &Handler{responder: responder, logg: logg}, nil
}

// Router wires the mock endpoints with the shared middleware stack.
func Router(h *Handler, logg *logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(nil),
	)

	r.Get("/healthz", h.Health)
	r.HandleFunc("/api/{endpoint}", h.Serve)
	r.HandleFunc("/{endpoint}", h.Serve)
	return r
}

// Health reports liveness and the number of seeded endpoints.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	responses.WriteSuccess(w, "ok", map[string]int{
		"endpoints": len(h.responder.Endpoints()),
	})
}

// Serve answers one endpoint by name. Unknown endpoints get a 404 error
// envelope, matching what the real backend returns.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	endpoint := chi.URLParam(r, "endpoint")
	ctx := r.Context()
	if h.logg != nil {
		ctx = h.logg.WithEndpoint(ctx, endpoint)
		h.logg.Debug(ctx, "mock.serve")
	}

	env := h.responder.Respond(endpoint, r.URL.Query())
	if env == nil {
		env = &dispatch.Envelope{
			Status:  dispatch.StatusError,
			Message: "unknown endpoint " + endpoint,
			Code:    http.StatusNotFound,
		}
	}

	status := http.StatusOK
	if env.IsError() && env.Code != 0 {
		status = env.Code
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil && h.logg != nil {
		h.logg.Error(ctx, "writing mock response", err)
	}
}
