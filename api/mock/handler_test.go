package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/mealmart-storefront/internal/mockdata"
	"github.com/angelmondragon/mealmart-storefront/pkg/dispatch"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	h, err := NewHandler(mockdata.NewResponder(), nil)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	return Router(h, nil)
}

func TestServeKnownEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/getCategories", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var env dispatch.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if env.IsError() || len(env.Result) == 0 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestServeUnknownEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/noSuchEndpoint", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var env dispatch.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !env.IsError() {
		t.Fatalf("expected error envelope, got %+v", env)
	}
}

func TestServeFiltersByQuery(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/getItems?provider_id=prov-001", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env dispatch.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	var items []struct {
		ProviderID string `json:"provider_id"`
	}
	if err := env.Decode(&items); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected items for prov-001")
	}
	for _, item := range items {
		if item.ProviderID != "prov-001" {
			t.Fatalf("unexpected provider %q", item.ProviderID)
		}
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
