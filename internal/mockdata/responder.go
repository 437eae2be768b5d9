// Package mockdata ships the canned fixtures that back mock mode. The
// responder answers by endpoint name so the whole storefront works offline
// with no backend running.
package mockdata

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/angelmondragon/mealmart-storefront/pkg/dispatch"
)

// Responder satisfies dispatch.Responder with an in-memory fixture table.
type Responder struct {
	mu       sync.RWMutex
	fixtures map[string]json.RawMessage
}

// NewResponder builds the responder pre-loaded with the default fixtures.
func NewResponder() *Responder {
	r := &Responder{fixtures: map[string]json.RawMessage{}}
	for endpoint, fixture := range defaultFixtures() {
		r.mustRegister(endpoint, fixture)
	}
	return r
}

// Register replaces the fixture for an endpoint. Tests use this to shape
// specific responses.
func (r *Responder) Register(endpoint string, result any) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding fixture for %q: %w", endpoint, err)
	}
	r.mu.Lock()
	r.fixtures[endpoint] = raw
	r.mu.Unlock()
	return nil
}

func (r *Responder) mustRegister(endpoint string, result any) {
	if err := r.Register(endpoint, result); err != nil {
		panic(err)
	}
}

// Endpoints lists every endpoint with a registered fixture.
func (r *Responder) Endpoints() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	endpoints := make([]string, 0, len(r.fixtures))
	for endpoint := range r.fixtures {
		endpoints = append(endpoints, endpoint)
	}
	return endpoints
}

// Respond returns the success envelope for a registered endpoint, or nil
// when the endpoint is unknown so the transport can synthesize a 404.
func (r *Responder) Respond(endpoint string, params url.Values) *dispatch.Envelope {
	switch endpoint {
	case "getItems":
		return r.items(params)
	case "getItemDetails":
		return r.itemDetails(params)
	case "searchItems":
		return r.search(params)
	}

	r.mu.RLock()
	raw, ok := r.fixtures[endpoint]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	return &dispatch.Envelope{Status: dispatch.StatusSuccess, Result: raw}
}

func (r *Responder) items(params url.Values) *dispatch.Envelope {
	providerID := params.Get("provider_id")
	matched := make([]product, 0, len(fixtureProducts))
	for _, p := range fixtureProducts {
		if providerID == "" || p.ProviderID == providerID {
			matched = append(matched, p)
		}
	}
	return successEnvelope(matched)
}

func (r *Responder) itemDetails(params url.Values) *dispatch.Envelope {
	id := params.Get("item_id")
	if id == "" {
		id = params.Get("id")
	}
	for _, p := range fixtureProducts {
		if p.ID == id {
			return successEnvelope(p)
		}
	}
	return &dispatch.Envelope{
		Status:  dispatch.StatusError,
		Message: "item not found",
		Code:    http.StatusNotFound,
	}
}

func (r *Responder) search(params url.Values) *dispatch.Envelope {
	query := params.Get("q")
	matched := make([]product, 0)
	for _, p := range fixtureProducts {
		if query == "" || containsFold(p.Name, query) || containsFold(p.Description, query) {
			matched = append(matched, p)
		}
	}
	return successEnvelope(matched)
}

func successEnvelope(result any) *dispatch.Envelope {
	raw, err := json.Marshal(result)
	if err != nil {
		return &dispatch.Envelope{
			Status:  dispatch.StatusError,
			Message: "encoding mock fixture: " + err.Error(),
			Code:    http.StatusInternalServerError,
		}
	}
	return &dispatch.Envelope{Status: dispatch.StatusSuccess, Result: raw}
}
