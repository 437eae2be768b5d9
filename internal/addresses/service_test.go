package addresses

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/mealmart-storefront/pkg/dispatch"
	pkgerrors "github.com/angelmondragon/mealmart-storefront/pkg/errors"
)

type stubCaller struct {
	envelopes  map[string]*dispatch.Envelope
	lastParams url.Values
	lastBody   any
}

func (s *stubCaller) Get(_ context.Context, endpoint string, params url.Values) *dispatch.Envelope {
	s.lastParams = params
	if env, ok := s.envelopes[endpoint]; ok {
		return env
	}
	return &dispatch.Envelope{Status: dispatch.StatusError, Message: "404 Not Found", Code: 404}
}

func (s *stubCaller) Post(_ context.Context, endpoint string, body any) *dispatch.Envelope {
	s.lastBody = body
	if env, ok := s.envelopes[endpoint]; ok {
		return env
	}
	return &dispatch.Envelope{Status: dispatch.StatusError, Message: "404 Not Found", Code: 404}
}

func successEnvelope(t *testing.T, result any) *dispatch.Envelope {
	t.Helper()
	raw, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	return &dispatch.Envelope{Status: dispatch.StatusSuccess, Result: raw}
}

func TestList(t *testing.T) {
	api := &stubCaller{envelopes: map[string]*dispatch.Envelope{
		"getAddresses": successEnvelope(t, []Address{
			{ID: "a-1", Label: "Home", IsDefault: true},
			{ID: "a-2", Label: "Work"},
		}),
	}}
	svc, err := NewService(api)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	addresses, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(addresses) != 2 || addresses[0].Label != "Home" {
		t.Fatalf("unexpected addresses: %+v", addresses)
	}
}

func TestAddValidation(t *testing.T) {
	api := &stubCaller{envelopes: map[string]*dispatch.Envelope{}}
	svc, _ := NewService(api)

	_, err := svc.Add(context.Background(), AddInput{Label: "Home"})
	var typed *pkgerrors.Error
	if !errors.As(err, &typed) || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	if api.lastBody != nil {
		t.Fatal("invalid input must not reach the backend")
	}
}

func TestAdd(t *testing.T) {
	api := &stubCaller{envelopes: map[string]*dispatch.Envelope{
		"addAddress": successEnvelope(t, Address{ID: "a-3", Label: "Gym"}),
	}}
	svc, _ := NewService(api)

	address, err := svc.Add(context.Background(), AddInput{
		Label:     "Gym",
		Details:   "12 Main St",
		Latitude:  decimal.RequireFromString("31.95"),
		Longitude: decimal.RequireFromString("35.91"),
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if address.ID != "a-3" {
		t.Fatalf("unexpected address: %+v", address)
	}
}

func TestDelete(t *testing.T) {
	api := &stubCaller{envelopes: map[string]*dispatch.Envelope{
		"deleteAddress": {Status: dispatch.StatusSuccess, Message: "Deleted"},
	}}
	svc, _ := NewService(api)

	if err := svc.Delete(context.Background(), ""); err == nil {
		t.Fatal("expected validation error for empty id")
	}
	if err := svc.Delete(context.Background(), "a-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	body, ok := api.lastBody.(map[string]string)
	if !ok || body["id"] != "a-1" {
		t.Fatalf("unexpected body: %+v", api.lastBody)
	}
}

func TestGeocode(t *testing.T) {
	api := &stubCaller{envelopes: map[string]*dispatch.Envelope{
		"geocodeLocation": successEnvelope(t, Location{Address: "12 Main St", City: "Amman"}),
	}}
	svc, _ := NewService(api)

	location, err := svc.Geocode(context.Background(),
		decimal.RequireFromString("31.95"), decimal.RequireFromString("35.91"))
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if location.Address != "12 Main St" {
		t.Fatalf("unexpected location: %+v", location)
	}
	if got := api.lastParams.Get("lat"); got != "31.95" {
		t.Fatalf("lat param = %q", got)
	}
	if got := api.lastParams.Get("lng"); got != "35.91" {
		t.Fatalf("lng param = %q", got)
	}
}
