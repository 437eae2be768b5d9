package content

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/angelmondragon/mealmart-storefront/pkg/dispatch"
	pkgerrors "github.com/angelmondragon/mealmart-storefront/pkg/errors"
)

type stubCaller struct {
	envelopes map[string]*dispatch.Envelope
}

func (s *stubCaller) Get(_ context.Context, endpoint string, _ url.Values) *dispatch.Envelope {
	if env, ok := s.envelopes[endpoint]; ok {
		return env
	}
	return &dispatch.Envelope{Status: dispatch.StatusError, Message: "404 Not Found", Code: 404}
}

func (s *stubCaller) Post(_ context.Context, endpoint string, _ any) *dispatch.Envelope {
	return s.Get(context.Background(), endpoint, nil)
}

func successEnvelope(t *testing.T, result any) *dispatch.Envelope {
	t.Helper()
	raw, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	return &dispatch.Envelope{Status: dispatch.StatusSuccess, Result: raw}
}

func TestPages(t *testing.T) {
	api := &stubCaller{envelopes: map[string]*dispatch.Envelope{
		"getAbout": successEnvelope(t, Page{Title: "About us", Body: "<p>hi</p>"}),
		"getTerms": successEnvelope(t, Page{Title: "Terms"}),
	}}
	svc, err := NewService(api)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	about, err := svc.About(context.Background())
	if err != nil {
		t.Fatalf("About: %v", err)
	}
	if about.Title != "About us" {
		t.Fatalf("unexpected page: %+v", about)
	}

	terms, err := svc.Terms(context.Background())
	if err != nil {
		t.Fatalf("Terms: %v", err)
	}
	if terms.Title != "Terms" {
		t.Fatalf("unexpected page: %+v", terms)
	}
}

func TestFAQ(t *testing.T) {
	api := &stubCaller{envelopes: map[string]*dispatch.Envelope{
		"getFaq": successEnvelope(t, []FAQEntry{
			{Question: "Is delivery free?", Answer: "Over 20 JOD, yes."},
		}),
	}}
	svc, _ := NewService(api)

	entries, err := svc.FAQ(context.Background())
	if err != nil {
		t.Fatalf("FAQ: %v", err)
	}
	if len(entries) != 1 || entries[0].Question == "" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestMissingEndpoint(t *testing.T) {
	api := &stubCaller{envelopes: map[string]*dispatch.Envelope{}}
	svc, _ := NewService(api)

	_, err := svc.About(context.Background())
	var typed *pkgerrors.Error
	if !errors.As(err, &typed) || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
