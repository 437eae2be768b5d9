// Package content fetches the static storefront pages: about, terms, and
// the FAQ list.
package content

import (
	"context"
	"fmt"
	"net/url"

	"github.com/angelmondragon/mealmart-storefront/pkg/dispatch"
)

const (
	endpointAbout = "getAbout"
	endpointTerms = "getTerms"
	endpointFAQ   = "getFaq"
)

// Page is a titled block of HTML served by the backend CMS.
type Page struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// FAQEntry is one question and answer pair.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type caller interface {
	Get(ctx context.Context, endpoint string, params url.Values) *dispatch.Envelope
	Post(ctx context.Context, endpoint string, body any) *dispatch.Envelope
}

// Service exposes the static content operations.
type Service interface {
	About(ctx context.Context) (*Page, error)
	Terms(ctx context.Context) (*Page, error)
	FAQ(ctx context.Context) ([]FAQEntry, error)
}

type service struct {
	api caller
}

// NewService builds the content service over the dispatch client.
func NewService(api caller) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("dispatch client required")
	}
	return &service{api: api}, nil
}

func (s *service) About(ctx context.Context) (*Page, error) {
	return s.page(ctx, endpointAbout)
}

func (s *service) Terms(ctx context.Context) (*Page, error) {
	return s.page(ctx, endpointTerms)
}

func (s *service) FAQ(ctx context.Context) ([]FAQEntry, error) {
	env := s.api.Get(ctx, endpointFAQ, nil)
	if err := env.Err(); err != nil {
		return nil, err
	}
	var entries []FAQEntry
	if err := env.Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *service) page(ctx context.Context, endpoint string) (*Page, error) {
	env := s.api.Get(ctx, endpoint, nil)
	if err := env.Err(); err != nil {
		return nil, err
	}
	var page Page
	if err := env.Decode(&page); err != nil {
		return nil, err
	}
	return &page, nil
}
