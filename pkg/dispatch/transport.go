package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/angelmondragon/mealmart-storefront/pkg/config"
)

const defaultTimeout = 30 * time.Second

// Kind identifies the transport strategy. Selected once at composition
// time, never per call.
type Kind string

const (
	KindDirect Kind = "direct"
	KindProxy  Kind = "proxy"
	KindMock   Kind = "mock"
)

// Request is the transport-level view of one backend call. Endpoint is an
// RPC-style action name, not a REST resource path.
type Request struct {
	Method   string
	Endpoint string
	Query    url.Values
	Body     []byte
	Token    string
}

// Transport executes one request against its backend strategy.
type Transport interface {
	Kind() Kind
	RoundTrip(ctx context.Context, req Request) (*http.Response, error)
}

// Responder answers mock-mode calls by endpoint name.
type Responder interface {
	Respond(endpoint string, params url.Values) *Envelope
}

// Option configures optional transport behavior.
type Option func(*httpTransport)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(t *httpTransport) {
		if client != nil {
			t.client = client
		}
	}
}

// WithTimeout replaces the default per-call timeout on the built-in client.
func WithTimeout(timeout time.Duration) Option {
	return func(t *httpTransport) {
		if timeout > 0 {
			t.client.Timeout = timeout
		}
	}
}

type httpTransport struct {
	kind    Kind
	baseURL string
	client  *http.Client
}

// NewDirect builds the transport that calls the backend base URL directly.
func NewDirect(baseURL string, opts ...Option) (Transport, error) {
	return newHTTPTransport(KindDirect, baseURL, opts...)
}

// NewProxy builds the transport that relays calls through a same-origin
// endpoint, passing the target endpoint as a query parameter.
func NewProxy(relayURL string, opts ...Option) (Transport, error) {
	return newHTTPTransport(KindProxy, relayURL, opts...)
}

func newHTTPTransport(kind Kind, baseURL string, opts ...Option) (Transport, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errors.New("transport base URL is required")
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("parsing transport base URL: %w", err)
	}
	t := &httpTransport{
		kind:    kind,
		baseURL: trimmed,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t, nil
}

func (t *httpTransport) Kind() Kind {
	return t.kind
}

func (t *httpTransport) RoundTrip(ctx context.Context, req Request) (*http.Response, error) {
	target, err := t.buildURL(req)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("building request for %q: %w", req.Endpoint, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if len(req.Body) > 0 {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	return t.client.Do(httpReq)
}

func (t *httpTransport) buildURL(req Request) (string, error) {
	switch t.kind {
	case KindDirect:
		u, err := url.Parse(t.baseURL + "/" + url.PathEscape(req.Endpoint))
		if err != nil {
			return "", fmt.Errorf("building URL for %q: %w", req.Endpoint, err)
		}
		u.RawQuery = req.Query.Encode()
		return u.String(), nil
	case KindProxy:
		u, err := url.Parse(t.baseURL)
		if err != nil {
			return "", fmt.Errorf("building relay URL for %q: %w", req.Endpoint, err)
		}
		q := u.Query()
		for key, values := range req.Query {
			for _, val := range values {
				q.Add(key, val)
			}
		}
		q.Set("endpoint", req.Endpoint)
		u.RawQuery = q.Encode()
		return u.String(), nil
	default:
		return "", fmt.Errorf("unsupported transport kind %q", t.kind)
	}
}

type mockTransport struct {
	responder Responder
}

// NewMock builds the transport that answers every call from the responder
// without touching the network.
func NewMock(responder Responder) (Transport, error) {
	if responder == nil {
		return nil, errors.New("mock responder is required")
	}
	return &mockTransport{responder: responder}, nil
}

func (t *mockTransport) Kind() Kind {
	return KindMock
}

func (t *mockTransport) RoundTrip(ctx context.Context, req Request) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := t.responder.Respond(req.Endpoint, req.Query)
	if env == nil {
		env = errorEnvelope(http.StatusNotFound, "no mock response for endpoint %q", req.Endpoint)
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encoding mock response for %q: %w", req.Endpoint, err)
	}
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(raw)),
	}, nil
}

// NewTransport selects the transport once from configuration. The responder
// is only consulted in mock mode.
func NewTransport(cfg config.APIConfig, responder Responder) (Transport, error) {
	switch cfg.NormalizedMode() {
	case config.ModeDirect:
		return NewDirect(cfg.BaseURL, WithTimeout(cfg.Timeout))
	case config.ModeProxy:
		return NewProxy(cfg.ProxyURL, WithTimeout(cfg.Timeout))
	case config.ModeMock:
		return NewMock(responder)
	default:
		return nil, fmt.Errorf("unsupported API mode %q", cfg.Mode)
	}
}
