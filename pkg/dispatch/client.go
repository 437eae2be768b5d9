package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/angelmondragon/mealmart-storefront/pkg/logger"
)

const responseBodyLimit int64 = 1 << 20

// SessionSource exposes the stored auth state the dispatch layer attaches
// to outgoing calls. Both values are empty for anonymous visitors.
type SessionSource interface {
	Token(ctx context.Context) string
	UserID(ctx context.Context) string
}

// Client is the uniform get/post surface used by every feature module.
// Every call resolves to an Envelope; transport failures and opaque backend
// responses are normalized, never returned as errors.
type Client struct {
	transport Transport
	session   SessionSource
	logg      *logger.Logger
}

// ClientOption configures optional client collaborators.
type ClientOption func(*Client)

// WithSession attaches the stored auth state source.
func WithSession(session SessionSource) ClientOption {
	return func(c *Client) {
		c.session = session
	}
}

// WithLogger enables request/response logging.
func WithLogger(logg *logger.Logger) ClientOption {
	return func(c *Client) {
		c.logg = logg
	}
}

// NewClient wires the dispatch client over the chosen transport.
func NewClient(transport Transport, opts ...ClientOption) (*Client, error) {
	if transport == nil {
		return nil, errors.New("transport is required")
	}
	c := &Client{transport: transport}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Kind reports the configured transport strategy.
func (c *Client) Kind() Kind {
	return c.transport.Kind()
}

// Get issues a query-parameter call to the named endpoint.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) *Envelope {
	return c.do(ctx, http.MethodGet, endpoint, params, nil)
}

// Post issues a JSON-body call to the named endpoint.
func (c *Client) Post(ctx context.Context, endpoint string, body any) *Envelope {
	var raw []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errorEnvelope(http.StatusInternalServerError, "encoding request body: %v", err)
		}
		raw = encoded
	}
	return c.do(ctx, http.MethodPost, endpoint, nil, raw)
}

func (c *Client) do(ctx context.Context, method, endpoint string, params url.Values, body []byte) *Envelope {
	if strings.TrimSpace(endpoint) == "" {
		return errorEnvelope(http.StatusInternalServerError, "endpoint name is required")
	}

	req := Request{
		Method:   method,
		Endpoint: endpoint,
		Query:    cloneValues(params),
		Body:     body,
	}
	c.attachAuth(ctx, &req)

	c.log(ctx, "request", endpoint, nil)
	resp, err := c.transport.RoundTrip(ctx, req)
	if err != nil {
		c.log(ctx, "error", endpoint, err)
		return errorEnvelope(http.StatusInternalServerError, "request to %q failed: %v", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyLimit))
	if err != nil {
		c.log(ctx, "error", endpoint, err)
		return errorEnvelope(http.StatusInternalServerError, "reading response for %q: %v", endpoint, err)
	}

	env := c.normalize(resp, raw)
	if env.IsError() {
		c.log(ctx, "error", endpoint, env.Err())
	} else {
		c.log(ctx, "response", endpoint, nil)
	}
	return env
}

// normalize turns any backend response into the uniform envelope shape.
// Well-formed JSON envelopes pass through unchanged; everything else is
// classified into a synthesized error.
func (c *Client) normalize(resp *http.Response, body []byte) *Envelope {
	if isJSONResponse(resp.Header.Get("Content-Type")) {
		var env Envelope
		if err := json.Unmarshal(body, &env); err == nil && env.Status != "" {
			if env.IsError() && env.Code == 0 && resp.StatusCode != http.StatusOK {
				env.Code = resp.StatusCode
			}
			return &env
		}
	}
	code, message := classifyOpaque(resp.StatusCode, body)
	return errorEnvelope(code, "%s", message)
}

func (c *Client) attachAuth(ctx context.Context, req *Request) {
	if c.session == nil || c.transport.Kind() == KindMock {
		return
	}
	req.Token = c.session.Token(ctx)
	if c.transport.Kind() != KindDirect {
		return
	}
	if userID := c.session.UserID(ctx); userID != "" {
		if req.Query == nil {
			req.Query = url.Values{}
		}
		req.Query.Set("user_id", userID)
	}
}

func (c *Client) log(ctx context.Context, phase, endpoint string, err error) {
	if c.logg == nil {
		return
	}
	ctx = c.logg.WithFields(ctx, map[string]any{
		"endpoint":  endpoint,
		"phase":     phase,
		"transport": string(c.transport.Kind()),
	})
	switch phase {
	case "error":
		c.logg.Error(ctx, "dispatch "+endpoint, err)
	default:
		c.logg.Debug(ctx, "dispatch "+phase)
	}
}

func isJSONResponse(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func cloneValues(src url.Values) url.Values {
	if src == nil {
		return nil
	}
	dst := url.Values{}
	for key, values := range src {
		for _, val := range values {
			dst.Add(key, val)
		}
	}
	return dst
}
