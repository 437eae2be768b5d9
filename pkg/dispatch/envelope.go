// Package dispatch is the shared request layer every feature module calls
// through. It hides the transport strategy (direct backend, same-origin
// relay, or canned mock responses) and guarantees callers always receive a
// well-formed response envelope, never a raw transport failure.
package dispatch

import (
	"encoding/json"
	"fmt"
	"net/http"

	pkgerrors "github.com/angelmondragon/mealmart-storefront/pkg/errors"
)

// Envelope statuses used by the backend wire contract.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the {status, message, result} wrapper returned by every
// backend endpoint. Result may be absent, an object, or an array depending
// on the endpoint.
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Code    int             `json:"code,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
}

// IsError reports whether the envelope carries an error status.
func (e *Envelope) IsError() bool {
	return e == nil || e.Status != StatusSuccess
}

// Err converts an error envelope into a typed domain error; nil on success.
func (e *Envelope) Err() error {
	if e == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "missing response envelope")
	}
	if !e.IsError() {
		return nil
	}
	code := e.Code
	if code == 0 {
		code = http.StatusInternalServerError
	}
	message := e.Message
	if message == "" {
		message = pkgerrors.MetadataFor(pkgerrors.CodeForHTTPStatus(code)).PublicMessage
	}
	return pkgerrors.New(pkgerrors.CodeForHTTPStatus(code), message)
}

// Decode unmarshals the result payload into dest. An absent result leaves
// dest untouched.
func (e *Envelope) Decode(dest any) error {
	if e == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "missing response envelope")
	}
	if len(e.Result) == 0 || string(e.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(e.Result, dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeBackend, err, "decoding response result")
	}
	return nil
}

func errorEnvelope(code int, format string, args ...any) *Envelope {
	return &Envelope{
		Status:  StatusError,
		Message: fmt.Sprintf(format, args...),
		Code:    code,
	}
}
