package dispatch

import (
	"bytes"
	"net/http"
)

// signature maps a known failure marker found in an opaque response body to
// the status and message surfaced to callers. The backend serves HTML error
// pages for some outages; sniffing them here keeps that detail out of every
// call site.
type signature struct {
	marker  []byte
	code    int
	message string
}

var bodySignatures = []signature{
	{marker: []byte("Database Error"), code: http.StatusServiceUnavailable, message: "service unavailable: backend database error"},
	{marker: []byte("404 Not Found"), code: http.StatusNotFound, message: "resource not found"},
}

// classifyOpaque maps a non-JSON response to a best-effort status and
// message. Body markers win over status-code heuristics.
func classifyOpaque(httpStatus int, body []byte) (int, string) {
	for _, sig := range bodySignatures {
		if bytes.Contains(body, sig.marker) {
			return sig.code, sig.message
		}
	}
	switch {
	case httpStatus == http.StatusNotFound:
		return http.StatusNotFound, "resource not found"
	case httpStatus >= http.StatusInternalServerError:
		return http.StatusInternalServerError, "backend request failed"
	default:
		return http.StatusBadGateway, "unexpected response from backend"
	}
}
