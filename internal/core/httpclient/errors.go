package httpclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"
)

// ErrUpstream is the sentinel behind every UpstreamError.
var ErrUpstream = errors.New("upstream request failed")

// maxErrorBody caps how much of an upstream body is copied into an error.
const maxErrorBody = 4096

// UpstreamError reports a non-2xx or undecodable response from a remote API.
type UpstreamError struct {
	// Service names the remote API, e.g. "basitkargo" or "shopify".
	Service string
	// StatusCode is the HTTP status returned, 0 when the failure is not status related.
	StatusCode int
	// Body is the raw response body, verbatim up to maxErrorBody bytes.
	Body string
	// Cause is set when decoding failed.
	Cause error
}

// NewUpstreamError builds an UpstreamError from a status and body.
func NewUpstreamError(service string, status int, body []byte) *UpstreamError {
	return &UpstreamError{Service: service, StatusCode: status, Body: truncate(body)}
}

func (e *UpstreamError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: ", e.Service)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, "status %d", e.StatusCode)
	} else {
		b.WriteString("invalid response")
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, " (cause: %v)", e.Cause)
	}
	if e.Body != "" {
		fmt.Fprintf(&b, ": %s", e.Body)
	}
	return b.String()
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}

// DecodeJSON checks the response status and decodes a JSON body into out.
// Numbers are kept as json.Number so long identifiers survive untouched.
func DecodeJSON(service string, resp *http.Response, out any) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: failed to read response: %w", service, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return NewUpstreamError(service, resp.StatusCode, body)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		upstreamErr := NewUpstreamError(service, 0, body)
		upstreamErr.Cause = err
		return upstreamErr
	}
	return nil
}

func truncate(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		return s[:cut] + "..."
	}
	return s
}
