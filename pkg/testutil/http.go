// Package testutil holds fixtures and HTTP helpers shared by ledger tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewJSONRequest encodes body (nil for none) into a JSON request.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body), "encode request body")
	}
	return NewRequestWithBody(t, method, path, buf.String())
}

// NewRequestWithBody sends raw as the JSON body, for malformed-input cases.
func NewRequestWithBody(t *testing.T, method, path string, raw string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithBearer attaches a bearer token and returns req.
func WithBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// DoRequest serves req through h.
func DoRequest(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// UnmarshalResponse decodes the recorded body as T.
func UnmarshalResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) *T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "decode response: %s", rr.Body.String())
	return &out
}

// AssertStatus checks the recorded status code, printing the body on mismatch.
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	assert.Equal(t, want, rr.Code, "body: %s", rr.Body.String())
}

// AssertStatusAndError checks the status and the "error" code of the body.
func AssertStatusAndError(t *testing.T, rr *httptest.ResponseRecorder, want int, code string) {
	t.Helper()
	AssertStatus(t, rr, want)
	body := UnmarshalResponse[map[string]any](t, rr)
	assert.Equal(t, code, (*body)["error"])
}
