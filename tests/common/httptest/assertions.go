//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"voucher-issuer/internal/handler/httperr"

	"github.com/stretchr/testify/assert"
)

// AssertSuccessResponse decodes the body into target only when the status matches a 2xx expectation.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}
	if expectedStatus < 200 || expectedStatus >= 300 || target == nil {
		return
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "response is not valid JSON: %s", w.Body.String())
}

// AssertErrorResponse checks the status and that the httperr message contains expectedMsg.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedMsg string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	var resp httperr.Response
	if !assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "error response is not valid JSON: %s", w.Body.String()) {
		return
	}
	if expectedMsg != "" {
		assert.Contains(t, resp.Error.Message, expectedMsg)
	}
}

// AssertHeaderPresent fails when any of the named response headers is empty.
func AssertHeaderPresent(t *testing.T, w *httptest.ResponseRecorder, names ...string) {
	t.Helper()
	for _, name := range names {
		assert.NotEmpty(t, w.Header().Get(name), "header %s missing", name)
	}
}
