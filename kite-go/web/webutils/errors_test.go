package webutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kiteco/difficulty/kite-golib/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	codeMissing = iota + 1
	codeOffline
	codeUnmapped
)

var (
	errMissing = ErrorCode(codeMissing, "missing input")
	statusMap  = StatusCodeMap{
		codeMissing: http.StatusBadRequest,
		codeOffline: http.StatusServiceUnavailable,
	}
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestCodes(t *testing.T) {
	wrapped := errors.Wrapf(errMissing, "scoring")
	assert.True(t, HasCode(wrapped, codeMissing))
	assert.False(t, HasCode(wrapped, codeOffline))
	assert.True(t, errors.Is(wrapped, errMissing))

	code, ok := Code(ErrorCodef(codeOffline, "run %s gone", "abc"))
	assert.True(t, ok)
	assert.Equal(t, codeOffline, code)

	_, ok = Code(errors.New("plain"))
	assert.False(t, ok)
	assert.Equal(t, "error 1: missing input", errMissing.Error())
}

func TestErrorResponse(t *testing.T) {
	r := httptest.NewRequest("POST", "/predict", nil)

	rec := httptest.NewRecorder()
	ErrorResponse(rec, r, errMissing, statusMap, zap.NewNop())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	payload := decodeError(t, rec)
	assert.Equal(t, "missing input", payload["error"])
	assert.EqualValues(t, codeMissing, payload["code"])

	rec = httptest.NewRecorder()
	ErrorResponse(rec, r, ErrorCodef(codeOffline, "no models"), statusMap, zap.NewNop())
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	ErrorResponse(rec, r, ErrorCode(codeUnmapped, "?"), statusMap, zap.NewNop())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	ErrorResponse(rec, r, errors.New("boom"), statusMap, zap.NewNop())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeError(t, rec), "error")
}

func TestReportBadRequest(t *testing.T) {
	rec := httptest.NewRecorder()
	ReportBadRequest(rec, "bad %s", "json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad json", decodeError(t, rec)["error"])
}
