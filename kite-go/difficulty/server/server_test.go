package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/kiteco/difficulty/kite-go/difficulty/bundle"
	"github.com/kiteco/difficulty/kite-go/difficulty/inference"
	"github.com/kiteco/difficulty/kite-go/difficulty/tier"
	"github.com/kiteco/difficulty/kite-go/difficulty/train"
	"github.com/kiteco/difficulty/kite-golib/text"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(t *testing.T) *inference.Service {
	fs := afero.NewMemMapFs()
	opts := train.DefaultOptions()
	opts.ModelDir = "/models"
	opts.AllowSynthetic = true
	opts.Boost.NumRounds = 10
	opts.Boost.Workers = 2
	_, err := train.Run(fs, opts, nil)
	require.NoError(t, err)

	b, err := bundle.NewStore(fs, opts.ModelDir).Load(text.DefaultNormalizerVersion)
	require.NoError(t, err)
	s, err := inference.New(b, tier.DefaultThresholds(), text.NewNormalizer())
	require.NoError(t, err)
	return s
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), rec.Body.String())
	return payload
}

func TestPredictForm(t *testing.T) {
	h := New(testService(t), nil).Handler()

	form := url.Values{
		"description":        {"Calculate the sum of two integers."},
		"input_description":  {"Two integers a and b."},
		"output_description": {"Sum of a and b."},
	}
	req := httptest.NewRequest("POST", "/predict", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	payload := decode(t, rec)
	score, ok := payload["score"].(float64)
	require.True(t, ok)
	assert.Equal(t, tier.DefaultThresholds().Lookup(score), payload["class"])
}

func TestPredictJSON(t *testing.T) {
	h := New(testService(t), nil).Handler()

	req := httptest.NewRequest("POST", "/predict",
		strings.NewReader(`{"description": "Find the shortest path in a graph using BFS."}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	payload := decode(t, rec)
	assert.Contains(t, payload, "class")
	assert.Contains(t, payload, "score")

	req = httptest.NewRequest("POST", "/predict", strings.NewReader(`{"description": `))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictSuffixOnlyWords(t *testing.T) {
	h := New(testService(t), nil).Handler()

	req := httptest.NewRequest("POST", "/predict",
		strings.NewReader(`{"description": "Print EED if the answer exists.", "output_description": "EEDS"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	payload := decode(t, rec)
	score, ok := payload["score"].(float64)
	require.True(t, ok)
	assert.Equal(t, tier.DefaultThresholds().Lookup(score), payload["class"])
}

func TestPredictEmpty(t *testing.T) {
	h := New(testService(t), nil).Handler()

	req := httptest.NewRequest("POST", "/predict", strings.NewReader("title=Only+a+title"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	payload := decode(t, rec)
	assert.Contains(t, payload, "error")
	assert.NotContains(t, payload, "score")
}

func TestModelsNotLoaded(t *testing.T) {
	h := New(nil, nil).Handler()

	req := httptest.NewRequest("POST", "/predict", strings.NewReader(`{"description": "Sort numbers."}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, decode(t, rec), "error")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, false, decode(t, rec)["models_loaded"])
}

func TestHealth(t *testing.T) {
	s := testService(t)
	h := New(s, nil).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	payload := decode(t, rec)
	assert.Equal(t, true, payload["models_loaded"])
	assert.Equal(t, s.Manifest().RunID, payload["run_id"])
	assert.Equal(t, true, payload["synthetic"])

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/predict", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
