package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"autoeda/adapters/charts"
	"autoeda/app"
	"autoeda/domain/table"
	"autoeda/internal/config"
	"autoeda/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOracle struct {
	summaryErr error
}

func (s *stubOracle) Summarize(_ context.Context, _ *table.Table) (string, error) {
	return "Two columns, nothing unusual.", s.summaryErr
}

func (s *stubOracle) SuggestColumnVisualizations(_ context.Context, _ *table.Table) (map[string]string, error) {
	return map[string]string{"num_col": "Histogram"}, nil
}

func (s *stubOracle) SuggestPairwiseVisualizations(_ context.Context, _ *table.Table, _ string) (map[string][3]string, error) {
	return map[string][3]string{}, nil
}

func (s *stubOracle) Chat(_ context.Context, prompt string) (string, error) {
	return "echo: " + prompt, nil
}

func newTestServer(oracle *stubOracle) *Server {
	cfg := &config.Config{
		Server: config.ServerConfig{GinMode: "test"},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Analysis: config.AnalysisConfig{
			SampleLimit:   5000,
			MaxConcurrent: 2,
		},
	}
	service := app.NewAnalysisService(oracle, charts.NewRenderer(), cfg.Analysis.SampleLimit)
	return NewServer(cfg, service, oracle)
}

func uploadRequest(t *testing.T, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeDetail(t *testing.T, body *bytes.Buffer) string {
	t.Helper()
	var payload struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(body.Bytes(), &payload))
	return payload.Detail
}

const testCSV = "text_col,num_col\nalpha,1.5\nbeta,2.5\nalpha,3.5\ngamma,4.0\nbeta,5.0\nalpha,6.5\n"

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&stubOracle{})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestAnalyzeSuccess(t *testing.T) {
	srv := newTestServer(&stubOracle{})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, "data.csv", []byte(testCSV)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report struct {
		Filename string `json:"filename"`
		Rows     int    `json:"rows"`
		Summary  string `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "data.csv", report.Filename)
	assert.Equal(t, 6, report.Rows)
	assert.Equal(t, "Two columns, nothing unusual.", report.Summary)
}

func TestAnalyzeWithoutFile(t *testing.T) {
	srv := newTestServer(&stubOracle{})

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file uploaded", decodeDetail(t, rec.Body))
}

func TestAnalyzeRejectsOversizedUpload(t *testing.T) {
	srv := newTestServer(&stubOracle{})
	srv.maxUpload = 64

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, "data.csv", []byte(testCSV)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "file too large", decodeDetail(t, rec.Body))
}

func TestAnalyzeAcceptsUploadAtSizeCap(t *testing.T) {
	srv := newTestServer(&stubOracle{})
	srv.maxUpload = int64(len(testCSV))

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, "data.csv", []byte(testCSV)))

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestAnalyzeUnsupportedFormat(t *testing.T) {
	srv := newTestServer(&stubOracle{})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, "notes.txt", []byte("hello")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeDetail(t, rec.Body), "unsupported file format")
}

func TestAnalyzeQuotaExhausted(t *testing.T) {
	srv := newTestServer(&stubOracle{summaryErr: errors.OracleQuotaExceeded()})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, "data.csv", []byte(testCSV)))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "AI quota exceeded. Please try again in a minute.", decodeDetail(t, rec.Body))
}

func TestAnalyzeInternalError(t *testing.T) {
	srv := newTestServer(&stubOracle{summaryErr: errors.InternalError("summary stage failed")})

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, "data.csv", []byte(testCSV)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestChatEndpoint(t *testing.T) {
	srv := newTestServer(&stubOracle{})

	body := bytes.NewBufferString(`{"prompt":"what stands out?"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chat", body)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Response string `json:"response"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "echo: what stands out?", payload.Response)
}

func TestChatRequiresPrompt(t *testing.T) {
	srv := newTestServer(&stubOracle{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(&stubOracle{})

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	srv := newTestServer(&stubOracle{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
