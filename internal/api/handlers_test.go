package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/middleware"
	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/mocks"
	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yousuf64/shift"
	"go.uber.org/mock/gomock"
)

// stubRoundTripper implements http.RoundTripper for testing
type stubRoundTripper struct {
	statusCode  int
	contentType string
	content     string
}

func (s *stubRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if strings.Contains(req.URL.String(), "missing") {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Header:     make(http.Header),
			Body:       io.NopCloser(bytes.NewReader(nil)),
			Request:    req,
		}, nil
	}

	header := make(http.Header)
	header.Set("Content-Type", s.contentType)
	return &http.Response{
		StatusCode: s.statusCode,
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader([]byte(s.content))),
		Request:    req,
	}, nil
}

// setupMockAPI creates an API instance backed by a stubbed HTTP transport
func setupMockAPI(t *testing.T, content, contentType string) (*API, *mocks.MockMessageBusInterface) {
	ctrl := gomock.NewController(t)
	mockBus := mocks.NewMockMessageBusInterface(ctrl)

	client := &http.Client{Transport: &stubRoundTripper{
		statusCode:  200,
		contentType: contentType,
		content:     content,
	}}

	p := pipeline.New(
		pipeline.WithHTTPClient(client),
		pipeline.WithLogger(slog.New(slog.DiscardHandler)),
	)

	a := &API{
		pipeline: p,
		mb:       mockBus,
		metrics:  nil,
		log:      slog.New(slog.DiscardHandler),
	}
	return a, mockBus
}

// makeRequest creates an HTTP request with the given method, path, and body.
func makeRequest(t *testing.T, method, path string, body any) *http.Request {
	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}

	req, err := http.NewRequest(method, path, &reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// setupRouter registers the handler behind the error middleware, mirroring
// the production route setup.
func setupRouter(method, path string, handler shift.HandlerFunc) *shift.Router {
	router := shift.New()
	router.Use(middleware.ErrorMiddleware(slog.New(slog.DiscardHandler)))
	router.Map([]string{method}, path, handler)
	return router
}

func TestHandleImport_Success(t *testing.T) {
	a, mockBus := setupMockAPI(t, "<html><head><title>Hi</title></head><body></body></html>", "text/html")
	mockBus.EXPECT().PublishImportResult(gomock.Any(), gomock.Any()).Return(nil)

	router := setupRouter("POST", "/imports", a.handleImport)
	req := makeRequest(t, "POST", "/imports", ImportRequest{URL: "https://example.com"})
	rec := httptest.NewRecorder()
	router.Serve().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ImportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.ImportID)
	assert.Equal(t, "https://example.com", resp.URL)
	assert.Equal(t, pipeline.KindHTML, resp.Analysis.Kind)
	require.NotNil(t, resp.Analysis.HTML)
	assert.Equal(t, "Hi", resp.Analysis.HTML.Title)
	require.NotEmpty(t, resp.Files)
	assert.Equal(t, "_analysis.json", resp.Files[len(resp.Files)-1].Filename)
}

func TestHandleImport_FetchFailure(t *testing.T) {
	a, mockBus := setupMockAPI(t, "", "text/html")
	mockBus.EXPECT().PublishImportResult(gomock.Any(), gomock.Any()).Return(nil)

	router := setupRouter("POST", "/imports", a.handleImport)
	req := makeRequest(t, "POST", "/imports", ImportRequest{URL: "https://example.com/missing"})
	rec := httptest.NewRecorder()
	router.Serve().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "http_error")
	assert.Equal(t, "https://example.com/missing", resp.URL)
}

func TestHandleImport_InvalidRequests(t *testing.T) {
	testCases := []struct {
		name string
		body any
		raw  string
	}{
		{name: "EmptyURL", body: ImportRequest{URL: ""}},
		{name: "BadScheme", body: ImportRequest{URL: "ftp://example.com"}},
		{name: "Localhost", body: ImportRequest{URL: "http://localhost:8080"}},
		{name: "PrivateIP", body: ImportRequest{URL: "http://192.168.1.1"}},
		{name: "MalformedBody", raw: "{not json"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, _ := setupMockAPI(t, "", "text/html")
			router := setupRouter("POST", "/imports", a.handleImport)

			var req *http.Request
			if tc.raw != "" {
				var err error
				req, err = http.NewRequest("POST", "/imports", strings.NewReader(tc.raw))
				require.NoError(t, err)
			} else {
				req = makeRequest(t, "POST", "/imports", tc.body)
			}

			rec := httptest.NewRecorder()
			router.Serve().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandleImport_PublishFailureDoesNotFailRequest(t *testing.T) {
	a, mockBus := setupMockAPI(t, "<html></html>", "text/html")
	mockBus.EXPECT().PublishImportResult(gomock.Any(), gomock.Any()).Return(assert.AnError)

	router := setupRouter("POST", "/imports", a.handleImport)
	req := makeRequest(t, "POST", "/imports", ImportRequest{URL: "https://example.com"})
	rec := httptest.NewRecorder()
	router.Serve().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, "result delivery is best-effort")
}
