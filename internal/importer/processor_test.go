package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/messagebus"
	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/mocks"
	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/pipeline"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const notFoundMarker = "should_not_be_found"

// MockHTTPRoundTripper implements http.RoundTripper for testing
type MockHTTPRoundTripper struct {
	statusCode  int
	contentType string
	content     string
}

func (m *MockHTTPRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if strings.Contains(req.URL.String(), notFoundMarker) {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Header:     make(http.Header),
			Body:       io.NopCloser(bytes.NewReader(nil)),
			Request:    req,
		}, nil
	}

	header := make(http.Header)
	header.Set("Content-Type", m.contentType)
	return &http.Response{
		StatusCode: m.statusCode,
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader([]byte(m.content))),
		Request:    req,
	}, nil
}

func setupImporter(t *testing.T, content, contentType string) (*Importer, *mocks.MockMessageBusInterface) {
	ctrl := gomock.NewController(t)
	mockBus := mocks.NewMockMessageBusInterface(ctrl)

	client := &http.Client{Transport: &MockHTTPRoundTripper{
		statusCode:  200,
		contentType: contentType,
		content:     content,
	}}

	p := pipeline.New(
		pipeline.WithHTTPClient(client),
		pipeline.WithLogger(slog.New(slog.DiscardHandler)),
	)

	imp := New(p, mockBus, WithLogger(slog.New(slog.DiscardHandler)))
	return imp, mockBus
}

func requestMsg(t *testing.T, m messagebus.ImportRequestMessage) *nats.Msg {
	data, err := json.Marshal(m)
	require.NoError(t, err)
	return &nats.Msg{Subject: string(messagebus.ImportRequestMessageType), Data: data}
}

func TestProcessImportMessage_Success(t *testing.T) {
	imp, mockBus := setupImporter(t, "<html><head><title>Hi</title></head><body></body></html>", "text/html")

	var published messagebus.ImportResultMessage
	mockBus.EXPECT().
		PublishImportResult(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, m messagebus.ImportResultMessage) error {
			published = m
			return nil
		})

	msg := requestMsg(t, messagebus.ImportRequestMessage{
		ImportID: "01JREQTEST",
		URL:      "https://example.com",
	})
	imp.ProcessImportMessage(context.Background(), msg)

	assert.True(t, published.Success)
	assert.Equal(t, "01JREQTEST", published.ImportID)
	assert.Equal(t, "https://example.com", published.URL)
	require.NotNil(t, published.Result)
	assert.Equal(t, pipeline.KindHTML, published.Result.Analysis.Kind)
	assert.Equal(t, "Hi", published.Result.Analysis.HTML.Title)
}

func TestProcessImportMessage_FetchFailure(t *testing.T) {
	imp, mockBus := setupImporter(t, "", "text/html")

	var published messagebus.ImportResultMessage
	mockBus.EXPECT().
		PublishImportResult(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, m messagebus.ImportResultMessage) error {
			published = m
			return nil
		})

	msg := requestMsg(t, messagebus.ImportRequestMessage{
		ImportID: "01JREQFAIL",
		URL:      "https://example.com/" + notFoundMarker,
	})
	imp.ProcessImportMessage(context.Background(), msg)

	assert.False(t, published.Success)
	assert.Contains(t, published.Error, "http_error")
	assert.Nil(t, published.Result)
}

func TestProcessImportMessage_MalformedMessage(t *testing.T) {
	imp, _ := setupImporter(t, "", "text/html")

	// No publish expectation: malformed payloads are dropped.
	imp.ProcessImportMessage(context.Background(), &nats.Msg{Data: []byte("not json")})
}

func TestProcessImportMessage_MissingURL(t *testing.T) {
	imp, _ := setupImporter(t, "", "text/html")

	msg := requestMsg(t, messagebus.ImportRequestMessage{ImportID: "01JNOURL"})
	imp.ProcessImportMessage(context.Background(), msg)
}

func TestProcessImportMessage_BudgetOverrides(t *testing.T) {
	imp, mockBus := setupImporter(t, strings.Repeat("x", 2048), "text/plain")

	var published messagebus.ImportResultMessage
	mockBus.EXPECT().
		PublishImportResult(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, m messagebus.ImportResultMessage) error {
			published = m
			return nil
		})

	msg := requestMsg(t, messagebus.ImportRequestMessage{
		ImportID: "01JTOOBIG",
		URL:      "https://example.com/big",
		MaxBytes: 1024,
	})
	imp.ProcessImportMessage(context.Background(), msg)

	assert.False(t, published.Success)
	assert.Contains(t, published.Error, "too_large")
}
