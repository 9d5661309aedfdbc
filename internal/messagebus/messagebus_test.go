package messagebus

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/pipeline"
	"github.com/nats-io/nats-server/v2/server"
	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupNats(t *testing.T, port int) (*nats.Conn, *server.Server) {
	opts := natsserver.DefaultTestOptions
	opts.Port = port
	srv := natsserver.RunServer(&opts)

	nc, err := nats.Connect("nats://127.0.0.1:" + strconv.Itoa(port))
	require.NoError(t, err, "Should connect to NATS")
	return nc, srv
}

func TestMessageBus_ImportRequestRoundTrip(t *testing.T) {
	nc, srv := setupNats(t, 8500)
	defer srv.Shutdown()
	defer nc.Close()

	mb := New(nc, nil)

	received := make(chan ImportRequestMessage, 1)
	sub, err := mb.SubscribeToImportRequest(func(ctx context.Context, m *nats.Msg) {
		var req ImportRequestMessage
		require.NoError(t, json.Unmarshal(m.Data, &req))
		received <- req
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	err = mb.PublishImportRequest(context.Background(), ImportRequestMessage{
		ImportID:  "01JBUSTEST",
		URL:       "https://example.com",
		MaxBytes:  2048,
		TimeoutMs: 5000,
	})
	require.NoError(t, err)

	select {
	case req := <-received:
		assert.Equal(t, ImportRequestMessageType, req.Type)
		assert.Equal(t, "01JBUSTEST", req.ImportID)
		assert.Equal(t, "https://example.com", req.URL)
		assert.Equal(t, int64(2048), req.MaxBytes)
		assert.Equal(t, 5*time.Second, req.Timeout())
	case <-time.After(2 * time.Second):
		t.Fatal("did not receive import request")
	}
}

func TestMessageBus_ImportResultRoundTrip(t *testing.T) {
	nc, srv := setupNats(t, 8501)
	defer srv.Shutdown()
	defer nc.Close()

	mb := New(nc, nil)

	received := make(chan ImportResultMessage, 1)
	sub, err := mb.SubscribeToImportResult(func(ctx context.Context, m *nats.Msg) {
		var res ImportResultMessage
		require.NoError(t, json.Unmarshal(m.Data, &res))
		received <- res
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	err = mb.PublishImportResult(context.Background(), ImportResultMessage{
		ImportID: "01JBUSRES",
		Success:  true,
		URL:      "https://example.com",
		Result: &pipeline.Result{
			URL:         "https://example.com",
			ContentType: "text/html",
			Analysis:    pipeline.ContentAnalysis{Kind: pipeline.KindHTML},
		},
	})
	require.NoError(t, err)

	select {
	case res := <-received:
		assert.Equal(t, ImportResultMessageType, res.Type)
		assert.True(t, res.Success)
		require.NotNil(t, res.Result)
		assert.Equal(t, pipeline.KindHTML, res.Result.Analysis.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("did not receive import result")
	}
}

func TestMessageBus_FailureResultOmitsPayload(t *testing.T) {
	nc, srv := setupNats(t, 8502)
	defer srv.Shutdown()
	defer nc.Close()

	mb := New(nc, nil)

	received := make(chan []byte, 1)
	sub, err := mb.SubscribeToImportResult(func(ctx context.Context, m *nats.Msg) {
		received <- m.Data
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	err = mb.PublishImportResult(context.Background(), ImportResultMessage{
		ImportID: "01JBUSERR",
		Success:  false,
		URL:      "https://example.com",
		Error:    "fetch failed (timeout): request timed out",
	})
	require.NoError(t, err)

	select {
	case data := <-received:
		assert.NotContains(t, string(data), `"result"`)
		assert.Contains(t, string(data), "request timed out")
	case <-time.After(2 * time.Second):
		t.Fatal("did not receive import result")
	}
}
