package messagebus

import (
	"context"
	"time"

	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/pipeline"
	"github.com/nats-io/nats.go"
)

//go:generate mockgen -destination=../mocks/mock_messagebus.go -package=mocks . MessageBusInterface

type MessageBusInterface interface {
	PublishImportRequest(ctx context.Context, m ImportRequestMessage) error
	PublishImportResult(ctx context.Context, m ImportResultMessage) error
	SubscribeToImportRequest(handler func(ctx context.Context, m *nats.Msg)) (*nats.Subscription, error)
	SubscribeToImportResult(handler func(ctx context.Context, m *nats.Msg)) (*nats.Subscription, error)
}

type MessageType string

const (
	ImportRequestMessageType MessageType = "url.import"
	ImportResultMessageType  MessageType = "import.completed"
)

// ImportRequestMessage asks the worker to run the pipeline for one URL.
// MaxBytes and TimeoutMs are optional per-request budget overrides.
type ImportRequestMessage struct {
	Type      MessageType `json:"type"`
	ImportID  string      `json:"import_id"`
	URL       string      `json:"url"`
	MaxBytes  int64       `json:"max_size_bytes,omitempty"`
	TimeoutMs int64       `json:"timeout_ms,omitempty"`
}

// ImportResultMessage carries the pipeline outcome back to collaborators
// (persistence, AI analysis). On failure Result is nil and Error is set.
type ImportResultMessage struct {
	Type     MessageType      `json:"type"`
	ImportID string           `json:"import_id"`
	Success  bool             `json:"success"`
	URL      string           `json:"url"`
	Error    string           `json:"error,omitempty"`
	Result   *pipeline.Result `json:"result,omitempty"`
}

// Timeout converts the millisecond override into a duration; zero means
// "use the configured default".
func (m ImportRequestMessage) Timeout() time.Duration {
	return time.Duration(m.TimeoutMs) * time.Millisecond
}

type MetricsCollector interface {
	RecordNATSPublish(messageType string, success bool)
	RecordNATSReceive(messageType string, duration time.Duration, success bool)
}

type NoOpMetricsCollector struct{}

func (n NoOpMetricsCollector) RecordNATSPublish(messageType string, success bool) {}
func (n NoOpMetricsCollector) RecordNATSReceive(messageType string, duration time.Duration, success bool) {
}
