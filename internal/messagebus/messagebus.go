package messagebus

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/tracing"
	"github.com/nats-io/nats.go"
)

// MessageBus provides a NATS message bus for publishing and subscribing to
// import messages
type MessageBus struct {
	nc      *nats.Conn
	metrics MetricsCollector
}

// New creates a new message bus
func New(nc *nats.Conn, metrics MetricsCollector) *MessageBus {
	if metrics == nil {
		metrics = NoOpMetricsCollector{}
	}
	return &MessageBus{
		nc:      nc,
		metrics: metrics,
	}
}

// PublishImportRequest publishes an import request to NATS
func (b *MessageBus) PublishImportRequest(ctx context.Context, m ImportRequestMessage) (err error) {
	defer func() {
		b.metrics.RecordNATSPublish(string(ImportRequestMessageType), err == nil)
	}()

	m.Type = ImportRequestMessageType
	data, err := json.Marshal(m)
	if err != nil {
		slog.Error("Failed to marshal import request", slog.Any("error", err))
		return err
	}

	err = b.publishMsg(ctx, data, ImportRequestMessageType)
	if err != nil {
		slog.Error("Failed to publish import request", slog.Any("error", err))
	}
	return err
}

// PublishImportResult publishes an import result to NATS
func (b *MessageBus) PublishImportResult(ctx context.Context, m ImportResultMessage) (err error) {
	defer func() {
		b.metrics.RecordNATSPublish(string(ImportResultMessageType), err == nil)
	}()

	m.Type = ImportResultMessageType
	data, err := json.Marshal(m)
	if err != nil {
		slog.Error("Failed to marshal import result", slog.Any("error", err))
		return err
	}

	err = b.publishMsg(ctx, data, ImportResultMessageType)
	if err != nil {
		slog.Error("Failed to publish import result", slog.Any("error", err))
	}
	return err
}

// publishMsg publishes a message to NATS with trace context in headers
func (b *MessageBus) publishMsg(ctx context.Context, data []byte, messageType MessageType) (err error) {
	ctx, span := tracing.CreateNATSPublishSpan(ctx, string(messageType))
	defer span.End()

	msg := &nats.Msg{
		Subject: string(messageType),
		Data:    data,
		Header:  make(nats.Header),
	}

	tracing.InjectNATSHeaders(ctx, msg)

	err = b.nc.PublishMsg(msg)
	if err != nil {
		tracing.SetError(ctx, err)
	}
	return err
}

// SubscribeToImportRequest subscribes to import request messages
func (b *MessageBus) SubscribeToImportRequest(handler func(ctx context.Context, m *nats.Msg)) (*nats.Subscription, error) {
	h := b.wrapHandler(ImportRequestMessageType, handler)
	return b.nc.Subscribe(string(ImportRequestMessageType), h)
}

// SubscribeToImportResult subscribes to import result messages
func (b *MessageBus) SubscribeToImportResult(handler func(ctx context.Context, m *nats.Msg)) (*nats.Subscription, error) {
	h := b.wrapHandler(ImportResultMessageType, handler)
	return b.nc.Subscribe(string(ImportResultMessageType), h)
}

// wrapHandler wraps the original handler to automatically inject trace
// context and record receive metrics
func (b *MessageBus) wrapHandler(messageType MessageType, handler func(ctx context.Context, m *nats.Msg)) nats.MsgHandler {
	return func(m *nats.Msg) {
		ctx := tracing.ExtractNATSHeaders(context.Background(), m)
		ctx, span := tracing.CreateNATSConsumeSpan(ctx, m.Subject)
		defer span.End()

		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				// A panicking handler is recorded as a failed message.
				b.metrics.RecordNATSReceive(string(messageType), time.Since(start), false)
				panic(r)
			}
			b.metrics.RecordNATSReceive(string(messageType), time.Since(start), true)
		}()

		handler(ctx, m)
	}
}
