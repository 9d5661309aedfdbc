package importer

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/messagebus"
	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/pipeline"
	"github.com/nats-io/nats.go"
)

// ProcessImportMessage handles incoming import request messages
func (s *Importer) ProcessImportMessage(ctx context.Context, msg *nats.Msg) {
	var im messagebus.ImportRequestMessage
	if err := json.Unmarshal(msg.Data, &im); err != nil {
		s.log.Error("Failed to unmarshal import request",
			slog.Any("error", err),
			slog.String("data", string(msg.Data)))
		return
	}

	if im.URL == "" {
		s.log.Error("Import request missing URL", slog.String("importId", im.ImportID))
		return
	}

	s.log.Info("Processing import request",
		slog.String("importId", im.ImportID),
		slog.String("url", im.URL))

	start := time.Now()
	result, err := s.pipeline.Run(ctx, pipeline.Request{
		URL:      im.URL,
		MaxBytes: im.MaxBytes,
		Timeout:  im.Timeout(),
	})
	if err != nil {
		s.log.Warn("Import failed",
			slog.String("importId", im.ImportID),
			slog.String("url", im.URL),
			slog.Any("error", err))
		s.publishResult(ctx, messagebus.ImportResultMessage{
			ImportID: im.ImportID,
			Success:  false,
			URL:      im.URL,
			Error:    err.Error(),
		})
		return
	}

	d := time.Since(start)
	s.log.Info("Completed import request",
		slog.String("importId", im.ImportID),
		slog.String("url", im.URL),
		slog.String("contentType", result.ContentType),
		slog.Int("files", len(result.Files)),
		slog.Duration("processingTime", d))

	s.publishResult(ctx, messagebus.ImportResultMessage{
		ImportID: im.ImportID,
		Success:  true,
		URL:      im.URL,
		Result:   result,
	})
}

// publishResult publishes the outcome; delivery failures are logged, not
// retried, since the result is reproducible from the original request.
func (s *Importer) publishResult(ctx context.Context, m messagebus.ImportResultMessage) {
	if err := s.publisher.PublishImportResult(ctx, m); err != nil {
		s.log.Error("Failed to publish import result",
			slog.String("importId", m.ImportID),
			slog.Any("error", err))
	}
}
