package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/messagebus"
	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/pipeline"
	"github.com/yousuf64/shift"
)

// handleImport runs the import pipeline synchronously and returns the full
// result. Fetch failures map to 422, malformed requests map to 400; neither
// is a server error, so both are answered here rather than bubbled up to the
// error middleware.
func (a *API) handleImport(w http.ResponseWriter, r *http.Request, route shift.Route) error {
	ctx := r.Context()
	start := time.Now()

	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return writeError(w, http.StatusBadRequest, "failed to decode request: "+err.Error(), "")
	}

	validatedURL, err := validateURL(req.URL)
	if err != nil {
		return writeError(w, http.StatusBadRequest, "url validation failed: "+err.Error(), req.URL)
	}

	importID := generateID()
	a.log.Info("Starting import",
		slog.String("importId", importID),
		slog.String("url", validatedURL))

	result, err := a.pipeline.Run(ctx, pipeline.Request{
		URL:      validatedURL,
		MaxBytes: req.MaxBytes,
		Timeout:  time.Duration(req.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		a.publishResult(ctx, messagebus.ImportResultMessage{
			ImportID: importID,
			Success:  false,
			URL:      validatedURL,
			Error:    err.Error(),
		})

		var ferr *pipeline.FetchError
		if errors.As(err, &ferr) {
			return writeError(w, http.StatusUnprocessableEntity, ferr.Error(), validatedURL)
		}
		return err
	}

	a.publishResult(ctx, messagebus.ImportResultMessage{
		ImportID: importID,
		Success:  true,
		URL:      validatedURL,
		Result:   result,
	})

	a.log.Info("Import completed",
		slog.String("importId", importID),
		slog.String("url", validatedURL),
		slog.String("contentType", result.ContentType),
		slog.Int("files", len(result.Files)),
		slog.Duration("duration", time.Since(start)))

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(ImportResponse{
		Success:       true,
		ImportID:      importID,
		URL:           result.URL,
		ContentType:   result.ContentType,
		ContentLength: result.ContentLength,
		Analysis:      result.Analysis,
		Files:         result.Files,
	})
}

// publishResult notifies downstream consumers; the HTTP response does not
// depend on delivery, so failures are only logged.
func (a *API) publishResult(ctx context.Context, m messagebus.ImportResultMessage) {
	if a.mb == nil {
		return
	}
	if err := a.mb.PublishImportResult(ctx, m); err != nil {
		a.log.Error("Failed to publish import result",
			slog.String("importId", m.ImportID),
			slog.Any("error", err))
	}
}

// writeError writes the failure envelope with the given status code
func writeError(w http.ResponseWriter, status int, message, url string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   message,
		URL:     url,
	})
}
