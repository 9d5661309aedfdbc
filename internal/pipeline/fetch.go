package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// FetchReason classifies why a fetch failed.
type FetchReason string

const (
	ReasonInvalidScheme FetchReason = "invalid_scheme"
	ReasonHTTPError     FetchReason = "http_error"
	ReasonTooLarge      FetchReason = "too_large"
	ReasonTimeout       FetchReason = "timeout"
	ReasonNetwork       FetchReason = "network_error"
)

// FetchError is the structured failure returned by the fetch stage. It is
// the only error the pipeline ever returns to callers.
type FetchError struct {
	Reason     FetchReason
	StatusCode int
	Message    string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed (%s): %s", e.Reason, e.Message)
}

// FetchedContent is the raw material handed to the analyzers.
type FetchedContent struct {
	Text        string
	ContentType string
	ByteLength  int
}

// fetch performs a single bounded GET. The byte budget is enforced twice:
// a cheap precheck on the declared Content-Length, then incremental counting
// while the body streams, so a server that omits or misreports the header
// cannot blow past the cap.
func (p *Pipeline) fetch(ctx context.Context, req Request) (*FetchedContent, *FetchError) {
	maxBytes := req.MaxBytes
	if maxBytes <= 0 {
		maxBytes = p.cfg.MaxBytes
	}
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = p.cfg.FetchTimeout
	}

	parsed, err := url.Parse(req.URL)
	if err != nil {
		return nil, &FetchError{Reason: ReasonInvalidScheme, Message: fmt.Sprintf("invalid URL: %v", err)}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, &FetchError{Reason: ReasonInvalidScheme, Message: fmt.Sprintf("unsupported scheme %q: only http and https are allowed", parsed.Scheme)}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, &FetchError{Reason: ReasonNetwork, Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	httpReq.Header.Set("User-Agent", p.cfg.UserAgent)

	start := time.Now()
	resp, err := p.client.Do(httpReq)
	if err != nil {
		ferr := classifyTransportError(err)
		p.metrics.RecordFetch(0, string(ferr.Reason), time.Since(start).Seconds())
		return nil, ferr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		ferr := &FetchError{
			Reason:     ReasonHTTPError,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
		p.metrics.RecordFetch(resp.StatusCode, string(ReasonHTTPError), time.Since(start).Seconds())
		return nil, ferr
	}

	// Declared-size precheck: abort before buffering anything.
	if resp.ContentLength > maxBytes {
		ferr := &FetchError{
			Reason:  ReasonTooLarge,
			Message: fmt.Sprintf("declared content length %d exceeds budget of %d bytes", resp.ContentLength, maxBytes),
		}
		p.metrics.RecordFetch(resp.StatusCode, string(ReasonTooLarge), time.Since(start).Seconds())
		return nil, ferr
	}

	// Read at most one byte past the budget; landing there means the body
	// crossed the cap regardless of what the header claimed.
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		ferr := classifyTransportError(err)
		p.metrics.RecordFetch(resp.StatusCode, string(ferr.Reason), time.Since(start).Seconds())
		return nil, ferr
	}
	if int64(len(body)) > maxBytes {
		ferr := &FetchError{
			Reason:  ReasonTooLarge,
			Message: fmt.Sprintf("response body exceeds budget of %d bytes", maxBytes),
		}
		p.metrics.RecordFetch(resp.StatusCode, string(ReasonTooLarge), time.Since(start).Seconds())
		return nil, ferr
	}

	p.metrics.RecordFetch(resp.StatusCode, "", time.Since(start).Seconds())

	return &FetchedContent{
		Text:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		ByteLength:  len(body),
	}, nil
}

// classifyTransportError maps client/read errors onto the fetch taxonomy.
func classifyTransportError(err error) *FetchError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &FetchError{Reason: ReasonTimeout, Message: "request timed out"}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &FetchError{Reason: ReasonTimeout, Message: "request timed out"}
	}

	return &FetchError{Reason: ReasonNetwork, Message: fmt.Sprintf("request failed: %v", err)}
}
