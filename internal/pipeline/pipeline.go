package pipeline

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/config"
	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/metrics"
	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/tracing"
)

// Pipeline runs the fetch-classify-analyze-synthesize sequence for a single
// URL. It holds no mutable state, so one Pipeline may serve concurrent
// callers.
type Pipeline struct {
	client  *http.Client
	metrics metrics.ImporterMetricsInterface
	log     *slog.Logger
	cfg     config.PipelineConfig
}

// Option configures the Pipeline
type Option func(*Pipeline)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(p *Pipeline) {
		p.client = client
	}
}

// WithMetrics sets the metrics collector
func WithMetrics(m metrics.ImporterMetricsInterface) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// WithLogger sets the logger
func WithLogger(log *slog.Logger) Option {
	return func(p *Pipeline) {
		p.log = log
	}
}

// WithConfig sets the resource budgets
func WithConfig(cfg config.PipelineConfig) Option {
	return func(p *Pipeline) {
		p.cfg = cfg
	}
}

// New creates a pipeline with default budgets and optional overrides.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		client:  &http.Client{},
		metrics: metrics.NewNoopImporterMetrics(),
		log:     slog.Default(),
		cfg:     config.NewPipelineConfig(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Run executes the full pipeline for one request. Fetch-layer failures are
// returned as a *FetchError; analyzer-layer failures degrade inside the
// analysis record and never surface as an error.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	ctx, span := tracing.StartSpan(ctx, "pipeline.run")
	defer span.End()

	content, ferr := p.fetch(ctx, req)
	if ferr != nil {
		p.log.Warn("Content fetch failed",
			slog.String("url", req.URL),
			slog.String("reason", string(ferr.Reason)),
			slog.String("message", ferr.Message))
		p.metrics.RecordImport("none", false, time.Since(start).Seconds())
		tracing.SetError(ctx, ferr)
		return nil, ferr
	}

	kind := Classify(content.ContentType)

	p.log.Info("Content fetched",
		slog.String("url", req.URL),
		slog.String("contentType", content.ContentType),
		slog.String("kind", string(kind)),
		slog.Int("bytes", content.ByteLength))

	analysis := p.analyze(kind, content.Text)

	synthStart := time.Now()
	files := synthesizeFiles(analysis, content.Text, req.URL)
	p.metrics.RecordPipelineStage("synthesize", time.Since(synthStart).Seconds())
	p.metrics.RecordSynthesizedFiles(len(files))

	p.metrics.RecordImport(string(kind), true, time.Since(start).Seconds())

	return &Result{
		URL:           req.URL,
		ContentType:   content.ContentType,
		ContentLength: content.ByteLength,
		Analysis:      analysis,
		Files:         files,
	}, nil
}

// analyze dispatches to the variant analyzer for the classified kind.
func (p *Pipeline) analyze(kind ContentKind, rawText string) ContentAnalysis {
	start := time.Now()
	defer func() {
		p.metrics.RecordPipelineStage("analyze_"+string(kind), time.Since(start).Seconds())
	}()

	analysis := ContentAnalysis{Kind: kind}

	switch kind {
	case KindHTML:
		analysis.HTML = analyzeHTML(rawText)
		if analysis.HTML.Error != "" {
			p.log.Warn("HTML analysis degraded", slog.String("error", analysis.HTML.Error))
		}
	case KindJSON:
		analysis.JSON = analyzeJSON(rawText)
	case KindCSS:
		analysis.CSS = analyzeCSS(rawText)
	case KindJavaScript:
		analysis.JavaScript = analyzeJavaScript(rawText)
	default:
		analysis.Kind = KindText
		analysis.Text = analyzeText(rawText)
	}

	return analysis
}
