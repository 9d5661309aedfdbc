package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	importerServiceName = "urlimport"
)

type ImporterMetricsInterface interface {
	RecordImport(contentKind string, success bool, duration float64)
	RecordFetch(statusCode int, reason string, duration float64)
	RecordPipelineStage(stage string, duration float64)
	RecordSynthesizedFiles(count int)
}

type NoopImporterMetrics struct{}

func NewNoopImporterMetrics() ImporterMetricsInterface {
	return &NoopImporterMetrics{}
}

func (n *NoopImporterMetrics) RecordImport(contentKind string, success bool, duration float64) {}
func (n *NoopImporterMetrics) RecordFetch(statusCode int, reason string, duration float64)     {}
func (n *NoopImporterMetrics) RecordPipelineStage(stage string, duration float64)              {}
func (n *NoopImporterMetrics) RecordSynthesizedFiles(count int)                                {}

type ImporterMetrics struct {
	*ServiceMetrics

	ImportsProcessedTotal *prometheus.CounterVec
	ImportDuration        *prometheus.HistogramVec

	FetchRequestsTotal *prometheus.CounterVec
	FetchDuration      prometheus.Histogram

	PipelineStageDuration *prometheus.HistogramVec

	SynthesizedFilesTotal prometheus.Counter
}

func NewImporterMetrics() *ImporterMetrics {
	baseMetrics := NewServiceMetrics(importerServiceName)

	importerMetrics := &ImporterMetrics{
		ServiceMetrics: baseMetrics,

		ImportsProcessedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "imports_processed_total",
				Help:        "Total number of URL imports processed",
				ConstLabels: prometheus.Labels{LabelService: importerServiceName},
			},
			[]string{LabelKind, LabelStatus},
		),

		ImportDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "import_duration_seconds",
				Help:        "Total pipeline time per import in seconds",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: prometheus.Labels{LabelService: importerServiceName},
			},
			[]string{LabelKind},
		),

		FetchRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "fetch_requests_total",
				Help:        "Total number of outbound content fetches",
				ConstLabels: prometheus.Labels{LabelService: importerServiceName},
			},
			[]string{LabelStatus, LabelReason},
		),

		FetchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:        "fetch_duration_seconds",
				Help:        "Content fetch duration in seconds",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: prometheus.Labels{LabelService: importerServiceName},
			},
		),

		PipelineStageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "pipeline_stage_duration_seconds",
				Help:        "Per-stage processing time in seconds",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: prometheus.Labels{LabelService: importerServiceName},
			},
			[]string{LabelStage},
		),

		SynthesizedFilesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "synthesized_files_total",
				Help:        "Total number of synthetic file records produced",
				ConstLabels: prometheus.Labels{LabelService: importerServiceName},
			},
		),
	}

	return importerMetrics
}

func (m *ImporterMetrics) MustRegisterImporter() {
	m.ServiceMetrics.MustRegister()

	prometheus.MustRegister(
		m.ImportsProcessedTotal,
		m.ImportDuration,
		m.FetchRequestsTotal,
		m.FetchDuration,
		m.PipelineStageDuration,
		m.SynthesizedFilesTotal,
	)
}

func (m *ImporterMetrics) RecordImport(contentKind string, success bool, duration float64) {
	status := "success"
	if !success {
		status = "error"
	}
	m.ImportsProcessedTotal.WithLabelValues(contentKind, status).Inc()
	m.ImportDuration.WithLabelValues(contentKind).Observe(duration)
}

func (m *ImporterMetrics) RecordFetch(statusCode int, reason string, duration float64) {
	if reason == "" {
		reason = "none"
	}
	m.FetchRequestsTotal.WithLabelValues(strconv.Itoa(statusCode), reason).Inc()
	m.FetchDuration.Observe(duration)
}

func (m *ImporterMetrics) RecordPipelineStage(stage string, duration float64) {
	m.PipelineStageDuration.WithLabelValues(stage).Observe(duration)
}

func (m *ImporterMetrics) RecordSynthesizedFiles(count int) {
	m.SynthesizedFilesTotal.Add(float64(count))
}
