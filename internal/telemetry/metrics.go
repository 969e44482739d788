package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all application metrics
type Metrics struct {
	RequestCounter     metric.Int64Counter
	RequestDuration    metric.Float64Histogram
	TokensUsed         metric.Int64Counter
	ExtractionDuration metric.Float64Histogram
	ChunksIndexed      metric.Int64Counter
	GenerationCounter  metric.Int64Counter
}

// InitMetrics initializes all application metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("qp-generator-backend")

	requestCounter, err := meter.Int64Counter(
		"http.requests.total",
		metric.WithDescription("Total HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	tokensUsed, err := meter.Int64Counter(
		"gemini.tokens.used",
		metric.WithDescription("Total Gemini tokens used"),
	)
	if err != nil {
		return nil, err
	}

	extractionDuration, err := meter.Float64Histogram(
		"document.extraction.duration",
		metric.WithDescription("Document text extraction duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	chunksIndexed, err := meter.Int64Counter(
		"vectorstore.chunks.indexed",
		metric.WithDescription("Total chunks added to the vector index"),
	)
	if err != nil {
		return nil, err
	}

	generationCounter, err := meter.Int64Counter(
		"generation.requests.total",
		metric.WithDescription("Total generation requests by task type"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCounter:     requestCounter,
		RequestDuration:    requestDuration,
		TokensUsed:         tokensUsed,
		ExtractionDuration: extractionDuration,
		ChunksIndexed:      chunksIndexed,
		GenerationCounter:  generationCounter,
	}, nil
}

// RecordRequest records HTTP request metrics
func (m *Metrics) RecordRequest(method, path, status string, duration float64) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.path", path),
		attribute.String("http.status", status),
	}

	m.RequestCounter.Add(context.Background(), 1, metric.WithAttributes(attrs...))
	m.RequestDuration.Record(context.Background(), duration, metric.WithAttributes(attrs...))
}

// RecordTokensUsed records Gemini token usage
func (m *Metrics) RecordTokensUsed(tokens int64, model string) {
	attrs := []attribute.KeyValue{
		attribute.String("gemini.model", model),
	}

	m.TokensUsed.Add(context.Background(), tokens, metric.WithAttributes(attrs...))
}

// RecordExtraction records document extraction metrics
func (m *Metrics) RecordExtraction(duration float64, format, status string) {
	attrs := []attribute.KeyValue{
		attribute.String("document.format", format),
		attribute.String("document.status", status),
	}

	m.ExtractionDuration.Record(context.Background(), duration, metric.WithAttributes(attrs...))
}

// RecordChunksIndexed records chunks inserted for a subject
func (m *Metrics) RecordChunksIndexed(count int64, subject string) {
	attrs := []attribute.KeyValue{
		attribute.String("subject", subject),
	}

	m.ChunksIndexed.Add(context.Background(), count, metric.WithAttributes(attrs...))
}

// RecordGeneration records a generation request by task type
func (m *Metrics) RecordGeneration(task, status string) {
	attrs := []attribute.KeyValue{
		attribute.String("generation.task", task),
		attribute.String("generation.status", status),
	}

	m.GenerationCounter.Add(context.Background(), 1, metric.WithAttributes(attrs...))
}
