package processors

import (
	"context"
	"strings"

	"github.com/jdkato/prose/v2"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/miahuynhh/entity-relationship-extractor/pkg/graph"
)

var (
	processingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "nlp_processing_duration_seconds",
			Help: "Time spent extracting entity spans",
		},
		[]string{"processor_type"},
	)

	entityCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlp_entities_extracted_total",
			Help: "Number of entity spans extracted",
		},
		[]string{"entity_type"},
	)
)

func init() {
	prometheus.MustRegister(processingDuration)
	prometheus.MustRegister(entityCount)
}

// NLPExtractor implements graph.SpanExtractor using the prose NER model.
type NLPExtractor struct {
	logger *logrus.Logger
}

// NewNLPExtractor creates the extractor and warms the underlying model. A
// model that cannot load is a process-level initialization failure, so it
// surfaces here rather than on the first extraction call.
func NewNLPExtractor() (*NLPExtractor, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if _, err := prose.NewDocument("warmup"); err != nil {
		return nil, errors.Wrap(err, "failed to load NLP model")
	}

	return &NLPExtractor{logger: logger}, nil
}

// Extract returns the candidate entity spans found in text, with byte
// offsets into the input. Blank input yields no spans.
func (p *NLPExtractor) Extract(ctx context.Context, text string) ([]graph.EntitySpan, error) {
	timer := prometheus.NewTimer(processingDuration.WithLabelValues("nlp"))
	defer timer.ObserveDuration()

	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		p.logger.WithError(err).Error("Failed to create prose document")
		return nil, err
	}

	spans := make([]graph.EntitySpan, 0)
	cursor := 0
	for _, ent := range doc.Entities() {
		start, end, ok := locateMention(text, ent.Text, cursor)
		if !ok {
			p.logger.WithField("text", ent.Text).Warn("Entity mention not found in source text")
			continue
		}
		cursor = end

		spans = append(spans, graph.EntitySpan{
			Text:  ent.Text,
			Type:  ent.Label,
			Start: start,
			End:   end,
		})
		entityCount.WithLabelValues(ent.Label).Inc()
	}

	p.logger.WithFields(logrus.Fields{
		"content_length": len(text),
		"span_count":     len(spans),
	}).Info("NLP span extraction completed")

	return spans, nil
}

// locateMention finds the byte offsets of a mention, scanning forward from
// the cursor first so repeated mentions map to successive occurrences.
func locateMention(text, mention string, cursor int) (int, int, bool) {
	if idx := strings.Index(text[cursor:], mention); idx >= 0 {
		start := cursor + idx
		return start, start + len(mention), true
	}
	if idx := strings.Index(text, mention); idx >= 0 {
		return idx, idx + len(mention), true
	}
	return 0, 0, false
}
