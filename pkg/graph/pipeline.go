package graph

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/miahuynhh/entity-relationship-extractor/pkg/graph/metrics"
)

var (
	pipelineDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pipeline_run_duration_seconds",
			Help: "Time spent on a full extraction run",
		},
		[]string{"status"},
	)

	tripletsEmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_triplets_emitted_total",
			Help: "Relationship triplets emitted across all runs",
		},
	)
)

func init() {
	prometheus.MustRegister(pipelineDuration)
	prometheus.MustRegister(tripletsEmitted)
}

// Result holds everything one extraction run produced.
type Result struct {
	RunID       string                `json:"run_id"`
	Entities    []ResolvedEntity      `json:"entities"`
	Triplets    []RelationshipTriplet `json:"relationships"`
	GeneratedAt time.Time             `json:"generated_at"`
}

// Extractor is the pipeline orchestrator: span extraction, correction,
// resolution, pairwise relationship discovery, and in-degree annotation.
// Runs are sequential; the orchestrator holds no state across runs.
type Extractor struct {
	spans      SpanExtractor
	corrector  *Corrector
	resolver   *Resolver
	discoverer *Discoverer
	logger     *logrus.Logger
}

// NewExtractor wires an extractor from its two external collaborators.
func NewExtractor(spans SpanExtractor, kb KnowledgeBase) *Extractor {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Extractor{
		spans:      spans,
		corrector:  NewCorrector(),
		resolver:   NewResolver(kb),
		discoverer: NewDiscoverer(kb),
		logger:     logger,
	}
}

// Run extracts relationship triplets from text. Fewer than two extracted or
// resolved entities is a normal empty outcome, not an error; per-call
// network failures degrade the result instead of aborting the run.
func (e *Extractor) Run(ctx context.Context, text string) []RelationshipTriplet {
	return e.Extract(ctx, text).Triplets
}

// Extract runs the full pipeline and returns the resolved entities alongside
// the annotated triplets.
func (e *Extractor) Extract(ctx context.Context, text string) *Result {
	timer := prometheus.NewTimer(pipelineDuration.WithLabelValues("run"))
	defer timer.ObserveDuration()

	result := &Result{
		RunID:       uuid.New().String(),
		Entities:    make([]ResolvedEntity, 0),
		Triplets:    make([]RelationshipTriplet, 0),
		GeneratedAt: time.Now(),
	}
	log := e.logger.WithField("run_id", result.RunID)

	spans, err := e.spans.Extract(ctx, text)
	if err != nil {
		log.WithError(err).Error("Span extraction failed")
		return result
	}
	if len(spans) < 2 {
		log.WithField("span_count", len(spans)).Info("Need at least 2 entities to find relationships")
		return result
	}

	corrected := e.corrector.Correct(text, spans)
	resolved := e.resolver.ResolveAll(ctx, corrected)
	if len(resolved) < 2 {
		log.WithField("resolved_count", len(resolved)).Info("Need at least 2 entities with Wikidata identities")
		return result
	}
	result.Entities = resolved

	log.WithFields(logrus.Fields{
		"span_count":     len(corrected),
		"resolved_count": len(resolved),
	}).Info("Discovering pairwise relationships")

	for i := 0; i < len(resolved); i++ {
		for j := i + 1; j < len(resolved); j++ {
			subject, object := resolved[i], resolved[j]

			if fact := SelectBest(e.discoverer.Discover(ctx, subject.QID, object.QID)); fact != nil {
				result.Triplets = append(result.Triplets, newTriplet(subject, *fact, object))
			}
			if fact := SelectBest(e.discoverer.Discover(ctx, object.QID, subject.QID)); fact != nil {
				result.Triplets = append(result.Triplets, newTriplet(object, *fact, subject))
			}
		}
	}

	e.annotateInDegrees(result)
	tripletsEmitted.Add(float64(len(result.Triplets)))

	log.WithField("triplet_count", len(result.Triplets)).Info("Extraction run completed")
	return result
}

// annotateInDegrees builds the run's relationship graph and stamps every
// triplet endpoint with the node's in-degree. Every resolved entity becomes
// a node first, so entities without edges report degree 0 rather than being
// absent.
func (e *Extractor) annotateInDegrees(result *Result) {
	g := NewRelationshipGraph()
	for _, entity := range result.Entities {
		g.AddNode(entity.QID)
	}
	for _, triplet := range result.Triplets {
		g.AddEdge(triplet.SubjectQID, triplet.ObjectQID, triplet.Predicate)
	}

	for i := range result.Triplets {
		result.Triplets[i].SubjectInDegree = g.InDegree(result.Triplets[i].SubjectQID)
		result.Triplets[i].ObjectInDegree = g.InDegree(result.Triplets[i].ObjectQID)
	}

	metrics.RecordGraphSize(g.NodeCount(), len(g.Edges()))
}

func newTriplet(subject ResolvedEntity, fact RelationshipFact, object ResolvedEntity) RelationshipTriplet {
	return RelationshipTriplet{
		Subject:      subject.Label,
		SubjectQID:   subject.QID,
		Predicate:    fact.Predicate,
		PredicatePID: fact.PredicatePID,
		Object:       object.Label,
		ObjectQID:    object.QID,
	}
}
