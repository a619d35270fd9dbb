package graph

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

var resolverLookups = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "resolver_lookups_total",
		Help: "Entity resolution attempts by outcome",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(resolverLookups)
}

// lookupDelay is the pipeline-wide pause between successive knowledge-base
// lookups, a cooperative throttle for the remote service's fair-use policy.
const lookupDelay = 100 * time.Millisecond

// Resolver maps entity spans to Wikidata identities. Lookups run
// sequentially; a span that cannot be resolved is dropped, never retried.
type Resolver struct {
	kb     KnowledgeBase
	logger *logrus.Logger
	delay  time.Duration
}

// NewResolver creates a resolver backed by the given knowledge base.
func NewResolver(kb KnowledgeBase) *Resolver {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Resolver{
		kb:     kb,
		logger: logger,
		delay:  lookupDelay,
	}
}

// Resolve looks up a single span's identity. The second return value is
// false when the span did not resolve, whether because the knowledge base
// had no match, the match had no English label, or the lookup failed at the
// transport level. All three degrade the candidate set instead of aborting.
func (r *Resolver) Resolve(ctx context.Context, span EntitySpan) (ResolvedEntity, bool) {
	qid, err := r.kb.SearchEntity(ctx, span.Text)
	if err != nil {
		r.logger.WithError(err).WithField("text", span.Text).Warn("Entity search failed")
		resolverLookups.WithLabelValues("error").Inc()
		return ResolvedEntity{}, false
	}
	if qid == "" {
		r.logger.WithField("text", span.Text).Info("Entity not found in Wikidata")
		resolverLookups.WithLabelValues("no_match").Inc()
		return ResolvedEntity{}, false
	}

	label, err := r.kb.GetLabel(ctx, qid)
	if err != nil {
		r.logger.WithError(err).WithField("qid", qid).Warn("Label lookup failed")
		resolverLookups.WithLabelValues("error").Inc()
		return ResolvedEntity{}, false
	}
	if label == "" {
		r.logger.WithFields(logrus.Fields{
			"text": span.Text,
			"qid":  qid,
		}).Info("Entity found but has no English label")
		resolverLookups.WithLabelValues("no_label").Inc()
		return ResolvedEntity{}, false
	}

	resolverLookups.WithLabelValues("resolved").Inc()
	return ResolvedEntity{EntitySpan: span, QID: qid, Label: label}, true
}

// ResolveAll resolves spans in input order and returns only the entities
// that resolved, pausing between spans to throttle the remote service.
func (r *Resolver) ResolveAll(ctx context.Context, spans []EntitySpan) []ResolvedEntity {
	resolved := make([]ResolvedEntity, 0, len(spans))

	for i, span := range spans {
		if entity, ok := r.Resolve(ctx, span); ok {
			r.logger.WithFields(logrus.Fields{
				"text":  span.Text,
				"qid":   entity.QID,
				"label": entity.Label,
			}).Info("Resolved entity")
			resolved = append(resolved, entity)
		}

		if i < len(spans)-1 {
			time.Sleep(r.delay)
		}
	}

	return resolved
}
