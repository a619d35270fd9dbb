package graph

import (
	"context"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

var discoveredFacts = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "discoverer_facts_total",
		Help: "Directed facts discovered between entity pairs",
	},
)

func init() {
	prometheus.MustRegister(discoveredFacts)
}

// Discoverer queries the knowledge base for directed facts between two
// resolved identities. Discover(A,B) and Discover(B,A) are independent
// calls with independent result sets; nothing here assumes symmetry.
type Discoverer struct {
	kb     KnowledgeBase
	logger *logrus.Logger
}

// NewDiscoverer creates a discoverer backed by the given knowledge base.
func NewDiscoverer(kb KnowledgeBase) *Discoverer {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Discoverer{kb: kb, logger: logger}
}

// Discover fetches the subject's claims and keeps those whose target is
// exactly the object, resolving each surviving claim's property to a
// human-readable predicate label. A claim whose property cannot be labeled
// is excluded. Claims sharing a property are not deduplicated: every
// surviving occurrence becomes its own fact. Transport failures yield an
// empty fact list, never an error.
func (d *Discoverer) Discover(ctx context.Context, subjectQID, objectQID string) []RelationshipFact {
	claims, err := d.kb.GetClaims(ctx, subjectQID)
	if err != nil {
		d.logger.WithError(err).WithFields(logrus.Fields{
			"subject": subjectQID,
			"object":  objectQID,
		}).Warn("Claims lookup failed")
		return nil
	}

	// Stable property order keeps tie-breaking deterministic across runs.
	pids := make([]string, 0, len(claims))
	for pid := range claims {
		pids = append(pids, pid)
	}
	sort.Strings(pids)

	facts := make([]RelationshipFact, 0)
	for _, pid := range pids {
		for _, target := range claims[pid] {
			if target != objectQID {
				continue
			}

			label, err := d.kb.GetLabel(ctx, pid)
			if err != nil {
				d.logger.WithError(err).WithField("pid", pid).Warn("Property label lookup failed")
				continue
			}
			if label == "" {
				continue
			}

			facts = append(facts, RelationshipFact{Predicate: label, PredicatePID: pid})
			discoveredFacts.Inc()
		}
	}

	return facts
}

// SelectBest picks the fact with the shortest predicate label; ties go to
// the earliest fact. Returns nil for an empty input. The shortest label is
// a stand-in for the most general relation and is kept as-is.
func SelectBest(facts []RelationshipFact) *RelationshipFact {
	if len(facts) == 0 {
		return nil
	}

	best := &facts[0]
	for i := 1; i < len(facts); i++ {
		if len(facts[i].Predicate) < len(best.Predicate) {
			best = &facts[i]
		}
	}

	return best
}
