package graph

import "context"

// Entity type tags assigned by the span extractor.
const (
	EntityTypePerson   = "PERSON"
	EntityTypeGPE      = "GPE"
	EntityTypeOrg      = "ORG"
	EntityTypeFacility = "FAC"
	EntityTypeLocation = "LOC"
	EntityTypeEvent    = "EVENT"
	EntityTypeProduct  = "PRODUCT"
	EntityTypeNORP     = "NORP"
)

// EntitySpan is a candidate named-entity mention in the source text.
type EntitySpan struct {
	Text  string `json:"text"`
	Type  string `json:"type"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// ResolvedEntity is an entity span that has been matched to a Wikidata
// identity. Spans that fail resolution never become ResolvedEntity values.
type ResolvedEntity struct {
	EntitySpan
	QID   string `json:"qid"`
	Label string `json:"wikidata_label"`
}

// RelationshipFact is one directed claim returned by the knowledge base
// between two specific identities, before triplet assembly.
type RelationshipFact struct {
	Predicate    string `json:"predicate"`
	PredicatePID string `json:"predicate_pid"`
}

// RelationshipTriplet is the terminal artifact of the pipeline: one directed,
// labeled fact between two resolved entities, annotated with the in-degree of
// both endpoints in the run's relationship graph.
type RelationshipTriplet struct {
	Subject         string `json:"subject"`
	SubjectQID      string `json:"subject_qid"`
	Predicate       string `json:"predicate"`
	PredicatePID    string `json:"predicate_pid"`
	Object          string `json:"object"`
	ObjectQID       string `json:"object_qid"`
	SubjectInDegree int    `json:"subject_in_degree"`
	ObjectInDegree  int    `json:"object_in_degree"`
}

// SpanExtractor produces candidate entity spans from raw text. Start and End
// are byte offsets into the input text.
type SpanExtractor interface {
	Extract(ctx context.Context, text string) ([]EntitySpan, error)
}

// KnowledgeBase is the external knowledge-graph collaborator. All three
// calls are blocking network round trips and independently fallible; callers
// treat an error the same as an absent result.
type KnowledgeBase interface {
	// SearchEntity returns the identifier of the best match for the given
	// surface text, or "" when there is no match.
	SearchEntity(ctx context.Context, text string) (string, error)

	// GetLabel returns the English label for an entity or property
	// identifier, or "" when the identifier has no English label.
	GetLabel(ctx context.Context, id string) (string, error)

	// GetClaims returns the subject's outbound entity-valued claims as a
	// mapping from property ID to target entity IDs, one element per claim
	// occurrence.
	GetClaims(ctx context.Context, id string) (map[string][]string, error)
}
