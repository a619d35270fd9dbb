package graph

import (
	"regexp"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"
)

// collapseRule replaces every span overlapping a matched region of the source
// text with a single canonical span covering that region.
type collapseRule struct {
	pattern    *regexp.Regexp
	text       string
	entityType string
}

// aliasRule rewrites a span's text when the span contains the given fragment.
type aliasRule struct {
	contains    string
	replacement string
}

// typeRule rewrites a span's type when the span text contains the given
// fragment.
type typeRule struct {
	contains   string
	entityType string
}

var (
	collapseRules = []collapseRule{
		// Full formal name with a quoted nickname trips the NER model into
		// emitting three fragments; collapse them into the known short name.
		{
			pattern:    regexp.MustCompile(`Charles Dillon\s+"Casey"\s+Stengel`),
			text:       "Casey Stengel",
			entityType: EntityTypePerson,
		},
	}

	aliasRules = []aliasRule{
		// The franchise Wikidata knows is the Los Angeles one.
		{contains: "Brooklyn Dodgers", replacement: "Los Angeles Dodgers"},
	}

	typeRules = []typeRule{
		{contains: "Baseball Hall of Fame", entityType: EntityTypeFacility},
	}
)

// Corrector applies deterministic text-pattern fixes and deduplication to
// raw entity spans before resolution. Rule order matters: name collapse runs
// first, then alias substitution, then type correction; later rules assume
// earlier ones already ran.
type Corrector struct {
	logger *logrus.Logger
}

// NewCorrector creates a span corrector.
func NewCorrector() *Corrector {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Corrector{logger: logger}
}

// Correct returns the corrected span set, deduplicated by normalized text and
// sorted ascending by start offset. It never fails; an absent pattern match
// is a no-op.
func (c *Corrector) Correct(text string, spans []EntitySpan) []EntitySpan {
	corrected := c.applyCollapses(text, spans)

	for i := range corrected {
		for _, rule := range aliasRules {
			if strings.Contains(corrected[i].Text, rule.contains) {
				corrected[i].Text = rule.replacement
			}
		}
		for _, rule := range typeRules {
			if strings.Contains(corrected[i].Text, rule.contains) {
				corrected[i].Type = rule.entityType
			}
		}
	}

	corrected = dedupeSpans(corrected)

	sort.SliceStable(corrected, func(i, j int) bool {
		return corrected[i].Start < corrected[j].Start
	})

	return corrected
}

func (c *Corrector) applyCollapses(text string, spans []EntitySpan) []EntitySpan {
	result := spans

	for _, rule := range collapseRules {
		loc := rule.pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		start, end := loc[0], loc[1]

		collapsed := make([]EntitySpan, 0, len(result)+1)
		collapsed = append(collapsed, EntitySpan{
			Text:  rule.text,
			Type:  rule.entityType,
			Start: start,
			End:   end,
		})
		for _, span := range result {
			if start <= span.Start && span.Start < end || start < span.End && span.End <= end {
				continue
			}
			collapsed = append(collapsed, span)
		}

		c.logger.WithFields(logrus.Fields{
			"canonical": rule.text,
			"removed":   len(result) + 1 - len(collapsed),
		}).Debug("Collapsed overlapping spans")

		result = collapsed
	}

	return result
}

// dedupeSpans drops spans whose lowercased, trimmed text was already seen.
// First occurrence in input order wins.
func dedupeSpans(spans []EntitySpan) []EntitySpan {
	seen := mapset.NewSet[string]()
	unique := make([]EntitySpan, 0, len(spans))

	for _, span := range spans {
		key := strings.ToLower(strings.TrimSpace(span.Text))
		if seen.Contains(key) {
			continue
		}
		seen.Add(key)
		unique = append(unique, span)
	}

	return unique
}
