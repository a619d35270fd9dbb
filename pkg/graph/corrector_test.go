package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrectCollapsesQuotedNickname(t *testing.T) {
	text := `Charles Dillon "Casey" Stengel was a baseball manager.`
	spans := []EntitySpan{
		{Text: "Charles Dillon", Type: EntityTypePerson, Start: 0, End: 14},
		{Text: "Casey", Type: EntityTypePerson, Start: 16, End: 21},
		{Text: "Stengel", Type: EntityTypePerson, Start: 23, End: 30},
	}

	corrected := NewCorrector().Correct(text, spans)

	require.Len(t, corrected, 1)
	assert.Equal(t, "Casey Stengel", corrected[0].Text)
	assert.Equal(t, EntityTypePerson, corrected[0].Type)
	assert.Equal(t, 0, corrected[0].Start)
	assert.Equal(t, 30, corrected[0].End)
}

func TestCorrectCollapseKeepsNonOverlappingSpans(t *testing.T) {
	text := `Charles Dillon "Casey" Stengel managed the New York Yankees.`
	spans := []EntitySpan{
		{Text: "Charles Dillon", Type: EntityTypePerson, Start: 0, End: 14},
		{Text: "Stengel", Type: EntityTypePerson, Start: 23, End: 30},
		{Text: "New York Yankees", Type: EntityTypeOrg, Start: 43, End: 59},
	}

	corrected := NewCorrector().Correct(text, spans)

	require.Len(t, corrected, 2)
	assert.Equal(t, "Casey Stengel", corrected[0].Text)
	assert.Equal(t, "New York Yankees", corrected[1].Text)
}

func TestCorrectRewritesKnownAlias(t *testing.T) {
	text := "He played for the Brooklyn Dodgers in 1912."
	spans := []EntitySpan{
		{Text: "Brooklyn Dodgers", Type: EntityTypeOrg, Start: 18, End: 34},
	}

	corrected := NewCorrector().Correct(text, spans)

	require.Len(t, corrected, 1)
	assert.Equal(t, "Los Angeles Dodgers", corrected[0].Text)
	assert.Equal(t, EntityTypeOrg, corrected[0].Type)
}

func TestCorrectFixesMiscategorizedType(t *testing.T) {
	text := "He was elected to the Baseball Hall of Fame in 1966."
	spans := []EntitySpan{
		{Text: "the Baseball Hall of Fame", Type: EntityTypeOrg, Start: 18, End: 43},
	}

	corrected := NewCorrector().Correct(text, spans)

	require.Len(t, corrected, 1)
	assert.Equal(t, EntityTypeFacility, corrected[0].Type)
}

func TestCorrectDeduplicatesFirstOccurrenceWins(t *testing.T) {
	text := "Stengel and stengel and  Stengel "
	spans := []EntitySpan{
		{Text: "Stengel", Type: EntityTypePerson, Start: 0, End: 7},
		{Text: "stengel", Type: EntityTypeOrg, Start: 12, End: 19},
		{Text: " Stengel ", Type: EntityTypePerson, Start: 24, End: 33},
	}

	corrected := NewCorrector().Correct(text, spans)

	require.Len(t, corrected, 1)
	assert.Equal(t, "Stengel", corrected[0].Text)
	assert.Equal(t, EntityTypePerson, corrected[0].Type)
	assert.Equal(t, 0, corrected[0].Start)
}

func TestCorrectSortsByStartOffset(t *testing.T) {
	text := "Alan Turing worked in the United Kingdom at Bletchley Park."
	spans := []EntitySpan{
		{Text: "Bletchley Park", Type: EntityTypeFacility, Start: 44, End: 58},
		{Text: "Alan Turing", Type: EntityTypePerson, Start: 0, End: 11},
		{Text: "United Kingdom", Type: EntityTypeGPE, Start: 26, End: 40},
	}

	corrected := NewCorrector().Correct(text, spans)

	require.Len(t, corrected, 3)
	for i := 1; i < len(corrected); i++ {
		assert.LessOrEqual(t, corrected[i-1].Start, corrected[i].Start)
	}
}

func TestCorrectNoMatchingPatternIsNoOp(t *testing.T) {
	text := "Alan Turing was from the United Kingdom."
	spans := []EntitySpan{
		{Text: "Alan Turing", Type: EntityTypePerson, Start: 0, End: 11},
		{Text: "United Kingdom", Type: EntityTypeGPE, Start: 25, End: 39},
	}

	corrected := NewCorrector().Correct(text, spans)

	assert.Equal(t, spans, corrected)
}

func TestCorrectEmptyInput(t *testing.T) {
	corrected := NewCorrector().Correct("some text", nil)
	assert.Empty(t, corrected)
}
