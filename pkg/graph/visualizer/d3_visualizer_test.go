package visualizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miahuynhh/entity-relationship-extractor/pkg/graph"
)

func TestVisualizeWritesHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viz", "graph.html")

	result := &graph.Result{
		Entities: []graph.ResolvedEntity{
			{
				EntitySpan: graph.EntitySpan{Text: "Alan Turing", Type: graph.EntityTypePerson},
				QID:        "Q7251",
				Label:      "Alan Turing",
			},
			{
				EntitySpan: graph.EntitySpan{Text: "United Kingdom", Type: graph.EntityTypeGPE},
				QID:        "Q145",
				Label:      "United Kingdom",
			},
		},
		Triplets: []graph.RelationshipTriplet{
			{
				SubjectQID: "Q7251",
				Predicate:  "country of citizenship",
				ObjectQID:  "Q145",
			},
		},
	}

	require.NoError(t, NewD3Visualizer(path).Visualize(result))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	html := string(content)
	assert.Contains(t, html, "d3.v7.min.js")
	assert.Contains(t, html, "Q7251")
	assert.Contains(t, html, "country of citizenship")
}

func TestVisualizeEmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.html")

	require.NoError(t, NewD3Visualizer(path).Visualize(&graph.Result{}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
