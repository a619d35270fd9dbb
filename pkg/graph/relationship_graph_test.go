package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInDegreeCountsIncomingEdges(t *testing.T) {
	g := NewRelationshipGraph()
	g.AddNode("Q1")
	g.AddNode("Q2")
	g.AddNode("Q3")
	g.AddEdge("Q1", "Q2", "country")
	g.AddEdge("Q3", "Q2", "capital of")

	assert.Equal(t, 2, g.InDegree("Q2"))
	assert.Equal(t, 0, g.InDegree("Q1"))
	assert.Equal(t, 0, g.InDegree("Q3"))
}

func TestParallelEdgesEachInflateInDegree(t *testing.T) {
	g := NewRelationshipGraph()
	g.AddEdge("Q1", "Q2", "country")
	g.AddEdge("Q1", "Q2", "citizen of")

	assert.Equal(t, 2, g.InDegree("Q2"))
	assert.Len(t, g.Edges(), 2)
}

func TestIsolatedNodeReportsZeroNotAbsence(t *testing.T) {
	g := NewRelationshipGraph()
	g.AddNode("Q42")

	assert.True(t, g.HasNode("Q42"))
	assert.Equal(t, 0, g.InDegree("Q42"))
}

func TestAddEdgeRegistersEndpointsAsNodes(t *testing.T) {
	g := NewRelationshipGraph()
	g.AddEdge("Q1", "Q2", "country")

	assert.True(t, g.HasNode("Q1"))
	assert.True(t, g.HasNode("Q2"))
	assert.Equal(t, 2, g.NodeCount())
}
