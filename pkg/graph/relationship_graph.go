package graph

// GraphEdge is one directed subject→object edge in a run's relationship
// graph. Parallel edges are kept; each one counts toward the target's
// in-degree.
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// RelationshipGraph is the transient directed graph built once per pipeline
// run to compute in-degree. Every resolved entity is a node even when it has
// no incident edges, so degree lookups never fail.
type RelationshipGraph struct {
	nodes    map[string]struct{}
	edges    []GraphEdge
	inDegree map[string]int
}

// NewRelationshipGraph creates an empty relationship graph.
func NewRelationshipGraph() *RelationshipGraph {
	return &RelationshipGraph{
		nodes:    make(map[string]struct{}),
		edges:    make([]GraphEdge, 0),
		inDegree: make(map[string]int),
	}
}

// AddNode registers an entity identifier as a graph node.
func (g *RelationshipGraph) AddNode(id string) {
	g.nodes[id] = struct{}{}
}

// AddEdge appends a directed edge and bumps the target's in-degree. Edges
// are never deduplicated.
func (g *RelationshipGraph) AddEdge(source, target, edgeType string) {
	g.nodes[source] = struct{}{}
	g.nodes[target] = struct{}{}
	g.edges = append(g.edges, GraphEdge{Source: source, Target: target, Type: edgeType})
	g.inDegree[target]++
}

// InDegree returns the number of edges terminating at the node. Nodes with
// no incoming edges report 0.
func (g *RelationshipGraph) InDegree(id string) int {
	return g.inDegree[id]
}

// HasNode reports whether the identifier is present in the node set.
func (g *RelationshipGraph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// NodeCount returns the number of nodes in the graph.
func (g *RelationshipGraph) NodeCount() int {
	return len(g.nodes)
}

// Edges returns the edge list in insertion order.
func (g *RelationshipGraph) Edges() []GraphEdge {
	return g.edges
}
