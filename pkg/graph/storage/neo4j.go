package storage

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v4/neo4j"

	"github.com/miahuynhh/entity-relationship-extractor/pkg/graph"
)

// Neo4jResultStore persists extraction results to a Neo4j database:
// resolved entities as Entity nodes keyed by QID, triplets as RELATES
// edges carrying the predicate. Off the pipeline's critical path; runs
// that do not configure a graph database never construct one.
type Neo4jResultStore struct {
	driver neo4j.Driver
	uri    string
}

// NewNeo4jResultStore creates a store connected to the given Neo4j instance.
func NewNeo4jResultStore(uri, username, password string) (*Neo4jResultStore, error) {
	driver, err := neo4j.NewDriver(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %v", err)
	}

	return &Neo4jResultStore{
		driver: driver,
		uri:    uri,
	}, nil
}

// Close releases the underlying driver.
func (s *Neo4jResultStore) Close() error {
	if s.driver != nil {
		return s.driver.Close()
	}
	return nil
}

// StoreResult writes the run's entities and triplets in one transaction.
// Entities are merged on QID so repeated runs do not duplicate nodes;
// triplet edges are created per run, preserving parallel edges.
func (s *Neo4jResultStore) StoreResult(ctx context.Context, result *graph.Result) error {
	session := s.driver.NewSession(neo4j.SessionConfig{})
	defer session.Close()

	_, err := session.WriteTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		for _, entity := range result.Entities {
			params := map[string]interface{}{
				"qid":   entity.QID,
				"label": entity.Label,
				"type":  entity.Type,
				"text":  entity.Text,
			}

			_, err := tx.Run(`
				MERGE (e:Entity {qid: $qid})
				SET e.label = $label,
					e.type = $type,
					e.text = $text,
					e.updated_at = datetime()
			`, params)
			if err != nil {
				return nil, err
			}
		}

		for _, triplet := range result.Triplets {
			params := map[string]interface{}{
				"subjectQID":   triplet.SubjectQID,
				"objectQID":    triplet.ObjectQID,
				"predicate":    triplet.Predicate,
				"predicatePID": triplet.PredicatePID,
				"runID":        result.RunID,
			}

			_, err := tx.Run(`
				MATCH (from:Entity {qid: $subjectQID})
				MATCH (to:Entity {qid: $objectQID})
				CREATE (from)-[r:RELATES {
					predicate: $predicate,
					predicate_pid: $predicatePID,
					run_id: $runID,
					created_at: datetime()
				}]->(to)
			`, params)
			if err != nil {
				return nil, err
			}
		}

		return nil, nil
	})

	return err
}

// LoadResult is not supported by the Neo4j store; results are written for
// downstream graph tooling, not read back by the pipeline.
func (s *Neo4jResultStore) LoadResult(ctx context.Context) (*graph.Result, error) {
	return nil, fmt.Errorf("loading results from Neo4j is not supported")
}
