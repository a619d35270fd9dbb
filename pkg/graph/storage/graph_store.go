package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/miahuynhh/entity-relationship-extractor/pkg/graph"
)

// ResultStore defines an interface for persisting extraction results.
type ResultStore interface {
	// StoreResult persists one extraction run's entities and triplets.
	StoreResult(ctx context.Context, result *graph.Result) error

	// LoadResult loads a previously stored extraction result.
	LoadResult(ctx context.Context) (*graph.Result, error)
}

// JSONResultStore implements ResultStore using a JSON file.
type JSONResultStore struct {
	filePath string
}

// NewJSONResultStore creates a new JSON result store.
func NewJSONResultStore(filePath string) *JSONResultStore {
	return &JSONResultStore{
		filePath: filePath,
	}
}

// StoreResult writes the result as indented JSON.
func (s *JSONResultStore) StoreResult(ctx context.Context, result *graph.Result) error {
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.filePath, data, 0644)
}

// LoadResult reads a result back from the JSON file.
func (s *JSONResultStore) LoadResult(ctx context.Context) (*graph.Result, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return nil, err
	}

	var result graph.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
