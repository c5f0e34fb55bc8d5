// Package driver stores concepts, their names and accessions, and their
// resolved labels in a bolt-compatible graph database.
package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// GraphDriver is the concept store used by the labeler. Queries are the
// Cypher constants in queries.go.
type GraphDriver interface {
	// ExecuteQuery runs a query and returns all of its records.
	ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error)
	// BuildIndices creates the concept lookup indices. Existing indices are
	// not an error.
	BuildIndices(ctx context.Context) error
	Close(ctx context.Context) error
}
