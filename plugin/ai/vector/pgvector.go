package vector

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/pgvector/pgvector-go"
	"github.com/pkg/errors"
)

// PGVectorIndex persists embeddings in PostgreSQL using the pgvector
// extension. Used when the store runs on the postgres driver.
type PGVectorIndex struct {
	db         *sql.DB
	dimensions int
}

// NewPGVectorIndex creates the index and its backing table. Fails if the
// pgvector extension is not installed.
func NewPGVectorIndex(ctx context.Context, db *sql.DB, dimensions int) (*PGVectorIndex, error) {
	if _, err := db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return nil, errors.Wrap(err, "pgvector extension is not available")
	}

	if dimensions <= 0 {
		dimensions = 1536
	}
	stmt := `CREATE TABLE IF NOT EXISTS memory_embedding (
		doc_id TEXT PRIMARY KEY,
		embedding vector(` + strconv.Itoa(dimensions) + `) NOT NULL,
		text TEXT NOT NULL,
		created_ts BIGINT NOT NULL DEFAULT extract(epoch from now())
	)`
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return nil, errors.Wrap(err, "failed to create memory_embedding table")
	}

	return &PGVectorIndex{db: db, dimensions: dimensions}, nil
}

// Add stores a vector with its source text under the given document ID.
func (p *PGVectorIndex) Add(ctx context.Context, docID string, vec []float32, text string) error {
	stmt := `
		INSERT INTO memory_embedding (doc_id, embedding, text)
		VALUES ($1, $2, $3)
		ON CONFLICT (doc_id)
		DO UPDATE SET embedding = EXCLUDED.embedding, text = EXCLUDED.text
	`
	if _, err := p.db.ExecContext(ctx, stmt, docID, pgvector.NewVector(vec), text); err != nil {
		return errors.Wrap(err, "failed to upsert embedding")
	}
	return nil
}

// Search returns the k most similar entries using cosine distance.
func (p *PGVectorIndex) Search(ctx context.Context, vec []float32, k int) ([]Result, error) {
	query := `
		SELECT doc_id, text, 1 - (embedding <=> $1) AS score
		FROM memory_embedding
		ORDER BY embedding <=> $1
		LIMIT $2
	`
	rows, err := p.db.QueryContext(ctx, query, pgvector.NewVector(vec), k)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query embeddings")
	}
	defer rows.Close()

	results := make([]Result, 0, k)
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.DocID, &r.Text, &r.Score); err != nil {
			return nil, errors.Wrap(err, "failed to scan embedding row")
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
