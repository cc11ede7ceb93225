package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/zinister/mentor/internal/domain"
)

// ChunkRepository persists knowledge store entries.
type ChunkRepository struct {
	db *DB
}

// NewChunkRepository creates a new chunk repository
func NewChunkRepository(db *DB) *ChunkRepository {
	return &ChunkRepository{db: db}
}

// Upsert writes the entries, replacing any existing row with the same id.
// Last write for a given id wins.
func (r *ChunkRepository) Upsert(ctx context.Context, chunks []domain.StoredChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO chunks (id, content, embedding)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, c := range chunks {
		embeddingJSON, err := json.Marshal(c.Embedding)
		if err != nil {
			return fmt.Errorf("encode embedding for %s: %w", c.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, c.ID, c.Content, string(embeddingJSON)); err != nil {
			return fmt.Errorf("upsert chunk %s: %w", c.ID, err)
		}
	}

	return tx.Commit()
}

// All returns every entry in insertion order.
func (r *ChunkRepository) All(ctx context.Context) ([]domain.StoredChunk, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, content, embedding FROM chunks ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []domain.StoredChunk
	for rows.Next() {
		var c domain.StoredChunk
		var embeddingJSON string
		if err := rows.Scan(&c.ID, &c.Content, &embeddingJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(embeddingJSON), &c.Embedding); err != nil {
			return nil, fmt.Errorf("decode embedding for %s: %w", c.ID, err)
		}
		chunks = append(chunks, c)
	}

	return chunks, rows.Err()
}

// IDs returns every entry id in insertion order.
func (r *ChunkRepository) IDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM chunks ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Count returns the number of stored entries.
func (r *ChunkRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&count)
	return count, err
}

// DeleteAll drops every entry.
func (r *ChunkRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM chunks`)
	return err
}
