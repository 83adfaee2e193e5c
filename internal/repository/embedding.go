package repository

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"

	"github.com/verieval/verieval/internal/domain"
)

type EmbeddingRepository struct {
	pool PgxPool
}

func NewEmbeddingRepository(pool PgxPool) *EmbeddingRepository {
	return &EmbeddingRepository{pool: pool}
}

// SaveBatch upserts cached embeddings. Rerunning a dataset overwrites the
// previous rows for the same (dataset, index, flipped) keys.
func (r *EmbeddingRepository) SaveBatch(ctx context.Context, embeddings []domain.CachedEmbedding) error {
	query := `
		INSERT INTO embedding_cache (dataset, image_index, flipped, embedding, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (dataset, image_index, flipped)
		DO UPDATE SET embedding = EXCLUDED.embedding, created_at = NOW()
	`

	for _, e := range embeddings {
		var embedding *pgvector.Vector
		if len(e.Embedding) > 0 {
			floats := make([]float32, len(e.Embedding))
			for i, v := range e.Embedding {
				floats[i] = float32(v)
			}
			vec := pgvector.NewVector(floats)
			embedding = &vec
		}

		_, err := r.pool.Exec(ctx, query, e.Dataset, e.Index, e.Flipped, embedding)
		if err != nil {
			return fmt.Errorf("save embedding %s[%d]: %w", e.Dataset, e.Index, err)
		}
	}

	return nil
}

// Load returns the cached embeddings for one pass of a dataset, ordered by
// image index.
func (r *EmbeddingRepository) Load(ctx context.Context, dataset string, flipped bool) ([]domain.CachedEmbedding, error) {
	query := `
		SELECT dataset, image_index, flipped, embedding, created_at
		FROM embedding_cache
		WHERE dataset = $1 AND flipped = $2
		ORDER BY image_index
	`

	rows, err := r.pool.Query(ctx, query, dataset, flipped)
	if err != nil {
		return nil, fmt.Errorf("load embeddings: %w", err)
	}
	defer rows.Close()

	cached := make([]domain.CachedEmbedding, 0)
	for rows.Next() {
		var e domain.CachedEmbedding
		var embedding *pgvector.Vector

		if err := rows.Scan(&e.Dataset, &e.Index, &e.Flipped, &embedding, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan embedding: %w", err)
		}

		if embedding != nil && embedding.Slice() != nil {
			e.Embedding = make([]float64, len(embedding.Slice()))
			for i, v := range embedding.Slice() {
				e.Embedding[i] = float64(v)
			}
		}

		cached = append(cached, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load embeddings: %w", err)
	}

	return cached, nil
}

// DeleteByDataset removes all cached embeddings for a dataset.
// Returns the number of deleted rows.
func (r *EmbeddingRepository) DeleteByDataset(ctx context.Context, dataset string) (int64, error) {
	query := `
		DELETE FROM embedding_cache
		WHERE dataset = $1
	`

	result, err := r.pool.Exec(ctx, query, dataset)
	if err != nil {
		return 0, fmt.Errorf("delete embeddings: %w", err)
	}

	return result.RowsAffected(), nil
}
