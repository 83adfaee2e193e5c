package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/verieval/verieval/internal/domain"
)

// PgxPool is the subset of pgxpool.Pool the repositories use. pgxmock
// implements it as well.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RunRepositoryInterface defines operations for evaluation run persistence
type RunRepositoryInterface interface {
	Create(ctx context.Context, run *domain.EvalRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.EvalRun, error)
	ListByDataset(ctx context.Context, dataset string, limit int) ([]domain.EvalRun, error)
}

// EmbeddingRepositoryInterface defines operations for the embedding cache
type EmbeddingRepositoryInterface interface {
	SaveBatch(ctx context.Context, embeddings []domain.CachedEmbedding) error
	Load(ctx context.Context, dataset string, flipped bool) ([]domain.CachedEmbedding, error)
	DeleteByDataset(ctx context.Context, dataset string) (int64, error)
}
