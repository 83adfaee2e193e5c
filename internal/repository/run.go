package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/verieval/verieval/internal/domain"
)

type RunRepository struct {
	pool PgxPool
}

func NewRunRepository(pool PgxPool) *RunRepository {
	return &RunRepository{pool: pool}
}

func (r *RunRepository) Create(ctx context.Context, run *domain.EvalRun) error {
	query := `
		INSERT INTO eval_runs (id, dataset, provider, batch_size, nfolds, xnorm, acc1, std1, acc2, std2, infer_seconds, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING created_at
	`

	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		run.ID,
		run.Dataset,
		run.Provider,
		run.BatchSize,
		run.NFolds,
		run.XNorm,
		run.Acc1,
		run.Std1,
		run.Acc2,
		run.Std2,
		run.InferSeconds,
	).Scan(&run.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return &domain.AppError{
				Code:    "RUN_ALREADY_EXISTS",
				Message: "Evaluation run with this ID already exists",
			}
		}
		return fmt.Errorf("create eval run: %w", err)
	}

	return nil
}

func (r *RunRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.EvalRun, error) {
	query := `
		SELECT id, dataset, provider, batch_size, nfolds, xnorm, acc1, std1, acc2, std2, infer_seconds, created_at
		FROM eval_runs
		WHERE id = $1
	`

	var run domain.EvalRun
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&run.ID,
		&run.Dataset,
		&run.Provider,
		&run.BatchSize,
		&run.NFolds,
		&run.XNorm,
		&run.Acc1,
		&run.Std1,
		&run.Acc2,
		&run.Std2,
		&run.InferSeconds,
		&run.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get eval run by id: %w", err)
	}

	return &run, nil
}

func (r *RunRepository) ListByDataset(ctx context.Context, dataset string, limit int) ([]domain.EvalRun, error) {
	query := `
		SELECT id, dataset, provider, batch_size, nfolds, xnorm, acc1, std1, acc2, std2, infer_seconds, created_at
		FROM eval_runs
		WHERE dataset = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, dataset, limit)
	if err != nil {
		return nil, fmt.Errorf("list eval runs: %w", err)
	}
	defer rows.Close()

	runs := make([]domain.EvalRun, 0)
	for rows.Next() {
		var run domain.EvalRun
		if err := rows.Scan(
			&run.ID,
			&run.Dataset,
			&run.Provider,
			&run.BatchSize,
			&run.NFolds,
			&run.XNorm,
			&run.Acc1,
			&run.Std1,
			&run.Acc2,
			&run.Std2,
			&run.InferSeconds,
			&run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan eval run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list eval runs: %w", err)
	}

	return runs, nil
}
