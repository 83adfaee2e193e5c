package domain

import (
	"time"

	"github.com/google/uuid"
)

// EvalRun is one verification evaluation of a single dataset.
type EvalRun struct {
	ID           uuid.UUID `json:"id"`
	Dataset      string    `json:"dataset"`
	Provider     string    `json:"provider"`
	BatchSize    int       `json:"batch_size"`
	NFolds       int       `json:"nfolds"`
	XNorm        float64   `json:"xnorm"`
	Acc1         float64   `json:"acc1"`
	Std1         float64   `json:"std1"`
	Acc2         float64   `json:"acc2"`
	Std2         float64   `json:"std2"`
	InferSeconds float64   `json:"infer_seconds"`
	CreatedAt    time.Time `json:"created_at"`
}

// CachedEmbedding is one stored embedding row, keyed by dataset, image
// index and whether it came from the flipped pass.
type CachedEmbedding struct {
	Dataset   string    `json:"dataset"`
	Index     int       `json:"index"`
	Flipped   bool      `json:"flipped"`
	Embedding []float64 `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
