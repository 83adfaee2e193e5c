package provider

import (
	"context"

	"github.com/verieval/verieval/internal/dataset"
)

// Embedder turns a batch of face images into fixed-size embedding vectors.
// Callers always pass batches of the configured size; implementations must
// return one embedding per image, in input order.
type Embedder interface {
	// Embed computes embeddings for every image in the batch. Pixel values
	// arrive already normalized by the caller.
	Embed(ctx context.Context, batch *dataset.Batch) ([][]float64, error)

	// Dimensions returns the embedding dimensionality D.
	Dimensions() int
}
