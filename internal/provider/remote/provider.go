package remote

import (
	"context"
	"fmt"

	"github.com/verieval/verieval/internal/dataset"
	"github.com/verieval/verieval/internal/provider"
)

// Embedder adapts the embedding service client to provider.Embedder.
type Embedder struct {
	client *Client
	dim    int
}

// New creates a remote embedder expecting dim-sized vectors.
func New(config Config, dim int) *Embedder {
	return &Embedder{
		client: NewClient(config),
		dim:    dim,
	}
}

func (e *Embedder) Embed(ctx context.Context, batch *dataset.Batch) ([][]float64, error) {
	resp, err := e.client.Embed(ctx, EmbedRequest{
		Height: batch.Height,
		Width:  batch.Width,
		Images: batch.Images,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Embeddings) != batch.Size() {
		return nil, fmt.Errorf("%w: got %d for batch of %d",
			ErrCountMismatch, len(resp.Embeddings), batch.Size())
	}
	for i, emb := range resp.Embeddings {
		if len(emb) != e.dim {
			return nil, fmt.Errorf("%w: embedding %d has dim %d, want %d",
				ErrInvalidResponse, i, len(emb), e.dim)
		}
	}
	return resp.Embeddings, nil
}

func (e *Embedder) Dimensions() int {
	return e.dim
}

var _ provider.Embedder = (*Embedder)(nil)
