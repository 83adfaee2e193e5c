package mock

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"

	"github.com/verieval/verieval/internal/dataset"
	"github.com/verieval/verieval/internal/provider"
)

const defaultDimension = 512

// Embedder is a deterministic provider.Embedder for tests and development.
// Embeddings are derived from a hash of the image content, so identical
// images always map to identical unit vectors.
type Embedder struct {
	dim int
}

// New creates a mock embedder with the default dimensionality.
func New() *Embedder {
	return &Embedder{dim: defaultDimension}
}

// NewWithDimensions creates a mock embedder producing dim-sized vectors.
func NewWithDimensions(dim int) *Embedder {
	return &Embedder{dim: dim}
}

func (e *Embedder) Embed(_ context.Context, batch *dataset.Batch) ([][]float64, error) {
	out := make([][]float64, batch.Size())
	for i, img := range batch.Images {
		out[i] = e.generate(img)
	}
	return out, nil
}

func (e *Embedder) Dimensions() int {
	return e.dim
}

// generate hashes the pixel data and expands the digest into a unit vector.
func (e *Embedder) generate(img []float32) []float64 {
	h := sha256.New()
	var scratch [4]byte
	for _, v := range img {
		binary.LittleEndian.PutUint32(scratch[:], math.Float32bits(v))
		h.Write(scratch[:])
	}
	digest := h.Sum(nil)

	embedding := make([]float64, e.dim)
	for i := 0; i < e.dim; i++ {
		idx := i % len(digest)
		embedding[i] = (float64(digest[idx])/255.0)*2 - 1
		// Rehash so dimensions beyond the digest length stay distinct.
		if idx == len(digest)-1 {
			next := sha256.Sum256(digest)
			digest = next[:]
		}
	}

	norm := 0.0
	for _, v := range embedding {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		embedding[0] = 1
		return embedding
	}
	for i := range embedding {
		embedding[i] /= norm
	}
	return embedding
}

var _ provider.Embedder = (*Embedder)(nil)
