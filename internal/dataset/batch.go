package dataset

import (
	"fmt"

	"github.com/verieval/verieval/internal/domain"
)

// Batch is a fixed-size slice of images handed to an embedding provider.
// Rows keep the order of the source set.
type Batch struct {
	Images [][]float32
	Height int
	Width  int
}

// NewBatch wraps a window of images, checking they share dimensions.
func NewBatch(images [][]float32, height, width int) (*Batch, error) {
	if len(images) == 0 {
		return nil, domain.ErrInvalidBatch
	}
	want := height * width * 3
	for i, img := range images {
		if len(img) != want {
			return nil, domain.ErrInvalidBatch.WithError(
				fmt.Errorf("image %d has %d values, want %d", i, len(img), want))
		}
	}
	return &Batch{Images: images, Height: height, Width: width}, nil
}

// Size returns the number of images in the batch.
func (b *Batch) Size() int {
	return len(b.Images)
}
