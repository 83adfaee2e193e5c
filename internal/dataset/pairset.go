package dataset

import (
	"fmt"

	"github.com/verieval/verieval/internal/domain"
)

// PairSet is a verification benchmark: images alternate left/right members
// of a pair (index 2i and 2i+1 form pair i) and Same holds one label per
// pair. Pixels are HWC float32 in [0, 255].
type PairSet struct {
	Name   string
	Images [][]float32
	Height int
	Width  int
	Same   []bool
}

// Pairs returns the number of labeled pairs.
func (s *PairSet) Pairs() int {
	return len(s.Same)
}

// Validate checks the pairing contract: an even image count, one label per
// pair and uniformly sized images.
func (s *PairSet) Validate() error {
	if len(s.Images)%2 != 0 {
		return domain.ErrInvalidPairSet.WithError(
			fmt.Errorf("odd image count %d", len(s.Images)))
	}
	if len(s.Same) != len(s.Images)/2 {
		return domain.ErrInvalidPairSet.WithError(
			fmt.Errorf("%d labels for %d images", len(s.Same), len(s.Images)))
	}
	want := s.Height * s.Width * 3
	for i, img := range s.Images {
		if len(img) != want {
			return domain.ErrInvalidPairSet.WithError(
				fmt.Errorf("image %d has %d values, want %d", i, len(img), want))
		}
	}
	return nil
}

// FlipHorizontal mirrors an HWC image left-to-right.
func FlipHorizontal(img []float32, height, width int) []float32 {
	out := make([]float32, len(img))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			src := (y*width + x) * 3
			dst := (y*width + (width - 1 - x)) * 3
			out[dst] = img[src]
			out[dst+1] = img[src+1]
			out[dst+2] = img[src+2]
		}
	}
	return out
}

// Flipped returns a copy of the set with every image mirrored.
func (s *PairSet) Flipped() *PairSet {
	images := make([][]float32, len(s.Images))
	for i, img := range s.Images {
		images[i] = FlipHorizontal(img, s.Height, s.Width)
	}
	return &PairSet{
		Name:   s.Name,
		Images: images,
		Height: s.Height,
		Width:  s.Width,
		Same:   s.Same,
	}
}
