package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSet(t *testing.T, nPairs, height, width int) *PairSet {
	t.Helper()

	images := make([][]float32, nPairs*2)
	same := make([]bool, nPairs)
	for i := range images {
		img := make([]float32, height*width*3)
		for j := range img {
			img[j] = float32((i*31 + j*7) % 256)
		}
		images[i] = img
	}
	for i := range same {
		same[i] = i%2 == 0
	}

	set := &PairSet{
		Name:   "test",
		Images: images,
		Height: height,
		Width:  width,
		Same:   same,
	}
	require.NoError(t, set.Validate())
	return set
}

func TestPairSet_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PairSet)
		wantErr bool
	}{
		{name: "valid", mutate: func(*PairSet) {}, wantErr: false},
		{
			name:    "odd image count",
			mutate:  func(s *PairSet) { s.Images = s.Images[:len(s.Images)-1] },
			wantErr: true,
		},
		{
			name:    "label count mismatch",
			mutate:  func(s *PairSet) { s.Same = s.Same[:len(s.Same)-1] },
			wantErr: true,
		},
		{
			name:    "truncated image",
			mutate:  func(s *PairSet) { s.Images[0] = s.Images[0][:10] },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := testSet(t, 4, 8, 8)
			tt.mutate(set)
			err := set.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFlipHorizontal(t *testing.T) {
	// 1x3 image with distinct pixel triples.
	img := []float32{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}

	flipped := FlipHorizontal(img, 1, 3)
	assert.Equal(t, []float32{
		7, 8, 9,
		4, 5, 6,
		1, 2, 3,
	}, flipped)

	// Flipping twice restores the original.
	assert.Equal(t, img, FlipHorizontal(flipped, 1, 3))
}

func TestPairSet_Flipped(t *testing.T) {
	set := testSet(t, 2, 4, 6)
	flipped := set.Flipped()

	require.NoError(t, flipped.Validate())
	assert.Equal(t, set.Same, flipped.Same)
	assert.Equal(t, len(set.Images), len(flipped.Images))

	for i := range set.Images {
		back := FlipHorizontal(flipped.Images[i], set.Height, set.Width)
		assert.Equal(t, set.Images[i], back)
	}
}

func TestNewBatch(t *testing.T) {
	set := testSet(t, 2, 4, 4)

	batch, err := NewBatch(set.Images[:2], 4, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, batch.Size())

	_, err = NewBatch(nil, 4, 4)
	assert.Error(t, err)

	_, err = NewBatch([][]float32{{1, 2}}, 4, 4)
	assert.Error(t, err)
}
