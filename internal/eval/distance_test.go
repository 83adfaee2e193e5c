package eval

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verieval/verieval/internal/domain"
)

func TestSquaredEuclidean_Symmetry(t *testing.T) {
	a := []float64{0.3, -1.2, 0.5, 2.0}
	b := []float64{-0.7, 0.4, 1.1, -0.3}

	assert.Equal(t, SquaredEuclidean(a, b), SquaredEuclidean(b, a))
	assert.Equal(t, 0.0, SquaredEuclidean(a, a))
}

func TestDistances(t *testing.T) {
	emb1 := [][]float64{{0, 0}, {1, 0}}
	emb2 := [][]float64{{3, 4}, {1, 0}}

	dist, err := Distances(emb1, emb2)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, dist[0], 1e-12)
	assert.InDelta(t, 0.0, dist[1], 1e-12)
}

func TestDistances_DimensionMismatch(t *testing.T) {
	tests := []struct {
		name string
		emb1 [][]float64
		emb2 [][]float64
	}{
		{
			name: "different stream lengths",
			emb1: [][]float64{{1, 2}},
			emb2: [][]float64{{1, 2}, {3, 4}},
		},
		{
			name: "different vector dims",
			emb1: [][]float64{{1, 2, 3}},
			emb2: [][]float64{{1, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Distances(tt.emb1, tt.emb2)
			require.Error(t, err)

			var appErr *domain.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, domain.ErrDimensionMismatch.Code, appErr.Code)
		})
	}
}

func TestNormalizeRows_Idempotent(t *testing.T) {
	rows := NormalizeRows([][]float64{
		{3, 4},
		{0.1, 0.2, 0.3},
		{-5, 0, 0},
	})

	for _, row := range rows {
		assert.InDelta(t, 1.0, Norm(row), 1e-12)
	}

	// Normalizing unit rows reproduces them.
	again := NormalizeRows(rows)
	for i := range rows {
		for j := range rows[i] {
			assert.InDelta(t, rows[i][j], again[i][j], 1e-12)
		}
	}
}

func TestNormalizeRows_ZeroVector(t *testing.T) {
	rows := NormalizeRows([][]float64{{0, 0, 0}})
	assert.Equal(t, []float64{0, 0, 0}, rows[0])
}

func TestSumRows(t *testing.T) {
	sum, err := SumRows([][]float64{{1, 2}, {3, 4}}, [][]float64{{10, 20}, {30, 40}})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{11, 22}, {33, 44}}, sum)

	_, err = SumRows([][]float64{{1}}, [][]float64{{1}, {2}})
	require.Error(t, err)
}

func TestThresholds(t *testing.T) {
	coarse := Thresholds(0, 4, 0.01)
	require.Len(t, coarse, 400)
	assert.Equal(t, 0.0, coarse[0])
	assert.InDelta(t, 3.99, coarse[399], 1e-9)

	fine := Thresholds(0, 4, 0.001)
	require.Len(t, fine, 4000)
	assert.InDelta(t, 3.999, fine[3999], 1e-9)

	// Strictly increasing, no duplicates.
	for i := 1; i < len(coarse); i++ {
		assert.Greater(t, coarse[i], coarse[i-1])
	}

	assert.Nil(t, Thresholds(0, 0, 0.01))
}
