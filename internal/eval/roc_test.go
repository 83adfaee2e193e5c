package eval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pairStreams builds 1-D embedding streams whose squared pair distances are
// exactly the given values.
func pairStreams(dist []float64) (emb1, emb2 [][]float64) {
	emb1 = make([][]float64, len(dist))
	emb2 = make([][]float64, len(dist))
	for i, d := range dist {
		emb1[i] = []float64{0}
		emb2[i] = []float64{math.Sqrt(d)}
	}
	return emb1, emb2
}

func TestCalculateROC_DegenerateFold(t *testing.T) {
	// Four pairs, perfectly separable: two close same-pairs, two distant
	// different-pairs. A single fold trains and tests on everything.
	emb1, emb2 := pairStreams([]float64{0.1, 0.2, 3.0, 3.5})
	same := []bool{true, true, false, false}
	grid := []float64{0, 1, 2, 3, 4}

	tpr, fpr, accuracy, err := CalculateROC(grid, emb1, emb2, same, 1, 0)
	require.NoError(t, err)
	require.Len(t, tpr, len(grid))
	require.Len(t, fpr, len(grid))
	require.Len(t, accuracy, 1)

	// The calibrated threshold separates the classes completely.
	assert.Equal(t, 1.0, accuracy[0])

	// Curve endpoints: nothing accepted at 0, everything at 4.
	assert.Equal(t, 0.0, tpr[0])
	assert.Equal(t, 0.0, fpr[0])
	assert.Equal(t, 1.0, tpr[len(grid)-1])
	assert.Equal(t, 1.0, fpr[len(grid)-1])

	// Between the clusters only same-pairs are accepted.
	assert.Equal(t, 1.0, tpr[2])
	assert.Equal(t, 0.0, fpr[2])
}

func TestCalculateROC_TieBreaksToLowestThreshold(t *testing.T) {
	// Thresholds 1, 2 and 3 all reach perfect training accuracy; the fold
	// accuracy must be evaluated at the first of them.
	emb1, emb2 := pairStreams([]float64{0.5, 3.5})
	same := []bool{true, false}
	grid := []float64{0, 1, 2, 3, 4}

	_, _, accuracy, err := CalculateROC(grid, emb1, emb2, same, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, accuracy[0])
}

func TestCalculateROC_CrossValidated(t *testing.T) {
	// 20 separable pairs, labels interleaved so every fold sees both
	// classes; held-out accuracy must be perfect in each fold.
	dist := make([]float64, 20)
	same := make([]bool, 20)
	for i := range dist {
		if i%2 == 0 {
			dist[i] = 0.2
			same[i] = true
		} else {
			dist[i] = 3.0
		}
	}
	emb1, emb2 := pairStreams(dist)

	tpr, fpr, accuracy, err := CalculateROC(Thresholds(0, 4, 0.01), emb1, emb2, same, 5, 0)
	require.NoError(t, err)
	require.Len(t, accuracy, 5)
	for _, acc := range accuracy {
		assert.Equal(t, 1.0, acc)
	}
	for i := range tpr {
		assert.GreaterOrEqual(t, tpr[i], 0.0)
		assert.LessOrEqual(t, tpr[i], 1.0)
		assert.GreaterOrEqual(t, fpr[i], 0.0)
		assert.LessOrEqual(t, fpr[i], 1.0)
	}
}

func TestCalculateROC_EmptyGrid(t *testing.T) {
	emb1, emb2 := pairStreams([]float64{0.1})
	_, _, _, err := CalculateROC(nil, emb1, emb2, []bool{true}, 1, 0)
	require.Error(t, err)
}

func TestCalculateROC_TooManyFolds(t *testing.T) {
	emb1, emb2 := pairStreams([]float64{0.1, 0.2})
	_, _, _, err := CalculateROC([]float64{0, 1}, emb1, emb2, []bool{true, false}, 5, 0)
	require.Error(t, err)
}

func TestCalculateROC_WithPCA(t *testing.T) {
	// Same pairs share a vector, different pairs are far apart; projecting
	// to two components must keep them separable.
	emb1 := make([][]float64, 12)
	emb2 := make([][]float64, 12)
	same := make([]bool, 12)
	for i := 0; i < 12; i++ {
		base := []float64{float64(i), float64(i % 3), 1, 0.5}
		if i%2 == 0 {
			same[i] = true
			emb1[i] = base
			emb2[i] = append([]float64(nil), base...)
		} else {
			emb1[i] = base
			far := append([]float64(nil), base...)
			far[0] += 40
			far[1] -= 25
			emb2[i] = far
		}
	}

	tpr, fpr, accuracy, err := CalculateROC(Thresholds(0, 4, 0.01), emb1, emb2, same, 2, 2)
	require.NoError(t, err)
	require.Len(t, accuracy, 2)
	require.Len(t, tpr, 400)
	require.Len(t, fpr, 400)

	// Identical pairs project identically, so their distance stays 0 and a
	// small threshold keeps every fold perfect.
	for _, acc := range accuracy {
		assert.Equal(t, 1.0, acc)
	}
}
