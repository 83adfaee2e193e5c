package eval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// interleavedEmbeddings builds an embedding matrix whose rows alternate
// left/right pair members: same pairs share a unit vector, different pairs
// get orthogonal unit vectors.
func interleavedEmbeddings(nPairs int) ([][]float64, []bool) {
	embeddings := make([][]float64, 0, nPairs*2)
	same := make([]bool, nPairs)
	for i := 0; i < nPairs; i++ {
		left := []float64{1, 0}
		if i%2 == 0 {
			same[i] = true
			embeddings = append(embeddings, left, []float64{1, 0})
		} else {
			embeddings = append(embeddings, left, []float64{0, 1})
		}
	}
	return embeddings, same
}

func TestEvaluate(t *testing.T) {
	embeddings, same := interleavedEmbeddings(20)

	result, err := Evaluate(embeddings, same, 5, 0)
	require.NoError(t, err)

	require.Len(t, result.TPR, 400)
	require.Len(t, result.FPR, 400)
	require.Len(t, result.Accuracies, 5)

	// Same pairs at distance 0, different at 2: every fold separates them.
	for _, acc := range result.Accuracies {
		assert.Equal(t, 1.0, acc)
	}
	assert.Equal(t, 1.0, result.Val)
	assert.Equal(t, 0.0, result.ValStd)

	for i := range result.TPR {
		assert.False(t, math.IsNaN(result.TPR[i]))
		assert.False(t, math.IsNaN(result.FPR[i]))
	}
}

func TestEvaluate_DefaultFolds(t *testing.T) {
	embeddings, same := interleavedEmbeddings(30)

	result, err := Evaluate(embeddings, same, 0, 0)
	require.NoError(t, err)
	assert.Len(t, result.Accuracies, DefaultFolds)
}

func TestEvaluate_TooFewPairs(t *testing.T) {
	embeddings, same := interleavedEmbeddings(4)

	_, err := Evaluate(embeddings, same, 10, 0)
	require.Error(t, err)
}

func TestEvaluate_DimensionMismatch(t *testing.T) {
	embeddings := [][]float64{{1, 0}, {1, 0, 0}}
	_, err := Evaluate(embeddings, []bool{true}, 1, 0)
	require.Error(t, err)
}
