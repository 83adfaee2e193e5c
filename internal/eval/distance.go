package eval

import (
	"fmt"
	"math"

	"github.com/verieval/verieval/internal/domain"
)

// SquaredEuclidean returns the squared Euclidean distance between two
// embeddings. Panics are avoided: mismatched lengths are reported by
// Distances, which is the only caller that sees raw input.
func SquaredEuclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Distances computes the per-pair squared Euclidean distance between the
// left and right embedding streams.
func Distances(emb1, emb2 [][]float64) ([]float64, error) {
	if len(emb1) != len(emb2) {
		return nil, domain.ErrDimensionMismatch.WithError(
			fmt.Errorf("left has %d embeddings, right has %d", len(emb1), len(emb2)))
	}

	dist := make([]float64, len(emb1))
	for i := range emb1 {
		if len(emb1[i]) != len(emb2[i]) {
			return nil, domain.ErrDimensionMismatch.WithError(
				fmt.Errorf("pair %d: dim %d vs %d", i, len(emb1[i]), len(emb2[i])))
		}
		dist[i] = SquaredEuclidean(emb1[i], emb2[i])
	}
	return dist, nil
}

// Norm returns the L2 norm of an embedding.
func Norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// NormalizeRows L2-normalizes every embedding in place-free fashion and
// returns the new matrix. Zero vectors are left as-is.
func NormalizeRows(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		norm := Norm(row)
		dst := make([]float64, len(row))
		if norm == 0 {
			copy(dst, row)
		} else {
			for j, x := range row {
				dst[j] = x / norm
			}
		}
		out[i] = dst
	}
	return out
}

// SumRows adds two embedding matrices elementwise.
func SumRows(a, b [][]float64) ([][]float64, error) {
	if len(a) != len(b) {
		return nil, domain.ErrDimensionMismatch.WithError(
			fmt.Errorf("matrix rows %d vs %d", len(a), len(b)))
	}
	out := make([][]float64, len(a))
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return nil, domain.ErrDimensionMismatch.WithError(
				fmt.Errorf("row %d: dim %d vs %d", i, len(a[i]), len(b[i])))
		}
		row := make([]float64, len(a[i]))
		for j := range a[i] {
			row[j] = a[i][j] + b[i][j]
		}
		out[i] = row
	}
	return out, nil
}

// Thresholds builds an ascending uniform grid over [start, stop) with the
// given step, matching half-open range semantics.
func Thresholds(start, stop, step float64) []float64 {
	n := int(math.Ceil((stop-start)/step - 1e-9))
	if n <= 0 {
		return nil
	}
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = start + float64(i)*step
	}
	return grid
}
