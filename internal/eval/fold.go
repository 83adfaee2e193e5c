package eval

import (
	"fmt"

	"github.com/verieval/verieval/internal/domain"
)

// Fold is one train/test partition of pair indices.
type Fold struct {
	Train []int
	Test  []int
}

// KFolds deterministically partitions the indices 0..nPairs-1 into k folds.
// Test groups are contiguous, the first nPairs%k groups carry one extra
// index, and no shuffling happens so identical input order gives identical
// folds. k <= 1 yields a single fold with train == test == all indices, a
// degenerate mode for tiny sets where no held-out calibration is possible.
func KFolds(nPairs, k int) ([]Fold, error) {
	if nPairs <= 0 {
		return nil, domain.ErrInvalidFoldCount.WithError(
			fmt.Errorf("no pairs to split"))
	}
	if k > nPairs {
		return nil, domain.ErrInvalidFoldCount.WithError(
			fmt.Errorf("nfolds=%d pairs=%d", k, nPairs))
	}

	if k <= 1 {
		all := sequence(nPairs)
		return []Fold{{Train: all, Test: all}}, nil
	}

	folds := make([]Fold, 0, k)
	base, extra := nPairs/k, nPairs%k
	start := 0
	for i := 0; i < k; i++ {
		size := base
		if i < extra {
			size++
		}
		stop := start + size

		test := make([]int, 0, size)
		train := make([]int, 0, nPairs-size)
		for idx := 0; idx < nPairs; idx++ {
			if idx >= start && idx < stop {
				test = append(test, idx)
			} else {
				train = append(train, idx)
			}
		}
		folds = append(folds, Fold{Train: train, Test: test})
		start = stop
	}
	return folds, nil
}

func sequence(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}

// gather selects a subset of a float slice by index.
func gather(src []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = src[j]
	}
	return out
}

// gatherBools selects a subset of a bool slice by index.
func gatherBools(src []bool, idx []int) []bool {
	out := make([]bool, len(idx))
	for i, j := range idx {
		out[i] = src[j]
	}
	return out
}

// gatherRows selects a subset of an embedding matrix by index.
func gatherRows(src [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = src[j]
	}
	return out
}
