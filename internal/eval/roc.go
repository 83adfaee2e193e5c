package eval

import (
	"github.com/verieval/verieval/internal/domain"
)

// CalculateROC runs cross-validated threshold calibration over the grid.
// Per fold it picks the threshold with the best training accuracy (lowest
// index wins ties), fills the fold's full TPR/FPR curve on the held-out
// pairs, and records the held-out accuracy at the selected threshold.
// The returned TPR/FPR curves are the pointwise mean across folds; the
// accuracies are per fold.
//
// With pcaDim > 0 the embeddings are projected per fold to pcaDim
// components fitted on the training pairs, re-normalized, and distances
// recomputed. pcaDim == 0 computes the pair distances once up front.
func CalculateROC(thresholds []float64, emb1, emb2 [][]float64, same []bool, nFolds, pcaDim int) (meanTPR, meanFPR, accuracy []float64, err error) {
	if len(thresholds) == 0 {
		return nil, nil, nil, domain.ErrEmptyThresholds
	}

	nPairs := len(same)
	if len(emb1) < nPairs {
		nPairs = len(emb1)
	}
	if len(emb2) < nPairs {
		nPairs = len(emb2)
	}

	folds, err := KFolds(nPairs, nFolds)
	if err != nil {
		return nil, nil, nil, err
	}

	var dist []float64
	if pcaDim == 0 {
		dist, err = Distances(emb1[:nPairs], emb2[:nPairs])
		if err != nil {
			return nil, nil, nil, err
		}
	}

	nThresholds := len(thresholds)
	tprs := make([][]float64, len(folds))
	fprs := make([][]float64, len(folds))
	accuracy = make([]float64, len(folds))

	for fi, fold := range folds {
		if pcaDim > 0 {
			dist, err = pcaDistances(emb1[:nPairs], emb2[:nPairs], fold.Train, pcaDim)
			if err != nil {
				return nil, nil, nil, err
			}
		}

		trainDist := gather(dist, fold.Train)
		trainSame := gatherBools(same, fold.Train)
		testDist := gather(dist, fold.Test)
		testSame := gatherBools(same, fold.Test)

		// Best threshold on the training split, first index wins ties.
		best := 0
		bestAcc := -1.0
		for ti, threshold := range thresholds {
			_, _, acc := Accuracy(threshold, trainDist, trainSame)
			if acc > bestAcc {
				bestAcc = acc
				best = ti
			}
		}

		tprs[fi] = make([]float64, nThresholds)
		fprs[fi] = make([]float64, nThresholds)
		for ti, threshold := range thresholds {
			tprs[fi][ti], fprs[fi][ti], _ = Accuracy(threshold, testDist, testSame)
		}
		_, _, accuracy[fi] = Accuracy(thresholds[best], testDist, testSame)
	}

	meanTPR = make([]float64, nThresholds)
	meanFPR = make([]float64, nThresholds)
	for ti := 0; ti < nThresholds; ti++ {
		var tSum, fSum float64
		for fi := range folds {
			tSum += tprs[fi][ti]
			fSum += fprs[fi][ti]
		}
		meanTPR[ti] = tSum / float64(len(folds))
		meanFPR[ti] = fSum / float64(len(folds))
	}
	return meanTPR, meanFPR, accuracy, nil
}

// pcaDistances fits a projection on the union of both training streams,
// applies it to every pair and returns the re-normalized distances.
func pcaDistances(emb1, emb2 [][]float64, train []int, dim int) ([]float64, error) {
	trainRows := append(gatherRows(emb1, train), gatherRows(emb2, train)...)
	model, err := fitPCA(trainRows, dim)
	if err != nil {
		return nil, err
	}
	proj1 := NormalizeRows(model.transform(emb1))
	proj2 := NormalizeRows(model.transform(emb2))
	return Distances(proj1, proj2)
}
