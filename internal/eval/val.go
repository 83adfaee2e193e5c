package eval

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/verieval/verieval/internal/domain"
)

// CalculateVal estimates the verification rate at a target false-accept
// rate with cross-validation. Per fold it sweeps the grid on the training
// pairs, inverts the FAR-vs-threshold curve at farTarget by piecewise
// linear interpolation, and measures VAL/FAR on the held-out pairs at that
// threshold. When even the largest training FAR stays below the target the
// threshold falls back to 0, a maximally conservative classifier that
// accepts nothing. Returns the mean and population standard deviation of
// VAL and the mean FAR across folds.
func CalculateVal(thresholds []float64, emb1, emb2 [][]float64, same []bool, farTarget float64, nFolds int) (valMean, valStd, farMean float64, err error) {
	if len(thresholds) == 0 {
		return 0, 0, 0, domain.ErrEmptyThresholds
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
		return 0, 0, 0, err
	}

	dist, err := Distances(emb1[:nPairs], emb2[:nPairs])
	if err != nil {
		return 0, 0, 0, err
	}

	val := make([]float64, len(folds))
	far := make([]float64, len(folds))

	for fi, fold := range folds {
		trainDist := gather(dist, fold.Train)
		trainSame := gatherBools(same, fold.Train)

		farTrain := make([]float64, len(thresholds))
		maxFar := 0.0
		for ti, threshold := range thresholds {
			_, farTrain[ti] = ValFar(threshold, trainDist, trainSame)
			if farTrain[ti] > maxFar {
				maxFar = farTrain[ti]
			}
		}

		threshold := 0.0
		if maxFar >= farTarget {
			threshold = interpThreshold(farTrain, thresholds, farTarget)
		}

		testDist := gather(dist, fold.Test)
		testSame := gatherBools(same, fold.Test)
		val[fi], far[fi] = ValFar(threshold, testDist, testSame)
	}

	valMean = stat.Mean(val, nil)
	valStd = stat.PopStdDev(val, nil)
	farMean = stat.Mean(far, nil)
	return valMean, valStd, farMean, nil
}

// interpThreshold treats threshold as a piecewise-linear function of FAR
// and evaluates it at target. The sweep is sorted by FAR first; the grid is
// assumed to produce a near-monotone FAR curve, so sorting only reorders
// numerical noise. Targets below the smallest FAR clamp to the lowest
// threshold, above the largest to the highest.
func interpThreshold(far, thresholds []float64, target float64) float64 {
	type point struct{ x, y float64 }
	pts := make([]point, len(far))
	for i := range far {
		pts[i] = point{x: far[i], y: thresholds[i]}
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].x < pts[j].x })

	if target <= pts[0].x {
		return pts[0].y
	}
	for i := 1; i < len(pts); i++ {
		if target <= pts[i].x {
			p0, p1 := pts[i-1], pts[i]
			return p0.y + (target-p0.x)*(p1.y-p0.y)/(p1.x-p0.x)
		}
	}
	return pts[len(pts)-1].y
}
