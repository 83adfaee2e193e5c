package eval

// Accuracy classifies every pair as "same" when its distance is strictly
// below the threshold and returns the true-positive rate, false-positive
// rate and overall accuracy. Rates with a zero denominator are defined as 0
// so folds without positive or negative pairs aggregate cleanly.
func Accuracy(threshold float64, dist []float64, same []bool) (tpr, fpr, acc float64) {
	var tp, fp, tn, fn int
	for i, d := range dist {
		predict := d < threshold
		switch {
		case predict && same[i]:
			tp++
		case predict && !same[i]:
			fp++
		case !predict && !same[i]:
			tn++
		default:
			fn++
		}
	}

	if tp+fn > 0 {
		tpr = float64(tp) / float64(tp+fn)
	}
	if fp+tn > 0 {
		fpr = float64(fp) / float64(fp+tn)
	}
	if len(dist) > 0 {
		acc = float64(tp+tn) / float64(len(dist))
	}
	return tpr, fpr, acc
}

// ValFar returns the true-accept rate (fraction of same pairs accepted) and
// false-accept rate (fraction of different pairs accepted) at a threshold.
// As with Accuracy, empty denominators yield 0.
func ValFar(threshold float64, dist []float64, same []bool) (val, far float64) {
	var trueAccept, falseAccept, nSame, nDiff int
	for i, d := range dist {
		if same[i] {
			nSame++
		} else {
			nDiff++
		}
		if d < threshold {
			if same[i] {
				trueAccept++
			} else {
				falseAccept++
			}
		}
	}

	if nSame > 0 {
		val = float64(trueAccept) / float64(nSame)
	}
	if nDiff > 0 {
		far = float64(falseAccept) / float64(nDiff)
	}
	return val, far
}
