package eval

// Default calibration parameters. The coarse grid drives threshold
// selection for accuracy, the fine grid drives FAR targeting.
const (
	DefaultFolds     = 10
	DefaultFARTarget = 1e-3

	gridMax = 4.0
	rocStep = 0.01
	farStep = 0.001
)

// Result bundles the metrics of one evaluation pass.
type Result struct {
	// Mean ROC curve across folds, one point per grid threshold.
	TPR []float64
	FPR []float64

	// Held-out accuracy per fold at the fold's calibrated threshold.
	Accuracies []float64

	// Verification rate at the target false-accept rate.
	Val    float64
	ValStd float64
	Far    float64
}

// Evaluate runs the full verification evaluation on an embedding matrix
// whose rows alternate left/right pair members (row 2i and 2i+1 form pair
// i). nFolds <= 0 selects the default; pcaDim == 0 disables the per-fold
// projection.
func Evaluate(embeddings [][]float64, same []bool, nFolds, pcaDim int) (*Result, error) {
	if nFolds <= 0 {
		nFolds = DefaultFolds
	}

	emb1 := make([][]float64, 0, len(embeddings)/2)
	emb2 := make([][]float64, 0, len(embeddings)/2)
	for i := 0; i+1 < len(embeddings); i += 2 {
		emb1 = append(emb1, embeddings[i])
		emb2 = append(emb2, embeddings[i+1])
	}

	tpr, fpr, accuracies, err := CalculateROC(
		Thresholds(0, gridMax, rocStep), emb1, emb2, same, nFolds, pcaDim)
	if err != nil {
		return nil, err
	}

	val, valStd, far, err := CalculateVal(
		Thresholds(0, gridMax, farStep), emb1, emb2, same, DefaultFARTarget, nFolds)
	if err != nil {
		return nil, err
	}

	return &Result{
		TPR:        tpr,
		FPR:        fpr,
		Accuracies: accuracies,
		Val:        val,
		ValStd:     valStd,
		Far:        far,
	}, nil
}
