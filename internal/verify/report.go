package verify

import (
	"github.com/verieval/verieval/internal/eval"
)

// Report is the outcome of one harness run over a single dataset. Acc1/Std1
// come from the plain embeddings, Acc2/Std2 from the flip-augmented sum;
// XNorm is the mean pre-normalization embedding norm over both passes, a
// quick health signal for the model.
type Report struct {
	Dataset      string
	XNorm        float64
	Acc1         float64
	Std1         float64
	Acc2         float64
	Std2         float64
	InferSeconds float64

	// Full metric bundles behind the headline numbers.
	PassA *eval.Result
	PassB *eval.Result

	// Raw embeddings per pass (0 = plain, 1 = flipped), kept so callers
	// can persist or inspect them.
	Embeddings [][][]float64
}
