package eval

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// pcaModel holds a fitted principal-component projection: the training mean
// and the first dim component vectors.
type pcaModel struct {
	mean       []float64
	components *mat.Dense // d x dim
	dim        int
}

// fitPCA fits a principal-component model on the given rows.
func fitPCA(rows [][]float64, dim int) (*pcaModel, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("pca: no training rows")
	}
	d := len(rows[0])
	if dim <= 0 || dim > d || dim > n {
		return nil, fmt.Errorf("pca: %d components not available from %dx%d data", dim, n, d)
	}

	flat := make([]float64, 0, n*d)
	mean := make([]float64, d)
	for _, row := range rows {
		if len(row) != d {
			return nil, fmt.Errorf("pca: ragged input row")
		}
		flat = append(flat, row...)
		for j, x := range row {
			mean[j] += x
		}
	}
	for j := range mean {
		mean[j] /= float64(n)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(mat.NewDense(n, d, flat), nil); !ok {
		return nil, fmt.Errorf("pca: decomposition failed")
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	_, cols := vecs.Dims()
	if cols < dim {
		return nil, fmt.Errorf("pca: only %d components available, need %d", cols, dim)
	}

	components := mat.NewDense(d, dim, nil)
	for i := 0; i < d; i++ {
		for j := 0; j < dim; j++ {
			components.Set(i, j, vecs.At(i, j))
		}
	}

	return &pcaModel{mean: mean, components: components, dim: dim}, nil
}

// transform projects rows onto the fitted components after centering by the
// training mean.
func (m *pcaModel) transform(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		proj := make([]float64, m.dim)
		for j := 0; j < m.dim; j++ {
			var sum float64
			for k, x := range row {
				sum += (x - m.mean[k]) * m.components.At(k, j)
			}
			proj[j] = sum
		}
		out[i] = proj
	}
	return out
}
