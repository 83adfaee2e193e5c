package verify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/verieval/verieval/internal/dataset"
	"github.com/verieval/verieval/internal/domain"
	"github.com/verieval/verieval/internal/eval"
	"github.com/verieval/verieval/internal/provider"
)

// Harness drives a pair set through an embedding provider in fixed-size
// batches and evaluates the resulting embeddings twice: once on the plain
// pass and once with the horizontally flipped pass summed in.
type Harness struct {
	embedder  provider.Embedder
	batchSize int
	logger    *slog.Logger
	pca       int
	progress  bool
}

func NewHarness(embedder provider.Embedder, batchSize int, logger *slog.Logger) *Harness {
	return &Harness{
		embedder:  embedder,
		batchSize: batchSize,
		logger:    logger,
	}
}

// WithPCA enables the per-fold projection during accuracy calibration.
func (h *Harness) WithPCA(dim int) *Harness {
	h.pca = dim
	return h
}

// WithProgress renders a progress bar on stderr while batches run.
func (h *Harness) WithProgress(enabled bool) *Harness {
	h.progress = enabled
	return h
}

// Run evaluates one pair set. The flipped pass is derived here, not by the
// loader, so both passes always see the same image order.
func (h *Harness) Run(ctx context.Context, set *dataset.PairSet, nFolds int) (*Report, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}
	if h.batchSize <= 0 || h.batchSize > len(set.Images) {
		return nil, domain.ErrBatchExceedsSet.WithError(
			fmt.Errorf("batch size %d, dataset %d images", h.batchSize, len(set.Images)))
	}

	passes := []*dataset.PairSet{set, set.Flipped()}
	embeddings := make([][][]float64, len(passes))
	seconds := make([]float64, len(passes))

	var bar *progressbar.ProgressBar
	if h.progress {
		perPass := (len(set.Images) + h.batchSize - 1) / h.batchSize
		bar = progressbar.NewOptions(perPass*len(passes),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription(set.Name),
			progressbar.OptionSetWidth(32),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	// Passes only read their own input, so they can run concurrently; the
	// tail-padding rule is per pass and stays sequential inside embedPass.
	g, gctx := errgroup.WithContext(ctx)
	for i, pass := range passes {
		g.Go(func() error {
			emb, secs, err := h.embedPass(gctx, pass, bar)
			if err != nil {
				return err
			}
			embeddings[i] = emb
			seconds[i] = secs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var xnorm float64
	var xnormCount int
	for _, pass := range embeddings {
		for _, emb := range pass {
			xnorm += eval.Norm(emb)
			xnormCount++
		}
	}
	xnorm /= float64(xnormCount)

	resultA, err := eval.Evaluate(eval.NormalizeRows(embeddings[0]), set.Same, nFolds, h.pca)
	if err != nil {
		return nil, fmt.Errorf("evaluate plain pass: %w", err)
	}

	summed, err := eval.SumRows(embeddings[0], embeddings[1])
	if err != nil {
		return nil, err
	}
	resultB, err := eval.Evaluate(eval.NormalizeRows(summed), set.Same, nFolds, h.pca)
	if err != nil {
		return nil, fmt.Errorf("evaluate flip-augmented pass: %w", err)
	}

	report := &Report{
		Dataset:      set.Name,
		XNorm:        xnorm,
		Acc1:         stat.Mean(resultA.Accuracies, nil),
		Std1:         stat.PopStdDev(resultA.Accuracies, nil),
		Acc2:         stat.Mean(resultB.Accuracies, nil),
		Std2:         stat.PopStdDev(resultB.Accuracies, nil),
		InferSeconds: seconds[0] + seconds[1],
		PassA:        resultA,
		PassB:        resultB,
		Embeddings:   embeddings,
	}

	h.logger.Debug("harness pass complete",
		slog.String("dataset", set.Name),
		slog.Float64("xnorm", report.XNorm),
		slog.Float64("acc1", report.Acc1),
		slog.Float64("acc2", report.Acc2),
	)
	return report, nil
}

// embedPass runs one full pass over the images in fixed-size windows. When
// the final window would come up short it is slid back so its tail reuses
// images from the previous batch: the provider always sees a full batch
// and only the genuinely new embeddings are kept. Leftover images are
// never dropped.
func (h *Harness) embedPass(ctx context.Context, set *dataset.PairSet, bar *progressbar.ProgressBar) ([][]float64, float64, error) {
	n := len(set.Images)
	out := make([][]float64, n)
	var seconds float64

	ba := 0
	for ba < n {
		bb := ba + h.batchSize
		if bb > n {
			bb = n
		}
		count := bb - ba

		window := normalizePixels(set.Images[bb-h.batchSize : bb])
		batch, err := dataset.NewBatch(window, set.Height, set.Width)
		if err != nil {
			return nil, 0, err
		}

		start := time.Now()
		embeddings, err := h.embedder.Embed(ctx, batch)
		seconds += time.Since(start).Seconds()
		if err != nil {
			return nil, 0, fmt.Errorf("embed batch ending at %d: %w", bb, err)
		}
		if len(embeddings) != h.batchSize {
			return nil, 0, domain.ErrInvalidBatch.WithError(
				fmt.Errorf("provider returned %d embeddings for batch of %d", len(embeddings), h.batchSize))
		}

		// Keep only the rows this window newly covers.
		for i := 0; i < count; i++ {
			out[ba+i] = embeddings[h.batchSize-count+i]
		}

		if bar != nil {
			_ = bar.Add(1)
		}
		ba = bb
	}
	return out, seconds, nil
}

// normalizePixels maps [0,255] pixels to [-1,1]: ((p/255)-0.5)/0.5.
func normalizePixels(images [][]float32) [][]float32 {
	out := make([][]float32, len(images))
	for i, img := range images {
		dst := make([]float32, len(img))
		for j, p := range img {
			dst[j] = (p/255 - 0.5) / 0.5
		}
		out[i] = dst
	}
	return out
}

