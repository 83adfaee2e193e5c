package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verieval/verieval/internal/dataset"
)

func embedServer(t *testing.T, resp EmbedResponse) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req EmbedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func smallBatch(t *testing.T, n int) *dataset.Batch {
	t.Helper()
	images := make([][]float32, n)
	for i := range images {
		images[i] = make([]float32, 2*2*3)
	}
	batch, err := dataset.NewBatch(images, 2, 2)
	require.NoError(t, err)
	return batch
}

func TestEmbedder_Embed(t *testing.T) {
	server := embedServer(t, EmbedResponse{
		Embeddings: [][]float64{{1, 0, 0}, {0, 1, 0}},
		Dim:        3,
	})
	defer server.Close()

	e := New(Config{BaseURL: server.URL, Timeout: time.Second}, 3)
	embeddings, err := e.Embed(context.Background(), smallBatch(t, 2))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 0, 0}, {0, 1, 0}}, embeddings)
	assert.Equal(t, 3, e.Dimensions())
}

func TestEmbedder_CountMismatch(t *testing.T) {
	server := embedServer(t, EmbedResponse{
		Embeddings: [][]float64{{1, 0, 0}},
		Dim:        3,
	})
	defer server.Close()

	e := New(Config{BaseURL: server.URL, Timeout: time.Second}, 3)
	_, err := e.Embed(context.Background(), smallBatch(t, 2))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCountMismatch)
}

func TestEmbedder_DimMismatch(t *testing.T) {
	server := embedServer(t, EmbedResponse{
		Embeddings: [][]float64{{1, 0}, {0, 1}},
		Dim:        2,
	})
	defer server.Close()

	e := New(Config{BaseURL: server.URL, Timeout: time.Second}, 3)
	_, err := e.Embed(context.Background(), smallBatch(t, 2))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
