package remote

// EmbedRequest is the payload for POST /embed. Images are flattened HWC
// float32 rows, already pixel-normalized by the caller.
type EmbedRequest struct {
	Model  string      `json:"model,omitempty"`
	Height int         `json:"height"`
	Width  int         `json:"width"`
	Images [][]float32 `json:"images"`
}

// EmbedResponse carries one embedding per input image, in order.
type EmbedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
	Dim        int         `json:"dim"`
}
