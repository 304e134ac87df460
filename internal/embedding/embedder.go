// Package embedding produces semantic vector embeddings for quiz targets and
// distractor candidates, via ONNX when available with a deterministic fallback.
package embedding

import "context"

// Embedder produces vector embeddings for text. Embeddings are unit-normalized,
// so inner product equals cosine similarity.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}

// Cosine returns the cosine similarity of two unit-normalized vectors
// (their inner product). Mismatched or empty vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i] * b[i])
	}
	return dot
}
