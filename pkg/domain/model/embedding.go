package model

import (
	"math"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// EmbeddingVector is a model-defined, fixed-length representation of a text
type EmbeddingVector []float64

// CosineSimilarity returns dot(a,b) / (|a|*|b|).
// Vectors of different length fail with ErrDimensionMismatch. A zero-magnitude
// vector has no direction, so its similarity to anything is 0.
func CosineSimilarity(a, b EmbeddingVector) (float64, error) {
	if len(a) != len(b) {
		return 0, goerr.Wrap(ErrDimensionMismatch, "cannot compare vectors",
			goerr.V("len_a", len(a)),
			goerr.V("len_b", len(b)),
		)
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	score := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(score) {
		return 0, nil
	}
	return score, nil
}

// NamedText is one labelled field passed to CombineFields
type NamedText struct {
	Name  string
	Value string
}

// CombineFields joins non-blank fields as "{name}: {value}" separated by blank lines,
// in argument order.
func CombineFields(fields ...NamedText) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			continue
		}
		parts = append(parts, f.Name+": "+f.Value)
	}
	return strings.Join(parts, "\n\n")
}

// ArticleText is the text embedded for an article when scoring it
func ArticleText(detail *ArticleDetail) string {
	return CombineFields(
		NamedText{Name: "title", Value: detail.Title},
		NamedText{Name: "content", Value: detail.Extract},
		NamedText{Name: "categories", Value: strings.Join(detail.Categories, ", ")},
	)
}
