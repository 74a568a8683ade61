package group

import (
	"math"

	"github.com/slidesift/slidesift/internal/model"
)

// SimilarPair is a cross-slide claim pair whose embeddings cleared the
// similarity threshold.
type SimilarPair struct {
	I, J       int // Indices into the claims slice
	Similarity float64
}

// CosineSimilarity returns the cosine of the angle between two vectors.
// Empty, mismatched, or zero-magnitude vectors score 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// SimilarPairs returns every cross-slide claim pair whose embedding
// similarity meets the threshold. Same-slide pairs are skipped: the goal is
// inconsistency between slides, not restatement within one.
func SimilarPairs(claims []model.Claim, embeddings [][]float64, threshold float64) []SimilarPair {
	var pairs []SimilarPair
	for i := 0; i < len(claims); i++ {
		for j := i + 1; j < len(claims); j++ {
			if claims[i].Slide == claims[j].Slide {
				continue
			}
			if sim := CosineSimilarity(embeddings[i], embeddings[j]); sim >= threshold {
				pairs = append(pairs, SimilarPair{I: i, J: j, Similarity: sim})
			}
		}
	}
	return pairs
}
