package memory

import "math"

// CosineSimilarity returns the normalized dot product of a and b, in
// [-1, 1]. Mismatched lengths, empty vectors and zero-norm vectors all
// score 0, so one malformed stored record cannot abort a whole ranking
// pass; it simply never clears the relevance threshold.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
