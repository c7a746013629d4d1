// Package embedding defines the text-embedding contract used by the bio
// similarity signal, plus the per-user vector cache.
//
// The engine never talks to an embedding model directly: it goes through a
// Provider (which may be a remote API or a local encoder) and memoizes the
// result per user identity until that user's bio changes.
package embedding

import (
	"context"
	"math"
	"strings"
)

// MinBioLength is the shortest bio that is considered meaningful. Anything
// shorter is replaced by the placeholder before encoding, so users without a
// written bio still get a deterministic, non-degenerate vector.
const MinBioLength = 10

// DefaultPlaceholderBio stands in for empty or too-short bios.
const DefaultPlaceholderBio = "Software developer interested in open source collaboration"

// Vector is a fixed-length embedding produced by a Provider.
type Vector []float32

// Provider encodes free text into a fixed-length vector.
//
// Encode must be deterministic for a fixed provider version and must honor
// ctx for cancellation. A provider that cannot encode the given text returns
// an error wrapping ErrEncodeFailed.
type Provider interface {
	Encode(ctx context.Context, text string) (Vector, error)

	// Dimensions returns the length of vectors produced by this provider.
	Dimensions() int

	// Model identifies the underlying model, for logging.
	Model() string
}

// EffectiveBio returns the text that is actually encoded for a bio:
// the bio itself when meaningful, the placeholder otherwise.
func EffectiveBio(bio string) string {
	if len(strings.TrimSpace(bio)) < MinBioLength {
		return DefaultPlaceholderBio
	}
	return bio
}

// Cosine returns the cosine similarity of a and b in [-1, 1].
// Mismatched lengths or zero vectors yield 0.
func Cosine(a, b Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
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
