package signals

import (
	"context"
	"math"

	"github.com/sreevallabh04/gitalong/internal/domain/embedding"
	"github.com/sreevallabh04/gitalong/internal/domain/model"
)

// BioSimilarity scores the semantic closeness of two bios in [0, 1].
//
// Vectors come from the shared embedding cache, so repeated rankings of the
// same users never re-encode unchanged bios. Cosine similarity can be
// negative; negative results clamp to 0 because an opposed semantic
// relationship is treated as "no similarity", not penalized further.
// The returned error wraps embedding.ErrEncodeFailed when the provider
// cannot encode either bio.
func (c *Calculator) BioSimilarity(ctx context.Context, a, b model.Profile) (float64, error) {
	va, err := c.embeddings.VectorFor(ctx, a.ID, a.Bio)
	if err != nil {
		return 0, err
	}
	vb, err := c.embeddings.VectorFor(ctx, b.ID, b.Bio)
	if err != nil {
		return 0, err
	}
	return math.Max(0, embedding.Cosine(va, vb)), nil
}

// Warm ensures p's embedding is cached, encoding it if needed. Rankers call
// this for the requester up front so a requester-side provider failure
// surfaces before any candidate work.
func (c *Calculator) Warm(ctx context.Context, p model.Profile) error {
	_, err := c.embeddings.VectorFor(ctx, p.ID, p.Bio)
	return err
}
