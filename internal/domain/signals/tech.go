package signals

import (
	"math"
	"sort"
	"strings"
)

// TechOverlap scores the weighted overlap of two technology stacks in [0, 1].
//
// Labels are compared case-insensitively and de-duplicated. An empty stack on
// either side scores 0. Each shared label contributes its configured weight
// (defaultTechWeight when unlisted); the weighted sum is normalized by
// max(|A|, |B|) × 0.9 and clamped to 1. Normalizing by the larger stack keeps
// a user with a sprawling stack from trivially maxing out against a small,
// fully-overlapping one.
func (c *Calculator) TechOverlap(stackA, stackB []string) float64 {
	setA := normalizeStack(stackA)
	setB := normalizeStack(stackB)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	var weighted float64
	shared := false
	for tech := range setA {
		if _, ok := setB[tech]; !ok {
			continue
		}
		shared = true
		w, ok := c.techWeights[tech]
		if !ok {
			w = c.defaultTechWeight
		}
		weighted += w
	}
	if !shared {
		return 0
	}

	maxPossible := float64(max(len(setA), len(setB))) * techNormFactor
	return math.Min(weighted/maxPossible, 1.0)
}

// SharedTech returns the shared lower-cased labels of two stacks, up to n,
// in deterministic (sorted) order. Used for justification strings.
func SharedTech(stackA, stackB []string, n int) []string {
	setA := normalizeStack(stackA)
	setB := normalizeStack(stackB)
	var out []string
	for tech := range setA {
		if _, ok := setB[tech]; ok {
			out = append(out, tech)
		}
	}
	sort.Strings(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func normalizeStack(stack []string) map[string]struct{} {
	out := make(map[string]struct{}, len(stack))
	for _, t := range stack {
		t = lower(t)
		if t != "" {
			out[t] = struct{}{}
		}
	}
	return out
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
