package detect

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/vision-works/go-regions/images"
)

// Default thresholds for Suppress, overridable per call.
const (
	// DefaultScoreThreshold is the minimum confidence for a candidate to be
	// eligible at all.
	DefaultScoreThreshold = float32(0.5)
	// DefaultOverlapThreshold is the maximum IoU a kept box may have with
	// any higher-ranked kept box.
	DefaultOverlapThreshold = float32(0.3)
)

// Suppress removes overlapping candidates from the set with greedy
// non-maximum suppression, each category handled independently.
//
// Per category: candidates scoring below scoreThreshold are discarded, the
// rest are sorted by confidence descending (stable on ties), then the
// highest remaining candidate is kept and every remaining candidate whose
// IoU with it exceeds overlapThreshold is removed, repeating until none
// remain. Kept candidates come out in selection order, so each category's
// list ends up confidence-descending.
//
// The set is mutated in place - lists only ever shrink - and returned for
// chaining. Running Suppress again on its own output with the same
// thresholds is a no-op, since every surviving pair already has
// IoU <= overlapThreshold.
//
// Arguments:
//   - set: The decoded candidate set.
//   - scoreThreshold: Minimum confidence, in [0,1].
//   - overlapThreshold: Maximum allowed IoU against kept boxes, in [0,1].
//
// Returns:
//   - The same set with only surviving candidates, or ErrInvalidThreshold.
func Suppress(set *Set, scoreThreshold, overlapThreshold float32) (*Set, error) {
	if scoreThreshold < 0 || scoreThreshold > 1 {
		return nil, errors.Wrapf(ErrInvalidThreshold, "score threshold %f", scoreThreshold)
	}
	if overlapThreshold < 0 || overlapThreshold > 1 {
		return nil, errors.Wrapf(ErrInvalidThreshold, "overlap threshold %f", overlapThreshold)
	}

	for _, id := range set.Categories() {
		set.replace(id, suppressCategory(set.Get(id), scoreThreshold, overlapThreshold))
	}
	return set, nil
}

func suppressCategory(candidates []Candidate, scoreThreshold, overlapThreshold float32) []Candidate {
	eligible := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Score >= scoreThreshold {
			eligible = append(eligible, c)
		}
	}

	// Stable keeps the decode order for equal scores.
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Score > eligible[j].Score
	})

	kept := make([]Candidate, 0, len(eligible))
	removed := make([]bool, len(eligible))
	for i := 0; i < len(eligible); i++ {
		if removed[i] {
			continue
		}
		kept = append(kept, eligible[i])
		for j := i + 1; j < len(eligible); j++ {
			if removed[j] {
				continue
			}
			if images.CalculateIoU(eligible[i].Box, eligible[j].Box) > overlapThreshold {
				removed[j] = true
			}
		}
	}
	return kept
}
