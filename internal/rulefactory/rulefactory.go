// Package rulefactory builds Rule values for a given sequence length.
// Every factory takes the randomness source it needs as a parameter
// (never a package-level global) so the strategies stay deterministic
// under a seeded *rand.Rand in tests.
package rulefactory

import (
	"math/rand/v2"
	"sort"

	"minimizer/internal/rule"
)

// minLengthForSweep is the floor below which start/end-trim, middle,
// and sparse factories refuse to produce rules; below it only the
// small-length endgame (Combinations) applies.
const minLengthForSweep = 5

// StartEndTrimSweep builds an ordered list of RemoveContiguous rules
// that trim from the start (fromStart) or the end of the sequence.
// Cut-points are sampled from {1, ..., L-1}: up to n of them if L-1
// exceeds n, otherwise all of them. The result is ordered so the
// largest removal is tried first, since a caller stops at the first
// accepted improvement and smaller cuts in the same sweep would only
// be dominated by it.
func StartEndTrimSweep(r *rand.Rand, length, n int, fromStart bool) []rule.Rule {
	if length < minLengthForSweep {
		return nil
	}

	cuts := sampleCutPoints(r, length, n)

	// Descending by removed-span size: from the start that's descending
	// k; from the end that's ascending k (the span length-k grows as k
	// shrinks), so reverse the naturally-ascending sample order there.
	if fromStart {
		sort.Sort(sort.Reverse(sort.IntSlice(cuts)))
	} else {
		sort.Ints(cuts)
	}

	rules := make([]rule.Rule, 0, len(cuts))
	for _, k := range cuts {
		if fromStart {
			rules = append(rules, rule.NewRemoveContiguous(0, k, length))
		} else {
			rules = append(rules, rule.NewRemoveContiguous(k, length, length))
		}
	}
	return rules
}

// sampleCutPoints returns candidate cut-points in {1, ..., L-1}: every
// point if L-1 doesn't exceed n, else n of them sampled uniformly
// without replacement, sorted ascending. Sampling without replacement
// means the result never holds duplicates.
func sampleCutPoints(r *rand.Rand, length, n int) []int {
	if length <= 1 {
		return nil
	}
	domain := length - 1 // points 1..length-1

	if domain <= n {
		cuts := make([]int, domain)
		for i := range cuts {
			cuts[i] = i + 1
		}
		return cuts
	}

	seen := make(map[int]struct{}, n)
	cuts := make([]int, 0, n)
	for len(cuts) < n {
		k := 1 + r.IntN(domain)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		cuts = append(cuts, k)
	}
	sort.Ints(cuts)
	return cuts
}

// RandomContiguousMiddle picks a span [lo, hi) that excludes the first
// and last element, since those are the start/end-trim family's
// territory. Requires length >= minLengthForSweep.
func RandomContiguousMiddle(r *rand.Rand, length int) rule.Rule {
	if length < minLengthForSweep {
		return nil
	}
	lo := 1 + r.IntN(length-2)          // lo in [1, length-2]
	hi := lo + 1 + r.IntN(length-1-lo) // hi in (lo, length-1]
	return rule.NewRemoveContiguous(lo, hi, length)
}

// defaultSparseCap bounds the sparse-removal target count when the
// caller doesn't override it: clamp(sqrt(L), 3, 100).
func defaultSparseCap(length int) int {
	bound := isqrt(length)
	if bound < 3 {
		bound = 3
	}
	if bound > 100 {
		bound = 100
	}
	return bound
}

func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	x := 1
	for x*x <= n {
		x++
	}
	return x - 1
}

// RandomSparse picks a scattered, non-contiguous index set to remove.
// capOverride, if non-zero, replaces the default clamp(sqrt(L), 3, 100)
// bound on the sampled target count.
func RandomSparse(r *rand.Rand, length, capOverride int) rule.Rule {
	if length < minLengthForSweep {
		return nil
	}
	m := capOverride
	if m == 0 {
		m = defaultSparseCap(length)
	}
	if m < 3 {
		m = 3
	}

	target := 2 + r.IntN(m-2) // t in [2, m)
	count := target
	if count > length-1 {
		count = length - 1
	}
	count--
	if count < 1 {
		count = 1
	}

	seen := make(map[int]struct{}, count)
	indices := make([]int, 0, count)
	for len(indices) < count {
		idx := r.IntN(length)
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		indices = append(indices, idx)
	}
	return rule.NewRemoveSparse(indices, length)
}

// Combinations enumerates every non-empty proper subset of [0, length)
// as a RemoveSparse rule, ordered by descending cardinality (largest
// removal tried first). Valid only for the small-length endgame,
// 2 <= length <= 4.
func Combinations(length int) []rule.Rule {
	if length < 2 || length > 4 {
		return nil
	}

	var subsets [][]int
	full := 1 << length
	for mask := 1; mask < full-1; mask++ { // exclude empty (0) and full (full-1)
		var subset []int
		for i := 0; i < length; i++ {
			if mask&(1<<i) != 0 {
				subset = append(subset, i)
			}
		}
		subsets = append(subsets, subset)
	}

	sort.SliceStable(subsets, func(i, j int) bool {
		return len(subsets[i]) > len(subsets[j])
	})

	rules := make([]rule.Rule, 0, len(subsets))
	for _, subset := range subsets {
		rules = append(rules, rule.NewRemoveSparse(subset, length))
	}
	return rules
}

// RemoveExact builds a single-rule pass-through RemoveSparse, used for
// the Pedantic variant's one-by-one exhaustive pass.
func RemoveExact(index, length int) rule.Rule {
	return rule.NewRemoveSparse([]int{index}, length)
}
