package strategy

import (
	"context"

	"minimizer/internal/rule"
	"minimizer/internal/rulefactory"
	"minimizer/internal/sequence"
)

// category is one bucket of the weighted-random rule mixture from
// spec.md §4.5.
type category int

const (
	categoryStartTrim category = iota
	categoryEndTrim
	categoryContiguousMiddle
	categorySparse
)

// mixtureWeights mirrors spec.md's table exactly: start-trim 2,
// end-trim 10, contiguous-middle 30, sparse 10.
var mixtureWeights = []struct {
	category category
	weight   int
}{
	{categoryStartTrim, 2},
	{categoryEndTrim, 10},
	{categoryContiguousMiddle, 30},
	{categorySparse, 10},
}

func totalMixtureWeight() int {
	total := 0
	for _, m := range mixtureWeights {
		total += m.weight
	}
	return total
}

// sampleCategory draws one category from the weighted mixture.
func sampleCategory(opts Options) category {
	n := opts.Rand.IntN(totalMixtureWeight())
	for _, m := range mixtureWeights {
		if n < m.weight {
			return m.category
		}
		n -= m.weight
	}
	return mixtureWeights[len(mixtureWeights)-1].category
}

// mainLoopRule draws one rule from the weighted mixture for the
// current sequence length. It returns nil if the sampled category has
// nothing to offer at this length (below the factories' floor), in
// which case the caller should just try again on the next iteration.
func mainLoopRule(opts Options, length int) rule.Rule {
	switch sampleCategory(opts) {
	case categoryStartTrim:
		rules := rulefactory.StartEndTrimSweep(opts.Rand, length, 1, true)
		return firstOrNil(rules)
	case categoryEndTrim:
		rules := rulefactory.StartEndTrimSweep(opts.Rand, length, 1, false)
		return firstOrNil(rules)
	case categoryContiguousMiddle:
		return rulefactory.RandomContiguousMiddle(opts.Rand, length)
	case categorySparse:
		return rulefactory.RandomSparse(opts.Rand, length, 0)
	default:
		return nil
	}
}

func firstOrNil(rules []rule.Rule) rule.Rule {
	if len(rules) == 0 {
		return nil
	}
	return rules[0]
}

// attempt applies r to seq, evaluates the candidate, and on success
// commits it: replaces seq's elements, persists via commit, records
// the improvement against the budget, and returns true. On failure (or
// oracle error) seq is left untouched and false is returned; an oracle
// error is returned to the caller, which is always fatal per spec.md §7.
func attempt(ctx context.Context, seq *sequence.Sequence, r rule.Rule, eval Evaluator, opts Options, commit CommitFunc) (bool, error) {
	opts.Budget.RecordAttempt()

	candidateElements := rule.Apply(r, seq.Elements())
	candidate := sequence.New(seq.Mode(), candidateElements)

	result, err := eval.Evaluate(ctx, candidate, opts.Worker)
	if err != nil {
		return false, err
	}
	if !result.Interesting {
		if opts.Logger != nil {
			opts.Logger.RuleAttempted(opts.Pass, r.String(), false, seq.Len())
		}
		return false, nil
	}

	seq.Replace(candidateElements)
	if err := commit(seq); err != nil {
		return false, err
	}
	opts.Budget.RecordImprovement()
	if opts.Logger != nil {
		opts.Logger.RuleAttempted(opts.Pass, r.String(), true, seq.Len())
	}
	return true, nil
}

// runWarmUp performs spec.md §4.5 step 1: a start-trim sweep with
// N=5, then an end-trim sweep with N=endTrimN, each sweep stopping at
// the first accepted improvement. It returns early (without error) if
// a stop condition fires between rules.
func runWarmUp(ctx context.Context, seq *sequence.Sequence, eval Evaluator, opts Options, commit CommitFunc, endTrimN int) error {
	sweeps := []struct {
		n         int
		fromStart bool
	}{
		{5, true},
		{endTrimN, false},
	}

	for _, sweep := range sweeps {
		if stopped(seq, opts, true) {
			return nil
		}
		rules := rulefactory.StartEndTrimSweep(opts.Rand, seq.Len(), sweep.n, sweep.fromStart)
		for _, r := range rules {
			if stopped(seq, opts, true) {
				return nil
			}
			accepted, err := attempt(ctx, seq, r, eval, opts, commit)
			if err != nil {
				return err
			}
			if accepted {
				break // dominated remainder of this sweep is skipped
			}
		}
	}
	return nil
}

// runEndgame performs spec.md §4.5 step 3: once 2 <= len(seq) <= 4,
// exhaustively try every non-empty proper subset, largest first, and
// commit the first one that's interesting.
func runEndgame(ctx context.Context, seq *sequence.Sequence, eval Evaluator, opts Options, commit CommitFunc) error {
	for seq.Len() >= 2 && seq.Len() <= 4 {
		rules := rulefactory.Combinations(seq.Len())
		committedAny := false
		for _, r := range rules {
			accepted, err := attempt(ctx, seq, r, eval, opts, commit)
			if err != nil {
				return err
			}
			if accepted {
				committedAny = true
				break
			}
			if opts.Budget.Exhausted() {
				return nil
			}
		}
		if !committedAny {
			return nil // no subset improved on this length; endgame is exhausted
		}
	}
	return nil
}
