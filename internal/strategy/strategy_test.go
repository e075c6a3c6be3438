package strategy

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"minimizer/internal/budget"
	"minimizer/internal/oracle"
	"minimizer/internal/rule"
	"minimizer/internal/sequence"
)

// markerEvaluator is interesting iff the candidate's serialized form
// contains a fixed marker substring — a stand-in for a real oracle
// subprocess, matching the S1/S2 scenarios in spec.md §8.
type markerEvaluator struct {
	marker string

	mu    sync.Mutex
	calls int
}

func (m *markerEvaluator) Evaluate(_ context.Context, seq *sequence.Sequence, _ int) (oracle.Result, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return oracle.Result{Interesting: strings.Contains(string(seq.Serialize()), m.marker)}, nil
}

func newSeededOpts(maxAttempts int) (Options, *budget.Budget) {
	b := budget.New(maxAttempts, false)
	return Options{Rand: rand.New(rand.NewPCG(7, 11)), Budget: b}, b
}

func TestAttemptRejectionLeavesSequenceUntouched(t *testing.T) {
	seq := sequence.FromBytes([]byte("AAAAABROKENAAAAA"))
	before := string(seq.Serialize())

	eval := &markerEvaluator{marker: "NEVER MATCHES"}
	opts, _ := newSeededOpts(10)

	r := rule.NewRemoveContiguous(0, 5, seq.Len())
	accepted, err := attempt(context.Background(), seq, r, eval, opts, func(*sequence.Sequence) error { return nil })

	require.NoError(t, err)
	require.False(t, accepted)
	require.Equal(t, before, string(seq.Serialize()))
}

func TestAttemptAcceptanceCommitsAndPersists(t *testing.T) {
	seq := sequence.FromBytes([]byte("AAAAABROKENAAAAA"))
	eval := &markerEvaluator{marker: "BROKEN"}
	opts, _ := newSeededOpts(10)

	var persisted string
	commit := func(s *sequence.Sequence) error {
		persisted = string(s.Serialize())
		return nil
	}

	r := rule.NewRemoveContiguous(0, 5, seq.Len())
	accepted, err := attempt(context.Background(), seq, r, eval, opts, commit)

	require.NoError(t, err)
	require.True(t, accepted)
	require.Equal(t, "BROKENAAAAA", string(seq.Serialize()))
	require.Equal(t, string(seq.Serialize()), persisted)
}

func TestGeneralShrinksToMarkerWithinBudget(t *testing.T) {
	seq := sequence.FromBytes([]byte("AAAAABROKENAAAAA"))
	eval := &markerEvaluator{marker: "BROKEN"}
	opts, b := newSeededOpts(500)

	var lengths []int
	commit := func(s *sequence.Sequence) error {
		lengths = append(lengths, s.Len())
		return nil
	}

	err := General{}.Run(context.Background(), seq, eval, opts, commit)
	require.NoError(t, err)
	require.Contains(t, string(seq.Serialize()), "BROKEN")
	require.LessOrEqual(t, seq.Len(), len("AAAAABROKENAAAAA"))

	for i := 1; i < len(lengths); i++ {
		require.Less(t, lengths[i], lengths[i-1], "every committed step must strictly shrink the sequence")
	}
	require.LessOrEqual(t, b.AllIterations(), 500)
}

func TestGeneralRespectsTinyBudget(t *testing.T) {
	// No single-rule reduction should be accepted against an evaluator
	// that is never interesting; with attempts=3 the strategy must stop
	// having made no more than 3 oracle calls, output untouched.
	seq := sequence.FromBytes([]byte("AAAAAAAAAA"))
	eval := &markerEvaluator{marker: "NEVER MATCHES"}
	opts, b := newSeededOpts(3)

	err := General{}.Run(context.Background(), seq, eval, opts, func(*sequence.Sequence) error { return nil })
	require.NoError(t, err)
	require.Equal(t, "AAAAAAAAAA", string(seq.Serialize()))
	require.LessOrEqual(t, eval.calls, 3)
}

func TestGeneralHonorsMaxTime(t *testing.T) {
	seq := sequence.FromBytes([]byte("AAAAAAAAAAAAAAAAAAAA"))
	eval := &markerEvaluator{marker: "NEVER MATCHES"}
	opts, _ := newSeededOpts(1_000_000)
	opts.Deadline = time.Now().Add(-time.Second) // already expired

	err := General{}.Run(context.Background(), seq, eval, opts, func(*sequence.Sequence) error { return nil })
	require.NoError(t, err)
	require.LessOrEqual(t, eval.calls, 2) // warm-up's first couple of rules, at most
}

func TestPedanticEndgameOnTinySequence(t *testing.T) {
	seq := sequence.FromBytes([]byte("ABCD"))
	eval := &markerEvaluator{marker: "B"}
	opts, _ := newSeededOpts(100)

	err := Pedantic{}.Run(context.Background(), seq, eval, opts, func(*sequence.Sequence) error { return nil })
	require.NoError(t, err)
	require.Equal(t, "B", string(seq.Serialize()))
}

func TestGeneralMultiShrinksToMarker(t *testing.T) {
	seq := sequence.FromBytes([]byte("AAAAABROKENAAAAA"))
	eval := &markerEvaluator{marker: "BROKEN"}
	opts, b := newSeededOpts(2000)

	err := GeneralMulti{}.Run(context.Background(), seq, eval, opts, func(*sequence.Sequence) error { return nil })
	require.NoError(t, err)
	require.Contains(t, string(seq.Serialize()), "BROKEN")
	require.Greater(t, b.AllIterations(), 0)
}

func TestBatchSizeNeverExceedsAvailableBudget(t *testing.T) {
	opts, _ := newSeededOpts(3)
	require.LessOrEqual(t, batchSize(opts), 3)
}

func TestPickSmallestTiesGoToLowestIndex(t *testing.T) {
	results := []*batchResult{
		{worker: 1, length: 5},
		{worker: 2, length: 5},
		nil,
		{worker: 4, length: 3},
	}
	winner := pickSmallest(results)
	require.Equal(t, 3, winner.length)
	require.Equal(t, 4, winner.worker)

	tie := []*batchResult{
		{worker: 1, length: 5},
		{worker: 2, length: 5},
	}
	require.Equal(t, 1, pickSmallest(tie).worker)
}
