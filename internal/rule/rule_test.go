package rule

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyRemoveContiguous(t *testing.T) {
	elements := []string{"a", "b", "c", "d", "e"}
	r := NewRemoveContiguous(1, 3, len(elements))
	out := Apply(r, elements)

	require.Equal(t, []string{"a", "d", "e"}, out)
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, elements, "Apply must not mutate its input")
}

func TestApplyRemoveSparseDedupes(t *testing.T) {
	elements := []string{"a", "b", "c", "d", "e"}
	r := NewRemoveSparse([]int{1, 3, 1}, len(elements))
	out := Apply(r, elements)

	require.Equal(t, []string{"a", "c", "e"}, out)
}

func TestResultLengthMatchesApply(t *testing.T) {
	elements := []string{"a", "b", "c", "d", "e"}
	contiguous := NewRemoveContiguous(0, 2, len(elements))
	sparse := NewRemoveSparse([]int{0, 2, 4}, len(elements))

	require.Equal(t, len(Apply(contiguous, elements)), ResultLength(contiguous, len(elements)))
	require.Equal(t, len(Apply(sparse, elements)), ResultLength(sparse, len(elements)))
}

func TestNewRemoveContiguousRejectsFullRemoval(t *testing.T) {
	require.Panics(t, func() {
		NewRemoveContiguous(0, 5, 5)
	})
}

func TestNewRemoveSparseRejectsEmpty(t *testing.T) {
	require.Panics(t, func() {
		NewRemoveSparse(nil, 5)
	})
}
