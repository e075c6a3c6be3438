package sequence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromBytesRoundTrip(t *testing.T) {
	s := FromBytes([]byte("AAAAABROKENAAAAA"))
	require.Equal(t, Bytes, s.Mode())
	require.Equal(t, 16, s.Len())
	require.Equal(t, []byte("AAAAABROKENAAAAA"), s.Serialize())
}

func TestFromCharactersHandlesMultibyteRunes(t *testing.T) {
	s := FromCharacters("aéb") // 'a', 'é', 'b'
	require.Equal(t, 3, s.Len())
	require.Equal(t, "aéb", string(s.Serialize()))
}

func TestFromLinesNoTrailingNewline(t *testing.T) {
	s := FromLines("x\nBAD\ny\nz\nw")
	require.Equal(t, 5, s.Len())
	require.Equal(t, "x\nBAD\ny\nz\nw", string(s.Serialize()))

	s.Replace([]string{"BAD"})
	require.Equal(t, "BAD", string(s.Serialize()))
}

func TestFromLinesEmptyInput(t *testing.T) {
	s := FromLines("")
	require.Equal(t, 0, s.Len())
}

func TestCloneIsIndependent(t *testing.T) {
	s := FromBytes([]byte("hello"))
	clone := s.Clone()
	clone.Replace([]string{"h", "i"})

	require.Equal(t, 5, s.Len())
	require.Equal(t, 2, clone.Len())
}
