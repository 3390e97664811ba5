package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBracketKindPairs(t *testing.T) {
	for _, kind := range []BracketKind{Paren, Square, Curly} {
		t.Run(kind.String(), func(t *testing.T) {
			got, ok := OpenerKind(kind.Open())
			require.True(t, ok)
			assert.Equal(t, kind, got)

			got, ok = CloserKind(kind.Close())
			require.True(t, ok)
			assert.Equal(t, kind, got)

			_, ok = OpenerKind(kind.Close())
			assert.False(t, ok, "closer must not classify as opener")
		})
	}
}

func TestNonBrackets(t *testing.T) {
	for _, r := range "<>/*\"'a \n" {
		_, open := OpenerKind(r)
		_, closed := CloserKind(r)
		assert.False(t, open || closed, "%q is not a bracket", r)
	}
}

func TestBracketKindText(t *testing.T) {
	text, err := Square.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "square", string(text))

	var k BracketKind
	require.NoError(t, k.UnmarshalText([]byte("curly")))
	assert.Equal(t, Curly, k)

	assert.Error(t, k.UnmarshalText([]byte("angle")))

	_, err = BracketKind(0).MarshalText()
	assert.Error(t, err)
}
