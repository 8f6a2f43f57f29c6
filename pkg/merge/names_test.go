package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameSet_Claim(t *testing.T) {
	s := newNameSet(0)

	for _, want := range []string{"part", "part_2", "part_3"} {
		got, err := s.claim("part")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// A literal "part_2" input must not reuse the generated name.
	got, err := s.claim("part_2")
	require.NoError(t, err)
	assert.Equal(t, "part_2_2", got)

	got, err = s.claim("cube")
	require.NoError(t, err)
	assert.Equal(t, "cube", got)
}

func TestNameSet_Exhausted(t *testing.T) {
	s := newNameSet(3)

	for range 3 {
		_, err := s.claim("x")
		require.NoError(t, err)
	}
	_, err := s.claim("x")
	assert.ErrorIs(t, err, ErrNameCollisionExhausted)
}
