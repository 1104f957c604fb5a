package memspy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompilePatternWildcardAndBytes(t *testing.T) {
	p, err := CompilePattern("22 ?? 44")
	require.NoError(t, err)
	require.Equal(t, 3, p.Len())

	require.True(t, p.Matches([]byte{0x22, 0xFF, 0x44}))
	require.True(t, p.Matches([]byte{0x22, 0x00, 0x44}))
	require.False(t, p.Matches([]byte{0x23, 0xFF, 0x44}))
}

func TestCompilePatternCaseInsensitiveHex(t *testing.T) {
	p, err := CompilePattern("aB Cd")
	require.NoError(t, err)
	require.True(t, p.Matches([]byte{0xAB, 0xCD}))
}

func TestCompilePatternEmptyIsLegal(t *testing.T) {
	p, err := CompilePattern("")
	require.NoError(t, err)
	require.Equal(t, 0, p.Len())

	p, err = CompilePattern("   ")
	require.NoError(t, err)
	require.Equal(t, 0, p.Len())
}

func TestCompilePatternMalformedToken(t *testing.T) {
	tests := []string{"ZZ", "1", "123", "??"[:1]}

	for _, tok := range tests {
		_, err := CompilePattern(tok)
		if !errors.Is(err, ErrMalformedPattern) {
			t.Errorf("CompilePattern(%q): want ErrMalformedPattern, got %v", tok, err)
		}
	}
}

func TestPatternMatchesRejectsWrongLength(t *testing.T) {
	p, err := CompilePattern("AA BB")
	require.NoError(t, err)
	require.False(t, p.Matches([]byte{0xAA}))
	require.False(t, p.Matches([]byte{0xAA, 0xBB, 0xCC}))
}
