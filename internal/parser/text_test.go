package parser

import (
	"errors"
	"math"
	"strings"
	"testing"

	"ElectionSeed/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRounded(t *testing.T) {
	cases := map[string]int{
		"12.6":   13,
		"12.4":   12,
		"12.5":   12,
		"13.5":   14,
		" 42 ":   42,
		"１２３":    123,
		`"7.0"`:  7,
		"0":      0,
		"1000.0": 1000,
	}
	for in, want := range cases {
		got, err := ParseRounded(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseRounded_Malformed(t *testing.T) {
	for _, in := range []string{"", "abc", "NaN", "Inf", "1,000", "-", "1e20", "9.3e18", "-5", "2147483648"} {
		_, err := ParseRounded(in)
		assert.True(t, errors.Is(err, model.ErrMalformedNumber), in)
	}
}

func TestParseRounded_Bounds(t *testing.T) {
	got, err := ParseRounded("0")
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	got, err = ParseRounded("2147483647")
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt32, got)
}

func TestParseHalf(t *testing.T) {
	got, err := ParseHalf("100")
	require.NoError(t, err)
	assert.Equal(t, 50, got)

	got, err = ParseHalf("101")
	require.NoError(t, err)
	assert.Equal(t, 50, got)

	got, err = ParseHalf("103")
	require.NoError(t, err)
	assert.Equal(t, 52, got)
}

func TestSplitFields(t *testing.T) {
	assert.Equal(t, []string{"", "有権者数", "10", "20"}, SplitFields(",,有権者数,,10,20\r\n"))
	assert.Equal(t, []string{"A", "B", ""}, SplitFields("A,B,,,"))
	assert.Equal(t, []string{"A", "B"}, TrimPadding(SplitFields("A,B,,,")))
	assert.Nil(t, Tail([]string{"a", "b"}, 3))
	assert.Equal(t, []string{"c"}, Tail([]string{"a", "b", "c"}, 2))
}

func TestReadLines(t *testing.T) {
	lines, err := ReadLines(strings.NewReader("\ufeffa,b\r\nc\n\nd"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a,b", "c", "", "d"}, lines)
}

func TestNewDecodingReader(t *testing.T) {
	// "東京" in Shift_JIS
	sjis := []byte{0x93, 0x8c, 0x8b, 0x9e}
	r, err := NewDecodingReader(strings.NewReader(string(sjis)), "shift_jis")
	require.NoError(t, err)
	lines, err := ReadLines(r)
	require.NoError(t, err)
	assert.Equal(t, []string{"東京"}, lines)

	_, err = NewDecodingReader(strings.NewReader(""), "latin-9")
	assert.Error(t, err)
}
