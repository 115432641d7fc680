package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeCoversInput(t *testing.T) {
	inputs := []string{
		"", "a", "ACC-00123", "user@example.com", "  spaced  out  ",
		"日本語mix123", "a1B2-c3_D4", "???",
	}
	for _, s := range inputs {
		tokens := Tokenize(s)
		require.Equal(t, s, Concat(tokens), "tokenization must cover %q exactly", s)

		pos := 0
		for _, tk := range tokens {
			assert.Equal(t, pos, tk.Position)
			assert.GreaterOrEqual(t, tk.Length, 1)
			pos += tk.Length
		}
	}
}

func TestTokenizeDelimitersNeverExtend(t *testing.T) {
	tokens := Tokenize("a--b")
	require.Len(t, tokens, 4)
	assert.Equal(t, Lower, tokens[0].Kind)
	assert.Equal(t, Delimiter, tokens[1].Kind)
	assert.Equal(t, 1, tokens[1].Length)
	assert.Equal(t, Delimiter, tokens[2].Kind)
	assert.Equal(t, Lower, tokens[3].Kind)
}

func TestTokenizeClassification(t *testing.T) {
	tokens := Tokenize("ACC-00123")
	kinds := make([]Kind, len(tokens))
	for i, tk := range tokens {
		kinds[i] = tk.Kind
	}
	assert.Equal(t, []Kind{Upper, Delimiter, Digits}, kinds)
}

func TestTokenizeMergedCollapsesAlpha(t *testing.T) {
	tokens := TokenizeMerged("ABcd12")
	require.Len(t, tokens, 2)
	assert.Equal(t, Alpha, tokens[0].Kind)
	assert.Equal(t, "ABcd", tokens[0].Value)
	assert.Equal(t, Digits, tokens[1].Kind)
}

func TestSignatureFullAndCompact(t *testing.T) {
	assert.Equal(t, "UUU-DDDDD", Signature("ACC-00123"))
	assert.Equal(t, "U-D", CompactSignature("ACC-00123"))
}

func TestSignatureWhitespace(t *testing.T) {
	assert.Equal(t, "U__D", Signature("A  1"))
	assert.Equal(t, "U_D", CompactSignature("A  1"))
}

func TestTokenizeEmptyString(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Equal(t, "", Signature(""))
}

func TestTokenizeUnicodePositionsAreCodePoints(t *testing.T) {
	tokens := Tokenize("日本語-01")
	require.Len(t, tokens, 3)
	assert.Equal(t, 0, tokens[0].Position)
	assert.Equal(t, 3, tokens[1].Position) // delimiter after 3 code points
	assert.Equal(t, 4, tokens[2].Position)
}
