// Package token splits strings into runs of a single lexical class and
// derives the structural signatures clustering and synthesis key off of.
package token

import "strings"

// Kind classifies a single run of characters.
type Kind int

const (
	// Digits is a run of 0-9.
	Digits Kind = iota
	// Upper is a run of A-Z.
	Upper
	// Lower is a run of a-z.
	Lower
	// Alpha is a merged run of Upper/Lower, only produced by TokenizeMerged.
	Alpha
	// Alnum is reserved for callers that merge Alpha and Digits themselves;
	// the tokenizer never emits it directly.
	Alnum
	// Whitespace is a run of space/tab/newline/carriage-return.
	Whitespace
	// Delimiter is a single character from the fixed delimiter set.
	Delimiter
	// Literal is any other character (non-ASCII letters, symbols, emoji).
	Literal
)

// String returns the letter used in full/compact signatures.
func (k Kind) String() string {
	switch k {
	case Digits:
		return "D"
	case Upper:
		return "U"
	case Lower:
		return "L"
	case Alpha:
		return "A"
	case Alnum:
		return "X"
	case Whitespace:
		return "_"
	case Delimiter:
		return "Delimiter"
	case Literal:
		return "Literal"
	default:
		return "?"
	}
}

// delimiters is the fixed ASCII delimiter set.
const delimiters = "-_./\\@#$%^&*()+=[]{}|;:'\",<>?!`~"

// Token is a single run of characters of one lexical Kind.
type Token struct {
	Kind     Kind
	Value    string // exact substring, code-point-level
	Length   int    // number of code points in Value, >= 1
	Position int    // starting code-point offset in the source string
}

func classify(r rune) Kind {
	switch {
	case r >= '0' && r <= '9':
		return Digits
	case r >= 'A' && r <= 'Z':
		return Upper
	case r >= 'a' && r <= 'z':
		return Lower
	case strings.ContainsRune(delimiters, r):
		return Delimiter
	case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		return Whitespace
	default:
		return Literal
	}
}

// Tokenize walks s code point by code point, classifying each character and
// extending the current run while the class matches. Delimiter tokens never
// extend: every delimiter character produces its own token. Tokenization is
// total; the empty string yields an empty slice.
func Tokenize(s string) []Token {
	return tokenize(s, false)
}

// TokenizeMerged behaves like Tokenize, then collapses adjacent
// Upper/Lower/Alpha tokens into a single Alpha token whose Value is their
// concatenation (the merge_alpha option).
func TokenizeMerged(s string) []Token {
	return mergeAlpha(tokenize(s, false))
}

func tokenize(s string, _ bool) []Token {
	if s == "" {
		return nil
	}
	runes := []rune(s)
	tokens := make([]Token, 0, len(runes))

	pos := 0
	for i := 0; i < len(runes); {
		k := classify(runes[i])
		start := i
		i++
		if k != Delimiter {
			for i < len(runes) && classify(runes[i]) == k {
				i++
			}
		}
		value := string(runes[start:i])
		tokens = append(tokens, Token{
			Kind:     k,
			Value:    value,
			Length:   i - start,
			Position: pos,
		})
		pos += i - start
	}
	return tokens
}

func isAlphaLike(k Kind) bool {
	return k == Upper || k == Lower || k == Alpha
}

func mergeAlpha(tokens []Token) []Token {
	if len(tokens) == 0 {
		return tokens
	}
	merged := make([]Token, 0, len(tokens))
	i := 0
	for i < len(tokens) {
		if !isAlphaLike(tokens[i].Kind) {
			merged = append(merged, tokens[i])
			i++
			continue
		}
		start := i
		var sb strings.Builder
		pos := tokens[i].Position
		for i < len(tokens) && isAlphaLike(tokens[i].Kind) {
			sb.WriteString(tokens[i].Value)
			i++
		}
		value := sb.String()
		merged = append(merged, Token{
			Kind:     Alpha,
			Value:    value,
			Length:   len([]rune(value)),
			Position: pos,
		})
		_ = start
	}
	return merged
}

// Signature returns the full signature of s: each character-class token
// contributes Length copies of its class letter; Delimiter/Literal tokens
// contribute their raw value.
func Signature(s string) string {
	var sb strings.Builder
	for _, t := range Tokenize(s) {
		writeSignature(&sb, t, true)
	}
	return sb.String()
}

// CompactSignature returns the compact signature of s: each token
// contributes a single class letter; delimiters/literals still contribute
// their raw value.
func CompactSignature(s string) string {
	var sb strings.Builder
	for _, t := range Tokenize(s) {
		writeSignature(&sb, t, false)
	}
	return sb.String()
}

func writeSignature(sb *strings.Builder, t Token, full bool) {
	switch t.Kind {
	case Delimiter, Literal:
		sb.WriteString(t.Value)
	default:
		letter := t.Kind.String()
		if full {
			for i := 0; i < t.Length; i++ {
				sb.WriteString(letter)
			}
		} else {
			sb.WriteString(letter)
		}
	}
}

// Concat reassembles the original string from a token sequence; used by
// tests to check the "tokenization covers input" invariant.
func Concat(tokens []Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(t.Value)
	}
	return sb.String()
}
