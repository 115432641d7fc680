// Package synth implements the synthesizer: per cluster, align member
// tokens column-wise, choose the best pattern element at every column,
// assemble, and optimize.
package synth

import (
	"github.com/patternscope/patternscope/internal/costmodel"
	"github.com/patternscope/patternscope/internal/pattern"
	"github.com/patternscope/patternscope/internal/token"
)

// CandidateThresholds are the four enum_threshold values best-candidate
// selection evaluates.
var CandidateThresholds = []int{5, 10, 20, 50}

// MinCandidateCoverage is the coverage floor a candidate must clear to be
// considered.
const MinCandidateCoverage = 0.95

// Synthesize runs the column-alignment/per-column-synthesis/assemble/
// optimize pipeline once, at a single enum_threshold, over members. Members
// is expected to be non-empty; an empty slice returns Literal("").
func Synthesize(members []string, enumThreshold int) pattern.Node {
	if len(members) == 0 {
		return pattern.Literal{Value: ""}
	}

	tokenized := make([][]token.Token, len(members))
	maxCols := 0
	for i, m := range members {
		tokenized[i] = token.Tokenize(m)
		if len(tokenized[i]) > maxCols {
			maxCols = len(tokenized[i])
		}
	}

	children := make([]pattern.Node, 0, maxCols)
	for c := 0; c < maxCols; c++ {
		bag := make([]token.Token, 0, len(members))
		for _, toks := range tokenized {
			if c < len(toks) {
				bag = append(bag, toks[c])
			}
		}
		elem := synthesizeColumn(bag, enumThreshold)
		if len(bag) < len(members) {
			// Not every member has a token at this column: the element is
			// structurally optional rather than always present.
			elem = pattern.Optional{Inner: elem}
		}
		children = append(children, elem)
	}

	return optimize(pattern.NewSeq(children))
}

// Candidate is one best-candidate-selection trial.
type Candidate struct {
	EnumThreshold int
	Node          pattern.Node
	Coverage      float64
	Cost          float64
}

// BestCandidate runs Synthesize at each of CandidateThresholds, evaluates
// each against members (coverage and cost), discards sub-0.95-coverage
// candidates, and returns the lowest-cost survivor. If none clears the
// coverage floor, it falls back to the first candidate (enum_threshold=5).
func BestCandidate(members []string) Candidate {
	candidates := make([]Candidate, 0, len(CandidateThresholds))
	for _, t := range CandidateThresholds {
		node := Synthesize(members, t)
		candidates = append(candidates, Candidate{
			EnumThreshold: t,
			Node:          node,
			Coverage:      costmodel.Coverage(node, members),
			Cost:          node.Cost(),
		})
	}

	return selectBest(candidates)
}

// selectBest picks the lowest-cost candidate whose coverage clears
// MinCandidateCoverage, falling back to candidates[0] if none do.
func selectBest(candidates []Candidate) Candidate {
	best := -1
	for i, c := range candidates {
		if c.Coverage < MinCandidateCoverage {
			continue
		}
		if best == -1 || c.Cost < candidates[best].Cost {
			best = i
		}
	}
	if best == -1 {
		return candidates[0]
	}
	return candidates[best]
}

// enumerateOrGeneralize implements the enumerate-vs-generalize decision of
// enumerate if d<=5; never enumerate if d>threshold;
// otherwise enumerate iff d <= 0.3*n (high repetition).
func enumerateOrGeneralize(distinctCount, totalCount, threshold int) bool {
	if distinctCount <= 5 {
		return true
	}
	if distinctCount > threshold {
		return false
	}
	return float64(distinctCount) <= 0.3*float64(totalCount)
}

func distinctValues(values []string) []string {
	set := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := set[v]; ok {
			continue
		}
		set[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func minMaxLen(values []string) (int, int) {
	min, max := -1, 0
	for _, v := range values {
		l := len([]rune(v))
		if min == -1 || l < min {
			min = l
		}
		if l > max {
			max = l
		}
	}
	if min == -1 {
		min = 0
	}
	return min, max
}

func classFor(k token.Kind) pattern.ClassKind {
	switch k {
	case token.Digits:
		return pattern.ClassDigit
	case token.Upper:
		return pattern.ClassUpper
	case token.Lower:
		return pattern.ClassLower
	case token.Alpha:
		return pattern.ClassAlpha
	case token.Alnum:
		return pattern.ClassAlnum
	default:
		return pattern.ClassAny
	}
}

// synthesizeColumn implements the per-column synthesis rules for one
// (possibly sparse) column bag.
func synthesizeColumn(bag []token.Token, enumThreshold int) pattern.Node {
	if len(bag) == 0 {
		return pattern.Any{Min: 0, Max: pattern.Inf}
	}

	kinds := make(map[token.Kind]bool)
	for _, t := range bag {
		kinds[t.Kind] = true
	}

	if len(kinds) == 1 {
		var only token.Kind
		for k := range kinds {
			only = k
		}
		switch only {
		case token.Delimiter:
			return synthesizeDelimiter(bag)
		case token.Whitespace:
			return synthesizeWhitespace(bag)
		case token.Literal:
			return synthesizeLiteralKind(bag, enumThreshold)
		default:
			return synthesizeCharClassKind(bag, only, enumThreshold)
		}
	}

	if onlyUpperLower(kinds) {
		return synthesizeCharClassKind(bag, token.Alpha, enumThreshold)
	}

	return synthesizeMixed(bag, enumThreshold)
}

func onlyUpperLower(kinds map[token.Kind]bool) bool {
	for k := range kinds {
		if k != token.Upper && k != token.Lower {
			return false
		}
	}
	return len(kinds) > 0
}

func values(bag []token.Token) []string {
	out := make([]string, len(bag))
	for i, t := range bag {
		out[i] = t.Value
	}
	return out
}

func synthesizeDelimiter(bag []token.Token) pattern.Node {
	vals := values(bag)
	distinct := distinctValues(vals)
	if len(distinct) == 1 {
		return pattern.Literal{Value: distinct[0]}
	}
	return pattern.NewEnum(distinct)
}

func synthesizeWhitespace(bag []token.Token) pattern.Node {
	length := bag[0].Length
	uniform := true
	for _, t := range bag {
		if t.Length != length {
			uniform = false
			break
		}
	}
	if uniform {
		return pattern.Literal{Value: repeat(' ', length)}
	}
	lo, hi := minMaxLen(values(bag))
	return pattern.Any{Min: lo, Max: pattern.Finite(hi)}
}

func repeat(r rune, n int) string {
	runes := make([]rune, n)
	for i := range runes {
		runes[i] = r
	}
	return string(runes)
}

func synthesizeLiteralKind(bag []token.Token, enumThreshold int) pattern.Node {
	vals := values(bag)
	distinct := distinctValues(vals)
	if len(distinct) <= enumThreshold {
		return pattern.NewEnum(distinct)
	}
	lo, hi := minMaxLen(vals)
	return pattern.Any{Min: lo, Max: pattern.Finite(hi)}
}

func synthesizeCharClassKind(bag []token.Token, kind token.Kind, enumThreshold int) pattern.Node {
	vals := values(bag)
	distinct := distinctValues(vals)
	if enumerateOrGeneralize(len(distinct), len(vals), enumThreshold) {
		return pattern.NewEnum(distinct)
	}
	lo, hi := minMaxLen(vals)
	return pattern.CharClass{Kind: classFor(kind), Min: lo, Max: pattern.Finite(hi)}
}

func synthesizeMixed(bag []token.Token, enumThreshold int) pattern.Node {
	vals := values(bag)
	distinct := distinctValues(vals)
	if len(distinct) <= enumThreshold {
		return pattern.NewEnum(distinct)
	}
	lo, hi := minMaxLen(vals)
	return pattern.CharClass{Kind: pattern.ClassAlnum, Min: lo, Max: pattern.Finite(hi)}
}

// optimize is the single bottom-up pass over the assembled Seq: merge
// adjacent Literal nodes, merge adjacent CharClass nodes of identical kind
// (summing min/max, Inf absorbing), and collapse a one-element sequence to
// that element.
func optimize(n pattern.Node) pattern.Node {
	seq, ok := n.(pattern.Seq)
	if !ok {
		return n
	}

	merged := make([]pattern.Node, 0, len(seq.Children))
	for _, c := range seq.Children {
		if len(merged) == 0 {
			merged = append(merged, c)
			continue
		}
		last := merged[len(merged)-1]
		if combined, ok := mergeAdjacent(last, c); ok {
			merged[len(merged)-1] = combined
			continue
		}
		merged = append(merged, c)
	}

	return pattern.NewSeq(merged)
}

func mergeAdjacent(a, b pattern.Node) (pattern.Node, bool) {
	al, aok := a.(pattern.Literal)
	bl, bok := b.(pattern.Literal)
	if aok && bok {
		return pattern.Literal{Value: al.Value + bl.Value}, true
	}

	ac, acok := a.(pattern.CharClass)
	bc, bcok := b.(pattern.CharClass)
	if acok && bcok && ac.Kind == bc.Kind {
		return pattern.CharClass{
			Kind: ac.Kind,
			Min:  ac.Min + bc.Min,
			Max:  addBounds(ac.Max, bc.Max),
		}, true
	}

	return nil, false
}

func addBounds(a, b pattern.Bound) pattern.Bound {
	if a.IsInf() || b.IsInf() {
		return pattern.Inf
	}
	return pattern.Finite(a.N() + b.N())
}
