// Package costmodel scores candidate patterns: coverage for the
// synthesizer's best-candidate selection, and the combined Score the
// profile assembler records on each pattern.
// It mirrors the ratio/threshold shape of a classic quality filter
// (absolute-threshold / ratio-test combination), but scores against four
// independent axes instead of a single generation-ratio heuristic.
package costmodel

import (
	"math"

	"github.com/patternscope/patternscope/internal/dedupe"
	"github.com/patternscope/patternscope/internal/pattern"
)

// Weights are the score() weights.
type Weights struct {
	Coverage         float64
	Precision        float64
	Complexity       float64
	Interpretability float64
}

// DefaultWeights are the standard scoring weights.
var DefaultWeights = Weights{
	Coverage:         2.0,
	Precision:        1.5,
	Complexity:       1.0,
	Interpretability: 0.5,
}

// Coverage is the fraction of s whose full string p's compiled regex
// matches. An empty input set has coverage 0.0.
func Coverage(p pattern.Node, s []string) float64 {
	if len(s) == 0 {
		return 0.0
	}
	matched := 0
	for _, v := range s {
		if pattern.Matches(p, v) {
			matched++
		}
	}
	return float64(matched) / float64(len(s))
}

// MatchCount is Coverage's numerator, exposed directly since the profile
// assembler needs matched_count as well as coverage.
func MatchCount(p pattern.Node, s []string) int {
	matched := 0
	for _, v := range s {
		if pattern.Matches(p, v) {
			matched++
		}
	}
	return matched
}

// Precision blends specificity with an empirical valid/invalid match
// ratio. If sInvalid is empty, precision is just specificity(p).
func Precision(p pattern.Node, sValid, sInvalid []string) float64 {
	if len(sInvalid) == 0 {
		return p.Specificity()
	}
	v := MatchCount(p, sValid)
	i := MatchCount(p, sInvalid)
	if v+i == 0 {
		return p.Specificity()
	}
	return (p.Specificity() + float64(v)/float64(v+i)) / 2
}

// Complexity maps cost(p) into [0,1].
func Complexity(p pattern.Node) float64 {
	return math.Min(p.Cost()/50, 1.0)
}

// Interpretability is a step function of the pattern's top-level sequence
// length and its largest Enum, in {0.3, 0.5, 0.6, 0.8, 1.0}. The exact
// band boundaries are a concrete resolution recorded in DESIGN.md.
func Interpretability(p pattern.Node) float64 {
	seqLen := seqLength(p)
	maxEnum := maxEnumSize(p)

	switch {
	case seqLen <= 1 && maxEnum <= 5:
		return 1.0
	case seqLen <= 3 && maxEnum <= 10:
		return 0.8
	case seqLen <= 5 && maxEnum <= 20:
		return 0.6
	case seqLen <= 8:
		return 0.5
	default:
		return 0.3
	}
}

func seqLength(p pattern.Node) int {
	if s, ok := p.(pattern.Seq); ok {
		return len(s.Children)
	}
	return 1
}

func maxEnumSize(p pattern.Node) int {
	switch n := p.(type) {
	case pattern.Enum:
		return len(n.Values)
	case pattern.Seq:
		max := 0
		for _, c := range n.Children {
			if m := maxEnumSize(c); m > max {
				max = m
			}
		}
		return max
	case pattern.Optional:
		return maxEnumSize(n.Inner)
	default:
		return 0
	}
}

// Score combines the four axes into a single scalar. Lower is better. The
// profile assembler records it on each PatternInfo; best-candidate
// selection (coverage and cost) and output ordering (coverage) do not use it.
func Score(p pattern.Node, sValid, sInvalid []string, w Weights) float64 {
	cov := Coverage(p, sValid)
	prec := Precision(p, sValid, sInvalid)
	cplx := Complexity(p)
	interp := Interpretability(p)
	return w.Coverage*(1-cov) + w.Precision*(1-prec) + w.Complexity*cplx + w.Interpretability*(1-interp)
}

// SuggestEnumThreshold picks an enum_threshold from the shape of s: tightly
// repeated small vocabularies ("categorical") get more headroom than long
// tails of near-unique values.
func SuggestEnumThreshold(s []string) int {
	n := len(s)
	if n == 0 {
		return 3
	}
	d := dedupe.Count(s)
	if d == 0 {
		return 3
	}
	ratio := float64(n) / float64(d)

	switch {
	case d <= 10 && ratio >= 3:
		return d + 5
	case d <= 30 && ratio >= 2:
		return 10
	case d <= 100:
		return 5
	default:
		return 3
	}
}
