package synth

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patternscope/patternscope/internal/pattern"
)

func mustMatchAll(t *testing.T, node pattern.Node, members []string) {
	t.Helper()
	re, err := regexp.Compile("^" + node.ToRegex() + "$")
	require.NoError(t, err)
	for _, m := range members {
		assert.Truef(t, re.MatchString(m), "pattern %q did not match member %q", node.ToRegex(), m)
	}
}

func TestSynthesizeAccountCodes(t *testing.T) {
	members := []string{"ACC-12345", "ACCT-67890", "ACME-00001", "ORG-54321"}
	node := Synthesize(members, 5)
	mustMatchAll(t, node, members)
}

func TestSynthesizeQuarterLabels(t *testing.T) {
	members := []string{"2024-Q1", "2024-Q2", "2023-Q3", "2025-Q4"}
	node := Synthesize(members, 5)
	mustMatchAll(t, node, members)
}

func TestSynthesizeUniformDigitRun(t *testing.T) {
	members := []string{"001", "002", "003", "004", "005", "006", "007", "008"}
	node := Synthesize(members, 5)
	mustMatchAll(t, node, members)
	cc, ok := node.(pattern.CharClass)
	require.True(t, ok, "expected a single merged CharClass, got %T", node)
	assert.Equal(t, pattern.ClassDigit, cc.Kind)
}

func TestSynthesizeSparseColumnIsOptional(t *testing.T) {
	members := []string{"AB-1", "AB-1-X", "AB-1-Y"}
	node := Synthesize(members, 5)
	mustMatchAll(t, node, members)
}

func TestBestCandidatePicksLowestCostAboveFloor(t *testing.T) {
	members := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		members = append(members, "ID-"+string(rune('A'+i%26)))
	}
	got := BestCandidate(members)
	assert.GreaterOrEqual(t, got.Coverage, MinCandidateCoverage)
	mustMatchAll(t, got.Node, members)
}

func TestSelectBestFallsBackWhenNoneClearsFloor(t *testing.T) {
	candidates := []Candidate{
		{EnumThreshold: 5, Coverage: 0.80, Cost: 9.0},
		{EnumThreshold: 10, Coverage: 0.70, Cost: 3.0},
		{EnumThreshold: 20, Coverage: 0.60, Cost: 1.0},
		{EnumThreshold: 50, Coverage: 0.50, Cost: 0.5},
	}
	got := selectBest(candidates)
	assert.Equal(t, 5, got.EnumThreshold)
}

func TestSelectBestPicksLowestCostAboveFloor(t *testing.T) {
	candidates := []Candidate{
		{EnumThreshold: 5, Coverage: 1.0, Cost: 9.0},
		{EnumThreshold: 10, Coverage: 0.96, Cost: 3.0},
		{EnumThreshold: 20, Coverage: 0.97, Cost: 1.0},
		{EnumThreshold: 50, Coverage: 0.80, Cost: 0.5},
	}
	got := selectBest(candidates)
	assert.Equal(t, 20, got.EnumThreshold)
}

func TestEnumerateOrGeneralizeSmallSetAlwaysEnumerates(t *testing.T) {
	assert.True(t, enumerateOrGeneralize(5, 1000, 5))
}

func TestEnumerateOrGeneralizeAboveThresholdGeneralizes(t *testing.T) {
	assert.False(t, enumerateOrGeneralize(12, 100, 10))
}

func TestEnumerateOrGeneralizeHighRepetitionEnumerates(t *testing.T) {
	assert.True(t, enumerateOrGeneralize(8, 100, 10))
}

func TestEnumerateOrGeneralizeLowRepetitionGeneralizes(t *testing.T) {
	assert.False(t, enumerateOrGeneralize(8, 20, 10))
}

func TestOptimizeMergesAdjacentLiterals(t *testing.T) {
	node := optimize(pattern.NewSeq([]pattern.Node{
		pattern.Literal{Value: "a"},
		pattern.Literal{Value: "b"},
		pattern.CharClass{Kind: pattern.ClassDigit, Min: 1, Max: pattern.Finite(1)},
	}))
	seq, ok := node.(pattern.Seq)
	require.True(t, ok)
	require.Len(t, seq.Children, 2)
	lit, ok := seq.Children[0].(pattern.Literal)
	require.True(t, ok)
	assert.Equal(t, "ab", lit.Value)
}

func TestOptimizeMergesAdjacentCharClasses(t *testing.T) {
	node := optimize(pattern.NewSeq([]pattern.Node{
		pattern.CharClass{Kind: pattern.ClassDigit, Min: 2, Max: pattern.Finite(2)},
		pattern.CharClass{Kind: pattern.ClassDigit, Min: 3, Max: pattern.Finite(3)},
	}))
	cc, ok := node.(pattern.CharClass)
	require.True(t, ok)
	assert.Equal(t, 5, cc.Min)
	assert.Equal(t, 5, cc.Max.N())
}

func TestOptimizeDoesNotMergeDifferentClassKinds(t *testing.T) {
	node := optimize(pattern.NewSeq([]pattern.Node{
		pattern.CharClass{Kind: pattern.ClassDigit, Min: 2, Max: pattern.Finite(2)},
		pattern.CharClass{Kind: pattern.ClassUpper, Min: 3, Max: pattern.Finite(3)},
	}))
	seq, ok := node.(pattern.Seq)
	require.True(t, ok)
	assert.Len(t, seq.Children, 2)
}

func TestAddBoundsInfAbsorbs(t *testing.T) {
	got := addBounds(pattern.Finite(3), pattern.Inf)
	assert.True(t, got.IsInf())
}

func TestSynthesizeEmptyMembers(t *testing.T) {
	node := Synthesize(nil, 5)
	lit, ok := node.(pattern.Literal)
	require.True(t, ok)
	assert.Equal(t, "", lit.Value)
}
