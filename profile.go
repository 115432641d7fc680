// Package patternscope discovers regular-expression patterns that
// describe the structural format of a column of text values, via
// tokenization, structural clustering, per-cluster pattern synthesis, and
// global coverage/anomaly accounting.
package patternscope

import (
	"time"

	"github.com/coregx/coregex"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/projectdiscovery/gologger"

	"github.com/patternscope/patternscope/internal/cluster"
	"github.com/patternscope/patternscope/internal/costmodel"
	"github.com/patternscope/patternscope/internal/dedupe"
	"github.com/patternscope/patternscope/internal/pattern"
	"github.com/patternscope/patternscope/internal/synth"
)

// PatternInfo is one surviving pattern in a Profile.
type PatternInfo struct {
	Pattern      pattern.Node
	RegexString  string
	Coverage     float64
	MatchedCount int
	Members      []string
	Cost         float64
	Specificity  float64
	// Score is costmodel.Score against this pattern's matches and the
	// rest of the column as its invalid set. It does not affect the
	// order of Profile.Patterns, which is by descending Coverage.
	Score float64
}

// Stats summarizes a Profile's coverage over its input column.
type Stats struct {
	TotalValues    int
	DistinctValues int
	PatternCount   int
	TotalCoverage  float64
	AnomalyCount   int
}

// Profile is the immutable result of profiling a column of values. Every
// exported field is set once by NewProfile() and never mutated afterward.
type Profile struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Patterns  []PatternInfo
	Anomalies []string
	Stats     Stats
	Options   Options
}

// regexCache is a bounded LRU of compiled regexes keyed by their anchored
// ("^...$") source string. It lives at package scope rather than as a
// field on Profile, so Profile itself stays a plain serializable value;
// the cache is a pure memoization layer that no correctness property
// depends on.
var regexCache *lru.Cache[string, *coregex.Regex]

func init() {
	c, err := lru.New[string, *coregex.Regex](512)
	if err != nil {
		panic(err)
	}
	regexCache = c
}

func compiledRegex(regexString string) (*coregex.Regex, error) {
	key := "^" + regexString + "$"
	if re, ok := regexCache.Get(key); ok {
		return re, nil
	}
	re, err := coregex.Compile(key)
	if err != nil {
		return nil, err
	}
	regexCache.Add(key, re)
	return re, nil
}

// NewProfile runs the full synthesis pipeline over values and assembles
// the resulting Profile. An empty values slice is rejected with
// ErrEmptyInput.
func NewProfile(values []string, opts Options) (*Profile, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}

	distinct := dedupe.Distinct(values)
	if len(distinct) <= opts.EnumThreshold {
		gologger.Debug().Msgf("patternscope: %d distinct values <= enum_threshold %d, short-circuiting", len(distinct), opts.EnumThreshold)
		return assembleEnumProfile(values, distinct, opts), nil
	}

	clusters := cluster.Cluster(values, cluster.Options{
		MaxClusters:    opts.MaxClusters,
		MergeThreshold: opts.MergeThreshold,
		MinClusterSize: opts.MinClusterSize,
	})

	patterns := make([]PatternInfo, 0, len(clusters))
	for _, c := range clusters {
		candidate := synth.BestCandidate(c.Members)
		info := buildPatternInfo(candidate.Node, values)
		if info.Coverage < opts.MinCoverage {
			continue
		}
		patterns = append(patterns, info)
	}

	sortByDescendingCoverage(patterns)

	anomalies := detectAnomalies(values, patterns, opts)

	return &Profile{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		Patterns:  patterns,
		Anomalies: anomalies,
		Stats:     computeStats(values, patterns, anomalies),
		Options:   opts,
	}, nil
}

func assembleEnumProfile(values, distinct []string, opts Options) *Profile {
	node := pattern.NewEnum(distinct)
	info := buildPatternInfo(node, values)
	return &Profile{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		Patterns:  []PatternInfo{info},
		Anomalies: nil,
		Stats:     computeStats(values, []PatternInfo{info}, nil),
		Options:   opts,
	}
}

func buildPatternInfo(node pattern.Node, values []string) PatternInfo {
	matched := matchingMembers(node, values)
	unmatched := nonMembers(values, matched)
	return PatternInfo{
		Pattern:      node,
		RegexString:  node.ToRegex(),
		Coverage:     float64(len(matched)) / float64(len(values)),
		MatchedCount: len(matched),
		Members:      matched,
		Cost:         node.Cost(),
		Specificity:  node.Specificity(),
		Score:        costmodel.Score(node, matched, unmatched, costmodel.DefaultWeights),
	}
}

// nonMembers returns the values not present in matched, used as a
// pattern's empirical invalid set for costmodel.Precision.
func nonMembers(values, matched []string) []string {
	matchedSet := make(map[string]struct{}, len(matched))
	for _, m := range matched {
		matchedSet[m] = struct{}{}
	}
	out := make([]string, 0, len(values)-len(matched))
	for _, v := range values {
		if _, ok := matchedSet[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}

func matchingMembers(node pattern.Node, values []string) []string {
	matched := make([]string, 0, len(values))
	for _, v := range values {
		if pattern.Matches(node, v) {
			matched = append(matched, v)
		}
	}
	return matched
}

// sortByDescendingCoverage orders patterns by strictly descending
// Coverage, stably (equal-coverage patterns keep their assembly order).
// Score is carried on PatternInfo as a secondary quality signal for
// callers that want it, but it never reorders the output: coverage
// ordering is the output contract.
func sortByDescendingCoverage(patterns []PatternInfo) {
	for i := 1; i < len(patterns); i++ {
		for j := i; j > 0 && patterns[j].Coverage > patterns[j-1].Coverage; j-- {
			patterns[j], patterns[j-1] = patterns[j-1], patterns[j]
		}
	}
}

func detectAnomalies(values []string, patterns []PatternInfo, opts Options) []string {
	if !opts.DetectAnomalies {
		return nil
	}
	anomalies := make([]string, 0)
	for _, v := range values {
		matched := false
		for _, p := range patterns {
			if pattern.Matches(p.Pattern, v) {
				matched = true
				break
			}
		}
		if !matched {
			anomalies = append(anomalies, v)
		}
	}
	return anomalies
}

func computeStats(values []string, patterns []PatternInfo, anomalies []string) Stats {
	sum := 0
	for _, p := range patterns {
		sum += p.MatchedCount
	}
	total := float64(sum) / float64(len(values))
	if total > 1.0 {
		total = 1.0
	}
	return Stats{
		TotalValues:    len(values),
		DistinctValues: dedupe.Count(values),
		PatternCount:   len(patterns),
		TotalCoverage:  total,
		AnomalyCount:   len(anomalies),
	}
}

// Validate reports whether value matches at least one of p's patterns,
// using the shared compiled-regex cache rather than recompiling the AST.
func Validate(p *Profile, value string) error {
	for _, info := range p.Patterns {
		re, err := compiledRegex(info.RegexString)
		if err != nil {
			gologger.Warning().Msgf("patternscope: failed to compile %q: %v", info.RegexString, err)
			continue
		}
		if re.MatchString(value) {
			return nil
		}
	}
	return ErrNoMatch
}

// InferPattern runs the synthesizer once over values at opts.EnumThreshold
// (no clustering, no best-candidate search across thresholds) and returns
// the raw AST.
func InferPattern(values []string, opts Options) pattern.Node {
	return synth.Synthesize(values, opts.EnumThreshold)
}

// InferRegex is ToRegex(InferPattern(values, opts)).
func InferRegex(values []string, opts Options) string {
	return InferPattern(values, opts).ToRegex()
}
