// Package cluster groups input strings by delimiter-skeleton similarity,
// respecting a max-cluster budget.
package cluster

import (
	"sort"
	"strings"

	"github.com/projectdiscovery/gologger"

	"github.com/patternscope/patternscope/internal/token"
)

// Options configures clustering. Zero-value fields are replaced by
// DefaultOptions' defaults by Cluster itself, so callers can set only the
// fields they care about.
type Options struct {
	MaxClusters     int
	MergeThreshold  float64
	MinClusterSize  int
}

// DefaultOptions are the standard clustering defaults.
var DefaultOptions = Options{
	MaxClusters:    5,
	MergeThreshold: 0.3,
	MinClusterSize: 1,
}

// Cluster is a group of input strings sharing a delimiter skeleton.
type Cluster struct {
	ID               int
	Members          []string
	Signature        string
	CompactSignature string
	Representative   string
}

// Skeleton reduces s to its delimiter skeleton: "_" for Whitespace, the
// literal value for Delimiter, "X" for every other token kind.
func Skeleton(s string) string {
	var sb strings.Builder
	for _, t := range token.Tokenize(s) {
		switch t.Kind {
		case token.Whitespace:
			sb.WriteByte('_')
		case token.Delimiter:
			sb.WriteString(t.Value)
		default:
			sb.WriteByte('X')
		}
	}
	return sb.String()
}

// normalize collapses runs of "X" into a single "X", used only for the
// merge-distance metric; Skeleton itself is left alone so downstream
// callers still see the real per-run skeleton.
func normalize(skeleton string) string {
	var sb strings.Builder
	prevX := false
	for _, r := range skeleton {
		if r == 'X' {
			if prevX {
				continue
			}
			prevX = true
		} else {
			prevX = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func normalizedDistance(memo *distanceMemo, a, b string) float64 {
	na, nb := normalize(a), normalize(b)
	if na == nb {
		return 0
	}
	longer := len([]rune(na))
	if l := len([]rune(nb)); l > longer {
		longer = l
	}
	if longer == 0 {
		return 0
	}
	return float64(memo.distance(na, nb)) / float64(longer)
}

type skeletonGroup struct {
	skeleton string
	members  []string
	order    int // first-seen order, for stable tie-breaking
}

// Cluster implements the four-stage skeleton/merge/size/finalize algorithm. Empty input
// yields an empty cluster list.
func Cluster(values []string, opts Options) []Cluster {
	if opts.MaxClusters <= 0 {
		opts.MaxClusters = DefaultOptions.MaxClusters
	}
	if opts.MergeThreshold == 0 {
		opts.MergeThreshold = DefaultOptions.MergeThreshold
	}
	if opts.MinClusterSize <= 0 {
		opts.MinClusterSize = DefaultOptions.MinClusterSize
	}
	if len(values) == 0 {
		return nil
	}

	groups := skeletonGrouping(values)
	merged := similarityMerging(groups, opts.MergeThreshold)
	merged = enforceSizeAndCount(merged, opts.MinClusterSize, opts.MaxClusters)

	clusters := make([]Cluster, 0, len(merged))
	for i, g := range merged {
		clusters = append(clusters, finalize(i, g.members))
	}

	gologger.Debug().Msgf("cluster: %d values -> %d clusters", len(values), len(clusters))
	return clusters
}

// skeletonGrouping is stage 1: group strings by their delimiter skeleton.
func skeletonGrouping(values []string) []*skeletonGroup {
	index := make(map[string]*skeletonGroup)
	var order []*skeletonGroup
	for _, v := range values {
		sk := Skeleton(v)
		g, ok := index[sk]
		if !ok {
			g = &skeletonGroup{skeleton: sk, order: len(order)}
			index[sk] = g
			order = append(order, g)
		}
		g.members = append(g.members, v)
	}
	return order
}

// similarityMerging is stage 2: enumerate skeleton groups by descending
// member count; for each remaining group greedily absorb every later group
// within merge_threshold normalized skeleton distance.
func similarityMerging(groups []*skeletonGroup, threshold float64) []*skeletonGroup {
	ordered := append([]*skeletonGroup(nil), groups...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].members) > len(ordered[j].members)
	})

	memo := newDistanceMemo()
	absorbed := make([]bool, len(ordered))
	merged := make([]*skeletonGroup, 0, len(ordered))

	for i := range ordered {
		if absorbed[i] {
			continue
		}
		host := ordered[i]
		for j := i + 1; j < len(ordered); j++ {
			if absorbed[j] {
				continue
			}
			if normalizedDistance(memo, host.skeleton, ordered[j].skeleton) <= threshold {
				host.members = append(host.members, ordered[j].members...)
				absorbed[j] = true
			}
		}
		merged = append(merged, host)
	}
	return merged
}

// enforceSizeAndCount is stage 3: drop groups under min_cluster_size, then
// cap the surviving count at max_clusters, folding the overflow into one
// tail cluster.
func enforceSizeAndCount(groups []*skeletonGroup, minSize, maxClusters int) []*skeletonGroup {
	kept := make([]*skeletonGroup, 0, len(groups))
	for _, g := range groups {
		if len(g.members) >= minSize {
			kept = append(kept, g)
		}
	}

	if len(kept) <= maxClusters {
		return kept
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return len(kept[i].members) > len(kept[j].members)
	})

	head := kept[:maxClusters-1]
	tail := kept[maxClusters-1:]

	var tailMembers []string
	for _, g := range tail {
		tailMembers = append(tailMembers, g.members...)
	}
	tailGroup := &skeletonGroup{skeleton: "", members: tailMembers}

	result := make([]*skeletonGroup, 0, maxClusters)
	result = append(result, head...)
	result = append(result, tailGroup)
	return result
}

// finalize is stage 4: compute the representative (member with length
// closest to the median, ties broken by first-seen order) and attach the
// representative's signature and compact signature.
func finalize(id int, members []string) Cluster {
	rep := representative(members)
	return Cluster{
		ID:               id,
		Members:          members,
		Signature:        token.Signature(rep),
		CompactSignature: token.CompactSignature(rep),
		Representative:   rep,
	}
}

func representative(members []string) string {
	if len(members) == 1 {
		return members[0]
	}
	lengths := make([]int, len(members))
	for i, m := range members {
		lengths[i] = len([]rune(m))
	}
	sorted := append([]int(nil), lengths...)
	sort.Ints(sorted)
	median := sorted[len(sorted)/2]
	if len(sorted)%2 == 0 {
		// even count: either of the two middle lengths is equally median,
		// so the lower-middle plus "closest then first-seen" tie-breaking
		// below is enough.
		median = sorted[len(sorted)/2-1]
	}

	bestIdx := 0
	bestDelta := -1
	for i, l := range lengths {
		delta := l - median
		if delta < 0 {
			delta = -delta
		}
		if bestDelta == -1 || delta < bestDelta {
			bestDelta = delta
			bestIdx = i
		}
	}
	return members[bestIdx]
}
