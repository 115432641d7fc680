package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClusterPartitioningCoversInput(t *testing.T) {
	values := []string{
		"ACC-00001", "ACC-00002", "ORG-00003", "weird???", "another-weird!!",
	}
	clusters := Cluster(values, Options{MaxClusters: 10, MergeThreshold: 0.3, MinClusterSize: 1})

	seen := map[string]int{}
	for _, c := range clusters {
		for _, m := range c.Members {
			seen[m]++
		}
	}
	require.Len(t, seen, len(values))
	for _, v := range values {
		assert.Equal(t, 1, seen[v], "each input string must appear in exactly one cluster: %q", v)
	}
}

func TestClusterEmptyInput(t *testing.T) {
	assert.Empty(t, Cluster(nil, DefaultOptions))
	assert.Empty(t, Cluster([]string{}, DefaultOptions))
}

func TestClusterGroupsSharedSkeletons(t *testing.T) {
	values := []string{"ACC-001", "ACC-002", "ACCT-003", "ORG-004"}
	clusters := Cluster(values, Options{MaxClusters: 5, MergeThreshold: 0.3, MinClusterSize: 1})
	// Skeleton emits one "X" per token run, so ACC-###, ACCT-### and
	// ORG-### all have skeleton "X-X" and land in one group.
	found := false
	for _, c := range clusters {
		if len(c.Members) >= 3 {
			found = true
		}
	}
	assert.True(t, found, "expected ACC/ACCT members to merge into one cluster")
}

func TestClusterEnforcesMaxClusters(t *testing.T) {
	values := []string{
		"aaa", "bb-1", "c_c_c", "d.d.d.d", "e/e", "f@f", "g#g", "h$h",
	}
	clusters := Cluster(values, Options{MaxClusters: 3, MergeThreshold: 0.0, MinClusterSize: 1})
	assert.LessOrEqual(t, len(clusters), 3)
}

func TestClusterRepresentativeIsClosestToMedianLength(t *testing.T) {
	values := []string{"a", "aaa", "aaaaa"}
	clusters := Cluster(values, Options{MaxClusters: 5, MergeThreshold: 0.3, MinClusterSize: 1})
	require.Len(t, clusters, 1)
	assert.Equal(t, "aaa", clusters[0].Representative)
}

func TestSkeletonReplacesRunsWithX(t *testing.T) {
	assert.Equal(t, "X-X", Skeleton("ACC-00123"))
	assert.Equal(t, "X_X", Skeleton("A 1"))
}

func TestNormalizedDistanceIdenticalSkeletonsAreZero(t *testing.T) {
	memo := newDistanceMemo()
	assert.Equal(t, 0.0, normalizedDistance(memo, "X-X", "XX-X"))
}
