package patternscope

// Options controls the profiling pipeline. Zero-value Options is not
// usable directly; callers should start from DefaultOptions.
type Options struct {
	// MaxClusters is the upper bound on surviving clusters.
	MaxClusters int `yaml:"max_clusters" json:"max_clusters"`
	// MinCoverage drops surviving PatternInfos below this coverage.
	MinCoverage float64 `yaml:"min_coverage" json:"min_coverage"`
	// EnumThreshold is the max distinct values before generalizing at a
	// synthesized position, and the distinct-value short-circuit bound.
	EnumThreshold int `yaml:"enum_threshold" json:"enum_threshold"`
	// DetectAnomalies toggles population of Profile.Anomalies.
	DetectAnomalies bool `yaml:"detect_anomalies" json:"detect_anomalies"`
	// LengthTolerance is accepted for API compatibility; it has no
	// observable effect on synthesis.
	LengthTolerance float64 `yaml:"length_tolerance" json:"length_tolerance"`
	// MergeThreshold is the skeleton-distance ceiling for merging clusters.
	MergeThreshold float64 `yaml:"merge_threshold" json:"merge_threshold"`
	// MinClusterSize drops clusters smaller than this during clustering.
	MinClusterSize int `yaml:"min_cluster_size" json:"min_cluster_size"`
}

// DefaultOptions reproduces the documented defaults exactly.
var DefaultOptions = Options{
	MaxClusters:     5,
	MinCoverage:     0.01,
	EnumThreshold:   10,
	DetectAnomalies: true,
	LengthTolerance: 0.2,
	MergeThreshold:  0.3,
	MinClusterSize:  1,
}
