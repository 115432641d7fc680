package patternscope

// Export renders p as a plain, serialization-ready record. The "pretty"
// field is carried for API compatibility with the external contract but
// is not a distinct human-friendly rendering (that is explicitly out of
// scope); it is the same regex string as "regex". "members" is carried
// so a round-trip through Export and back into NewProfile (as Merge's
// CLI adapter does) reconstructs the same cluster membership.
func Export(p *Profile) map[string]any {
	patterns := make([]map[string]any, 0, len(p.Patterns))
	for _, info := range p.Patterns {
		patterns = append(patterns, map[string]any{
			"regex":         info.RegexString,
			"pretty":        info.RegexString,
			"coverage":      info.Coverage,
			"matched_count": info.MatchedCount,
			"specificity":   info.Specificity,
			"score":         info.Score,
			"members":       info.Members,
		})
	}

	return map[string]any{
		"id":         p.ID.String(),
		"created_at": p.CreatedAt,
		"patterns":   patterns,
		"anomalies":  p.Anomalies,
		"stats": map[string]any{
			"total_values":    p.Stats.TotalValues,
			"distinct_values": p.Stats.DistinctValues,
			"pattern_count":   p.Stats.PatternCount,
			"total_coverage":  p.Stats.TotalCoverage,
			"anomaly_count":   p.Stats.AnomalyCount,
		},
	}
}
