package patternscope

import "github.com/patternscope/patternscope/internal/dedupe"

// Merge re-profiles the deduplicated union of a and b's PatternInfo
// members under a's Options. Anomalies recorded on either input Profile
// are not part of that union, so a prior outlier in a or b is forgotten
// by the merged Profile rather than carried forward.
func Merge(a, b *Profile) *Profile {
	union := dedupe.Union(patternMembers(a), patternMembers(b))
	merged, err := NewProfile(union, a.Options)
	if err != nil {
		return &Profile{Options: a.Options}
	}
	return merged
}

func patternMembers(p *Profile) []string {
	members := make([]string, 0)
	for _, info := range p.Patterns {
		members = append(members, info.Members...)
	}
	return members
}
