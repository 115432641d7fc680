package cluster

import "github.com/agnivade/levenshtein"

// distanceMemo memoizes Levenshtein distance between normalized skeletons
// for the lifetime of a single Cluster call, keyed by an order-independent
// pair key. The core is single-threaded, so there is no mutex here.
type distanceMemo struct {
	values map[string]int
}

func newDistanceMemo() *distanceMemo {
	return &distanceMemo{values: make(map[string]int)}
}

func (m *distanceMemo) distance(a, b string) int {
	key := memoKey(a, b)
	if d, ok := m.values[key]; ok {
		return d
	}
	d := levenshtein.ComputeDistance(a, b)
	m.values[key] = d
	return d
}

func memoKey(a, b string) string {
	if a <= b {
		return a + "\x00" + b
	}
	return b + "\x00" + a
}
