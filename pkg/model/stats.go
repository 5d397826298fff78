// Package model defines the shared data types for the heap-analysis service.
package model

// Stats is a pair of object count and byte total. It forms a commutative
// monoid under Add with ZeroStats as the identity, which lets aggregation
// run in any order.
type Stats struct {
	Count uint64 `json:"count"`
	Bytes uint64 `json:"bytes"`
}

// ZeroStats is the identity element for Add.
var ZeroStats = Stats{}

// Add returns the pointwise sum of s and other.
func (s Stats) Add(other Stats) Stats {
	return Stats{
		Count: s.Count + other.Count,
		Bytes: s.Bytes + other.Bytes,
	}
}

// IsZero reports whether s is the identity element.
func (s Stats) IsZero() bool {
	return s.Count == 0 && s.Bytes == 0
}

// StatsEntry pairs a display key with its aggregated Stats, used by the
// ranked top-N reports.
type StatsEntry struct {
	Key   string `json:"key"`
	Stats Stats  `json:"stats"`
}
