package domain

import (
	"math"
	"time"
)

type CacheEntry struct {
	Fingerprint string
	Content     string
	CachedAt    time.Time
	Metadata    map[string]string
}

type CacheStats struct {
	Hits   int64
	Misses int64
}

// HitRate is a percentage rounded to one decimal, 0 when nothing was looked up.
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return math.Round(float64(s.Hits)/float64(total)*1000) / 10
}
