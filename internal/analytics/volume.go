package analytics

import (
	"sort"
	"time"

	"tweetkit/internal/model"
)

const tsLayout = "2006-01-02 15:04:05"

// HourlyVolume buckets tweets by the hour of their normalized creation
// timestamp. Tweets without one are skipped.
func HourlyVolume(tweets []*model.Tweet) map[time.Time]int {
	buckets := make(map[time.Time]int)
	for _, t := range tweets {
		if t.CreatedAtTS == nil {
			continue
		}
		ts, err := time.Parse(tsLayout, *t.CreatedAtTS)
		if err != nil {
			continue
		}
		key := ts.Truncate(time.Hour)
		buckets[key]++
	}
	return buckets
}

// SortedBucketKeys returns sorted hour keys.
func SortedBucketKeys(m map[time.Time]int) []time.Time {
	keys := make([]time.Time, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}
