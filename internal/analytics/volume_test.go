package analytics

import (
	"testing"
	"time"

	"tweetkit/internal/model"
)

func ts(s string) *string { return &s }

func TestHourlyVolume(t *testing.T) {
	tweets := []*model.Tweet{
		{CreatedAtTS: ts("2020-05-01 10:05:00")},
		{CreatedAtTS: ts("2020-05-01 10:59:59")},
		{CreatedAtTS: ts("2020-05-01 11:00:00")},
		{CreatedAtTS: nil}, // unparseable created_at, skipped
	}
	buckets := HourlyVolume(tweets)
	if len(buckets) != 2 {
		t.Fatalf("buckets = %v", buckets)
	}
	keys := SortedBucketKeys(buckets)
	if !keys[0].Before(keys[1]) {
		t.Fatal("keys not sorted")
	}
	ten := time.Date(2020, 5, 1, 10, 0, 0, 0, time.UTC)
	if buckets[ten] != 2 {
		t.Fatalf("10:00 bucket = %d, want 2", buckets[ten])
	}
}
