package stats

import (
	"time"

	"github.com/alexanderramin/era/internal/domain"
)

// BucketCounts tallies records per daytime bucket using the hour of each
// record's timestamp in loc. Every bucket is present, starting at zero.
func BucketCounts(records []*domain.SessionRecord, now time.Time, loc *time.Location) map[domain.DaytimeBucket]int {
	counts := make(map[domain.DaytimeBucket]int, len(domain.DaytimeBuckets))
	for _, b := range domain.DaytimeBuckets {
		counts[b] = 0
	}
	for _, r := range records {
		hour := r.Timestamp(now).In(loc).Hour()
		counts[domain.CategorizeHour(hour)]++
	}
	return counts
}

// DominantBucket returns the bucket with the highest count. Ties go to the
// earlier bucket in morning, lunch, dinner order.
func DominantBucket(records []*domain.SessionRecord, now time.Time, loc *time.Location) (domain.DaytimeBucket, bool) {
	if len(records) == 0 {
		return "", false
	}
	counts := BucketCounts(records, now, loc)
	best := domain.DaytimeBuckets[0]
	for _, b := range domain.DaytimeBuckets[1:] {
		if counts[b] > counts[best] {
			best = b
		}
	}
	return best, true
}
