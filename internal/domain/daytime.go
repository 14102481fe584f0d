package domain

type DaytimeBucket string

const (
	DaytimeMorning DaytimeBucket = "morning"
	DaytimeLunch   DaytimeBucket = "lunch"
	DaytimeDinner  DaytimeBucket = "dinner"
)

// DaytimeBuckets lists buckets in tie-break order.
var DaytimeBuckets = []DaytimeBucket{DaytimeMorning, DaytimeLunch, DaytimeDinner}

// CategorizeHour maps an hour of day to a bucket. Late night and early
// morning hours (22-4) fall into dinner; there is no night bucket.
func CategorizeHour(hour int) DaytimeBucket {
	switch {
	case hour >= 5 && hour <= 10:
		return DaytimeMorning
	case hour >= 11 && hour <= 15:
		return DaytimeLunch
	default:
		return DaytimeDinner
	}
}

// Label is the capitalized display form.
func (b DaytimeBucket) Label() string {
	switch b {
	case DaytimeMorning:
		return "Morning"
	case DaytimeLunch:
		return "Lunch"
	case DaytimeDinner:
		return "Dinner"
	default:
		return string(b)
	}
}
