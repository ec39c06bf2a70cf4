package matching

// Tier buckets a score for display.
type Tier string

const (
	TierHigh    Tier = "high"
	TierMedium  Tier = "medium"
	TierLow     Tier = "low"
	TierVeryLow Tier = "very low"
)

func TierOf(score int) Tier {
	switch {
	case score >= 80:
		return TierHigh
	case score >= 60:
		return TierMedium
	case score >= 40:
		return TierLow
	default:
		return TierVeryLow
	}
}
