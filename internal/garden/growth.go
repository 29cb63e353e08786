package garden

import (
	"fmt"
	"math"
	"time"
)

// Stage buckets for the growth bar. The 0-20 and 20-40 bands intentionally
// share the first visual stage.
const (
	BucketSprout     = 1
	BucketYoung      = 2
	BucketMaturing   = 3
	BucketFlowering  = 4
	BucketFullyGrown = 5
)

const daysPerWeek = 7

// HeightAt simulates growth as a fixed percentage of the remaining headroom
// per week: h(t) = maxHeight * (1 - (1-r)^(t/7d)). h(0) = 0, the curve is
// non-decreasing and approaches maxHeight without ever exceeding it.
func HeightAt(p Profile, elapsed time.Duration) float64 {
	if elapsed <= 0 || p.MaxHeightCm <= 0 || p.GrowthRatePercentPerWeek <= 0 {
		return 0
	}
	r := p.GrowthRatePercentPerWeek / 100
	if r >= 1 {
		return p.MaxHeightCm
	}
	weeks := elapsed.Hours() / 24 / daysPerWeek
	h := p.MaxHeightCm * (1 - math.Pow(1-r, weeks))
	if h > p.MaxHeightCm {
		h = p.MaxHeightCm
	}
	return h
}

// Percentage converts a height into the growth-bar percentage, capped at 100.
func Percentage(heightCm, maxHeightCm float64) float64 {
	if maxHeightCm <= 0 || heightCm <= 0 {
		return 0
	}
	pct := heightCm / maxHeightCm * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// StageBucket maps a growth percentage to the visual stage:
// [0,40) -> 1, [40,60) -> 2, [60,80) -> 3, [80,100) -> 4, >=100 -> 5.
func StageBucket(pct float64) int {
	switch {
	case pct >= 100:
		return BucketFullyGrown
	case pct >= 80:
		return BucketFlowering
	case pct >= 60:
		return BucketMaturing
	case pct >= 40:
		return BucketYoung
	default:
		return BucketSprout
	}
}

// ValidateHeight rejects non-positive readings and readings with more than
// two decimal places, mirroring the client's 0.01cm input resolution.
func ValidateHeight(heightCm float64) error {
	if heightCm <= 0 {
		return fmt.Errorf("height must be positive, got %v", heightCm)
	}
	scaled := heightCm * 100
	if math.Abs(scaled-math.Round(scaled)) > 1e-9 {
		return fmt.Errorf("height must have at most 2 decimal places, got %v", heightCm)
	}
	return nil
}
