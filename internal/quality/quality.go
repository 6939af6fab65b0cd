// Package quality maps the geometric deviations of an alignment candidate to
// a photography accuracy tier and a 0-100 quality score.
package quality

import (
	"encoding/json"
	"math"
)

// Accuracy is an ordered alignment tier. A higher value is a worse tier.
type Accuracy int

const (
	Perfect Accuracy = iota
	Excellent
	Good
	Fair
)

// String returns the lowercase tier name.
func (a Accuracy) String() string {
	switch a {
	case Perfect:
		return "perfect"
	case Excellent:
		return "excellent"
	case Good:
		return "good"
	default:
		return "fair"
	}
}

// MarshalJSON encodes the tier as its lowercase name.
func (a Accuracy) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// Tier maps one angular deviation (degrees) to its accuracy tier.
func Tier(deviationDeg float64) Accuracy {
	switch {
	case deviationDeg <= 0.1:
		return Perfect
	case deviationDeg <= 0.25:
		return Excellent
	case deviationDeg <= 0.4:
		return Good
	default:
		return Fair
	}
}

// Overall combines two independently computed tiers into the event accuracy.
// The worse tier wins: an event is only as accurate as its weaker axis.
func Overall(a, b Accuracy) Accuracy {
	if a > b {
		return a
	}
	return b
}

// Score computes the 0-100 quality score for a candidate that passed the
// tolerance gates. azDiffDeg is the azimuth deviation, elevationDeg the
// body's apparent elevation, azToleranceDeg the engine's azimuth tolerance.
//
// Components: up to 50 for azimuth tightness, up to 30 for standing clear of
// the minimum visibility altitude, up to 20 for height above the horizon.
func Score(azDiffDeg, elevationDeg, azToleranceDeg float64) int {
	azScore := math.Max(0, 50-(azDiffDeg/azToleranceDeg)*50)
	elevScore := math.Min(30, math.Max(0, elevationDeg+2)*15)
	visScore := math.Min(20, math.Max(0, elevationDeg)*2)
	return int(math.Round(azScore + elevScore + visScore))
}
