// Package geodesy provides the fixed-geometry calculations between an
// observation site and the target summit: forward bearing, great-circle
// distance, and the apparent elevation angle corrected for Earth curvature
// and atmospheric refraction.
package geodesy

import (
	"fmt"
	"math"
)

// EarthRadiusM is the mean Earth radius used for the spherical model.
const EarthRadiusM = 6371000.0

// Defaults for the apparent elevation angle.
const (
	DefaultEyeHeightM      = 1.7  // observer eye height above ground
	DefaultRefractionCoeff = 0.13 // standard terrestrial refraction coefficient
)

// Point is a geodetic position: latitude/longitude in degrees, elevation in
// meters above sea level.
type Point struct {
	LatDeg float64 `json:"latitude"`
	LonDeg float64 `json:"longitude"`
	ElevM  float64 `json:"elevation"`
}

// Validate reports whether the point's coordinates are in range.
func (p Point) Validate() error {
	if p.LatDeg < -90 || p.LatDeg > 90 {
		return fmt.Errorf("latitude %.6f out of range [-90, 90]", p.LatDeg)
	}
	if p.LonDeg < -180 || p.LonDeg > 180 {
		return fmt.Errorf("longitude %.6f out of range [-180, 180]", p.LonDeg)
	}
	return nil
}

// Bearing returns the forward azimuth from one point to another in degrees
// clockwise from true north, normalized to [0, 360).
func Bearing(from, to Point) float64 {
	φ1 := from.LatDeg * math.Pi / 180
	φ2 := to.LatDeg * math.Pi / 180
	Δλ := (to.LonDeg - from.LonDeg) * math.Pi / 180

	y := math.Sin(Δλ) * math.Cos(φ2)
	x := math.Cos(φ1)*math.Sin(φ2) - math.Sin(φ1)*math.Cos(φ2)*math.Cos(Δλ)

	θ := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(θ+360, 360)
}

// Distance returns the haversine great-circle distance between two points
// in meters.
func Distance(from, to Point) float64 {
	φ1 := from.LatDeg * math.Pi / 180
	φ2 := to.LatDeg * math.Pi / 180
	Δφ := (to.LatDeg - from.LatDeg) * math.Pi / 180
	Δλ := (to.LonDeg - from.LonDeg) * math.Pi / 180

	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusM * c
}

// ElevationAngle returns the apparent elevation angle in degrees from an
// observer at `from` (eye raised by eyeHeightM) to the top of `to`.
//
// The straight-line vertical difference is reduced by the Earth-curvature
// drop d²/2R and lifted back by refractionCoeff of that drop. The result is
// negative when the target sits below the apparent horizon; no clamping.
func ElevationAngle(from, to Point, eyeHeightM, refractionCoeff float64) float64 {
	dist := Distance(from, to)
	if dist == 0 {
		return 0
	}

	observerHeight := from.ElevM + eyeHeightM
	heightDiff := to.ElevM - observerHeight

	curvatureDrop := dist * dist / (2 * EarthRadiusM)
	refractionLift := refractionCoeff * curvatureDrop
	apparentVertical := heightDiff - (curvatureDrop - refractionLift)

	return math.Atan2(apparentVertical, dist) * 180 / math.Pi
}

// AngularDiff returns the smallest absolute difference between two compass
// angles in degrees. Symmetric, always in [0, 180].
func AngularDiff(a, b float64) float64 {
	d := math.Abs(a - b)
	d = math.Mod(d, 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}
