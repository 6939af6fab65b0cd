package ephemeris

import (
	"fmt"
	"math"
	"time"

	"github.com/sixdouglas/suncalc"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"

	"github.com/yuru-sha/fuji-calendar-sub004/internal/geodesy"
)

const (
	// Mean Sun-Earth distance; close enough for the distance field, which
	// never feeds the alignment geometry.
	astronomicalUnitKm = 149597870.7

	// Earth's sidereal rotation rate in radians per second.
	siderealRateRadSec = 7.2921158553e-5

	// Lunar transit scan steps.
	moonCoarseStep = 10 * time.Minute
	moonFineStep   = 20 * time.Second
)

// SunCalc is the production Provider. Sun and moon topocentric positions and
// moon illumination come from the suncalc port; the solar meridian transit is
// solved from apparent sidereal time and solar right ascension. Stateless.
type SunCalc struct{}

// NewSunCalc returns the library-backed provider.
func NewSunCalc() *SunCalc {
	return &SunCalc{}
}

// Position returns the topocentric azimuth/elevation of the body at t.
func (s *SunCalc) Position(body Body, t time.Time, observer geodesy.Point) (Position, error) {
	if err := observer.Validate(); err != nil {
		return Position{}, fmt.Errorf("observer: %w", err)
	}

	switch body {
	case Sun:
		p := suncalc.GetPosition(t, observer.LatDeg, observer.LonDeg)
		return Position{
			AzimuthDeg:   azimuthFromSouthToNorth(p.Azimuth),
			ElevationDeg: p.Altitude * 180 / math.Pi,
			DistanceKm:   astronomicalUnitKm,
		}, nil
	case Moon:
		p := suncalc.GetMoonPosition(t, observer.LatDeg, observer.LonDeg)
		ill := suncalc.GetMoonIllumination(t)
		return Position{
			AzimuthDeg:          azimuthFromSouthToNorth(p.Azimuth),
			ElevationDeg:        p.Altitude * 180 / math.Pi,
			DistanceKm:          p.Distance,
			PhaseDeg:            p360(ill.Phase * 360),
			IlluminatedFraction: ill.Fraction,
		}, nil
	default:
		return Position{}, fmt.Errorf("unknown body %d", int(body))
	}
}

// Transit returns the body's meridian transit within [start, end). The sun
// transit is solved analytically; the moon transit is located by a
// coarse/fine scan for the daily altitude maximum.
func (s *SunCalc) Transit(body Body, start, end time.Time, observer geodesy.Point) (time.Time, error) {
	if err := observer.Validate(); err != nil {
		return time.Time{}, fmt.Errorf("observer: %w", err)
	}
	if !start.Before(end) {
		return time.Time{}, fmt.Errorf("empty transit window [%v, %v)", start, end)
	}

	if body == Sun {
		return s.solarTransit(start, end, observer)
	}
	return s.lunarTransit(start, end, observer), nil
}

// solarTransit iterates on the sun's local hour angle: at transit the local
// apparent sidereal time equals the solar right ascension. Two or three
// rounds converge well below the engine's search step.
func (s *SunCalc) solarTransit(start, end time.Time, observer geodesy.Point) (time.Time, error) {
	lonRad := observer.LonDeg * math.Pi / 180
	t := start.Add(end.Sub(start) / 2)

	for i := 0; i < 4; i++ {
		jd := julian.TimeToJD(t.UTC())
		ra, _ := solar.ApparentEquatorial(jd)
		lst := sidereal.Apparent(jd).Angle().Rad() + lonRad
		ha := normalizePi(lst - ra.Rad())
		t = t.Add(-time.Duration(ha / siderealRateRadSec * float64(time.Second)))
	}

	if t.Before(start) || !t.Before(end) {
		return time.Time{}, fmt.Errorf("solar transit %v outside window [%v, %v)", t, start, end)
	}
	return t, nil
}

// lunarTransit scans for the moon's altitude maximum: a coarse pass over the
// window, then a fine pass around the coarse hit.
func (s *SunCalc) lunarTransit(start, end time.Time, observer geodesy.Point) time.Time {
	best := start
	bestAlt := math.Inf(-1)
	for t := start; t.Before(end); t = t.Add(moonCoarseStep) {
		if alt := suncalc.GetMoonPosition(t, observer.LatDeg, observer.LonDeg).Altitude; alt > bestAlt {
			bestAlt = alt
			best = t
		}
	}

	fineStart := best.Add(-moonCoarseStep)
	if fineStart.Before(start) {
		fineStart = start
	}
	fineEnd := best.Add(moonCoarseStep)
	if fineEnd.After(end) {
		fineEnd = end
	}
	for t := fineStart; t.Before(fineEnd); t = t.Add(moonFineStep) {
		if alt := suncalc.GetMoonPosition(t, observer.LatDeg, observer.LonDeg).Altitude; alt > bestAlt {
			bestAlt = alt
			best = t
		}
	}
	return best
}

// azimuthFromSouthToNorth converts the suncalc azimuth convention (radians,
// zero at south, positive westward) to compass degrees clockwise from north.
func azimuthFromSouthToNorth(rad float64) float64 {
	return p360(rad*180/math.Pi + 180)
}

// p360 normalizes degrees to [0, 360).
func p360(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// normalizePi wraps an angle in radians to [-π, π).
func normalizePi(rad float64) float64 {
	r := math.Mod(rad+math.Pi, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	return r - math.Pi
}
