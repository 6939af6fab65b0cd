// Package ephemeris defines the celestial position provider contract used by
// the alignment search, plus a production adapter backed by published
// astronomy libraries. The engine never computes orbital mechanics itself.
package ephemeris

import (
	"time"

	"github.com/yuru-sha/fuji-calendar-sub004/internal/geodesy"
)

// Body is a celestial body the engine can track.
type Body int

const (
	Sun Body = iota
	Moon
)

// String returns the lowercase body name.
func (b Body) String() string {
	if b == Sun {
		return "sun"
	}
	return "moon"
}

// Position is a topocentric body position as seen from one observer at one
// instant. PhaseDeg and IlluminatedFraction are populated for the Moon only.
type Position struct {
	AzimuthDeg          float64 // [0, 360), clockwise from true north
	ElevationDeg        float64 // [-90, 90], above local horizontal
	DistanceKm          float64
	PhaseDeg            float64 // [0, 360), 0 = new, 180 = full
	IlluminatedFraction float64 // [0, 1]
}

// Provider supplies topocentric positions and meridian transits. Both calls
// must be deterministic for fixed inputs and safe for concurrent use. A
// returned error is a per-instant failure: callers skip the instant and
// keep scanning, they never abort the whole search.
type Provider interface {
	Position(body Body, t time.Time, observer geodesy.Point) (Position, error)
	Transit(body Body, start, end time.Time, observer geodesy.Point) (time.Time, error)
}
