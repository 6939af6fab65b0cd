// Package site models observation sites and their fixed geometry toward the
// target summit.
package site

import (
	"errors"
	"fmt"

	"github.com/yuru-sha/fuji-calendar-sub004/internal/geodesy"
)

// ErrInvalidSite is wrapped by every site validation failure.
var ErrInvalidSite = errors.New("invalid site")

// Geometry is the fixed site→target geometry. The persistence layer usually
// precomputes and caches it; the engine recomputes it on demand when absent.
type Geometry struct {
	BearingDeg   float64 `json:"bearing_to_target"`
	ElevationDeg float64 `json:"elevation_to_target"`
	DistanceM    float64 `json:"distance_to_target"`
}

// Site is one observation location.
type Site struct {
	ID       string        `json:"id"`
	Name     string        `json:"name,omitempty"`
	Location geodesy.Point `json:"location"`

	// Geometry is nil until precomputed or resolved against a target.
	Geometry *Geometry `json:"geometry,omitempty"`
}

// Validate fails fast on out-of-range coordinates or a missing id.
func (s *Site) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidSite)
	}
	if err := s.Location.Validate(); err != nil {
		return fmt.Errorf("%w: site %q: %v", ErrInvalidSite, s.ID, err)
	}
	return nil
}

// ResolveGeometry returns the site's geometry toward target, computing and
// memoizing it when no precomputed values were supplied.
func (s *Site) ResolveGeometry(target geodesy.Point) Geometry {
	if s.Geometry != nil {
		return *s.Geometry
	}
	g := Compute(s.Location, target)
	s.Geometry = &g
	return g
}

// Compute derives the fixed geometry from a location toward the target.
func Compute(from, target geodesy.Point) Geometry {
	return Geometry{
		BearingDeg:   geodesy.Bearing(from, target),
		ElevationDeg: geodesy.ElevationAngle(from, target, geodesy.DefaultEyeHeightM, geodesy.DefaultRefractionCoeff),
		DistanceM:    geodesy.Distance(from, target),
	}
}
