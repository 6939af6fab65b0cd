package align

import (
	"fmt"
	"time"
)

// Config is the immutable tuning of one search engine. Zero values are not
// usable; start from DefaultConfig.
type Config struct {
	// AzimuthToleranceDeg is the maximum azimuth deviation for a candidate.
	AzimuthToleranceDeg float64
	// ElevationToleranceDeg is the maximum elevation deviation for a candidate.
	ElevationToleranceDeg float64
	// SearchInterval is the scan step. Halving it doubles scan cost and
	// halves the worst-case time error.
	SearchInterval time.Duration
	// MinVisibilityAltitudeDeg is the lowest body altitude still considered
	// visible; instants at or below it are skipped.
	MinVisibilityAltitudeDeg float64
	// MoonMinIllumination is the minimum illuminated fraction for a pearl
	// event.
	MoonMinIllumination float64
	// IlluminationGateDuringScan applies the moon illumination gate to every
	// instant during the scan instead of to the single selected winner.
	// Off by default, matching the historical gate-after-selection behavior.
	IlluminationGateDuringScan bool
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		AzimuthToleranceDeg:      0.05,
		ElevationToleranceDeg:    1.0,
		SearchInterval:           10 * time.Second,
		MinVisibilityAltitudeDeg: -2.0,
		MoonMinIllumination:      0.1,
	}
}

// Validate rejects configs that would make the scan degenerate.
func (c Config) Validate() error {
	if c.AzimuthToleranceDeg <= 0 {
		return fmt.Errorf("azimuth tolerance must be positive, got %v", c.AzimuthToleranceDeg)
	}
	if c.ElevationToleranceDeg <= 0 {
		return fmt.Errorf("elevation tolerance must be positive, got %v", c.ElevationToleranceDeg)
	}
	if c.SearchInterval <= 0 {
		return fmt.Errorf("search interval must be positive, got %v", c.SearchInterval)
	}
	if c.MoonMinIllumination < 0 || c.MoonMinIllumination > 1 {
		return fmt.Errorf("moon illumination threshold %v out of [0, 1]", c.MoonMinIllumination)
	}
	return nil
}
