// Package config loads the typed application configuration from the
// environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/yuru-sha/fuji-calendar-sub004/internal/align"
)

// Config is the full runtime configuration of the batch binary.
type Config struct {
	HTTPAddr  string     `env:"FUJICAL_HTTP_ADDR" envDefault:":8080"`
	LogLevel  slog.Level `env:"FUJICAL_LOG_LEVEL" envDefault:"INFO"`
	SitesFile string     `env:"FUJICAL_SITES_FILE" envDefault:"sites.json"`

	// StartDate is the first civil day to scan, YYYY-MM-DD in the configured
	// offset. Empty means today.
	StartDate string `env:"FUJICAL_START_DATE"`
	Days      int    `env:"FUJICAL_DAYS" envDefault:"30"`

	// UTCOffsetHours fixes the civil-time convention for dates and windows.
	// The default is UTC+9 (JST), where the target summit lives.
	UTCOffsetHours int `env:"FUJICAL_UTC_OFFSET_HOURS" envDefault:"9"`

	AzimuthToleranceDeg        float64 `env:"FUJICAL_AZIMUTH_TOLERANCE_DEG" envDefault:"0.05"`
	ElevationToleranceDeg      float64 `env:"FUJICAL_ELEVATION_TOLERANCE_DEG" envDefault:"1.0"`
	SearchIntervalSeconds      int     `env:"FUJICAL_SEARCH_INTERVAL_SECONDS" envDefault:"10"`
	MinVisibilityAltitudeDeg   float64 `env:"FUJICAL_MIN_VISIBILITY_ALTITUDE_DEG" envDefault:"-2"`
	MoonMinIllumination        float64 `env:"FUJICAL_MOON_MIN_ILLUMINATION" envDefault:"0.1"`
	IlluminationGateDuringScan bool    `env:"FUJICAL_ILLUMINATION_GATE_DURING_SCAN" envDefault:"false"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.Days < 1 {
		return nil, fmt.Errorf("FUJICAL_DAYS must be at least 1, got %d", cfg.Days)
	}
	return &cfg, nil
}

// Engine maps the tunables onto an engine config.
func (c *Config) Engine() align.Config {
	return align.Config{
		AzimuthToleranceDeg:        c.AzimuthToleranceDeg,
		ElevationToleranceDeg:      c.ElevationToleranceDeg,
		SearchInterval:             time.Duration(c.SearchIntervalSeconds) * time.Second,
		MinVisibilityAltitudeDeg:   c.MinVisibilityAltitudeDeg,
		MoonMinIllumination:        c.MoonMinIllumination,
		IlluminationGateDuringScan: c.IlluminationGateDuringScan,
	}
}

// Location returns the fixed civil-time zone.
func (c *Config) Location() *time.Location {
	if c.UTCOffsetHours == 9 {
		return align.JST
	}
	return time.FixedZone(fmt.Sprintf("UTC%+d", c.UTCOffsetHours), c.UTCOffsetHours*60*60)
}

// Start resolves the first civil day to scan. now supplies "today" when no
// start date is configured.
func (c *Config) Start(now time.Time) (time.Time, error) {
	loc := c.Location()
	if c.StartDate == "" {
		d := now.In(loc)
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc), nil
	}
	d, err := time.ParseInLocation(time.DateOnly, c.StartDate, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing FUJICAL_START_DATE: %w", err)
	}
	return d, nil
}
