package align

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/yuru-sha/fuji-calendar-sub004/internal/ephemeris"
	"github.com/yuru-sha/fuji-calendar-sub004/internal/quality"
	"github.com/yuru-sha/fuji-calendar-sub004/internal/window"
)

// EventKind distinguishes sun and moon alignments.
type EventKind int

const (
	// Diamond is the sun coinciding with the summit.
	Diamond EventKind = iota
	// Pearl is the moon coinciding with the summit.
	Pearl
)

// String returns the lowercase kind name.
func (k EventKind) String() string {
	if k == Diamond {
		return "diamond"
	}
	return "pearl"
}

// MarshalJSON encodes the kind as its lowercase name.
func (k EventKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k EventKind) body() ephemeris.Body {
	if k == Diamond {
		return ephemeris.Sun
	}
	return ephemeris.Moon
}

func (k EventKind) phases() [2]window.Phase {
	if k == Diamond {
		return [2]window.Phase{window.Sunrise, window.Sunset}
	}
	return [2]window.Phase{window.Moonrise, window.Moonset}
}

// SubType locates the event relative to the body's meridian transit.
type SubType int

const (
	SubSunrise SubType = iota
	SubSunset
	SubRising
	SubSetting
)

// String returns the lowercase subtype name.
func (s SubType) String() string {
	switch s {
	case SubSunrise:
		return "sunrise"
	case SubSunset:
		return "sunset"
	case SubRising:
		return "rising"
	default:
		return "setting"
	}
}

// MarshalJSON encodes the subtype as its lowercase name.
func (s SubType) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Event is one detected alignment. Immutable once emitted.
type Event struct {
	ID           string           `json:"id"`
	Type         EventKind        `json:"type"`
	SubType      SubType          `json:"sub_type"`
	Time         time.Time        `json:"time"`
	SiteID       string           `json:"site_id"`
	AzimuthDeg   float64          `json:"azimuth"`
	ElevationDeg float64          `json:"elevation"`
	Accuracy     quality.Accuracy `json:"accuracy"`
	QualityScore int              `json:"quality_score"`

	// Moon-only fields, nil for diamond events.
	MoonPhaseDeg     *float64 `json:"moon_phase,omitempty"`
	MoonIllumination *float64 `json:"moon_illumination,omitempty"`
}

// EventID derives the deterministic event identity from the site, the civil
// date, the kind, and the subtype. Recomputing it from the same inputs always
// yields the same string.
func EventID(siteID string, date time.Time, kind EventKind, sub SubType) string {
	return fmt.Sprintf("%s-%s-%s-%s", siteID, date.Format("20060102"), kind, sub)
}

// candidate is the transient per-scan running best. Discarded after the scan.
type candidate struct {
	at            time.Time
	azimuthDiff   float64
	elevationDiff float64
	pos           ephemeris.Position
	score         float64
}
