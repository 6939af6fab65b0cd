// Package window selects the calendar time window to scan for a given date
// and event phase, and gates geometric feasibility per site.
package window

import "time"

// Phase identifies one search phase of a civil day.
type Phase int

const (
	// Sunrise is the morning diamond-Fuji phase.
	Sunrise Phase = iota
	// Sunset is the evening diamond-Fuji phase.
	Sunset
	// Moonrise is the pre-transit pearl-Fuji phase.
	Moonrise
	// Moonset is the post-transit pearl-Fuji phase.
	Moonset
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case Sunrise:
		return "sunrise"
	case Sunset:
		return "sunset"
	case Moonrise:
		return "moonrise"
	default:
		return "moonset"
	}
}

// Fixed local clock windows for the sun phases. Moonrise and moonset drift
// through the clock day, so moon phases scan the full civil day.
const (
	sunriseStartHour = 4
	sunriseEndHour   = 8
	sunsetStartHour  = 16
	sunsetEndHour    = 20
)

// Bounds returns the half-open local-time interval [start, end) to scan for
// the phase on the civil day containing date in loc.
func Bounds(p Phase, date time.Time, loc *time.Location) (time.Time, time.Time) {
	d := date.In(loc)
	midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)

	switch p {
	case Sunrise:
		return midnight.Add(sunriseStartHour * time.Hour), midnight.Add(sunriseEndHour * time.Hour)
	case Sunset:
		return midnight.Add(sunsetStartHour * time.Hour), midnight.Add(sunsetEndHour * time.Hour)
	default:
		return midnight, midnight.Add(24 * time.Hour)
	}
}

// Empirical bearing bands for sites around the fixed target. Sunrise-type
// alignments need the summit roughly east of the site, sunset-type roughly
// west, and moonset-type an eastern-half bearing.
const (
	sunriseBearingMin = 70
	sunriseBearingMax = 130
	sunsetBearingMin  = 230
	sunsetBearingMax  = 280
	moonsetBearingMax = 180
)

// Feasible reports whether a site whose bearing to the target is
// bearingDeg can geometrically produce the given phase at all. An
// infeasible phase is skipped without scanning.
func Feasible(p Phase, bearingDeg float64) bool {
	switch p {
	case Sunrise:
		return bearingDeg >= sunriseBearingMin && bearingDeg <= sunriseBearingMax
	case Sunset:
		return bearingDeg >= sunsetBearingMin && bearingDeg <= sunsetBearingMax
	case Moonset:
		return bearingDeg < moonsetBearingMax
	default:
		// No empirical band is established for moonrise alignments.
		return true
	}
}
