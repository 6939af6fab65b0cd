// Package align implements the alignment search: a discretized linear scan
// over a seasonal time window that finds the single instant where a celestial
// body's apparent position best matches the fixed site→summit geometry.
package align

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/yuru-sha/fuji-calendar-sub004/internal/ephemeris"
	"github.com/yuru-sha/fuji-calendar-sub004/internal/geodesy"
	"github.com/yuru-sha/fuji-calendar-sub004/internal/metrics"
	"github.com/yuru-sha/fuji-calendar-sub004/internal/quality"
	"github.com/yuru-sha/fuji-calendar-sub004/internal/site"
	"github.com/yuru-sha/fuji-calendar-sub004/internal/window"
)

// FujiSummit is the fixed target: the Mt. Fuji summit. Process-wide constant.
var FujiSummit = geodesy.Point{LatDeg: 35.3606, LonDeg: 138.7274, ElevM: 3776}

// JST is the default civil-time convention for dates and windows (UTC+9).
var JST = time.FixedZone("JST", 9*60*60)

// Engine runs alignment searches. It holds only read-only state, so one
// engine serves any number of concurrent searches.
type Engine struct {
	cfg      Config
	provider ephemeris.Provider
	target   geodesy.Point
	loc      *time.Location
	logger   *slog.Logger
}

// NewEngine builds an engine. A nil loc falls back to JST.
func NewEngine(cfg Config, provider ephemeris.Provider, target geodesy.Point, loc *time.Location, logger *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("nil ephemeris provider")
	}
	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	if loc == nil {
		loc = JST
	}
	return &Engine{
		cfg:      cfg,
		provider: provider,
		target:   target,
		loc:      loc,
		logger:   logger,
	}, nil
}

// Search finds the events of one kind for a site on the civil day containing
// date. It returns zero, one, or two events ordered by time: at most one per
// phase. A nil slice with a nil error is the normal "nothing today" outcome.
func (e *Engine) Search(ctx context.Context, s *site.Site, date time.Time, kind EventKind) ([]Event, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	day := e.civilDay(date)

	var events []Event
	for _, phase := range kind.phases() {
		ev, err := e.searchPhase(ctx, s, day, kind, phase)
		if err != nil {
			return events, err
		}
		if ev != nil {
			events = append(events, *ev)
		}
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Time.Before(events[j].Time) })
	return events, nil
}

// SearchAll finds both diamond and pearl events for the civil day.
func (e *Engine) SearchAll(ctx context.Context, s *site.Site, date time.Time) ([]Event, error) {
	diamond, err := e.Search(ctx, s, date, Diamond)
	if err != nil {
		return diamond, err
	}
	pearl, err := e.Search(ctx, s, date, Pearl)
	if err != nil {
		return append(diamond, pearl...), err
	}

	events := append(diamond, pearl...)
	sort.Slice(events, func(i, j int) bool { return events[i].Time.Before(events[j].Time) })
	return events, nil
}

// searchPhase runs one Idle → Scanning → {Found, NotFound} pass. A nil event
// with a nil error means no candidate survived; only cancellation is an error.
func (e *Engine) searchPhase(ctx context.Context, s *site.Site, day time.Time, kind EventKind, phase window.Phase) (*Event, error) {
	geom := s.ResolveGeometry(e.target)

	if !window.Feasible(phase, geom.BearingDeg) {
		metrics.RecordScan(kind.String(), phase.String(), metrics.OutcomeInfeasible)
		return nil, nil
	}

	start, end := window.Bounds(phase, day, e.loc)
	body := kind.body()

	// The pearl phases partition the civil day at the lunar transit so that
	// the rising and setting searches cannot elect the same instant.
	transit, haveTransit := time.Time{}, false
	if kind == Pearl {
		transit = e.transitOrNoon(body, day, s)
		haveTransit = true
		if phase == window.Moonrise {
			end = transit
		} else {
			start = transit
		}
		if !start.Before(end) {
			metrics.RecordScan(kind.String(), phase.String(), metrics.OutcomeNotFound)
			return nil, nil
		}
	}

	scanStart := time.Now()
	best, err := e.scan(ctx, body, s, geom, start, end)
	metrics.ObserveScanDuration(kind.String(), phase.String(), time.Since(scanStart).Seconds())
	if err != nil {
		metrics.RecordScan(kind.String(), phase.String(), metrics.OutcomeCancelled)
		return nil, err
	}

	if best == nil {
		metrics.RecordScan(kind.String(), phase.String(), metrics.OutcomeNotFound)
		return nil, nil
	}

	// The historical behavior gates the already-selected winner on moon
	// brightness; a dimmer-but-aligned day yields nothing even when another
	// in-tolerance instant would have passed. IlluminationGateDuringScan
	// moves the same check inside the scan loop instead.
	if kind == Pearl && !e.cfg.IlluminationGateDuringScan &&
		best.pos.IlluminatedFraction < e.cfg.MoonMinIllumination {
		e.logger.Debug("pearl candidate below illumination threshold",
			"site_id", s.ID,
			"time", best.at,
			"illumination", best.pos.IlluminatedFraction,
		)
		metrics.RecordScan(kind.String(), phase.String(), metrics.OutcomeNotFound)
		return nil, nil
	}

	if !haveTransit {
		transit = e.transitOrNoon(body, day, s)
	}
	sub := classify(kind, best.at, transit)

	acc := quality.Overall(quality.Tier(best.azimuthDiff), quality.Tier(best.elevationDiff))
	ev := &Event{
		ID:           EventID(s.ID, day, kind, sub),
		Type:         kind,
		SubType:      sub,
		Time:         best.at,
		SiteID:       s.ID,
		AzimuthDeg:   best.pos.AzimuthDeg,
		ElevationDeg: best.pos.ElevationDeg,
		Accuracy:     acc,
		QualityScore: quality.Score(best.azimuthDiff, best.pos.ElevationDeg, e.cfg.AzimuthToleranceDeg),
	}
	if kind == Pearl {
		phaseDeg, illum := best.pos.PhaseDeg, best.pos.IlluminatedFraction
		ev.MoonPhaseDeg = &phaseDeg
		ev.MoonIllumination = &illum
	}

	metrics.RecordScan(kind.String(), phase.String(), metrics.OutcomeFound)
	metrics.RecordEvent(kind.String(), acc.String())
	return ev, nil
}

// scan is the single linear pass over [start, end): per-instant provider
// failures are skipped, tolerance gates applied, and the lowest combined
// score kept. Ties keep the earlier instant.
func (e *Engine) scan(ctx context.Context, body ephemeris.Body, s *site.Site, geom site.Geometry, start, end time.Time) (*candidate, error) {
	var best *candidate

	for t := start; t.Before(end); t = t.Add(e.cfg.SearchInterval) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pos, err := e.provider.Position(body, t, s.Location)
		if err != nil {
			metrics.RecordProviderError()
			e.logger.Debug("position lookup failed", "site_id", s.ID, "body", body, "time", t, "error", err)
			continue
		}

		if pos.ElevationDeg <= e.cfg.MinVisibilityAltitudeDeg {
			continue
		}

		azDiff := geodesy.AngularDiff(pos.AzimuthDeg, geom.BearingDeg)
		if azDiff > e.cfg.AzimuthToleranceDeg {
			continue
		}
		elevDiff := math.Abs(pos.ElevationDeg - geom.ElevationDeg)
		if elevDiff > e.cfg.ElevationToleranceDeg {
			continue
		}

		if body == ephemeris.Moon && e.cfg.IlluminationGateDuringScan &&
			pos.IlluminatedFraction < e.cfg.MoonMinIllumination {
			continue
		}

		score := azDiff + 2*elevDiff
		if best == nil || score < best.score {
			best = &candidate{
				at:            t,
				azimuthDiff:   azDiff,
				elevationDiff: elevDiff,
				pos:           pos,
				score:         score,
			}
		}
	}

	return best, nil
}

// transitOrNoon returns the body's meridian transit on the civil day, or
// local noon when the lookup fails. Noon keeps the before/after subtype
// classification sensible without aborting the event.
func (e *Engine) transitOrNoon(body ephemeris.Body, day time.Time, s *site.Site) time.Time {
	dayStart := day
	dayEnd := day.Add(24 * time.Hour)

	transit, err := e.provider.Transit(body, dayStart, dayEnd, s.Location)
	if err != nil {
		e.logger.Warn("transit lookup failed, falling back to local noon",
			"site_id", s.ID, "body", body, "error", err)
		return day.Add(12 * time.Hour)
	}
	return transit
}

// classify maps a candidate instant to its subtype: before the transit the
// body is still climbing, after it descending.
func classify(kind EventKind, at, transit time.Time) SubType {
	before := at.Before(transit)
	if kind == Diamond {
		if before {
			return SubSunrise
		}
		return SubSunset
	}
	if before {
		return SubRising
	}
	return SubSetting
}

// civilDay normalizes an instant to local midnight of its civil day.
func (e *Engine) civilDay(date time.Time) time.Time {
	d := date.In(e.loc)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, e.loc)
}
