package ephemeris

import (
	"testing"
	"time"

	"github.com/yuru-sha/fuji-calendar-sub004/internal/geodesy"
)

var (
	jst      = time.FixedZone("JST", 9*60*60)
	tokyoObs = geodesy.Point{LatDeg: 35.6762, LonDeg: 139.6503, ElevM: 40}
)

func TestSunPositionMiddayTokyo(t *testing.T) {
	p := NewSunCalc()

	// Spring equinox, local noon: the sun stands high and close to due south.
	noon := time.Date(2026, 3, 20, 12, 0, 0, 0, jst)
	pos, err := p.Position(Sun, noon, tokyoObs)
	if err != nil {
		t.Fatalf("Position: %v", err)
	}

	if pos.AzimuthDeg < 0 || pos.AzimuthDeg >= 360 {
		t.Errorf("azimuth %.3f out of [0, 360)", pos.AzimuthDeg)
	}
	if geodesy.AngularDiff(pos.AzimuthDeg, 180) > 20 {
		t.Errorf("noon azimuth = %.2f, want near 180 (due south)", pos.AzimuthDeg)
	}
	// Equinox altitude at culmination is ~90-latitude; noon is close to it.
	if pos.ElevationDeg < 40 || pos.ElevationDeg > 60 {
		t.Errorf("noon elevation = %.2f, want within [40, 60]", pos.ElevationDeg)
	}
}

func TestSunPositionMidnightBelowHorizon(t *testing.T) {
	p := NewSunCalc()
	midnight := time.Date(2026, 3, 20, 0, 0, 0, 0, jst)
	pos, err := p.Position(Sun, midnight, tokyoObs)
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	if pos.ElevationDeg >= 0 {
		t.Errorf("midnight sun elevation = %.2f, want negative", pos.ElevationDeg)
	}
}

func TestMoonPositionFields(t *testing.T) {
	p := NewSunCalc()
	at := time.Date(2026, 2, 14, 21, 0, 0, 0, jst)
	pos, err := p.Position(Moon, at, tokyoObs)
	if err != nil {
		t.Fatalf("Position: %v", err)
	}

	if pos.AzimuthDeg < 0 || pos.AzimuthDeg >= 360 {
		t.Errorf("azimuth %.3f out of [0, 360)", pos.AzimuthDeg)
	}
	if pos.ElevationDeg < -90 || pos.ElevationDeg > 90 {
		t.Errorf("elevation %.3f out of [-90, 90]", pos.ElevationDeg)
	}
	if pos.IlluminatedFraction < 0 || pos.IlluminatedFraction > 1 {
		t.Errorf("illuminated fraction %.4f out of [0, 1]", pos.IlluminatedFraction)
	}
	if pos.PhaseDeg < 0 || pos.PhaseDeg >= 360 {
		t.Errorf("phase %.3f out of [0, 360)", pos.PhaseDeg)
	}
	// Moon distance is always within ~356k-407k km.
	if pos.DistanceKm < 350000 || pos.DistanceKm > 410000 {
		t.Errorf("moon distance %.0f km outside plausible range", pos.DistanceKm)
	}
}

func TestPositionDeterministic(t *testing.T) {
	p := NewSunCalc()
	at := time.Date(2026, 6, 1, 9, 30, 0, 0, jst)

	for _, body := range []Body{Sun, Moon} {
		a, err := p.Position(body, at, tokyoObs)
		if err != nil {
			t.Fatalf("Position(%v): %v", body, err)
		}
		b, err := p.Position(body, at, tokyoObs)
		if err != nil {
			t.Fatalf("Position(%v): %v", body, err)
		}
		if a != b {
			t.Errorf("%v position not deterministic: %+v vs %+v", body, a, b)
		}
	}
}

func TestPositionRejectsInvalidObserver(t *testing.T) {
	p := NewSunCalc()
	bad := geodesy.Point{LatDeg: 91, LonDeg: 0}
	if _, err := p.Position(Sun, time.Now().UTC(), bad); err == nil {
		t.Error("expected error for out-of-range observer latitude")
	}
}

func TestSolarTransitNearLocalNoon(t *testing.T) {
	p := NewSunCalc()
	day := time.Date(2026, 2, 14, 0, 0, 0, 0, jst)
	start, end := day, day.Add(24*time.Hour)

	tr, err := p.Transit(Sun, start, end, tokyoObs)
	if err != nil {
		t.Fatalf("Transit: %v", err)
	}
	if tr.Before(start) || !tr.Before(end) {
		t.Fatalf("transit %v outside [%v, %v)", tr, start, end)
	}

	// Tokyo sits east of the JST reference meridian, so apparent noon falls
	// in late morning; allow the equation of time on top.
	local := tr.In(jst)
	if local.Hour() < 11 || local.Hour() > 12 {
		t.Errorf("solar transit at %v, want between 11:00 and 12:59 JST", local)
	}

	// The sun's altitude at transit must not be lower than an hour later.
	atTransit, err := p.Position(Sun, tr, tokyoObs)
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	later, err := p.Position(Sun, tr.Add(time.Hour), tokyoObs)
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	if atTransit.ElevationDeg < later.ElevationDeg {
		t.Errorf("transit altitude %.3f lower than one hour later (%.3f)",
			atTransit.ElevationDeg, later.ElevationDeg)
	}
}

func TestLunarTransitIsAltitudeMaximum(t *testing.T) {
	p := NewSunCalc()
	day := time.Date(2026, 2, 14, 0, 0, 0, 0, jst)
	start, end := day, day.Add(24*time.Hour)

	tr, err := p.Transit(Moon, start, end, tokyoObs)
	if err != nil {
		t.Fatalf("Transit: %v", err)
	}
	if tr.Before(start) || !tr.Before(end) {
		t.Fatalf("transit %v outside [%v, %v)", tr, start, end)
	}

	at, err := p.Position(Moon, tr, tokyoObs)
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	for _, offset := range []time.Duration{-2 * time.Hour, 2 * time.Hour} {
		probe := tr.Add(offset)
		if probe.Before(start) || !probe.Before(end) {
			continue
		}
		pos, err := p.Position(Moon, probe, tokyoObs)
		if err != nil {
			t.Fatalf("Position: %v", err)
		}
		if pos.ElevationDeg > at.ElevationDeg {
			t.Errorf("moon higher at transit%+v (%.3f) than at transit (%.3f)",
				offset, pos.ElevationDeg, at.ElevationDeg)
		}
	}
}

func TestTransitEmptyWindow(t *testing.T) {
	p := NewSunCalc()
	at := time.Date(2026, 2, 14, 0, 0, 0, 0, jst)
	if _, err := p.Transit(Sun, at, at, tokyoObs); err == nil {
		t.Error("expected error for empty window")
	}
}

func BenchmarkSunPosition(b *testing.B) {
	p := NewSunCalc()
	at := time.Date(2026, 2, 14, 6, 47, 10, 0, jst)
	for i := 0; i < b.N; i++ {
		if _, err := p.Position(Sun, at, tokyoObs); err != nil {
			b.Fatal(err)
		}
	}
}
