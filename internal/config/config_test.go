package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.Days != 30 {
		t.Errorf("Days = %d, want 30", cfg.Days)
	}
	if cfg.UTCOffsetHours != 9 {
		t.Errorf("UTCOffsetHours = %d, want 9", cfg.UTCOffsetHours)
	}

	ec := cfg.Engine()
	if ec.AzimuthToleranceDeg != 0.05 {
		t.Errorf("azimuth tolerance = %v, want 0.05", ec.AzimuthToleranceDeg)
	}
	if ec.SearchInterval != 10*time.Second {
		t.Errorf("search interval = %v, want 10s", ec.SearchInterval)
	}
	if err := ec.Validate(); err != nil {
		t.Errorf("default engine config invalid: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FUJICAL_DAYS", "7")
	t.Setenv("FUJICAL_SEARCH_INTERVAL_SECONDS", "5")
	t.Setenv("FUJICAL_UTC_OFFSET_HOURS", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Days != 7 {
		t.Errorf("Days = %d, want 7", cfg.Days)
	}
	if got := cfg.Engine().SearchInterval; got != 5*time.Second {
		t.Errorf("search interval = %v, want 5s", got)
	}

	_, offset := time.Now().In(cfg.Location()).Zone()
	if offset != 0 {
		t.Errorf("zone offset = %d, want 0", offset)
	}
}

func TestLoadRejectsBadDays(t *testing.T) {
	t.Setenv("FUJICAL_DAYS", "0")
	if _, err := Load(); err == nil {
		t.Error("expected error for FUJICAL_DAYS=0")
	}
}

func TestStart(t *testing.T) {
	cfg := &Config{UTCOffsetHours: 9, StartDate: "2026-02-14"}
	got, err := cfg.Start(time.Now())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got.Hour() != 0 || got.Day() != 14 || got.Month() != time.February {
		t.Errorf("Start = %v, want 2026-02-14 midnight", got)
	}

	// Empty start date resolves to the civil day of "now".
	cfg.StartDate = ""
	now := time.Date(2026, 2, 13, 20, 0, 0, 0, time.UTC) // already Feb 14 in JST
	got, err = cfg.Start(now)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got.Day() != 14 {
		t.Errorf("Start day = %d, want 14", got.Day())
	}

	cfg.StartDate = "14/02/2026"
	if _, err := cfg.Start(time.Now()); err == nil {
		t.Error("expected error for malformed start date")
	}
}
