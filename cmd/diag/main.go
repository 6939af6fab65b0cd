package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/yuru-sha/fuji-calendar-sub004/internal/align"
	"github.com/yuru-sha/fuji-calendar-sub004/internal/ephemeris"
	"github.com/yuru-sha/fuji-calendar-sub004/internal/geodesy"
	"github.com/yuru-sha/fuji-calendar-sub004/internal/site"
)

func main() {
	lat := flag.Float64("lat", 35.2989, "observer latitude (degrees)")
	lon := flag.Float64("lon", 139.4803, "observer longitude (degrees)")
	elev := flag.Float64("elev", 60, "observer elevation (meters)")
	date := flag.String("date", "", "civil date to scan (YYYY-MM-DD, default today)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	loc := geodesy.Point{LatDeg: *lat, LonDeg: *lon, ElevM: *elev}
	if err := loc.Validate(); err != nil {
		fmt.Println("ERROR:", err)
		os.Exit(1)
	}

	geom := site.Compute(loc, align.FujiSummit)
	fmt.Printf("Observer: %.4f°N %.4f°E %.0fm\n", loc.LatDeg, loc.LonDeg, loc.ElevM)
	fmt.Printf("To summit: bearing=%.3f° elevation=%.3f° distance=%.1fkm\n",
		geom.BearingDeg, geom.ElevationDeg, geom.DistanceM/1000)

	day := time.Now().In(align.JST)
	if *date != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, *date, align.JST)
		if err != nil {
			fmt.Println("ERROR parsing date:", err)
			os.Exit(1)
		}
		day = parsed
	}

	provider := ephemeris.NewSunCalc()
	now := time.Now()
	for _, body := range []ephemeris.Body{ephemeris.Sun, ephemeris.Moon} {
		pos, err := provider.Position(body, now, loc)
		if err != nil {
			fmt.Printf("  %s: ERROR %v\n", body, err)
			continue
		}
		fmt.Printf("  %s now: az=%.2f° el=%.2f°\n", body, pos.AzimuthDeg, pos.ElevationDeg)
	}

	engine, err := align.NewEngine(align.DefaultConfig(), provider, align.FujiSummit, align.JST, logger)
	if err != nil {
		fmt.Println("ERROR building engine:", err)
		os.Exit(1)
	}

	s := &site.Site{ID: "diag", Location: loc}
	events, err := engine.SearchAll(context.Background(), s, day)
	if err != nil {
		fmt.Println("ERROR searching:", err)
		os.Exit(1)
	}

	fmt.Printf("Events on %s: %d\n", day.Format(time.DateOnly), len(events))
	for _, ev := range events {
		fmt.Printf("  %s/%s at %s az=%.3f° el=%.3f° accuracy=%s score=%d\n",
			ev.Type, ev.SubType, ev.Time.Format(time.RFC3339),
			ev.AzimuthDeg, ev.ElevationDeg, ev.Accuracy, ev.QualityScore)
	}
}
