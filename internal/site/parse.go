package site

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Parse reads a JSON array of sites, validating each one. Sites that fail
// validation are logged and skipped; the parse only fails when the document
// itself is malformed or nothing valid remains.
func Parse(r io.Reader, logger *slog.Logger) ([]Site, error) {
	var raw []Site
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding sites: %w", err)
	}

	sites := make([]Site, 0, len(raw))
	for i := range raw {
		s := raw[i]
		if err := s.Validate(); err != nil {
			logger.Warn("skipping site", "index", i, "error", err)
			continue
		}
		sites = append(sites, s)
	}

	if len(sites) == 0 {
		return nil, fmt.Errorf("no valid sites in input (%d entries)", len(raw))
	}
	return sites, nil
}

// Load parses sites from a file path.
func Load(path string, logger *slog.Logger) ([]Site, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sites file: %w", err)
	}
	defer f.Close()
	return Parse(f, logger)
}
