package quality

import "testing"

func TestTierBoundaries(t *testing.T) {
	tests := []struct {
		dev  float64
		want Accuracy
	}{
		{0, Perfect},
		{0.1, Perfect},
		{0.1000001, Excellent},
		{0.25, Excellent},
		{0.26, Good},
		{0.4, Good},
		{0.41, Fair},
		{5, Fair},
	}
	for _, tt := range tests {
		if got := Tier(tt.dev); got != tt.want {
			t.Errorf("Tier(%v) = %v, want %v", tt.dev, got, tt.want)
		}
	}
}

func TestTierMonotonic(t *testing.T) {
	// A strictly smaller deviation never yields a strictly worse tier.
	prev := Perfect
	for dev := 0.0; dev <= 1.0; dev += 0.01 {
		got := Tier(dev)
		if got < prev {
			t.Fatalf("Tier(%v) = %v better than Tier of smaller deviation (%v)", dev, got, prev)
		}
		prev = got
	}
}

// TestOverallTakesWorseTier pins the comparison direction: the combined
// accuracy is the worse of the two axes, never the better one.
func TestOverallTakesWorseTier(t *testing.T) {
	tests := []struct {
		a, b, want Accuracy
	}{
		{Perfect, Perfect, Perfect},
		{Perfect, Fair, Fair},
		{Fair, Perfect, Fair},
		{Excellent, Good, Good},
		{Good, Excellent, Good},
		{Fair, Fair, Fair},
	}
	for _, tt := range tests {
		if got := Overall(tt.a, tt.b); got != tt.want {
			t.Errorf("Overall(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestAccuracyString(t *testing.T) {
	tests := []struct {
		a    Accuracy
		want string
	}{
		{Perfect, "perfect"},
		{Excellent, "excellent"},
		{Good, "good"},
		{Fair, "fair"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.a), got, tt.want)
		}
	}
}

func TestScoreBounds(t *testing.T) {
	// Every candidate inside the tolerance gates must score within [0, 100].
	const azTol = 0.05
	for azDiff := 0.0; azDiff <= azTol; azDiff += 0.005 {
		for elev := -2.0; elev <= 90; elev += 3.7 {
			got := Score(azDiff, elev, azTol)
			if got < 0 || got > 100 {
				t.Fatalf("Score(%v, %v, %v) = %d out of [0, 100]", azDiff, elev, azTol, got)
			}
		}
	}
}

func TestScoreComponents(t *testing.T) {
	const azTol = 0.05

	// Perfect azimuth and a high body maxes out all three components.
	if got := Score(0, 20, azTol); got != 100 {
		t.Errorf("Score(0, 20) = %d, want 100", got)
	}

	// At the azimuth tolerance the azimuth component collapses to zero.
	if got := Score(azTol, 20, azTol); got != 50 {
		t.Errorf("Score(tol, 20) = %d, want 50", got)
	}

	// At the minimum visibility altitude only the azimuth component remains.
	if got := Score(0, -2, azTol); got != 50 {
		t.Errorf("Score(0, -2) = %d, want 50", got)
	}

	// Tighter azimuth always scores at least as high.
	if Score(0.01, 5, azTol) < Score(0.04, 5, azTol) {
		t.Error("tighter azimuth deviation should not score lower")
	}
}
