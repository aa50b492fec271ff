package types

import (
	"testing"
	"time"
)

func TestFiletimeRoundTrip(t *testing.T) {
	orig := time.Date(2024, 6, 15, 12, 30, 45, 678901200, time.UTC)
	ft := FiletimeOf(orig)
	back := ft.Time()
	// FILETIME resolution is 100ns, so the round trip is exact here.
	if !back.Equal(orig) {
		t.Errorf("round trip drifted: %v -> %v", orig, back)
	}
}

func TestFiletimeBeforeEpoch(t *testing.T) {
	if got := Filetime(0).Time(); !got.Equal(time.Unix(0, 0).UTC()) {
		t.Errorf("Filetime(0).Time() = %v", got)
	}
}

func TestFiletimeOrdering(t *testing.T) {
	base := time.Now()
	a := FiletimeOf(base)
	b := FiletimeOf(base.Add(100 * time.Nanosecond))
	if b <= a {
		t.Errorf("100ns step should produce a larger FILETIME: %d vs %d", a, b)
	}
}
