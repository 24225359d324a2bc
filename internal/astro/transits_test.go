package astro

import (
	"strings"
	"testing"
	"time"
)

func TestDailyTransits_PureFunctionOfDate(t *testing.T) {
	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	a := DailyTransits(day)
	// A different wall-clock time on the same calendar day must not matter.
	b := DailyTransits(time.Date(2026, 8, 28, 23, 59, 0, 0, time.UTC))

	if a.Summary != b.Summary {
		t.Fatalf("summaries differ for the same day: %q vs %q", a.Summary, b.Summary)
	}
	if len(a.Aspects) != len(b.Aspects) {
		t.Fatalf("aspect counts differ: %d vs %d", len(a.Aspects), len(b.Aspects))
	}
	for i := range a.Aspects {
		if a.Aspects[i] != b.Aspects[i] {
			t.Errorf("aspect[%d] differs: %q vs %q", i, a.Aspects[i], b.Aspects[i])
		}
	}
}

func TestDailyTransits_DifferentDaysDiffer(t *testing.T) {
	a := DailyTransits(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	b := DailyTransits(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))
	// The moon moves ~13°/day; positions six months apart cannot coincide.
	if a.Positions["moon"] == b.Positions["moon"] {
		t.Fatal("moon position identical across six months")
	}
}

func TestDailyTransits_SummaryShape(t *testing.T) {
	tr := DailyTransits(time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC))
	if !strings.HasPrefix(tr.Summary, "Sun in ") {
		t.Fatalf("summary %q missing sun lead-in", tr.Summary)
	}
	if !strings.Contains(tr.Summary, "Moon in ") {
		t.Fatalf("summary %q missing moon mention", tr.Summary)
	}
	for planet, lon := range tr.Positions {
		if lon < 0 || lon >= 360 {
			t.Errorf("%s longitude %v outside [0,360)", planet, lon)
		}
	}
}

func Test_angularSeparation(t *testing.T) {
	cases := []struct {
		a, b, want float64
	}{
		{0, 0, 0},
		{0, 90, 90},
		{350, 10, 20},
		{0, 180, 180},
		{0, 270, 90},
	}
	for _, tc := range cases {
		if got := angularSeparation(tc.a, tc.b); got != tc.want {
			t.Errorf("angularSeparation(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func Test_transitSummary_AspectBuckets(t *testing.T) {
	pos := map[string]float64{"sun": 10, "moon": 40}

	if s := transitSummary(pos, nil); !strings.Contains(s, "quiet sky") {
		t.Errorf("no aspects: %q", s)
	}
	if s := transitSummary(pos, []string{"sun sextile moon"}); !strings.Contains(s, "Gentle currents") {
		t.Errorf("few aspects: %q", s)
	}
	many := []string{"a", "b", "c", "d"}
	if s := transitSummary(pos, many); !strings.Contains(s, "busy sky") {
		t.Errorf("many aspects: %q", s)
	}
}
