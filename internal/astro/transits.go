package astro

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// aspect angles and the orb within which two planets are considered to form
// the aspect.
var aspectAngles = []struct {
	name  string
	angle float64
	orb   float64
}{
	{"conjunction", 0, 6},
	{"sextile", 60, 4},
	{"square", 90, 5},
	{"trine", 120, 5},
	{"opposition", 180, 6},
}

// Transit is one day's transiting snapshot: planet positions, the aspects
// currently in orb, and a short free-text summary.
type Transit struct {
	Positions map[string]float64
	Aspects   []string
	Summary   string
}

// DailyTransits computes the transiting snapshot for a calendar day.
// It is a pure function of the date (noon UTC), so concurrent regeneration
// for the same day always produces identical content and a last-write-wins
// upsert is benign.
func DailyTransits(date time.Time) Transit {
	noon := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.UTC)
	pos := positionsAt(noon)

	planets := make([]string, 0, len(pos))
	for p := range pos {
		planets = append(planets, p)
	}
	sort.Strings(planets)

	var aspects []string
	for i := 0; i < len(planets); i++ {
		for j := i + 1; j < len(planets); j++ {
			sep := angularSeparation(pos[planets[i]], pos[planets[j]])
			for _, a := range aspectAngles {
				if math.Abs(sep-a.angle) <= a.orb {
					aspects = append(aspects, fmt.Sprintf("%s %s %s", planets[i], a.name, planets[j]))
					break
				}
			}
		}
	}

	return Transit{
		Positions: pos,
		Aspects:   aspects,
		Summary:   transitSummary(pos, aspects),
	}
}

// angularSeparation returns the smallest angle between two longitudes.
func angularSeparation(a, b float64) float64 {
	d := math.Abs(normalizeDegrees(a) - normalizeDegrees(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// transitSummary renders a short human-readable line for the day.
func transitSummary(pos map[string]float64, aspects []string) string {
	sunSign := signForLongitude(pos["sun"])
	moonSign := signForLongitude(pos["moon"])

	s := fmt.Sprintf("Sun in %s, Moon in %s.", sunSign, moonSign)
	switch {
	case len(aspects) == 0:
		s += " A quiet sky today."
	case len(aspects) <= 2:
		s += " Gentle currents: " + strings.Join(aspects, "; ") + "."
	default:
		s += fmt.Sprintf(" A busy sky with %d aspects in play, led by %s.", len(aspects), aspects[0])
	}
	return s
}
