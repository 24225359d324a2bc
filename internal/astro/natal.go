package astro

import "time"

// Mean daily motion in ecliptic longitude, degrees per day. These are the
// classical mean rates, not an ephemeris; positions derived from them are
// placeholders good enough for companion flavour text.
var meanMotion = map[string]float64{
	"sun":     0.9856,
	"moon":    13.1764,
	"mercury": 1.3833,
	"venus":   1.2000,
	"mars":    0.5240,
	"jupiter": 0.0831,
	"saturn":  0.0334,
}

// Longitude offsets at the J2000 epoch, degrees.
var epochLongitude = map[string]float64{
	"sun":     280.46,
	"moon":    218.32,
	"mercury": 252.25,
	"venus":   181.98,
	"mars":    355.43,
	"jupiter": 34.35,
	"saturn":  50.08,
}

// j2000 is the reference epoch for the mean-motion arithmetic.
var j2000 = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

// Chart holds derived natal placements.
type Chart struct {
	SunSign    string
	MoonSign   string
	RisingSign string
	Positions  map[string]float64 // planet -> ecliptic longitude (degrees)
}

// positionsAt computes mean ecliptic longitudes for all tracked planets at t.
// Pure function of t: the same instant always yields the same map.
func positionsAt(t time.Time) map[string]float64 {
	days := t.Sub(j2000).Hours() / 24
	out := make(map[string]float64, len(meanMotion))
	for planet, rate := range meanMotion {
		out[planet] = normalizeDegrees(epochLongitude[planet] + rate*days)
	}
	return out
}

// NatalChart derives placeholder natal placements from birth data.
//
// The sun sign comes from the calendar table (SignForDate). Moon and rising
// use the mean-motion positions: the moon sign from the moon's longitude at
// birth, the rising sign from the birth hour (one sign ascends roughly every
// two hours). When birthTime is empty the rising sign is left blank rather
// than guessed.
func NatalChart(birthDate, birthTime string) Chart {
	t, err := time.Parse("2006-01-02", birthDate)
	if err != nil {
		// Same degraded fallback as SignForDate: an Aries chart with no
		// positions, never an error.
		return Chart{SunSign: "Aries", Positions: map[string]float64{}}
	}

	rising := ""
	if birthTime != "" {
		if bt, err := time.Parse("15:04", birthTime); err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), bt.Hour(), bt.Minute(), 0, 0, time.UTC)
			sunIdx := signIndex(SignForTime(t))
			rising = Signs[(sunIdx+bt.Hour()/2)%12]
		}
	}

	pos := positionsAt(t)
	return Chart{
		SunSign:    SignForTime(t),
		MoonSign:   signForLongitude(pos["moon"]),
		RisingSign: rising,
		Positions:  pos,
	}
}

// signIndex returns the zero-based position of sign in Signs, or 0.
func signIndex(sign string) int {
	for i, s := range Signs {
		if s == sign {
			return i
		}
	}
	return 0
}
