// Package astro provides the lightweight astrological arithmetic used by the
// companion: tropical sun-sign lookup, sign traits, placeholder natal
// placements, and daily transit snapshots. Everything here is a table lookup
// or deterministic date arithmetic; there is no real ephemeris behind it.
package astro

import "time"

// Signs lists the twelve zodiac signs in order, starting at Aries.
var Signs = []string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// signTraits maps each sign to its short trait summary.
var signTraits = map[string]string{
	"Aries":       "Bold, energetic, pioneering",
	"Taurus":      "Grounded, patient, loyal",
	"Gemini":      "Curious, witty, adaptable",
	"Cancer":      "Sensitive, nurturing, protective",
	"Leo":         "Confident, creative, proud",
	"Virgo":       "Analytical, practical, diligent",
	"Libra":       "Charming, balanced, fair-minded",
	"Scorpio":     "Intense, intuitive, passionate",
	"Sagittarius": "Adventurous, optimistic, independent",
	"Capricorn":   "Disciplined, ambitious, wise",
	"Aquarius":    "Innovative, independent, humanitarian",
	"Pisces":      "Compassionate, dreamy, artistic",
}

// SignForDate returns the tropical sun sign for a YYYY-MM-DD birth date.
// Unparseable input falls back to Aries, matching the historical behavior of
// the profile pipeline (a bad date must never abort profile derivation).
func SignForDate(birthDate string) string {
	t, err := time.Parse("2006-01-02", birthDate)
	if err != nil {
		return "Aries"
	}
	return SignForTime(t)
}

// SignForTime returns the tropical sun sign for t.
func SignForTime(t time.Time) string {
	month, day := int(t.Month()), t.Day()
	switch {
	case (month == 3 && day >= 21) || (month == 4 && day <= 19):
		return "Aries"
	case (month == 4 && day >= 20) || (month == 5 && day <= 20):
		return "Taurus"
	case (month == 5 && day >= 21) || (month == 6 && day <= 20):
		return "Gemini"
	case (month == 6 && day >= 21) || (month == 7 && day <= 22):
		return "Cancer"
	case (month == 7 && day >= 23) || (month == 8 && day <= 22):
		return "Leo"
	case (month == 8 && day >= 23) || (month == 9 && day <= 22):
		return "Virgo"
	case (month == 9 && day >= 23) || (month == 10 && day <= 22):
		return "Libra"
	case (month == 10 && day >= 23) || (month == 11 && day <= 21):
		return "Scorpio"
	case (month == 11 && day >= 22) || (month == 12 && day <= 21):
		return "Sagittarius"
	case (month == 12 && day >= 22) || (month == 1 && day <= 19):
		return "Capricorn"
	case (month == 1 && day >= 20) || (month == 2 && day <= 18):
		return "Aquarius"
	default:
		return "Pisces"
	}
}

// Traits returns the trait summary for a sign, or "" for an unknown sign.
func Traits(sign string) string { return signTraits[sign] }

// signForLongitude maps an ecliptic longitude in degrees to its sign.
func signForLongitude(lon float64) string {
	lon = normalizeDegrees(lon)
	return Signs[int(lon/30)%12]
}

// normalizeDegrees wraps an angle into [0, 360).
func normalizeDegrees(d float64) float64 {
	for d < 0 {
		d += 360
	}
	for d >= 360 {
		d -= 360
	}
	return d
}
