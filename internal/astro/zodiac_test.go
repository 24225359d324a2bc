package astro

import (
	"testing"
	"time"
)

func TestSignForDate_Boundaries(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"1990-03-20", "Pisces"},
		{"1990-03-21", "Aries"},
		{"1990-04-19", "Aries"},
		{"1990-04-20", "Taurus"},
		{"1990-06-21", "Cancer"},
		{"1990-08-23", "Virgo"},
		{"1990-10-23", "Scorpio"},
		{"1990-12-21", "Sagittarius"},
		{"1990-12-22", "Capricorn"},
		{"1991-01-19", "Capricorn"},
		{"1991-01-20", "Aquarius"},
		{"1991-02-18", "Aquarius"},
		{"1991-02-19", "Pisces"},
	}
	for _, tc := range cases {
		if got := SignForDate(tc.date); got != tc.want {
			t.Errorf("SignForDate(%s) = %s, want %s", tc.date, got, tc.want)
		}
	}
}

func TestSignForDate_BadInputFallsBackToAries(t *testing.T) {
	for _, bad := range []string{"", "not-a-date", "1990/03/21", "1990-13-40"} {
		if got := SignForDate(bad); got != "Aries" {
			t.Errorf("SignForDate(%q) = %s, want Aries", bad, got)
		}
	}
}

func TestTraits(t *testing.T) {
	for _, sign := range Signs {
		if Traits(sign) == "" {
			t.Errorf("no traits for %s", sign)
		}
	}
	if Traits("Ophiuchus") != "" {
		t.Error("unknown sign should yield empty traits")
	}
}

func Test_signForLongitude(t *testing.T) {
	cases := []struct {
		lon  float64
		want string
	}{
		{0, "Aries"},
		{29.9, "Aries"},
		{30, "Taurus"},
		{359.9, "Pisces"},
		{-10, "Pisces"},  // wraps to 350
		{370, "Aries"},   // wraps to 10
		{180, "Libra"},
	}
	for _, tc := range cases {
		if got := signForLongitude(tc.lon); got != tc.want {
			t.Errorf("signForLongitude(%v) = %s, want %s", tc.lon, got, tc.want)
		}
	}
}

func TestSignForTime_MatchesSignForDate(t *testing.T) {
	d := time.Date(1988, 7, 23, 0, 0, 0, 0, time.UTC)
	if got, want := SignForTime(d), SignForDate("1988-07-23"); got != want {
		t.Fatalf("SignForTime = %s, SignForDate = %s", got, want)
	}
}
