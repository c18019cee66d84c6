package common

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPluralizeYuans(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "юаней"},
		{1, "юань"},
		{2, "юаня"},
		{4, "юаня"},
		{5, "юаней"},
		{11, "юаней"},
		{14, "юаней"},
		{21, "юань"},
		{22, "юаня"},
		{100, "юаней"},
		{101, "юань"},
		{-3, "юаня"},
	}

	for _, tc := range cases {
		if got := PluralizeYuans(tc.n); got != tc.want {
			t.Errorf("PluralizeYuans(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"50", "50 юаней"},
		{"1", "1 юань"},
		{"50.00", "50 юаней"},
		{"2.50", "2.50 юаня"},
		{"0.1", "0.10 юаня"},
	}

	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.raw)
		if err != nil {
			t.Fatalf("bad decimal %q: %v", tc.raw, err)
		}
		if got := FormatAmount(d); got != tc.want {
			t.Errorf("FormatAmount(%s) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestFormatDateTimeRoundTrip(t *testing.T) {
	orig := time.Date(2026, 3, 1, 15, 4, 5, 0, time.Local)

	got := FormatDateTime(orig)

	parsed, err := time.ParseInLocation("02.01.2006 15:04:05", got, time.Local)
	if err != nil {
		t.Fatalf("cannot parse %q back: %v", got, err)
	}
	if !parsed.Equal(orig) {
		t.Errorf("round trip: got %v, want %v", parsed, orig)
	}
}

func TestTodayStart(t *testing.T) {
	loc := time.UTC
	start := TodayStart(loc)

	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Errorf("TodayStart is not midnight: %v", start)
	}
	if start.Location() != loc {
		t.Errorf("TodayStart location = %v, want UTC", start.Location())
	}
	if time.Now().In(loc).Before(start) {
		t.Errorf("TodayStart is in the future: %v", start)
	}
}
