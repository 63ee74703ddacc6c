package models

import (
	"testing"
	"time"
)

func TestTitleKey(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Fed Cuts Rates", "fed cuts rates"},
		{"  Fed Cuts Rates  ", "fed cuts rates"},
		{"FED CUTS RATES", "fed cuts rates"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		a := Article{Title: tc.title}
		if got := a.TitleKey(); got != tc.want {
			t.Errorf("TitleKey(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestIsFresh(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	lookback := 24 * time.Hour

	within := now.Add(-23 * time.Hour)
	boundary := now.Add(-24 * time.Hour)
	outside := now.Add(-25 * time.Hour)

	cases := []struct {
		name      string
		published *time.Time
		want      bool
	}{
		{"within window", &within, true},
		{"exactly at boundary", &boundary, true},
		{"outside window", &outside, false},
		{"no publish time", nil, true},
	}
	for _, tc := range cases {
		a := Article{Title: "x", Published: tc.published}
		if got := a.IsFresh(now, lookback); got != tc.want {
			t.Errorf("%s: IsFresh = %v, want %v", tc.name, got, tc.want)
		}
	}
}
