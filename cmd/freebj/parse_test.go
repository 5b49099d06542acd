package main

import "testing"

func TestParseRoundCount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1000000", 1000000},
		{"1M", 1_000_000},
		{"500k", 500_000},
		{"2G", 2_000_000_000},
	}
	for _, c := range cases {
		got, err := parseRoundCount(c.in)
		if err != nil {
			t.Fatalf("parseRoundCount(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("parseRoundCount(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseRoundCountRejectsGarbage(t *testing.T) {
	if _, err := parseRoundCount("abc"); err == nil {
		t.Error("parseRoundCount(\"abc\") expected an error")
	}
}

func TestParsePenetration(t *testing.T) {
	cases := []struct {
		in    string
		decks int
		want  int
	}{
		{"75%", 6, 234},  // 6*52*0.75
		{"4d", 6, 208},   // 4 decks worth of cards
		{"3/4", 6, 234},
		{"100", 6, 100},
	}
	for _, c := range cases {
		got, err := parsePenetration(c.in, c.decks)
		if err != nil {
			t.Fatalf("parsePenetration(%q, %d): %v", c.in, c.decks, err)
		}
		if got != c.want {
			t.Errorf("parsePenetration(%q, %d) = %d, want %d", c.in, c.decks, got, c.want)
		}
	}
}

func TestParsePenetrationRejectsGarbage(t *testing.T) {
	if _, err := parsePenetration("whatever", 6); err == nil {
		t.Error("parsePenetration(\"whatever\", 6) expected an error")
	}
}
