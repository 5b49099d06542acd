package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseRoundCount parses the -n grammar: a plain integer, or an integer
// suffixed with k/M/G (1e3/1e6/1e9), e.g. "1000000" or "1M".
func parseRoundCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty round count")
	}
	mult := int64(1)
	switch suffix := s[len(s)-1:]; suffix {
	case "k", "K":
		mult = 1_000
		s = s[:len(s)-1]
	case "M":
		mult = 1_000_000
		s = s[:len(s)-1]
	case "G":
		mult = 1_000_000_000
		s = s[:len(s)-1]
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid round count %q: %w", s, err)
	}
	return n * mult, nil
}

// parsePenetration parses the -p grammar against a shoe of `decks` decks
// (totalCards = decks*52):
//
//	"N"   a literal card count
//	"N%"  a percentage of the total cards
//	"Nd"  a number of decks (fractional allowed, e.g. "4.5d")
//	"A/B" a fraction A/B of the total cards
func parsePenetration(s string, decks int) (int, error) {
	s = strings.TrimSpace(s)
	total := float64(decks * 52)

	switch {
	case strings.HasSuffix(s, "%"):
		pct, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid penetration %q: %w", s, err)
		}
		return int(total * pct / 100), nil
	case strings.HasSuffix(s, "d"):
		d, err := strconv.ParseFloat(strings.TrimSuffix(s, "d"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid penetration %q: %w", s, err)
		}
		return int(d * 52), nil
	case strings.Contains(s, "/"):
		parts := strings.SplitN(s, "/", 2)
		num, err1 := strconv.ParseFloat(parts[0], 64)
		den, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil || den == 0 {
			return 0, fmt.Errorf("invalid penetration %q", s)
		}
		return int(total * num / den), nil
	default:
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("invalid penetration %q: %w", s, err)
		}
		return n, nil
	}
}
