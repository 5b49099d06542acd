package main

import (
	"github.com/kevin-lesenechal/freebj/internal/rules"
	"github.com/kevin-lesenechal/freebj/internal/stats"
)

// Report is the JSON object printed on standard output.
type Report struct {
	Rounds         int64            `json:"rounds"`
	Rules          rules.Rules      `json:"rules"`
	EV             float64          `json:"ev"`
	StdDev         float64          `json:"stddev"`
	WinningDistrib map[string]int64 `json:"winning_distrib"`
	Hands          HandsReport      `json:"hands"`
}

// HandsReport mirrors stats.HandCounters with the report's exact JSON
// field names.
type HandsReport struct {
	Total     int64 `json:"total"`
	Won       int64 `json:"won"`
	Lost      int64 `json:"lost"`
	Push      int64 `json:"push"`
	Busted    int64 `json:"busted"`
	Blackjack int64 `json:"blackjack"`
	Doubled   int64 `json:"doubled"`
	Split     int64 `json:"split"`
	Insured   int64 `json:"insured"`
	Surrender int64 `json:"surrender"`
}

func buildReport(r rules.Rules, acc *stats.Accumulator) Report {
	return Report{
		Rounds:         acc.Rounds,
		Rules:          r,
		EV:             acc.EV(),
		StdDev:         acc.StdDev(),
		WinningDistrib: acc.Histogram,
		Hands: HandsReport{
			Total:     acc.Hands.Total,
			Won:       acc.Hands.Won,
			Lost:      acc.Hands.Lost,
			Push:      acc.Hands.Push,
			Busted:    acc.Hands.Busted,
			Blackjack: acc.Hands.Blackjack,
			Doubled:   acc.Hands.Doubled,
			Split:     acc.Hands.Split,
			Insured:   acc.Hands.Insured,
			Surrender: acc.Hands.Surrender,
		},
	}
}
