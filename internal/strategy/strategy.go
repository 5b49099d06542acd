// Package strategy implements the basic-strategy-plus-deviations decision
// function, the fixed lookup tables it consults, and the default
// Illustrious-18+Fab-4 deviation table.
package strategy

import (
	"github.com/kevin-lesenechal/freebj/internal/card"
	"github.com/kevin-lesenechal/freebj/internal/hand"
)

// Decide picks the action for one decision point: compute the hand
// descriptor, scan deviations in order for the first match legal at this
// decision, and otherwise consult the basic-strategy table.
func Decide(h *hand.Hand, dealerUp card.Rank, legal ActionSet, tc int, deviations []Deviation) Action {
	descriptor := DescribeHand(h, legal.Split)

	for _, dv := range deviations {
		if dv.Matches(descriptor, dealerUp, tc) && legal.Contains(dv.Action) {
			return dv.Action
		}
	}

	pref := basicStrategyPreference(descriptor, dealerUp)
	return firstLegal(pref, legal)
}
