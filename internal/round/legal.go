package round

import (
	"github.com/kevin-lesenechal/freebj/internal/card"
	"github.com/kevin-lesenechal/freebj/internal/hand"
	"github.com/kevin-lesenechal/freebj/internal/rules"
	"github.com/kevin-lesenechal/freebj/internal/strategy"
)

// legalActions computes the legal-action set for h's next decision.
// handsInPlay is the player's current hand count (for the split
// cap); firstDecision is true only on a hand's very first action (for
// double/surrender eligibility); dealerPeeked is true when an AHC peek
// has already confirmed the dealer does not hold blackjack.
func legalActions(h *hand.Hand, r rules.Rules, handsInPlay int, firstDecision bool, dealerPeeked bool) strategy.ActionSet {
	var s strategy.ActionSet

	s.Hit = !h.IsBusted() && !h.Doubled() && !h.IsBlackjack() &&
		!(h.FromSplit && isSplitAce(h) && !r.PlayAcePairs)

	s.Stand = true

	s.Double = firstDecision && len(h.Cards) == 2 && !h.IsBlackjack() &&
		doubleAllowedByTotal(h, r.DoubleDown) &&
		!(h.FromSplit && !r.DAS)

	s.Split = h.IsPair() && handsInPlay < r.MaxSplits

	s.Surrender = firstDecision && len(h.Cards) == 2 && !h.FromSplit &&
		surrenderAllowed(r, dealerPeeked)

	return s
}

func isSplitAce(h *hand.Hand) bool {
	return h.FromSplit && len(h.Cards) >= 1 && h.Cards[0].Rank == card.Ace
}

func surrenderAllowed(r rules.Rules, dealerPeeked bool) bool {
	switch r.Surrender {
	case rules.SurrenderEarly:
		return true
	case rules.SurrenderLate:
		return dealerPeeked
	default:
		return false
	}
}

func doubleAllowedByTotal(h *hand.Hand, policy rules.DoubleDown) bool {
	total := h.HardTotal()
	switch policy {
	case rules.DoubleNone:
		return false
	case rules.DoubleAnyHand, rules.DoubleAnyTwo:
		return true
	case rules.DoubleHard9to11:
		return !h.IsSoft() && total >= 9 && total <= 11
	case rules.DoubleHard10to11:
		return !h.IsSoft() && total >= 10 && total <= 11
	default:
		return false
	}
}
