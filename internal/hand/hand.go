// Package hand models a blackjack hand: the cards held, and the derived
// totals and predicates strategy and settlement consult.
package hand

import "github.com/kevin-lesenechal/freebj/internal/card"

// Hand is an ordered sequence of cards dealt to one player or the dealer.
type Hand struct {
	Cards     []card.Card
	FromSplit bool
	BetUnits  int // 1, or 2 after doubling
	doubled   bool
	stood     bool
}

// New returns an empty hand with BetUnits=1.
func New() *Hand {
	return &Hand{BetUnits: 1}
}

// Push appends a card to the hand.
func (h *Hand) Push(c card.Card) {
	h.Cards = append(h.Cards, c)
}

// HardTotal sums the hand treating every Ace as 1.
func (h *Hand) HardTotal() int {
	total := 0
	for _, c := range h.Cards {
		if c.Rank == card.Ace {
			total++
		} else {
			total += int(c.Rank)
		}
	}
	return total
}

// hasAce reports whether the hand holds at least one Ace.
func (h *Hand) hasAce() bool {
	for _, c := range h.Cards {
		if c.Rank == card.Ace {
			return true
		}
	}
	return false
}

// SoftTotal is HardTotal()+10 when the hand holds an Ace and that stays at
// or under 21; otherwise it equals HardTotal().
func (h *Hand) SoftTotal() int {
	hard := h.HardTotal()
	if h.hasAce() && hard+10 <= 21 {
		return hard + 10
	}
	return hard
}

// IsSoft reports whether counting an Ace as 11 changes the total.
func (h *Hand) IsSoft() bool {
	return h.SoftTotal() != h.HardTotal()
}

// IsPair reports whether the hand is exactly two cards of equal rank.
func (h *Hand) IsPair() bool {
	return len(h.Cards) == 2 && h.Cards[0].Rank == h.Cards[1].Rank
}

// IsBlackjack reports a natural: two cards totaling 21, never true for a
// from-split hand.
func (h *Hand) IsBlackjack() bool {
	return !h.FromSplit && len(h.Cards) == 2 && h.SoftTotal() == 21
}

// IsBusted reports whether the hard total exceeds 21.
func (h *Hand) IsBusted() bool {
	return h.HardTotal() > 21
}

// Double records that the hand has taken its double-down card: bet units
// become 2 and no further action is legal after the next card.
func (h *Hand) Double() {
	h.BetUnits = 2
	h.doubled = true
}

// Doubled reports whether this hand already doubled down.
func (h *Hand) Doubled() bool { return h.doubled }

// Stand marks the hand as finished acting.
func (h *Hand) Stand() { h.stood = true }

// Stood reports whether the hand has stood (including auto-stand at 21 or
// after a split-ace's single forced card).
func (h *Hand) Stood() bool { return h.stood }
