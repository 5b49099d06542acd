package strategy

import (
	"fmt"

	"github.com/kevin-lesenechal/freebj/internal/card"
	"github.com/kevin-lesenechal/freebj/internal/hand"
)

// DescriptorKind distinguishes the three ways a hand is looked up in
// strategy tables and deviations.
type DescriptorKind byte

const (
	KindHard DescriptorKind = iota
	KindSoft
	KindPair
)

// Descriptor identifies a hand for table lookup and deviation matching.
// For KindHard, Value is the hard total (4..21). For KindSoft, Value is
// the non-Ace companion rank (2..9, i.e. the hand is A+Value). For
// KindPair, Value is the paired rank (1..10, 1=Ace).
type Descriptor struct {
	Kind  DescriptorKind
	Value int
}

func (d Descriptor) String() string {
	switch d.Kind {
	case KindSoft:
		return fmt.Sprintf("A%d", d.Value)
	case KindPair:
		return fmt.Sprintf("%s/%s", card.Rank(d.Value), card.Rank(d.Value))
	default:
		return fmt.Sprintf("%d", d.Value)
	}
}

// DescribeHand computes the lookup descriptor for h: a pair only counts
// as KindPair when splitting is still legal (more splits
// available); a two-card soft total only counts as KindSoft while it's
// still <=21 soft (true for any un-busted hand, since SoftTotal caps at
// HardTotal once it would exceed 21).
func DescribeHand(h *hand.Hand, splitLegal bool) Descriptor {
	if h.IsPair() && splitLegal {
		return Descriptor{Kind: KindPair, Value: int(h.Cards[0].Rank)}
	}
	if h.IsSoft() && h.SoftTotal() <= 21 {
		return Descriptor{Kind: KindSoft, Value: h.SoftTotal() - 11} // companion rank: soft = A(11)+companion
	}
	return Descriptor{Kind: KindHard, Value: h.HardTotal()}
}
