// Package round implements the per-round state machine: dealing, the AHC
// holecard peek, early surrender, the player-hand work-queue (including
// splits), the dealer's draw, and settlement.
package round

import (
	"github.com/kevin-lesenechal/freebj/internal/card"
	"github.com/kevin-lesenechal/freebj/internal/hand"
	"github.com/kevin-lesenechal/freebj/internal/rules"
	"github.com/kevin-lesenechal/freebj/internal/shoe"
	"github.com/kevin-lesenechal/freebj/internal/strategy"
)

// HandRecord is the settled outcome of one of the player's hands.
type HandRecord struct {
	Payout      float64
	Won         bool
	Lost        bool
	Push        bool
	Busted      bool
	Blackjack   bool
	Doubled     bool
	Split       bool
	Surrendered bool
	Insured     bool // always false: FreeBJ models no insurance decision
}

// Result is the outcome of one round: every player hand's settlement and
// their summed net payout.
type Result struct {
	Hands     []HandRecord
	NetPayout float64
}

// Input overrides the normal random deal for debugging (-c, --dealer,
// -a). Any nil/empty field falls back to dealing from the shoe or
// letting strategy choose.
type Input struct {
	PlayerCards       []card.Card
	DealerUpcard      *card.Rank
	ForcedFirstAction *strategy.Action
}

// playerHand tracks per-hand bookkeeping the work-queue needs beyond the
// hand.Hand state itself.
type playerHand struct {
	h            *hand.Hand
	actionsTaken int
	surrendered  bool
}

// Play runs one full round: deal, peek, player phase, dealer phase,
// settlement. deviations is the full ordered deviation list already
// composed by the caller (built-in table, if enabled, then user entries).
func Play(s *shoe.Shoe, r rules.Rules, deviations []strategy.Deviation, stake float64, in *Input) *Result {
	dealerUp, dealerHole, holeDealt, playerHands := deal(s, r, in)

	// AHC peek.
	if r.GameType == rules.AHC && (dealerUp == card.Ace || dealerUp == card.Ten) {
		if dealerBlackjack(dealerUp, dealerHole) {
			return resolveDealerBlackjack(playerHands[0], stake)
		}
	}

	// Early surrender check, only meaningful before any hit/split.
	if r.Surrender == rules.SurrenderEarly {
		initial := playerHands[0]
		legal := legalActions(initial.h, r, 1, true, false)
		var forced *strategy.Action
		if in != nil {
			forced = in.ForcedFirstAction
		}
		action := decideFor(initial.h, dealerUp, legal, s, deviations, in)
		if action == strategy.Surrender {
			return resolveSurrenderOnly(stake)
		}
		// The probe must not swallow a forced debug action that wasn't a
		// surrender; the player phase re-asks the same first decision.
		if in != nil {
			in.ForcedFirstAction = forced
		}
	}

	// Player phase: work-queue over hands (initial + any splits).
	queue := playerHands
	totalHandsCreated := len(queue)
	var resolved []*playerHand

	for len(queue) > 0 {
		ph := queue[0]
		queue = queue[1:]

		for {
			if ph.h.IsBusted() || ph.h.Stood() {
				break
			}
			dealerPeeked := r.GameType == rules.AHC
			legal := legalActions(ph.h, r, totalHandsCreated, ph.actionsTaken == 0, dealerPeeked)
			action := decideFor(ph.h, dealerUp, legal, s, deviations, in)
			ph.actionsTaken++

			switch action {
			case strategy.Hit:
				ph.h.Push(s.Deal())
				if ph.h.IsBusted() || ph.h.HardTotal() == 21 || ph.h.SoftTotal() == 21 {
					ph.h.Stand()
				}
			case strategy.Stand:
				ph.h.Stand()
			case strategy.Double:
				ph.h.Double()
				ph.h.Push(s.Deal())
				ph.h.Stand()
			case strategy.SplitAction:
				a, b := splitInto(ph.h, r, s)
				totalHandsCreated++
				queue = append([]*playerHand{{h: a}, {h: b}}, queue...)
				ph = nil
			case strategy.Surrender:
				ph.surrendered = true
				ph.h.Stand()
			}
			if ph == nil {
				break
			}
		}
		if ph != nil {
			resolved = append(resolved, ph)
		}
	}

	// Dealer phase, unless every hand is already fully determined.
	dealerHand := hand.New()
	dealerHand.Push(card.New(dealerUp))
	if needsDealerPhase(resolved, r.GameType) {
		if !holeDealt {
			dealerHole = s.Deal()
			holeDealt = true
		}
		dealerHand.Push(dealerHole)
		playDealer(s, r, dealerHand)
	} else if holeDealt {
		dealerHand.Push(dealerHole)
	}

	return settle(resolved, dealerHand, r, stake)
}

func decideFor(h *hand.Hand, dealerUp card.Rank, legal strategy.ActionSet, s *shoe.Shoe, deviations []strategy.Deviation, in *Input) strategy.Action {
	if in != nil && in.ForcedFirstAction != nil && len(h.Cards) == 2 && !h.FromSplit && !h.Doubled() {
		forced := *in.ForcedFirstAction
		in.ForcedFirstAction = nil // only the very first decision of the round is forced
		if legal.Contains(forced) {
			return forced
		}
	}
	return strategy.Decide(h, dealerUp, legal, s.TrueCount(), deviations)
}

func deal(s *shoe.Shoe, r rules.Rules, in *Input) (card.Rank, card.Card, bool, []*playerHand) {
	player := hand.New()
	if in != nil && len(in.PlayerCards) > 0 {
		for _, c := range in.PlayerCards {
			player.Push(c)
		}
	} else {
		player.Push(s.Deal())
		player.Push(s.Deal())
	}

	var dealerUp card.Rank
	if in != nil && in.DealerUpcard != nil {
		dealerUp = *in.DealerUpcard
	} else {
		dealerUp = s.Deal().Rank
	}

	var dealerHole card.Card
	holeDealt := false
	if r.GameType == rules.AHC {
		dealerHole = s.Deal()
		holeDealt = true
	}

	return dealerUp, dealerHole, holeDealt, []*playerHand{{h: player}}
}

func dealerBlackjack(up card.Rank, hole card.Card) bool {
	h := hand.New()
	h.Push(card.New(up))
	h.Push(hole)
	return h.IsBlackjack()
}

func resolveDealerBlackjack(p *playerHand, stake float64) *Result {
	if p.h.IsBlackjack() {
		return &Result{Hands: []HandRecord{{Push: true, Blackjack: true}}, NetPayout: 0}
	}
	payout := -stake * float64(p.h.BetUnits)
	return &Result{Hands: []HandRecord{{Payout: payout, Lost: true}}, NetPayout: payout}
}

func resolveSurrenderOnly(stake float64) *Result {
	payout := -0.5 * stake
	return &Result{Hands: []HandRecord{{Payout: payout, Surrendered: true}}, NetPayout: payout}
}

// splitInto produces the two post-split hands: each seeded with one of
// the pair's cards, then dealt one card immediately. A split
// of aces under play_ace_pairs=false freezes both hands at two cards via
// auto-stand instead of re-entering the decision loop.
func splitInto(h *hand.Hand, r rules.Rules, s *shoe.Shoe) (*hand.Hand, *hand.Hand) {
	pairRank := h.Cards[0].Rank

	a := hand.New()
	a.FromSplit = true
	a.Push(h.Cards[0])
	a.Push(s.Deal())

	b := hand.New()
	b.FromSplit = true
	b.Push(h.Cards[1])
	b.Push(s.Deal())

	if pairRank == card.Ace && !r.PlayAcePairs {
		a.Stand()
		b.Stand()
	}
	return a, b
}

// needsDealerPhase reports whether at least one player hand still needs a
// dealer total to settle against. Busted and surrendered hands lose
// regardless of the dealer, and under AHC a natural blackjack already knows its payout
// because the peek confirmed the dealer holds none. Everything else
// (plain stands, and any ENHC natural, which might still push against an
// undealt dealer blackjack) requires the dealer to play.
func needsDealerPhase(hands []*playerHand, gt rules.GameType) bool {
	for _, ph := range hands {
		if ph.h.IsBusted() || ph.surrendered {
			continue
		}
		if ph.h.IsBlackjack() && gt == rules.AHC {
			continue
		}
		return true
	}
	return false
}

// playDealer draws into d until the dealer's total reaches 17 or more,
// except that a soft 17 is hit when the ruleset hits soft 17.
func playDealer(s *shoe.Shoe, r rules.Rules, d *hand.Hand) {
	for {
		total := d.SoftTotal()
		if total > 17 {
			return
		}
		if total == 17 {
			if d.IsSoft() && r.Soft17 == rules.H17 {
				d.Push(s.Deal())
				continue
			}
			return
		}
		d.Push(s.Deal())
	}
}

// settle resolves each player hand against the dealer's final hand and
// sums the round's net payout.
func settle(hands []*playerHand, dealerHand *hand.Hand, r rules.Rules, stake float64) *Result {
	res := &Result{}
	for _, ph := range hands {
		h := ph.h
		rec := HandRecord{Doubled: h.Doubled(), Split: h.FromSplit, Surrendered: ph.surrendered}

		switch {
		case ph.surrendered:
			rec.Payout = -0.5 * stake
		case h.IsBusted():
			rec.Busted = true
			rec.Lost = true
			rec.Payout = -stake * float64(h.BetUnits)
		case h.IsBlackjack():
			rec.Blackjack = true
			if dealerHand.IsBlackjack() {
				rec.Push = true
			} else {
				rec.Won = true
				rec.Payout = r.BJPays * stake
			}
		case dealerHand.IsBusted():
			rec.Won = true
			rec.Payout = stake * float64(h.BetUnits)
		default:
			pt, dt := h.SoftTotal(), dealerHand.SoftTotal()
			switch {
			case pt > dt:
				rec.Won = true
				rec.Payout = stake * float64(h.BetUnits)
			case pt < dt:
				rec.Lost = true
				rec.Payout = -stake * float64(h.BetUnits)
			default:
				rec.Push = true
			}
		}

		res.Hands = append(res.Hands, rec)
		res.NetPayout += rec.Payout
	}
	return res
}
