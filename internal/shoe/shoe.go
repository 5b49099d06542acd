// Package shoe models the physical shoe: a finite multiset of ranks dealt
// sequentially, reshuffled at round boundaries once penetration is
// reached, and hi-lo counted as it is dealt.
package shoe

import (
	"math/rand/v2"

	"github.com/kevin-lesenechal/freebj/internal/card"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// newRand derives a *rand.Rand deterministically from an int64 seed,
// splitmix64-mixing two independent halves into rand/v2's PCG source.
func newRand(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// DeriveWorkerSeed derives an int64 seed for worker `index` from a
// simulation's master seed, using the same splitmix64-style mixer as
// newRand so that two runs with identical (master, index) always produce
// identical per-worker shoes.
func DeriveWorkerSeed(master int64, index int) int64 {
	return int64(mix(uint64(master) + uint64(index)*goldenRatio64))
}

// Shoe is a multi-deck shoe dealt sequentially until penetration, hi-lo
// counted as cards are dealt.
type Shoe struct {
	decks            int
	penetrationCards int
	rng              *rand.Rand

	cards          []card.Card // remaining cards, next deal at index 0
	runningCount   int
	cardsSeen      int // since last shuffle
	overrideStream []card.Card
	overrideIdx    int
}

// New builds a shoe with every card of `decks` full decks present, in an
// arbitrary (pre-shuffle) order, and shuffles it once.
func New(decks, penetrationCards int, seed int64) *Shoe {
	s := &Shoe{
		decks:            decks,
		penetrationCards: penetrationCards,
		rng:              newRand(seed),
	}
	s.cards = freshCards(decks)
	s.Shuffle()
	return s
}

func freshCards(decks int) []card.Card {
	counts := card.FullDeckCounts()
	out := make([]card.Card, 0, decks*52)
	for d := 0; d < decks; d++ {
		for r := card.Rank(1); r <= 10; r++ {
			for i := 0; i < counts[r]; i++ {
				out = append(out, card.New(r))
			}
		}
	}
	return out
}

// WithShoeFile replaces the dealing order with a caller-supplied byte
// stream (values 1..10), wrapped modulo its length. Penetration and card
// conservation bookkeeping are otherwise unaffected; this bypasses
// Shuffle entirely for the override stream.
func (s *Shoe) WithShoeFile(bytes []byte) error {
	stream := make([]card.Card, 0, len(bytes))
	for _, b := range bytes {
		if b < 1 || b > 10 {
			continue
		}
		stream = append(stream, card.New(card.Rank(b)))
	}
	if len(stream) == 0 {
		return errEmptyShoeFile
	}
	s.overrideStream = stream
	s.overrideIdx = 0
	s.cardsSeen = 0
	s.runningCount = 0
	return nil
}

var errEmptyShoeFile = shoeFileErr("shoe file contains no bytes in range 1..10")

type shoeFileErr string

func (e shoeFileErr) Error() string { return string(e) }

// Shuffle performs a uniform Fisher-Yates shuffle over the remaining
// cards-plus-dealt multiset (a fresh full set, since shuffles happen only
// at round boundaries with nothing "in play") and resets the running
// count and seen counter. Has no effect while a shoe-file override is
// active; real shoe-file playback never reshuffles its card identities,
// only its read position wraps.
func (s *Shoe) Shuffle() {
	if s.overrideStream != nil {
		s.cardsSeen = 0
		s.runningCount = 0
		return
	}
	s.cards = freshCards(s.decks)
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
	s.cardsSeen = 0
	s.runningCount = 0
}

// Deal returns the next card, updating the running count and seen
// counter. Penetration is sized to always be less than the total card
// count (enforced by rules.Validate), so this never runs out of cards
// between reshuffles.
func (s *Shoe) Deal() card.Card {
	var c card.Card
	if s.overrideStream != nil {
		c = s.overrideStream[s.overrideIdx%len(s.overrideStream)]
		s.overrideIdx++
	} else {
		c = s.cards[0]
		s.cards = s.cards[1:]
	}
	s.runningCount += c.Rank.HiLoWeight()
	s.cardsSeen++
	return c
}

// NeedsShuffle reports whether penetration has been reached. The round
// engine calls this only at round boundaries.
func (s *Shoe) NeedsShuffle() bool {
	return s.cardsSeen >= s.penetrationCards
}

// RunningCount is the signed hi-lo sum of cards dealt since the last
// shuffle.
func (s *Shoe) RunningCount() int { return s.runningCount }

// CardsRemaining is the count of undealt cards. While a shoe-file
// override drives dealing, since that stream never runs out, it is the
// nominal shoe size minus the cards seen since the last shuffle.
func (s *Shoe) CardsRemaining() int {
	if s.overrideStream != nil {
		return s.decks*52 - s.cardsSeen
	}
	return len(s.cards)
}

// DecksRemaining is ⌈cards_remaining / 52⌉, clamped to >= 1.
func (s *Shoe) DecksRemaining() int {
	remaining := s.CardsRemaining()
	decks := (remaining + 51) / 52
	if decks < 1 {
		return 1
	}
	return decks
}

// TrueCount is the running count divided by decks remaining, floored
// toward negative infinity.
func (s *Shoe) TrueCount() int {
	return floorDiv(s.runningCount, s.DecksRemaining())
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ForceTC reshuffles, then removes cards from the shoe until the true
// count equals target: each step picks a uniformly random remaining card
// whose removal would move the running count one step closer to target,
// and removes it from the shoe, adding it to the running count and seen
// counter as if it had been dealt.
// Removal halts once the true count already equals target.
func (s *Shoe) ForceTC(target int) {
	s.Shuffle()
	for s.TrueCount() != target {
		needPositive := s.TrueCount() < target // need running count to rise
		idx := s.findRemovableCard(needPositive)
		if idx < 0 {
			break // no card moves it the right direction; shoe is as close as it gets
		}
		removed := s.cards[idx]
		s.cards = append(s.cards[:idx], s.cards[idx+1:]...)
		s.runningCount += removed.Rank.HiLoWeight()
		s.cardsSeen++
	}
}

// findRemovableCard returns the index of a random remaining card whose
// hi-lo weight has the requested sign (removing a low card, weight +1,
// raises TC; removing a high card, weight -1, lowers it). Weight-0 cards
// never move the count and are skipped.
func (s *Shoe) findRemovableCard(wantPositiveWeight bool) int {
	candidates := make([]int, 0, len(s.cards))
	for i, c := range s.cards {
		w := c.Rank.HiLoWeight()
		if w == 0 {
			continue
		}
		if (w > 0) == wantPositiveWeight {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return -1
	}
	return candidates[s.rng.IntN(len(candidates))]
}
