package round

import (
	"testing"

	"github.com/kevin-lesenechal/freebj/internal/card"
	"github.com/kevin-lesenechal/freebj/internal/rules"
	"github.com/kevin-lesenechal/freebj/internal/shoe"
	"github.com/kevin-lesenechal/freebj/internal/strategy"
	"github.com/stretchr/testify/require"
)

func newTestShoe(t *testing.T, stream []byte) *shoe.Shoe {
	t.Helper()
	s := shoe.New(6, 234, 1)
	require.NoError(t, s.WithShoeFile(stream))
	return s
}

func rank(r card.Rank) *card.Rank { return &r }

func TestDealerBlackjackBeatsPlayerTwenty(t *testing.T) {
	r := rules.Default()
	r.GameType = rules.AHC
	s := newTestShoe(t, []byte{10}) // dealer holecard
	in := &Input{
		PlayerCards:  []card.Card{card.New(10), card.New(9)},
		DealerUpcard: rank(card.Ace),
	}
	res := Play(s, r, nil, 1.0, in)
	require.Len(t, res.Hands, 1)
	require.True(t, res.Hands[0].Lost)
	require.Equal(t, -1.0, res.Hands[0].Payout)
}

func TestDealerBlackjackPushesPlayerBlackjack(t *testing.T) {
	r := rules.Default()
	r.GameType = rules.AHC
	s := newTestShoe(t, []byte{10})
	in := &Input{
		PlayerCards:  []card.Card{card.New(card.Ace), card.New(10)},
		DealerUpcard: rank(card.Ace),
	}
	res := Play(s, r, nil, 1.0, in)
	require.Len(t, res.Hands, 1)
	require.True(t, res.Hands[0].Push)
	require.Equal(t, 0.0, res.Hands[0].Payout)
}

func TestPlayerBlackjackPaysBJPays(t *testing.T) {
	r := rules.Default()
	r.GameType = rules.AHC
	// Dealer upcard 6, holecard whatever, avoids the peek branch entirely.
	s := newTestShoe(t, []byte{5, 9})
	in := &Input{
		PlayerCards:  []card.Card{card.New(card.Ace), card.New(10)},
		DealerUpcard: rank(6),
	}
	res := Play(s, r, nil, 2.0, in)
	require.Len(t, res.Hands, 1)
	require.True(t, res.Hands[0].Blackjack)
	require.True(t, res.Hands[0].Won)
	require.InDelta(t, 3.0, res.Hands[0].Payout, 1e-9) // 1.5 * stake(2)
}

func TestPlayerBustLosesStake(t *testing.T) {
	r := rules.Default()
	r.GameType = rules.AHC
	// Player hits hard 12 vs dealer 6 isn't basic-strategy hit, so force the action.
	s := newTestShoe(t, []byte{5, 10})
	hit := strategy.Hit
	in := &Input{
		PlayerCards:       []card.Card{card.New(10), card.New(2)},
		DealerUpcard:      rank(6),
		ForcedFirstAction: &hit,
	}
	res := Play(s, r, nil, 1.0, in)
	require.Len(t, res.Hands, 1)
	require.True(t, res.Hands[0].Busted)
	require.True(t, res.Hands[0].Lost)
	require.Equal(t, -1.0, res.Hands[0].Payout)
}

func TestDoubleDownDoublesStake(t *testing.T) {
	r := rules.Default()
	r.GameType = rules.AHC
	// Player 11 vs dealer 6: basic strategy doubles. Draw order is
	// dealer-holecard, then the player's double card, then any further
	// dealer draws (the shoe is consumed in that sequence by Play).
	s := newTestShoe(t, []byte{
		5, // dealer holecard (6+5=11, hits)
		9, // player double card -> 20
		6, // dealer draw -> 17, stands (S17 default)
	})
	in := &Input{
		PlayerCards:  []card.Card{card.New(5), card.New(6)},
		DealerUpcard: rank(6),
	}
	res := Play(s, r, nil, 1.0, in)
	require.Len(t, res.Hands, 1)
	require.True(t, res.Hands[0].Doubled)
	require.True(t, res.Hands[0].Won)
	require.Equal(t, 2.0, res.Hands[0].Payout)
}

func TestSplitAcesWithoutPlayAcePairsAutoStands(t *testing.T) {
	r := rules.Default()
	r.GameType = rules.AHC
	r.PlayAcePairs = false
	s := newTestShoe(t, []byte{
		10,   // dealer holecard: up(6)+10=16, hits
		5, 5, // one card dealt to each split-ace hand: A+5=16 soft each
		5,    // dealer draw -> 21
	})
	in := &Input{
		PlayerCards:  []card.Card{card.New(card.Ace), card.New(card.Ace)},
		DealerUpcard: rank(6),
	}
	res := Play(s, r, nil, 1.0, in)
	require.Len(t, res.Hands, 2)
	for _, h := range res.Hands {
		require.True(t, h.Split)
		require.False(t, h.Blackjack) // from-split 21 is never blackjack (N/A here, but never true)
		require.True(t, h.Lost)
	}
}

func TestSplitAcesWithPlayAcePairsContinuesPlaying(t *testing.T) {
	r := rules.Default()
	r.GameType = rules.AHC
	r.PlayAcePairs = true
	s := newTestShoe(t, []byte{
		10,   // dealer holecard: up(6)+10=16, hits
		9, 9, // each split-ace hand draws a 9 (soft 20: basic strategy stands)
		5,    // dealer draw -> 21
	})
	in := &Input{
		PlayerCards:  []card.Card{card.New(card.Ace), card.New(card.Ace)},
		DealerUpcard: rank(6),
	}
	res := Play(s, r, nil, 1.0, in)
	require.Len(t, res.Hands, 2)
	for _, h := range res.Hands {
		require.True(t, h.Split)
	}
}

func TestEarlySurrenderEndsRoundAtHalfStake(t *testing.T) {
	r := rules.Default()
	r.GameType = rules.AHC
	r.Surrender = rules.SurrenderEarly
	s := newTestShoe(t, []byte{7}) // dealer holecard, up is 10 but no BJ
	in := &Input{
		PlayerCards:  []card.Card{card.New(10), card.New(6)}, // hard 16 vs 10 -> surrender per basic strategy
		DealerUpcard: rank(10),
	}
	res := Play(s, r, nil, 1.0, in)
	require.Len(t, res.Hands, 1)
	require.True(t, res.Hands[0].Surrendered)
	require.Equal(t, -0.5, res.Hands[0].Payout)
}

func TestPushOnEqualTotals(t *testing.T) {
	r := rules.Default()
	r.GameType = rules.AHC
	s := newTestShoe(t, []byte{9}) // dealer holecard: up(8)+9=17 stands
	stand := strategy.Stand
	in := &Input{
		PlayerCards:       []card.Card{card.New(10), card.New(7)}, // hard 17
		DealerUpcard:      rank(8),
		ForcedFirstAction: &stand,
	}
	res := Play(s, r, nil, 1.0, in)
	require.Len(t, res.Hands, 1)
	require.True(t, res.Hands[0].Push)
	require.Equal(t, 0.0, res.Hands[0].Payout)
}

func TestENHCDoubleBlackjackPushesViaDealerPhase(t *testing.T) {
	r := rules.Default()
	r.GameType = rules.ENHC
	s := newTestShoe(t, []byte{10}) // dealer's second card dealt during the dealer phase, makes A+10
	in := &Input{
		PlayerCards:  []card.Card{card.New(card.Ace), card.New(10)},
		DealerUpcard: rank(card.Ace),
	}
	res := Play(s, r, nil, 1.0, in)
	require.Len(t, res.Hands, 1)
	require.True(t, res.Hands[0].Push)
}
