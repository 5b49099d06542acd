// Package betting implements the pure true-count-to-stake function.
package betting

// Strategy is the (base, per_tc, max_tc, neg_bet) betting-strategy tuple.
type Strategy struct {
	Base  float64
	PerTC float64
	MaxTC int
	NegTC float64 // stake used whenever tc <= 0
}

// Flat is the always-bet-one-unit strategy used when card counting is
// disabled.
func Flat() Strategy {
	return Strategy{Base: 1.0, NegTC: 1.0}
}

// Stake computes stake(tc) = neg_bet if tc<=0, else min(tc,max_tc)*per_tc+base.
func (s Strategy) Stake(tc int) float64 {
	if tc <= 0 {
		return s.NegTC
	}
	capped := tc
	if capped > s.MaxTC {
		capped = s.MaxTC
	}
	return float64(capped)*s.PerTC + s.Base
}
