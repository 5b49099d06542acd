package betting

import "testing"

func TestFlatStrategyAlwaysBetsOneUnit(t *testing.T) {
	s := Flat()
	for _, tc := range []int{-5, -1, 0, 1, 4, 20} {
		if got := s.Stake(tc); got != 1.0 {
			t.Errorf("Stake(%d) = %v, want 1.0", tc, got)
		}
	}
}

func TestStakeNegativeOrZeroTC(t *testing.T) {
	s := Strategy{Base: 10, PerTC: 5, MaxTC: 6, NegTC: 0}
	if got := s.Stake(-2); got != 0 {
		t.Errorf("Stake(-2) = %v, want 0", got)
	}
	if got := s.Stake(0); got != 0 {
		t.Errorf("Stake(0) = %v, want 0", got)
	}
}

func TestStakeCapsAtMaxTC(t *testing.T) {
	// TC=7 with base 10, per_tc 5, max_tc 6 caps at 10 + 6*5 = 40.
	s := Strategy{Base: 10, PerTC: 5, MaxTC: 6, NegTC: 0}
	if got := s.Stake(7); got != 40 {
		t.Errorf("Stake(7) = %v, want 40", got)
	}
	if got := s.Stake(6); got != 40 {
		t.Errorf("Stake(6) = %v, want 40", got)
	}
	if got := s.Stake(3); got != 25 {
		t.Errorf("Stake(3) = %v, want 25", got)
	}
}
