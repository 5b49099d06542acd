package strategy

import "github.com/kevin-lesenechal/freebj/internal/card"

// basicStrategyPreference returns the preference list of actions for a
// hand descriptor against a dealer upcard rank, per standard 6-deck
// hi-lo basic strategy. firstLegal() then picks the first one the rule
// set permits at this decision.
func basicStrategyPreference(d Descriptor, dealerUp card.Rank) []Action {
	switch d.Kind {
	case KindPair:
		return pairPreference(d.Value, dealerUp)
	case KindSoft:
		return softPreference(d.Value, dealerUp)
	default:
		return hardPreference(d.Value, dealerUp)
	}
}

func between(r card.Rank, lo, hi int) bool {
	return int(r) >= lo && int(r) <= hi
}

func hardPreference(total int, up card.Rank) []Action {
	switch {
	case total <= 8:
		return []Action{Hit}
	case total == 9:
		if between(up, 3, 6) {
			return []Action{Double, Hit}
		}
		return []Action{Hit}
	case total == 10:
		if between(up, 2, 9) {
			return []Action{Double, Hit}
		}
		return []Action{Hit}
	case total == 11:
		if between(up, 2, 10) {
			return []Action{Double, Hit}
		}
		return []Action{Hit}
	case total == 12:
		if between(up, 4, 6) {
			return []Action{Stand}
		}
		return []Action{Hit}
	case total == 13, total == 14:
		if between(up, 2, 6) {
			return []Action{Stand}
		}
		return []Action{Hit}
	case total == 15:
		if up == card.Ten {
			return []Action{Surrender, Hit}
		}
		if between(up, 2, 6) {
			return []Action{Stand}
		}
		return []Action{Hit}
	case total == 16:
		if up == card.Ten || up == card.Ace {
			return []Action{Surrender, Hit}
		}
		if between(up, 9, 9) {
			return []Action{Surrender, Hit}
		}
		if between(up, 2, 6) {
			return []Action{Stand}
		}
		return []Action{Hit}
	default: // 17..21
		return []Action{Stand}
	}
}

// softPreference is indexed by companion rank 2..9 (the hand is A+companion).
func softPreference(companion int, up card.Rank) []Action {
	switch companion {
	case 2, 3:
		if between(up, 5, 6) {
			return []Action{Double, Hit}
		}
		return []Action{Hit}
	case 4, 5:
		if between(up, 4, 6) {
			return []Action{Double, Hit}
		}
		return []Action{Hit}
	case 6:
		if between(up, 3, 6) {
			return []Action{Double, Hit}
		}
		return []Action{Hit}
	case 7:
		if between(up, 3, 6) {
			return []Action{Double, Stand}
		}
		if between(up, 2, 2) || between(up, 7, 8) {
			return []Action{Stand}
		}
		return []Action{Hit}
	case 8, 9:
		return []Action{Stand}
	default:
		if companion >= 10 {
			return []Action{Stand} // soft 21
		}
		return []Action{Hit} // companion 1: A,A when splitting isn't available, soft 12
	}
}

func pairPreference(rank int, up card.Rank) []Action {
	switch card.Rank(rank) {
	case card.Ace:
		return []Action{SplitAction}
	case card.Ten:
		return []Action{Stand}
	case 9:
		if between(up, 2, 6) || between(up, 8, 9) {
			return []Action{SplitAction, Stand}
		}
		return []Action{Stand}
	case 8:
		return []Action{SplitAction}
	case 7:
		if between(up, 2, 7) {
			return []Action{SplitAction, Hit}
		}
		return []Action{Hit}
	case 6:
		if between(up, 2, 6) {
			return []Action{SplitAction, Hit}
		}
		return []Action{Hit}
	case 5:
		return hardPreference(10, up)
	case 4:
		if between(up, 5, 6) {
			return []Action{SplitAction, Hit}
		}
		return []Action{Hit}
	case 2, 3:
		if between(up, 2, 7) {
			return []Action{SplitAction, Hit}
		}
		return []Action{Hit}
	default:
		return []Action{Hit}
	}
}
