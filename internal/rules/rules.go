// Package rules holds the immutable table-rule configuration every
// decision in FreeBJ is made against, plus its JSON and HCL encodings.
package rules

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// GameType distinguishes whether the dealer peeks for blackjack.
type GameType string

const (
	AHC  GameType = "ahc"
	ENHC GameType = "enhc"
)

// Soft17 is the dealer's soft-17 policy.
type Soft17 string

const (
	S17 Soft17 = "s17"
	H17 Soft17 = "h17"
)

// DoubleDown is the set of totals on which doubling is legal.
type DoubleDown string

const (
	DoubleNone       DoubleDown = "no_double"
	DoubleAnyHand    DoubleDown = "any_hand"
	DoubleAnyTwo     DoubleDown = "any_two"
	DoubleHard9to11  DoubleDown = "hard_9_to_11"
	DoubleHard10to11 DoubleDown = "hard_10_to_11"
)

// Surrender is the surrender policy.
type Surrender string

const (
	SurrenderNone  Surrender = "no_surrender"
	SurrenderEarly Surrender = "early_surrender"
	SurrenderLate  Surrender = "late_surrender"
)

// Rules is the immutable record every round, strategy lookup and bet
// computation is evaluated against.
type Rules struct {
	GameType       GameType   `json:"game_type" hcl:"game_type,optional"`
	Soft17         Soft17     `json:"soft17" hcl:"soft17,optional"`
	DAS            bool       `json:"das" hcl:"das,optional"`
	BJPays         float64    `json:"bj_pays" hcl:"bj_pays,optional"`
	DoubleDown     DoubleDown `json:"double_down" hcl:"double_down,optional"`
	Surrender      Surrender  `json:"surrender" hcl:"surrender,optional"`
	PlayAcePairs   bool       `json:"play_ace_pairs" hcl:"play_ace_pairs,optional"`
	MaxSplits      int        `json:"max_splits" hcl:"max_splits,optional"`
	Decks          int        `json:"decks" hcl:"decks,optional"`
	Penetration    int        `json:"penetration_cards" hcl:"penetration_cards,optional"`
	Holecarding    bool       `json:"holecarding" hcl:"holecarding,optional"`
}

// Default returns the conventional six-deck Vegas-style defaults: AHC,
// S17, no DAS, blackjack pays 3:2.
func Default() Rules {
	return Rules{
		GameType:     AHC,
		Soft17:       S17,
		DAS:          false,
		BJPays:       1.5,
		DoubleDown:   DoubleAnyTwo,
		Surrender:    SurrenderNone,
		PlayAcePairs: true,
		MaxSplits:    4,
		Decks:        6,
		Penetration:  int(6 * 52 * 3 / 4), // 75% penetration by default
		Holecarding:  false,
	}
}

// TotalCards is the size of the shoe: Decks * 52.
func (r Rules) TotalCards() int { return r.Decks * 52 }

// Validate reports configuration errors: invalid flag combinations,
// out-of-range values, or a shoe that can never be dealt.
func (r Rules) Validate() error {
	if r.Holecarding && r.GameType != AHC {
		return fmt.Errorf("--holecarding requires --ahc")
	}
	if r.Decks < 1 {
		return fmt.Errorf("decks must be >= 1, got %d", r.Decks)
	}
	if r.Penetration <= 0 || r.Penetration >= r.TotalCards() {
		return fmt.Errorf("penetration_cards (%d) must be in (0, %d)", r.Penetration, r.TotalCards())
	}
	if r.MaxSplits < 1 {
		return fmt.Errorf("max_splits must be >= 1, got %d", r.MaxSplits)
	}
	if r.BJPays <= 0 {
		return fmt.Errorf("bj_pays must be > 0, got %v", r.BJPays)
	}
	switch r.GameType {
	case AHC, ENHC:
	default:
		return fmt.Errorf("unknown game_type %q", r.GameType)
	}
	switch r.Soft17 {
	case S17, H17:
	default:
		return fmt.Errorf("unknown soft17 %q", r.Soft17)
	}
	switch r.DoubleDown {
	case DoubleNone, DoubleAnyHand, DoubleAnyTwo, DoubleHard9to11, DoubleHard10to11:
	default:
		return fmt.Errorf("unknown double_down %q", r.DoubleDown)
	}
	switch r.Surrender {
	case SurrenderNone, SurrenderEarly, SurrenderLate:
	default:
		return fmt.Errorf("unknown surrender %q", r.Surrender)
	}
	if r.Surrender == SurrenderLate && r.GameType != AHC {
		return fmt.Errorf("late surrender requires a dealer peek, which ENHC never performs")
	}
	return nil
}

// LoadHCLOverlay decodes an HCL config file directly into a Rules value
// seeded with base, so unset fields keep their base default. The `json`
// tags on Rules already produce the report's exact enumerant strings, so
// no custom (Un)MarshalJSON is needed.
func LoadHCLOverlay(path string, base Rules) (Rules, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return base, fmt.Errorf("config file %s does not exist", path)
	}
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return base, fmt.Errorf("parsing %s: %s", path, diags.Error())
	}
	cfg := base
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return base, fmt.Errorf("decoding %s: %s", path, diags.Error())
	}
	return cfg, nil
}
