package strategy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kevin-lesenechal/freebj/internal/card"
)

// Comparator is the TC comparison a deviation tests.
type Comparator byte

const (
	GTE Comparator = iota // >=
	LTE                   // <=
)

// Deviation is a single count-conditioned override of basic strategy.
type Deviation struct {
	Hand       Descriptor
	DealerUp   card.Rank
	Comparator Comparator
	TC         int
	Action     Action
}

// Matches reports whether this deviation applies to the given decision.
func (d Deviation) Matches(hand Descriptor, dealerUp card.Rank, tc int) bool {
	if d.Hand != hand || d.DealerUp != dealerUp {
		return false
	}
	if d.Comparator == GTE {
		return tc >= d.TC
	}
	return tc <= d.TC
}

// DefaultDeviations is the 20 most impactful hi-lo deviations of the
// Illustrious 18 and Fab 4, toggled on by --deviations. The
// insurance entry is omitted (no insurance side-bet decision exists), as
// is the lowest-ranked playing entry, 13v3. Ordering follows the
// conventional impact ranking; user deviations supplied via -D are
// appended after this table, so a user entry never shadows one of these
// unless it repeats the same (hand, dealer, comparator) triple earlier in
// the list.
var DefaultDeviations = []Deviation{
	// Illustrious 18 playing deviations
	{Descriptor{KindHard, 16}, 10, GTE, 0, Stand},
	{Descriptor{KindHard, 15}, 10, GTE, 4, Stand},
	{Descriptor{KindPair, 10}, 5, GTE, 5, SplitAction},
	{Descriptor{KindPair, 10}, 6, GTE, 4, SplitAction},
	{Descriptor{KindHard, 10}, 10, GTE, 4, Double},
	{Descriptor{KindHard, 12}, 3, GTE, 2, Stand},
	{Descriptor{KindHard, 12}, 2, GTE, 3, Stand},
	{Descriptor{KindHard, 11}, 1, GTE, 1, Double},
	{Descriptor{KindHard, 9}, 2, GTE, 1, Double},
	{Descriptor{KindHard, 10}, 1, GTE, 4, Double},
	{Descriptor{KindHard, 9}, 7, GTE, 3, Double},
	{Descriptor{KindHard, 16}, 9, GTE, 5, Stand},
	{Descriptor{KindHard, 13}, 2, LTE, -1, Hit},
	{Descriptor{KindHard, 12}, 4, LTE, 0, Hit},
	{Descriptor{KindHard, 12}, 5, LTE, -2, Hit},
	{Descriptor{KindHard, 12}, 6, LTE, -1, Hit},
	// Fab 4 surrender deviations
	{Descriptor{KindHard, 14}, 10, GTE, 3, Surrender},
	{Descriptor{KindHard, 15}, 10, LTE, -1, Hit},
	{Descriptor{KindHard, 15}, 9, GTE, 2, Surrender},
	{Descriptor{KindHard, 15}, 1, GTE, 1, Surrender},
}

// ParseDeviation parses the -D flag grammar:
//
//	<HAND>vs<DEALER>:[<>]TC ACTION
//
// HAND is a hard integer, "Ax" for a soft ace-hand (x in 2..9), or "r/r"
// for a pair. DEALER is the dealer upcard (A, T/J/Q/K, or 2..9). The
// comparator defaults to >= when omitted, and the space before ACTION is
// optional ("12vs6:>3D" and "12vs6:>3 D" are equivalent). ACTION is one
// of +(hit) =(stand) D(double) V(split) #|S(surrender).
func ParseDeviation(s string) (Deviation, error) {
	orig := strings.TrimSpace(s)

	vsIdx := strings.Index(strings.ToLower(orig), "vs")
	if vsIdx < 0 {
		return Deviation{}, fmt.Errorf("invalid deviation %q: missing \"vs\"", orig)
	}
	handTok := orig[:vsIdx]
	rest := orig[vsIdx+2:]

	colonIdx := strings.Index(rest, ":")
	if colonIdx < 0 {
		return Deviation{}, fmt.Errorf("invalid deviation %q: missing \":\"", orig)
	}
	dealerTok := rest[:colonIdx]
	tail := strings.TrimSpace(rest[colonIdx+1:])

	cmp := GTE
	switch {
	case strings.HasPrefix(tail, ">"):
		tail = tail[1:]
	case strings.HasPrefix(tail, "<"):
		cmp = LTE
		tail = tail[1:]
	}

	end := 0
	if end < len(tail) && (tail[end] == '-' || tail[end] == '+') {
		end++
	}
	for end < len(tail) && tail[end] >= '0' && tail[end] <= '9' {
		end++
	}
	tcTok := tail[:end]
	actionTok := strings.TrimSpace(tail[end:])

	hand, err := parseHandToken(handTok)
	if err != nil {
		return Deviation{}, fmt.Errorf("invalid deviation %q: %w", orig, err)
	}
	dealerUp, err := parseDealerToken(dealerTok)
	if err != nil {
		return Deviation{}, fmt.Errorf("invalid deviation %q: %w", orig, err)
	}
	tc, err := strconv.Atoi(tcTok)
	if err != nil {
		return Deviation{}, fmt.Errorf("invalid deviation %q: bad TC threshold %q", orig, tcTok)
	}
	action, err := parseActionToken(actionTok)
	if err != nil {
		return Deviation{}, fmt.Errorf("invalid deviation %q: %w", orig, err)
	}

	return Deviation{Hand: hand, DealerUp: dealerUp, Comparator: cmp, TC: tc, Action: action}, nil
}

func parseHandToken(tok string) (Descriptor, error) {
	tok = strings.TrimSpace(tok)
	if strings.Contains(tok, "/") {
		parts := strings.SplitN(tok, "/", 2)
		r, err := parseSingleRank(parts[0])
		if err != nil {
			return Descriptor{}, err
		}
		return Descriptor{Kind: KindPair, Value: int(r)}, nil
	}
	if strings.HasPrefix(strings.ToUpper(tok), "A") && len(tok) > 1 {
		companion, err := strconv.Atoi(tok[1:])
		if err != nil || companion < 2 || companion > 9 {
			return Descriptor{}, fmt.Errorf("invalid soft hand %q", tok)
		}
		return Descriptor{Kind: KindSoft, Value: companion}, nil
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 4 || n > 21 {
		return Descriptor{}, fmt.Errorf("invalid hard total %q", tok)
	}
	return Descriptor{Kind: KindHard, Value: n}, nil
}

func parseSingleRank(tok string) (card.Rank, error) {
	switch strings.ToUpper(strings.TrimSpace(tok)) {
	case "A":
		return card.Ace, nil
	case "T", "J", "Q", "K", "10":
		return card.Ten, nil
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 2 || n > 9 {
		return 0, fmt.Errorf("invalid rank %q", tok)
	}
	return card.Rank(n), nil
}

func parseDealerToken(tok string) (card.Rank, error) {
	return parseSingleRank(tok)
}

func parseActionToken(tok string) (Action, error) {
	switch tok {
	case "+":
		return Hit, nil
	case "=":
		return Stand, nil
	case "D":
		return Double, nil
	case "V":
		return SplitAction, nil
	case "#", "S":
		return Surrender, nil
	default:
		return 0, fmt.Errorf("invalid action %q", tok)
	}
}
