// Command freebj runs a Monte Carlo blackjack simulation under a
// configurable ruleset, counting/deviation strategy, and betting
// strategy, and prints a JSON report of the result.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/kevin-lesenechal/freebj/internal/betting"
	"github.com/kevin-lesenechal/freebj/internal/card"
	"github.com/kevin-lesenechal/freebj/internal/round"
	"github.com/kevin-lesenechal/freebj/internal/rules"
	"github.com/kevin-lesenechal/freebj/internal/sim"
	"github.com/kevin-lesenechal/freebj/internal/strategy"
)

// CLI is the full command-line flag surface.
type CLI struct {
	// Rules.
	AHC          bool   `group:"Rules" xor:"gametype" help:"American hole card: dealer peeks for blackjack (default)."`
	ENHC         bool   `group:"Rules" xor:"gametype" help:"European no hole card: dealer's second card is dealt after the player phase."`
	S17          bool   `group:"Rules" xor:"soft17" help:"Dealer stands on soft 17 (default)."`
	H17          bool   `group:"Rules" xor:"soft17" help:"Dealer hits soft 17."`
	DAS          bool   `group:"Rules" negatable:"" help:"Allow doubling after a split."`
	DBAnyHand    bool   `group:"Rules" name:"db-any-hand" xor:"doubledown" help:"Double on any total; as with --db-any-two, only as a hand's first decision on two cards."`
	DBAnyTwo     bool   `group:"Rules" name:"db-any-two" xor:"doubledown" help:"Double on any first two cards (default)."`
	DBHard9To11  bool   `group:"Rules" name:"db-hard-9-11" xor:"doubledown" help:"Double only on hard 9, 10 or 11."`
	DBHard10To11 bool   `group:"Rules" name:"db-hard-10-11" xor:"doubledown" help:"Double only on hard 10 or 11."`
	DBNone       bool   `group:"Rules" name:"db-none" xor:"doubledown" help:"Doubling is never allowed."`
	ESurr        bool   `group:"Rules" xor:"surrender" help:"Early surrender, before the dealer peeks."`
	LSurr        bool   `group:"Rules" xor:"surrender" help:"Late surrender, after the dealer peeks and has no blackjack."`
	NoSurr       bool   `group:"Rules" name:"no-surr" xor:"surrender" help:"Surrender is never allowed (default)."`
	PlayAA       bool   `group:"Rules" name:"playAA" negatable:"" default:"true" help:"Allow further play after splitting a pair of aces."`
	MaxSplits    int    `group:"Rules" name:"max-splits" default:"4" help:"Maximum number of hands a round may reach via splitting."`
	Decks        int    `group:"Rules" short:"d" default:"6" help:"Number of decks in the shoe."`
	Penetration  string `group:"Rules" short:"p" default:"75%" help:"Cards dealt before reshuffling: N, N%, Nd, or A/B."`
	Holecarding  bool   `group:"Rules" help:"Record holecarding in the rules and report; no strategy decision reads it (requires --ahc)."`
	Config       string `group:"Rules" help:"HCL file overlaying the table rules; when given it supersedes the rule flags."`

	// Simulation.
	Rounds  string `group:"Simulation" short:"n" default:"1000000" help:"Number of rounds to simulate; accepts k/M/G suffixes."`
	Jobs    int    `group:"Simulation" short:"j" default:"0" help:"Worker goroutines; 0 uses one per CPU."`
	DryRun  bool   `group:"Simulation" name:"dry-run" help:"Validate configuration and print a zeroed report without dealing."`
	Verbose bool   `group:"Simulation" short:"v" help:"Verbose logging."`

	// Strategy.
	HiLo        bool     `group:"Strategy" name:"hilo" help:"Enable hi-lo card counting (drives betting and deviations)."`
	Deviations  bool     `group:"Strategy" help:"Enable the built-in Illustrious 18 + Fab 4 deviation table."`
	Deviation   []string `group:"Strategy" name:"deviation" short:"D" help:"A user deviation, grammar: <HAND>vs<DEALER>:[<>]TC ACTION."`
	Action      string   `group:"Strategy" short:"a" help:"Force the first decision of a single debug round."`
	Cards       string   `group:"Strategy" short:"c" help:"Force the player's initial cards for a single debug round, e.g. A,5."`
	Dealer      string   `group:"Strategy" help:"Force the dealer's upcard for a single debug round, e.g. 8."`
	ForceTC     *int     `group:"Strategy" name:"force-tc" help:"Reconfigure every round's shoe to this true count before betting."`
	ShoeFile    string   `group:"Strategy" name:"shoe-file" help:"Path to a raw byte shoe-file override (values 1..10)."`

	// Betting.
	Bet      float64 `group:"Betting" short:"b" default:"1" help:"Base stake."`
	BetPerTC float64 `group:"Betting" name:"bet-per-tc" default:"0" help:"Additional stake per true-count point above zero."`
	BetMaxTC int     `group:"Betting" name:"bet-max-tc" default:"0" help:"True count above which bet-per-tc no longer increases the stake."`
	BetNegTC float64 `group:"Betting" name:"bet-neg-tc" default:"0" help:"Stake used whenever the true count is zero or negative."`

	Seed    int64            `group:"General" default:"0" help:"RNG master seed; 0 picks a random seed."`
	Version kong.VersionFlag `short:"V" help:"Print the version and exit."`
}

func main() {
	var cli CLI
	kong.Parse(&cli, kong.Vars{"version": "freebj 1.0.0"})

	r, err := buildRules(&cli)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := r.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	bet, err := buildBetting(&cli)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rounds, err := parseRoundCount(cli.Rounds)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	deviations, err := buildDeviations(&cli)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	input, err := buildDebugInput(&cli)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if input != nil {
		rounds = 1
	}

	var shoeFile []byte
	if cli.ShoeFile != "" {
		shoeFile, err = os.ReadFile(cli.ShoeFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reading shoe file: %v\n", err)
			os.Exit(1)
		}
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Level: verboseLevel(cli.Verbose)})

	seed := cli.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := sim.Config{
		Rounds:     rounds,
		Workers:    cli.Jobs,
		Rules:      r,
		Deviations: deviations,
		Betting:    bet,
		MasterSeed: seed,
		ForceTC:    cli.ForceTC,
		ShoeFile:   shoeFile,
		DryRun:     cli.DryRun,
		Input:      input,
		Logger:     logger,
	}

	logger.Debug("starting simulation", "rounds", rounds, "workers", cli.Jobs, "game_type", r.GameType)

	acc, err := sim.Run(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "simulation failed: %v\n", err)
		os.Exit(1)
	}

	report := buildReport(r, acc)
	out, err := json.Marshal(report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "encoding report: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func verboseLevel(verbose bool) log.Level {
	if verbose {
		return log.DebugLevel
	}
	return log.WarnLevel
}

// buildRules translates the CLI's rule flags into a rules.Rules, starting
// from the defaults. When --config is given it is authoritative: rule
// flags are not applied on top of it, since plain kong bool flags cannot
// distinguish "left at default" from "explicitly passed at the default".
func buildRules(cli *CLI) (rules.Rules, error) {
	r := rules.Default()
	r.Decks = cli.Decks

	pen, err := parsePenetration(cli.Penetration, cli.Decks)
	if err != nil {
		return rules.Rules{}, err
	}
	r.Penetration = pen

	if cli.ENHC {
		r.GameType = rules.ENHC
	} else {
		r.GameType = rules.AHC
	}
	if cli.H17 {
		r.Soft17 = rules.H17
	} else {
		r.Soft17 = rules.S17
	}
	r.DAS = cli.DAS

	switch {
	case cli.DBAnyHand:
		r.DoubleDown = rules.DoubleAnyHand
	case cli.DBHard9To11:
		r.DoubleDown = rules.DoubleHard9to11
	case cli.DBHard10To11:
		r.DoubleDown = rules.DoubleHard10to11
	case cli.DBNone:
		r.DoubleDown = rules.DoubleNone
	default:
		r.DoubleDown = rules.DoubleAnyTwo
	}

	switch {
	case cli.ESurr:
		r.Surrender = rules.SurrenderEarly
	case cli.LSurr:
		r.Surrender = rules.SurrenderLate
	default:
		r.Surrender = rules.SurrenderNone
	}

	r.PlayAcePairs = cli.PlayAA
	r.MaxSplits = cli.MaxSplits
	r.Holecarding = cli.Holecarding

	if cli.Config != "" {
		return rules.LoadHCLOverlay(cli.Config, r)
	}
	return r, nil
}

func buildBetting(cli *CLI) (betting.Strategy, error) {
	if !cli.HiLo {
		return betting.Flat(), nil
	}
	return betting.Strategy{
		Base:  cli.Bet,
		PerTC: cli.BetPerTC,
		MaxTC: cli.BetMaxTC,
		NegTC: cli.BetNegTC,
	}, nil
}

func buildDeviations(cli *CLI) ([]strategy.Deviation, error) {
	var devs []strategy.Deviation
	if cli.Deviations {
		devs = append(devs, strategy.DefaultDeviations...)
	}
	for _, s := range cli.Deviation {
		d, err := strategy.ParseDeviation(s)
		if err != nil {
			return nil, err
		}
		devs = append(devs, d)
	}
	return devs, nil
}

// buildDebugInput assembles the single-round override behind the
// -c/--dealer/-a debug flags. Returns nil when none were given.
func buildDebugInput(cli *CLI) (*round.Input, error) {
	if cli.Cards == "" && cli.Dealer == "" && cli.Action == "" {
		return nil, nil
	}

	in := &round.Input{}
	if cli.Cards != "" {
		cards, err := card.ParseList(cli.Cards)
		if err != nil {
			return nil, err
		}
		in.PlayerCards = cards
	}
	if cli.Dealer != "" {
		cards, err := card.ParseList(cli.Dealer)
		if err != nil {
			return nil, err
		}
		if len(cards) != 1 {
			return nil, fmt.Errorf("--dealer expects exactly one card, got %q", cli.Dealer)
		}
		in.DealerUpcard = &cards[0].Rank
	}
	if cli.Action != "" {
		action, err := parseForcedAction(cli.Action)
		if err != nil {
			return nil, err
		}
		in.ForcedFirstAction = &action
	}
	return in, nil
}

func parseForcedAction(tok string) (strategy.Action, error) {
	switch tok {
	case "H", "h":
		return strategy.Hit, nil
	case "S", "s":
		return strategy.Stand, nil
	case "D", "d":
		return strategy.Double, nil
	case "V", "v":
		return strategy.SplitAction, nil
	case "R", "r":
		return strategy.Surrender, nil
	default:
		return 0, fmt.Errorf("invalid -a action %q: expected one of H,S,D,V,R", tok)
	}
}
