// Package stats implements the per-worker statistics accumulator: an
// online (Welford) mean/variance estimator over per-round net payout,
// hand category counters, a winning-distribution histogram, an optional
// bankroll sample stream, and the Chan parallel-merge combination used to
// fold per-worker accumulators into one aggregate.
package stats

import (
	"fmt"
	"math"

	"github.com/kevin-lesenechal/freebj/internal/round"
)

// HandCounters are the integer per-category hand counters.
type HandCounters struct {
	Total     int64
	Won       int64
	Lost      int64
	Push      int64
	Busted    int64
	Blackjack int64
	Doubled   int64
	Split     int64
	Insured   int64
	Surrender int64
}

// Accumulator is a per-worker (or, after Merge, aggregate) statistics
// record. Zero value is usable; New only matters to enable bankroll
// sampling.
type Accumulator struct {
	Rounds int64
	Hands  HandCounters

	// Histogram maps a half-unit-bucketed payout label (e.g. "+1.5",
	// "-2.0") to the count of rounds whose net payout fell in that
	// bucket. Present only for buckets that were actually hit.
	Histogram map[string]int64

	// Bankroll holds cumulative-payout samples taken every sampleEveryK
	// rounds, when sampling is enabled.
	Bankroll []float64

	count        int64
	mean         float64
	m2           float64
	cumulative   float64
	sampleEveryK int64
}

// New returns an empty accumulator. sampleEveryK <= 0 disables bankroll
// sampling.
func New(sampleEveryK int64) *Accumulator {
	return &Accumulator{
		Histogram:    make(map[string]int64),
		sampleEveryK: sampleEveryK,
	}
}

// Record folds one round's result into the accumulator.
func (a *Accumulator) Record(res *round.Result) {
	if a.Histogram == nil {
		a.Histogram = make(map[string]int64)
	}
	a.Rounds++
	a.updateWelford(res.NetPayout)

	a.cumulative += res.NetPayout
	if a.sampleEveryK > 0 && a.Rounds%a.sampleEveryK == 0 {
		a.Bankroll = append(a.Bankroll, a.cumulative)
	}

	a.Histogram[bucketLabel(res.NetPayout)]++

	for _, h := range res.Hands {
		a.Hands.Total++
		switch {
		case h.Won:
			a.Hands.Won++
		case h.Lost:
			a.Hands.Lost++
		case h.Push:
			a.Hands.Push++
		}
		if h.Busted {
			a.Hands.Busted++
		}
		if h.Blackjack {
			a.Hands.Blackjack++
		}
		if h.Doubled {
			a.Hands.Doubled++
		}
		if h.Split {
			a.Hands.Split++
		}
		if h.Insured {
			a.Hands.Insured++
		}
		if h.Surrendered {
			a.Hands.Surrender++
		}
	}
}

// updateWelford applies Welford's online single-pass mean/M2 update.
func (a *Accumulator) updateWelford(x float64) {
	a.count++
	delta := x - a.mean
	a.mean += delta / float64(a.count)
	a.m2 += delta * (x - a.mean)
}

// EV is the running mean net payout per round.
func (a *Accumulator) EV() float64 {
	if a.count == 0 {
		return 0
	}
	return a.mean
}

// Variance is the population variance of net payout per round.
func (a *Accumulator) Variance() float64 {
	if a.count == 0 {
		return 0
	}
	return a.m2 / float64(a.count)
}

// StdDev is the square root of Variance.
func (a *Accumulator) StdDev() float64 {
	return math.Sqrt(a.Variance())
}

// bucketLabel rounds a payout to the nearest half-unit and formats it as
// a signed fixed-point string with one decimal, sign always present.
// This is the winning_distrib key format.
func bucketLabel(payout float64) string {
	rounded := math.Round(payout*2) / 2
	if rounded == 0 {
		return "+0.0" // avoid a distinct "-0.0" bucket from negative-zero payouts
	}
	return fmt.Sprintf("%+.1f", rounded)
}

// Merge combines accumulators via Chan's parallel-variance formula so the
// result is independent of worker count and merge order. Returns an empty
// accumulator for an empty input.
func Merge(accs []*Accumulator) *Accumulator {
	out := New(0)
	for _, a := range accs {
		if a == nil {
			continue
		}
		out = mergeTwo(out, a)
	}
	return out
}

func mergeTwo(a, b *Accumulator) *Accumulator {
	out := New(0)
	out.Rounds = a.Rounds + b.Rounds
	out.cumulative = a.cumulative + b.cumulative

	switch {
	case a.count == 0:
		out.count, out.mean, out.m2 = b.count, b.mean, b.m2
	case b.count == 0:
		out.count, out.mean, out.m2 = a.count, a.mean, a.m2
	default:
		delta := b.mean - a.mean
		n := a.count + b.count
		out.count = n
		out.mean = a.mean + delta*float64(b.count)/float64(n)
		out.m2 = a.m2 + b.m2 + delta*delta*float64(a.count)*float64(b.count)/float64(n)
	}

	out.Hands = HandCounters{
		Total:     a.Hands.Total + b.Hands.Total,
		Won:       a.Hands.Won + b.Hands.Won,
		Lost:      a.Hands.Lost + b.Hands.Lost,
		Push:      a.Hands.Push + b.Hands.Push,
		Busted:    a.Hands.Busted + b.Hands.Busted,
		Blackjack: a.Hands.Blackjack + b.Hands.Blackjack,
		Doubled:   a.Hands.Doubled + b.Hands.Doubled,
		Split:     a.Hands.Split + b.Hands.Split,
		Insured:   a.Hands.Insured + b.Hands.Insured,
		Surrender: a.Hands.Surrender + b.Hands.Surrender,
	}

	for k, v := range a.Histogram {
		out.Histogram[k] += v
	}
	for k, v := range b.Histogram {
		out.Histogram[k] += v
	}

	out.Bankroll = make([]float64, 0, len(a.Bankroll)+len(b.Bankroll))
	out.Bankroll = append(out.Bankroll, a.Bankroll...)
	out.Bankroll = append(out.Bankroll, b.Bankroll...)

	return out
}
