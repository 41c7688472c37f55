package domain

import "fmt"

// StrategyKind identifies one investment strategy bucket. The set is closed:
// every kind has exactly one outcome-generation rule.
type StrategyKind string

const (
	StrategySeed       StrategyKind = "SEED"
	StrategySharedSAFE StrategyKind = "SHARED_SAFE"
	StrategySeriesA    StrategyKind = "SERIES_A"
	StrategyIncubation StrategyKind = "INCUBATION"
	StrategyRecycled   StrategyKind = "RECYCLED_CAPITAL"
)

// AllStrategyKinds lists every valid kind, in reporting order.
var AllStrategyKinds = []StrategyKind{
	StrategySeed,
	StrategySharedSAFE,
	StrategySeriesA,
	StrategyIncubation,
	StrategyRecycled,
}

// OutcomeTier is one step of a discrete power-law distribution over exit
// multiples: a small home-run tier, a winner tier, and fat near-zero tiers.
type OutcomeTier struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
	Multiple    float64 `json:"multiple"`
}

// StrategyBucket holds one strategy's allocation and the parameters of its
// outcome distribution. Which parameter group applies depends on Kind:
// equity kinds carry Tiers, SHARED_SAFE carries the revenue-share terms,
// INCUBATION and RECYCLED_CAPITAL carry TargetMOIC.
type StrategyBucket struct {
	Kind       StrategyKind `json:"kind"`
	Count      int          `json:"count"`
	AvgCheck   float64      `json:"avg_check"`
	Allocation float64      `json:"allocation"`

	// Equity power-law parameters (SEED, SERIES_A)
	Tiers []OutcomeTier `json:"tiers,omitempty"`

	// Revenue-share parameters (SHARED_SAFE)
	RevenueShareRate *float64 `json:"revenue_share_rate,omitempty"` // share of invested collected per year
	RevenueShareCap  *float64 `json:"revenue_share_cap,omitempty"`  // cap as a multiple of invested
	EquityKicker     *float64 `json:"equity_kicker,omitempty"`      // fraction of check with equity upside
	EquityMultiple   *float64 `json:"equity_multiple,omitempty"`    // multiple on the kicker portion

	// Fixed-return parameters (INCUBATION, RECYCLED_CAPITAL)
	TargetMOIC *float64 `json:"target_moic,omitempty"`
}

// Validate checks bucket-level invariants. Kind-specific distribution
// parameters are validated by the strategy factory, which knows which
// group each kind requires.
func (b *StrategyBucket) Validate() error {
	field := func(name string) string { return fmt.Sprintf("buckets[%s].%s", b.Kind, name) }

	switch b.Kind {
	case StrategySeed, StrategySharedSAFE, StrategySeriesA, StrategyIncubation, StrategyRecycled:
	default:
		return &ValidationError{Field: "buckets.kind", Reason: fmt.Sprintf("unknown strategy kind %q", b.Kind)}
	}
	if b.Count < 0 {
		return &ValidationError{Field: field("count"), Reason: "must be non-negative"}
	}
	if b.Count > 0 && b.AvgCheck <= 0 {
		return &ValidationError{Field: field("avg_check"), Reason: "must be positive when count > 0"}
	}
	if b.Allocation < 0 {
		return &ValidationError{Field: field("allocation"), Reason: "must be non-negative"}
	}
	for i, tier := range b.Tiers {
		if tier.Probability < 0 || tier.Probability > 1 {
			return &ValidationError{
				Field:  fmt.Sprintf("%s[%d].probability", field("tiers"), i),
				Reason: "must be in [0,1]",
			}
		}
		if tier.Multiple < 0 {
			return &ValidationError{
				Field:  fmt.Sprintf("%s[%d].multiple", field("tiers"), i),
				Reason: "must be non-negative",
			}
		}
	}
	return nil
}

// Predefined power-law tier tables. Probabilities sum to 1; most mass sits
// at or below 1x with a thin high-multiple tail, which is what venture
// return data looks like.
var (
	SeedTiers = []OutcomeTier{
		{Label: "home_run", Probability: 0.10, Multiple: 50},
		{Label: "winner", Probability: 0.20, Multiple: 10},
		{Label: "moderate", Probability: 0.30, Multiple: 3},
		{Label: "return_capital", Probability: 0.20, Multiple: 1},
		{Label: "write_off", Probability: 0.20, Multiple: 0},
	}

	SeriesATiers = []OutcomeTier{
		{Label: "home_run", Probability: 0.10, Multiple: 30},
		{Label: "winner", Probability: 0.20, Multiple: 8},
		{Label: "moderate", Probability: 0.30, Multiple: 3},
		{Label: "return_capital", Probability: 0.20, Multiple: 1},
		{Label: "write_off", Probability: 0.20, Multiple: 0},
	}
)

// DefaultBuckets returns the reference portfolio construction for the
// default $50M fund.
func DefaultBuckets() []StrategyBucket {
	return []StrategyBucket{
		{
			Kind:       StrategySeed,
			Count:      10,
			AvgCheck:   1.5,
			Allocation: 15.0,
			Tiers:      SeedTiers,
		},
		{
			Kind:             StrategySharedSAFE,
			Count:            6,
			AvgCheck:         2.0,
			Allocation:       12.0,
			RevenueShareRate: ptr(0.5),
			RevenueShareCap:  ptr(2.5),
			EquityKicker:     ptr(0.4),
			EquityMultiple:   ptr(1.5),
		},
		{
			Kind:       StrategySeriesA,
			Count:      6,
			AvgCheck:   2.0,
			Allocation: 12.0,
			Tiers:      SeriesATiers,
		},
		{
			Kind:       StrategyIncubation,
			Count:      2,
			AvgCheck:   2.0,
			Allocation: 4.0,
			TargetMOIC: ptr(3.0),
		},
		{
			Kind:       StrategyRecycled,
			Count:      3,
			AvgCheck:   0.67,
			Allocation: 2.0,
			TargetMOIC: ptr(5.0),
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}
