package strategy

import (
	"errors"
	"fmt"
	"math"

	"venture-fund-lab/internal/domain"
)

var (
	// ErrUnknownKind is returned for a strategy kind outside the closed set.
	ErrUnknownKind = errors.New("strategy: unknown strategy kind")
	// ErrMissingTiers is returned when an equity bucket has no tier table.
	ErrMissingTiers = errors.New("strategy: equity bucket requires outcome tiers")
	// ErrBadTierProbabilities is returned when tier probabilities do not sum to 1.
	ErrBadTierProbabilities = errors.New("strategy: tier probabilities must sum to 1")
	// ErrMissingRevenueTerms is returned when a SHARED_SAFE bucket lacks its terms.
	ErrMissingRevenueTerms = errors.New("strategy: revenue-share bucket requires cap, kicker, and equity multiple")
	// ErrMissingTargetMOIC is returned when a fixed-return bucket has no target.
	ErrMissingTargetMOIC = errors.New("strategy: fixed-return bucket requires a target MOIC")
)

const tierProbabilityTolerance = 1e-6

// FromBucket validates the bucket's kind-specific distribution parameters
// and returns the generator for its kind. The switch is exhaustive over the
// closed kind set.
func FromBucket(bucket domain.StrategyBucket) (OutcomeGenerator, error) {
	switch bucket.Kind {
	case domain.StrategySeed, domain.StrategySeriesA:
		if len(bucket.Tiers) == 0 {
			return nil, fmt.Errorf("%w: bucket %s", ErrMissingTiers, bucket.Kind)
		}
		sum := 0.0
		for _, tier := range bucket.Tiers {
			sum += tier.Probability
		}
		if math.Abs(sum-1.0) > tierProbabilityTolerance {
			return nil, fmt.Errorf("%w: bucket %s sums to %v", ErrBadTierProbabilities, bucket.Kind, sum)
		}
		return NewEquityGenerator(bucket.Kind, bucket.Tiers), nil

	case domain.StrategySharedSAFE:
		if bucket.RevenueShareCap == nil || bucket.EquityKicker == nil || bucket.EquityMultiple == nil {
			return nil, fmt.Errorf("%w: bucket %s", ErrMissingRevenueTerms, bucket.Kind)
		}
		return NewRevenueShareGenerator(*bucket.RevenueShareCap, *bucket.EquityKicker, *bucket.EquityMultiple), nil

	case domain.StrategyIncubation, domain.StrategyRecycled:
		if bucket.TargetMOIC == nil {
			return nil, fmt.Errorf("%w: bucket %s", ErrMissingTargetMOIC, bucket.Kind)
		}
		return NewFixedReturnGenerator(bucket.Kind, *bucket.TargetMOIC), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, bucket.Kind)
	}
}
