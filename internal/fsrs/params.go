package fsrs

import "fmt"

// WeightCount is the length of the model weight vector.
const WeightCount = 17

// DefaultWeights is the stock FSRS-4.5 weight vector. The scheduler's
// memory model consumes w[0..3] (initial stability per rating) and w[4..7]
// (stability growth factor per rating); the tail is carried so that a full
// trained vector round-trips through configuration unchanged.
var DefaultWeights = [WeightCount]float64{
	0.4, 0.6, 2.4, 5.8, // w[0..3]  S0(Again..Easy)
	4.93, 0.94, 0.86, 0.01, // w[4..7]  growth factor g(Again..Easy)
	1.49, 0.14, 0.94, 2.18,
	0.05, 0.34, 1.26, 0.29,
	2.61,
}

// Params is the immutable configuration of a Scheduler. Construct one per
// weight set; distinct Params values (for example A/B-tested weights) can
// drive concurrent schedulers without interference.
type Params struct {
	Weights          [WeightCount]float64 `json:"weights"`
	RequestRetention float64              `json:"request_retention"` // target recall probability, (0, 1]
	MaximumInterval  int                  `json:"maximum_interval"`  // days
	EnableFuzz       bool                 `json:"enable_fuzz"`
}

// DefaultParams returns the stock configuration: default weights, 90%
// retention target, 100-year interval cap, fuzz enabled.
func DefaultParams() Params {
	return Params{
		Weights:          DefaultWeights,
		RequestRetention: 0.9,
		MaximumInterval:  36500,
		EnableFuzz:       true,
	}
}

// initialStability returns S0 for the first review of a card.
func (p Params) initialStability(r Rating) float64 {
	return p.Weights[int(r)-1]
}

// growthFactor returns the rating-indexed stability growth factor g.
func (p Params) growthFactor(r Rating) float64 {
	return p.Weights[3+int(r)]
}

// Validate checks the configuration domain. Weight values themselves are
// not range-checked beyond the ascending S0 requirement: a negative growth
// factor is tolerated at review time by the stability floor clamp.
func (p Params) Validate() error {
	if p.RequestRetention <= 0 || p.RequestRetention > 1 {
		return fmt.Errorf("%w: request retention %v outside (0, 1]", ErrInvalidParams, p.RequestRetention)
	}
	if p.MaximumInterval < 1 {
		return fmt.Errorf("%w: maximum interval %d < 1", ErrInvalidParams, p.MaximumInterval)
	}
	for i := 0; i < 3; i++ {
		if p.Weights[i] >= p.Weights[i+1] {
			return fmt.Errorf("%w: initial stabilities w[0..3] must be strictly ascending, w[%d]=%v >= w[%d]=%v",
				ErrInvalidParams, i, p.Weights[i], i+1, p.Weights[i+1])
		}
	}
	for i := 0; i < 4; i++ {
		if p.Weights[i] <= 0 {
			return fmt.Errorf("%w: initial stability w[%d]=%v not positive", ErrInvalidParams, i, p.Weights[i])
		}
	}
	return nil
}
