package fsrs

import (
	"errors"
	"testing"
)

func TestDefaultParamsValid(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("DefaultParams().Validate() = %v", err)
	}
}

func TestDefaultParamsValues(t *testing.T) {
	p := DefaultParams()
	if p.RequestRetention != 0.9 {
		t.Errorf("RequestRetention = %v, want 0.9", p.RequestRetention)
	}
	if p.MaximumInterval != 36500 {
		t.Errorf("MaximumInterval = %d, want 36500", p.MaximumInterval)
	}
	if !p.EnableFuzz {
		t.Error("EnableFuzz = false, want true by default")
	}
	if p.initialStability(Good) != 2.4 {
		t.Errorf("S0(Good) = %v, want 2.4", p.initialStability(Good))
	}
	if p.growthFactor(Again) != 4.93 {
		t.Errorf("g(Again) = %v, want 4.93", p.growthFactor(Again))
	}
}

func TestValidateRejectsBadRetention(t *testing.T) {
	for _, r := range []float64{0, -0.5, 1.5} {
		p := DefaultParams()
		p.RequestRetention = r
		if err := p.Validate(); !errors.Is(err, ErrInvalidParams) {
			t.Errorf("retention %v: err = %v, want ErrInvalidParams", r, err)
		}
	}
}

func TestValidateRejectsBadMaxInterval(t *testing.T) {
	p := DefaultParams()
	p.MaximumInterval = 0
	if err := p.Validate(); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("err = %v, want ErrInvalidParams", err)
	}
}

func TestValidateRequiresAscendingS0(t *testing.T) {
	p := DefaultParams()
	p.Weights[1] = p.Weights[0] // S0(Hard) == S0(Again)
	if err := p.Validate(); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("err = %v, want ErrInvalidParams", err)
	}
}

func TestNewSchedulerRejectsInvalidParams(t *testing.T) {
	p := DefaultParams()
	p.RequestRetention = 2
	if _, err := NewScheduler(p); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("NewScheduler: err = %v, want ErrInvalidParams", err)
	}
}
