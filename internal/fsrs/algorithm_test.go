package fsrs

import (
	"math"
	"testing"
)

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestRetrievabilityAtZeroElapsed(t *testing.T) {
	for _, s := range []float64{0.1, 1, 10, 365} {
		assertFloat(t, "retrievability(0)", retrievability(0, s), 1.0)
	}
}

func TestRetrievabilityFormula(t *testing.T) {
	// R = (1 + t/(9S))^-1; t=5, S=10 -> (1 + 5/90)^-1 = 90/95.
	assertFloat(t, "retrievability(5, 10)", retrievability(5, 10), 90.0/95.0)
	// t=9S -> (1+1)^-1 = 0.5.
	assertFloat(t, "retrievability(90, 10)", retrievability(90, 10), 0.5)
}

func TestRetrievabilityStabilityOrdering(t *testing.T) {
	// Larger stability decays slower.
	if retrievability(30, 5) >= retrievability(30, 50) {
		t.Error("higher stability should retain more at equal elapsed time")
	}
}

func TestNextStabilityFormula(t *testing.T) {
	p := DefaultParams()
	// S' = S * (1 + g * (11 - D) * R)
	s, d, r := 10.0, 5.0, 0.9
	want := s * (1 + p.growthFactor(Good)*(11-d)*r)
	assertFloat(t, "nextStability", p.nextStability(s, d, r, Good), want)
}

func TestNextStabilityHarderGrowsSlower(t *testing.T) {
	p := DefaultParams()
	easyItem := p.nextStability(10, 2, 0.9, Good)
	hardItem := p.nextStability(10, 9, 0.9, Good)
	if hardItem >= easyItem {
		t.Errorf("difficulty 9 grew stability (%v) at least as fast as difficulty 2 (%v)", hardItem, easyItem)
	}
}

func TestNextStabilitySpacingEffect(t *testing.T) {
	p := DefaultParams()
	// Reviewing while retrievability is high grows stability faster.
	fresh := p.nextStability(10, 5, 0.95, Good)
	stale := p.nextStability(10, 5, 0.30, Good)
	if fresh <= stale {
		t.Errorf("high-R review (%v) should outgrow low-R review (%v)", fresh, stale)
	}
}

func TestNextStabilityFloor(t *testing.T) {
	p := DefaultParams()
	// A negative growth factor must never produce non-positive stability.
	p.Weights[6] = -100 // g(Good)
	got := p.nextStability(1.0, 1.0, 1.0, Good)
	if got != minStability {
		t.Errorf("nextStability with negative g = %v, want floor %v", got, minStability)
	}
}

func TestInitialStabilityOrdering(t *testing.T) {
	p := DefaultParams()
	prev := 0.0
	for _, r := range Ratings() {
		s0 := p.initialStability(r)
		if s0 <= prev {
			t.Errorf("S0(%v) = %v not above S0 of previous rating (%v)", r, s0, prev)
		}
		prev = s0
	}
}
