package fsrs

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestStateWireValues(t *testing.T) {
	// Persisted integers; reordering would corrupt every stored card.
	if New != 0 || Learning != 1 || Review != 2 || Relearning != 3 {
		t.Fatalf("state wire values changed: New=%d Learning=%d Review=%d Relearning=%d",
			New, Learning, Review, Relearning)
	}
}

func TestStateFromInt(t *testing.T) {
	for n := 0; n <= 3; n++ {
		s, err := StateFromInt(n)
		if err != nil {
			t.Errorf("StateFromInt(%d): %v", n, err)
		}
		if int(s) != n {
			t.Errorf("StateFromInt(%d) = %v", n, s)
		}
	}
	if _, err := StateFromInt(4); !errors.Is(err, ErrMalformedCard) {
		t.Errorf("StateFromInt(4): err = %v, want ErrMalformedCard", err)
	}
}

func TestStateJSONRoundTrip(t *testing.T) {
	for _, s := range []State{New, Learning, Review, Relearning} {
		data, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", s, err)
		}
		var back State
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if back != s {
			t.Errorf("round trip %v -> %s -> %v", s, data, back)
		}
	}
}

func TestStateString(t *testing.T) {
	if got := Relearning.String(); got != "Relearning" {
		t.Errorf("String() = %q", got)
	}
	if got := State(7).String(); got != "State(7)" {
		t.Errorf("String() = %q", got)
	}
}
