package fsrs

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestRatingFromInt(t *testing.T) {
	for n := 1; n <= 4; n++ {
		r, err := RatingFromInt(n)
		if err != nil {
			t.Errorf("RatingFromInt(%d): %v", n, err)
		}
		if int(r) != n {
			t.Errorf("RatingFromInt(%d) = %v", n, r)
		}
	}
	for _, n := range []int{0, 5, -3} {
		if _, err := RatingFromInt(n); !errors.Is(err, ErrInvalidRating) {
			t.Errorf("RatingFromInt(%d): err = %v, want ErrInvalidRating", n, err)
		}
	}
}

func TestRatingOrdering(t *testing.T) {
	if !(Again < Hard && Hard < Good && Good < Easy) {
		t.Error("ratings must be strictly ordered Again < Hard < Good < Easy")
	}
}

func TestRatingString(t *testing.T) {
	tests := []struct {
		r    Rating
		want string
	}{
		{Again, "Again"},
		{Hard, "Hard"},
		{Good, "Good"},
		{Easy, "Easy"},
		{Rating(9), "Rating(9)"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestRatingJSONRoundTrip(t *testing.T) {
	for _, r := range Ratings() {
		data, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", r, err)
		}
		var back Rating
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if back != r {
			t.Errorf("round trip %v -> %s -> %v", r, data, back)
		}
	}
}

func TestRatingUnmarshalRejectsUnknown(t *testing.T) {
	var r Rating
	if err := json.Unmarshal([]byte(`"Meh"`), &r); !errors.Is(err, ErrInvalidRating) {
		t.Errorf("err = %v, want ErrInvalidRating", err)
	}
	if err := json.Unmarshal([]byte(`3`), &r); err == nil {
		t.Error("numeric JSON rating should be rejected")
	}
}

func TestRatingMarshalInvalid(t *testing.T) {
	if _, err := json.Marshal(Rating(0)); err == nil {
		t.Error("marshaling an invalid rating should fail")
	}
}
