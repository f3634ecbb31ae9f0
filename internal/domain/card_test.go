package domain

import "testing"

func TestNormalize(t *testing.T) {
	card := Card{
		Front:   "  What is HTMX? \r\n",
		Back:    "A library for AJAX.",
		Context: "Web Development",
	}
	want := "what is htmx?\na library for ajax.\nweb development"
	if got := Normalize(card); got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestFingerprint(t *testing.T) {
	t.Run("known value", func(t *testing.T) {
		card := Card{Front: "Q", Back: "A", Context: "C"}
		// SHA-256 of "q\na\nc"
		want := "eb2456c1ee4f36305069dd0f63a30e92d5443129f5e8fd9a5ec490fbc4d4d8a2"
		if got := Fingerprint(card); got != want {
			t.Errorf("Fingerprint() = %q, want %q", got, want)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		if Fingerprint(Card{Front: "Test"}) != Fingerprint(Card{Front: "Test"}) {
			t.Error("identical cards must share a fingerprint")
		}
	})

	t.Run("normalization folds case and whitespace", func(t *testing.T) {
		a := Card{Front: "  what is go? ", Back: "A programming language."}
		b := Card{Front: "What Is Go?", Back: "A programming language."}
		if Fingerprint(a) != Fingerprint(b) {
			t.Error("fingerprints should match after normalization")
		}
	})

	t.Run("different content differs", func(t *testing.T) {
		if Fingerprint(Card{Front: "Card 1"}) == Fingerprint(Card{Front: "Card 2"}) {
			t.Error("different cards must not share a fingerprint")
		}
	})
}
