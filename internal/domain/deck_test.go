package domain

import "testing"

func TestDeck_OwnedBy(t *testing.T) {
	d := Deck{ID: "d1", UserID: "u1"}

	if !d.OwnedBy("u1") {
		t.Fatalf("expected owner match")
	}
	if d.OwnedBy("u2") {
		t.Fatalf("unexpected owner match")
	}
	if (Deck{}).OwnedBy("") {
		t.Fatalf("zero deck must not be owned by empty user")
	}
}

func TestGrammarSet_OwnedBy(t *testing.T) {
	s := GrammarSet{ID: "s1", UserID: "u1"}

	if !s.OwnedBy("u1") || s.OwnedBy("u2") {
		t.Fatalf("unexpected ownership result")
	}
}
