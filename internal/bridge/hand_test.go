package bridge

import "testing"

func TestParseHand(t *testing.T) {
	h, err := ParseHand("KQ3.A42.K98.Q76")
	if err != nil {
		t.Fatalf("ParseHand: %v", err)
	}
	if got := h.Ranks(Spades); got != "KQ3" {
		t.Errorf("spades = %q, want KQ3", got)
	}
	if got := h.Ranks(Clubs); got != "Q76" {
		t.Errorf("clubs = %q, want Q76", got)
	}
	if got := h.String(); got != "KQ3.A42.K98.Q76" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseHandErrors(t *testing.T) {
	for _, in := range []string{"KQ3.A42.K98", "KQ3.A42.K98.Q76.2", "KX3.A42.K98.Q76"} {
		if _, err := ParseHand(in); err == nil {
			t.Errorf("ParseHand(%q): expected error", in)
		}
	}
}

func TestHCP(t *testing.T) {
	tests := []struct {
		holding string
		want    int
	}{
		{"AKQJ.AKQJ.AKQ.AK", 36},
		{"KQ3.A42.K98.Q76", 14},
		{"T98.765.432.9876", 0},
		{"A234.K32.Q32.J32", 10},
	}
	for _, tt := range tests {
		h, err := ParseHand(tt.holding)
		if err != nil {
			t.Fatalf("ParseHand(%q): %v", tt.holding, err)
		}
		if got := h.HCP(); got != tt.want {
			t.Errorf("HCP(%q) = %d, want %d", tt.holding, got, tt.want)
		}
	}
}

func TestBalanced(t *testing.T) {
	tests := []struct {
		holding string
		want    bool
	}{
		{"KQ32.A42.K98.Q76", true},  // 4-3-3-3
		{"KQ32.A432.K98.Q7", true},  // 4-4-3-2
		{"KQ532.A42.K98.Q7", true},  // 5-3-3-2
		{"KQ532.A842.K9.Q7", false}, // 5-4-2-2
		{"KQJ532.A42.K98.Q", false}, // 6-3-3-1
	}
	for _, tt := range tests {
		h, err := ParseHand(tt.holding)
		if err != nil {
			t.Fatalf("ParseHand(%q): %v", tt.holding, err)
		}
		if got := h.Balanced(); got != tt.want {
			t.Errorf("Balanced(%q) = %v, want %v", tt.holding, got, tt.want)
		}
	}
}

func TestSuitLengthAndLongest(t *testing.T) {
	h, err := ParseHand("AKQJT9.876.54.32")
	if err != nil {
		t.Fatal(err)
	}
	if got := h.SuitLength(Spades); got != 6 {
		t.Errorf("spade length = %d, want 6", got)
	}
	if got := h.LongestSuit(); got != Spades {
		t.Errorf("longest = %v, want spades", got)
	}
}
