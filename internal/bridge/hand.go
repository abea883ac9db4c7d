package bridge

import (
	"fmt"
	"sort"
	"strings"
)

// Hand holds the thirteen cards dealt to one seat, as rank strings indexed
// by suit (Clubs..Spades). Ranks use T for ten, e.g. "AQT3".
type Hand struct {
	suits [4]string
}

var hcpValues = map[rune]int{'A': 4, 'K': 3, 'Q': 2, 'J': 1}

var validRanks = "AKQJT98765432"

// ParseHand parses a PBN holding string, four dot-separated rank groups in
// spades.hearts.diamonds.clubs order, e.g. "KQ3.A42.K98.Q76".
func ParseHand(s string) (Hand, error) {
	groups := strings.Split(s, ".")
	if len(groups) != 4 {
		return Hand{}, fmt.Errorf("holding %q: want 4 suit groups, got %d", s, len(groups))
	}
	var h Hand
	// PBN lists spades first; suits index clubs first
	order := [4]Strain{Spades, Hearts, Diamonds, Clubs}
	for i, group := range groups {
		for _, r := range group {
			if !strings.ContainsRune(validRanks, r) {
				return Hand{}, fmt.Errorf("holding %q: invalid rank %q", s, r)
			}
		}
		h.suits[order[i]] = group
	}
	return h, nil
}

// Ranks returns the rank string held in a suit.
func (h Hand) Ranks(suit Strain) string {
	if suit == NoTrump {
		return ""
	}
	return h.suits[suit]
}

// HCP returns the hand's high-card points: A=4, K=3, Q=2, J=1.
func (h Hand) HCP() int {
	total := 0
	for _, ranks := range h.suits {
		for _, r := range ranks {
			total += hcpValues[r]
		}
	}
	return total
}

// SuitLength returns the number of cards held in a suit.
func (h Hand) SuitLength(suit Strain) int {
	if suit == NoTrump {
		return 0
	}
	return len(h.suits[suit])
}

// Balanced reports whether the hand's shape, sorted longest suit first, is
// one of 4-4-3-2, 4-3-3-3 or 5-3-3-2.
func (h Hand) Balanced() bool {
	lengths := make([]int, 4)
	for i, ranks := range h.suits {
		lengths[i] = len(ranks)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(lengths)))
	switch [4]int{lengths[0], lengths[1], lengths[2], lengths[3]} {
	case [4]int{4, 4, 3, 2}, [4]int{4, 3, 3, 3}, [4]int{5, 3, 3, 2}:
		return true
	}
	return false
}

// LongestSuit returns the suit with the most cards. Ties go to the
// higher-ranking suit.
func (h Hand) LongestSuit() Strain {
	longest := Clubs
	for _, suit := range Suits() {
		if h.SuitLength(suit) >= h.SuitLength(longest) {
			longest = suit
		}
	}
	return longest
}

// String returns the PBN holding form, spades.hearts.diamonds.clubs.
func (h Hand) String() string {
	return strings.Join([]string{
		h.suits[Spades], h.suits[Hearts], h.suits[Diamonds], h.suits[Clubs],
	}, ".")
}
