// Package convention implements the scripted bidding AI: a declarative,
// priority-ranked rule table loaded from an HCL file, consulted afresh at
// every AI turn.
package convention

import (
	"fmt"

	"github.com/openbridge/bidpractice/internal/bridge"
)

// Conditions guard a rule against the bidder's hand shape. Zero values mean
// the bound is not checked, matching the optional attributes in rule files.
type Conditions struct {
	HCPMin        int
	HCPMax        int
	Balanced      bool
	Suit          bridge.Strain // meaningful only when SuitLengthMin > 0
	SuitLengthMin int
}

// Match reports whether a hand satisfies the conditions.
func (c Conditions) Match(hand bridge.Hand) bool {
	hcp := hand.HCP()
	if c.HCPMin > 0 && hcp < c.HCPMin {
		return false
	}
	if c.HCPMax > 0 && hcp > c.HCPMax {
		return false
	}
	if c.Balanced && !hand.Balanced() {
		return false
	}
	if c.SuitLengthMin > 0 && hand.SuitLength(c.Suit) < c.SuitLengthMin {
		return false
	}
	return true
}

// Rule is one candidate call with its guard and rank. Higher priority wins;
// equal priorities keep file order.
type Rule struct {
	Call     bridge.Call
	Priority int
	Cond     Conditions
}

// RuleSet is a loaded bidding convention: opening rules, per-partner-bid
// response rules and a single default rebid tier. Read-only after load.
type RuleSet struct {
	Name      string
	Openings  []Rule
	Responses map[bridge.Call][]Rule
	Rebids    []Rule
}

// Validate checks structural invariants a loaded rule set must satisfy.
func (rs *RuleSet) Validate() error {
	for i, r := range rs.Openings {
		if err := validateRule(r); err != nil {
			return fmt.Errorf("opening rule %d: %w", i+1, err)
		}
	}
	for partner, rules := range rs.Responses {
		if !partner.IsContract() {
			return fmt.Errorf("response tier %q: partner call must be a contract bid", partner)
		}
		for i, r := range rules {
			if err := validateRule(r); err != nil {
				return fmt.Errorf("response tier %q rule %d: %w", partner, i+1, err)
			}
		}
	}
	for i, r := range rs.Rebids {
		if err := validateRule(r); err != nil {
			return fmt.Errorf("rebid rule %d: %w", i+1, err)
		}
	}
	return nil
}

func validateRule(r Rule) error {
	if r.Call.IsContract() && (r.Call.Level < 1 || r.Call.Level > 7) {
		return fmt.Errorf("bid level %d out of range", r.Call.Level)
	}
	if r.Call.Kind == bridge.Double || r.Call.Kind == bridge.Redouble {
		return fmt.Errorf("call %q: doubles are not scriptable", r.Call)
	}
	c := r.Cond
	if c.HCPMin < 0 || c.HCPMax < 0 || c.HCPMin > 40 || c.HCPMax > 40 {
		return fmt.Errorf("hcp bounds %d..%d out of range", c.HCPMin, c.HCPMax)
	}
	if c.HCPMin > 0 && c.HCPMax > 0 && c.HCPMin > c.HCPMax {
		return fmt.Errorf("hcp_min %d exceeds hcp_max %d", c.HCPMin, c.HCPMax)
	}
	if c.SuitLengthMin < 0 || c.SuitLengthMin > 13 {
		return fmt.Errorf("suit_length_min %d out of range", c.SuitLengthMin)
	}
	if c.SuitLengthMin > 0 && c.Suit == bridge.NoTrump {
		return fmt.Errorf("suit length condition needs a suit, not notrump")
	}
	return nil
}
