package convention

import (
	"sort"

	"github.com/openbridge/bidpractice/internal/bridge"
)

// Engine selects calls from a rule set. It keeps no state between turns:
// every decision is derived from the live auction, so it can be invoked at
// any point after a resynchronization. A nil Engine always passes.
type Engine struct {
	rules *RuleSet
}

// NewEngine wraps a loaded rule set.
func NewEngine(rules *RuleSet) *Engine {
	return &Engine{rules: rules}
}

// ChooseCall picks the seat's call for the current auction state. The result
// is deterministic for identical inputs. When no rule applies the engine
// passes; it never fails.
func (e *Engine) ChooseCall(seat bridge.Seat, hand bridge.Hand, auction *bridge.Auction) bridge.Call {
	if e == nil || e.rules == nil {
		return bridge.PassCall
	}

	candidates := e.candidates(seat, auction)

	var survivors []Rule
	for _, r := range candidates {
		if !r.Cond.Match(hand) {
			continue
		}
		if r.Call.IsContract() {
			if last, _, ok := auction.LastContract(); ok && !r.Call.Beats(last) {
				continue
			}
		}
		survivors = append(survivors, r)
	}
	if len(survivors) == 0 {
		return bridge.PassCall
	}

	// Highest priority first; SliceStable keeps file order on ties.
	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].Priority > survivors[j].Priority
	})
	return survivors[0].Call
}

// candidates resolves the context tier: response to partner's contract bid
// for a seat that has not yet acted beyond passing, the default rebid tier
// once it has, and openings otherwise. Missing tiers fall back to openings.
func (e *Engine) candidates(seat bridge.Seat, auction *bridge.Auction) []Rule {
	if auction.HasBidNonPass(seat) {
		if len(e.rules.Rebids) > 0 {
			return e.rules.Rebids
		}
		return e.rules.Openings
	}
	if partnerCall, ok := auction.LastCallBy(seat.Partner()); ok && partnerCall.IsContract() {
		if rules, ok := e.rules.Responses[partnerCall]; ok {
			return rules
		}
	}
	return e.rules.Openings
}
