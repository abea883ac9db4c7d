// Package client holds the non-host view of a room. Clients never mutate
// auction state themselves: every received snapshot replaces the previous
// view wholesale, so display state is always consistent with the most recent
// broadcast even when intermediate snapshots were missed.
package client

import (
	"sync"

	"github.com/openbridge/bidpractice/internal/server"
)

// State is the replicated room view.
type State struct {
	mu       sync.RWMutex
	snapshot server.GameStateData
	seen     bool
}

// NewState returns an empty state awaiting its first snapshot.
func NewState() *State {
	return &State{}
}

// Apply replaces the view with the received snapshot.
func (s *State) Apply(snapshot server.GameStateData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
	s.seen = true
}

// Snapshot returns the current view and whether one has arrived yet.
func (s *State) Snapshot() (server.GameStateData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.seen
}

// RoomID returns the room this view belongs to.
func (s *State) RoomID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.RoomID
}

// SeatToAct returns the seat letter whose turn it is, empty once the auction
// is complete or before the first snapshot.
func (s *State) SeatToAct() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.SeatToAct
}

// MyTurn reports whether the given seat letter is to act.
func (s *State) MyTurn(seat string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seen && !s.snapshot.AuctionComplete && s.snapshot.SeatToAct == seat
}

// Auction returns the recorded call sequence.
func (s *State) Auction() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.snapshot.Auction))
	copy(out, s.snapshot.Auction)
	return out
}

// Complete reports whether the auction has terminated.
func (s *State) Complete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.AuctionComplete
}

// Result returns the final contract and declarer once the auction is
// complete. A passed-out board has a complete auction and no contract.
func (s *State) Result() (contract, declarer string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.snapshot.AuctionComplete || s.snapshot.FinalContract == "" {
		return "", "", false
	}
	return s.snapshot.FinalContract, s.snapshot.Declarer, true
}
