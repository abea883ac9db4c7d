package server

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/thoas/go-funk"

	"github.com/openbridge/bidpractice/internal/bridge"
	"github.com/openbridge/bidpractice/internal/convention"
)

// Sender delivers a message to one room member. Connections implement it;
// tests substitute a recording fake.
type Sender interface {
	SendMessage(msg *Message) error
}

// member is a human occupying a seat.
type member struct {
	sender Sender
	name   string
	ready  bool
}

// roomMsg is a request delivered to the room loop. All room state is owned by
// that single goroutine; no two calls are ever applied concurrently.
type roomMsg interface {
	isRoomMsg()
}

type joinMsg struct {
	sender Sender
	name   string
	seat   string
	joinAs string
}

type seatsMsg struct {
	sender Sender
}

type readyMsg struct {
	sender Sender
}

type bidMsg struct {
	sender Sender
	seat   string
	call   string
}

type newBoardMsg struct {
	sender Sender
}

type leaveMsg struct {
	sender Sender
}

// aiMsg is posted by the thinking timer. gen is the room generation at the
// time the timer was armed; a mismatch on arrival means the auction moved on
// and the scheduled call is discarded.
type aiMsg struct {
	gen uint64
}

type inspectMsg struct {
	reply chan RoomInfo
}

// startMsg arms the first AI timer once the loop is running.
type startMsg struct{}

func (joinMsg) isRoomMsg()     {}
func (seatsMsg) isRoomMsg()    {}
func (readyMsg) isRoomMsg()    {}
func (bidMsg) isRoomMsg()      {}
func (newBoardMsg) isRoomMsg() {}
func (leaveMsg) isRoomMsg()    {}
func (aiMsg) isRoomMsg()       {}
func (inspectMsg) isRoomMsg()  {}
func (startMsg) isRoomMsg()    {}

// RoomInfo is a point-in-time view of a room for listings.
type RoomInfo struct {
	ID             string   `json:"roomId"`
	HostName       string   `json:"hostName"`
	HostSeat       string   `json:"hostSeat"`
	OccupiedSeats  []string `json:"occupiedSeats"`
	AvailableSeats []string `json:"availableSeats"`
	BoardLabel     string   `json:"boardLabel"`
	Closed         bool     `json:"closed"`
}

// RoomConfig carries the shared dependencies a room needs.
type RoomConfig struct {
	Boards     []bridge.Board
	Engine     *convention.Engine
	ThinkDelay time.Duration
	Clock      quartz.Clock
	Logger     *log.Logger
	OnClose    func(*Room)
}

// Room is one bidding session: a board, a live auction, up to four human
// members and AI control of every unoccupied seat. The host's engine is
// authoritative; every accepted call flows through applyCall → broadcast.
type Room struct {
	id       string
	hostSeat bridge.Seat
	hostName string

	boards   []bridge.Board
	boardIdx int
	auction  *bridge.Auction
	members  map[bridge.Seat]*member

	engine     *convention.Engine
	clock      quartz.Clock
	thinkDelay time.Duration
	logger     *log.Logger
	onClose    func(*Room)

	// gen increments on every state change; pending AI timers carry the gen
	// they were armed under and are discarded on mismatch.
	gen     uint64
	aiTimer *quartz.Timer

	inbox     chan roomMsg
	done      chan struct{}
	closeOnce sync.Once
}

// NewRoom creates a room with the host seated. Call Start to run the loop.
func NewRoom(id, hostName string, hostSeat bridge.Seat, host Sender, cfg RoomConfig) *Room {
	r := &Room{
		id:         id,
		hostSeat:   hostSeat,
		hostName:   hostName,
		boards:     cfg.Boards,
		members:    make(map[bridge.Seat]*member),
		engine:     cfg.Engine,
		clock:      cfg.Clock,
		thinkDelay: cfg.ThinkDelay,
		logger:     cfg.Logger.WithPrefix("room").With("roomId", id),
		onClose:    cfg.OnClose,
		inbox:      make(chan roomMsg, 64),
		done:       make(chan struct{}),
	}
	if r.clock == nil {
		r.clock = quartz.NewReal()
	}
	r.members[hostSeat] = &member{sender: host, name: hostName}
	r.auction = bridge.NewAuction(r.board().Dealer)
	return r
}

// Start runs the room loop and arms the first AI timer if the dealer seat has
// no human occupant.
func (r *Room) Start() {
	go r.run()
	r.post(startMsg{})
}

// ID returns the room identifier.
func (r *Room) ID() string {
	return r.id
}

// Close shuts the room down. Safe to call from any goroutine.
func (r *Room) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
		if r.onClose != nil {
			r.onClose(r)
		}
		r.logger.Info("Room closed")
	})
}

// Join asks the loop to seat a player.
func (r *Room) Join(sender Sender, name, seat, joinAs string) {
	r.post(joinMsg{sender: sender, name: name, seat: seat, joinAs: joinAs})
}

// AvailableSeats asks the loop to report seat occupancy to the sender.
func (r *Room) AvailableSeats(sender Sender) {
	r.post(seatsMsg{sender: sender})
}

// Ready marks the sender's seat ready.
func (r *Room) Ready(sender Sender) {
	r.post(readyMsg{sender: sender})
}

// SubmitBid delivers a call request tagged with the claimed seat.
func (r *Room) SubmitBid(sender Sender, seat, call string) {
	r.post(bidMsg{sender: sender, seat: seat, call: call})
}

// NextBoard asks the loop to advance to the next board. Host only.
func (r *Room) NextBoard(sender Sender) {
	r.post(newBoardMsg{sender: sender})
}

// Leave removes the sender's seat, if any.
func (r *Room) Leave(sender Sender) {
	r.post(leaveMsg{sender: sender})
}

// Info returns a snapshot of the room for listings.
func (r *Room) Info() RoomInfo {
	reply := make(chan RoomInfo, 1)
	select {
	case r.inbox <- inspectMsg{reply: reply}:
	case <-r.done:
		return RoomInfo{ID: r.id, HostName: r.hostName, Closed: true}
	}
	select {
	case info := <-reply:
		return info
	case <-r.done:
		return RoomInfo{ID: r.id, HostName: r.hostName, Closed: true}
	}
}

func (r *Room) post(m roomMsg) {
	select {
	case r.inbox <- m:
	case <-r.done:
	}
}

func (r *Room) run() {
	for {
		select {
		case m := <-r.inbox:
			r.handle(m)
		case <-r.done:
			return
		}
	}
}

func (r *Room) handle(m roomMsg) {
	switch m := m.(type) {
	case joinMsg:
		r.handleJoin(m)
	case seatsMsg:
		r.handleSeats(m)
	case readyMsg:
		r.handleReady(m)
	case bidMsg:
		r.handleBid(m)
	case newBoardMsg:
		r.handleNewBoard(m)
	case leaveMsg:
		r.handleLeave(m)
	case aiMsg:
		r.handleAI(m)
	case inspectMsg:
		m.reply <- r.info()
	case startMsg:
		r.scheduleAI()
	}
}

func (r *Room) board() *bridge.Board {
	if len(r.boards) == 0 {
		return nil
	}
	return &r.boards[r.boardIdx]
}

func (r *Room) seatOf(sender Sender) (bridge.Seat, bool) {
	for seat, mem := range r.members {
		if mem.sender == sender {
			return seat, true
		}
	}
	return 0, false
}

func (r *Room) handleJoin(m joinMsg) {
	if _, seated := r.seatOf(m.sender); seated {
		r.sendError(m.sender, errorCode(ErrCannotJoinOwnRoom), "Already seated in this room")
		return
	}
	seat, err := bridge.SeatFromLetter(m.seat)
	if err != nil {
		r.sendError(m.sender, "invalid-seat", "Invalid seat: "+m.seat)
		return
	}
	if _, taken := r.members[seat]; taken {
		r.sendError(m.sender, errorCode(ErrSeatTaken), "Seat "+m.seat+" is already taken")
		return
	}

	r.members[seat] = &member{sender: m.sender, name: m.name}
	r.gen++
	r.logger.Info("Player joined", "player", m.name, "seat", m.seat, "joinAs", m.joinAs)

	players := r.playerNames()
	var partnerName string
	if partner, ok := r.members[seat.Partner()]; ok {
		partnerName = partner.name
	}
	joined, err := NewMessage(MessageTypeRoomJoined, RoomJoinedData{
		RoomID:      r.id,
		PlayerName:  m.name,
		Seat:        m.seat,
		JoinAs:      m.joinAs,
		PartnerName: partnerName,
		HostName:    r.hostName,
		HostSeat:    r.hostSeat.Letter(),
		Players:     players,
	})
	if err == nil {
		_ = m.sender.SendMessage(joined)
	}

	event, err := NewMessage(MessageTypePlayerJoined, PlayerJoinedData{
		PlayerName: m.name,
		Seat:       m.seat,
		JoinAs:     m.joinAs,
	})
	if err == nil {
		r.broadcastExcept(event, seat)
	}

	// Bring the joiner up to date immediately; the next broadcast would do it
	// too, but only after the next accepted call.
	r.sendSnapshot(m.sender)
	r.scheduleAI()
}

func (r *Room) handleSeats(m seatsMsg) {
	occupied := make(map[string]string, len(r.members))
	for seat, mem := range r.members {
		occupied[seat.Letter()] = mem.name
	}

	all := []string{"N", "E", "S", "W"}
	available := funk.Filter(all, func(letter string) bool {
		_, taken := occupied[letter]
		return !taken
	}).([]string)

	partner := r.hostSeat.Partner()
	opponents := r.hostSeat.Opponents()
	msg, err := NewMessage(MessageTypeAvailableSeats, AvailableSeatsData{
		AvailableSeats: available,
		HostSeat:       r.hostSeat.Letter(),
		PartnerSeat:    partner.Letter(),
		OpponentSeats:  []string{opponents[0].Letter(), opponents[1].Letter()},
		OccupiedSeats:  occupied,
	})
	if err == nil {
		_ = m.sender.SendMessage(msg)
	}
}

func (r *Room) handleReady(m readyMsg) {
	seat, ok := r.seatOf(m.sender)
	if !ok {
		return
	}
	r.members[seat].ready = true

	if len(r.members) < 2 {
		return
	}
	for _, mem := range r.members {
		if !mem.ready {
			return
		}
	}
	msg, err := NewMessage(MessageTypeAllPlayersReady, map[string]string{"roomId": r.id})
	if err == nil {
		r.broadcast(msg)
	}
}

func (r *Room) handleBid(m bidMsg) {
	seat, err := bridge.SeatFromLetter(m.seat)
	if err != nil {
		r.logger.Debug("Dropping bid with invalid seat", "seat", m.seat)
		return
	}
	mem, ok := r.members[seat]
	if !ok || mem.sender != m.sender {
		// Seat spoofing or a request that raced a disconnect.
		r.logger.Debug("Dropping bid from sender not seated there", "seat", m.seat)
		return
	}
	call, err := bridge.ParseCall(m.call)
	if err != nil {
		r.sendError(m.sender, "invalid-call", "Invalid call: "+m.call)
		return
	}
	if r.auction.SeatToAct() != seat {
		// Stale request racing a snapshot in flight. No state change follows;
		// the requester learns the truth from the next broadcast.
		r.logger.Debug("Dropping out-of-turn bid", "seat", m.seat, "call", m.call)
		return
	}
	if err := r.auction.Submit(seat, call); err != nil {
		// A conforming client cannot produce this; treat as an invariant check.
		r.sendError(m.sender, "illegal-call", "Illegal call: "+m.call)
		return
	}
	r.logger.Info("Call accepted", "seat", m.seat, "call", call.String())
	r.afterCall()
}

func (r *Room) handleNewBoard(m newBoardMsg) {
	seat, ok := r.seatOf(m.sender)
	if !ok || seat != r.hostSeat {
		r.sendError(m.sender, "not-host", "Only the host can advance the board")
		return
	}
	if len(r.boards) == 0 {
		return
	}
	r.boardIdx = (r.boardIdx + 1) % len(r.boards)
	r.auction = bridge.NewAuction(r.board().Dealer)
	r.logger.Info("Advanced to next board", "board", r.board().Label)
	r.afterCall()
}

func (r *Room) handleLeave(m leaveMsg) {
	seat, ok := r.seatOf(m.sender)
	if !ok {
		return
	}
	if seat == r.hostSeat {
		msg, err := NewMessage(MessageTypeHostDisconnected, map[string]string{"roomId": r.id})
		if err == nil {
			r.broadcastExcept(msg, seat)
		}
		r.logger.Info("Host disconnected, closing room")
		r.Close()
		return
	}

	delete(r.members, seat)
	r.gen++
	r.logger.Info("Player disconnected, seat reverts to AI", "seat", seat.Letter())

	if len(r.members) == 0 {
		r.Close()
		return
	}
	msg, err := NewMessage(MessageTypePlayerDisconnected, PlayerDisconnectedData{Seat: seat.Letter()})
	if err == nil {
		r.broadcast(msg)
	}
	r.scheduleAI()
}

func (r *Room) handleAI(m aiMsg) {
	r.aiTimer = nil
	if m.gen != r.gen {
		r.logger.Debug("Discarding stale AI timer", "gen", m.gen, "current", r.gen)
		return
	}
	if r.auction.Closed() || r.board() == nil {
		return
	}
	seat := r.auction.SeatToAct()
	if _, human := r.members[seat]; human {
		return
	}

	call := r.engine.ChooseCall(seat, r.board().Hand(seat), r.auction)
	if err := r.auction.Submit(seat, call); err != nil {
		r.logger.Error("AI produced an unplayable call", "seat", seat.Letter(), "call", call.String(), "error", err)
		return
	}
	r.logger.Info("AI call", "seat", seat.Letter(), "call", call.String())
	r.afterCall()
}

// afterCall is the single apply → rebroadcast path shared by human and AI
// calls and by board changes.
func (r *Room) afterCall() {
	r.gen++
	r.broadcastSnapshot()
	r.scheduleAI()
}

// scheduleAI arms the thinking timer when the seat to act has no human. At
// most one timer is pending; an existing one is cancelled first.
func (r *Room) scheduleAI() {
	if r.aiTimer != nil {
		r.aiTimer.Stop()
		r.aiTimer = nil
	}
	if r.auction.Closed() || r.board() == nil {
		return
	}
	seat := r.auction.SeatToAct()
	if _, human := r.members[seat]; human {
		return
	}
	gen := r.gen
	r.aiTimer = r.clock.AfterFunc(r.thinkDelay, func() {
		r.post(aiMsg{gen: gen})
	})
}

func (r *Room) playerNames() map[string]string {
	names := make(map[string]string, len(r.members))
	for seat, mem := range r.members {
		names[seat.Letter()] = mem.name
	}
	return names
}

func (r *Room) info() RoomInfo {
	occupied := make([]string, 0, len(r.members))
	available := make([]string, 0, 4)
	for _, seat := range bridge.Seats() {
		if _, taken := r.members[seat]; taken {
			occupied = append(occupied, seat.Letter())
		} else {
			available = append(available, seat.Letter())
		}
	}
	info := RoomInfo{
		ID:             r.id,
		HostName:       r.hostName,
		HostSeat:       r.hostSeat.Letter(),
		OccupiedSeats:  occupied,
		AvailableSeats: available,
	}
	if b := r.board(); b != nil {
		info.BoardLabel = b.Label
	}
	return info
}

func (r *Room) snapshot() GameStateData {
	calls := r.auction.Calls()
	auction := make([]string, len(calls))
	for i, c := range calls {
		auction[i] = c.String()
	}

	state := GameStateData{
		RoomID:          r.id,
		Auction:         auction,
		AuctionComplete: r.auction.Closed(),
		Seats:           r.playerNames(),
	}
	if !r.auction.Closed() {
		state.SeatToAct = r.auction.SeatToAct().Letter()
	} else if contract, ok := r.auction.FinalContract(); ok {
		state.FinalContract = contract.String()
		if declarer, ok := r.auction.Declarer(); ok {
			state.Declarer = declarer.Letter()
		}
	}
	if b := r.board(); b != nil {
		state.Board = boardData(b)
	}
	return state
}

func boardData(b *bridge.Board) *BoardData {
	hands := make(map[string]string, 4)
	for _, seat := range bridge.Seats() {
		hands[seat.Letter()] = b.Hand(seat).String()
	}
	data := &BoardData{
		Label:         b.Label,
		Dealer:        b.Dealer.Letter(),
		Vulnerability: b.Vulnerability.String(),
		Hands:         hands,
		ParContract:   b.ParContract,
		ParScore:      b.ParScore,
	}
	if b.DoubleDummy != nil {
		dd := make(map[string]map[string]int)
		for _, seat := range bridge.Seats() {
			for _, strain := range bridge.Strains() {
				if tricks, ok := b.DoubleDummy.Tricks(seat, strain); ok {
					if dd[seat.Letter()] == nil {
						dd[seat.Letter()] = make(map[string]int)
					}
					dd[seat.Letter()][strain.Letter()] = tricks
				}
			}
		}
		if len(dd) > 0 {
			data.DoubleDummy = dd
		}
	}
	return data
}

func (r *Room) broadcastSnapshot() {
	msg, err := NewMessage(MessageTypeGameState, r.snapshot())
	if err != nil {
		r.logger.Error("Failed to build snapshot", "error", err)
		return
	}
	r.broadcast(msg)
}

func (r *Room) sendSnapshot(sender Sender) {
	msg, err := NewMessage(MessageTypeGameState, r.snapshot())
	if err != nil {
		r.logger.Error("Failed to build snapshot", "error", err)
		return
	}
	_ = sender.SendMessage(msg)
}

func (r *Room) broadcast(msg *Message) {
	for seat, mem := range r.members {
		if err := mem.sender.SendMessage(msg); err != nil {
			r.logger.Error("Failed to send to member", "seat", seat.Letter(), "error", err)
		}
	}
}

func (r *Room) broadcastExcept(msg *Message, except bridge.Seat) {
	for seat, mem := range r.members {
		if seat == except {
			continue
		}
		if err := mem.sender.SendMessage(msg); err != nil {
			r.logger.Error("Failed to send to member", "seat", seat.Letter(), "error", err)
		}
	}
}

func (r *Room) sendError(sender Sender, code, message string) {
	msg, err := NewMessage(MessageTypeRoomError, RoomErrorData{Code: code, Message: message})
	if err != nil {
		r.logger.Error("Failed to create error message", "error", err)
		return
	}
	_ = sender.SendMessage(msg)
}
