package server

import (
	"encoding/json"
	"time"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type CreateRoomData struct {
	PlayerName string `json:"playerName"`
	Seat       string `json:"seat"`
}

type GetAvailableSeatsData struct {
	RoomID string `json:"roomId"`
}

type JoinRoomData struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
	Seat       string `json:"seat"`
	JoinAs     string `json:"joinAs"` // "partner" or "opponent"
}

type PlayerReadyData struct {
	RoomID string `json:"roomId"`
}

// ClientBidData is a call request from a non-host participant. The host
// validates turn ownership before applying it; stale requests are dropped.
type ClientBidData struct {
	RoomID string `json:"roomId"`
	Call   string `json:"call"` // wire encoding, e.g. "P" or "1N"
	Seat   string `json:"seat"`
}

type NewBoardData struct {
	RoomID string `json:"roomId"`
}

// Server → Client Messages

type RoomCreatedData struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
	Seat       string `json:"seat"`
}

type AvailableSeatsData struct {
	AvailableSeats []string          `json:"availableSeats"`
	HostSeat       string            `json:"hostSeat"`
	PartnerSeat    string            `json:"partnerSeat"`
	OpponentSeats  []string          `json:"opponentSeats"`
	OccupiedSeats  map[string]string `json:"occupiedSeats"` // seat letter -> player name
}

type RoomJoinedData struct {
	RoomID      string            `json:"roomId"`
	PlayerName  string            `json:"playerName"`
	Seat        string            `json:"seat"`
	JoinAs      string            `json:"joinAs"`
	PartnerName string            `json:"partnerName,omitempty"`
	HostName    string            `json:"hostName"`
	HostSeat    string            `json:"hostSeat"`
	Players     map[string]string `json:"players"` // seat letter -> player name
}

type PlayerJoinedData struct {
	PlayerName string `json:"playerName"`
	Seat       string `json:"seat"`
	JoinAs     string `json:"joinAs"`
}

type PlayerDisconnectedData struct {
	Seat string `json:"seat"`
}

type RoomErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BoardData is the wire form of a dealt board inside a snapshot.
type BoardData struct {
	Label         string                    `json:"label"`
	Dealer        string                    `json:"dealer"`
	Vulnerability string                    `json:"vulnerability"`
	Hands         map[string]string         `json:"hands"` // seat letter -> PBN holding
	ParContract   string                    `json:"parContract,omitempty"`
	ParScore      string                    `json:"parScore,omitempty"`
	DoubleDummy   map[string]map[string]int `json:"doubleDummy,omitempty"` // declarer -> strain -> tricks
}

// GameStateData is the full room snapshot the host broadcasts after every
// accepted call. Receivers replace their local state wholesale, so a missed
// snapshot is harmless: the next one carries everything again.
type GameStateData struct {
	RoomID          string            `json:"roomId"`
	Board           *BoardData        `json:"board,omitempty"`
	Auction         []string          `json:"auction"`
	SeatToAct       string            `json:"seatToAct,omitempty"`
	AuctionComplete bool              `json:"auctionComplete"`
	FinalContract   string            `json:"finalContract,omitempty"`
	Declarer        string            `json:"declarer,omitempty"`
	Seats           map[string]string `json:"seats"` // seat letter -> player name; absent seats are AI
}
