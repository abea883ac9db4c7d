package server

import (
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/openbridge/bidpractice/internal/bridge"
)

// Coordinator-level errors, surfaced to clients as room-error rejections.
var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomLimitExceeded = errors.New("room limit exceeded")
	ErrSeatTaken         = errors.New("seat already taken")
	ErrCannotJoinOwnRoom = errors.New("cannot join own room")
)

// errorCode maps an error to its wire code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return "room-not-found"
	case errors.Is(err, ErrRoomLimitExceeded):
		return "room-limit-exceeded"
	case errors.Is(err, ErrSeatTaken):
		return "seat-taken"
	case errors.Is(err, ErrCannotJoinOwnRoom):
		return "cannot-join-own-room"
	default:
		return "internal-error"
	}
}

// Coordinator owns the active-room registry. At most one room exists at a
// time, enforced at creation.
type Coordinator struct {
	mu     sync.Mutex
	room   *Room
	cfg    RoomConfig
	logger *log.Logger
}

// NewCoordinator creates a coordinator; cfg supplies the dependencies handed
// to each room it creates.
func NewCoordinator(cfg RoomConfig, logger *log.Logger) *Coordinator {
	return &Coordinator{
		cfg:    cfg,
		logger: logger.WithPrefix("coordinator"),
	}
}

// CreateRoom allocates the active room with the host seated. Fails with
// ErrRoomLimitExceeded while a room already exists.
func (c *Coordinator) CreateRoom(host Sender, hostName, seat string) (*Room, error) {
	hostSeat, err := bridge.SeatFromLetter(seat)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.room != nil {
		return nil, ErrRoomLimitExceeded
	}

	id := strings.ToLower(uuid.NewString()[:8])
	cfg := c.cfg
	cfg.OnClose = c.remove
	room := NewRoom(id, hostName, hostSeat, host, cfg)
	c.room = room
	room.Start()

	c.logger.Info("Room created", "roomId", id, "host", hostName, "seat", seat)
	return room, nil
}

// Room looks up the active room by id.
func (c *Coordinator) Room(id string) (*Room, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.room == nil || c.room.ID() != id {
		return nil, ErrRoomNotFound
	}
	return c.room, nil
}

// List reports the active room, if any, for the join UI.
func (c *Coordinator) List() []RoomInfo {
	c.mu.Lock()
	room := c.room
	c.mu.Unlock()

	if room == nil {
		return []RoomInfo{}
	}
	info := room.Info()
	if info.Closed {
		return []RoomInfo{}
	}
	return []RoomInfo{info}
}

// HandleDisconnect clears the sender's seat in the active room. A departing
// host closes the room; any other seat reverts to AI control.
func (c *Coordinator) HandleDisconnect(sender Sender) {
	c.mu.Lock()
	room := c.room
	c.mu.Unlock()

	if room != nil {
		room.Leave(sender)
	}
}

// Shutdown closes the active room.
func (c *Coordinator) Shutdown() {
	c.mu.Lock()
	room := c.room
	c.mu.Unlock()

	if room != nil {
		room.Close()
	}
}

func (c *Coordinator) remove(room *Room) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.room == room {
		c.room = nil
	}
}
