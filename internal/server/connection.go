package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// Connection represents a WebSocket connection to a client
type Connection struct {
	conn        *websocket.Conn
	send        chan *Message
	playerName  string
	roomID      string
	logger      *log.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	mu          sync.RWMutex
	closeOnce   sync.Once
	coordinator *Coordinator
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, coordinator *Coordinator) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:        conn,
		send:        make(chan *Message, 256),
		logger:      logger.WithPrefix("conn"),
		ctx:         ctx,
		cancel:      cancel,
		coordinator: coordinator,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, expected during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// SetPlayer associates this connection with a player name
func (c *Connection) SetPlayer(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playerName = name
}

// GetPlayer returns the associated player name
func (c *Connection) GetPlayer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerName
}

// SetRoom associates this connection with a room
func (c *Connection) SetRoom(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomID = roomID
}

// GetRoom returns the associated room ID
func (c *Connection) GetRoom() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roomID
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "player", c.GetPlayer())

	switch msg.Type {
	case MessageTypeCreateRoom:
		var data CreateRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid-message", "Failed to parse create room data")
			return
		}
		c.handleCreateRoom(data)

	case MessageTypeGetAvailableSeats:
		var data GetAvailableSeatsData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid-message", "Failed to parse seat request data")
			return
		}
		c.handleGetAvailableSeats(data)

	case MessageTypeJoinRoom:
		var data JoinRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid-message", "Failed to parse join room data")
			return
		}
		c.handleJoinRoom(data)

	case MessageTypePlayerReady:
		var data PlayerReadyData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid-message", "Failed to parse ready data")
			return
		}
		c.handlePlayerReady(data)

	case MessageTypeClientBid:
		var data ClientBidData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid-message", "Failed to parse bid data")
			return
		}
		c.handleClientBid(data)

	case MessageTypeNewBoard:
		var data NewBoardData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid-message", "Failed to parse new board data")
			return
		}
		c.handleNewBoard(data)

	default:
		c.sendError("unknown-message-type", "Unknown message type: "+msg.Type.String())
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeRoomError, RoomErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg)
}

func (c *Connection) handleCreateRoom(data CreateRoomData) {
	c.logger.Info("Create room request", "playerName", data.PlayerName, "seat", data.Seat)

	if data.PlayerName == "" {
		c.sendError("invalid-name", "Player name required")
		return
	}

	room, err := c.coordinator.CreateRoom(c, data.PlayerName, data.Seat)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}

	c.SetPlayer(data.PlayerName)
	c.SetRoom(room.ID())

	response, _ := NewMessage(MessageTypeRoomCreated, RoomCreatedData{
		RoomID:     room.ID(),
		PlayerName: data.PlayerName,
		Seat:       data.Seat,
	})
	_ = c.SendMessage(response)
}

func (c *Connection) handleGetAvailableSeats(data GetAvailableSeatsData) {
	room, err := c.coordinator.Room(data.RoomID)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}
	room.AvailableSeats(c)
}

func (c *Connection) handleJoinRoom(data JoinRoomData) {
	c.logger.Info("Join room request", "roomId", data.RoomID, "playerName", data.PlayerName, "seat", data.Seat)

	if data.PlayerName == "" {
		c.sendError("invalid-name", "Player name required")
		return
	}

	room, err := c.coordinator.Room(data.RoomID)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}

	c.SetPlayer(data.PlayerName)
	c.SetRoom(data.RoomID)
	room.Join(c, data.PlayerName, data.Seat, data.JoinAs)
}

func (c *Connection) handlePlayerReady(data PlayerReadyData) {
	room, err := c.coordinator.Room(data.RoomID)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}
	room.Ready(c)
}

func (c *Connection) handleClientBid(data ClientBidData) {
	room, err := c.coordinator.Room(data.RoomID)
	if err != nil {
		// A bid racing room teardown; nothing to surface.
		c.logger.Debug("Bid for unknown room", "roomId", data.RoomID)
		return
	}
	room.SubmitBid(c, data.Seat, data.Call)
}

func (c *Connection) handleNewBoard(data NewBoardData) {
	room, err := c.coordinator.Room(data.RoomID)
	if err != nil {
		c.sendError(errorCode(err), err.Error())
		return
	}
	room.NextBoard(c)
}
