package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// Wire message types for the room lifecycle and auction synchronization
// protocol. Clients send requests; the server answers the requester and
// broadcasts room-wide events.
const (
	// Client to server messages
	MessageTypeCreateRoom        MessageType = "create-room"
	MessageTypeGetAvailableSeats MessageType = "get-available-seats"
	MessageTypeJoinRoom          MessageType = "join-room"
	MessageTypePlayerReady       MessageType = "player-ready"
	MessageTypeClientBid         MessageType = "client-bid"
	MessageTypeNewBoard          MessageType = "new-board"

	// Server to client messages
	MessageTypeRoomCreated        MessageType = "room-created"
	MessageTypeAvailableSeats     MessageType = "available-seats"
	MessageTypeRoomJoined         MessageType = "room-joined"
	MessageTypePlayerJoined       MessageType = "player-joined"
	MessageTypeAllPlayersReady    MessageType = "all-players-ready"
	MessageTypeGameState          MessageType = "game-state"
	MessageTypePlayerDisconnected MessageType = "player-disconnected"
	MessageTypeHostDisconnected   MessageType = "host-disconnected"
	MessageTypeRoomError          MessageType = "room-error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
