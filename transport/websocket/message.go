package websocket

import (
	"encoding/json"

	"github.com/twentyfourlab/twentyfour-backend/internal/entity"
)

// client -> server events
const (
	eventJoinRoom         = "join-room"
	eventReadyGame        = "ready-game"
	eventStartGame        = "start-game"
	eventSelectCard       = "select-card"
	eventReselectCard     = "reselect-card"
	eventBackCard         = "back-card"
	eventPlayCard         = "play-card"
	eventUpdateAndDraw    = "update-and-draw"
	eventDrawCard         = "draw-card"
	eventDiscardCard      = "discard-card"
	eventSortCard         = "sort-card"
	eventSearchRooms      = "search-rooms"
	eventSendMessage      = "send-message"
	eventEditRoomName     = "edit-room-name"
	eventEditMaxPlayers   = "edit-max-players"
	eventEditRoomSettings = "edit-room-settings"
	eventRemovePlayer     = "remove-player"
)

// server -> client events
const (
	eventErrorMessage     = "error-message"
	eventNeedRoomPassword = "need-room-password"
	eventGetPlayerID      = "get-player-id"
	eventJoinRoomSuccess  = "join-room-success"
	eventStartGameSuccess = "start-game-success"
	eventRoomUpdate       = "room-update"
	eventPlayCardResponse = "play-card-response"
	eventGetMessage       = "get-message"
	eventPlayerLeaveRoom  = "player-leave-room"
	eventGameOver         = "game-over"
	eventCountdown        = "countdown"
)

// Message is one websocket exchange: an event name and its payload.
type Message struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload carries every client request field; handlers read the ones their
// event defines.
type Payload struct {
	RoomID        string             `json:"roomId,omitempty"`
	RoomName      string             `json:"roomName,omitempty"`
	Password      string             `json:"password,omitempty"`
	MaxPlayers    int                `json:"maxPlayers,omitempty"`
	PlayerName    string             `json:"playerName,omitempty"`
	PlayerID      string             `json:"playerId,omitempty"`
	Mode          string             `json:"mode,omitempty"`
	Number        *entity.NumberCard `json:"number,omitempty"`
	Symbol        entity.Symbol      `json:"symbol,omitempty"`
	CardID        string             `json:"cardId,omitempty"`
	Count         int                `json:"count,omitempty"`
	Text          string             `json:"message,omitempty"`
	OnlyNonFull   bool               `json:"onlyNonFull,omitempty"`
	DeckType      string             `json:"deckType,omitempty"`
	RemainSeconds *int               `json:"remainSeconds,omitempty"`
}

// ChatMessage is a relayed chat entry tagged with the sender's name.
type ChatMessage struct {
	Name string `json:"name"`
	Text string `json:"message"`
}

// CountdownTick is the per-second turn timer push.
type CountdownTick struct {
	Seconds      int    `json:"seconds"`
	NextPlayerID string `json:"nextPlayerId"`
}

// PlayCardResult carries the equals-24 check outcome.
type PlayCardResult struct {
	IsCorrect bool `json:"isCorrect"`
}
