// Package websocket is the session gateway: it maps inbound client actions
// to registry and controller calls and fans the resulting room snapshots out
// to every connection joined to the room.
package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/twentyfourlab/twentyfour-backend/internal/entity"
	"github.com/twentyfourlab/twentyfour-backend/internal/registry"
)

type Server struct {
	logger   *slog.Logger
	registry *registry.Registry
	upgrader websocket.Upgrader

	connectionsMutex sync.RWMutex
	connections      map[string]*connection

	handlers map[string]func(conn *connection, payload *Payload) error
}

// connection is one client session; writes are serialized per connection.
type connection struct {
	ws       *websocket.Conn
	playerID string
	writeMu  sync.Mutex
}

func New(logger *slog.Logger, reg *registry.Registry) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		registry: reg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
		connections: make(map[string]*connection),
		handlers:    make(map[string]func(*connection, *Payload) error),
	}

	server.handlers[eventJoinRoom] = server.handleJoinRoom
	server.handlers[eventReadyGame] = server.handleReadyGame
	server.handlers[eventStartGame] = server.handleStartGame
	server.handlers[eventSelectCard] = server.handleSelectCard
	server.handlers[eventReselectCard] = server.handleReselectCard
	server.handlers[eventBackCard] = server.handleBackCard
	server.handlers[eventPlayCard] = server.handlePlayCard
	server.handlers[eventUpdateAndDraw] = server.handleUpdateAndDraw
	server.handlers[eventDrawCard] = server.handleDrawCard
	server.handlers[eventDiscardCard] = server.handleDiscardCard
	server.handlers[eventSortCard] = server.handleSortCard
	server.handlers[eventSearchRooms] = server.handleSearchRooms
	server.handlers[eventSendMessage] = server.handleSendMessage
	server.handlers[eventEditRoomName] = server.handleEditRoomName
	server.handlers[eventEditMaxPlayers] = server.handleEditMaxPlayers
	server.handlers[eventEditRoomSettings] = server.handleEditRoomSettings
	server.handlers[eventRemovePlayer] = server.handleRemovePlayer

	reg.OnTick(server.broadcastCountdown)

	return server
}

// Start - starts the WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(w, r)
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveConnection(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveConnection")

	ws, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := &connection{
		ws:       ws,
		playerID: uuid.NewString(),
	}

	that.connectionsMutex.Lock()
	that.connections[conn.playerID] = conn
	that.connectionsMutex.Unlock()

	log.Info("connection established", "playerID", conn.playerID)

	// the client stores its id for later requests
	if err = that.send(conn, eventGetPlayerID, conn.playerID); err != nil {
		log.Error("failed to send player id", "error", err)
	}

	that.readLoop(conn)
}

// readLoop - processes messages from the client until it disconnects. Each
// handler runs to completion before the next message is read.
func (that *Server) readLoop(conn *connection) {
	log := that.logger.With("method", "readLoop", "playerID", conn.playerID)

	defer that.handleDisconnect(conn)

	for {
		var message Message
		if err := conn.ws.ReadJSON(&message); err != nil {
			log.Info("connection closed", "error", err)
			return
		}

		handler, ok := that.handlers[message.Event]
		if !ok {
			log.Error("unknown event", "event", message.Event)
			continue
		}

		var payload Payload
		if len(message.Payload) > 0 {
			if err := json.Unmarshal(message.Payload, &payload); err != nil {
				log.Error("failed to unmarshal payload", "error", err)
				continue
			}
		}

		if err := handler(conn, &payload); err != nil {
			log.Error("error processing message", "event", message.Event, "error", err)
		}
	}
}

// handleDisconnect - a dropped connection is an implicit leave.
func (that *Server) handleDisconnect(conn *connection) {
	log := that.logger.With("method", "handleDisconnect", "playerID", conn.playerID)

	that.connectionsMutex.Lock()
	delete(that.connections, conn.playerID)
	that.connectionsMutex.Unlock()

	_ = conn.ws.Close()

	room, removed, err := that.registry.Leave(conn.playerID)
	if err != nil {
		// the player never joined a room
		return
	}

	if room == nil {
		log.Info("last player disconnected, room deleted")
		return
	}

	that.broadcast(room, eventPlayerLeaveRoom, removed.Name)
	that.broadcast(room, eventRoomUpdate, room)

	log.Info("player disconnected, room updated", "roomID", room.RoomID)
}

func (that *Server) send(conn *connection, event string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	conn.writeMu.Lock()
	defer conn.writeMu.Unlock()

	if err = conn.ws.WriteJSON(Message{Event: event, Payload: raw}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// broadcast sends one event to every connection seated in the room. Rooms
// arriving here are registry snapshots, so marshaling never races a handler
// holding the lock.
func (that *Server) broadcast(room *entity.Room, event string, payload any) {
	log := that.logger.With("method", "broadcast", "roomID", room.RoomID)

	for _, player := range room.Players {
		that.connectionsMutex.RLock()
		conn, ok := that.connections[player.ID]
		that.connectionsMutex.RUnlock()

		if !ok {
			log.Warn("connection not found for player", "playerID", player.ID)
			continue
		}

		if err := that.send(conn, event, payload); err != nil {
			log.Error("failed to send room update", "playerID", player.ID, "error", err)
		}
	}
}

func (that *Server) broadcastCountdown(roomID string, remaining int, nextPlayerID string) {
	room, ok := that.registry.Room(roomID)
	if !ok {
		return
	}

	that.broadcast(room, eventCountdown, CountdownTick{
		Seconds:      remaining,
		NextPlayerID: nextPlayerID,
	})
}

func (that *Server) sendError(conn *connection, errorMsg string) error {
	if err := that.send(conn, eventErrorMessage, errorMsg); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
