// Package registry is the authoritative collection of all rooms and the
// player-to-room lookup. Every mutation of a room goes through the registry
// lock, which serializes action handling the way the protocol requires.
package registry

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/twentyfourlab/twentyfour-backend/internal/apperror"
	"github.com/twentyfourlab/twentyfour-backend/internal/entity"
)

type Registry struct {
	logger *slog.Logger

	mu         sync.RWMutex
	rooms      map[string]*entity.Room
	playerRoom map[string]string
	countdowns map[string]*countdown

	tick TickFunc
}

func New(logger *slog.Logger) *Registry {
	return &Registry{
		logger:     logger.With("component", "registry"),
		rooms:      make(map[string]*entity.Room),
		playerRoom: make(map[string]string),
		countdowns: make(map[string]*countdown),
		tick:       func(string, int, string) {},
	}
}

type JoinParams struct {
	RoomID     string
	RoomName   string
	Password   string
	MaxPlayers int
	PlayerID   string
	PlayerName string
}

// Join admits the player into the room, creating the room if it does not
// exist yet. The creator becomes master and is always ready; a master
// reconnecting under the same identity is always accepted. A protected room
// answers a missing or wrong password with ErrPasswordRequired so the caller
// can re-prompt instead of failing.
func (that *Registry) Join(params JoinParams) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[params.RoomID]
	if !ok {
		return that.createRoom(params)
	}

	if existing := room.PlayerByID(params.PlayerID); existing != nil {
		if existing.IsMaster {
			return room.Clone(), nil
		}

		return nil, apperror.ErrAlreadyInRoom
	}

	if room.IsFull() {
		return nil, apperror.ErrRoomIsFull
	}

	if room.Password != "" && room.Password != params.Password {
		return nil, apperror.ErrPasswordRequired
	}

	room.Players = append(room.Players, &entity.Player{
		ID:       params.PlayerID,
		Name:     params.PlayerName,
		HandCard: []entity.NumberCard{},
	})
	that.playerRoom[params.PlayerID] = room.RoomID

	that.logger.Info("player joined room", "roomID", room.RoomID, "playerID", params.PlayerID)

	return room.Clone(), nil
}

func (that *Registry) createRoom(params JoinParams) (*entity.Room, error) {
	if params.RoomName != "" && params.MaxPlayers > 1 && that.roomNameTaken(params.RoomName) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNameTaken, params.RoomName)
	}

	room := entity.NewRoom(params.RoomID, params.MaxPlayers)
	room.RoomName = params.RoomName
	room.Password = params.Password
	room.Players = append(room.Players, &entity.Player{
		ID:       params.PlayerID,
		Name:     params.PlayerName,
		IsMaster: true,
		IsReady:  true,
		HandCard: []entity.NumberCard{},
	})

	that.rooms[room.RoomID] = room
	that.playerRoom[params.PlayerID] = room.RoomID

	that.logger.Info("room created", "roomID", room.RoomID, "maxPlayers", room.MaxPlayers)

	return room.Clone(), nil
}

func (that *Registry) roomNameTaken(name string) bool {
	for _, room := range that.rooms {
		if !room.IsSolo() && room.RoomName == name {
			return true
		}
	}

	return false
}

// Leave removes the player from whatever room the lookup maps it to. The
// last player leaving deletes the room; otherwise the first remaining player
// inherits the master seat and an in-progress match is abandoned. Returns
// the updated room (nil when deleted) and the removed player.
func (that *Registry) Leave(playerID string) (*entity.Room, *entity.Player, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	roomID, ok := that.playerRoom[playerID]
	if !ok {
		return nil, nil, apperror.ErrRoomNotFound
	}

	room, ok := that.rooms[roomID]
	if !ok {
		delete(that.playerRoom, playerID)
		return nil, nil, apperror.ErrRoomNotFound
	}

	removed := that.removeSeat(room, playerID)
	if removed == nil {
		return nil, nil, apperror.ErrPlayerNotFound
	}

	if len(room.Players) == 0 {
		that.deleteRoom(room)
		return nil, removed, nil
	}

	if room.Master() == nil {
		room.Players[0].IsMaster = true
		room.Players[0].IsReady = true
	}

	// a departure abandons the match
	that.stopCountdown(room.RoomID)
	room.Status = entity.StatusIdle
	room.IsGameOver = false

	that.logger.Info("player left room", "roomID", room.RoomID, "playerID", playerID)

	return room.Clone(), removed, nil
}

// RemovePlayer is the master-initiated kick: the seat is removed
// unconditionally and the lookup entry dropped.
func (that *Registry) RemovePlayer(roomID, targetID string) (*entity.Room, *entity.Player, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[roomID]
	if !ok {
		return nil, nil, apperror.ErrRoomNotFound
	}

	removed := that.removeSeat(room, targetID)
	if removed == nil {
		return nil, nil, apperror.ErrPlayerNotFound
	}

	if len(room.Players) == 0 {
		that.deleteRoom(room)
		return nil, removed, nil
	}

	if room.Master() == nil {
		room.Players[0].IsMaster = true
		room.Players[0].IsReady = true
	}

	that.logger.Info("player removed from room", "roomID", roomID, "playerID", targetID)

	return room.Clone(), removed, nil
}

func (that *Registry) removeSeat(room *entity.Room, playerID string) *entity.Player {
	for i, player := range room.Players {
		if player.ID == playerID {
			room.Players = append(room.Players[:i], room.Players[i+1:]...)
			delete(that.playerRoom, playerID)
			return player
		}
	}

	return nil
}

func (that *Registry) deleteRoom(room *entity.Room) {
	that.stopCountdown(room.RoomID)
	delete(that.rooms, room.RoomID)
	that.logger.Info("room deleted", "roomID", room.RoomID)
}

// ToggleReady flips the player's ready flag; meaningful only pre-match.
func (that *Registry) ToggleReady(roomID, playerID string) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[roomID]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	player := room.PlayerByID(playerID)
	if player == nil {
		return nil, apperror.ErrPlayerNotFound
	}

	player.IsReady = !player.IsReady

	return room.Clone(), nil
}

func (that *Registry) EditRoomName(roomID, name string) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[roomID]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	room.RoomName = name

	return room.Clone(), nil
}

func (that *Registry) EditMaxPlayers(roomID string, maxPlayers int) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[roomID]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	room.MaxPlayers = maxPlayers

	return room.Clone(), nil
}

func (that *Registry) EditSettings(roomID string, settings entity.RoomSettings) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[roomID]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	room.Settings = settings

	return room.Clone(), nil
}

// Search lists multiplayer rooms, optionally filtered by a name substring
// and by available capacity. Solo rooms are never listed.
func (that *Registry) Search(name string, onlyNonFull bool) []*entity.Room {
	that.mu.RLock()
	defer that.mu.RUnlock()

	results := make([]*entity.Room, 0)
	for _, room := range that.rooms {
		if room.IsSolo() {
			continue
		}

		if name != "" && !strings.Contains(room.RoomName, name) {
			continue
		}

		if onlyNonFull && room.IsFull() {
			continue
		}

		results = append(results, room.Clone())
	}

	return results
}

// Room returns a snapshot of the room by id.
func (that *Registry) Room(roomID string) (*entity.Room, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	room, ok := that.rooms[roomID]
	if !ok {
		return nil, false
	}

	return room.Clone(), true
}

// RoomByPlayer resolves the room the player currently occupies.
func (that *Registry) RoomByPlayer(playerID string) (*entity.Room, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	roomID, ok := that.playerRoom[playerID]
	if !ok {
		return nil, false
	}

	room, ok := that.rooms[roomID]
	if !ok {
		return nil, false
	}

	return room.Clone(), true
}

// WithRoom runs fn on the named room under the registry lock, serializing it
// against every other mutation of the same room. The returned room is a
// snapshot taken before the lock is released, so callers can marshal it
// without racing later handlers.
func (that *Registry) WithRoom(roomID string, fn func(room *entity.Room) error) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[roomID]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	if err := fn(room); err != nil {
		return nil, err
	}

	return room.Clone(), nil
}
