package websocket

import (
	"errors"

	"github.com/twentyfourlab/twentyfour-backend/internal/apperror"
	"github.com/twentyfourlab/twentyfour-backend/internal/entity"
	"github.com/twentyfourlab/twentyfour-backend/internal/expression"
	"github.com/twentyfourlab/twentyfour-backend/internal/game"
	"github.com/twentyfourlab/twentyfour-backend/internal/registry"
)

func (that *Server) handleJoinRoom(conn *connection, payload *Payload) error {
	log := that.logger.With("method", "handleJoinRoom", "playerID", conn.playerID)

	room, err := that.registry.Join(registry.JoinParams{
		RoomID:     payload.RoomID,
		RoomName:   payload.RoomName,
		Password:   payload.Password,
		MaxPlayers: payload.MaxPlayers,
		PlayerID:   conn.playerID,
		PlayerName: payload.PlayerName,
	})

	// a distinct signal so the client can re-prompt for the password
	if errors.Is(err, apperror.ErrPasswordRequired) {
		return that.send(conn, eventNeedRoomPassword, payload.RoomID)
	}

	if err != nil {
		log.Error("failed to join room", "roomID", payload.RoomID, "error", err)
		return that.sendError(conn, err.Error())
	}

	if err = that.send(conn, eventJoinRoomSuccess, room); err != nil {
		return err
	}

	that.broadcast(room, eventRoomUpdate, room)

	log.Info("player joined room", "roomID", room.RoomID)

	return nil
}

func (that *Server) handleReadyGame(conn *connection, payload *Payload) error {
	room, err := that.registry.ToggleReady(payload.RoomID, conn.playerID)
	if err != nil {
		return that.sendError(conn, err.Error())
	}

	that.broadcast(room, eventRoomUpdate, room)

	return nil
}

func (that *Server) handleStartGame(conn *connection, payload *Payload) error {
	log := that.logger.With("method", "handleStartGame", "playerID", conn.playerID)

	room, err := that.registry.WithRoom(payload.RoomID, game.Start)
	if err != nil {
		log.Error("failed to start game", "roomID", payload.RoomID, "error", err)
		return that.sendError(conn, err.Error())
	}

	that.registry.RestartCountdown(room.RoomID)
	that.broadcast(room, eventStartGameSuccess, room)

	log.Info("game started", "roomID", room.RoomID)

	return nil
}

func (that *Server) handleSelectCard(conn *connection, payload *Payload) error {
	room, err := that.registry.WithRoom(payload.RoomID, func(room *entity.Room) error {
		selected, selectErr := expression.Select(room.SelectedCards, payload.Number, payload.Symbol)
		if selectErr != nil {
			return selectErr
		}

		room.SelectedCards = selected

		return nil
	})
	// grammar rejections stay private to the initiator
	if err != nil {
		return that.sendError(conn, err.Error())
	}

	that.broadcast(room, eventRoomUpdate, room)

	return nil
}

func (that *Server) handleReselectCard(conn *connection, payload *Payload) error {
	room, err := that.registry.WithRoom(payload.RoomID, func(room *entity.Room) error {
		room.SelectedCards = expression.Reselect()
		return nil
	})
	if err != nil {
		return that.sendError(conn, err.Error())
	}

	that.broadcast(room, eventRoomUpdate, room)

	return nil
}

func (that *Server) handleBackCard(conn *connection, payload *Payload) error {
	room, err := that.registry.WithRoom(payload.RoomID, func(room *entity.Room) error {
		room.SelectedCards = expression.Back(room.SelectedCards)
		return nil
	})
	if err != nil {
		return that.sendError(conn, err.Error())
	}

	that.broadcast(room, eventRoomUpdate, room)

	return nil
}

func (that *Server) handlePlayCard(conn *connection, payload *Payload) error {
	log := that.logger.With("method", "handlePlayCard", "playerID", conn.playerID)

	var isCorrect bool

	room, err := that.registry.WithRoom(payload.RoomID, func(room *entity.Room) error {
		result, checkErr := game.CheckPlay(room, conn.playerID)
		if checkErr != nil {
			return checkErr
		}

		isCorrect = result

		return nil
	})
	if err != nil {
		log.Error("failed to check play", "roomID", payload.RoomID, "error", err)
		return that.sendError(conn, err.Error())
	}

	that.broadcast(room, eventPlayCardResponse, PlayCardResult{IsCorrect: isCorrect})
	that.broadcast(room, eventRoomUpdate, room)

	return nil
}

func (that *Server) handleUpdateAndDraw(conn *connection, payload *Payload) error {
	log := that.logger.With("method", "handleUpdateAndDraw", "playerID", conn.playerID)

	var winner *entity.Player

	room, err := that.registry.WithRoom(payload.RoomID, func(room *entity.Room) error {
		result, updateErr := game.UpdateScore(room, conn.playerID)
		if updateErr != nil {
			return updateErr
		}

		if result != nil {
			snapshot := *result
			winner = &snapshot
		}

		return nil
	})
	if err != nil {
		log.Error("failed to update score", "roomID", payload.RoomID, "error", err)
		return that.sendError(conn, err.Error())
	}

	that.finishTurn(room, winner)

	return nil
}

func (that *Server) handleDrawCard(conn *connection, payload *Payload) error {
	log := that.logger.With("method", "handleDrawCard", "playerID", conn.playerID)

	var winner *entity.Player

	room, err := that.registry.WithRoom(payload.RoomID, func(room *entity.Room) error {
		result, drawErr := game.Draw(room, conn.playerID, payload.Count)
		if drawErr != nil {
			return drawErr
		}

		if result != nil {
			snapshot := *result
			winner = &snapshot
		}

		return nil
	})
	if err != nil {
		log.Error("failed to draw card", "roomID", payload.RoomID, "error", err)
		return that.sendError(conn, err.Error())
	}

	that.finishTurn(room, winner)

	return nil
}

// finishTurn restarts the room's turn timer after a non-terminal draw; a
// declared winner ends the match and the timer with it.
func (that *Server) finishTurn(room *entity.Room, winner *entity.Player) {
	if winner != nil {
		that.registry.StopCountdown(room.RoomID)
		that.broadcast(room, eventGameOver, winner.Name)
	} else {
		that.registry.RestartCountdown(room.RoomID)
	}

	that.broadcast(room, eventRoomUpdate, room)
}

func (that *Server) handleDiscardCard(conn *connection, payload *Payload) error {
	room, err := that.registry.WithRoom(payload.RoomID, func(room *entity.Room) error {
		return game.Discard(room, conn.playerID, payload.CardID)
	})
	if err != nil {
		return that.sendError(conn, err.Error())
	}

	that.broadcast(room, eventRoomUpdate, room)

	return nil
}

// handleSortCard answers the sender privately: sorting a hand is not the
// room's business.
func (that *Server) handleSortCard(conn *connection, payload *Payload) error {
	room, err := that.registry.WithRoom(payload.RoomID, func(room *entity.Room) error {
		return game.SortHand(room, conn.playerID)
	})
	if err != nil {
		return that.sendError(conn, err.Error())
	}

	return that.send(conn, eventRoomUpdate, room)
}

func (that *Server) handleSearchRooms(conn *connection, payload *Payload) error {
	rooms := that.registry.Search(payload.RoomName, payload.OnlyNonFull)

	return that.send(conn, eventSearchRooms, rooms)
}

func (that *Server) handleSendMessage(conn *connection, payload *Payload) error {
	room, ok := that.registry.RoomByPlayer(conn.playerID)
	if !ok {
		return that.sendError(conn, apperror.ErrRoomNotFound.Error())
	}

	sender := room.PlayerByID(conn.playerID)
	if sender == nil {
		return that.sendError(conn, apperror.ErrPlayerNotFound.Error())
	}

	that.broadcast(room, eventGetMessage, ChatMessage{
		Name: sender.Name,
		Text: payload.Text,
	})

	return nil
}

func (that *Server) handleEditRoomName(conn *connection, payload *Payload) error {
	room, err := that.registry.EditRoomName(payload.RoomID, payload.RoomName)
	if err != nil {
		return that.sendError(conn, err.Error())
	}

	that.broadcast(room, eventRoomUpdate, room)

	return nil
}

func (that *Server) handleEditMaxPlayers(conn *connection, payload *Payload) error {
	room, err := that.registry.EditMaxPlayers(payload.RoomID, payload.MaxPlayers)
	if err != nil {
		return that.sendError(conn, err.Error())
	}

	that.broadcast(room, eventRoomUpdate, room)

	return nil
}

func (that *Server) handleEditRoomSettings(conn *connection, payload *Payload) error {
	settings := entity.RoomSettings{
		DeckType:      payload.DeckType,
		RemainSeconds: payload.RemainSeconds,
	}

	room, err := that.registry.EditSettings(payload.RoomID, settings)
	if err != nil {
		return that.sendError(conn, err.Error())
	}

	that.broadcast(room, eventRoomUpdate, room)

	return nil
}

func (that *Server) handleRemovePlayer(conn *connection, payload *Payload) error {
	log := that.logger.With("method", "handleRemovePlayer", "playerID", conn.playerID)

	room, removed, err := that.registry.RemovePlayer(payload.RoomID, payload.PlayerID)
	if err != nil {
		log.Error("failed to remove player", "roomID", payload.RoomID, "error", err)
		return that.sendError(conn, err.Error())
	}

	if room == nil {
		return nil
	}

	that.broadcast(room, eventPlayerLeaveRoom, removed.Name)
	that.broadcast(room, eventRoomUpdate, room)

	log.Info("player removed", "roomID", room.RoomID, "targetID", removed.ID)

	return nil
}
