package apperror

import "errors"

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomIsFull       = errors.New("room is full")
	ErrRoomNameTaken    = errors.New("room name is already taken")
	ErrPasswordRequired = errors.New("room password required")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrAlreadyInRoom    = errors.New("player is already in the room")

	ErrGameIsNotStarted = errors.New("game is not started")
	ErrGameIsPlaying    = errors.New("game is already playing")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCardNotInHand    = errors.New("card is not in hand")

	ErrInvalidExpression = errors.New("invalid expression")
)
