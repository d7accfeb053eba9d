package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Room errors
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomFull         = errors.New("both seats are taken")
	ErrAlreadyInRoom    = errors.New("player is already in the room")
	ErrNotInRoom        = errors.New("player is not in the room")
	ErrNotHost          = errors.New("player is not the host")
	ErrGameInProgress   = errors.New("a game is already in progress")
	ErrNoGameInProgress = errors.New("no game in progress")
	ErrNeedTwoPlayers   = errors.New("two seated players are required to start")
	ErrUnknownGameType  = errors.New("unknown game type")

	// Move validation errors shared by every engine. These messages are
	// user-facing and rendered directly by clients.
	ErrGameOver    = errors.New("The game is already over")
	ErrNotInGame   = errors.New("You are not a player in this game")
	ErrNotYourTurn = errors.New("It is not your turn")
	ErrBadMove     = errors.New("Unrecognized move")
)
