package model

// GameType identifies one of the hosted rule engines
type GameType string

const (
	GameChess        GameType = "chess"
	GameGo           GameType = "go"
	GameBackgammon   GameType = "backgammon"
	GameCribbage     GameType = "cribbage"
	GameCheckers     GameType = "checkers"
	GameConnectFour  GameType = "connect4"
	GameReversi      GameType = "reversi"
	GameTicTacToe    GameType = "tictactoe"
	GameGomoku       GameType = "gomoku"
	GameMancala      GameType = "mancala"
	GameDotsAndBoxes GameType = "dotsandboxes"
	GameNavalBattle  GameType = "navalbattle"
)

// AllGameTypes lists every hosted game
var AllGameTypes = []GameType{
	GameChess, GameGo, GameBackgammon, GameCribbage,
	GameCheckers, GameConnectFour, GameReversi, GameTicTacToe,
	GameGomoku, GameMancala, GameDotsAndBoxes, GameNavalBattle,
}

// Valid returns true if the game type is one of the hosted games
func (g GameType) Valid() bool {
	for _, t := range AllGameTypes {
		if g == t {
			return true
		}
	}
	return false
}

// Seat identifies one of the two sides of a game. What a seat means
// (color, direction, dealer) is up to each engine.
type Seat int

const (
	SeatOne Seat = 0
	SeatTwo Seat = 1
)

// Other returns the opposing seat
func (s Seat) Other() Seat {
	return 1 - s
}

// Position identifies a cell on a board
type Position struct {
	Row int `json:"row"` // 0-indexed from top
	Col int `json:"col"` // 0-indexed from left
}

// WireMove is the transport shape of a move as received from clients.
// Each engine translates it into its own tagged move type in ParseMove;
// sentinel values (row -1 for pass/acknowledge, point 0 for the bar or
// bearing off) only exist in this shape, never inside an engine.
type WireMove struct {
	From      Position `json:"from"`
	To        Position `json:"to"`
	Promotion string   `json:"promotion,omitempty"` // chess promotion piece
}

// Outcome is a terminal game result. A nil Winner with a non-empty
// Reason denotes a draw.
type Outcome struct {
	Winner *PlayerID `json:"winner"`
	Reason string    `json:"reason,omitempty"`
}

// Draw builds a drawn outcome
func Draw(reason string) *Outcome {
	return &Outcome{Winner: nil, Reason: reason}
}

// Win builds a won outcome for the given player
func Win(winner PlayerID, reason string) *Outcome {
	return &Outcome{Winner: &winner, Reason: reason}
}
