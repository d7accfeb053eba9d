package games

import (
	"github.com/parlorhub/gameroom-go/internal/dependencies/random"
	"github.com/parlorhub/gameroom-go/internal/model"
)

// Table is the seat and turn header embedded in every engine state.
// Players is seat-indexed; seat meaning (color, direction, dealer) is
// up to each engine. Once WinnerID or EndReason is set the state is
// terminal and stays terminal.
type Table struct {
	Players   [2]model.PlayerID `json:"players"`
	Turn      model.Seat        `json:"turn"`
	WinnerID  *model.PlayerID   `json:"winner"`
	EndReason string            `json:"endReason,omitempty"`
}

// NewTable randomly assigns the two players to seats. The caller sets
// Turn to the game's canonical first mover afterwards (seat 0 by
// convention: white, black-in-go, red, dealer's opponent, ...).
func NewTable(rnd random.Random, players [2]model.PlayerID) Table {
	if rnd.Intn(2) == 1 {
		players[0], players[1] = players[1], players[0]
	}
	return Table{Players: players}
}

// Header lets boxed code reach the table on any engine state
func (t *Table) Header() *Table { return t }

// Over reports whether the game has ended. Draws carry a reason with a
// nil winner, so either field being set means terminal.
func (t *Table) Over() bool {
	return t.WinnerID != nil || t.EndReason != ""
}

// SeatOf returns the seat held by the given player
func (t *Table) SeatOf(p model.PlayerID) (model.Seat, bool) {
	for seat, id := range t.Players {
		if id == p {
			return model.Seat(seat), true
		}
	}
	return 0, false
}

// Player returns the player holding the given seat
func (t *Table) Player(s model.Seat) model.PlayerID {
	return t.Players[s]
}

// ToMove returns the player whose turn it is
func (t *Table) ToMove() model.PlayerID {
	return t.Players[t.Turn]
}

// CheckPlayer rejects moves on finished games and moves from viewers who
// hold neither seat. First check in every engine's Validate.
func (t *Table) CheckPlayer(p model.PlayerID) error {
	if t.Over() {
		return model.ErrGameOver
	}
	if _, ok := t.SeatOf(p); !ok {
		return model.ErrNotInGame
	}
	return nil
}

// CheckTurn is CheckPlayer plus the strict alternating-turn check used
// by every engine without out-of-turn phases.
func (t *Table) CheckTurn(p model.PlayerID) error {
	if err := t.CheckPlayer(p); err != nil {
		return err
	}
	if t.ToMove() != p {
		return model.ErrNotYourTurn
	}
	return nil
}

// Win marks the game won by the given seat
func (t *Table) Win(s model.Seat, reason string) {
	id := t.Players[s]
	t.WinnerID = &id
	t.EndReason = reason
}

// Drawn marks the game drawn
func (t *Table) Drawn(reason string) {
	t.WinnerID = nil
	t.EndReason = reason
}

// Outcome returns the terminal result, or nil while the game is ongoing
func (t *Table) Outcome() *model.Outcome {
	if !t.Over() {
		return nil
	}
	return &model.Outcome{Winner: t.WinnerID, Reason: t.EndReason}
}

// SpectatorView is the minimal payload sent to viewers holding neither
// seat: status, seat-to-player mapping and scores, nothing hidden.
type SpectatorView struct {
	Status    string            `json:"status"`
	Players   [2]model.PlayerID `json:"players"`
	Scores    [2]int            `json:"scores"`
	Winner    *model.PlayerID   `json:"winner"`
	EndReason string            `json:"endReason,omitempty"`
}

// Spectate builds the minimal spectator view from a state header
func Spectate(t *Table, status string, scores [2]int) SpectatorView {
	return SpectatorView{
		Status:    status,
		Players:   t.Players,
		Scores:    scores,
		Winner:    t.WinnerID,
		EndReason: t.EndReason,
	}
}

// Shuffle performs a Fisher-Yates shuffle over n elements using the
// injected random source
func Shuffle(rnd random.Random, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		swap(i, j)
	}
}

// RollDie rolls a standard six-sided die
func RollDie(rnd random.Random) int {
	return rnd.Intn(6) + 1
}
