package room

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/parlorhub/gameroom-go/internal/dependencies/clock"
	"github.com/parlorhub/gameroom-go/internal/dependencies/random"
	"github.com/parlorhub/gameroom-go/internal/games"
	"github.com/parlorhub/gameroom-go/internal/model"
	"github.com/parlorhub/gameroom-go/internal/storage"
)

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 6
	// RoomCodeAlphabet is the characters used in room codes (avoid confusing chars)
	RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// DisconnectGracePeriod is how long a seated player may stay
	// disconnected before the game is forfeited
	DisconnectGracePeriod = 2 * time.Minute
)

// MoveError marks a move the engine rejected, as opposed to a failure
// of the platform itself. The wrapped message is user-facing.
type MoveError struct {
	Err error
}

func (e *MoveError) Error() string { return e.Err.Error() }
func (e *MoveError) Unwrap() error { return e.Err }

// Controller manages rooms and drives games through their engines. All
// mutations of one room run under that room's lock, so concurrent moves
// are applied one at a time against the stored state.
type Controller struct {
	storage  storage.Storage
	registry *games.Registry
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger

	locks sync.Map // model.RoomCode -> *sync.Mutex
}

// NewController creates a new room Controller
func NewController(
	storage storage.Storage,
	registry *games.Registry,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:  storage,
		registry: registry,
		clock:    clock,
		random:   random,
		logger:   logger.With(slog.String("component", "room")),
	}
}

func (c *Controller) lock(code model.RoomCode) func() {
	mu, _ := c.locks.LoadOrStore(code, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
	return mu.(*sync.Mutex).Unlock
}

// CreateRoom creates a room hosting the given game type with the host
// seated as the first player
func (c *Controller) CreateRoom(ctx context.Context, host model.Player, gameType model.GameType) (*model.Room, error) {
	if !gameType.Valid() {
		return nil, model.ErrUnknownGameType
	}
	now := c.clock.Now()

	// Generate unique room code
	var code model.RoomCode
	for {
		code = model.RoomCode(c.random.String(RoomCodeLength, RoomCodeAlphabet))
		exists, err := c.storage.RoomExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	room := &model.Room{
		Code:     code,
		GameType: gameType,
		State:    model.RoomStateWaiting,
		HostID:   host.ID,
		Members: []model.RoomMember{
			{
				Player:   host,
				Role:     model.RolePlayer,
				JoinedAt: now,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("room created",
		slog.String("code", string(code)),
		slog.String("game", string(gameType)),
		slog.String("host", string(host.ID)))
	return room, nil
}

// GetRoom retrieves a room by code
func (c *Controller) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	return c.storage.GetRoom(ctx, code)
}

// ListRooms returns all live rooms
func (c *Controller) ListRooms(ctx context.Context) ([]*model.Room, error) {
	return c.storage.ListRooms(ctx)
}

// JoinRoom adds a player to a room. The second joiner takes the open
// seat; later joiners and anyone arriving mid-game become spectators.
// A member rejoining within the disconnect grace window reconnects.
func (c *Controller) JoinRoom(ctx context.Context, code model.RoomCode, player model.Player) (*model.Room, error) {
	defer c.lock(code)()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	now := c.clock.Now()

	if member := room.GetMember(player.ID); member != nil {
		if member.DisconnectedAt.IsZero() {
			return nil, model.ErrAlreadyInRoom
		}
		member.DisconnectedAt = time.Time{}
		room.UpdatedAt = now
		if err := c.storage.SaveRoom(ctx, room); err != nil {
			return nil, err
		}
		return room, nil
	}

	role := model.RoleSpectator
	if room.State == model.RoomStateWaiting && len(room.SeatedPlayers()) < 2 {
		role = model.RolePlayer
	}

	room.Members = append(room.Members, model.RoomMember{
		Player:   player,
		Role:     role,
		JoinedAt: now,
	})
	room.UpdatedAt = now

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// LeaveRoom removes a player from a room. A seated player leaving
// mid-game forfeits; when the last member leaves the room is deleted.
func (c *Controller) LeaveRoom(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error {
	defer c.lock(code)()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return err
	}

	member := room.GetMember(playerID)
	if member == nil {
		return model.ErrNotInRoom
	}
	wasSeated := member.Role == model.RolePlayer

	for i, m := range room.Members {
		if m.Player.ID == playerID {
			room.Members = append(room.Members[:i], room.Members[i+1:]...)
			break
		}
	}

	if len(room.Members) == 0 {
		return c.storage.DeleteRoom(ctx, code)
	}

	if room.HostID == playerID {
		room.HostID = room.Members[0].Player.ID
	}
	if wasSeated && room.State == model.RoomStatePlaying {
		c.forfeit(room, playerID, "left the game")
	}

	room.UpdatedAt = c.clock.Now()
	return c.storage.SaveRoom(ctx, room)
}

// Disconnect marks a member as disconnected, starting the grace window
func (c *Controller) Disconnect(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error {
	defer c.lock(code)()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return err
	}
	member := room.GetMember(playerID)
	if member == nil {
		return model.ErrNotInRoom
	}
	if member.DisconnectedAt.IsZero() {
		member.DisconnectedAt = c.clock.Now()
		room.UpdatedAt = member.DisconnectedAt
	}
	return c.storage.SaveRoom(ctx, room)
}

// Reconnect clears a member's disconnect marker
func (c *Controller) Reconnect(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error {
	defer c.lock(code)()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return err
	}
	member := room.GetMember(playerID)
	if member == nil {
		return model.ErrNotInRoom
	}
	member.DisconnectedAt = time.Time{}
	room.UpdatedAt = c.clock.Now()
	return c.storage.SaveRoom(ctx, room)
}

// ExpireDisconnected drops members whose grace window has passed. A
// seated player expiring mid-game forfeits to their opponent.
func (c *Controller) ExpireDisconnected(ctx context.Context, code model.RoomCode) error {
	defer c.lock(code)()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return err
	}
	now := c.clock.Now()

	var kept []model.RoomMember
	changed := false
	for _, m := range room.Members {
		if !m.DisconnectedAt.IsZero() && now.Sub(m.DisconnectedAt) >= DisconnectGracePeriod {
			changed = true
			if m.Role == model.RolePlayer && room.State == model.RoomStatePlaying {
				c.forfeit(room, m.Player.ID, "disconnected")
			}
			c.logger.Info("member expired after disconnect",
				slog.String("code", string(code)),
				slog.String("player", string(m.Player.ID)))
			continue
		}
		kept = append(kept, m)
	}
	if !changed {
		return nil
	}

	room.Members = kept
	if len(room.Members) == 0 {
		return c.storage.DeleteRoom(ctx, code)
	}
	if room.GetMember(room.HostID) == nil {
		room.HostID = room.Members[0].Player.ID
	}
	room.UpdatedAt = now
	return c.storage.SaveRoom(ctx, room)
}

// forfeit ends the current game in favor of the departing player's
// opponent. No-op if the opponent also left.
func (c *Controller) forfeit(room *model.Room, leaving model.PlayerID, how string) {
	for _, m := range room.SeatedPlayers() {
		if m.Player.ID == leaving {
			continue
		}
		room.Outcome = model.Win(m.Player.ID, fmt.Sprintf("%s %s", leaving, how))
		room.State = model.RoomStateFinished
		room.GamesPlayed++
		return
	}
	room.State = model.RoomStateFinished
}

// StartGame begins a game. Host only, two seated players required.
func (c *Controller) StartGame(ctx context.Context, code model.RoomCode, requestingPlayer model.PlayerID) (*model.Room, error) {
	defer c.lock(code)()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	if room.HostID != requestingPlayer {
		return nil, model.ErrNotHost
	}
	if room.State == model.RoomStatePlaying {
		return nil, model.ErrGameInProgress
	}

	seated := room.SeatedPlayers()
	if len(seated) != 2 {
		return nil, model.ErrNeedTwoPlayers
	}

	game, ok := c.registry.Get(room.GameType)
	if !ok {
		return nil, model.ErrUnknownGameType
	}

	state, err := game.Init([2]model.PlayerID{seated[0].Player.ID, seated[1].Player.ID})
	if err != nil {
		return nil, err
	}

	room.GameState = state
	room.State = model.RoomStatePlaying
	room.Outcome = nil
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("game started",
		slog.String("code", string(code)),
		slog.String("game", string(room.GameType)))
	return room, nil
}

// PlayMove runs one move through the engine: validate, apply, check for
// a winner, persist. An invalid move leaves the room untouched and
// returns the engine's rejection.
func (c *Controller) PlayMove(ctx context.Context, code model.RoomCode, playerID model.PlayerID, w model.WireMove) (*model.Room, error) {
	defer c.lock(code)()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	if room.State != model.RoomStatePlaying {
		// A finished room still holds its last game; moving into it is
		// a rejection of the move, not a missing game
		if room.State == model.RoomStateFinished && len(room.GameState) > 0 {
			return nil, model.ErrGameOver
		}
		return nil, model.ErrNoGameInProgress
	}

	game, ok := c.registry.Get(room.GameType)
	if !ok {
		return nil, model.ErrUnknownGameType
	}

	if err := game.Validate(room.GameState, playerID, w); err != nil {
		return nil, &MoveError{Err: err}
	}

	next, err := game.Apply(room.GameState, playerID, w)
	if err != nil {
		return nil, err
	}
	room.GameState = next

	outcome, err := game.Winner(next)
	if err != nil {
		return nil, err
	}
	if outcome != nil {
		room.Outcome = outcome
		room.State = model.RoomStateFinished
		room.GamesPlayed++
		c.logger.Info("game finished",
			slog.String("code", string(code)),
			slog.String("reason", outcome.Reason))
	}

	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// Restart begins a fresh game in a finished room with the same seats.
// Host only.
func (c *Controller) Restart(ctx context.Context, code model.RoomCode, requestingPlayer model.PlayerID) (*model.Room, error) {
	defer c.lock(code)()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	if room.HostID != requestingPlayer {
		return nil, model.ErrNotHost
	}
	if room.State == model.RoomStatePlaying {
		return nil, model.ErrGameInProgress
	}

	seated := room.SeatedPlayers()
	if len(seated) != 2 {
		return nil, model.ErrNeedTwoPlayers
	}

	game, ok := c.registry.Get(room.GameType)
	if !ok {
		return nil, model.ErrUnknownGameType
	}

	state, err := game.Init([2]model.PlayerID{seated[0].Player.ID, seated[1].Player.ID})
	if err != nil {
		return nil, err
	}

	room.GameState = state
	room.State = model.RoomStatePlaying
	room.Outcome = nil
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// View returns the payload the given viewer is entitled to see for the
// room's current game
func (c *Controller) View(ctx context.Context, code model.RoomCode, viewer model.PlayerID) (any, error) {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(room.GameState) == 0 {
		return nil, model.ErrNoGameInProgress
	}

	game, ok := c.registry.Get(room.GameType)
	if !ok {
		return nil, model.ErrUnknownGameType
	}
	return game.View(room.GameState, viewer)
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateRoom(ctx context.Context, host model.Player, gameType model.GameType) (*model.Room, error)
	GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error)
	ListRooms(ctx context.Context) ([]*model.Room, error)
	JoinRoom(ctx context.Context, code model.RoomCode, player model.Player) (*model.Room, error)
	LeaveRoom(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error
	Disconnect(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error
	Reconnect(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error
	ExpireDisconnected(ctx context.Context, code model.RoomCode) error
	StartGame(ctx context.Context, code model.RoomCode, requestingPlayer model.PlayerID) (*model.Room, error)
	PlayMove(ctx context.Context, code model.RoomCode, playerID model.PlayerID, w model.WireMove) (*model.Room, error)
	Restart(ctx context.Context, code model.RoomCode, requestingPlayer model.PlayerID) (*model.Room, error)
	View(ctx context.Context, code model.RoomCode, viewer model.PlayerID) (any, error)
}

var _ ControllerInterface = (*Controller)(nil)
