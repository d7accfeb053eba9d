package events

import (
	"encoding/json"
	"log/slog"

	"github.com/parlorhub/gameroom-go/internal/games"
	"github.com/parlorhub/gameroom-go/internal/model"
)

// Broadcaster pushes room and game updates to SSE clients. Handlers
// call it after controller operations; controllers never broadcast.
type Broadcaster struct {
	hubManager *HubManager
	registry   *games.Registry
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, registry *games.Registry, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		registry:   registry,
		logger:     logger.With(slog.String("component", "broadcaster")),
	}
}

// memberPayload is the wire shape of one room member
type memberPayload struct {
	ID          model.PlayerID       `json:"id"`
	DisplayName string               `json:"displayName"`
	Role        model.RoomMemberRole `json:"role"`
	Connected   bool                 `json:"connected"`
}

// roomPayload is the wire shape of a room for room-update events.
// Game state is never included here; it goes out per viewer.
type roomPayload struct {
	Code        model.RoomCode  `json:"code"`
	GameType    model.GameType  `json:"gameType"`
	State       model.RoomState `json:"state"`
	HostID      model.PlayerID  `json:"hostId"`
	Members     []memberPayload `json:"members"`
	GamesPlayed int             `json:"gamesPlayed"`
	Outcome     *model.Outcome  `json:"outcome,omitempty"`
}

func roomToPayload(room *model.Room) roomPayload {
	members := make([]memberPayload, 0, len(room.Members))
	for _, m := range room.Members {
		members = append(members, memberPayload{
			ID:          m.Player.ID,
			DisplayName: m.Player.DisplayName,
			Role:        m.Role,
			Connected:   m.DisconnectedAt.IsZero(),
		})
	}
	return roomPayload{
		Code:        room.Code,
		GameType:    room.GameType,
		State:       room.State,
		HostID:      room.HostID,
		Members:     members,
		GamesPlayed: room.GamesPlayed,
		Outcome:     room.Outcome,
	}
}

// RoomUpdated broadcasts the room's membership and state to all clients
func (b *Broadcaster) RoomUpdated(room *model.Room) {
	hub := b.hubManager.GetHub(room.Code)
	if hub == nil {
		return
	}

	data, err := json.Marshal(roomToPayload(room))
	if err != nil {
		b.logger.Error("failed to encode room update",
			slog.String("room", string(room.Code)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent("room-update", string(data))
}

// GameStarted announces a new game and sends each viewer their opening view
func (b *Broadcaster) GameStarted(room *model.Room) {
	hub := b.hubManager.GetHub(room.Code)
	if hub == nil {
		return
	}

	// Direct send so the announcement cannot race the per-viewer views
	// below through the hub's broadcast queue
	hub.sendAll("game-started", string(room.GameType))
	b.sendViews(hub, room, "game-update")
}

// GameUpdated sends each connected viewer their view of the game after a
// move. Views differ per viewer because some games hide information, so
// nothing game-related is ever broadcast to the whole room.
func (b *Broadcaster) GameUpdated(room *model.Room) {
	hub := b.hubManager.GetHub(room.Code)
	if hub == nil {
		return
	}
	b.sendViews(hub, room, "game-update")
}

// GameFinished broadcasts the outcome and sends final per-viewer views
func (b *Broadcaster) GameFinished(room *model.Room) {
	hub := b.hubManager.GetHub(room.Code)
	if hub == nil {
		return
	}

	b.sendViews(hub, room, "game-update")

	data, err := json.Marshal(room.Outcome)
	if err != nil {
		b.logger.Error("failed to encode outcome",
			slog.String("room", string(room.Code)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent("game-over", string(data))
}

// RoomClosed tells all clients the room is gone and tears down its hub
func (b *Broadcaster) RoomClosed(code model.RoomCode) {
	hub := b.hubManager.GetHub(code)
	if hub == nil {
		return
	}
	hub.sendAll("room-closed", string(code))
	b.hubManager.RemoveHub(code)
}

func (b *Broadcaster) sendViews(hub *Hub, room *model.Room, eventName string) {
	if len(room.GameState) == 0 {
		return
	}
	game, ok := b.registry.Get(room.GameType)
	if !ok {
		b.logger.Error("no engine for game type",
			slog.String("room", string(room.Code)),
			slog.String("game", string(room.GameType)))
		return
	}

	for _, viewer := range hub.Viewers() {
		view, err := game.View(room.GameState, viewer)
		if err != nil {
			b.logger.Error("failed to build game view",
				slog.String("room", string(room.Code)),
				slog.String("player_id", string(viewer)),
				slog.Any("error", err))
			continue
		}
		data, err := json.Marshal(view)
		if err != nil {
			b.logger.Error("failed to encode game view",
				slog.String("room", string(room.Code)),
				slog.String("player_id", string(viewer)),
				slog.Any("error", err))
			continue
		}
		hub.SendEventTo(viewer, eventName, string(data))
	}
}
