package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/parlorhub/gameroom-go/internal/api/middleware"
	"github.com/parlorhub/gameroom-go/internal/api/request"
	"github.com/parlorhub/gameroom-go/internal/api/response"
	"github.com/parlorhub/gameroom-go/internal/events"
	"github.com/parlorhub/gameroom-go/internal/model"
	"github.com/parlorhub/gameroom-go/internal/services/room"
)

// GameHandler handles in-room game endpoints
type GameHandler struct {
	controller  room.ControllerInterface
	broadcaster *events.Broadcaster
	hubManager  *events.HubManager
}

// NewGameHandler creates a new game handler
func NewGameHandler(controller room.ControllerInterface, broadcaster *events.Broadcaster, hubManager *events.HubManager) *GameHandler {
	return &GameHandler{
		controller:  controller,
		broadcaster: broadcaster,
		hubManager:  hubManager,
	}
}

// ListTypes handles GET /api/v1/games
func (h *GameHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types := make([]string, len(model.AllGameTypes))
	for i, t := range model.AllGameTypes {
		types[i] = string(t)
	}
	response.JSON(w, http.StatusOK, response.GameTypeList{GameTypes: types})
}

// Start handles POST /api/v1/rooms/{code}/game
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	started, err := h.controller.StartGame(r.Context(), roomCode(r), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.RoomUpdated(started)
	h.broadcaster.GameStarted(started)
	response.JSON(w, http.StatusOK, response.RoomFromModel(started))
}

// Get handles GET /api/v1/rooms/{code}/game
// The view is specific to the requesting player; spectators and
// opponents may see less than the mover does.
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := roomCode(r)

	current, err := h.controller.GetRoom(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}
	view, err := h.controller.View(r.Context(), code, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameView{
		Room: response.RoomFromModel(current),
		View: view,
	})
}

// Move handles POST /api/v1/rooms/{code}/game/moves
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := roomCode(r)

	var req request.PlayMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	played, err := h.controller.PlayMove(r.Context(), code, player.ID, req.Move())
	if err != nil {
		WriteError(w, err)
		return
	}

	if played.State == model.RoomStateFinished {
		h.broadcaster.GameFinished(played)
		h.broadcaster.RoomUpdated(played)
	} else {
		h.broadcaster.GameUpdated(played)
	}

	view, err := h.controller.View(r.Context(), code, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameView{
		Room: response.RoomFromModel(played),
		View: view,
	})
}

// Restart handles POST /api/v1/rooms/{code}/game/restart
func (h *GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	restarted, err := h.controller.Restart(r.Context(), roomCode(r), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.RoomUpdated(restarted)
	h.broadcaster.GameStarted(restarted)
	response.JSON(w, http.StatusOK, response.RoomFromModel(restarted))
}

// Events handles GET /api/v1/rooms/{code}/events
// Streams room and game updates over SSE until the client disconnects.
// Connecting clears the player's disconnect marker; dropping the stream
// starts the grace window.
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := roomCode(r)

	current, err := h.controller.GetRoom(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}
	if current.GetMember(player.ID) == nil {
		WriteError(w, model.ErrNotInRoom)
		return
	}

	if err := h.controller.Reconnect(r.Context(), code, player.ID); err == nil {
		if updated, err := h.controller.GetRoom(r.Context(), code); err == nil {
			h.broadcaster.RoomUpdated(updated)
		}
	}

	hub := h.hubManager.GetOrCreateHub(code)

	defer func() {
		// The request context is gone by now
		ctx := context.Background()
		if err := h.controller.Disconnect(ctx, code, player.ID); err == nil {
			if updated, err := h.controller.GetRoom(ctx, code); err == nil {
				h.broadcaster.RoomUpdated(updated)
			}
		}
	}()

	events.ServeSSE(w, r, hub, player.ID)
}
