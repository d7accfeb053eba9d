package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/parlorhub/gameroom-go/internal/api/middleware"
	"github.com/parlorhub/gameroom-go/internal/api/request"
	"github.com/parlorhub/gameroom-go/internal/api/response"
	"github.com/parlorhub/gameroom-go/internal/events"
	"github.com/parlorhub/gameroom-go/internal/model"
	"github.com/parlorhub/gameroom-go/internal/services/room"
)

// RoomHandler handles room membership endpoints
type RoomHandler struct {
	controller  room.ControllerInterface
	broadcaster *events.Broadcaster
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(controller room.ControllerInterface, broadcaster *events.Broadcaster) *RoomHandler {
	return &RoomHandler{
		controller:  controller,
		broadcaster: broadcaster,
	}
}

// roomCode extracts the room code path variable
func roomCode(r *http.Request) model.RoomCode {
	return model.RoomCode(mux.Vars(r)["code"])
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.GameType == "" {
		WriteError(w, NewInvalidRequestError("game_type is required"))
		return
	}

	created, err := h.controller.CreateRoom(r.Context(), *player, model.GameType(req.GameType))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoomFromModel(created))
}

// List handles GET /api/v1/rooms
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.controller.ListRooms(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RoomListFromModel(rooms))
}

// Get handles GET /api/v1/rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.controller.GetRoom(r.Context(), roomCode(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RoomFromModel(found))
}

// Join handles POST /api/v1/rooms/{code}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	joined, err := h.controller.JoinRoom(r.Context(), roomCode(r), *player)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcaster.RoomUpdated(joined)
	response.JSON(w, http.StatusOK, response.RoomFromModel(joined))
}

// Leave handles POST /api/v1/rooms/{code}/leave
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := roomCode(r)

	if err := h.controller.LeaveRoom(r.Context(), code, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	// The last member leaving deletes the room
	left, err := h.controller.GetRoom(r.Context(), code)
	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		h.broadcaster.RoomClosed(code)
	case err == nil:
		h.broadcaster.RoomUpdated(left)
		if left.State == model.RoomStateFinished && left.Outcome != nil {
			h.broadcaster.GameFinished(left)
		}
	}

	response.NoContent(w)
}
