package request

import "github.com/parlorhub/gameroom-go/internal/model"

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	GameType string `json:"game_type"`
}

// PlayMoveRequest is the request body for playing a move. Engines read
// the fields they need: board games use to (and from for piece moves),
// chess may add promotion.
type PlayMoveRequest struct {
	From      model.Position `json:"from"`
	To        model.Position `json:"to"`
	Promotion string         `json:"promotion,omitempty"`
}

// Move converts the request into the engine wire shape
func (r PlayMoveRequest) Move() model.WireMove {
	return model.WireMove{
		From:      r.From,
		To:        r.To,
		Promotion: r.Promotion,
	}
}
