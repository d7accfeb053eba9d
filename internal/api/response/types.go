package response

import (
	"github.com/parlorhub/gameroom-go/internal/model"
	"github.com/parlorhub/gameroom-go/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// RoomMember represents a room member
type RoomMember struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	IsHost      bool   `json:"is_host"`
	Connected   bool   `json:"connected"`
}

// Outcome represents a finished game's result
type Outcome struct {
	Winner *string `json:"winner"`
	Reason string  `json:"reason,omitempty"`
}

// OutcomeFromModel converts model.Outcome
func OutcomeFromModel(o *model.Outcome) *Outcome {
	if o == nil {
		return nil
	}
	var winner *string
	if o.Winner != nil {
		w := string(*o.Winner)
		winner = &w
	}
	return &Outcome{Winner: winner, Reason: o.Reason}
}

// Room represents a room in API responses. The game state itself is
// never included; clients fetch their view from the game endpoint.
type Room struct {
	Code        string       `json:"code"`
	GameType    string       `json:"game_type"`
	State       string       `json:"state"`
	HostID      string       `json:"host_id"`
	Members     []RoomMember `json:"members"`
	GamesPlayed int          `json:"games_played"`
	Outcome     *Outcome     `json:"outcome,omitempty"`
}

// RoomFromModel converts model.Room
func RoomFromModel(r *model.Room) Room {
	members := make([]RoomMember, len(r.Members))
	for i, m := range r.Members {
		members[i] = RoomMember{
			PlayerID:    string(m.Player.ID),
			DisplayName: m.Player.DisplayName,
			Role:        string(m.Role),
			IsHost:      m.Player.ID == r.HostID,
			Connected:   m.DisconnectedAt.IsZero(),
		}
	}
	return Room{
		Code:        string(r.Code),
		GameType:    string(r.GameType),
		State:       string(r.State),
		HostID:      string(r.HostID),
		Members:     members,
		GamesPlayed: r.GamesPlayed,
		Outcome:     OutcomeFromModel(r.Outcome),
	}
}

// RoomList is the response for listing rooms
type RoomList struct {
	Rooms []Room `json:"rooms"`
}

// RoomListFromModel converts a slice of rooms
func RoomListFromModel(rooms []*model.Room) RoomList {
	out := RoomList{Rooms: make([]Room, len(rooms))}
	for i, r := range rooms {
		out.Rooms[i] = RoomFromModel(r)
	}
	return out
}

// GameView is the response for game state endpoints. View is the
// engine's viewer-specific payload and its shape depends on the game.
type GameView struct {
	Room Room `json:"room"`
	View any  `json:"view"`
}

// GameTypeList is the response for listing hosted game types
type GameTypeList struct {
	GameTypes []string `json:"game_types"`
}
