package model

import (
	"encoding/json"
	"time"
)

// RoomCode is a human-readable identifier for joining rooms
type RoomCode string

// RoomState represents the current state of a room
type RoomState string

const (
	RoomStateWaiting  RoomState = "waiting"  // Waiting for a second player
	RoomStatePlaying  RoomState = "playing"  // Game in progress
	RoomStateFinished RoomState = "finished" // Game over, room can restart
)

// RoomMemberRole distinguishes the two seated players from spectators
type RoomMemberRole string

const (
	RolePlayer    RoomMemberRole = "player"
	RoleSpectator RoomMemberRole = "spectator"
)

// RoomMember represents a player's membership in a room
type RoomMember struct {
	Player   Player
	Role     RoomMemberRole
	JoinedAt time.Time

	// DisconnectedAt is non-zero while the member is in the disconnect
	// grace window. Cleared on reconnect.
	DisconnectedAt time.Time
}

// Room hosts one game type and at most one active game at a time
type Room struct {
	Code     RoomCode
	GameType GameType
	State    RoomState
	Members  []RoomMember
	HostID   PlayerID

	// GameState is the engine state encoded as JSON, decoded through the
	// engine registry using GameType. Empty while waiting.
	GameState json.RawMessage

	// Outcome of the current game, set once Winner reports terminal
	Outcome *Outcome

	GamesPlayed int // Completed games in this room (for restarts)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GetMember returns the member with the given player ID, or nil
func (r *Room) GetMember(playerID PlayerID) *RoomMember {
	for i := range r.Members {
		if r.Members[i].Player.ID == playerID {
			return &r.Members[i]
		}
	}
	return nil
}

// SeatedPlayers returns the members holding the player role, in join order
func (r *Room) SeatedPlayers() []RoomMember {
	var players []RoomMember
	for _, m := range r.Members {
		if m.Role == RolePlayer {
			players = append(players, m)
		}
	}
	return players
}

// Spectators returns all members with the spectator role
func (r *Room) Spectators() []RoomMember {
	var spectators []RoomMember
	for _, m := range r.Members {
		if m.Role == RoleSpectator {
			spectators = append(spectators, m)
		}
	}
	return spectators
}

// IsSeated returns true if the given player holds one of the two seats
func (r *Room) IsSeated(playerID PlayerID) bool {
	m := r.GetMember(playerID)
	return m != nil && m.Role == RolePlayer
}
