package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Room:
		o.printRoom(v)
	case RoomList:
		o.printRoomList(v)
	case GameView:
		o.printGameView(v)
	case GameTypeList:
		o.printGameTypeList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// RoomMember response type
type RoomMember struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	IsHost      bool   `json:"is_host"`
	Connected   bool   `json:"connected"`
}

// Outcome response type
type Outcome struct {
	Winner *string `json:"winner"`
	Reason string  `json:"reason,omitempty"`
}

// Room response type
type Room struct {
	Code        string       `json:"code"`
	GameType    string       `json:"game_type"`
	State       string       `json:"state"`
	HostID      string       `json:"host_id"`
	Members     []RoomMember `json:"members"`
	GamesPlayed int          `json:"games_played"`
	Outcome     *Outcome     `json:"outcome,omitempty"`
}

// RoomList response type
type RoomList struct {
	Rooms []Room `json:"rooms"`
}

// GameView response type. The view payload's shape depends on the game,
// so it is kept as raw JSON and rendered generically.
type GameView struct {
	Room Room            `json:"room"`
	View json.RawMessage `json:"view"`
}

// GameTypeList response type
type GameTypeList struct {
	GameTypes []string `json:"game_types"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("Room: %s\n", r.Code)
	fmt.Printf("Game: %s\n", r.GameType)
	fmt.Printf("State: %s\n", r.State)
	if r.GamesPlayed > 0 {
		fmt.Printf("Games Played: %d\n", r.GamesPlayed)
	}
	if r.Outcome != nil {
		if r.Outcome.Winner != nil {
			fmt.Printf("Winner: %s\n", *r.Outcome.Winner)
		} else {
			fmt.Println("Result: draw")
		}
		if r.Outcome.Reason != "" {
			fmt.Printf("Reason: %s\n", r.Outcome.Reason)
		}
	}
	fmt.Printf("Members (%d):\n", len(r.Members))
	for _, m := range r.Members {
		hostStr := ""
		if m.IsHost {
			hostStr = " [host]"
		}
		connStr := ""
		if !m.Connected {
			connStr = " (disconnected)"
		}
		fmt.Printf("  - %s (%s) - %s%s%s\n", m.DisplayName, m.PlayerID, m.Role, hostStr, connStr)
	}
}

func (o *Output) printRoomList(l RoomList) {
	if len(l.Rooms) == 0 {
		fmt.Println("No rooms")
		return
	}
	for _, r := range l.Rooms {
		fmt.Printf("%s  %-14s %-9s %d member(s)\n", r.Code, r.GameType, r.State, len(r.Members))
	}
}

func (o *Output) printGameView(g GameView) {
	o.printRoom(g.Room)

	if len(g.View) == 0 {
		return
	}

	// Many games carry a grid under a "board" key; render it as a grid
	// when we can, otherwise fall back to pretty JSON.
	var generic struct {
		Board [][]string `json:"board"`
	}
	if err := json.Unmarshal(g.View, &generic); err == nil && len(generic.Board) > 0 {
		fmt.Println("\nBoard:")
		printBoard(generic.Board)
		return
	}

	fmt.Println("\nView:")
	var pretty any
	if err := json.Unmarshal(g.View, &pretty); err != nil {
		fmt.Println(string(g.View))
		return
	}
	data, _ := json.MarshalIndent(pretty, "  ", "  ")
	fmt.Printf("  %s\n", string(data))
}

func printBoard(cells [][]string) {
	if len(cells) == 0 {
		return
	}
	width := len(cells[0])

	// Print column headers
	fmt.Print("    ")
	for col := 0; col < width; col++ {
		fmt.Printf("%2d ", col)
	}
	fmt.Println()

	// Print top border
	fmt.Print("   +")
	for col := 0; col < width; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")

	// Print rows
	for row := range cells {
		fmt.Printf("%2d |", row)
		for col := 0; col < len(cells[row]); col++ {
			cell := cells[row][col]
			if cell == "" {
				fmt.Print(" . ")
			} else {
				fmt.Printf("%2s ", cell)
			}
		}
		fmt.Println("|")
	}

	// Print bottom border
	fmt.Print("   +")
	for col := 0; col < width; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")
}

func (o *Output) printGameTypeList(l GameTypeList) {
	fmt.Printf("Game types (%d):\n", len(l.GameTypes))
	for _, t := range l.GameTypes {
		fmt.Printf("  - %s\n", t)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
