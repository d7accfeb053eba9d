package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameTypesCmd())
	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameMoveCmd())
	cmd.AddCommand(newGameRestartCmd())

	return cmd
}

func newGameTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the game types the server hosts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameTypeList

			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <code>",
		Short: "Start the game (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			var result Room

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/game", code), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Get your view of the current game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			var result GameView

			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%s/game", code), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameMoveCmd() *cobra.Command {
	var from, to, promotion string

	cmd := &cobra.Command{
		Use:   "move <code>",
		Short: "Play a move",
		Long: `Play a move in the room's game.

Squares are given as row,col pairs. Placement games (tictactoe,
connect4, reversi, ...) only need --to; movement games (chess,
checkers, ...) need --from as well. Pawn promotion in chess takes
--promotion (queen, rook, bishop, knight).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			if to == "" {
				return fmt.Errorf("--to is required")
			}

			req := map[string]any{}

			toPos, err := parseSquare(to)
			if err != nil {
				return fmt.Errorf("invalid --to: %w", err)
			}
			req["to"] = toPos

			if from != "" {
				fromPos, err := parseSquare(from)
				if err != nil {
					return fmt.Errorf("invalid --from: %w", err)
				}
				req["from"] = fromPos
			}

			if promotion != "" {
				req["promotion"] = promotion
			}

			var result GameView

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/game/moves", code), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Source square as row,col")
	cmd.Flags().StringVar(&to, "to", "", "Target square as row,col (required)")
	cmd.Flags().StringVar(&promotion, "promotion", "", "Promotion piece (chess)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newGameRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart <code>",
		Short: "Start a rematch after a finished game (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			var result Room

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/game/restart", code), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

// parseSquare parses a "row,col" pair into a position payload
func parseSquare(s string) (map[string]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("expected row,col")
	}

	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid row: %w", err)
	}

	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid col: %w", err)
	}

	return map[string]int{"row": row, "col": col}, nil
}
