package cli

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dancojocaru2000/ttt-server/internal/api/response"
	"github.com/dancojocaru2000/ttt-server/internal/model"
)

func newGameCmd() *cobra.Command {
	gameCmd := &cobra.Command{
		Use:   "game",
		Short: "Manage games",
	}

	gameCmd.AddCommand(newGameListCmd())
	gameCmd.AddCommand(newGameGetCmd())
	gameCmd.AddCommand(newGameCreateCmd())

	return gameCmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var result response.GamesResponse
			if err := client.Get("/api/games", &result); err != nil {
				out.PrintError(err)
				return err
			}

			return out.Print(result)
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game-id>",
		Short: "Get a game by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var result response.GameResponse
			if err := client.Get("/api/game/"+args[0], &result); err != nil {
				out.PrintError(err)
				return err
			}

			return out.Print(result)
		},
	}
}

func newGameCreateCmd() *cobra.Command {
	var playerX, playerO string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game record",
		Long: `Create a new game record with no moves. Player IDs are
optional; a local game with anonymous players is the default.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			game := model.Game{
				ID:        model.GameID(uuid.NewString()),
				State:     model.GameStateMovingX,
				Moves:     []model.Move{},
				StartTime: time.Now().UTC().Format(time.RFC3339),
				Players: model.Players{
					X: model.UserID(playerX),
					O: model.UserID(playerO),
				},
			}

			var result response.GameResponse
			if err := client.Post("/api/game", game, &result); err != nil {
				out.PrintError(err)
				return err
			}

			return out.Print(result)
		},
	}

	cmd.Flags().StringVar(&playerX, "player-x", "", "User ID playing X")
	cmd.Flags().StringVar(&playerO, "player-o", "", "User ID playing O")

	return cmd
}
