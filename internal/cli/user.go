package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dancojocaru2000/ttt-server/internal/api/request"
	"github.com/dancojocaru2000/ttt-server/internal/api/response"
)

func newUserCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	userCmd.AddCommand(newUserRegisterCmd())
	userCmd.AddCommand(newUserGetCmd())
	userCmd.AddCommand(newUserListCmd())
	userCmd.AddCommand(newUserCodeCmd())
	userCmd.AddCommand(newUserLoginCmd())

	return userCmd
}

func newUserRegisterCmd() *cobra.Command {
	var noSave bool

	cmd := &cobra.Command{
		Use:   "register <nickname>",
		Short: "Register a new user",
		Long: `Register a new user with the given nickname.

The server returns the user's secret exactly once; by default it is
saved to the secret file for later commands.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var result response.UserResponse
			err := client.Post("/api/user/new", request.RegisterRequest{Nickname: args[0]}, &result)
			if err != nil {
				out.PrintError(err)
				return err
			}

			if !noSave && result.User.Secret != "" {
				if err := cfg.SaveSecret(result.User.Secret); err != nil {
					out.PrintError(fmt.Errorf("failed to save secret: %w", err))
				} else {
					out.PrintMessage("Secret saved to " + cfg.SecretFile)
				}
			}

			return out.Print(result)
		},
	}

	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not save the secret to the secret file")

	return cmd
}

func newUserGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <user-id>",
		Short: "Get a user by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var result response.UserResponse
			if err := client.Get("/api/user/"+args[0], &result); err != nil {
				out.PrintError(err)
				return err
			}

			return out.Print(result)
		},
	}
}

func newUserListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var result response.UsersResponse
			if err := client.Get("/api/users", &result); err != nil {
				out.PrintError(err)
				return err
			}

			return out.Print(result)
		},
	}
}

func newUserCodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "code <user-id>",
		Short: "Request a one-time login code",
		Long: `Request a one-time login code for the given user.

Requires the user's secret, via --secret, TTT_SECRET or the secret
file. The code can be redeemed once with "ttt user login".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var result response.LoginCodeResponse
			if err := client.Get("/api/user/"+args[0]+"/code", &result); err != nil {
				out.PrintError(err)
				return err
			}

			return out.Print(result)
		},
	}
}

func newUserLoginCmd() *cobra.Command {
	var noSave bool

	cmd := &cobra.Command{
		Use:   "login <code>",
		Short: "Redeem a login code",
		Long: `Redeem a one-time login code and retrieve the user record,
including the secret. By default the secret is saved to the secret
file for later commands.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var result response.UserResponse
			err := client.Post("/api/user/login/code", request.RedeemCodeRequest{Code: args[0]}, &result)
			if err != nil {
				out.PrintError(err)
				return err
			}

			if !noSave && result.User.Secret != "" {
				if err := cfg.SaveSecret(result.User.Secret); err != nil {
					out.PrintError(fmt.Errorf("failed to save secret: %w", err))
				} else {
					out.PrintMessage("Secret saved to " + cfg.SecretFile)
				}
			}

			return out.Print(result)
		},
	}

	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not save the secret to the secret file")

	return cmd
}
