package cli

import (
	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			var result struct {
				Status string `json:"status"`
			}
			if err := client.Get("/api/health", &result); err != nil {
				out.PrintError(err)
				return err
			}

			if cfg.Output == "json" {
				return out.Print(result)
			}
			out.PrintMessage("Server status: " + result.Status)
			return nil
		},
	}
}
