package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mp3stego/internal/api"
	"mp3stego/internal/config"
)

// DefineServeCommand builds the `serve` subcommand: an optional HTTP surface
// over the same embed/extract operations, for callers that want to drive
// this codec from a web frontend instead of the CLI.
func DefineServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Run an HTTP server exposing embed/extract over /api/v1/stego",
		SilenceUsage: true,
		RunE:         runServe,
	}

	cmd.Flags().String("port", "", "port to listen on (defaults to $PORT or 8080)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	port, _ := cmd.Flags().GetString("port")
	cfg := config.FromEnv()
	if port != "" {
		cfg.Port = port
	}

	router := api.NewRouter()

	fmt.Fprintf(cmd.OutOrStdout(), "listening on :%s\n", cfg.Port)
	return router.Run(":" + cfg.Port)
}
