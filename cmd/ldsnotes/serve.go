package main

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/ldsnotes/internal/app"
)

func newServeCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(cmd.Context(), env.cfg, env.log)
			if err != nil {
				return err
			}
			return a.Run(cmd.Context())
		},
	}
}
