package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/ldsnotes/internal/app"
	"github.com/MrSnakeDoc/ldsnotes/internal/config"
	"github.com/MrSnakeDoc/ldsnotes/internal/logger"
	"github.com/MrSnakeDoc/ldsnotes/internal/version"
)

// cliEnv is filled by the root command before any subcommand runs. Tests
// preset cfg and log.
type cliEnv struct {
	cfg *config.Config
	log logger.Logger

	token    string
	logLevel string
}

func (e *cliEnv) clients() app.Clients {
	return app.NewClients(e.cfg, e.log)
}

func newRootCmd(env *cliEnv) *cobra.Command {
	root := &cobra.Command{
		Use:           "ldsnotes",
		Short:         "Read your churchofjesuschrist.org notes with their highlighted text",
		Long:          "ldsnotes fetches annotations from the notes API, resolves the highlighted words against the content API, and prints or serves them.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// version must work without a valid environment
			if cmd.Name() == "version" {
				return nil
			}
			if env.cfg == nil {
				env.cfg = config.Load()
			}
			if env.token != "" {
				env.cfg.Token = env.token
			}
			if env.logLevel != "" {
				env.cfg.LogLevel = env.logLevel
			}
			if env.log == nil {
				env.log = logger.New(env.cfg.LogLevel, env.cfg.PrettyLog)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if env.log != nil {
				_ = env.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&env.token, "token", "", "notes API token (overrides LDSNOTES_TOKEN)")
	root.PersistentFlags().StringVar(&env.logLevel, "log-level", "", "debug, info, warn or error (overrides LDSNOTES_LOG_LEVEL)")

	root.AddCommand(
		newServeCmd(env),
		newAnnotationsCmd(env),
		newTagsCmd(env),
		newFoldersCmd(env),
		newContentCmd(env),
		newVerifyCmd(env),
		newVersionCmd(),
	)
	return root
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
