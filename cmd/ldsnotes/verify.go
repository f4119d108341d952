package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/ldsnotes/internal/fixtures"
)

func newVerifyCmd(env *cliEnv) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "verify [FILE]",
		Short: "Check offset resolution against a fixtures file",
		Long:  "verify cleans and resolves every case of a YAML fixtures file in strict mode and compares the result with the expected words. FILE defaults to LDSNOTES_FIXTURES_FILE.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := env.cfg.FixturesFile
			if len(args) == 1 {
				path = args[0]
			}

			cases, err := fixtures.NewLoader(path).Load()
			if err != nil {
				return err
			}
			results := fixtures.Verify(cases)

			out := cmd.OutOrStdout()
			if asJSON {
				if err := printJSON(out, results); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					switch {
					case r.Pass:
						fmt.Fprintf(out, "PASS %s\n", r.Name)
					case r.Err != "":
						fmt.Fprintf(out, "FAIL %s: %s\n", r.Name, r.Err)
					default:
						fmt.Fprintf(out, "FAIL %s: got %q, want %q\n", r.Name, r.Got, r.Want)
					}
				}
			}

			if n := fixtures.Failed(results); n > 0 {
				return fmt.Errorf("%d of %d fixtures failed", n, len(results))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}
