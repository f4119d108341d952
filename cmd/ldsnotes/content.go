package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newContentCmd(env *cliEnv) *cobra.Command {
	var text bool

	cmd := &cobra.Command{
		Use:     "content URI...",
		Short:   "Fetch content by URI and print its cleaned text",
		Example: "  ldsnotes content /eng/scriptures/bofm/hel/3.p29 --text",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			views, err := env.clients().Content.FetchContent(cmd.Context(), args)
			if err != nil {
				return err
			}
			if !text {
				return printJSON(cmd.OutOrStdout(), views)
			}
			for _, v := range views {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n\n", v.Reference, v.Text); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&text, "text", false, "print reference and text instead of JSON")
	return cmd
}
