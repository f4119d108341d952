package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/ldsnotes/internal/domain"
	"github.com/MrSnakeDoc/ldsnotes/internal/notes"
)

func newAnnotationsCmd(env *cliEnv) *cobra.Command {
	var (
		q        notes.Query
		markdown bool
		wrap     string
	)

	cmd := &cobra.Command{
		Use:     "annotations",
		Aliases: []string{"ann"},
		Short:   "List annotations with their resolved text",
		Example: `  ldsnotes annotations --type highlight --count 5
  ldsnotes annotations --folder Journal --markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			anns, err := env.clients().Notes.Search(cmd.Context(), q)
			if err != nil {
				return err
			}
			if markdown {
				out := domain.RenderMarkdown(anns, wrap)
				if out != "" {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				}
				return err
			}
			if anns == nil {
				anns = []domain.Annotation{}
			}
			return printJSON(cmd.OutOrStdout(), anns)
		},
	}

	f := cmd.Flags()
	f.IntVar(&q.Start, "start", 1, "1-indexed position of the first annotation")
	f.IntVar(&q.Count, "count", notes.DefaultCount, "number of annotations to return")
	f.StringSliceVar(&q.Types, "type", nil, "bookmark, highlight, journal or reference (repeatable)")
	f.StringVar(&q.Tag, "tag", "", "only annotations with this tag")
	f.StringVar(&q.Folder, "folder", "", "only annotations in this notebook")
	f.StringVar(&q.Keyword, "query", "", "search phrase")
	f.BoolVar(&q.AsHTML, "html", false, "keep note bodies as HTML")
	f.BoolVar(&markdown, "markdown", false, "print markdown instead of JSON")
	f.StringVar(&wrap, "wrap", domain.DefaultWrap, "marker around highlighted words in markdown")
	return cmd
}

func newTagsCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags and their annotation counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := env.clients().Notes.Client().Tags(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), tags)
		},
	}
}

func newFoldersCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:     "folders",
		Aliases: []string{"notebooks"},
		Short:   "List notebooks and their annotation counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			folders, err := env.clients().Notes.Client().Folders(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), folders)
		},
	}
}
