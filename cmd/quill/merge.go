package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/quillapi/quill/openapi"
)

func newMergeCmd() *cobra.Command {
	var outputs []string

	cmd := &cobra.Command{
		Use:   "merge <file>...",
		Short: "Merge documents into one",
		Long: `Merge combines independently generated documents. Paths and schema
names are unioned; a key defined differently in two inputs fails the
merge. Info and servers come from the first input.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs := make([]*openapi.Document, len(args))

			// Inputs are independent files; load them concurrently but keep
			// the result slice in argument order so the merge stays
			// deterministic.
			var g errgroup.Group
			for i, path := range args {
				g.Go(func() error {
					doc, err := openapi.LoadFile(path)
					if err != nil {
						return err
					}
					docs[i] = doc
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			merged, err := openapi.Merge(docs...)
			if err != nil {
				return err
			}
			slog.Info("merged documents", "inputs", len(docs), "paths", len(merged.Paths))

			if len(outputs) == 0 {
				data, err := merged.JSON()
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), string(data))
				return nil
			}
			return merged.WriteFiles(outputs...)
		},
	}

	cmd.Flags().StringSliceVarP(&outputs, "output", "o", nil,
		"output file(s); extension selects JSON or YAML (default: JSON to stdout)")
	return cmd
}
