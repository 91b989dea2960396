// Command quill works with generated API documents: merging independently
// built sub-documents into one and serving a document with an interactive
// docs UI.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	root := &cobra.Command{
		Use:           "quill",
		Short:         "Work with generated OpenAPI documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMergeCmd(), newServeCmd())

	if err := root.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
