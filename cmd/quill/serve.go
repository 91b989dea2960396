package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/quillapi/quill/openapi"
)

func newServeCmd() *cobra.Command {
	var (
		addr     string
		basePath string
		ui       string
	)

	cmd := &cobra.Command{
		Use:   "serve <file>",
		Short: "Serve a document with an interactive docs UI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := openapi.LoadFile(args[0])
			if err != nil {
				return err
			}

			cfg := &openapi.HandleConfig{}
			switch ui {
			case "rapidoc":
				cfg.UI = openapi.DocsRapiDoc
			case "redoc":
				cfg.UI = openapi.DocsRedoc
			default:
				cfg.UI = openapi.DocsSwaggerUI
			}

			mux := http.NewServeMux()
			mux.Handle("/", doc.Handler(basePath, cfg))

			srv := &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}
			slog.Info("serving docs",
				"addr", addr,
				"path", basePath,
				"title", doc.Info.Title,
				"version", doc.Info.Version,
			)
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&basePath, "path", "/docs", "base path for the docs UI")
	cmd.Flags().StringVar(&ui, "ui", "swagger", "docs UI: swagger, rapidoc, or redoc")
	return cmd
}
