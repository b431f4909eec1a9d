package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stillwaters/ytcatalog/internal/server"
)

// serveCmd starts the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog HTTP API",
	Long: `Serve starts an HTTP server exposing the catalog:

  POST /api/videos/sync   trigger a sync pass for a channel
  GET  /api/videos        list stored videos, newest first
  GET  /api/channels      list stored channels`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		svc, pool, cfg, err := newCatalogService(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		logger := logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})

		srv := server.New(svc, cfg.SyncEnabled(), logger)

		httpServer := &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      srv.Handler(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 5 * time.Minute, // a sync pass can take a while
		}

		logger.WithField("addr", cfg.HTTPAddr).Info("starting HTTP server")
		return httpServer.ListenAndServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
