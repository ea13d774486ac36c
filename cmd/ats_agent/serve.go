package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-tailor/internal/config"
	"github.com/jonathan/ats-tailor/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the agent HTTP server",
	Long:  "Start an HTTP server that accepts page snapshots, tailors documents and drives attachment.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides ATS_PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	st, err := openStore(context.Background(), cfg)
	if err != nil {
		return err
	}

	var jwtService *server.JWTService
	if cfg.JWTSecret != "" {
		jwtService = server.NewJWTService(cfg.JWTSecret)
	}

	pipeline := buildPipeline(cfg, st, "")
	srv := server.New(cfg, pipeline, st, jwtService, nil)

	fmt.Printf("ATS agent listening on port %d\n", cfg.Port)
	return srv.Start()
}
