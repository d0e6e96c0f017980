package main

import (
	"log/slog"
	"os"

	"landing-cms/pkg/config"
	"landing-cms/pkg/handlers"
)

func main() {
	// Initialize config
	config.Init()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: config.LogLevel})))

	if config.SessionSecret == "change-me" {
		slog.Warn("SESSION_SECRET is not set, using an insecure default")
	}

	r := handlers.SetupRouter()

	slog.Info("landing cms listening", "port", config.Port, "repo", config.RepoPath)
	if err := r.Run(":" + config.Port); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
