package main

import (
	"fmt"
	"os"

	"reko-cms/pkg/config"
	"reko-cms/pkg/handlers"
	"reko-cms/pkg/logger"
	"reko-cms/pkg/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize config
	config.Init()

	log, err := logger.New(config.LogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()
	services.SetLogger(log)

	if config.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is required")
	}
	if config.LogMode == "production" || config.LogMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := handlers.NewRouter(log)
	log.Info("Starting Reko", "addr", config.ListenAddr, "repo", config.RepoPath)
	if err := r.Run(config.ListenAddr); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
