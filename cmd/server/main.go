package main

import (
	"log"
	"net/http"

	"session_logger/internal/config"
	"session_logger/internal/logger"
	"session_logger/internal/routes"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Prune old logs and open this session's destinations
	l, err := logger.Build(cfg)
	if err != nil {
		log.Fatalf("set up logging: %v", err)
	}
	defer l.Close()

	r := routes.SetupRouter(cfg, l)
	defer r.Close()

	addr := "0.0.0.0:" + cfg.Port
	l.Infof("Server running at %s (%s)", addr, cfg.Environment)
	if err := http.ListenAndServe(addr, r); err != nil {
		l.Errorf("server stopped: %v", err)
	}
}
