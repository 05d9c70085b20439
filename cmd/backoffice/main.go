package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/comanda-pos/terminal/internal/backoffice"
	"github.com/comanda-pos/terminal/internal/config"
	"github.com/comanda-pos/terminal/internal/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	port := os.Getenv("BACKOFFICE_PORT")
	if port == "" {
		port = "8000"
	}

	srv := backoffice.New(cfg.JWTSecret)

	slog.Info("stub back office listening", "port", port)
	if err := http.ListenAndServe(":"+port, srv.Router()); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
