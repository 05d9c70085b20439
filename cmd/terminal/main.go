package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/comanda-pos/terminal/internal/config"
	"github.com/comanda-pos/terminal/internal/kitchen"
	"github.com/comanda-pos/terminal/internal/localstore"
	"github.com/comanda-pos/terminal/internal/logging"
	"github.com/comanda-pos/terminal/internal/orders"
	"github.com/comanda-pos/terminal/internal/pos"
	"github.com/comanda-pos/terminal/internal/server"
	"github.com/comanda-pos/terminal/internal/session"
)

// toastNotifier is the terminal's stand-in for UI toasts: every order
// status change is announced on the log.
type toastNotifier struct{}

func (toastNotifier) Notify(orderID int, status, label string) {
	slog.Info("orden actualizada", "order_id", orderID, "status", status, "label", label)
}

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	db, err := localstore.Open(cfg.StateDB)
	if err != nil {
		slog.Error("open state store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	sess := session.New(db, cfg.APIURL)
	if err := sess.Restore(); err != nil {
		slog.Warn("restore session", "error", err)
	}

	registry := orders.NewRegistry(db, toastNotifier{})
	if err := registry.Load(); err != nil {
		slog.Error("load orders", "error", err)
		os.Exit(1)
	}

	board := kitchen.NewBoard()
	feed := kitchen.NewFeed(cfg.APIURL, sess, board)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go feed.Run(ctx)

	router := server.New(cfg, server.Deps{
		Cart:     pos.NewCart(),
		Registry: registry,
		Board:    board,
		Session:  sess,
		Catalog:  sess.API(),
	})

	slog.Info("terminal listening", "port", cfg.Port, "api", cfg.APIURL)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
