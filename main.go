package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hersh/blockfall/internal/config"
	"github.com/hersh/blockfall/internal/game"
	"github.com/hersh/blockfall/internal/server"
	"github.com/hersh/blockfall/internal/tui"
)

// This is the single-player game. To watch a broadcast session, use:
//   Game:    go run . --broadcast :8080
//   Watcher: go run ./cmd/watch --server ws://localhost:8080/ws

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("blockfall", os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	// stdout belongs to the renderer.
	if cfg.Debug != "" {
		f, err := tea.LogToFile(cfg.Debug, "blockfall")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	source := game.NewTimeSource()
	if cfg.Seed != 0 {
		source = game.NewRandomSource(cfg.Seed)
	}

	opts := tui.Options{
		Source:        source,
		FrameInterval: cfg.FrameInterval(),
		HoldWindow:    cfg.HoldWindow,
	}

	if cfg.Broadcast != "" {
		hub := server.NewHub()
		ln, err := net.Listen("tcp", cfg.Broadcast)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", cfg.Broadcast, err)
		}
		srv := &http.Server{Handler: server.NewMux(hub)}
		go func() {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("server error: %v", err)
			}
		}()
		defer func() {
			hub.Close()
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()
		log.Printf("spectator feed on ws://%s/ws", ln.Addr())

		opts.Publisher = hub
		opts.Broadcast = ln.Addr().String()
	}

	p := tea.NewProgram(
		tui.NewModel(opts),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
