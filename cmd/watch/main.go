package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hersh/blockfall/internal/config"
	"github.com/hersh/blockfall/internal/netclient"
	"github.com/hersh/blockfall/internal/tui"
)

func main() {
	cfg, err := config.Load("watch", os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if cfg.Debug != "" {
		f, err := tea.LogToFile(cfg.Debug, "watch")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	// Connect to the broadcasting game
	client, err := netclient.New(cfg.Server)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to %s: %v\n", cfg.Server, err)
		fmt.Fprintf(os.Stderr, "Make sure a game is running with --broadcast\n")
		os.Exit(1)
	}
	defer client.Close()

	p := tea.NewProgram(
		tui.NewWatchModel(cfg.Server, client),
		tea.WithAltScreen(),
	)

	// Wire the program into the client so readPump can send tea.Msgs
	client.SetProgram(p)
	client.Start()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
