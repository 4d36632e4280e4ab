// researchtui - a terminal client for a multi-agent research backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"go.uber.org/zap"
	"golang.org/x/term"

	"researchtui/internal/channel"
	"researchtui/internal/config"
	"researchtui/internal/export"
	"researchtui/internal/logging"
	"researchtui/internal/monitor"
	"researchtui/internal/notify"
	"researchtui/internal/render"
	"researchtui/internal/research"
	"researchtui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// displayWrapWidth is the markdown word-wrap width for the on-screen
// surfaces. Exports use the configured page width instead.
const displayWrapWidth = 80

func main() {
	var (
		serverURL  = flag.String("server", "", "backend websocket URL (overrides config)")
		configPath = flag.String("config", "", "path to config.toml")
		logFile    = flag.String("log-file", "", "log file path (overrides config)")
		version    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Printf("researchtui %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: researchtui requires an interactive terminal")
		os.Exit(1)
	}

	if err := run(*configPath, *serverURL, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, serverURL, logFile string) error {
	// ==========================================================================
	// CONFIGURATION AND LOGGING
	// ==========================================================================

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if serverURL != "" {
		cfg.Server.URL = serverURL
	}
	if logFile != "" {
		cfg.Logging.File = logFile
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logOpts := logging.DefaultOptions()
	if cfg.Logging.File != "" {
		logOpts.Path = cfg.Logging.File
	}
	if cfg.Logging.Level != "" {
		logOpts.Level = cfg.Logging.Level
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("starting researchtui",
		zap.String("version", Version),
		zap.String("server", cfg.Server.URL))

	// ==========================================================================
	// RENDERING
	// ==========================================================================

	theme := cfg.UI.Theme
	if theme == "" || theme == "auto" {
		if termenv.HasDarkBackground() {
			theme = "dark"
		} else {
			theme = "light"
		}
	}
	formatter, err := render.NewGlamourFormatter(theme, displayWrapWidth)
	if err != nil {
		return fmt.Errorf("init markdown renderer: %w", err)
	}
	renderer := render.New(formatter, logger)

	// ==========================================================================
	// TRANSPORT AND SESSION WIRING
	// ==========================================================================

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ws := channel.NewWebSocket(channel.WebSocketConfig{
		URL:              cfg.Server.URL,
		RedialDelay:      time.Duration(cfg.Server.RedialSeconds) * time.Second,
		HandshakeTimeout: 10 * time.Second,
		Logger:           logger,
	})
	ws.Start(ctx)

	mon := monitor.New(ws, logger)
	disp := ui.NewDisplay(renderer, logger)
	controller := research.NewController(ws, mon, disp, logger)

	exporter := export.NewService(
		controller.LastResult,
		export.NewPagedTextFormatter(cfg.Export.PageWidth, cfg.Export.PageLines),
		cfg.Export.OutputDir,
		logger,
	)

	notifier := notify.New(
		time.Duration(cfg.UI.SuccessToastSeconds)*time.Second,
		time.Duration(cfg.UI.ErrorToastSeconds)*time.Second,
	)

	model := ui.New(ui.Deps{
		Config:     cfg,
		Logger:     logger,
		Channel:    ws,
		Controller: controller,
		Monitor:    mon,
		Exporter:   exporter,
		Notifier:   notifier,
		Display:    disp,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	// Hot reload: push config changes into the program as messages.
	stopWatch, err := config.Watch(configPath, logger, func(next *config.Config) {
		p.Send(ui.ConfigReloadedMsg{Config: next})
	})
	if err != nil {
		logger.Warn("config watch unavailable", zap.Error(err))
	} else {
		defer stopWatch()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("shutting down")
	return nil
}
