package main

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/openbridge/bidpractice/cmd/bidpractice/shared"
	"github.com/openbridge/bidpractice/internal/convention"
	"github.com/openbridge/bidpractice/internal/pbn"
	"github.com/openbridge/bidpractice/internal/server"
)

// ServerCmd contains core server configuration
type ServerCmd struct {
	Config          string `kong:"default='bidpractice.hcl',help='Path to HCL config file'"`
	Addr            string `kong:"help='Listen address, overrides config (host:port)'"`
	Debug           bool   `kong:"help='Enable debug logging'"`
	DealFile        string `kong:"help='PBN deal file, overrides config'"`
	ConventionFile  string `kong:"help='Convention rule file, overrides config'"`
	ThinkingDelayMs *int   `kong:"help='AI thinking delay in milliseconds, overrides config'"`
}

func (c *ServerCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := server.LoadServerConfig(c.Config)
	if err != nil {
		return err
	}
	if c.DealFile != "" {
		cfg.Server.DealFile = c.DealFile
	}
	if c.ConventionFile != "" {
		cfg.Server.ConventionFile = c.ConventionFile
	}
	if c.ThinkingDelayMs != nil {
		cfg.Server.ThinkingDelayMs = *c.ThinkingDelayMs
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !c.Debug {
		shared.ApplyLogLevel(logger, cfg.Server.LogLevel)
	}

	addr := cfg.GetServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	if cfg.Server.DealFile == "" {
		return fmt.Errorf("no deal file configured; set deal_file in %s or pass --deal-file", c.Config)
	}
	result, err := pbn.ParseFile(cfg.Server.DealFile)
	if err != nil {
		return fmt.Errorf("loading deal file: %w", err)
	}
	if len(result.Boards) == 0 {
		return fmt.Errorf("deal file %s contains no usable boards", cfg.Server.DealFile)
	}
	logger.Info("Loaded deal file", "file", cfg.Server.DealFile,
		"boards", len(result.Boards), "skipped", result.Skipped)

	var engine *convention.Engine
	if cfg.Server.ConventionFile != "" {
		rules, err := convention.LoadFile(cfg.Server.ConventionFile)
		if err != nil {
			return fmt.Errorf("loading convention file: %w", err)
		}
		engine = convention.NewEngine(rules)
		logger.Info("Loaded convention rules", "file", cfg.Server.ConventionFile, "name", rules.Name)
	} else {
		logger.Warn("No convention file configured, AI seats will always pass")
	}

	coordinator := server.NewCoordinator(server.RoomConfig{
		Boards:     result.Boards,
		Engine:     engine,
		ThinkDelay: time.Duration(cfg.Server.ThinkingDelayMs) * time.Millisecond,
		Logger:     logger,
	}, logger)
	srv := server.NewServer(addr, coordinator, logger)

	logger.Info("Starting bidding practice server",
		"address", addr,
		"thinking_delay_ms", cfg.Server.ThinkingDelayMs)

	ctx := shared.SetupSignalHandlerWithLogger(logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start()
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})
	return g.Wait()
}
