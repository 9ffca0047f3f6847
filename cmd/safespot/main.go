package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/df-mc/safespot/server"
	"github.com/df-mc/safespot/server/cmd/builtin"
	"github.com/df-mc/safespot/server/console"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the configuration file (.toml, .yaml or .yml)")
	debug := flag.Bool("debug", false, "log every safe location search")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	uc, err := server.ReadConfig(*configPath)
	if err != nil {
		log.Error("read config: " + err.Error())
		os.Exit(1)
	}
	conf, err := uc.Config(log)
	if err != nil {
		log.Error("load config: " + err.Error())
		os.Exit(1)
	}
	srv := conf.New()
	builtin.Register(srv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Server running. Type help for a list of commands.", "world", srv.World().Name())
	go console.New(srv, log).Run(ctx)

	select {
	case <-ctx.Done():
	case <-srv.Closed():
	}
	if err := srv.Close(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
