// Command ammrpc serves read-only amm pricing queries over JSON-RPC.
// State snapshots are seeded from a YAML config and queried through
// the amm_* method namespace.
//
// Usage:
//
//	ammrpc --config config.yaml
//	ammrpc --listen :8545 (empty state, snapshots committed at runtime)
//	ammrpc setup          (interactive config wizard)
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xykswap/ammrpc/config"
	"github.com/xykswap/ammrpc/internal/server"
	"github.com/xykswap/ammrpc/internal/services/engine"
	"github.com/xykswap/ammrpc/internal/services/rpcapi"
	"github.com/xykswap/ammrpc/internal/setup"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "setup" {
		if err := setup.RunTUI(); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	eng := engine.NewXYK()
	head := eng.Commit(cfg.Pools)
	logger.Info("state seeded",
		zap.Int("pools", len(cfg.Pools)),
		zap.String("head", head.Hex()))

	api := rpcapi.NewAPI(eng, eng, logger)
	srv, err := server.New(cfg.Listen, api, logger)
	if err != nil {
		logger.Fatal("failed to set up rpc server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		logger.Fatal("rpc server failed", zap.Error(err))
	}
	logger.Info("shut down")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
