package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dmitrijs2005/stockkeeper/internal/alerts"
	"github.com/dmitrijs2005/stockkeeper/internal/auth"
	"github.com/dmitrijs2005/stockkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/stockkeeper/internal/cli"
	"github.com/dmitrijs2005/stockkeeper/internal/config"
	"github.com/dmitrijs2005/stockkeeper/internal/credentials"
	"github.com/dmitrijs2005/stockkeeper/internal/cryptox"
	"github.com/dmitrijs2005/stockkeeper/internal/filex"
	"github.com/dmitrijs2005/stockkeeper/internal/inventory"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/dmitrijs2005/stockkeeper/internal/otp"
	"github.com/dmitrijs2005/stockkeeper/internal/settings"
	"github.com/dmitrijs2005/stockkeeper/internal/storage"
)

const logMaxSizeMB = 10

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.LoadConfig()); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logFile, err := filex.EnsureParentDir(cfg.LogFile)
	if err != nil {
		return err
	}
	logger, closer := logging.New(logging.Options{
		File:      logFile,
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		MaxSizeMB: logMaxSizeMB,
	})
	defer closer.Close()

	dsn := cfg.DatabaseDSN
	if isFileDSN(dsn) {
		if dsn, err = filex.EnsureParentDir(dsn); err != nil {
			return err
		}
	}

	m := storage.NewSQLiteRepositoryManager(logger)
	db, err := storage.Open(ctx, dsn, m)
	if err != nil {
		return err
	}
	defer db.Close()

	hasher, err := cryptox.NewHasher(cfg.Hasher, cfg.HashPepper)
	if err != nil {
		return err
	}
	gw, err := newGateway(cfg, logger)
	if err != nil {
		return err
	}

	store := credentials.NewStore(db, m, hasher, logger)
	ctrl := auth.NewController(store, otp.NewRandomGenerator(), gw, logger, auth.WithChallengeTTL(cfg.ChallengeTTL))
	defer ctrl.Close()

	prefs := settings.NewService(db, m, store, []byte(cfg.SessionSecret), cfg.SessionTTL, logger)
	inv := inventory.NewService(db, m, prefs, alerts.NewDispatcher(store, gw, logger), logger)

	app := cli.NewApp(ctrl, prefs, inv, os.Stdin, os.Stdout, logger)

	logger.Info(ctx, "stockkeeper started", "version", buildinfo.Version, "gateway", cfg.SMSGateway)

	done := make(chan struct{})
	go func() {
		defer close(done)
		app.Run(ctx)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		fmt.Fprintln(os.Stdout)
		logger.Info(ctx, "interrupted, shutting down")
	}
	return nil
}

// isFileDSN reports whether dsn names a plain database file.
func isFileDSN(dsn string) bool {
	return dsn != "" && !strings.HasPrefix(dsn, "file:") && !strings.Contains(dsn, ":memory:")
}
