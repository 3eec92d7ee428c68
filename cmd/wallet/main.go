package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/mkorchagin/passwallet/internal/authbridge"
	"github.com/mkorchagin/passwallet/internal/availability"
	"github.com/mkorchagin/passwallet/internal/cli"
	"github.com/mkorchagin/passwallet/internal/config"
	"github.com/mkorchagin/passwallet/internal/credstore"
	"github.com/mkorchagin/passwallet/internal/identity"
	"github.com/mkorchagin/passwallet/internal/logging"
	"github.com/mkorchagin/passwallet/internal/session"
	"github.com/mkorchagin/passwallet/internal/storage"
	"github.com/mkorchagin/passwallet/internal/usercache"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	deviceKey, err := credstore.LoadDeviceKey(cfg.KeyfilePath)
	if err != nil {
		return err
	}
	sealer, err := credstore.NewSealer(deviceKey)
	if err != nil {
		return err
	}
	store := credstore.NewSQLiteStore(db, sealer)

	client := identity.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout,
		identity.WithTokenSource(func(ctx context.Context) string {
			token, err := store.Retrieve(ctx, credstore.KeyAccessToken)
			if err != nil {
				return ""
			}
			return string(token)
		}),
	)

	bridge := authbridge.NewDevBridge(client, cfg.Biometrics)
	cache := usercache.NewSQLiteCache(db)

	manager := session.NewManager(store, client, bridge, cache, session.Defaults{
		Currency: cfg.DefaultCurrency,
		Network:  cfg.DefaultNetwork,
	}, log)

	app := cli.NewApp(cfg, manager, nil)

	checker := availability.New(client, cfg.DebounceInterval, app.DeliverResult, log)
	checker.SetValidator(availability.FieldTag, session.ValidateTag)
	checker.SetValidator(availability.FieldEmail, func(s string) bool { return s != "" })
	defer checker.Close()

	app.SetChecker(checker)
	app.Run(ctx)
	return nil
}
