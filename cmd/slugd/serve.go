package main

import (
	"net/http"

	"github.com/shopfabrik/slugd/internal/api"
	"github.com/shopfabrik/slugd/internal/config"
	"github.com/shopfabrik/slugd/internal/db"
	"github.com/shopfabrik/slugd/internal/logger"
	"github.com/shopfabrik/slugd/internal/store"
	"github.com/shopfabrik/slugd/internal/urls"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.Log.Level)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			urlStore := store.NewURLStore(database)
			languageStore := store.NewLanguageStore(database)
			productStore := store.NewProductStore(database)
			tenantStore := store.NewTenantStore(database)

			urlService := urls.NewService(urlStore, productStore, languageStore, log)

			router := api.NewRouter(api.Deps{
				URLService: urlService,
				Languages:  languageStore,
				Products:   productStore,
				Tenants:    tenantStore,
				Log:        log,
			})

			log.Info("listening", zap.String("addr", cfg.HTTP.Addr))
			return http.ListenAndServe(cfg.HTTP.Addr, router)
		},
	}
}
