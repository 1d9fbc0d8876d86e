package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"shopassist/app/config"
	"shopassist/app/observability"
	"shopassist/app/server"
	"shopassist/app/service/adminchat"
	"shopassist/app/service/assistant"
	"shopassist/app/store"
	"shopassist/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, store.NewPostgres)
	do.Provide(di, func(i *do.Injector) (store.CatalogStore, error) {
		return do.MustInvoke[*store.Postgres](i), nil
	})
	do.Provide(di, func(i *do.Injector) (store.AdminStore, error) {
		return do.MustInvoke[*store.Postgres](i), nil
	})
	do.Provide(di, observability.New)
	do.Provide(di, assistant.New)
	do.Provide(di, adminchat.New)
	do.Provide(di, server.New)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	go do.MustInvoke[*assistant.Service](di).Run(appCtx)
	go do.MustInvoke[*adminchat.Service](di).Run(appCtx)

	if err = do.MustInvoke[*server.Service](di).Run(appCtx); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
