// cmd/discord/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "github.com/keshon/wavebot/internal/command/core"
	_ "github.com/keshon/wavebot/internal/command/tests"

	"github.com/keshon/wavebot/internal/config"
	"github.com/keshon/wavebot/internal/discord"
	"github.com/keshon/wavebot/internal/httpserver"
	"github.com/keshon/wavebot/internal/metrics"
	"github.com/keshon/wavebot/internal/sentry"
	"github.com/keshon/wavebot/internal/storage"
	v "github.com/keshon/wavebot/internal/version"
)

func main() {
	log.Printf("[INFO] Starting %v bot...", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		log.Fatal("[ERR] ", err)
	}

	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
		Release:     v.AppName + "@" + v.Version,
	}); err != nil {
		log.Printf("[WARN] Sentry disabled: %v", err)
	}
	defer sentry.Flush(2 * time.Second)

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal("[ERR] ", err)
	}
	defer store.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)
	go httpserver.Run(ctx, cfg.MetricsAddr, httpserver.NewHandler(registry))

	bot, err := discord.NewBot(cfg, store, m)
	if err != nil {
		log.Fatal("[ERR] ", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...", s)
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
		cancel()
	}

	log.Println("[INFO] Discord bot exited cleanly")
}
