// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"backoffice/internal/audit"
	audithandler "backoffice/internal/audit/handler"
	httpapi "backoffice/internal/http"
	"backoffice/internal/live"
	"backoffice/internal/notification"
	notifhandler "backoffice/internal/notification/handler"
	"backoffice/internal/platform/config"
	"backoffice/internal/platform/database"
	"backoffice/internal/platform/httpserver"
	"backoffice/internal/platform/logger"
	"backoffice/internal/platform/metrics"
	platformredis "backoffice/internal/platform/redis"
	"backoffice/internal/token"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var auditStore audit.Store = audit.NewInMemoryStore()
	var notifStore notification.Store = notification.NewInMemoryStore()
	if db != nil {
		auditStore = audit.NewPostgresStore(db)
		notifStore = notification.NewPostgresStore(db)
	} else {
		log.Warn("no DATABASE_URL configured, using in-memory stores")
	}

	var forwarder *audit.Forwarder
	if len(cfg.KafkaBrokers) > 0 {
		forwarder, err = audit.NewForwarder(cfg.KafkaBrokers, cfg.KafkaAuditTopic, log, m)
		if err != nil {
			log.Error("kafka client failed", "error", err)
			os.Exit(1)
		}
		defer forwarder.Close()
		if err := forwarder.EnsureTopic(ctx); err != nil {
			// Forwarding is best-effort; a missing topic only drops forwards.
			log.Warn("audit topic bootstrap failed", "error", err)
		}
	}

	hub := live.NewHub(log, m)
	var publisher live.Publisher = hub
	var backplane *live.Backplane
	if redisClient != nil {
		backplane = live.NewBackplane(redisClient, cfg.LiveChannel, hub, log)
		publisher = backplane
	}

	recorder := audit.NewRecorder(auditStore, forwarder, log, m)
	auditService := audit.NewService(auditStore, audit.NewReconstructor())
	notifService := notification.NewService(notifStore, publisher, recorder, log)

	tokens := token.NewService(cfg.JWTSigningKey)

	router := httpapi.NewRouter(httpapi.Deps{
		Audit:         audithandler.New(auditService, recorder, log, m, tokens),
		Notifications: notifhandler.New(notifService, log, m, tokens),
		Live:          live.NewWSHandler(hub, log),
		DB:            db,
		Redis:         redisClient,
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting backoffice", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if backplane != nil {
		g.Go(func() error {
			if err := backplane.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
