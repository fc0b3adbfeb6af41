package main

import (
	"context"
	"net/http"
	"time"

	"flavor-heaven/config"
	httpapi "flavor-heaven/notify-svc/internal/api/http"
	"flavor-heaven/notify-svc/internal/service"
	"flavor-heaven/notify-svc/internal/storage"
	"flavor-heaven/shutdown"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()
	config.NewLogger("notify-svc", cfg)

	if !cfg.KafkaConfigured() {
		log.Fatal().Msg("KAFKA_BROKER is required for the notification service")
	}

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	reader := config.NewKafkaReader(cfg, "notify-svc")
	defer reader.Close()

	var (
		recorder service.StatsRecorder
		stats    service.StatsReader
	)
	if cfg.RedisConfigured() {
		client := config.MustInitRedis(cfg)
		defer client.Close()
		store := storage.NewStatsStore(client)
		recorder, stats = store, store
	} else {
		log.Warn().Msg("redis not configured, stats will not be recorded")
	}

	var mailer service.Mailer = service.LogMailer{}
	if cfg.EmailConfigured() {
		smtpMailer, err := service.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to configure smtp")
		}
		mailer = smtpMailer
	} else {
		log.Warn().Msg("email not configured, notifications will only be logged")
	}

	consumer := service.NewConsumer(reader, mailer, recorder, cfg.RestaurantEmail)

	srv := &http.Server{
		Addr:              ":" + cfg.NotifyPort,
		Handler:           httpapi.NewRouter(httpapi.NewHandler(stats)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consumer.Start(gctx)
	})
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("notify service starting")
		return shutdown.Serve(gctx, srv, 10*time.Second)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("notify service stopped")
	}
	log.Info().Msg("notify service stopped")
}
