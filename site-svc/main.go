package main

import (
	"context"
	"net/http"
	"time"

	"flavor-heaven/config"
	"flavor-heaven/shutdown"
	httpapi "flavor-heaven/site-svc/internal/api/http"
	"flavor-heaven/site-svc/internal/service"
	"flavor-heaven/site-svc/internal/storage"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()
	config.NewLogger("site-svc", cfg)

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	b := buildBackends(ctx, cfg)
	defer b.close()

	numbers := service.NewOrderNumbers(nil)
	qr := service.DefaultQRGenerator{BaseURL: cfg.QRBaseURL}

	catalog := service.NewCatalog(b.menu)
	orderSvc := service.NewOrderService(b.orders, b.publisher, qr, numbers)
	reservationSvc := service.NewReservationService(b.reservations, b.publisher)
	contactSvc := service.NewContactService(b.contacts, b.publisher)

	finalizer := service.NewFinalizer(numbers, orderSvc, b.publisher)
	machine := service.NewMachine(finalizer)
	sessions := service.NewSessions(b.kv)

	handler := httpapi.NewHandler(catalog, sessions, machine, orderSvc, reservationSvc, contactSvc, cfg)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.NewRouter(handler),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if !cfg.EmailConfigured() {
		log.Warn().Msg("email not configured, notifications will only be logged")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("site service starting")
		return shutdown.Serve(gctx, srv, 10*time.Second)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("site service stopped")
	}
	log.Info().Msg("site service stopped")
}

type backends struct {
	kv           service.KV
	menu         service.MenuRepository
	orders       service.OrderRepository
	reservations service.ReservationRepository
	contacts     service.ContactRepository
	publisher    service.EventPublisher
	closers      []func() error
}

// buildBackends picks a real store for every configured dependency and the
// in-memory one otherwise.
func buildBackends(ctx context.Context, cfg config.Config) *backends {
	memory := storage.NewMemoryRepository()
	if err := memory.SeedMenu(ctx, service.SampleMenu()); err != nil {
		log.Warn().Err(err).Msg("failed to seed menu")
	}
	b := &backends{
		kv:           storage.NewMemoryKV(),
		menu:         memory,
		orders:       memory,
		reservations: memory,
		contacts:     memory,
	}

	if cfg.PostgresConfigured() {
		db := config.MustInitPostgres(cfg)
		repo := storage.NewPostgresRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to ensure schema")
		}
		if err := repo.SeedMenu(ctx, service.SampleMenu()); err != nil {
			log.Warn().Err(err).Msg("failed to seed menu")
		}
		b.menu = repo
		b.orders = repo
		b.reservations = repo
		b.closers = append(b.closers, db.Close)
	} else {
		log.Warn().Msg("postgres not configured, menu, orders and reservations kept in memory")
	}

	if cfg.RedisConfigured() {
		client := config.MustInitRedis(cfg)
		b.kv = storage.NewRedisKV(client, cfg.SessionTTL)
		b.closers = append(b.closers, client.Close)
	} else {
		log.Warn().Msg("redis not configured, sessions kept in memory")
	}

	if cfg.MongoConfigured() {
		db := config.MustInitMongo(ctx, cfg)
		b.contacts = storage.NewMongoContactRepository(db)
		b.closers = append(b.closers, func() error { return db.Client().Disconnect(context.Background()) })
	} else {
		log.Warn().Msg("mongodb not configured, contact form will not save to database")
	}

	if cfg.KafkaConfigured() {
		writer := config.NewKafkaWriter(cfg)
		b.publisher = storage.NewKafkaPublisher(writer)
		b.closers = append(b.closers, writer.Close)
	} else {
		log.Warn().Msg("kafka not configured, events will not be published")
	}

	return b
}

func (b *backends) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			log.Error().Err(err).Msg("failed to close backend")
		}
	}
}
