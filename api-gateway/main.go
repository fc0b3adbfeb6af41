package main

import (
	"context"
	"net/http"
	"time"

	"flavor-heaven/api-gateway/internal/gateway"
	"flavor-heaven/config"
	"flavor-heaven/shutdown"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	config.NewLogger("api-gateway", cfg)

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	gw := gateway.NewGateway(gateway.Config{
		SiteSvcURL:   cfg.SiteSvcURL,
		NotifySvcURL: cfg.NotifySvcURL,
		StaticDir:    cfg.StaticDir,
	}, &http.Client{Timeout: 30 * time.Second})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Session-ID"},
		ExposedHeaders:   []string{"X-Session-ID", "X-Cart-Count"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.GatewayPort,
		Handler:           c.Handler(gw.SetupRoutes()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info().Str("addr", srv.Addr).Str("site", cfg.SiteSvcURL).Msg("api gateway starting")
	if err := shutdown.Serve(ctx, srv, 10*time.Second); err != nil {
		log.Fatal().Err(err).Msg("api gateway stopped")
	}
	log.Info().Msg("api gateway stopped")
}
