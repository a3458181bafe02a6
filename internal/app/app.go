package app

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/DmitryKolesov/url-relay/internal/config"
	"github.com/DmitryKolesov/url-relay/internal/handler"
	"github.com/DmitryKolesov/url-relay/internal/relay"
)

// App ties configuration, the webhook forwarder, and the HTTP surface together.
type App struct {
	config  *config.Config
	handler http.Handler
}

// NewApp wires the application from its configuration.
func NewApp(cfg *config.Config) *App {
	forwarder := relay.NewForwarder(cfg.WebhookURL)

	httpHandler := handler.NewHandler(forwarder)

	return &App{
		config:  cfg,
		handler: httpHandler.RegisterRoutes(),
	}
}

// Run starts the HTTP server and blocks until it stops.
func (a *App) Run() error {
	if a.config.WebhookURL == "" {
		log.Warn().Msg("No webhook URL configured; submissions will be answered with a configuration error")
	}

	log.Info().Str("address", a.config.ServerAddress).Msg("Starting relay server")
	return http.ListenAndServe(a.config.ServerAddress, a.handler)
}
