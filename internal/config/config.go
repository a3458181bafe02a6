package config

import (
	"flag"

	"github.com/spf13/viper"
)

// Config holds the relay server configuration.
type Config struct {
	ServerAddress string
	WebhookURL    string
	AppName       string
}

// NewConfig resolves configuration from flags, environment variables, and an
// optional .env file. Environment variables win over the .env file; flags
// win over both. WebhookURL has no default: its absence is surfaced to the
// caller of the relay endpoint as a configuration error, never defaulted.
func NewConfig() *Config {
	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("WEBHOOK_URL", "")
	viper.SetDefault("APP_NAME", "url-relay")

	viper.AutomaticEnv()

	// Values from .env never override real environment variables.
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	serverAddress := flag.String("a", "", "HTTP server address (e.g. localhost:8888)")
	webhookURL := flag.String("w", "", "destination webhook URL")
	appName := flag.String("n", "", "application identifier stamped on forwarded payloads")

	flag.Parse()

	cfg := &Config{
		ServerAddress: viper.GetString("SERVER_ADDRESS"),
		WebhookURL:    viper.GetString("WEBHOOK_URL"),
		AppName:       viper.GetString("APP_NAME"),
	}

	if *serverAddress != "" {
		cfg.ServerAddress = *serverAddress
	}

	if *webhookURL != "" {
		cfg.WebhookURL = *webhookURL
	}

	if *appName != "" {
		cfg.AppName = *appName
	}

	return cfg
}
