package config

import (
	"sync"
	"time"

	"github.com/spf13/viper"
)

// ClientConfiguration defines the environment-sourced client settings.
type ClientConfiguration struct {
	APIKey         string
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
	RetryFactor    float64
	RetryJitter    bool
}

var (
	clientDefaultsOnce sync.Once
	clientConfigOnce   sync.Once
	clientConfig       *ClientConfiguration
)

// initClientDefaults sets the default values for client configuration.
// This is called once during initialization to avoid concurrent map writes.
func initClientDefaults() {
	clientDefaultsOnce.Do(func() {
		viper.SetDefault("VERIFYD_BASE_URL", "https://api.verifyd.dev")
		viper.SetDefault("VERIFYD_TIMEOUT", 30)          // seconds
		viper.SetDefault("VERIFYD_MAX_RETRIES", 2)
		viper.SetDefault("VERIFYD_RETRY_BASE_DELAY", 500) // milliseconds
		viper.SetDefault("VERIFYD_RETRY_FACTOR", 2.0)
		viper.SetDefault("VERIFYD_RETRY_JITTER", true)
	})
}

// ClientConfig returns the client configuration sourced from the
// environment. The config is initialized once and cached.
func ClientConfig() *ClientConfiguration {
	initClientDefaults()

	clientConfigOnce.Do(func() {
		clientConfig = &ClientConfiguration{
			APIKey:         viper.GetString("VERIFYD_API_KEY"),
			BaseURL:        viper.GetString("VERIFYD_BASE_URL"),
			Timeout:        time.Duration(viper.GetInt("VERIFYD_TIMEOUT")) * time.Second,
			MaxRetries:     viper.GetInt("VERIFYD_MAX_RETRIES"),
			RetryBaseDelay: time.Duration(viper.GetInt("VERIFYD_RETRY_BASE_DELAY")) * time.Millisecond,
			RetryFactor:    viper.GetFloat64("VERIFYD_RETRY_FACTOR"),
			RetryJitter:    viper.GetBool("VERIFYD_RETRY_JITTER"),
		}
	})
	return clientConfig
}
