package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration values. It is loaded once in main and handed
// to every component that needs it; nothing reads configuration ambiently.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// DOTS integration connection parameters. Every call to the integration
	// layer carries the authentication envelope built from these.
	DotsURL               string `mapstructure:"DOTS_URL"`
	ScanningURL           string `mapstructure:"SCANNING_URL"`
	HotelDomain           string `mapstructure:"HOTEL_DOMAIN"`
	KioskID               string `mapstructure:"KIOSK_ID"`
	Username              string `mapstructure:"DOTS_USERNAME"`
	Password              string `mapstructure:"DOTS_PASSWORD"`
	SystemType            string `mapstructure:"SYSTEM_TYPE"`
	Language              string `mapstructure:"LANGUAGE"`
	LegNumber             string `mapstructure:"LEG_NUMBER"`
	ChainCode             string `mapstructure:"CHAIN_CODE"`
	DestinationEntityID   string `mapstructure:"DESTINATION_ENTITY_ID"`
	DestinationSystemType string `mapstructure:"DESTINATION_SYSTEM_TYPE"`

	// Redis configuration (reference-data cache and the refresh worker queue).
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Kiosk device session settings.
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	KioskAccessHash    string `mapstructure:"KIOSK_ACCESS_HASH"`
	SessionTTLMinutes  int    `mapstructure:"SESSION_TTL_MINUTES"`
	RefDataRefreshMins int    `mapstructure:"REFDATA_REFRESH_MINS"`
}

// Load reads config.yaml (current dir or ./config) plus environment variables
// and returns the resulting configuration.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SYSTEM_TYPE", "KIOSK")
	viper.SetDefault("LANGUAGE", "E")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 3)
	viper.SetDefault("SESSION_TTL_MINUTES", 60)
	viper.SetDefault("REFDATA_REFRESH_MINS", 360)

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; environment variables alone can carry it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.DotsURL == "" {
		return nil, fmt.Errorf("DOTS_URL is required")
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
