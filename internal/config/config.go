// Package config loads application configuration from config.yaml with
// environment overrides (WASTE_ prefix, e.g. WASTE_DATABASE_DSN).
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Booking      BookingConfig      `mapstructure:"booking"`
	Municipality MunicipalityConfig `mapstructure:"municipality"`
	Auth         AuthConfig         `mapstructure:"auth"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type BookingConfig struct {
	SlotCapacity int64 `mapstructure:"slot_capacity"`
}

type MunicipalityConfig struct {
	URL      string        `mapstructure:"url"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	StaffUsername string        `mapstructure:"staff_username"`
	StaffPassword string        `mapstructure:"staff_password"`
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.dsn", "waste.db")
	v.SetDefault("booking.slot_capacity", 15)
	v.SetDefault("municipality.url", "https://json.geoapi.pt/municipio")
	v.SetDefault("municipality.cache_ttl", time.Hour)
	v.SetDefault("municipality.timeout", 10*time.Second)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 8*time.Hour)
	v.SetDefault("auth.staff_username", "staff")
	v.SetDefault("auth.staff_password", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("WASTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// config file is optional, env and defaults may carry everything
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
