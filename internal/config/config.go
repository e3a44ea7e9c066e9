// Package config provides configuration management for the race-lens application.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Analysis AnalysisConfig `mapstructure:"analysis" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache" validate:"required"`
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Data     DataConfig     `mapstructure:"data" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// AnalysisConfig represents analysis engine tuning
type AnalysisConfig struct {
	Takeout           float64 `mapstructure:"takeout" validate:"gte=0,lt=1"`
	PriorityThreshold int     `mapstructure:"priority_threshold" validate:"gte=0"`
}

// CacheConfig represents the analysis result cache configuration
type CacheConfig struct {
	TTLSeconds             int `mapstructure:"ttl_seconds" validate:"required,gt=0"`
	CleanupIntervalSeconds int `mapstructure:"cleanup_interval_seconds" validate:"required,gt=0"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host                   string   `mapstructure:"host" validate:"required"`
	Port                   int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	CORSOrigins            []string `mapstructure:"cors_origins" validate:"required,min=1"`
	ReadTimeoutSeconds     int      `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds    int      `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`
}

// DataConfig represents race data file storage configuration
type DataConfig struct {
	RaceDataDir string `mapstructure:"race_data_dir" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// ServerAddr returns the host:port listen address for the HTTP server
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// CacheTTL returns the cache entry lifetime as a duration
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// CacheCleanupInterval returns the cache sweep interval as a duration
func (c *Config) CacheCleanupInterval() time.Duration {
	return time.Duration(c.Cache.CleanupIntervalSeconds) * time.Second
}
