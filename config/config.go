package config

import (
	"ClinicFlow/utils"
	"time"
)

// AppConfig holds the application configuration
type AppConfig struct {
	DBURL              string
	RedisAddress       string
	BearerToken        string
	StockSweepInterval time.Duration
	AlertMailer        *utils.Mailer
}

// GetBearerToken returns the BearerToken from the config
func (c *AppConfig) GetBearerToken() string {
	return c.BearerToken
}
