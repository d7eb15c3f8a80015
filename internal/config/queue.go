package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvQueueAddr     = "GRADALYZE_QUEUE_ADDR"
	EnvQueuePassword = "GRADALYZE_QUEUE_PASSWORD"
	EnvQueueDB       = "GRADALYZE_QUEUE_DB"
)

// QueueConfig holds Redis connection settings for the job scrape queue.
type QueueConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *QueueConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *QueueConfig) Merge(overlay *QueueConfig) {
	if overlay.Addr != "" {
		c.Addr = overlay.Addr
	}
	if overlay.Password != "" {
		c.Password = overlay.Password
	}
	if overlay.DB != 0 {
		c.DB = overlay.DB
	}
}

func (c *QueueConfig) loadDefaults() {
	if c.Addr == "" {
		c.Addr = "localhost:6379"
	}
}

func (c *QueueConfig) loadEnv() {
	if v := os.Getenv(EnvQueueAddr); v != "" {
		c.Addr = v
	}
	if v := os.Getenv(EnvQueuePassword); v != "" {
		c.Password = v
	}
	if v := os.Getenv(EnvQueueDB); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.DB = db
		}
	}
}

func (c *QueueConfig) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr required")
	}
	if c.DB < 0 {
		return fmt.Errorf("invalid db: %d", c.DB)
	}
	return nil
}
