package session

import (
	"fmt"
	"log/slog"
	"time"

	"smtpwiretool/internal/common/validation"
)

// Config holds per-session configuration.
type Config struct {
	// SMTP server address.
	Host string
	Port int

	// LocalName is the client hostname announced in HELO/EHLO.
	LocalName string

	// DialTimeout bounds TCP connection establishment.
	DialTimeout time.Duration

	// ReplyTimeout bounds the wait for a single command's reply.
	// Zero disables the timeout; a caller-supplied context still applies.
	ReplyTimeout time.Duration

	// RateLimit is the maximum commands per second (0 = unlimited).
	RateLimit float64

	// Logger receives wire traffic at debug level. Nil disables logging.
	Logger *slog.Logger
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Port:         25,
		LocalName:    "localhost",
		DialTimeout:  30 * time.Second,
		ReplyTimeout: 30 * time.Second,
	}
}

// Validate checks that the configuration is usable for dialing.
func (c *Config) Validate() error {
	if err := validation.ValidateHostname(c.Host); err != nil {
		return fmt.Errorf("invalid host: %w", err)
	}
	if err := validation.ValidatePort(c.Port); err != nil {
		return fmt.Errorf("invalid port: %w", err)
	}
	if c.LocalName == "" {
		return fmt.Errorf("local name cannot be empty")
	}
	return nil
}
