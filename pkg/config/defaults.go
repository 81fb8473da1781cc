package config

import "time"

const (
	DotEnvFile = ".env"

	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultSimulatedLatency = 300 * time.Millisecond
	DefaultFailureRate      = 0.0
	DefaultCommissionRate   = 0.10

	DefaultSessionSecret     = "dev-session-secret-change-me"
	DefaultSessionTTL        = 24 * time.Hour
	DefaultDemoLoginEnabled  = true
	DefaultAdminResetEnabled = false

	DefaultRateLimitRequests = 120
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultKafkaTopic = "marketplace.events"
)
