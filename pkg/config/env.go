package config

const (
	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvSimulatedLatency = "SIMULATED_LATENCY"
	EnvFailureRate      = "FAILURE_RATE"
	EnvCommissionRate   = "COMMISSION_RATE"

	EnvSessionSecret     = "SESSION_SECRET"
	EnvSessionTTL        = "SESSION_TTL"
	EnvDemoLoginEnabled  = "DEMO_LOGIN_ENABLED"
	EnvAdminResetEnabled = "ADMIN_RESET_ENABLED"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvKafkaBrokers = "KAFKA_BROKERS"
	EnvKafkaTopic   = "KAFKA_TOPIC"
)
