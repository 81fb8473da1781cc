package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:              "8080",
		SimulatedLatency:  0,
		CommissionRate:    0.10,
		SessionSecret:     "0123456789abcdef",
		SessionTTL:        time.Hour,
		RateLimitRequests: 10,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    time.Second,
		IdempotencyTTL:    time.Hour,
		MaxRequestSize:    1024,
		ReadTimeout:       time.Second,
		WriteTimeout:      time.Second,
		IdleTimeout:       time.Second,
		ShutdownTimeout:   time.Second,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Port = "70000" }, "Port must be between"},
		{"negative latency", func(c *Config) { c.SimulatedLatency = -time.Second }, "SimulatedLatency"},
		{"failure rate above one", func(c *Config) { c.FailureRate = 1.5 }, "FailureRate"},
		{"commission of 100 percent", func(c *Config) { c.CommissionRate = 1 }, "CommissionRate"},
		{"short secret", func(c *Config) { c.SessionSecret = "short" }, "SessionSecret"},
		{"zero timeout", func(c *Config) { c.ReadTimeout = 0 }, "ReadTimeout must be positive"},
		{"kafka without topic", func(c *Config) {
			c.KafkaBrokers = []string{"localhost:9092"}
			c.KafkaTopic = ""
		}, "KafkaTopic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_AccumulatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.SessionTTL = 0
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "1. ") || !strings.Contains(err.Error(), "2. ") {
		t.Errorf("expected two numbered problems, got %q", err.Error())
	}
}

func TestEnvGetters(t *testing.T) {
	t.Setenv("TEST_FLOAT", "0.25")
	t.Setenv("TEST_BOOL", "false")
	t.Setenv("TEST_LIST", " a:1, ,b:2 ")
	t.Setenv("TEST_DURATION", "not-a-duration")

	if got := getEnvFloat("TEST_FLOAT", 0.1); got != 0.25 {
		t.Errorf("getEnvFloat = %g", got)
	}
	if got := getEnvBool("TEST_BOOL", true); got {
		t.Error("getEnvBool should read false")
	}
	if got := getEnvList("TEST_LIST"); len(got) != 2 || got[0] != "a:1" || got[1] != "b:2" {
		t.Errorf("getEnvList = %v", got)
	}
	if got := getEnvDuration("TEST_DURATION", time.Second); got != time.Second {
		t.Errorf("invalid duration should fall back, got %s", got)
	}
	if got := getEnvList("TEST_UNSET_LIST"); got != nil {
		t.Errorf("unset list should be nil, got %v", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	if err := loadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("missing file: unexpected error %v", err)
	}

	valid := filepath.Join(dir, "valid.env")
	if err := os.WriteFile(valid, []byte("MARKETPLACE_DOTENV_TEST=loaded\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("MARKETPLACE_DOTENV_TEST") })
	if err := loadDotEnv(valid); err != nil {
		t.Fatalf("valid file: unexpected error %v", err)
	}
	if got := os.Getenv("MARKETPLACE_DOTENV_TEST"); got != "loaded" {
		t.Errorf("MARKETPLACE_DOTENV_TEST = %q, want loaded", got)
	}

	malformed := filepath.Join(dir, "malformed.env")
	if err := os.WriteFile(malformed, []byte("SESSION_SECRET=\"unterminated\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	err := loadDotEnv(malformed)
	if err == nil {
		t.Fatal("malformed file: expected an error")
	}
	if !strings.Contains(err.Error(), "malformed.env") {
		t.Errorf("error %q does not name the file", err)
	}
}
