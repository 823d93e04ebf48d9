package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	SessionSecret     string
	SessionTTL        time.Duration
	PaystackBaseURL   string
	PaystackSecretKey string
	PublicBaseURL     string
	AMQPURL           string
	EventsExchange    string
	PolicyFile        string
	LogLevel          string
	ReconcileInterval time.Duration
	ReconcileBatch    int
	WorkerPoolSize    int
	ShutdownTimeout   time.Duration
}

// Args are the command line arguments handed to the configuration loader.
type Args []string

const (
	defaultRunAddress        = ":8080"
	defaultSessionSecret     = "change-me-in-production"
	defaultSessionTTL        = 24 * time.Hour
	defaultPaystackBaseURL   = "https://api.paystack.co"
	defaultPublicBaseURL     = "http://localhost:8080"
	defaultEventsExchange    = "stitchcraft.events"
	defaultLogLevel          = "info"
	defaultReconcileInterval = 30 * time.Second
	defaultReconcileBatch    = 20
	defaultWorkerPoolSize    = 4
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from process flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

// LoadArgs parses configuration from the given arguments and the environment.
func LoadArgs(args Args) (*Config, error) {
	return load(args, os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		SessionSecret:     getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		SessionTTL:        getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		PaystackBaseURL:   getString(lookup, "PAYSTACK_BASE_URL", defaultPaystackBaseURL),
		PaystackSecretKey: getString(lookup, "PAYSTACK_SECRET_KEY", ""),
		PublicBaseURL:     getString(lookup, "PUBLIC_BASE_URL", defaultPublicBaseURL),
		AMQPURL:           getString(lookup, "AMQP_URL", ""),
		EventsExchange:    getString(lookup, "EVENTS_EXCHANGE", defaultEventsExchange),
		PolicyFile:        getString(lookup, "POLICY_FILE", ""),
		LogLevel:          getString(lookup, "LOG_LEVEL", defaultLogLevel),
		ReconcileInterval: getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		ReconcileBatch:    getInt(lookup, "RECONCILE_BATCH", defaultReconcileBatch),
		WorkerPoolSize:    getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("stitchcraft", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sessionTTLStr        = cfg.SessionTTL.String()
		reconcileIntervalStr = cfg.ReconcileInterval.String()
		shutdownTimeoutStr   = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for signing session tokens")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Session token lifetime")
	fs.StringVar(&cfg.PaystackBaseURL, "paystack-url", cfg.PaystackBaseURL, "Payment provider base URL")
	fs.StringVar(&cfg.PublicBaseURL, "public-url", cfg.PublicBaseURL, "Public base URL used for provider callbacks")
	fs.StringVar(&cfg.AMQPURL, "amqp", cfg.AMQPURL, "RabbitMQ URL, empty disables event publishing")
	fs.StringVar(&cfg.EventsExchange, "events-exchange", cfg.EventsExchange, "Exchange for domain events")
	fs.StringVar(&cfg.PolicyFile, "policy", cfg.PolicyFile, "YAML permission policy overriding the built-in table")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	fs.StringVar(&reconcileIntervalStr, "reconcile-interval", reconcileIntervalStr, "Interval between pending checkout sweeps")
	fs.IntVar(&cfg.ReconcileBatch, "reconcile-batch", cfg.ReconcileBatch, "Maximum checkouts per sweep")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconcile workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.SessionSecret, err = fromFile(lookup, "SESSION_SECRET_FILE", cfg.SessionSecret); err != nil {
		return nil, fmt.Errorf("read session secret file: %w", err)
	}

	if cfg.PaystackSecretKey, err = fromFile(lookup, "PAYSTACK_SECRET_KEY_FILE", cfg.PaystackSecretKey); err != nil {
		return nil, fmt.Errorf("read paystack secret file: %w", err)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ReconcileBatch <= 0 {
		cfg.ReconcileBatch = defaultReconcileBatch
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.PaystackSecretKey == "" {
		return nil, fmt.Errorf("paystack secret key must be provided")
	}

	return cfg, nil
}

func fromFile(lookup envLookup, key, current string) (string, error) {
	path, ok := lookup(key)
	if !ok || path == "" {
		return current, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(content)), nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
