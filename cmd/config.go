package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"ftl/internal/core/domain/model/semantic"
	"ftl/internal/pkg/errs"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	SLPURL                 string
	SLPToken               string
	SCVLOntology           string
	LedgerTimeout          time.Duration
	LedgerProbeSchedule    string
	KafkaHost              string
	KafkaOrderChangedTopic string
	RedisAddr              string
	AssetCacheTTL          time.Duration
	OTLPEndpoint           string
	LogLevel               string
}

// LoadConfig reads the environment, after loading envFile when it exists.
// Call Validate before serving.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	ledgerTimeout, err := durationVariable("LEDGER_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	cacheTTL, err := durationVariable("ASSET_CACHE_TTL", time.Hour)
	if err != nil {
		return Config{}, err
	}

	config := Config{
		HTTPPort:               stringVariable("HTTP_PORT", "8000"),
		DBHost:                 stringVariable("DB_HOST", "localhost"),
		DBPort:                 stringVariable("DB_PORT", "5432"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              os.Getenv("DB_SSLMODE"),
		SLPURL:                 os.Getenv("SLP_URL"),
		SLPToken:               os.Getenv("SLP_TOKEN"),
		SCVLOntology:           stringVariable("SCVL_ONTOLOGY", semantic.DefaultNamespace),
		LedgerTimeout:          ledgerTimeout,
		LedgerProbeSchedule:    os.Getenv("LEDGER_PROBE_SCHEDULE"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: stringVariable("KAFKA_ORDER_CHANGED_TOPIC", "ftl.order.status_changed"),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		AssetCacheTTL:          cacheTTL,
		OTLPEndpoint:           os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		LogLevel:               os.Getenv("LOG_LEVEL"),
	}
	return config, nil
}

// Validate checks the settings the service cannot start without.
func (c Config) Validate() error {
	var err error
	if c.DBName == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("DB_NAME"))
	}
	if c.SLPURL == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("SLP_URL"))
	}
	if c.SLPToken == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("SLP_TOKEN"))
	}
	if c.KafkaHost != "" && c.KafkaOrderChangedTopic == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("KAFKA_ORDER_CHANGED_TOPIC"))
	}
	return err
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, host := range strings.Split(c.KafkaHost, ",") {
		if host = strings.TrimSpace(host); host != "" {
			brokers = append(brokers, host)
		}
	}
	return brokers
}

func stringVariable(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func durationVariable(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	if d <= 0 {
		return 0, errs.NewValueIsOutOfRangeError(key, d, time.Nanosecond, time.Duration(1<<63-1))
	}
	return d, nil
}
