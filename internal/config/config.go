package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sheikh-saqib/transaction-ledger-engine/internal/ledger"
	"github.com/sheikh-saqib/transaction-ledger-engine/internal/output"
)

const (
	SinkPostgres = "postgres"
	SinkKafka    = "kafka"
)

// Config is everything the CLI needs to build a run
type Config struct {
	LogLevel string // debug, info, warn or error

	MissingAmountPolicy   ledger.Policy
	MalformedRecordPolicy ledger.Policy
	Engine                ledger.Options

	OutputFormat output.Format

	Sinks        []string
	DatabaseURL  string
	KafkaBrokers []string
	KafkaTopic   string
}

// configFile mirrors the optional YAML file named by LEDGER_CONFIG
type configFile struct {
	LogLevel string `yaml:"log_level"`
	Policies struct {
		MissingAmount   string `yaml:"missing_amount"`
		MalformedRecord string `yaml:"malformed_record"`
	} `yaml:"policies"`
	Engine struct {
		RecordAmountsWhenLocked *bool `yaml:"record_amounts_when_locked"`
		RecordReferenceAmounts  bool  `yaml:"record_reference_amounts"`
		StrictDisputes          bool  `yaml:"strict_disputes"`
		VerifyDisputeOwner      bool  `yaml:"verify_dispute_owner"`
	} `yaml:"engine"`
	Output struct {
		Format string `yaml:"format"`
	} `yaml:"output"`
	Sinks    []string `yaml:"sinks"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Kafka struct {
		Brokers []string `yaml:"brokers"`
		Topic   string   `yaml:"topic"`
	} `yaml:"kafka"`
}

// Load builds the configuration from, in increasing priority: defaults,
// the YAML file at path (if any), a .env file in the working directory and
// the process environment.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var f configFile
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg := Config{
		LogLevel:   "info",
		Engine:     ledger.DefaultOptions(),
		KafkaTopic: "account_snapshots",
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if f.Engine.RecordAmountsWhenLocked != nil {
		cfg.Engine.RecordAmountsWhenLocked = *f.Engine.RecordAmountsWhenLocked
	}
	cfg.Engine.RecordReferenceAmounts = f.Engine.RecordReferenceAmounts
	cfg.Engine.StrictDisputes = f.Engine.StrictDisputes
	cfg.Engine.VerifyOwner = f.Engine.VerifyDisputeOwner
	cfg.Sinks = f.Sinks
	cfg.DatabaseURL = f.Postgres.URL
	cfg.KafkaBrokers = f.Kafka.Brokers
	if f.Kafka.Topic != "" {
		cfg.KafkaTopic = f.Kafka.Topic
	}

	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)

	// a value strconv.ParseBool rejects is a startup error
	bools := []struct {
		name   string
		target *bool
	}{
		{"RECORD_AMOUNTS_WHEN_LOCKED", &cfg.Engine.RecordAmountsWhenLocked},
		{"RECORD_REFERENCE_AMOUNTS", &cfg.Engine.RecordReferenceAmounts},
		{"STRICT_DISPUTES", &cfg.Engine.StrictDisputes},
		{"VERIFY_DISPUTE_OWNER", &cfg.Engine.VerifyOwner},
	}
	for _, b := range bools {
		v, err := envBool(b.name, *b.target)
		if err != nil {
			return Config{}, err
		}
		*b.target = v
	}

	cfg.Sinks = envList("SNAPSHOT_SINKS", cfg.Sinks)
	cfg.DatabaseURL = envString("DATABASE_URL", cfg.DatabaseURL)
	cfg.KafkaBrokers = envList("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.KafkaTopic = envString("KAFKA_TOPIC", cfg.KafkaTopic)

	var err error
	if cfg.MissingAmountPolicy, err = ledger.ParsePolicy(envString("MISSING_AMOUNT_POLICY", f.Policies.MissingAmount)); err != nil {
		return Config{}, fmt.Errorf("missing amount: %w", err)
	}
	cfg.Engine.MissingAmount = cfg.MissingAmountPolicy
	if cfg.MalformedRecordPolicy, err = ledger.ParsePolicy(envString("MALFORMED_RECORD_POLICY", f.Policies.MalformedRecord)); err != nil {
		return Config{}, fmt.Errorf("malformed record: %w", err)
	}
	if cfg.OutputFormat, err = output.ParseFormat(envString("OUTPUT_FORMAT", f.Output.Format)); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	for _, sink := range c.Sinks {
		switch sink {
		case SinkPostgres:
			if c.DatabaseURL == "" {
				return errors.New("postgres sink requires DATABASE_URL")
			}
		case SinkKafka:
			if len(c.KafkaBrokers) == 0 {
				return errors.New("kafka sink requires KAFKA_BROKERS")
			}
		default:
			return fmt.Errorf("unknown snapshot sink %q", sink)
		}
	}
	return nil
}

func envString(name, fallback string) string {
	if raw := strings.TrimSpace(os.Getenv(name)); raw != "" {
		return raw
	}
	return fallback
}

// envBool returns fallback when name is unset and an error when it is set
// to something strconv.ParseBool does not accept
func envBool(name string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback, fmt.Errorf("%s: invalid boolean %q", name, raw)
	}
	return v, nil
}

func envList(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
