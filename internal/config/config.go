// Package config assembles the daemon configuration from an optional
// yaml file plus environment variables. Env always wins over the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DatabaseURL     string `yaml:"database_url"`
	DestDatabaseURL string `yaml:"dest_database_url"`

	EnableReplayer    bool `yaml:"enable_replayer"`
	EnableArchiver    bool `yaml:"enable_archiver"`
	EnableDistributor bool `yaml:"enable_distributor"`
	EnableStreamAPI   bool `yaml:"enable_stream_api"`

	ReplayerExecutor         string `yaml:"replayer_executor"`
	ReplayerAccountStore     string `yaml:"replayer_account_store"` // memory | pebble
	ReplayerAccountStorePath string `yaml:"replayer_account_store_path"`

	ArchiverProfile          string `yaml:"archiver_profile"`
	ArchiverWorkdir          string `yaml:"archiver_workdir"`
	ArchiverRcloneRemotePath string `yaml:"archiver_rclone_remote_path"`
	ArchiverDeriver          string `yaml:"archiver_deriver"` // empty disables derivation

	DistributorProfile         string `yaml:"distributor_profile"`
	DistributorKeepBlockHeight uint64 `yaml:"distributor_keep_block_height"`
	DestTLSCert                string `yaml:"dest_tls_cert"`
	DestTLSKey                 string `yaml:"dest_tls_key"`
	DestTLSCA                  string `yaml:"dest_tls_ca"`

	StreamAPIPort        int     `yaml:"stream_api_port"`
	StreamRateLimitRPS   float64 `yaml:"stream_rate_limit_rps"`
	StreamRateLimitBurst int     `yaml:"stream_rate_limit_burst"`
}

func defaults() Config {
	return Config{
		EnableReplayer:             true,
		EnableArchiver:             true,
		EnableDistributor:          true,
		EnableStreamAPI:            true,
		ReplayerAccountStore:       "memory",
		DistributorKeepBlockHeight: 648000,
		StreamAPIPort:              7683,
	}
}

// Load reads the yaml file at path (skipped when path is empty), then
// applies environment overrides on top.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()
	return &cfg, nil
}

// FromEnv loads the file named by CONFIG_FILE, or env only.
func FromEnv() (*Config, error) {
	return Load(strings.TrimSpace(os.Getenv("CONFIG_FILE")))
}

func (c *Config) applyEnv() {
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.DestDatabaseURL, "DEST_DATABASE_URL")

	setBool(&c.EnableReplayer, "ENABLE_REPLAYER")
	setBool(&c.EnableArchiver, "ENABLE_ARCHIVER")
	setBool(&c.EnableDistributor, "ENABLE_DISTRIBUTOR")
	setBool(&c.EnableStreamAPI, "ENABLE_STREAM_API")

	setString(&c.ReplayerExecutor, "REPLAYER_EXECUTOR")
	setString(&c.ReplayerAccountStore, "REPLAYER_ACCOUNT_STORE")
	setString(&c.ReplayerAccountStorePath, "REPLAYER_ACCOUNT_STORE_PATH")

	setString(&c.ArchiverProfile, "ARCHIVER_PROFILE")
	setString(&c.ArchiverWorkdir, "ARCHIVER_WORKDIR")
	setString(&c.ArchiverRcloneRemotePath, "ARCHIVER_RCLONE_REMOTE_PATH")
	setString(&c.ArchiverDeriver, "ARCHIVER_DERIVER")

	setString(&c.DistributorProfile, "DISTRIBUTOR_PROFILE")
	setUint(&c.DistributorKeepBlockHeight, "DISTRIBUTOR_KEEP_BLOCK_HEIGHT")
	setString(&c.DestTLSCert, "DEST_TLS_CERT")
	setString(&c.DestTLSKey, "DEST_TLS_KEY")
	setString(&c.DestTLSCA, "DEST_TLS_CA")

	setInt(&c.StreamAPIPort, "STREAM_API_PORT")
	setFloat(&c.StreamRateLimitRPS, "STREAM_RATE_LIMIT_RPS")
	setInt(&c.StreamRateLimitBurst, "STREAM_RATE_LIMIT_BURST")
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v != "false" && v != "0"
	}
}

func setInt(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setUint(dst *uint64, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = n
		}
	}
}
