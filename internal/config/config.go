// Package config handles application configuration from environment
// variables, with an optional TOML file overlay for CLI use.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jmh889/dexflow/internal/addr"
)

// Config holds all application configuration
type Config struct {
	// Logging
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"` // "text" or "json"

	// Blockchain settings
	RPCURL     string `toml:"rpc_url"`
	ChainID    int64  `toml:"chain_id"`
	PrivateKey string `toml:"-"` // Never read from a config file

	// Contract addresses
	Token0Contract string `toml:"token0_contract"`
	Token1Contract string `toml:"token1_contract"`
	PoolContract   string `toml:"pool_contract"`
	RouterContract string `toml:"router_contract"`
	FaucetContract string `toml:"faucet_contract"`

	// Trade settings
	SlippageBps         int           `toml:"slippage_bps"`
	ConfirmationTimeout time.Duration `toml:"-"`
}

// Base Sepolia defaults
const (
	DefaultRPCURL      = "https://sepolia.base.org"
	DefaultChainID     = 84532 // Base Sepolia
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultSlippageBps = 50 // 0.5%

	DefaultConfirmationTimeout = 30 * time.Second
)

// Load reads configuration from environment variables, then overlays the
// TOML file at path if one is given. It loads .env first if present (for
// local development). Environment values win over file values so a secret
// can never be silently overridden from a checked-in file.
func Load(path string) (*Config, error) {
	// Load .env file if it exists (ignore error if not present)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:            DefaultLogLevel,
		LogFormat:           DefaultLogFormat,
		RPCURL:              DefaultRPCURL,
		ChainID:             DefaultChainID,
		SlippageBps:         DefaultSlippageBps,
		ConfirmationTimeout: DefaultConfirmationTimeout,
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setEnv(&cfg.LogLevel, "LOG_LEVEL")
	setEnv(&cfg.LogFormat, "LOG_FORMAT")
	setEnv(&cfg.RPCURL, "RPC_URL")
	setEnvInt64(&cfg.ChainID, "CHAIN_ID")
	setEnv(&cfg.PrivateKey, "PRIVATE_KEY")
	setEnv(&cfg.Token0Contract, "TOKEN0_CONTRACT")
	setEnv(&cfg.Token1Contract, "TOKEN1_CONTRACT")
	setEnv(&cfg.PoolContract, "POOL_CONTRACT")
	setEnv(&cfg.RouterContract, "ROUTER_CONTRACT")
	setEnv(&cfg.FaucetContract, "FAUCET_CONTRACT")
	setEnvInt(&cfg.SlippageBps, "SLIPPAGE_BPS")
}

// Validate checks that all required configuration is present
func (c *Config) Validate() error {
	if c.PrivateKey == "" {
		return fmt.Errorf("PRIVATE_KEY is required")
	}
	key := c.PrivateKey
	if len(key) == 66 && key[:2] == "0x" {
		key = key[2:]
	}
	if len(key) != 64 {
		return fmt.Errorf("PRIVATE_KEY must be 64 hex characters (with or without 0x prefix)")
	}

	if c.RPCURL == "" {
		return fmt.Errorf("RPC_URL is required")
	}

	if c.SlippageBps < 0 || c.SlippageBps > 10000 {
		return fmt.Errorf("SLIPPAGE_BPS must be in [0, 10000], got %d", c.SlippageBps)
	}

	// Every on-chain operation targets one of these; an unset contract
	// would silently resolve to the zero address.
	for name, value := range map[string]string{
		"TOKEN0_CONTRACT": c.Token0Contract,
		"TOKEN1_CONTRACT": c.Token1Contract,
		"POOL_CONTRACT":   c.PoolContract,
		"ROUTER_CONTRACT": c.RouterContract,
		"FAUCET_CONTRACT": c.FaucetContract,
	} {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
		if !addr.IsValid(value) {
			return fmt.Errorf("%s is not a valid address: %q", name, value)
		}
	}

	return nil
}

// Helper functions

func setEnv(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func setEnvInt64(dst *int64, key string) {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			*dst = i
		}
	}
}

func setEnvInt(dst *int, key string) {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			*dst = i
		}
	}
}
