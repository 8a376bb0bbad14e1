// Package config handles the XDG configuration directory, its files and
// environment settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "chaintask"

	// SessionFile is the stored wallet session filename.
	SessionFile = "session.json"

	// DeploymentsFile lists contract deployments per network.
	DeploymentsFile = "deployments.yaml"

	// EnvFile is loaded from the config directory before reading settings.
	EnvFile = ".env"

	// DefaultNetwork is used when CHAINTASK_NETWORK is unset.
	DefaultNetwork = "development"

	// DefaultContractID is the registry id of the task management contract.
	DefaultContractID = "taskManagement"

	// DefaultTimeout bounds a single gateway request.
	DefaultTimeout = 30 * time.Second
)

// Environment variable names.
const (
	EnvGatewayURL   = "CHAINTASK_GATEWAY_URL"
	EnvNetwork      = "CHAINTASK_NETWORK"
	EnvContract     = "CHAINTASK_CONTRACT"
	EnvToken        = "CHAINTASK_TOKEN"
	EnvClientID     = "CHAINTASK_CLIENT_ID"
	EnvClientSecret = "CHAINTASK_CLIENT_SECRET"
	EnvTokenURL     = "CHAINTASK_TOKEN_URL"
	EnvTimeout      = "CHAINTASK_TIMEOUT"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// GatewayURL is the base URL of the contract gateway.
	GatewayURL string

	// Network selects the deployment the contract is resolved on.
	Network string

	// ContractID is the registry id of the contract to talk to.
	ContractID string

	// Token is a static bearer token for the gateway.
	Token string

	// ClientID, ClientSecret and TokenURL enable the client-credentials flow.
	ClientID     string
	ClientSecret string
	TokenURL     string

	// Timeout bounds a single gateway request.
	Timeout time.Duration
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/chaintask or $HOME/.config/chaintask.
// Settings are read from the environment after loading the .env file found in
// the config directory; variables already set in the process win.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}

	envPath := cfg.EnvPath()
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvFile, err)
		}
	}

	if err := cfg.readEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readEnv() error {
	c.GatewayURL = os.Getenv(EnvGatewayURL)
	c.Network = getenv(EnvNetwork, DefaultNetwork)
	c.ContractID = getenv(EnvContract, DefaultContractID)
	c.Token = os.Getenv(EnvToken)
	c.ClientID = os.Getenv(EnvClientID)
	c.ClientSecret = os.Getenv(EnvClientSecret)
	c.TokenURL = os.Getenv(EnvTokenURL)

	c.Timeout = DefaultTimeout
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid %s: %s", EnvTimeout, v)
		}
		c.Timeout = d
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SessionPath returns the path to the stored wallet session.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// DeploymentsPath returns the path to the contract deployments file.
func (c *Config) DeploymentsPath() string {
	return filepath.Join(c.Dir, DeploymentsFile)
}

// EnvPath returns the path to the optional .env file.
func (c *Config) EnvPath() string {
	return filepath.Join(c.Dir, EnvFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
