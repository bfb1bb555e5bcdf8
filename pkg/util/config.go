package util

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the daemon configuration, loaded from a JSON file with env
// overrides for the secrets.
type Config struct {
	Mnemonic string `json:"mnemonic"`

	EthURL      string `json:"ethUrl"`
	ChainID     int64  `json:"chainId"`
	SwapAddress string `json:"swapAddress"`

	LNDHost         string `json:"lndHost"`
	LNDTLSCertPath  string `json:"lndTlsCertPath"`
	LNDMacaroonPath string `json:"lndMacaroonPath"`

	Relays []string `json:"relays"`
	Topic  string   `json:"topic"`

	DB string `json:"db"`

	RPCAddr     string `json:"rpcAddr"`
	RPCUsername string `json:"rpcUsername"`
	RPCPassword string `json:"rpcPassword"`

	LockMarginSeconds int64 `json:"lockMarginSeconds"`
	AllowSelfAccept   bool  `json:"allowSelfAccept"`
	AutoRefund        bool  `json:"autoRefund"`
}

// DefaultConfigDir is where the daemon keeps its config and database.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".swapd"
	}
	return filepath.Join(home, ".swapd")
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

func DefaultStorePath() string {
	return filepath.Join(DefaultConfigDir(), "swapd.db")
}

// LoadConfig reads the config file and applies env overrides. SWAPD_MNEMONIC
// and SWAPD_RPC_PASSWORD take precedence over the file so secrets can stay
// out of it.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %v: %w", path, err)
	}
	var config Config
	if err := json.Unmarshal(raw, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %v: %w", path, err)
	}

	if mnemonic := os.Getenv("SWAPD_MNEMONIC"); mnemonic != "" {
		config.Mnemonic = mnemonic
	}
	if password := os.Getenv("SWAPD_RPC_PASSWORD"); password != "" {
		config.RPCPassword = password
	}
	return config, config.Validate()
}

func (config Config) Validate() error {
	if config.Mnemonic == "" {
		return fmt.Errorf("mnemonic is not set")
	}
	if config.EthURL == "" {
		return fmt.Errorf("ethUrl is not set")
	}
	if config.ChainID <= 0 {
		return fmt.Errorf("chainId is not set")
	}
	if config.SwapAddress == "" {
		return fmt.Errorf("swapAddress is not set")
	}
	if config.LNDHost == "" {
		return fmt.Errorf("lndHost is not set")
	}
	if len(config.Relays) == 0 {
		return fmt.Errorf("no relays configured")
	}
	return nil
}

// WriteConfig persists the config, creating the config dir if needed.
func WriteConfig(path string, config Config) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}
