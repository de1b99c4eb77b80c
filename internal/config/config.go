package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"
)

const (
	defaultRPC            = "http://localhost:5050"
	defaultAlgorithm      = "failover"
	defaultManifest       = "manifest_dev.json"
	defaultReceiptTimeout = 120

	configFile   = "config.json"
	accountsFile = "accounts.json"
	historyFile  = "history.json"
	syncFile     = "sync.json"
	manifestFile = "manifest.json"
)

// Load reads config from dir (or creates defaults). dir defaults to ~/.universe.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".universe")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.configDir = dir
	if len(cfg.RPCURLs) == 0 {
		cfg.RPCURLs = []string{defaultRPC}
	}
	if cfg.ReceiptTimeout <= 0 {
		cfg.ReceiptTimeout = defaultReceiptTimeout
	}

	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// AddRPC appends an RPC URL.
func (c *Config) AddRPC(url string) error {
	if slices.Contains(c.RPCURLs, url) {
		return fmt.Errorf("RPC %s already configured", url)
	}
	c.RPCURLs = append(c.RPCURLs, url)
	return nil
}

// RemoveRPC removes an RPC URL.
func (c *Config) RemoveRPC(url string) error {
	idx := slices.Index(c.RPCURLs, url)
	if idx == -1 {
		return fmt.Errorf("RPC %s not configured", url)
	}
	c.RPCURLs = slices.Delete(c.RPCURLs, idx, idx+1)
	return nil
}

// ReceiptWait returns ReceiptTimeout as a duration.
func (c *Config) ReceiptWait() time.Duration {
	return time.Duration(c.ReceiptTimeout) * time.Second
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// AccountsPath is the file the wallet package persists accounts to.
func (c *Config) AccountsPath() string {
	return filepath.Join(c.configDir, accountsFile)
}

// LoadHistory reads history.json.
func (c *Config) LoadHistory() (*HistoryFile, error) {
	return loadJSON[HistoryFile](filepath.Join(c.configDir, historyFile))
}

// AppendHistory records e, keeping the newest MaxHistory entries.
func (c *Config) AppendHistory(e HistoryEntry) error {
	h, err := c.LoadHistory()
	if err != nil {
		return err
	}
	h.Entries = append(h.Entries, e)
	if n := len(h.Entries); n > MaxHistory {
		h.Entries = h.Entries[n-MaxHistory:]
	}
	return saveJSON(filepath.Join(c.configDir, historyFile), h)
}

// LoadSync reads sync.json.
func (c *Config) LoadSync() (*SyncConfig, error) {
	return loadJSON[SyncConfig](filepath.Join(c.configDir, syncFile))
}

// SaveSync writes sync.json.
func (c *Config) SaveSync(sc *SyncConfig) error {
	return saveJSON(filepath.Join(c.configDir, syncFile), sc)
}

// SyncedManifestPath is where a synced manifest is stored.
func (c *Config) SyncedManifestPath() string {
	return filepath.Join(c.configDir, manifestFile)
}

// --- helpers ---

func defaults(dir string) *Config {
	return &Config{
		RPCURLs:        []string{defaultRPC},
		RPCAlgorithm:   defaultAlgorithm,
		ManifestPath:   defaultManifest,
		ReceiptTimeout: defaultReceiptTimeout,
		configDir:      dir,
	}
}

func loadJSON[T any](path string) (*T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &zero, nil
	}
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func saveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
