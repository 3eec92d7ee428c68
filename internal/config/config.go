// Package config loads runtime settings for the wallet client. Sources are
// layered, later ones overriding earlier: built-in defaults, a JSON file
// (path from -c/-config), environment variables, command-line flags.
package config

import "time"

// Config holds runtime settings for the wallet client.
type Config struct {
	// APIBaseURL is the root of the identity backend, e.g. "https://api.example.com".
	APIBaseURL string `env:"PASSWALLET_API_BASE_URL"`

	// RequestTimeout bounds each identity request; one attempt per call.
	RequestTimeout time.Duration `env:"PASSWALLET_REQUEST_TIMEOUT"`

	// DatabasePath is the sqlite file backing the credential store and
	// profile cache.
	DatabasePath string `env:"PASSWALLET_DATABASE_PATH"`

	// KeyfilePath is the device-bound keyfile sealing stored credentials.
	KeyfilePath string `env:"PASSWALLET_KEYFILE_PATH"`

	// DebounceInterval is the quiet period for availability checks.
	DebounceInterval time.Duration `env:"PASSWALLET_DEBOUNCE_INTERVAL"`

	// DefaultCurrency and DefaultNetwork fill profile fields the server
	// omits.
	DefaultCurrency string `env:"PASSWALLET_DEFAULT_CURRENCY"`
	DefaultNetwork  string `env:"PASSWALLET_DEFAULT_NETWORK"`

	// Biometrics toggles the dev bridge's reported biometric capability.
	Biometrics bool `env:"PASSWALLET_BIOMETRICS"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 12 * time.Second
	c.DatabasePath = "wallet.db"
	c.KeyfilePath = "wallet.key"
	c.DebounceInterval = 600 * time.Millisecond
	c.DefaultCurrency = "USD"
	c.DefaultNetwork = "mainnet"
	c.Biometrics = true
}

// LoadConfig constructs a Config from all sources.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	return cfg, nil
}
