package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mkorchagin/passwallet/internal/flagx"
	"github.com/mkorchagin/passwallet/internal/timex"
)

// jsonConfig is the DTO for the JSON config file. Durations accept either
// strings like "750ms" or integer nanoseconds via timex.Duration. Pointer
// fields distinguish "absent" from "zero" so the file only overrides what
// it mentions.
type jsonConfig struct {
	APIBaseURL       *string         `json:"api_base_url"`
	RequestTimeout   *timex.Duration `json:"request_timeout"`
	DatabasePath     *string         `json:"database_path"`
	KeyfilePath      *string         `json:"keyfile_path"`
	DebounceInterval *timex.Duration `json:"debounce_interval"`
	DefaultCurrency  *string         `json:"default_currency"`
	DefaultNetwork   *string         `json:"default_network"`
	Biometrics       *bool           `json:"biometrics"`
}

// parseJSON overlays cfg with values from the JSON file named by the
// -c/-config flags. No flag, no file, no overlay.
func parseJSON(cfg *Config) error {
	path := flagx.ConfigFilePath()
	if path == "" {
		return nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(b, &jc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Std()
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.KeyfilePath != nil {
		cfg.KeyfilePath = *jc.KeyfilePath
	}
	if jc.DebounceInterval != nil {
		cfg.DebounceInterval = jc.DebounceInterval.Std()
	}
	if jc.DefaultCurrency != nil {
		cfg.DefaultCurrency = *jc.DefaultCurrency
	}
	if jc.DefaultNetwork != nil {
		cfg.DefaultNetwork = *jc.DefaultNetwork
	}
	if jc.Biometrics != nil {
		cfg.Biometrics = *jc.Biometrics
	}
	return nil
}
