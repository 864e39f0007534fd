// Package config loads the one small slice of user-adjustable behavior this
// vault has an opinion on: KDF cost overrides for new vaults and the
// session cache's default TTL.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the resolved configuration after merging file, env, and
// defaults.
type Config struct {
	KdfMemoryKiB int    `mapstructure:"kdf_mem_kib"`
	KdfTime      int    `mapstructure:"kdf_time"`
	AgentTTLMins int    `mapstructure:"agent_ttl_minutes"`
	VaultPath    string `mapstructure:"vault_path"`
}

// ValidationResult reports whether a loaded Config is within range, and
// names every field that isn't.
type ValidationResult struct {
	Valid  bool
	Errors []FieldError
}

// FieldError names one invalid field and why.
type FieldError struct {
	Field   string
	Message string
}

// GetDefaults returns the zero-override configuration.
func GetDefaults() Config {
	return Config{
		KdfMemoryKiB: 0, // 0 means "use internal/crypto's own default"
		KdfTime:      0,
		AgentTTLMins: 15,
	}
}

// Load reads config.yaml from <os.UserConfigDir()>/Obscura if present,
// merges environment variables, and validates the result.
func Load() (Config, ValidationResult) {
	cfg := GetDefaults()

	if dir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(dir, "Obscura"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}
	viper.SetEnvPrefix("OBSCURA")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
	_ = viper.Unmarshal(&cfg)

	return cfg, validate(cfg)
}

func validate(cfg Config) ValidationResult {
	var errs []FieldError
	if cfg.KdfMemoryKiB != 0 && (cfg.KdfMemoryKiB < 65536 || cfg.KdfMemoryKiB > 524288) {
		errs = append(errs, FieldError{Field: "kdf_mem_kib", Message: "must be between 65536 and 524288"})
	}
	if cfg.KdfTime != 0 && (cfg.KdfTime < 1 || cfg.KdfTime > 6) {
		errs = append(errs, FieldError{Field: "kdf_time", Message: "must be between 1 and 6"})
	}
	if cfg.AgentTTLMins < 0 {
		errs = append(errs, FieldError{Field: "agent_ttl_minutes", Message: "must not be negative"})
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
