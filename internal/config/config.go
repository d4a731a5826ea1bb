// Package config loads pocket's settings from viper (config file, POCKET_
// environment variables and flags) into a typed Config.
package config

import (
	"fmt"
	"strings"

	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/spf13/viper"
)

// Viper keys.
const (
	KeyStoragePath           = "storage.path"
	KeyStorageKey            = "storage.key"
	KeyStorageEphemeral      = "storage.ephemeral"
	KeyBackupDir             = "backup.dir"
	KeyDisplayLocale         = "display.locale"
	KeyDisplayCurrency       = "display.currency"
	KeyImportDefaultCategory = "import.default_category"
	KeySnapshotsAuto         = "snapshots.auto"
	KeyLoggingLevel          = "logging.level"
	KeyLoggingFormat         = "logging.format"
)

// DefaultStorageKey is the fixed key of the persisted ledger slot.
const DefaultStorageKey = "pocket_ledger_data"

// Config holds pocket's runtime settings.
type Config struct {
	StoragePath           string
	StorageKey            string
	BackupDir             string
	Locale                string
	Currency              string
	ImportDefaultCategory string
	LogLevel              string
	LogFormat             string
	Ephemeral             bool
	AutoSnapshot          bool
}

// EnvPrefix is the prefix of environment overrides, e.g. POCKET_STORAGE_PATH.
const EnvPrefix = "POCKET"

// BindEnv makes every key overridable from POCKET_* environment variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyStoragePath, "$HOME/.local/share/pocket/pocket.db")
	v.SetDefault(KeyStorageKey, DefaultStorageKey)
	v.SetDefault(KeyStorageEphemeral, false)
	v.SetDefault(KeyBackupDir, ".")
	v.SetDefault(KeyDisplayLocale, "vi-VN")
	v.SetDefault(KeyDisplayCurrency, "VND")
	v.SetDefault(KeyImportDefaultCategory, model.CategoryOther)
	v.SetDefault(KeySnapshotsAuto, true)
	v.SetDefault(KeyLoggingLevel, "info")
	v.SetDefault(KeyLoggingFormat, "console")
}

// Load reads a Config out of v, expanding paths and validating the result.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		StoragePath:           ExpandPath(v.GetString(KeyStoragePath)),
		StorageKey:            v.GetString(KeyStorageKey),
		BackupDir:             ExpandPath(v.GetString(KeyBackupDir)),
		Locale:                v.GetString(KeyDisplayLocale),
		Currency:              v.GetString(KeyDisplayCurrency),
		ImportDefaultCategory: v.GetString(KeyImportDefaultCategory),
		LogLevel:              v.GetString(KeyLoggingLevel),
		LogFormat:             v.GetString(KeyLoggingFormat),
		Ephemeral:             v.GetBool(KeyStorageEphemeral),
		AutoSnapshot:          v.GetBool(KeySnapshotsAuto),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate collects every configuration problem into a single error.
func (c *Config) Validate() error {
	var problems []string

	if !c.Ephemeral && strings.TrimSpace(c.StoragePath) == "" {
		problems = append(problems, "storage.path cannot be empty")
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		problems = append(problems, "storage.key cannot be empty")
	}
	if strings.TrimSpace(c.BackupDir) == "" {
		problems = append(problems, "backup.dir cannot be empty")
	}
	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be console or json", c.LogFormat))
	}
	if strings.TrimSpace(c.ImportDefaultCategory) == "" {
		problems = append(problems, "import.default_category cannot be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w:\n- %s", common.ErrInvalidConfig, strings.Join(problems, "\n- "))
	}
	return nil
}

// PrepareStorage makes sure the database directory exists.
func (c *Config) PrepareStorage() error {
	if c.Ephemeral {
		return nil
	}
	if err := ensureParentDir(c.StoragePath); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	return nil
}
