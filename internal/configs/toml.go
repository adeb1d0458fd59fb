package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// UserConfig is the on-disk config.toml structure.
type UserConfig struct {
	Vault VaultConfig `toml:"vault"`
}

type VaultConfig struct {
	// Path is the vault file location. Empty means the XDG default.
	Path string `toml:"path"`

	// BackupDir is where rotation backups are written. Empty means alongside the vault.
	BackupDir string `toml:"backup_dir"`
}

// LoadUserConfig loads config.toml. A missing file yields a zero config.
func LoadUserConfig(path string) (UserConfig, error) {
	var cfg UserConfig

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

// SaveUserConfig saves a config struct to a TOML file.
func SaveUserConfig(path string, cfg UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(cfg)
}
