package configs

import (
	"log"
	"os"
	"path/filepath"
)

// VaultPathEnv overrides the vault file location when set. This is the
// injection point for scripts and tests; nothing secret is ever read from
// the environment itself.
const VaultPathEnv = "LOCKBOX_VAULT"

type UserSettings struct {
	VaultPath  string
	BackupDir  string
	ConfigPath string
}

var UserLockboxSettings *UserSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	// These defaults are independent of any config file, so it is ok to init here.
	UserLockboxSettings = &UserSettings{
		VaultPath:  filepath.Join(dataDir, "lockbox", "vault.json"),
		BackupDir:  filepath.Join(dataDir, "lockbox"),
		ConfigPath: filepath.Join(configDir, "lockbox", "config.toml"),
	}
}

// InitUserSettings applies the config file and environment overrides on top
// of the XDG defaults. Missing config files are not an error.
func InitUserSettings() error {
	cfg, err := LoadUserConfig(UserLockboxSettings.ConfigPath)
	if err != nil {
		return err
	}

	if cfg.Vault.Path != "" {
		UserLockboxSettings.VaultPath = cfg.Vault.Path
	}
	if cfg.Vault.BackupDir != "" {
		UserLockboxSettings.BackupDir = cfg.Vault.BackupDir
	}

	// The environment override wins over the config file.
	if envPath := os.Getenv(VaultPathEnv); envPath != "" {
		UserLockboxSettings.VaultPath = envPath
		UserLockboxSettings.BackupDir = filepath.Dir(envPath)
	}

	return nil
}
