// Package configs resolves where lockbox keeps its files.
//
// Resolution order for the vault path, lowest to highest precedence:
//
//  1. XDG default: $XDG_DATA_HOME/lockbox/vault.json
//  2. [vault] path in $XDG_CONFIG_HOME/lockbox/config.toml
//  3. The LOCKBOX_VAULT environment variable
//
// The config file holds only locations, never secret material.
package configs
