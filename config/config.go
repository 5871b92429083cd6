// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	appName  = "sshkeys"
	fileName = appName + ".yaml"
)

// Config is the on-disk and environment configuration of the sshkeys command.
type Config struct {
	Language    string            `mapstructure:"language" yaml:"language"`
	LogLevel    string            `mapstructure:"log_level" yaml:"log_level"`
	Export      ExportConfig      `mapstructure:"export" yaml:"export"`
	Fingerprint FingerprintConfig `mapstructure:"fingerprint" yaml:"fingerprint"`
}

// ExportConfig holds defaults applied when writing private keys.
type ExportConfig struct {
	Cipher string `mapstructure:"cipher" yaml:"cipher"`
	Rounds int    `mapstructure:"rounds" yaml:"rounds"`
	Format string `mapstructure:"format" yaml:"format"`
}

type FingerprintConfig struct {
	Hash string `mapstructure:"hash" yaml:"hash"`
}

// Defaults returns the flat viper defaults for Config.
func Defaults() map[string]any {
	return map[string]any{
		"language":         "en",
		"log_level":        "warn",
		"export.cipher":    "aes256-ctr",
		"export.rounds":    16,
		"export.format":    "openssh",
		"fingerprint.hash": "sha256",
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "sshkeys")
		default:
			configDir = "/etc/sshkeys"
		}
	} else {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(dir, appName)
	}

	return filepath.Join(configDir, fileName), nil
}

// LoadConfig merges defaults, the first config file found, SSHKEYS_*
// environment variables and the flags of cmd into a T. A non-nil path
// takes precedence over the search locations and must exist.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, path *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName(appName)
	v.SetConfigType("yaml")

	if path != nil && *path != "" {
		if info, err := os.Stat(*path); err != nil || info.Size() == 0 {
			return c, viper.ConfigFileNotFoundError{}
		}
		v.SetConfigFile(*path)
	} else {
		if p, err := GetConfigPath(false); err == nil {
			v.AddConfigPath(filepath.Dir(p))
		}
		if p, err := GetConfigPath(true); err == nil {
			v.AddConfigPath(filepath.Dir(p))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine, anything else is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

// WriteConfigFile writes c as YAML to the user or system config path and
// returns the path written.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}
	return path, WriteConfigTo(c, path)
}

// WriteConfigTo writes c as YAML to path, creating parent directories.
func WriteConfigTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", dir, err)
	}
	return os.WriteFile(path, data, 0o600)
}
