// SPDX-License-Identifier: MPL-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/spsswrap/spss-wrapper/internal/issue"
)

const (
	// AppName is the application name, used as the config directory name.
	AppName = "spss-wrapper"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

// ConfigDir returns the configuration directory: $XDG_CONFIG_HOME/spss-wrapper,
// or ~/.config/spss-wrapper when XDG_CONFIG_HOME is unset.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir(getenv func(string) string) (string, error) {
	if getenv != nil {
		if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, AppName), nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// FilePath returns the default config file path.
func FilePath(getenv func(string) string) (string, error) {
	dir, err := ConfigDir(getenv)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// LoadFile reads the persisted config file. A missing file yields empty values
// and no error. An unreadable or malformed file yields empty values and a
// ConfigFileUnreadable error, which callers should treat as a warning.
//
// Keys are case-sensitive: viper folds key case, so only keys present in the
// document with their exact spelling are taken from it.
func LoadFile(path string) (FileValues, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return FileValues{}, nil
	}
	if err != nil {
		return FileValues{}, unreadableError(path, err)
	}

	v := viper.New()
	v.SetConfigType(ConfigFileExt)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return FileValues{}, unreadableError(path, err)
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return FileValues{}, unreadableError(path, err)
	}

	get := func(key string) string {
		raw, ok := doc[key]
		if !ok {
			return ""
		}
		if str, isString := raw.(string); isString {
			return str
		}
		return v.GetString(key)
	}
	return FileValues{
		BottleName:   get(KeyBottleName),
		ProgramName:  get(KeyProgramName),
		FlatpakAppID: get(KeyFlatpakAppID),
	}, nil
}

func unreadableError(path string, err error) error {
	return issue.NewErrorContext().
		WithIssue(issue.ConfigFileUnreadableId).
		WithOperation("read config file").
		WithResource(path).
		WithSuggestion("Check that the file is valid TOML with string values").
		WithSuggestion("Regenerate it with 'spss-wrapper --init-config --force'").
		Wrap(err).
		BuildError()
}

// WriteFile writes cfg to path as TOML, creating parent directories. An existing
// file is only replaced when force is set; otherwise a ConfigFileExists error is
// returned and the file is left untouched.
func WriteFile(path string, cfg Config, force bool) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return issue.NewErrorContext().
			WithOperation("create config file").
			WithResource(path).
			WithSuggestion("Pass a file path, not a directory, to --config").
			Wrap(errors.New("path is a directory")).
			BuildError()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content, err := GenerateTOML(cfg)
	if err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return issue.NewErrorContext().
			WithIssue(issue.ConfigFileExistsId).
			WithOperation("create config file").
			WithResource(path).
			WithSuggestion("Use --force to overwrite the existing file").
			Wrap(err).
			BuildError()
	}
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateTOML renders cfg as the config file document.
func GenerateTOML(cfg Config) ([]byte, error) {
	doc := FileValues{
		BottleName:   cfg.BottleName,
		ProgramName:  cfg.ProgramName,
		FlatpakAppID: cfg.FlatpakAppID,
	}

	var buf bytes.Buffer
	buf.WriteString("# spss-wrapper configuration\n")
	buf.WriteString("# Flags and the SPSS_BOTTLE_NAME, SPSS_PROGRAM_NAME and\n")
	buf.WriteString("# BOTTLES_FLATPAK_APP_ID environment variables take precedence.\n\n")
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}
