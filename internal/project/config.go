// Package project handles the files around a solve: solver settings,
// scenario and result documents, and batch runs over a directory.
package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/RoomPlan/internal/model"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.roomplan/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".roomplan")
}

// DefaultConfigPath returns the default path for the settings file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

type format int

const (
	formatJSON format = iota
	formatYAML
	formatTOML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".toml":
		return formatTOML, nil
	default:
		return 0, model.NewError(model.ErrCodeInvalidFormat, "unsupported settings format %q", filepath.Ext(path))
	}
}

// LoadSettings reads solver settings from a JSON, YAML or TOML file chosen
// by extension. If the file does not exist, it returns DefaultSettings with
// no error. Missing or non-positive fields take their defaults.
func LoadSettings(path string) (model.Settings, error) {
	f, err := formatOf(path)
	if err != nil {
		return model.Settings{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultSettings(), nil
		}
		return model.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	var s model.Settings
	switch f {
	case formatJSON:
		err = json.Unmarshal(data, &s)
	case formatYAML:
		err = yaml.Unmarshal(data, &s)
	case formatTOML:
		_, err = toml.Decode(string(data), &s)
	}
	if err != nil {
		return model.Settings{}, model.WrapError(model.ErrCodeInvalidFormat, err, "failed to parse settings %s", filepath.Base(path))
	}
	return s.WithDefaults(), nil
}

// SaveSettings persists settings in the format matching the file extension.
// It creates any missing parent directories automatically.
func SaveSettings(path string, s model.Settings) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}

	var data []byte
	switch f {
	case formatJSON:
		data, err = json.MarshalIndent(s, "", "  ")
	case formatYAML:
		data, err = yaml.Marshal(s)
	case formatTOML:
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(s)
		data = buf.Bytes()
	}
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
