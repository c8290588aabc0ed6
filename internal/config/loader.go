package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound indicates no config file was found in the standard search locations.
var ErrConfigNotFound = errors.New("configuration file not found")

var configNames = []string{"arthas-copy.yaml", "arthas-copy.yml", "arthas-copy.json"}

// Load reads the configuration at explicitPath, or the first file found in
// the search locations. Without an explicit path a missing file is not an
// error: defaults are returned with an empty path.
func Load(explicitPath string) (*Config, string, error) {
	configPath := explicitPath
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			if os.IsNotExist(err) {
				return nil, "", fmt.Errorf("specified config file does not exist: %s", configPath)
			}
			return nil, "", fmt.Errorf("cannot access config file %s: %w", configPath, err)
		}
	} else {
		found, err := findConfigFile()
		if errors.Is(err, ErrConfigNotFound) {
			return Default(), "", nil
		}
		if err != nil {
			return nil, "", err
		}
		configPath = found
	}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open config file %s: %w", configPath, err)
	}
	defer file.Close()

	cfg, err := loadConfigFromFile(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, configPath, nil
}

// findConfigFile searches the current directory, then the user config
// directory.
func findConfigFile() (string, error) {
	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		dir := filepath.Join(userConfigDir, "arthas-copy")
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}
	return "", ErrConfigNotFound
}

// loadConfigFromFile reads and parses a configuration file from any fs.File
// source. The format is chosen by the file's name.
func loadConfigFromFile(file fs.File) (*Config, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("error getting file info: %w", err)
	}
	return parseConfigData(data, stat.Name())
}

// parseConfigData parses config data based on the filename extension.
// Environment variables are expanded in the raw content before parsing,
// supporting both $VAR and ${VAR} syntax throughout the entire config.
func parseConfigData(data []byte, filename string) (*Config, error) {
	expanded := []byte(os.ExpandEnv(string(data)))

	addExpansionHint := func(parseErr error) error {
		if strings.Contains(string(data), "$") {
			return fmt.Errorf("%w (hint: environment variable expansion may have introduced invalid syntax if values contain special characters)", parseErr)
		}
		return parseErr
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		if err := json.Unmarshal(expanded, &cfg); err != nil {
			return nil, addExpansionHint(fmt.Errorf("error parsing JSON config: %w", err))
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(expanded, &cfg); err != nil {
			return nil, addExpansionHint(fmt.Errorf("error parsing YAML config: %w", err))
		}
	default:
		// YAML is a superset of JSON
		if err := yaml.Unmarshal(expanded, &cfg); err != nil {
			return nil, addExpansionHint(fmt.Errorf("failed to parse config file: %w", err))
		}
	}
	return &cfg, nil
}
