package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	DBPath     string `json:"db_path"`
	WebEnabled bool   `json:"web_enabled"`
	WebPort    int    `json:"web_port"`
	LogLevel   string `json:"log_level"`
	LogPath    string `json:"log_path"`
}

func Default() Config {
	return Config{WebPort: 8080, LogLevel: "info"}
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "dailytodo", "config.json"), nil
}

func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func Load(path string) (Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return Config{}, err
	}

	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return config, nil
}

func Save(path string, cfg Config) error {
	if err := EnsureDir(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// ApplyDefaults fills paths that are derived from the config file location.
func ApplyDefaults(cfg Config, configPath string) Config {
	dir := filepath.Dir(configPath)
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(dir, "dailytodo.db")
	}
	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(dir, "dailytodo.log")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.WebPort == 0 {
		cfg.WebPort = 8080
	}
	return cfg
}
