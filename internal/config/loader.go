package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const bombermanFile = "bomberman.yaml"

// LoadBomberman loads the game configuration.
// Search order: customPath -> ~/.bomber/configs/bomberman.yaml ->
// ./configs/bomberman.yaml -> embedded default.
//
// Only an explicit customPath can fail; unreadable or malformed files found
// on the search path are skipped.
func LoadBomberman(customPath string) (BombermanConfig, error) {
	if customPath != "" {
		return loadFile(customPath)
	}

	for _, path := range searchPaths() {
		if cfg, err := loadFile(path); err == nil {
			return cfg, nil
		}
	}

	return ParseBomberman(defaultBombermanYAML)
}

// ParseBomberman decodes YAML on top of the built-in defaults, so a file only
// needs the keys it changes.
func ParseBomberman(data []byte) (BombermanConfig, error) {
	cfg := DefaultBombermanConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultBombermanConfig(), fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func loadFile(path string) (BombermanConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BombermanConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := ParseBomberman(data)
	if err != nil {
		return BombermanConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath(bombermanFile); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", bombermanFile))
}

// userConfigPath returns the per-user config location, or empty if the home
// directory is unknown.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bomber", "configs", filename)
}
