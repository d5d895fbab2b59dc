package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Defaults holds the resolved default paths for the application.
type Defaults struct {
	ConfigPath string
	BaseDir    string
	LogDir     string
	LibraryDir string
}

// GetDefaults returns application default paths, checking environment
// variables first.
// Environment variables:
//   - VL_CONFIG_PATH: config file location (default: ~/.config/visuallibrary.toml)
//   - VL_HOME: base directory for app data (default: ~/.local/share/visuallibrary)
//   - VL_LIBRARY: library root (default: ~/Documents/VisualInspiration)
func GetDefaults() (*Defaults, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}
	libraryDir, err := getLibraryDir()
	if err != nil {
		return nil, err
	}
	return &Defaults{
		ConfigPath: configPath,
		BaseDir:    baseDir,
		LogDir:     filepath.Join(baseDir, "log"),
		LibraryDir: libraryDir,
	}, nil
}

func getConfigPath() (string, error) {
	if path := os.Getenv("VL_CONFIG_PATH"); path != "" {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "visuallibrary.toml"), nil
}

func getBaseDir() (string, error) {
	if path := os.Getenv("VL_HOME"); path != "" {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "visuallibrary"), nil
}

func getLibraryDir() (string, error) {
	if path := os.Getenv("VL_LIBRARY"); path != "" {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, "Documents", "VisualInspiration"), nil
}
