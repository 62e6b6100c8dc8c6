package config

import (
	"path/filepath"
)

const (
	appName = "lsgrid"
	// ProjectFile is looked for in the working directory
	ProjectFile = ".lsgrid.yaml"
	globalFile  = "config.yaml"
)

// ProjectConfigPath returns the project-level config file path
func ProjectConfigPath(platform PlatformProvider) string {
	wd, err := platform.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(wd, ProjectFile)
}

// GlobalConfigPath returns the per-user config file path for the platform
func GlobalConfigPath(platform PlatformProvider) string {
	dir := configDir(platform)
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, appName, globalFile)
}

func configDir(platform PlatformProvider) string {
	switch platform.GetOS() {
	case "windows":
		// %APPDATA%\lsgrid\
		return platform.GetEnv("APPDATA")
	case "darwin":
		// ~/Library/Application Support/lsgrid/
		home, err := platform.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, "Library", "Application Support")
	default:
		// $XDG_CONFIG_HOME/lsgrid/ or ~/.config/lsgrid/
		if xdg := platform.GetEnv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := platform.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, ".config")
	}
}
