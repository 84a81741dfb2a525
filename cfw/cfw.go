package cfw

import (
	"os"
	"path"
)

const (
	DefaultBasePath = "/mnt/SDCARD"
	PakSuffix       = ".pak"
	LaunchScript    = "launch.sh"
)

// GetBasePath returns the storage root, honouring BASE_PATH for development
// setups.
func GetBasePath() string {
	if basePath := os.Getenv("BASE_PATH"); basePath != "" {
		return path.Clean(basePath)
	}
	return DefaultBasePath
}

// GetPlatform returns the device platform tag from PLATFORM, or fallback.
func GetPlatform(fallback string) string {
	if platform := os.Getenv("PLATFORM"); platform != "" {
		return platform
	}
	return fallback
}
