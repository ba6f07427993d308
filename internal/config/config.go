// Package config provides configuration management for PathHound.
package config

import (
	"runtime"
)

// Source types for scan targets.
const (
	SourceLocal = "local"
	SourceSMB   = "smb"
)

// Config holds the runtime configuration settings for PathHound.
type Config struct {
	debug      bool
	noColors   bool
	sourceType string
	smbPort    int
}

// NewConfig creates a new Config with the given settings.
// If noColors is nil, it defaults based on the platform.
func NewConfig(debug bool, noColors *bool) *Config {
	cfg := &Config{
		debug:      debug,
		sourceType: SourceLocal,
		smbPort:    445,
	}

	if noColors != nil {
		cfg.noColors = *noColors
	} else {
		// Platform-specific default: disable colors on non-Linux by default
		if runtime.GOOS != "linux" {
			cfg.noColors = true
		} else {
			cfg.noColors = false
		}
	}

	return cfg
}

// Debug returns whether debug mode is enabled.
func (c *Config) Debug() bool {
	return c.debug
}

// SetDebug sets the debug mode.
func (c *Config) SetDebug(value bool) {
	c.debug = value
}

// NoColors returns whether colored output is disabled.
func (c *Config) NoColors() bool {
	return c.noColors
}

// SetNoColors sets whether colored output is disabled.
func (c *Config) SetNoColors(value bool) {
	c.noColors = value
}

// SourceType returns the configured scan source type.
func (c *Config) SourceType() string {
	return c.sourceType
}

// SetSourceType sets the scan source type.
func (c *Config) SetSourceType(value string) {
	c.sourceType = value
}

// SMBPort returns the SMB port used for remote targets.
func (c *Config) SMBPort() int {
	return c.smbPort
}

// SetSMBPort sets the SMB port used for remote targets.
func (c *Config) SetSMBPort(value int) {
	c.smbPort = value
}
