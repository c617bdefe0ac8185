// internal/config/validate.go
package config

import (
	"fmt"
	"os"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validSourceTypes = map[string]bool{
	"local": true, "ssh": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	// Source validation
	if !validSourceTypes[c.Source.Type] {
		errs = append(errs, fmt.Sprintf("source.type: must be local or ssh; got %q", c.Source.Type))
	}
	if c.Source.Root == "" {
		errs = append(errs, "source.root: required")
	}
	if c.Source.Type == "ssh" {
		if c.Source.SSH == nil {
			errs = append(errs, "source.ssh: required when source.type is ssh")
		} else {
			if c.Source.SSH.Host == "" {
				errs = append(errs, "source.ssh.host: required")
			}
			if c.Source.SSH.User == "" {
				errs = append(errs, "source.ssh.user: required")
			}
			if c.Source.SSH.Password == "" && c.Source.SSH.KeyFile == "" {
				errs = append(errs, "source.ssh: either password or key_file is required")
			}
		}
	}

	// Auth validation
	if c.Auth.Secret != "" && len(c.Auth.Secret) < 16 {
		errs = append(errs, "auth.secret: must be at least 16 characters")
	}

	// Source path warning (non-fatal)
	if c.Source.Type == "local" && c.Source.Root != "" {
		if _, err := os.Stat(c.Source.Root); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("source.root: warning: directory %q does not exist", c.Source.Root))
		}
	}

	return errs
}
