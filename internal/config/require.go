package config

import (
	"fmt"
	"strings"
)

// Validate reports every required setting that is unset, in one error.
func (c Config) Validate() error {
	var missing []string
	if len(c.JWTSecret) == 0 {
		missing = append(missing, "JWT_SECRET")
	}
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL (or DB_HOST)")
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		missing = append(missing, fmt.Sprintf("SERVER_PORT (got %d)", c.ServerPort))
	}
	if len(missing) > 0 {
		return fmt.Errorf("invalid config: missing or bad env %s", strings.Join(missing, ", "))
	}
	return nil
}
