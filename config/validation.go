package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is complete enough to run.
// Development and test tolerate missing credentials; production and CI do
// not.
func ValidateConfig(cfg *Config) error {
	var errs []ValidationError

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{Field: "server_port", Message: "is required"})
	}
	if cfg.DBHost == "" || cfg.DBPort == "" {
		errs = append(errs, ValidationError{Field: "database", Message: "host and port are required"})
	}
	if cfg.DBName == "" {
		errs = append(errs, ValidationError{Field: "db_name", Message: "is required"})
	}
	if cfg.DataDir == "" {
		errs = append(errs, ValidationError{Field: "data_dir", Message: "is required"})
	}

	if IsProduction() || IsCI() {
		if cfg.DBPassword == "" {
			errs = append(errs, ValidationError{Field: "db_password", Message: "secret is required"})
		}
		if cfg.JWTSecret == "" {
			errs = append(errs, ValidationError{Field: "jwt_secret", Message: "secret is required"})
		}
	}

	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(msgs, "\n"))
	}

	return nil
}
