package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks struct constraints and the cross-field requirements of each environment
func ValidateConfig(cfg *Config) error {
	var problems []string

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			problems = append(problems, ValidationError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("failed %q constraint", fe.Tag()),
			}.Error())
		}
	}

	if cfg.DBDriver == "postgres" && cfg.DatabaseURL == "" && (cfg.DBHost == "" || cfg.DBName == "") {
		problems = append(problems, ValidationError{"DATABASE_URL", "DATABASE_URL or DB_HOST and DB_NAME are required for postgres"}.Error())
	}
	if cfg.DBDriver == "sqlite" && cfg.SQLitePath == "" {
		problems = append(problems, ValidationError{"SQLITE_PATH", "required for sqlite"}.Error())
	}
	if cfg.Env == Production && cfg.DBDriver != "postgres" {
		problems = append(problems, ValidationError{"DB_DRIVER", "production requires postgres"}.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "\n"))
	}
	return nil
}
