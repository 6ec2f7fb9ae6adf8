package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is bumped whenever .env.example gains a required key
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars must be present before the server will start
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
	"API_KEY",
	"SESSION_SECRET",
	"INVITE_SECRET",
}

// secretVars are HMAC keys or bearer credentials
var secretVars = []string{"API_KEY", "SESSION_SECRET", "INVITE_SECRET"}

// Placeholder values shipped in .env.example
const (
	exampleDBPassword  = "change_this_secure_password"
	exampleSecret      = "generate_with_openssl_rand_hex_32"
	minSecretLength    = 32
	secretAdviceSuffix = " - generate one with: openssl rand -hex 32"
)

// ValidateEnv checks the .env schema version and that every required
// variable is present.
func ValidateEnv() error {
	switch v := os.Getenv("ENV_SCHEMA_VERSION"); v {
	case ExpectedEnvSchemaVersion:
	case "":
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set (expected %s)", ExpectedEnvSchemaVersion)
	default:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s", ExpectedEnvSchemaVersion, v)
	}

	var missing []string
	for _, key := range RequiredEnvVars {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and additionally flags
// placeholder and short secrets. Warnings never block startup.
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	if os.Getenv("DB_PASSWORD") == exampleDBPassword {
		warnings = append(warnings, "DB_PASSWORD is still the example value")
	}
	for _, key := range secretVars {
		value := os.Getenv(key)
		switch {
		case value == exampleSecret:
			warnings = append(warnings, key+" is still the example value"+secretAdviceSuffix)
		case len(value) < minSecretLength:
			warnings = append(warnings, fmt.Sprintf("%s is shorter than %d characters%s", key, minSecretLength, secretAdviceSuffix))
		}
	}
	return warnings, nil
}
