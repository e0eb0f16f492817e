package environment

import (
	"fmt"
	"strings"
)

// Environment represents application environment.
type Environment string

const (
	// Development for development environment.
	Development Environment = "development"
	// Production for production environment.
	Production Environment = "production"
	// Staging for staging environment.
	Staging Environment = "staging"
)

// Parse normalizes a raw APP_ENV value. Short aliases ("dev", "prod", "stage")
// are accepted. An empty value resolves to Development so that a bare checkout
// runs without configuration; any other unknown value is rejected.
func Parse(raw string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(Development), "dev", "local":
		return Development, nil
	case string(Staging), "stage":
		return Staging, nil
	case string(Production), "prod":
		return Production, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEnvironment, raw)
	}
}

// IsDevelopment reports whether insecure development fallbacks may be used.
func (e Environment) IsDevelopment() bool {
	return e == Development || e == "dev"
}

// IsProduction checks if the environment is production.
func (e Environment) IsProduction() bool {
	return e == Production || e == "prod"
}

// IsStaging checks if the environment is staging.
func (e Environment) IsStaging() bool {
	return e == Staging || e == "stage"
}

// String implements fmt.Stringer.
func (e Environment) String() string {
	return string(e)
}

// UnmarshalText lets Environment be used directly as an env-tagged config field.
func (e *Environment) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
