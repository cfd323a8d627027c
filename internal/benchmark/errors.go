package benchmark

import (
	"errors"
	"fmt"
)

// ErrRegistryRunning is returned when a test is registered after RunAllTests
// has started.
var ErrRegistryRunning = errors.New("registry is running: registration is closed")

// ConfigurationError reports a rejected registration.
type ConfigurationError struct {
	Fixture string
	Test    string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid benchmark %s.%s: %s", e.Fixture, e.Test, e.Reason)
}
