package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"benchkit/internal/glob"
	"benchkit/internal/outputter"

	"github.com/spf13/viper"
)

// ValidateConfig validates configuration values and returns an error listing
// every problem found. It should be called after Load.
func ValidateConfig() error {
	var errors []string

	if filter := viper.GetString(KeyFilter); len(filter) > glob.MaxPatternLength {
		errors = append(errors, fmt.Sprintf("filter must be at most %d bytes, got: %d", glob.MaxPatternLength, len(filter)))
	}

	outputs := viper.GetStringSlice(KeyOutput)
	if viper.IsSet(KeyOutput) && len(outputs) == 0 {
		errors = append(errors, "output must name at least one format")
	}
	for _, spec := range outputs {
		if _, _, err := outputter.ParseSpec(spec); err != nil {
			errors = append(errors, err.Error())
		}
	}

	if viper.IsSet(KeyPushJob) && strings.TrimSpace(viper.GetString(KeyPushJob)) == "" {
		errors = append(errors, "pushgateway.job must not be empty")
	}

	if logFile := viper.GetString(KeyLogFile); logFile != "" {
		dir := filepath.Dir(logFile)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			errors = append(errors, fmt.Sprintf("log_file directory does not exist: %s", dir))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}
	return nil
}
