package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		setup     func()
		wantError bool
		errMsg    string
	}{
		{
			name: "Valid Configuration",
			setup: func() {
				viper.Set(KeyFilter, "Foo.*-Foo.Baz")
				viper.Set(KeyOutput, []string{"console", "json:out.json", "prometheus:bench.prom"})
				viper.Set(KeyLogFile, filepath.Join(t.TempDir(), "bench.log"))
			},
			wantError: false,
		},
		{
			name: "Filter Too Long",
			setup: func() {
				viper.Set(KeyFilter, strings.Repeat("a", 2000))
			},
			wantError: true,
			errMsg:    "filter must be at most 1024 bytes",
		},
		{
			name: "Unknown Output Format",
			setup: func() {
				viper.Set(KeyOutput, []string{"html:report.html"})
			},
			wantError: true,
			errMsg:    "unknown format html",
		},
		{
			name: "Prometheus Without Path",
			setup: func() {
				viper.Set(KeyOutput, []string{"prometheus"})
			},
			wantError: true,
			errMsg:    "prometheus requires a textfile path",
		},
		{
			name: "Empty Output List",
			setup: func() {
				viper.Set(KeyOutput, []string{})
			},
			wantError: true,
			errMsg:    "output must name at least one format",
		},
		{
			name: "Empty Push Job",
			setup: func() {
				viper.Set(KeyPushJob, " ")
			},
			wantError: true,
			errMsg:    "pushgateway.job must not be empty",
		},
		{
			name: "Log File In Missing Directory",
			setup: func() {
				viper.Set(KeyLogFile, filepath.Join(t.TempDir(), "nope", "bench.log"))
			},
			wantError: true,
			errMsg:    "log_file directory does not exist",
		},
		{
			name: "Multiple Errors",
			setup: func() {
				viper.Set(KeyFilter, strings.Repeat("a", 2000))
				viper.Set(KeyOutput, []string{"xml"})
			},
			wantError: true,
			errMsg:    "unknown format xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()
			tt.setup()

			err := ValidateConfig()
			if (err != nil) != tt.wantError {
				t.Fatalf("ValidateConfig() error = %v, wantError %v", err, tt.wantError)
			}
			if tt.wantError && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("ValidateConfig() error = %v, want message containing %q", err, tt.errMsg)
			}
		})
	}
}
