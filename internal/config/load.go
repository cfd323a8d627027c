package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration keys. Every key can also be set through a BENCHKIT_ prefixed
// environment variable, e.g. BENCHKIT_HISTORY_STORE.
const (
	KeyFilter       = "filter"
	KeyInclude      = "include"
	KeyShuffle      = "shuffle"
	KeySeed         = "seed"
	KeyOutput       = "output"
	KeyColor        = "color"
	KeyVerbose      = "verbose"
	KeyLogFile      = "log_file"
	KeyHistoryStore = "history.store"
	KeyPushJob      = "pushgateway.job"
)

// Config is a snapshot of the resolved configuration.
type Config struct {
	Filter       string
	Include      []string
	Shuffle      bool
	Seed         uint64
	Output       []string
	Color        bool
	Verbose      bool
	LogFile      string
	HistoryStore string
	PushJob      string
}

// Load reads .env, the config file and the environment into viper. Without
// cfgFile, benchkit.yaml in the working directory is used when present.
func Load(cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("benchkit")
	}

	viper.SetEnvPrefix("BENCHKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyFilter, "")
	viper.SetDefault(KeyShuffle, false)
	viper.SetDefault(KeySeed, 0)
	viper.SetDefault(KeyOutput, []string{"console"})
	viper.SetDefault(KeyColor, true)
	viper.SetDefault(KeyVerbose, false)
	viper.SetDefault(KeyHistoryStore, "")
	viper.SetDefault(KeyPushJob, "benchkit")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	return nil
}

// Current returns the configuration as currently resolved by viper.
func Current() Config {
	return Config{
		Filter:       viper.GetString(KeyFilter),
		Include:      viper.GetStringSlice(KeyInclude),
		Shuffle:      viper.GetBool(KeyShuffle),
		Seed:         viper.GetUint64(KeySeed),
		Output:       viper.GetStringSlice(KeyOutput),
		Color:        viper.GetBool(KeyColor),
		Verbose:      viper.GetBool(KeyVerbose),
		LogFile:      viper.GetString(KeyLogFile),
		HistoryStore: viper.GetString(KeyHistoryStore),
		PushJob:      viper.GetString(KeyPushJob),
	}
}
