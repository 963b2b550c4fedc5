package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	envConfigLocation = "BOMMON_CONFIG"
	defaultStore      = "file://.bommon-store"
)

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	Store       string `json:"store" yaml:"store"`                                    // URL of the configuration store
	Blobs       string `json:"blobs,omitempty" yaml:"blobs,omitempty"`                // URL of the store for file contents, defaults to the configuration store
	Credential  string `json:"credential,omitempty" yaml:"credential,omitempty"`      // Credentials to use for GCS
	LogLevel    string `json:"loglevel" yaml:"loglevel" mapstructure:"loglevel"`      // Log level
	Concurrency int    `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`    // Max number of concurrent comparisons
	CacheSize   int    `json:"cache-size,omitempty" yaml:"cache-size,omitempty" mapstructure:"cache-size"`
	Preview     bool   `json:"preview,omitempty" yaml:"preview,omitempty"`
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// setBommonParams fills flags left unset on the command line with configured values
func (c *CLIConfig) setBommonParams(flags *flagsT) {
	if c == nil {
		return
	}
	if flags.root.store == "" {
		flags.root.store = c.Store
	}
	if flags.root.blobs == "" {
		flags.root.blobs = c.Blobs
	}
	if flags.root.credential == "" {
		flags.root.credential = c.Credential
	}
	if flags.root.logLevel == "" {
		flags.root.logLevel = c.LogLevel
	}
	if flags.root.concurrency == 0 {
		flags.root.concurrency = c.Concurrency
	}
	if flags.root.cacheSize == 0 {
		flags.root.cacheSize = c.CacheSize
	}
	if !flags.root.preview {
		flags.root.preview = c.Preview
	}
}

func configFromFlags(flags *flagsT) CLIConfig {
	return CLIConfig{
		Store:       flags.root.store,
		Blobs:       flags.root.blobs,
		Credential:  flags.root.credential,
		LogLevel:    flags.root.logLevel,
		Concurrency: flags.root.concurrency,
		CacheSize:   flags.root.cacheSize,
		Preview:     flags.root.preview,
	}
}

// MarshalConfig serializes the configuration as yaml
func (c CLIConfig) MarshalConfig() ([]byte, error) {
	return yaml.Marshal(c)
}

// configFileLocation yields the config file to write, from $BOMMON_CONFIG or the home directory
func configFileLocation(expandEnv bool) string {
	if file := os.Getenv(envConfigLocation); file != "" {
		return file
	}
	home := "$HOME"
	if expandEnv {
		if h, err := os.UserHomeDir(); err == nil {
			home = h
		}
	}
	return filepath.Join(home, ".bommon", "bommon.yaml")
}

// configCmd represents the config related commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage a config",
	Long: `Commands to manage bommon CLI config.

Configuration for bommon is the common set of flags that are needed for most commands and do not change across runs,
analogous to "git config ...".

Values are read from the config file, then from BOMMON_* environment variables (e.g. BOMMON_STORE, BOMMON_CACHE_SIZE).
Flags take precedence.`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
