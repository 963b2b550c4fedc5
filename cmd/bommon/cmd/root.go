// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bommon",
	Short: "bommon manages bills of materials for hardware design projects",
	Long: `bommon manages bills of materials (BOMs) for hardware design projects.

A BOM is a named composite configuration in a project variant. It holds libraries and releases
of design data (one per libtype), and other BOMs.

bommon creates, edits, clones, validates and compares BOM trees kept in a configuration store.
The store lives on a local directory, a badger database, a GCS or an S3 bucket.
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.setBommonParams(&bommonFlags)
	},
	// upstream api note:  *PostRun functions aren't called in case of a panic() in Run
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if err := closeStores(); err != nil {
			infoLogger.Printf("warning: closing stores: %v", err)
		}
	},
}

var config *CLIConfig

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	addStoreFlag(rootCmd)
	addBlobsFlag(rootCmd)
	addCredentialFlag(rootCmd)
	addLogLevelFlag(rootCmd)
	addConcurrencyFlag(rootCmd)
	addCacheSizeFlag(rootCmd)
	addPreviewFlag(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("store", defaultStore)
	viper.SetDefault("loglevel", "info")
	viper.SetDefault("concurrency", 0)
	viper.SetDefault("cache-size", 0)
	viper.SetDefault("preview", false)

	if file := os.Getenv(envConfigLocation); file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.bommon")
		viper.AddConfigPath("/etc/bommon")
		viper.SetConfigName("bommon")
	}

	viper.SetEnvPrefix("bommon")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		infoLogger.Println("Using config file:", viper.ConfigFileUsed())
	}

	var err error
	config, err = newConfig()
	if err != nil {
		wrapFatalln("invalid configuration", err)
	}
}
