package cmd

import (
	"github.com/spf13/cobra"
)

var configShow = &cobra.Command{
	Use:   "show",
	Short: "Show the configuration in use",
	Long:  `Prints the configuration resolved from the config file, environment variables and flags, as yaml.`,
	Run: func(cmd *cobra.Command, args []string) {
		resolved := configFromFlags(&bommonFlags)
		o, err := resolved.MarshalConfig()
		if err != nil {
			wrapFatalln("could not serialize config to yaml", err)
			return
		}
		_, _ = cmd.OutOrStdout().Write(o)
	},
}

func init() {
	configCmd.AddCommand(configShow)
}
