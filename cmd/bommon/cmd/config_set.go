package cmd

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var configSet = &cobra.Command{
	Aliases: []string{"create"},
	Use:     "set",
	Short:   "Create a local config file",
	Long: `Creates a local config file holding flags that do not change, like the configuration store to use.

By default, this configuration file will be placed in ` + configFileLocation(false) + `.

Use the ` + envConfigLocation + ` environment variable to change this default target.
`,
	Example: `# Keep BOMs in a local directory
% bommon config set --store file:///data/boms
config file created in /home/me/.bommon/bommon.yaml

# Keep BOMs on GCS, file contents in another bucket
% bommon config set --store gs://acme-boms --blobs gs://acme-design-files --credential /home/me/.config/gcloud/application_default_credentials.json
config file created in /home/me/.bommon/bommon.yaml
`,
	Run: func(cmd *cobra.Command, args []string) {
		localConfig := configFromFlags(&bommonFlags)

		file := configFileLocation(true)
		if ext := filepath.Ext(file); ext != ".yaml" {
			infoLogger.Printf("warning: the generated config file will contain a yaml document, but the file extension is %q", ext)
		}
		o, err := localConfig.MarshalConfig()
		if err != nil {
			wrapFatalln("could not serialize config to yaml", err)
			return
		}

		err = os.MkdirAll(filepath.Dir(file), 0700)
		if err != nil {
			wrapFatalln("could not create directory to hold config "+filepath.Dir(file), err)
			return
		}

		err = ioutil.WriteFile(file, o, 0600)
		if err != nil {
			wrapFatalln("error writing config file "+file, err)
			return
		}
		infoLogger.Printf("config file created in %s", file)
	},
}

func init() {
	configCmd.AddCommand(configSet)
}
