/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Command errcatalogd serves the error catalog.
//
// It exposes the registered error kinds and their transport statuses over
// HTTP (and gRPC when an address is configured), rebuilds errors from their
// wire records and prints the catalog for operators:
//
//	errcatalogd serve --config ./configs
//	errcatalogd kinds -o yaml
//	echo '{"className":"user.not_found","message":"nope"}' | errcatalogd decode
//
// Configuration is read from config_<APP_ENV>.yaml in the --config directory
// and from ERRCATALOG_* environment variables.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dirpx.dev/errcatalog/config"
)

var (
	configDir     string
	envFile       string
	allowNoConfig bool
)

var rootCmd = &cobra.Command{
	Use:           "errcatalogd",
	Short:         "Error catalog server and tools",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", "./configs", "directory holding config_<env>.yaml")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file loaded before the configuration (default $ENV_FILE or .env)")
	rootCmd.PersistentFlags().BoolVar(&allowNoConfig, "allow-no-config", false, "run on defaults when no config file exists")
}

func loadOptions() config.LoadOptions {
	return config.LoadOptions{
		ConfigPath:    configDir,
		EnvFile:       envFile,
		AllowNoConfig: allowNoConfig,
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
