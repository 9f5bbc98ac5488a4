/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

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
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pcbfab/kfab/lib"
)

var logger *zap.Logger

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kfab",
	Short: "Generate assembly BOM and CPL files from KiCad exports.",
	Long: `kfab turns an eeschema intermediate netlist and a placement export
into one BOM csv per supplier plus a CPL csv suitable for an SMT
assembly service.

A local parts library stores per-footprint rotation offsets, an
imported supplier catalog, and component-to-part associations.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("output", "o", ".", "directory for generated files")
	rootCmd.PersistentFlags().String("library", defaultLibraryRoot(), "parts library directory")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose logging")

	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("library", rootCmd.PersistentFlags().Lookup("library"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetConfigName("kfab")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(dir, "kfab"))
	}

	viper.SetEnvPrefix("kfab")
	viper.AutomaticEnv()
	viper.ReadInConfig()

	if viper.GetBool("verbose") {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
}

func defaultLibraryRoot() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	return filepath.Join(dir, "kfab")
}

func openLibrary() (*lib.Library, error) {
	root := viper.GetString("library")
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}

	return lib.NewLibrary(root)
}

func reportWarnings(warnings []lib.Warning) {
	for _, warning := range warnings {
		logger.Warn(string(warning.Kind),
			zap.String("reference", warning.Reference),
			zap.String("detail", warning.Detail),
		)
	}
}
