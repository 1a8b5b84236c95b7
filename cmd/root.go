/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

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
	"fmt"
	"log/slog"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string
var optVerbosity int

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "deltafit",
	Short: "Infer multipole mixing ratios from angular correlation observables",
	Long: `

deltafit is the inversion side of an angular correlation analysis:
given samples of an observable as a function of the mixing ratio delta
(produced by whatever external model you trust), it finds every delta, or
interval of deltas, consistent with a measured value, and combines the
allowed regions from independent measurements.

The model itself never lives here. Drive it from a pipeline:

  deltafit grid --samples 1001 | your-model | deltafit invert --target 0.25 --intervals
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.deltafit.yaml)")
	rootCmd.PersistentFlags().IntVar(&optVerbosity, "verbosity", 0, "Logging level: 0=info, >0=debug, -1=warn, <-1=error")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".deltafit")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaultSlog maps the --verbosity flag onto the default slog logger.
// Warnings from the engine are advisory only; quieting them never changes
// results.
func setDefaultSlog(cmd *cobra.Command, args []string) {
	switch {
	case optVerbosity > 0:
		slog.SetLogLoggerLevel(slog.LevelDebug)
	case optVerbosity == 0:
		slog.SetLogLoggerLevel(slog.LevelInfo)
	case optVerbosity == -1:
		slog.SetLogLoggerLevel(slog.LevelWarn)
	default:
		slog.SetLogLoggerLevel(slog.LevelError)
	}
}
