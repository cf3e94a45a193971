// Package cmd implements the gridclash-server CLI: a single "serve"
// command that starts the websocket-backed match server.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/turnforge/gridclash/utils"
)

var (
	cfgFile string
	envFile string
	devMode bool
)

var rootCmd = &cobra.Command{
	Use:          "gridclash-server",
	Short:        "gridclash-server runs the match server",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gridclash-server.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (env: GRIDCLASH_ENV_FILE)")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "enable colorized debug logging")

	viper.BindPFlag("env-file", rootCmd.PersistentFlags().Lookup("env-file"))
	viper.BindPFlag("dev", rootCmd.PersistentFlags().Lookup("dev"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".gridclash-server")
		}
	}
	viper.SetEnvPrefix("GRIDCLASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.ReadInConfig()

	if f := viper.GetString("env-file"); f != "" {
		if err := godotenv.Load(f); err != nil {
			fmt.Fprintln(os.Stderr, "loading env file:", f, err)
		}
	}
}

func initLogging() {
	if !viper.GetBool("dev") {
		return
	}
	logger := slog.New(utils.NewPrettyHandler(os.Stdout, utils.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: slog.LevelDebug},
	}))
	slog.SetDefault(logger)
}
