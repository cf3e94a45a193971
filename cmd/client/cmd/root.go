// Package cmd implements the gridclash CLI: one-shot action commands plus
// an interactive repl, all driven over a websocket connection to a running
// server.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	serverURL string
	matchID   string
	jsonOut   bool
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:          "gridclash",
	Short:        "gridclash CLI - play or inspect a grid clash match over the wire",
	SilenceUsage: true,
	Long: `gridclash CLI connects to a running gridclash server over websockets.

Examples:
  gridclash repl --match-id duel-1                 Start an interactive session
  gridclash move --match-id duel-1 h1 2,3          Move unit h1 to (2,3)
  gridclash attack --match-id duel-1 h1 h2          Attack h2 with h1
  gridclash end-turn --match-id duel-1             End the current turn`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gridclash.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "ws://localhost:8080/ws", "server websocket URL (env: GRIDCLASH_SERVER)")
	rootCmd.PersistentFlags().StringVar(&matchID, "match-id", "", "match ID to join (env: GRIDCLASH_MATCH_ID)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print raw JSON envelopes instead of colorized text")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "show detailed debug information")

	viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	viper.BindPFlag("match-id", rootCmd.PersistentFlags().Lookup("match-id"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".gridclash")
		}
	}
	viper.SetEnvPrefix("GRIDCLASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil && isVerbose() {
		fmt.Fprintln(os.Stderr, "using config file:", viper.ConfigFileUsed())
	}
}

func getServerURL() string {
	if rootCmd.PersistentFlags().Changed("server") {
		return serverURL
	}
	if v := viper.GetString("server"); v != "" {
		return v
	}
	return serverURL
}

func getMatchID() (string, error) {
	id := matchID
	if !rootCmd.PersistentFlags().Changed("match-id") {
		if v := viper.GetString("match-id"); v != "" {
			id = v
		}
	}
	if id == "" {
		return "", fmt.Errorf("match ID is required (set --match-id or GRIDCLASH_MATCH_ID)")
	}
	return id, nil
}

func isJSONOutput() bool { return viper.GetBool("json") }
func isVerbose() bool    { return viper.GetBool("verbose") }
