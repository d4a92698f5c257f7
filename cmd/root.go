/*
Copyright © 2025 tieubaoca
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tieubaoca/litellm-chat/config"
	"github.com/tieubaoca/litellm-chat/logging"
)

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "litellm-chat",
	Short: "Forward a message to a language model over HTTP",
	Long: `litellm-chat serves POST /generate: it takes {"message": "..."},
hands the text to the configured model backend (echo, an OpenAI-compatible
endpoint such as a LiteLLM proxy, or Gemini) and returns {"response": "..."}.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
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
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config/config.yaml", "config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides log_level from the config")
}

// initConfig loads the config file and environment, then sets up logging.
func initConfig() error {
	loaded, err := config.LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.LogLevel = logLevel
	}
	if err := logging.InitLoggerFromString(loaded.LogLevel); err != nil {
		return err
	}
	cfg = loaded
	return nil
}
