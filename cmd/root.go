// -- cmd/root.go --
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kuhnmi/find-sec-bugs/internal/config"
	"github.com/kuhnmi/find-sec-bugs/internal/observability"
)

var (
	cfgFile string
	// appConfig is populated by the root PersistentPreRunE and read by
	// subcommands.
	appConfig *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "taintlint",
	Short:   "Validates taint-analysis class catalog files.",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Runs before any command, setting up config and logging.
		if err := initializeConfig(); err != nil {
			return err
		}

		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			// Initialize a fallback logger so the error is at least visible.
			observability.Initialize(config.LoggerConfig{
				Level: "info", Format: "console", ServiceName: "taintlint",
			}, nil)
			return err
		}
		appConfig = cfg

		observability.Initialize(cfg.Logger, nil)
		observability.GetLogger().Debug("Starting taintlint", zap.String("version", Version))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() error {
	defer observability.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./taintlint.yaml)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// initializeConfig reads in the config file and environment variables if set.
func initializeConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("taintlint")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TAINTLINT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults and env vars.
	}
	return nil
}
