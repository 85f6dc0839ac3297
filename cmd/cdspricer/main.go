// cdspricer values credit default swap contracts from YAML trade files.
//
// Subcommands cover single-trade pricing, par spread solving, schedule
// inspection and parallel batch valuation.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meenmo/credlib/logging"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

var log *logrus.Logger

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cdspricer",
	Short: "Value credit default swaps from YAML trade files",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
			viper.SetConfigFile(cfgFile)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
		}
		viper.SetEnvPrefix("CDSPRICER")
		viper.AutomaticEnv()

		var err error
		log, err = logging.New(logging.Options{
			Level:      viper.GetString("log.level"),
			Format:     viper.GetString("log.format"),
			Output:     viper.GetString("log.output"),
			MaxAgeDays: viper.GetInt("log.max_age_days"),
		})
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (YAML)")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("log.output", "stderr")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(parSpreadCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(batchCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cdspricer %s (%s)\n", version, commit)
	},
}
