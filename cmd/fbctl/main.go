// Command fbctl builds front-compressed block snapshots from key lists and
// inspects existing snapshots.
//
//	fbctl build -i keys.txt -o keys.fb --compression zstd
//	fbctl stats keys.fb
//	fbctl dump keys.fb
//	fbctl find keys.fb cluster.node07.cpu
//
// Every flag can also be set in a config file (--config) or through FBCTL_*
// environment variables, for example FBCTL_BLOCK_CAPACITY=8192.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries the state shared by all subcommands.
type app struct {
	v          *viper.Viper
	cfg        *AppConfig
	logger     *logrus.Logger
	configPath string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:          "fbctl",
		Short:        "Build and inspect front-compressed string blocks",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(a.v, a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = newLogger(cfg.Log, cmd.ErrOrStderr())

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().String("log-level", DefaultLogLevel, "Log level (debug, info, warn, error)")
	a.bind(rootCmd.PersistentFlags(), KeyLogLevel, "log-level")

	rootCmd.AddCommand(a.newBuildCmd(), a.newDumpCmd(), a.newStatsCmd(), a.newFindCmd())

	return rootCmd
}

// bind makes a flag the highest-precedence source of a configuration key.
func (a *app) bind(flags *pflag.FlagSet, key, name string) {
	if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
		panic(err)
	}
}
