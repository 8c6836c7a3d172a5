/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "linemon",
	Short: "Monitor serial control line transitions",
	Long: `linemon watches the hardware control lines (CTS, RTS, DSR, DTR) of a
serial interface and logs a timestamped entry for every transition.

It is built for debugging handshake and flow-control behavior on serial
links. On FTDI USB adapters it can bypass the serial driver and read the
bridge chip's pins directly for lower latency, falling back to the
standard serial interface on any other hardware.

Examples:
  linemon monitor /dev/ttyUSB0
  linemon monitor /dev/ttyUSB0 -m irq -f rel -o transitions.log
  linemon signals /dev/ttyS0
  linemon watch /dev/ttyUSB0`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersionInfo wires build-time version metadata into the root command
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.linemon.yaml)")
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".linemon")
	}

	viper.SetEnvPrefix("LINEMON")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
