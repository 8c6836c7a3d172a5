/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/allbin/linemon"
	"github.com/allbin/linemon/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	monitorVerbose  bool
	monitorMode     string
	monitorInterval int
	monitorFormat   string
	monitorOutput   string
)

// monitorCmd represents the monitor command
var monitorCmd = &cobra.Command{
	Use:   "monitor <device>",
	Short: "Log control line transitions",
	Long: `Monitor the CTS, RTS, DSR and DTR lines of a serial device and write
one timestamped line per transition. Press Ctrl+C to stop.

CTS and RTS transitions are always reported; DSR and DTR transitions
only with --verbose. Each line is flushed immediately, so a forced
termination loses no already-emitted event:

  [2025-03-14 09:26:53.589793] CTS: HIGH ↑

Polling mode ("-m poll") samples at a fixed interval. Event-driven mode
("-m irq") uses a bounded blocking wait on the driver instead; true
hardware interrupts for modem signals are not universally supported, so
irq mode is an approximation with lower latency, not a guarantee.

Examples:
  linemon monitor /dev/ttyUSB0
  linemon monitor /dev/ttyUSB0 -v -i 500
  linemon monitor /dev/ttyUSB0 -m irq -f rel -o transitions.log`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		device := args[0]

		mode, err := linemon.ParseMode(viper.GetString("mode"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		format, err := linemon.ParseTimeFormat(viper.GetString("format"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		opts := []linemon.Option{
			linemon.WithMode(mode),
			linemon.WithPollInterval(time.Duration(viper.GetInt("interval")) * time.Microsecond),
			linemon.WithTimeFormat(format),
			linemon.WithVerbose(monitorVerbose),
		}
		if monitorOutput != "" {
			opts = append(opts, linemon.WithOutputFile(monitorOutput))
		}
		if monitorVerbose {
			opts = append(opts, linemon.WithLogger(logger.NewEnvLogger("[linemon]")))
		}

		m, err := linemon.New(device, opts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		// Cooperative shutdown: first signal cancels the run loop,
		// which cleans up the backend and output on its way out
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigChan
			fmt.Fprintln(os.Stderr, "\nStopping monitor...")
			cancel()
		}()

		if err := m.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)

	monitorCmd.Flags().BoolVarP(&monitorVerbose, "verbose", "v", false,
		"Enable verbose diagnostics and DSR/DTR event reporting")
	monitorCmd.Flags().StringVarP(&monitorMode, "mode", "m", "poll",
		"Monitoring mode: poll, irq")
	monitorCmd.Flags().IntVarP(&monitorInterval, "interval", "i", 1000,
		"Polling interval in microseconds (minimum 100)")
	monitorCmd.Flags().StringVarP(&monitorFormat, "format", "f", "abs",
		"Timestamp format: abs, rel")
	monitorCmd.Flags().StringVarP(&monitorOutput, "output", "o", "",
		"Output file (default: stdout)")

	viper.BindPFlag("mode", monitorCmd.Flags().Lookup("mode"))
	viper.BindPFlag("interval", monitorCmd.Flags().Lookup("interval"))
	viper.BindPFlag("format", monitorCmd.Flags().Lookup("format"))
}
