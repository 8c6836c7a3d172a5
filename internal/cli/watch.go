/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/allbin/linemon"
	"github.com/allbin/linemon/internal/tui"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <device>",
	Short: "Live dashboard of control line states",
	Long: `Open a full-screen dashboard showing the live state of all four control
lines and a scrolling table of recent transitions.

Unlike the monitor command, the dashboard always shows DSR and DTR
activity. Press q to quit, c to clear the transition history.

Examples:
  linemon watch /dev/ttyUSB0
  linemon watch /dev/ttyUSB0 --interval 500`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		device := args[0]

		intervalUS, _ := cmd.Flags().GetInt("interval")

		opts := []linemon.Option{
			linemon.WithPollInterval(time.Duration(intervalUS) * time.Microsecond),
		}

		if err := tui.Run(device, opts...); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().IntP("interval", "i", 1000, "Polling interval in microseconds (minimum 100)")
}
