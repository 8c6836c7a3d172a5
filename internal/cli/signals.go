/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cli

import (
	"fmt"
	"os"

	"github.com/allbin/linemon"
	"github.com/spf13/cobra"
)

// signalsCmd represents the signals command
var signalsCmd = &cobra.Command{
	Use:   "signals <device>",
	Short: "Display current control line states",
	Long: `Display a one-shot snapshot of the CTS, RTS, DSR and DTR line states
for the specified serial device.

Examples:
  linemon signals /dev/ttyUSB0
  linemon signals /dev/ttyS0

Signal meanings:
  CTS - Clear To Send (input)
  RTS - Request To Send (output)
  DSR - Data Set Ready (input)
  DTR - Data Terminal Ready (output)`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		device := args[0]

		m, err := linemon.New(device)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := m.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening device: %v\n", err)
			os.Exit(1)
		}
		defer m.Cleanup()

		state, err := m.State()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading line states: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Control lines for %s (%s backend):\n\n", device, m.Backend())
		fmt.Printf("  CTS (Clear To Send):       %s\n", formatLineLevel(state.CTS))
		fmt.Printf("  RTS (Request To Send):     %s\n", formatLineLevel(state.RTS))
		fmt.Printf("  DSR (Data Set Ready):      %s\n", formatLineLevel(state.DSR))
		fmt.Printf("  DTR (Data Terminal Ready): %s\n", formatLineLevel(state.DTR))
	},
}

func formatLineLevel(state bool) string {
	if state {
		return "HIGH"
	}
	return "LOW"
}

func init() {
	rootCmd.AddCommand(signalsCmd)
}
