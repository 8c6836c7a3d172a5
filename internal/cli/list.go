/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/allbin/linemon"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available serial ports",
	Long: `List all available serial ports on the system.

This command scans for communication-capable serial devices including
USB serial adapters (ttyUSB*), USB CDC/ACM devices (ttyACM*), standard
serial ports (ttyS*) and common platform-specific UARTs. Virtual
terminals and pseudo-terminals are excluded.`,
	Run: func(cmd *cobra.Command, args []string) {
		ports, err := linemon.ListPorts()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing ports: %v\n", err)
			os.Exit(1)
		}

		usbOnly, _ := cmd.Flags().GetBool("usb")
		long, _ := cmd.Flags().GetBool("long")

		var shown int
		for _, port := range ports {
			info, err := linemon.GetPortInfo(port)
			if err != nil {
				continue
			}
			if usbOnly && !strings.HasPrefix(info.Name, "ttyUSB") && !strings.HasPrefix(info.Name, "ttyACM") {
				continue
			}
			shown++

			if long {
				line := fmt.Sprintf("%-14s %s", port, info.Description)
				if info.VendorID != "" {
					line += fmt.Sprintf("  [%s:%s]", info.VendorID, info.ProductID)
				}
				if info.SerialNumber != "" {
					line += fmt.Sprintf("  serial=%s", info.SerialNumber)
				}
				fmt.Println(line)
			} else {
				fmt.Println(port)
			}
		}

		if shown == 0 {
			fmt.Println("No serial ports found")
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("usb", "u", false, "Only show USB serial devices")
	listCmd.Flags().BoolP("long", "l", false, "Show descriptions and USB identity")
}
