// cmd/ticketml/ports.go
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ticketml-service/internal/discovery"
	"ticketml-service/internal/discovery/serial"
	"ticketml-service/internal/discovery/usb"
)

func newPortsCmd(c *cli) *cobra.Command {
	var scannerType string

	cmd := &cobra.Command{
		Use:   "ports",
		Short: "List serial ports and USB printers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := discovery.NewScannerManager(c.logger)
			manager.RegisterScanner(serial.NewScanner(c.logger))
			manager.RegisterScanner(usb.NewScanner(c.logger))

			var ports []*discovery.Port
			if scannerType == "" {
				ports = manager.ScanAll(cmd.Context())
			} else {
				var err error
				if ports, err = manager.ScanByType(cmd.Context(), scannerType); err != nil {
					return err
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tNAME\tVID:PID\tBACKEND\tDESCRIPTION")
			for _, p := range ports {
				id := "-"
				if p.VendorID != "" {
					id = p.VendorID + ":" + p.ProductID
				}
				backend := p.Backend
				if backend == "" {
					backend = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ConnectionType, p.Name, id, backend, p.Description)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&scannerType, "type", "", "Only run one scanner (serial, usb)")
	return cmd
}
