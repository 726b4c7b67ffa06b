// cmd/ticketml/preview.go
package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"ticketml-service/internal/service"
)

func newPreviewCmd(c *cli) *cobra.Command {
	var backend string
	var raw bool

	cmd := &cobra.Command{
		Use:   "preview FILE...",
		Short: "Show the printer bytes for tickets without printing",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			documents, err := readFiles(args)
			if err != nil {
				return err
			}

			printService := service.NewPrintService(c.registry, &c.config.Printer, nil, c.logger)
			data, err := printService.Preview(backend, documents...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if raw {
				_, err = out.Write(data)
				return err
			}
			_, err = fmt.Fprint(out, hex.Dump(data))
			return err
		},
	}

	cmd.Flags().StringVar(&backend, "backend", "", "Printer backend (default from configuration)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Write raw bytes instead of a hex dump")

	return cmd
}
