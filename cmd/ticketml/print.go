// cmd/ticketml/print.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ticketml-service/internal/model"
	"ticketml-service/internal/service"
)

type printOptions struct {
	backend    string
	serialPort string
	debug      bool
	baudRate   int
}

func newPrintCmd(c *cli) *cobra.Command {
	opts := &printOptions{}

	cmd := &cobra.Command{
		Use:   "print FILE...",
		Short: "Print one or more tickets",
		Long: `Print renders each template in order through a single backend instance and
writes the result to a serial printer, or to standard output as hex with --debug.
Without --serial or --debug the connection from the configuration is used.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(cmd, c, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.backend, "backend", "", "Printer backend (ibm4610, cbm)")
	cmd.Flags().StringVar(&opts.serialPort, "serial", "", "Serial port location")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Print the command stream as hex instead of printing")
	cmd.Flags().IntVar(&opts.baudRate, "baudrate", 19200, "Serial port baudrate")
	cmd.MarkFlagsMutuallyExclusive("serial", "debug")

	return cmd
}

func runPrint(cmd *cobra.Command, c *cli, opts *printOptions, files []string) error {
	printer := c.config.Printer
	if opts.backend != "" {
		printer.Backend = opts.backend
	}
	if !c.registry.IsSupported(printer.Backend) {
		return fmt.Errorf("invalid backend %q (choose from %v)", printer.Backend, c.registry.Names())
	}

	switch {
	case opts.serialPort != "":
		printer.Connection = "serial"
		printer.Serial.Port = opts.serialPort
		printer.Serial.BaudRate = opts.baudRate
	case opts.debug:
		printer.Connection = "debug"
	}

	cfg := *c.config
	cfg.Printer = printer
	if err := cfg.Validate(); err != nil {
		return err
	}

	documents, err := readFiles(files)
	if err != nil {
		return err
	}

	printService := service.NewPrintService(c.registry, &printer, cmd.OutOrStdout(), c.logger)
	job := model.NewPrintJob(printer.Backend, documents...)

	result, err := printService.Print(cmd.Context(), job)
	if err != nil {
		return err
	}

	c.logger.Info("Tickets printed",
		zap.String("job_id", result.JobID.String()),
		zap.Int("documents", result.Documents),
		zap.Int64("bytes_written", result.BytesWritten),
	)
	return nil
}

func readFiles(files []string) ([][]byte, error) {
	documents := make([][]byte, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read template: %w", err)
		}
		documents = append(documents, data)
	}
	return documents, nil
}
