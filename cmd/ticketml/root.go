// cmd/ticketml/root.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ticketml-service/internal/config"
	"ticketml-service/internal/driver"
	"ticketml-service/internal/encoding"
	"ticketml-service/internal/utils"
)

// cli holds state shared by the subcommands of one invocation
type cli struct {
	configPath string
	verbose    bool

	config   *config.Config
	logger   *zap.Logger
	registry *driver.Registry
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "ticketml",
		Short: "Render TicketML receipts to printer commands",
		Long: `ticketml renders TicketML receipt markup into the byte stream expected by
IBM 4610 and Citizen CBM receipt printers. Tickets can be printed directly,
previewed as a hex dump, or submitted over an HTTP API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = utils.CloseLogger(c.logger)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./config.yaml or /etc/ticketml/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newPrintCmd(c))
	rootCmd.AddCommand(newPreviewCmd(c))
	rootCmd.AddCommand(newServeCmd(c))
	rootCmd.AddCommand(newBackendsCmd(c))
	rootCmd.AddCommand(newPortsCmd(c))

	return rootCmd
}

// setup loads configuration and builds the logger and backend registry
func (c *cli) setup() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if c.verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := utils.NewLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	c.config = cfg
	c.logger = logger
	c.registry = driver.NewDefaultRegistry(encoding.NewCharmapEncoder(), logger)
	return nil
}

func newBackendsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List printer backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, info := range c.registry.List() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %3d cpl  %s\n", info.Name, info.CharactersPerLine, info.Description)
			}
			return nil
		},
	}
}
