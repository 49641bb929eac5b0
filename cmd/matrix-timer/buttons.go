package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sweeney/matrix-timer/internal/gpio"
)

func newButtonsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "buttons",
		Short: "Print the current button levels and exit.",
		Long:  "Reads the four button lines once from the GPIO chip in the configuration and prints whether each is pressed. Useful for checking wiring.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			reader, err := gpio.NewRealReader(cfg.Chip, cfg.Pins.GPIO())
			if err != nil {
				return fmt.Errorf("init gpio: %w", err)
			}
			defer reader.Close()

			return printButtons(cmd, reader)
		},
	}
}

func printButtons(cmd *cobra.Command, reader gpio.Reader) error {
	s, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read gpio: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "INCREMENT: %s, DECREMENT: %s, START: %s, MODE: %s\n",
		levelString(s.Increment), levelString(s.Decrement), levelString(s.Start), levelString(s.Mode))
	return err
}

func levelString(pressed bool) string {
	if pressed {
		return "PRESSED"
	}
	return "RELEASED"
}
