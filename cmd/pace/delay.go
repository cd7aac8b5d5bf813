package main

import (
	"fmt"
	"time"

	"github.com/AnatoleLucet/pace"
	"github.com/spf13/cobra"
)

var delayCmd = &cobra.Command{
	Use:   "delay DURATION",
	Short: "Wait for a duration",
	Long:  `Waits for DURATION (e.g. 1.5s, 200ms). Interrupting exits with an error.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := time.ParseDuration(args[0])
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", args[0], err)
		}

		return pace.Delay(cmd.Context(), d)
	},
}
