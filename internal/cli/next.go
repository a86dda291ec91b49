package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salah-times/internal/prayer"
)

var (
	flagFormat  string
	flagPrayers string
)

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long:  "Display the next upcoming prayer time with a countdown.\nAfter the last prayer of the day it shows tomorrow's first.",
		RunE:  runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", prayer.FormatFull, "Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, short-name-and-time, short-name-and-remaining, full, or a custom Go template")
	cmd.Flags().StringVar(&flagPrayers, "prayers", "", "Comma-separated list of prayers to track (overrides config)")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	selected, err := selectedPrayers(flagPrayers, e.cfg)
	if err != nil {
		return err
	}

	now := e.now()
	prayers, err := e.schedule(e.resolveDay(cmd.Context(), now), selected)
	if err != nil {
		return err
	}

	next := prayer.NextPrayer(prayers, now)

	// All of today's prayers have passed: use tomorrow's first.
	if next == nil {
		tomorrow, err := e.schedule(e.resolveDay(cmd.Context(), now.AddDate(0, 0, 1)), selected)
		if err != nil {
			return err
		}
		if len(tomorrow) > 0 {
			next = &tomorrow[0]
		}
	}

	if next == nil {
		return fmt.Errorf("could not determine next prayer")
	}

	fmt.Fprint(cmd.OutOrStdout(), prayer.FormatOutput(*next, now, flagFormat, e.clock))
	return nil
}
