package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salah-times/internal/display"
	"github.com/smokyabdulrahman/salah-times/internal/prayer"
)

var flagDays string

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <prayer>",
		Short: "Query a specific prayer time",
		Long:  "Query a specific prayer time for today, or across multiple days with --days.",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuery,
	}

	cmd.Flags().StringVar(&flagDays, "days", "", "Number of days to show (or 'week'/'month')")

	return cmd
}

// parseDays interprets --days: empty means a single day.
func parseDays(raw string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return 1, nil
	case "week":
		return 7, nil
	case "month":
		return 30, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxDays {
		return 0, fmt.Errorf("invalid --days value: %q (must be 1-%d, 'week', or 'month')", raw, maxDays)
	}
	return n, nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	name, ok := prayer.CanonicalName(args[0])
	if !ok {
		return fmt.Errorf("unknown prayer %q (valid: %s)", args[0], strings.Join(prayer.Names, ", "))
	}

	days, err := parseDays(flagDays)
	if err != nil {
		return err
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	start, err := e.baseDate()
	if err != nil {
		return err
	}
	selected := []string{name}
	results := e.svc.ResolveDays(cmd.Context(), e.request(start), days)

	if FlagJSON {
		return printDaysJSON(cmd, e, results, selected, name)
	}

	out := cmd.OutOrStdout()
	if days == 1 {
		prayers, err := e.schedule(results[0], selected)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s\n", name, prayers[0].Time.Format(e.clock))
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n\n", display.Paint(display.Heading, fmt.Sprintf("%s Times: %d Days", name, days)))
	if label := e.locationLabel(); label != "" {
		fmt.Fprintf(out, "  %s\n\n", label)
	}

	tbl := display.NewTable("Date", name)
	if err := fillDays(tbl, e, results, selected); err != nil {
		return err
	}
	fmt.Fprint(out, tbl.Render())
	fmt.Fprintln(out)
	return nil
}
