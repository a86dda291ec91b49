package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salah-times/internal/display"
	"github.com/smokyabdulrahman/salah-times/internal/prayer"
	"github.com/smokyabdulrahman/salah-times/internal/remote"
	"github.com/smokyabdulrahman/salah-times/internal/resolver"
)

// maxDays bounds list and query ranges.
const maxDays = 366

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [days]",
		Short: "Show prayer times for multiple days",
		Long:  "Display a grid of prayer times for N days (default: 7).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, 7)
		},
	}
}

func newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show prayer times for the next 7 days",
		Long:  "Alias for 'list 7'. Display a grid of prayer times for 7 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 7)
		},
	}
}

func newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Show prayer times for the next 30 days",
		Long:  "Alias for 'list 30'. Display a grid of prayer times for 30 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 30)
		},
	}
}

// runList is the handler for the list subcommand.
func runList(cmd *cobra.Command, args []string, defaultDays int) error {
	days := defaultDays
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > maxDays {
			return fmt.Errorf("invalid number of days: %q (must be between 1 and %d)", args[0], maxDays)
		}
		days = n
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	selected := e.cfg.SelectedPrayers()
	if len(selected) == 0 {
		selected = prayer.Names
	}

	start, err := e.baseDate()
	if err != nil {
		return err
	}
	results := e.svc.ResolveDays(cmd.Context(), e.request(start), days)

	if FlagJSON {
		return printDaysJSON(cmd, e, results, selected, "")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n\n", display.Paint(display.Heading, fmt.Sprintf("Prayer Times: %d Days", days)))
	if label := e.locationLabel(); label != "" {
		fmt.Fprintf(out, "  %s\n\n", label)
	}

	tbl := display.NewTable(append([]string{"Date"}, selected...)...)
	if err := fillDays(tbl, e, results, selected); err != nil {
		return err
	}
	fmt.Fprint(out, tbl.Render())
	fmt.Fprintln(out)
	return nil
}

// fillDays adds one row per resolved day, highlighting today and muting
// placeholder days.
func fillDays(tbl *display.Table, e *env, results []resolver.Result, selected []string) error {
	today := e.now()
	for i, res := range results {
		prayers, err := e.schedule(res, selected)
		if err != nil {
			return err
		}

		row := make([]string, 0, len(prayers)+1)
		if len(prayers) > 0 {
			row = append(row, prayers[0].Time.Format("Mon 02 Jan"))
		} else {
			row = append(row, res.Times.Date)
		}
		for _, p := range prayers {
			row = append(row, p.Time.Format(e.clock))
		}
		tbl.AddRow(row...)

		switch {
		case remote.IsFallback(res.Times):
			tbl.Mute(i)
		case res.Times.Date == today.Format("2006-01-02"):
			tbl.Highlight(i)
		}
	}
	return nil
}

type daysJSON struct {
	Location todayJSONLocation `json:"location"`
	Prayer   string            `json:"prayer,omitempty"`
	Days     []dayJSON         `json:"days"`
}

type dayJSON struct {
	Date    string            `json:"date"`
	Hijri   string            `json:"hijri,omitempty"`
	Source  string            `json:"source"`
	Timings map[string]string `json:"timings"`
}

func printDaysJSON(cmd *cobra.Command, e *env, results []resolver.Result, selected []string, single string) error {
	out := daysJSON{
		Location: jsonLocation(e),
		Prayer:   strings.ToLower(single),
		Days:     make([]dayJSON, 0, len(results)),
	}

	for _, res := range results {
		prayers, err := e.schedule(res, selected)
		if err != nil {
			return err
		}
		out.Days = append(out.Days, dayJSON{
			Date:    res.Times.Date,
			Hijri:   res.Times.Hijri,
			Source:  res.Source,
			Timings: timingsMap(prayers, e.clock),
		})
	}

	return writeJSON(cmd, out)
}
