package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/salah-times/internal/config"
)

// Global flags shared across all subcommands.
var (
	FlagCity        string
	FlagCountry     string
	FlagCountryCode string
	FlagCityCode    string
	FlagTimezone    string
	FlagLatitude    float64
	FlagLongitude   float64
	FlagMethod      int
	FlagSchool      int
	FlagJSON        bool
	FlagCacheDir    string
	FlagDatasetDir  string
	FlagTimeFormat  string
	FlagDate        string
	FlagConfig      string
	FlagLogLevel    string
)

// loadedConfig holds the config loaded during PersistentPreRunE.
// Available to all subcommand handlers.
var loadedConfig *config.Config

// NewRootCmd creates the root command for the salah-times CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "salah-times",
		Short: "Islamic prayer times CLI",
		Long: "Prayer times from bundled city datasets, with the Al Adhan API as fallback.\n" +
			"Per-prayer offsets, summer hour and forced hour shifts are applied from config.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			cfg, err := config.LoadFrom(path)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			loadedConfig = cfg
			return nil
		},
		// Default action: show today's prayer schedule.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&FlagCity, "city", "", "Override city (takes precedence over config)")
	pf.StringVar(&FlagCountry, "country", "", "Override country name")
	pf.StringVar(&FlagCountryCode, "country-code", "", "Two-letter country code used to pick a dataset")
	pf.StringVar(&FlagCityCode, "city-code", "", "Dataset city code, e.g. SE.MALMO")
	pf.StringVar(&FlagTimezone, "timezone", "", "IANA timezone, e.g. Europe/Stockholm")
	pf.Float64Var(&FlagLatitude, "latitude", 0, "Override latitude")
	pf.Float64Var(&FlagLongitude, "longitude", 0, "Override longitude")
	pf.IntVar(&FlagMethod, "method", -1, "Override calculation method (0-23)")
	pf.IntVar(&FlagSchool, "school", -1, "Override school (0=Shafi, 1=Hanafi)")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.StringVar(&FlagCacheDir, "cache-dir", "", "Cache directory (default: ~/.cache/salah-times/)")
	pf.StringVar(&FlagDatasetDir, "dataset-dir", "", "Dataset directory (default: ~/.config/salah-times/data)")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.StringVar(&FlagDate, "date", "", "Date to show as YYYY-MM-DD (default: today)")
	pf.StringVar(&FlagConfig, "config", "", "Config file (default: ~/.config/salah-times/config.json)")
	pf.StringVar(&FlagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default: $LOG_LEVEL or warn)")

	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newWeekCmd())
	rootCmd.AddCommand(newMonthCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMethodsCmd())
	rootCmd.AddCommand(newLocateCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// PrintVersion prints the version string in the expected format.
func PrintVersion(name, version string) string {
	return fmt.Sprintf("%s %s\n", name, version)
}

// configPath returns the --config path, or the XDG default.
func configPath() (string, error) {
	if FlagConfig != "" {
		return FlagConfig, nil
	}
	return config.Path()
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
func effectiveConfig(cmd *cobra.Command) *config.Config {
	cfg := loadedConfig
	if cfg == nil {
		cfg = &config.Config{}
	}
	defaults := config.Defaults()

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	strs := []struct {
		name string
		flag *string
		dst  *string
	}{
		{"city", &FlagCity, &cfg.City},
		{"country", &FlagCountry, &cfg.Country},
		{"city-code", &FlagCityCode, &cfg.CityCode},
		{"timezone", &FlagTimezone, &cfg.Timezone},
		{"cache-dir", &FlagCacheDir, &cfg.CacheDir},
		{"dataset-dir", &FlagDatasetDir, &cfg.DatasetDir},
		{"time-format", &FlagTimeFormat, &cfg.TimeFormat},
	}
	for _, s := range strs {
		if flagWasSet(flags, root, s.name) {
			*s.dst = *s.flag
		}
	}

	if flagWasSet(flags, root, "country-code") {
		cfg.CountryCode = strings.ToUpper(strings.TrimSpace(FlagCountryCode))
	}
	if flagWasSet(flags, root, "latitude") {
		cfg.Latitude = FlagLatitude
	}
	if flagWasSet(flags, root, "longitude") {
		cfg.Longitude = FlagLongitude
	}
	if flagWasSet(flags, root, "method") {
		cfg.Method = &FlagMethod
	} else if cfg.Method == nil {
		cfg.Method = defaults.Method
	}
	if flagWasSet(flags, root, "school") {
		cfg.School = &FlagSchool
	} else if cfg.School == nil {
		cfg.School = defaults.School
	}

	if cfg.TimeFormat == "" {
		cfg.TimeFormat = defaults.TimeFormat
	}

	return cfg
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}
