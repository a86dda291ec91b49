package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newLocateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locate",
		Short: "Show which dataset file the current location uses",
		Long: "Print the dataset file picked for the configured country, timezone and city.\n" +
			"Exits with an error when no dataset matches and the remote API would be used.",
		Args: cobra.NoArgs,
		RunE: runLocate,
	}
}

type locateJSON struct {
	Path        string `json:"path"`
	CountryCode string `json:"countryCode"`
	Timezone    string `json:"timezone,omitempty"`
	City        string `json:"city,omitempty"`
}

func runLocate(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	if e.loc.CountryCode == "" {
		return fmt.Errorf("no country code: set one with --country-code or 'config set country_code'")
	}

	city := e.loc.City
	if e.loc.CityCode != "" {
		city = cityFromCode(e.loc.CityCode)
	}

	name, ok := e.locator.Locate(e.loc.CountryCode, e.loc.TimezoneName, city)
	if !ok {
		return fmt.Errorf("no dataset for country %s in %s", e.loc.CountryCode, e.datasetDir)
	}
	full := filepath.Join(e.datasetDir, filepath.FromSlash(name))

	if FlagJSON {
		return writeJSON(cmd, locateJSON{
			Path:        full,
			CountryCode: e.loc.CountryCode,
			Timezone:    e.loc.TimezoneName,
			City:        city,
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), full)
	return nil
}
