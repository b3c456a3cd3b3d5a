package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hubscout/hubscout/internal/apperr"
	"github.com/hubscout/hubscout/internal/export"
	"github.com/hubscout/hubscout/internal/fetcher"
	"github.com/hubscout/hubscout/internal/repl"
	"github.com/hubscout/hubscout/internal/ui"
)

var (
	searchName    string
	searchTask    string
	searchOrg     string
	searchLibrary string

	searchLimit        int
	searchMinDownloads int
	searchPopular      bool
	searchRecent       bool

	searchSort string
	searchAsc  bool

	searchCSV         string
	searchBOM         string
	searchJSON        bool
	searchNoDownloads bool

	searchHfTimeoutSec int
	searchHfToken      string

	// Logging is controlled via searchLogLevel.
	searchLogLevel string
)

// runSearch performs one search with the flag/config/env settings and prints
// or exports the results.
func runSearch(cmd *cobra.Command) error {
	// Resolve effective log level (from config, env, or flag).
	level, err := resolveLogLevel("search.log-level")
	if err != nil {
		return err
	}
	installLoggers(level)

	sortKey, err := resolveSort("search.sort")
	if err != nil {
		return err
	}

	minDownloads := viper.GetInt("search.min-downloads")
	if viper.GetBool("search.popular") && minDownloads < fetcher.PopularFloor {
		minDownloads = fetcher.PopularFloor
	}

	createdAfter := ""
	if viper.GetBool("search.recent") {
		createdAfter = fetcher.RecentCutoff
		// Recent listings sort by creation date unless the user picked a
		// sort key themselves.
		if !cmd.Flags().Changed("sort") {
			sortKey = fetcher.SortCreated
		}
	}

	searcher := newSearcher("search")
	records := searcher.Search(context.Background(), fetcher.Filters{
		Query:        viper.GetString("search.name"),
		Task:         viper.GetString("search.task"),
		Organization: viper.GetString("search.org"),
		Library:      viper.GetString("search.library"),
		Sort:         sortKey,
		Ascending:    viper.GetBool("search.asc"),
		Limit:        viper.GetInt("search.limit"),
		MinDownloads: minDownloads,
		CreatedAfter: createdAfter,
	})

	out := cmd.OutOrStdout()
	if viper.GetBool("search.json") {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	} else {
		fmt.Fprint(out, ui.RenderResults(records, ui.TableOptions{
			HideDownloads: viper.GetBool("search.no-downloads"),
		}))
	}

	return exportResults(out, records, viper.GetString("search.csv"), viper.GetString("search.bom"))
}

// runInteractive enters the line-command loop. It shares the search command's
// token/timeout/log settings, so config files and env vars still apply.
func runInteractive(cmd *cobra.Command) error {
	level, err := resolveLogLevel("search.log-level")
	if err != nil {
		return err
	}
	installLoggers(level)
	return repl.New(newSearcher("search")).Run(context.Background())
}

// newSearcher builds a ModelSearcher from a command's hf-token/hf-timeout
// settings.
func newSearcher(command string) *fetcher.ModelSearcher {
	return &fetcher.ModelSearcher{
		Client: fetcher.NewHubClient(
			hubTimeout(command+".hf-timeout"),
			viper.GetString(command+".hf-token"),
		),
	}
}

// resolveSort reads and validates a <command>.sort key.
func resolveSort(key string) (string, error) {
	name := viper.GetString(key)
	if name == "" {
		return fetcher.SortDownloads, nil
	}
	switch name {
	case fetcher.SortDownloads, fetcher.SortLikes, fetcher.SortCreated, fetcher.SortModified:
		return name, nil
	}
	return "", apperr.Userf("invalid --sort %q (expected downloads|likes|created|modified)", name)
}

// exportResults writes the optional CSV and BOM exports for one result set.
func exportResults(out io.Writer, records []fetcher.Record, csvPath, bomPath string) error {
	if csvPath != "" {
		if err := export.CSV(out, records, csvPath); err != nil {
			return err
		}
	}
	if bomPath != "" {
		if err := export.BOM(out, records, bomPath); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.Flags().StringVar(&searchName, "name", "", "Search by model name")
	rootCmd.Flags().StringVar(&searchTask, "task", "", "Filter by task (text-generation, image-classification, ...)")
	rootCmd.Flags().StringVar(&searchOrg, "org", "", "Filter by organization")
	rootCmd.Flags().StringVar(&searchLibrary, "library", "", "Filter by library (transformers, diffusers, ...)")
	rootCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum number of results (default: 50)")
	rootCmd.Flags().IntVar(&searchMinDownloads, "min-downloads", 0, "Minimum download count")
	rootCmd.Flags().BoolVar(&searchPopular, "popular", false, "Only popular models (10k+ downloads)")
	rootCmd.Flags().BoolVar(&searchRecent, "recent", false, "Recent models (created 2024+)")
	rootCmd.Flags().StringVar(&searchSort, "sort", "", "Sort by: downloads|likes|created|modified (default: downloads)")
	rootCmd.Flags().BoolVar(&searchAsc, "asc", false, "Sort ascending (default: descending)")
	rootCmd.Flags().StringVar(&searchCSV, "csv", "", "Export results to a CSV file")
	rootCmd.Flags().StringVar(&searchBOM, "bom", "", "Export results as a CycloneDX BOM (json or xml by extension)")
	rootCmd.Flags().BoolVar(&searchJSON, "json", false, "Print results as JSON instead of a table")
	rootCmd.Flags().BoolVar(&searchNoDownloads, "no-downloads", false, "Don't show download counts")
	rootCmd.Flags().IntVar(&searchHfTimeoutSec, "hf-timeout", 0, "HTTP timeout in seconds for Hugging Face API")
	rootCmd.Flags().StringVar(&searchHfToken, "hf-token", "", "Hugging Face access token")
	rootCmd.Flags().StringVar(&searchLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	// Bind all flags to viper for config file support
	viper.BindPFlag("search.name", rootCmd.Flags().Lookup("name"))
	viper.BindPFlag("search.task", rootCmd.Flags().Lookup("task"))
	viper.BindPFlag("search.org", rootCmd.Flags().Lookup("org"))
	viper.BindPFlag("search.library", rootCmd.Flags().Lookup("library"))
	viper.BindPFlag("search.limit", rootCmd.Flags().Lookup("limit"))
	viper.BindPFlag("search.min-downloads", rootCmd.Flags().Lookup("min-downloads"))
	viper.BindPFlag("search.popular", rootCmd.Flags().Lookup("popular"))
	viper.BindPFlag("search.recent", rootCmd.Flags().Lookup("recent"))
	viper.BindPFlag("search.sort", rootCmd.Flags().Lookup("sort"))
	viper.BindPFlag("search.asc", rootCmd.Flags().Lookup("asc"))
	viper.BindPFlag("search.csv", rootCmd.Flags().Lookup("csv"))
	viper.BindPFlag("search.bom", rootCmd.Flags().Lookup("bom"))
	viper.BindPFlag("search.json", rootCmd.Flags().Lookup("json"))
	viper.BindPFlag("search.no-downloads", rootCmd.Flags().Lookup("no-downloads"))
	viper.BindPFlag("search.hf-timeout", rootCmd.Flags().Lookup("hf-timeout"))
	viper.BindPFlag("search.hf-token", rootCmd.Flags().Lookup("hf-token"))
	viper.BindPFlag("search.log-level", rootCmd.Flags().Lookup("log-level"))
}
