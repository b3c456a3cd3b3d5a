package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hubscout/hubscout/internal/apperr"
	"github.com/hubscout/hubscout/internal/fetcher"
	"github.com/hubscout/hubscout/internal/ui"
)

var (
	pickTask         string
	pickOrg          string
	pickLibrary      string
	pickMinDownloads int

	pickCSV         string
	pickBOM         string
	pickNoDownloads bool

	pickHfTimeoutSec int
	pickHfToken      string

	// Logging is controlled via pickLogLevel.
	pickLogLevel string
)

// pickCmd represents the pick command
var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactively search and select models",
	Long:  "Open a full-screen picker that searches as you type. Select models with 's', confirm with enter, and the selection is printed (and optionally exported) like a regular search.",
	Args:  cobra.NoArgs,
	RunE:  runPick,
}

func runPick(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel("pick.log-level")
	if err != nil {
		return err
	}

	// The picker owns the whole screen while it runs, so logging is wired
	// only after it returns.
	records, err := ui.RunPicker(ui.PickerConfig{
		Token:   viper.GetString("pick.hf-token"),
		Timeout: hubTimeout("pick.hf-timeout"),
		Base: fetcher.Filters{
			Task:         viper.GetString("pick.task"),
			Organization: viper.GetString("pick.org"),
			Library:      viper.GetString("pick.library"),
			MinDownloads: viper.GetInt("pick.min-downloads"),
		},
	})
	if err != nil {
		return err
	}
	installLoggers(level)

	if len(records) == 0 {
		return apperr.User("no models selected")
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, ui.RenderResults(records, ui.TableOptions{
		HideDownloads: viper.GetBool("pick.no-downloads"),
	}))

	return exportResults(out, records, viper.GetString("pick.csv"), viper.GetString("pick.bom"))
}

func init() {
	pickCmd.Flags().StringVar(&pickTask, "task", "", "Filter by task (text-generation, image-classification, ...)")
	pickCmd.Flags().StringVar(&pickOrg, "org", "", "Filter by organization")
	pickCmd.Flags().StringVar(&pickLibrary, "library", "", "Filter by library (transformers, diffusers, ...)")
	pickCmd.Flags().IntVar(&pickMinDownloads, "min-downloads", 0, "Minimum download count")
	pickCmd.Flags().StringVar(&pickCSV, "csv", "", "Export the selection to a CSV file")
	pickCmd.Flags().StringVar(&pickBOM, "bom", "", "Export the selection as a CycloneDX BOM (json or xml by extension)")
	pickCmd.Flags().BoolVar(&pickNoDownloads, "no-downloads", false, "Don't show download counts")
	pickCmd.Flags().IntVar(&pickHfTimeoutSec, "hf-timeout", 0, "HTTP timeout in seconds for Hugging Face API")
	pickCmd.Flags().StringVar(&pickHfToken, "hf-token", "", "Hugging Face access token")
	pickCmd.Flags().StringVar(&pickLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	// Bind all flags to viper for config file support
	viper.BindPFlag("pick.task", pickCmd.Flags().Lookup("task"))
	viper.BindPFlag("pick.org", pickCmd.Flags().Lookup("org"))
	viper.BindPFlag("pick.library", pickCmd.Flags().Lookup("library"))
	viper.BindPFlag("pick.min-downloads", pickCmd.Flags().Lookup("min-downloads"))
	viper.BindPFlag("pick.csv", pickCmd.Flags().Lookup("csv"))
	viper.BindPFlag("pick.bom", pickCmd.Flags().Lookup("bom"))
	viper.BindPFlag("pick.no-downloads", pickCmd.Flags().Lookup("no-downloads"))
	viper.BindPFlag("pick.hf-timeout", pickCmd.Flags().Lookup("hf-timeout"))
	viper.BindPFlag("pick.hf-token", pickCmd.Flags().Lookup("hf-token"))
	viper.BindPFlag("pick.log-level", pickCmd.Flags().Lookup("log-level"))
}
