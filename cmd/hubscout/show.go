package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hubscout/hubscout/internal/apperr"
	"github.com/hubscout/hubscout/internal/fetcher"
	"github.com/hubscout/hubscout/internal/ui"
)

var (
	showHfTimeoutSec int
	showHfToken      string

	// Logging is controlled via showLogLevel.
	showLogLevel string
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <model-id>",
	Short: "Show detailed metadata for one model",
	Long:  "Fetch a single model's metadata and model card from Hugging Face and print a detail view. The model id uses the hub form, e.g. openai/whisper-large-v3 or gpt2.",
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel("show.log-level")
	if err != nil {
		return err
	}
	installLoggers(level)
	quiet := level == "quiet"

	if len(args) != 1 {
		return apperr.User("expected exactly one model id, e.g. 'hubscout show openai/whisper-large-v3'")
	}
	modelID := args[0]

	client := fetcher.NewHubClient(hubTimeout("show.hf-timeout"), viper.GetString("show.hf-token"))
	out := cmd.OutOrStdout()
	ctx := context.Background()

	var workflow *ui.Workflow
	var metaIdx, cardIdx int
	if !quiet {
		workflow = ui.NewWorkflow(out)
		metaIdx = workflow.AddTask("Fetching model metadata")
		cardIdx = workflow.AddTask("Fetching model card")
		workflow.Start()
		workflow.StartTask(metaIdx, ui.Dim.Render(modelID))
	}

	infoFetcher := &fetcher.ModelInfoFetcher{Client: client}
	info, err := infoFetcher.Fetch(ctx, modelID)
	if err != nil {
		if workflow != nil {
			workflow.FailTask(metaIdx, err.Error())
			workflow.SkipTask(cardIdx, "")
			workflow.Stop()
		}
		return describeHubError(err, modelID)
	}
	if workflow != nil {
		workflow.CompleteTask(metaIdx, info.ID)
		workflow.StartTask(cardIdx, "")
	}

	// A missing README is normal, so card errors only skip the section.
	cardFetcher := &fetcher.ModelCardFetcher{Client: client}
	card, cardErr := cardFetcher.Fetch(ctx, modelID)
	if cardErr != nil {
		card = nil
		if workflow != nil {
			workflow.SkipTask(cardIdx, "no model card")
		}
	} else if workflow != nil {
		details := ""
		if card.License != "" {
			details = "license " + card.License
		}
		workflow.CompleteTask(cardIdx, details)
	}
	if workflow != nil {
		workflow.Stop()
		fmt.Fprintln(out)
	}

	ui.NewDetailUI(out, quiet).PrintModel(info, card)
	return nil
}

// describeHubError turns hub API failures for a model lookup into messages a
// user can act on. Anything that is not a recognizable hub status is wrapped
// and propagated as-is.
func describeHubError(err error, modelID string) error {
	switch {
	case fetcher.IsNotFound(err):
		return apperr.Userf("model %q not found on the hub", modelID)
	case fetcher.IsUnauthorized(err):
		return apperr.Userf("model %q is gated or private; pass --hf-token", modelID)
	case fetcher.IsRateLimited(err):
		return apperr.User("the hub is rate limiting requests; try again in a moment")
	}
	return fmt.Errorf("fetch model metadata: %w", err)
}

func init() {
	showCmd.Flags().IntVar(&showHfTimeoutSec, "hf-timeout", 0, "HTTP timeout in seconds for Hugging Face API")
	showCmd.Flags().StringVar(&showHfToken, "hf-token", "", "Hugging Face access token")
	showCmd.Flags().StringVar(&showLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	// Bind all flags to viper for config file support
	viper.BindPFlag("show.hf-timeout", showCmd.Flags().Lookup("hf-timeout"))
	viper.BindPFlag("show.hf-token", showCmd.Flags().Lookup("hf-token"))
	viper.BindPFlag("show.log-level", showCmd.Flags().Lookup("log-level"))
}
