package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hubscout/hubscout/internal/apperr"
	"github.com/hubscout/hubscout/internal/export"
	"github.com/hubscout/hubscout/internal/fetcher"
	"github.com/hubscout/hubscout/internal/ui"
)

// rootCmd represents the base command. Invoking it with flags runs a single
// search; invoking it bare enters the interactive loop.
var rootCmd = &cobra.Command{
	Use:   "hubscout",
	Short: "Search Hugging Face models without downloading anything",
	Long:  longDescription,
	Args:  cobra.NoArgs,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initUIAndBanner(cmd)
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().NFlag() == 0 {
			return runInteractive(cmd)
		}
		return runSearch(cmd)
	},
}

var cfgFile string
var version string

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// GetRootCmd returns the root command for use with fang
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hubscout.yaml or ./config/defaults.yaml)")

	// Ensure `--help` (and help subcommands) show the banner consistently.
	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		initUIAndBanner(cmd)
		defaultHelp(cmd, args)
	})

	// Add subcommands
	rootCmd.AddCommand(pickCmd, showCmd)
}

func initConfig() {
	// Environment variables bind before any config file is read so that
	// HUBSCOUT_SEARCH_LIMIT-style overrides always apply.
	viper.SetEnvPrefix("HUBSCOUT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
		cobra.CheckErr(viper.ReadInConfig())
		announceConfig()
		return
	}

	// Find home directory.
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)
	viper.AddConfigPath("./config")

	// Try .hubscout first
	viper.SetConfigName(".hubscout")
	err = viper.ReadInConfig()

	// If not found, try defaults.yaml
	notFound := &viper.ConfigFileNotFoundError{}
	if err != nil && errors.As(err, notFound) {
		viper.SetConfigName("defaults")
		err = viper.ReadInConfig()
	}

	if err != nil && !errors.As(err, notFound) {
		// The config file is optional; only a malformed one is fatal.
		cobra.CheckErr(err)
	}

	if err == nil {
		announceConfig()
	}
}

func announceConfig() {
	configMsg := ui.Dim.Render("Using config file: ") + ui.Secondary.Render(viper.ConfigFileUsed())
	fmt.Fprintln(os.Stderr, configMsg)
}

const longDescription = `Search Hugging Face models without downloading anything.

Examples:
  hubscout --name GPT                            search for GPT models
  hubscout --task text-generation --limit 20     text generation models
  hubscout --org microsoft                       models published by Microsoft
  hubscout --popular --task image-classification popular image models
  hubscout --recent --limit 10                   recently created models
  hubscout                                       interactive mode`

func initUIAndBanner(cmd *cobra.Command) {
	if cmd == nil {
		return
	}
	cmd.Root().Long = ui.RenderGradientBanner(ui.BannerASCII) + "\n" + longDescription
}

// resolveLogLevel reads and validates a <command>.log-level key.
func resolveLogLevel(key string) (string, error) {
	level := strings.ToLower(strings.TrimSpace(viper.GetString(key)))
	if level == "" {
		level = "standard"
	}
	switch level {
	case "quiet", "standard", "debug":
		return level, nil
	}
	return "", apperr.Userf("invalid --log-level %q (expected quiet|standard|debug)", level)
}

// installLoggers wires the opt-in package loggers for the chosen level.
// standard traces the search lifecycle on stderr; debug adds per-request and
// export traces.
func installLoggers(level string) {
	if level == "quiet" {
		return
	}
	fetcher.SetLogger(os.Stderr)
	if level == "debug" {
		fetcher.SetHTTPLogger(os.Stderr)
		export.SetLogger(os.Stderr)
	}
}

// hubTimeout reads a <command>.hf-timeout key in seconds; unset or
// non-positive values fall back to 10 seconds.
func hubTimeout(key string) time.Duration {
	secs := viper.GetInt(key)
	if secs <= 0 {
		secs = 10
	}
	return time.Duration(secs) * time.Second
}
