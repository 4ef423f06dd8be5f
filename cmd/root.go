// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/naka-gawa/loc-chart/internal/config"
	"github.com/naka-gawa/loc-chart/internal/gateway"
	"github.com/naka-gawa/loc-chart/internal/usecase"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cfg will hold the validated, final configuration.
var cfg = &config.Config{}

var rootCmd = &cobra.Command{
	Use:   "loc-chart",
	Short: "Render a GitHub user's lines of code contributed as an SVG chart.",
	Long: `loc-chart aggregates the weekly additions and deletions a GitHub user made
across their own, collaborated and organization repositories, and renders
them as a cumulative area chart or a monthly bar chart in SVG.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default .loc-chart.yaml in . or $HOME)")
	rootCmd.PersistentFlags().String("timeout", config.DefaultTimeout, "Timeout for each repository's statistics fetch")
	rootCmd.PersistentFlags().String("retry-delay", config.DefaultRetryDelay, "Wait before retrying statistics that are still being computed")
	rootCmd.PersistentFlags().Int("concurrency", config.DefaultConcurrency, "Maximum number of concurrent repository fetches")
	rootCmd.PersistentFlags().Int("max-pages", config.DefaultMaxPages, "Maximum pages of 100 repositories read per source")
	for _, name := range []string{"config", "timeout", "retry-delay", "concurrency", "max-pages"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".loc-chart")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("LOC_CHART")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	// The token keeps the conventional variable name.
	_ = viper.BindEnv("token", "GITHUB_TOKEN", "LOC_CHART_TOKEN")

	viper.SetDefault("addr", config.DefaultAddr)
	viper.SetDefault("cache-seconds", config.DefaultCacheSeconds)
}

// setup merges config file, environment and flags into cfg.
func setup() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	input := &config.ConfigRawInput{}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return config.ProcessAndValidate(cfg, input)
}

// newLogger returns a logger that discards everything unless --verbose is set.
func newLogger(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// newPipeline wires the gateway and use cases from cfg.
func newPipeline(logger *log.Logger) (*usecase.Pipeline, error) {
	githubGateway, err := gateway.NewGitHubGateway(cfg.Token, cfg.MaxPages, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	pipeline := usecase.NewPipeline(githubGateway, logger)
	pipeline.Collector().Timeout = cfg.Timeout
	pipeline.Collector().RetryDelay = cfg.RetryDelay
	pipeline.Collector().Concurrency = cfg.Concurrency
	return pipeline, nil
}
