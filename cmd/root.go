// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/naka-gawa/github-wrapped/internal/config"
	"github.com/naka-gawa/github-wrapped/internal/domain"
	"github.com/naka-gawa/github-wrapped/internal/gateway"
	"github.com/naka-gawa/github-wrapped/internal/usecase"
	"github.com/naka-gawa/github-wrapped/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "github-wrapped",
	Short: "A yearly summary of a GitHub user's activity.",
	Long: `github-wrapped fetches a user's contributions for the current year with a single
GitHub GraphQL query and summarizes them: commits, pull requests and issues per
repository, reviews, languages, monthly activity and pull request merge times.
The summary can be printed as JSON, rendered as an SVG card, exported to XLSX,
or browsed in a small web UI.`,
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
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}

// setup loads the configuration and builds a logger writing to stderr.
// --verbose forces the debug level.
func setup(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, logger.New(cfg.Log.Level, cfg.Log.Format, os.Stderr), nil
}

func newAggregator(cfg *config.Config, log *logrus.Logger) (*usecase.Aggregator, error) {
	if cfg.GitHub.Token == "" {
		log.Warn("GITHUB_TOKEN is not set; GitHub will reject the contributions query")
	}
	githubGateway, err := gateway.NewGitHubGateway(gateway.Options{
		Token:            cfg.GitHub.Token,
		GraphQLURL:       cfg.GitHub.GraphQLURL,
		APIURL:           cfg.GitHub.APIURL,
		Timeout:          cfg.GitHub.Timeout,
		RateLimitMaxWait: cfg.GitHub.RateLimitMaxWait,
	}, log)
	if err != nil {
		return nil, err
	}
	return usecase.NewAggregator(githubGateway, log), nil
}

type reportContext struct {
	cfg    *config.Config
	log    *logrus.Logger
	report *domain.Report
}

// fetchReport runs the whole pipeline once for the --user flag.
func fetchReport(cmd *cobra.Command) (*reportContext, error) {
	cfg, log, err := setup(cmd)
	if err != nil {
		return nil, err
	}
	aggregator, err := newAggregator(cfg, log)
	if err != nil {
		return nil, err
	}
	user, _ := cmd.Flags().GetString("user")
	report, err := aggregator.Aggregate(cmd.Context(), user)
	if err != nil {
		return nil, err
	}
	return &reportContext{cfg: cfg, log: log, report: report}, nil
}
