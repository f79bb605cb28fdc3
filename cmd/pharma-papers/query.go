// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pharma-papers/internal/cache"
	"github.com/pdiddy/pharma-papers/internal/classify"
	"github.com/pdiddy/pharma-papers/internal/logging"
	"github.com/pdiddy/pharma-papers/internal/process"
	"github.com/pdiddy/pharma-papers/internal/pubmed"
	"github.com/pdiddy/pharma-papers/internal/report"
	"github.com/pdiddy/pharma-papers/internal/secrets"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultDelay      = 340 * time.Millisecond
	defaultMaxResults = 100
	defaultCacheDir   = ".pharma-papers"
	defaultUserAgent  = "pharma-papers/0.1"
)

var queryCmd = &cobra.Command{
	Use:   "query [search term]",
	Short: "Search PubMed and filter for company-affiliated authors",
	Long: `Query searches PubMed for the given term, fetches each matching record,
classifies every author affiliation as academic or pharma/biotech, and keeps
records with at least one company-affiliated author.

Output is CSV with the columns PubmedID, Title, Publication Date,
Non-academic Author(s), Company Affiliation(s), Corresponding Author Email.
An empty result set is not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().BoolP("debug", "d", false, "print debug information during execution")
	queryCmd.Flags().StringP("file", "f", "", "write results to this file instead of stdout")
	queryCmd.Flags().Int("max-results", 0, "maximum number of results to fetch (default 100)")
	queryCmd.Flags().Duration("delay", 0, "minimum delay between NCBI requests (default 340ms)")
	queryCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	queryCmd.Flags().Bool("json", false, "output results as JSON instead of CSV")
	queryCmd.Flags().String("keywords-file", "", "YAML file overriding the built-in keyword tables")
	queryCmd.Flags().Bool("no-cache", false, "fetch every record instead of using the local cache")
	queryCmd.Flags().String("cache-dir", "", "directory for the record cache (default .pharma-papers)")
	queryCmd.Flags().String("email", "", "email identifying requests to NCBI")
	queryCmd.Flags().String("api-key", "", "NCBI API key for higher rate limits")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	debug, _ := cmd.Flags().GetBool("debug")
	logging.Setup(debug)

	cfg := queryConfig(cmd)
	query := args[0]

	kw := classify.Default()
	if cfg.Classifier.KeywordsFile != "" {
		loaded, err := classify.LoadKeywords(cfg.Classifier.KeywordsFile)
		if err != nil {
			return err
		}
		kw = loaded
	}

	pipeline := &process.Pipeline{
		Source:     pubmed.NewClient(cfg.PubMed),
		Classifier: classify.New(kw),
	}

	if cfg.Cache.Enabled {
		store, err := cache.Open(cfg.Cache.Dir)
		if err != nil {
			// The cache is an optimization; a broken one should not stop
			// the query.
			slog.Warn("cache unavailable", "error", err)
		} else {
			defer store.Close()
			pipeline.Cache = store
		}
	}

	slog.Info("searching PubMed", "query", query, "max_results", cfg.PubMed.MaxResults)

	results, err := pipeline.Run(cmd.Context(), query, cfg.PubMed.MaxResults)
	if err != nil {
		if debug {
			slog.Error("query failed", "query", query, "error", err)
		}
		return err
	}

	if len(results) == 0 {
		slog.Warn("no papers with company-affiliated authors found")
	}

	if err := report.Write(os.Stdout, results, cfg.Output); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	if cfg.Output.File != "" {
		slog.Info("results written", "file", cfg.Output.File, "records", len(results))
	}
	return nil
}

// queryConfig assembles the pipeline configuration from flags, the viper
// config file/env, and loaded secrets, in that precedence order.
func queryConfig(cmd *cobra.Command) types.PipelineConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("pubmed.timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = viper.GetDuration("pubmed.request_delay")
	}
	if delay == 0 {
		delay = defaultDelay
	}

	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults == 0 {
		maxResults = viper.GetInt("pubmed.max_results")
	}
	if maxResults == 0 {
		maxResults = defaultMaxResults
	}

	email, _ := cmd.Flags().GetString("email")
	apiKey, _ := cmd.Flags().GetString("api-key")

	file, _ := cmd.Flags().GetString("file")
	jsonOut, _ := cmd.Flags().GetBool("json")
	format := types.OutputCSV
	if jsonOut {
		format = types.OutputJSON
	}

	keywordsFile, _ := cmd.Flags().GetString("keywords-file")
	if keywordsFile == "" {
		keywordsFile = viper.GetString("classifier.keywords_file")
	}

	noCache, _ := cmd.Flags().GetBool("no-cache")
	cacheDir, _ := cmd.Flags().GetString("cache-dir")
	if cacheDir == "" {
		cacheDir = viper.GetString("cache.dir")
	}
	if cacheDir == "" {
		cacheDir = defaultCacheDir
	}

	return types.PipelineConfig{
		PubMed: types.PubMedConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: defaultUserAgent,
			},
			Tool:         "pharma-papers",
			Email:        secretDefault(secrets.KeyNCBIEmail, email),
			APIKey:       secretDefault(secrets.KeyNCBIAPIKey, apiKey),
			RequestDelay: delay,
			MaxResults:   maxResults,
		},
		Classifier: types.ClassifierConfig{KeywordsFile: keywordsFile},
		Cache: types.CacheConfig{
			Enabled: !noCache,
			Dir:     cacheDir,
		},
		Output: types.OutputConfig{File: file, Format: format},
	}
}
