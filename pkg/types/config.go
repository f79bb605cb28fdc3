package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pharma-papers/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// PubMedConfig holds settings for the NCBI E-utilities client.
type PubMedConfig struct {
	HTTPConfig `yaml:",inline"`

	// Tool identifies this client to NCBI (the "tool" query parameter).
	Tool string `json:"tool" yaml:"tool"`

	// Email identifies the operator to NCBI (the "email" query parameter).
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// APIKey is an optional NCBI API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// RequestDelay is the minimum delay between consecutive E-utilities
	// requests (default 340ms, NCBI allows 3 requests/second without a key).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`

	// MaxResults is the maximum number of PMIDs to request (default 100).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ClassifierConfig holds settings for the affiliation classifier.
type ClassifierConfig struct {
	// KeywordsFile optionally points to a YAML file overriding the built-in
	// keyword tables.
	KeywordsFile string `json:"keywords_file,omitempty" yaml:"keywords_file,omitempty"`
}

// CacheConfig holds settings for the local record cache.
type CacheConfig struct {
	// Enabled controls whether fetched records are cached.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory holding the cache database (default ".pharma-papers").
	Dir string `json:"dir" yaml:"dir"`
}

// OutputFormat selects the results serialization.
type OutputFormat string

const (
	OutputCSV  OutputFormat = "csv"
	OutputJSON OutputFormat = "json"
)

// OutputConfig holds settings for result output.
type OutputConfig struct {
	// File is the output path; empty means stdout.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// Format selects csv or json.
	Format OutputFormat `json:"format" yaml:"format"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	PubMed     PubMedConfig     `json:"pubmed" yaml:"pubmed"`
	Classifier ClassifierConfig `json:"classifier" yaml:"classifier"`
	Cache      CacheConfig      `json:"cache" yaml:"cache"`
	Output     OutputConfig     `json:"output" yaml:"output"`
}
