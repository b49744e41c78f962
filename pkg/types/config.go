package types

import "time"

// HTTPConfig holds shared HTTP settings used by every adapter.
type HTTPConfig struct {
	// Timeout is the HTTP client timeout. The adapters enforce no timeout of
	// their own; this is applied to the transport.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "frontier-search/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ArxivConfig holds settings for the preprint-archive adapter.
type ArxivConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the Atom query endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Categories are searched when a request names none.
	Categories []string `json:"categories" yaml:"categories"`
}

// HFPapersConfig holds settings for the curated-feed adapter.
type HFPapersConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the API root (e.g. "https://huggingface.co/api").
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// SemanticScholarConfig holds settings for the citation-graph adapter.
type SemanticScholarConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the graph API root (e.g. "https://api.semanticscholar.org/graph/v1").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is an optional key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries bounds the retries on transient failures. Nil means 3;
	// 0 disables retries.
	MaxRetries *int `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
}

// PerplexityConfig holds settings for the LLM-backed adapter.
type PerplexityConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the chat-completions endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is the OpenRouter key. Requests fail before any network call
	// when it is empty.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Referer and Title identify the calling application to OpenRouter.
	Referer string `json:"referer" yaml:"referer"`
	Title   string `json:"title" yaml:"title"`
}

// ServerConfig holds settings for the optional HTTP surface.
type ServerConfig struct {
	Address         string        `json:"address" yaml:"address"`
	ReadTimeout     time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Config groups the settings of every adapter.
type Config struct {
	HTTP       HTTPConfig            `json:"http" yaml:"http"`
	Arxiv      ArxivConfig           `json:"arxiv" yaml:"arxiv"`
	HFPapers   HFPapersConfig        `json:"hf" yaml:"hf"`
	Semantic   SemanticScholarConfig `json:"semantic" yaml:"semantic"`
	Perplexity PerplexityConfig      `json:"perplexity" yaml:"perplexity"`
	Server     ServerConfig          `json:"server" yaml:"server"`
}
