// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Source identifies the upstream API that answered a request.
type Source string

const (
	SourceArxiv           Source = "arxiv"
	SourceHFPapers        Source = "hf_papers"
	SourceSemanticScholar Source = "semantic_scholar"
	SourcePerplexity      Source = "perplexity"
)

// AbstractLimit is the number of abstract characters kept before the
// truncation marker is appended.
const AbstractLimit = 500

// TruncationMarker is appended to abstracts cut at AbstractLimit.
const TruncationMarker = "..."

// CodeRepo is a linked implementation of a paper.
type CodeRepo struct {
	URL       string `json:"url" yaml:"url"`
	Stars     int    `json:"stars" yaml:"stars"`
	Framework string `json:"framework" yaml:"framework"`
}

// Paper is the unified record every non-LLM source is normalized into.
// Records are built fresh per call and never mutated after construction.
type Paper struct {
	// Title is the paper title with whitespace collapsed.
	Title string `json:"title" yaml:"title"`

	// Authors lists display names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year, nil when the source gives none.
	Year *int `json:"year" yaml:"year"`

	// Abstract is at most AbstractLimit characters plus TruncationMarker.
	Abstract string `json:"abstract" yaml:"abstract"`

	// TLDR is a machine-generated summary, or empty.
	TLDR string `json:"tldr" yaml:"tldr"`

	// URL is the canonical human-viewable page.
	URL string `json:"url" yaml:"url"`

	// PDFURL is empty when no open PDF is known.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// Citations is nil when the source does not track citation counts.
	Citations *int `json:"citations" yaml:"citations"`

	CodeRepos []CodeRepo `json:"code_repos" yaml:"code_repos"`

	// RelevanceScore is reserved and currently always nil.
	RelevanceScore *float64 `json:"relevance_score" yaml:"relevance_score"`

	KeyMethods []string `json:"key_methods" yaml:"key_methods"`

	// SourceSpecific carries fields with no cross-source equivalent
	// (arXiv id, DOI, upvotes, influence score).
	SourceSpecific map[string]any `json:"source_specific" yaml:"source_specific"`
}

// Answer is the single record returned by the LLM-backed source.
type Answer struct {
	Answer    string   `json:"answer" yaml:"answer"`
	Citations []string `json:"citations" yaml:"citations"`
	Model     string   `json:"model" yaml:"model"`
}

// PaperSummary is the reduced form of a referenced or citing paper.
type PaperSummary struct {
	Title     string `json:"title" yaml:"title"`
	Year      *int   `json:"year" yaml:"year"`
	Citations *int   `json:"citations" yaml:"citations"`
}

// PaperDetail is a single enriched record returned by detail operations.
// The embedded Paper fields are flattened on the wire.
type PaperDetail struct {
	Paper `yaml:",inline"`

	ReferencesCount *int           `json:"references_count,omitempty" yaml:"references_count,omitempty"`
	TopReferences   []PaperSummary `json:"top_references,omitempty" yaml:"top_references,omitempty"`
	RecentCitations []PaperSummary `json:"recent_citations,omitempty" yaml:"recent_citations,omitempty"`
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
