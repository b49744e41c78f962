package search

import (
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/frontier-search/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID       string    `yaml:"id"`
	Type     string    `yaml:"type"`
	Title    string    `yaml:"title"`
	Author   []CSLName `yaml:"author,omitempty"`
	Abstract string    `yaml:"abstract,omitempty"`
	Issued   *CSLDate  `yaml:"issued,omitempty"`
	DOI      string    `yaml:"DOI,omitempty"`
	URL      string    `yaml:"URL,omitempty"`
	Source   string    `yaml:"source,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes the paper records of env as a CSL-YAML list to w. Answer
// envelopes have no bibliographic records and are rejected.
func FormatCSL(env types.Envelope, w io.Writer) error {
	if env.Answers != nil {
		return fmt.Errorf("CSL output needs paper records; %s returns answers", env.Source)
	}
	items := make([]CSLItem, len(env.Results))
	for i, p := range env.Results {
		items[i] = toCSLItem(p, env.Source, i)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a Paper to a CSLItem. The id prefers the arXiv id,
// then the DOI, then the Semantic Scholar id, then a positional fallback.
func toCSLItem(p types.Paper, source types.Source, pos int) CSLItem {
	item := CSLItem{
		ID:       cslID(p, source, pos),
		Type:     "article",
		Title:    p.Title,
		Abstract: p.Abstract,
		URL:      p.URL,
		Source:   string(source),
	}

	for _, a := range p.Authors {
		if n := parseAuthorName(a); n != (CSLName{}) {
			item.Author = append(item.Author, n)
		}
	}

	if p.Year != nil {
		item.Issued = &CSLDate{DateParts: [][]int{{*p.Year}}}
	}

	if doi := specificString(p, "doi"); strings.HasPrefix(doi, "10.") {
		item.DOI = doi
	}

	return item
}

func cslID(p types.Paper, source types.Source, pos int) string {
	for _, key := range []string{"arxiv_id", "doi", "s2_paper_id"} {
		if v := specificString(p, key); v != "" {
			return v
		}
	}
	return fmt.Sprintf("%s-%d", source, pos+1)
}

func specificString(p types.Paper, key string) string {
	s, _ := p.SourceSpecific[key].(string)
	return s
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
