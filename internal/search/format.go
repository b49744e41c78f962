// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/frontier-search/pkg/types"
)

// Output formats accepted by Format.
const (
	FormatNameJSON  = "json"
	FormatNameYAML  = "yaml"
	FormatNameTable = "table"
	FormatNameCSL   = "csl"
)

// Format writes v (a types.Envelope or types.DetailEnvelope) to w in the
// named format. Table and CSL output apply to list envelopes only.
func Format(name string, v any, w io.Writer) error {
	switch name {
	case "", FormatNameJSON:
		return FormatJSON(v, w)
	case FormatNameYAML:
		return FormatYAML(v, w)
	case FormatNameTable, FormatNameCSL:
		env, ok := v.(types.Envelope)
		if !ok {
			// Detail results are a single record; fall back to YAML.
			return FormatYAML(v, w)
		}
		if name == FormatNameCSL {
			return FormatCSL(env, w)
		}
		FormatTable(env, w)
		return nil
	default:
		return fmt.Errorf("unknown output format %q, valid: json, yaml, table, csl", name)
	}
}

// FormatJSON writes v as indented JSON to w.
func FormatJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatYAML writes v as YAML to w.
func FormatYAML(v any, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	enc.SetIndent(2)
	return enc.Encode(v)
}

// FormatTable writes env as a human-readable table to w.
func FormatTable(env types.Envelope, w io.Writer) {
	if !env.Success {
		fmt.Fprintf(w, "%s: %s\n", env.Source, env.Error)
		return
	}
	if env.Answers != nil {
		for _, a := range env.Answers {
			fmt.Fprintf(w, "%s\n", a.Answer)
			if len(a.Citations) > 0 {
				fmt.Fprintln(w, "\nCitations:")
				for i, c := range a.Citations {
					fmt.Fprintf(w, "  [%d] %s\n", i+1, c)
				}
			}
			fmt.Fprintf(w, "\nmodel: %s\n", a.Model)
		}
		return
	}
	if len(env.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-4s  %-9s  %s\n",
		"Rank", "Title", "Authors", "Year", "Citations", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 130))

	for i, p := range env.Results {
		year := ""
		if p.Year != nil {
			year = fmt.Sprintf("%d", *p.Year)
		}
		cites := "-"
		if p.Citations != nil {
			cites = fmt.Sprintf("%d", *p.Citations)
		}
		link := p.URL
		if link == "" {
			link = p.PDFURL
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-4s  %-9s  %s\n",
			i+1, truncate(p.Title, 60), formatAuthors(p.Authors), year, cites, link)
	}

	fmt.Fprintf(w, "\n%d results from %s\n", env.ResultCount(), env.Source)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
