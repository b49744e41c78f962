// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/frontier-search/internal/search"
)

var semanticCmd = &cobra.Command{
	Use:   "semantic [query]",
	Short: "Search Semantic Scholar",
	Long: `Search queries the Semantic Scholar graph API and prints unified paper
records with citation counts. With --detail it fetches one paper with its
first references and citations. Transient failures (HTTP 429, 5xx) are
retried with exponential backoff.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		maxResults, _ := cmd.Flags().GetInt("max-results")
		year, _ := cmd.Flags().GetInt("year")
		openAccess, _ := cmd.Flags().GetBool("open-access")
		detail, _ := cmd.Flags().GetString("detail")

		a := newAdapters(currentConfig(), nil)
		if detail != "" {
			env := a.semantic.Detail(cmd.Context(), detail)
			return emit(cmd, env, env.Success)
		}
		if len(args) == 0 {
			return fmt.Errorf("a query is required unless --detail is set")
		}
		env := a.semantic.Search(cmd.Context(), strings.Join(args, " "), search.SemanticOptions{
			MaxResults: maxResults,
			YearFrom:   year,
			OpenAccess: openAccess,
		})
		return emit(cmd, env, env.Success)
	},
}

func init() {
	semanticCmd.Flags().Int("max-results", 10, "maximum number of results (1-100)")
	semanticCmd.Flags().Int("year", 0, "only papers published in this year or later")
	semanticCmd.Flags().Bool("open-access", false, "only papers with an open-access PDF")
	semanticCmd.Flags().String("detail", "", "fetch one paper by id (paperId, arXiv:<id>, DOI:<doi>)")

	rootCmd.AddCommand(semanticCmd)
}
