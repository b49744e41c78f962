// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/frontier-search/internal/search"
)

var arxivCmd = &cobra.Command{
	Use:   "arxiv <query>",
	Short: "Search arXiv preprints",
	Long: `Search queries the arXiv Atom API, restricted to a category list
(default cs.AI, cs.LG, cs.CL, cs.CV, stat.ML, cs.MA), and prints unified
paper records.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxResults, _ := cmd.Flags().GetInt("max-results")
		sortBy, _ := cmd.Flags().GetString("sort-by")
		cats, _ := cmd.Flags().GetStringSlice("categories")

		a := newAdapters(currentConfig(), nil)
		env := a.arxiv.Search(cmd.Context(), strings.Join(args, " "), search.ArxivOptions{
			MaxResults: maxResults,
			SortBy:     sortBy,
			Categories: cats,
		})
		return emit(cmd, env, env.Success)
	},
}

func init() {
	arxivCmd.Flags().Int("max-results", 10, "maximum number of results (1-100)")
	arxivCmd.Flags().String("sort-by", search.SortRelevance, "sort order: relevance or date")
	arxivCmd.Flags().StringSlice("categories", nil, "arXiv categories to search (comma-separated)")

	rootCmd.AddCommand(arxivCmd)
}
