package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asyncopatedsoul/health-protocol/internal/activity"
)

func newSearchCmd(run runFunc, out printerFunc) *cobra.Command {
	search := &cobra.Command{Use: "search", Short: "Activity search index commands"}

	search.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Report search service availability and index size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(a *app) error {
				res, err := a.activity.SearchStatus(cmd.Context())
				if err != nil {
					return err
				}
				return out(cmd).result(res, func(w io.Writer) {
					if !res.Available {
						fmt.Fprintf(w, "search unavailable; catalog has %d activities\n", res.CatalogCount)
						return
					}
					fmt.Fprintf(w, "search available: %d documents indexed, %d activities in catalog\n", res.DocumentCount, res.CatalogCount)
				})
			})
		},
	})

	search.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Configure the index and push every catalog activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(a *app) error {
				res, err := a.activity.SeedIndex(cmd.Context())
				if err != nil {
					return err
				}
				return out(cmd).result(res, func(w io.Writer) {
					fmt.Fprintf(w, "indexed %d activities\n", res.Indexed)
				})
			})
		},
	})

	var limit int
	queryCmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Search the activity catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(a *app) error {
				res, err := a.activity.Search(cmd.Context(), activity.SearchInput{Query: strings.Join(args, " "), Limit: limit})
				if err != nil {
					return err
				}
				return out(cmd).result(res, func(w io.Writer) { printSearch(w, res) })
			})
		},
	}
	queryCmd.Flags().IntVar(&limit, "limit", 10, "maximum results")
	search.AddCommand(queryCmd)

	return search
}

func printSearch(w io.Writer, res activity.SearchOutput) {
	if !res.SearchServiceAvailable {
		fmt.Fprintln(w, "(search unavailable, substring matches)")
	}
	if len(res.Results) == 0 {
		fmt.Fprintf(w, "no activities match %q\n", res.Query)
		return
	}
	for _, r := range res.Results {
		if r.Score != nil {
			fmt.Fprintf(w, "%.3f  %s (%s)\n", *r.Score, r.Activity.Name, r.Activity.Slug)
		} else {
			fmt.Fprintf(w, "       %s (%s)\n", r.Activity.Name, r.Activity.Slug)
		}
	}
}
