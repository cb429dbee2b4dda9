package main

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"jobboard-engine/internal/board"
	"jobboard-engine/internal/query"
)

var (
	qCriteria query.Criteria
	qPage     int
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Filter jobs and print them as JSON",
	Long: `Filter jobs and print them as JSON.

Without --page every matching job is printed along with the total and
filtered counts. With --page only that page is printed.`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one job as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var facetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "Print the distinct sources and categories",
	Args:  cobra.NoArgs,
	RunE:  runFacets,
}

func init() {
	f := queryCmd.Flags()
	f.StringVar(&qCriteria.Source, "source", "", "exact source")
	f.StringVar(&qCriteria.Category, "category", "", "exact category or type")
	f.StringVar(&qCriteria.Search, "search", "", "case-insensitive text in title or description")
	f.StringVar(&qCriteria.Arrangement, "arrangement", "", "remote, hybrid or onsite")
	f.StringVar(&qCriteria.JobType, "job-type", "", "full-time, part-time, contract or freelance")
	f.StringVar(&qCriteria.SalaryBracket, "salary", "", "under500, 500to1000, 1000to2000, 2000to5000 or 5000plus")
	f.StringVar(&qCriteria.Sort, "sort", "", `"oldest" for oldest first; newest first otherwise`)
	f.IntVar(&qPage, "page", 0, "page number (page size from board.page_size)")
}

func runQuery(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if !cmd.Flags().Changed("page") {
		total, jobs := a.board.All(cmd.Context(), qCriteria)
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"total":    total,
			"filtered": len(jobs),
			"jobs":     jobs,
		})
	}
	return printJSON(cmd.OutOrStdout(), a.board.Query(cmd.Context(), qCriteria, qPage))
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.Newf("job id must be an integer, got %q", args[0])
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	job, err := a.board.Get(cmd.Context(), id)
	if errors.Is(err, board.ErrNotFound) {
		return errors.WithHint(err, "ids are positions in the source, starting at 0")
	}
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), job)
}

func runFacets(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	return printJSON(cmd.OutOrStdout(), a.board.Facets(cmd.Context()))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "write output")
}
