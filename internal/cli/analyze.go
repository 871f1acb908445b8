package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/book-classifier/internal/entity"
	"github.com/user/book-classifier/internal/frontend/badge"
	"github.com/user/book-classifier/internal/frontend/client"
)

func newAnalyzeCommand(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <title...>",
		Short: "Analyze a single book title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			result, err := opts.client().Analyze(cmd.Context(), title)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), client.Message(err))
				return ErrReported
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw JSON result")
	return cmd
}

func printResult(w io.Writer, r *entity.BookResult) {
	pages := "?"
	if r.PageCount != nil && *r.PageCount > 0 {
		pages = strconv.Itoa(*r.PageCount)
	}
	a := r.Analysis

	fmt.Fprintln(w, r.Title)
	fmt.Fprintf(w, "%s • %s Halaman\n", strings.Join(r.Authors, ", "), pages)
	fmt.Fprintf(w, "%s %s (%s%%)\n", badge.For(a.BadgeColor).Icon, a.Jenjang, strconv.FormatFloat(a.ConfidenceScore, 'f', -1, 64))
	fmt.Fprintf(w, "Alasan: %s\n", a.Alasan)
	fmt.Fprintf(w, "Saran:  %s\n", a.Saran)
}
