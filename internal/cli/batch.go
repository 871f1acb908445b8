package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/user/book-classifier/internal/entity"
	"github.com/user/book-classifier/internal/frontend/client"
)

// batchLine is one JSON line of batch output.
type batchLine struct {
	Query  string             `json:"query"`
	Result *entity.BookResult `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

func newBatchCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file>",
		Short: "Analyze every title in a file, one per line",
		Long: `Reads titles from a file (one per line, blank lines and lines starting with # are
skipped), analyzes them one after another and writes one JSON object per title to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open titles: %w", err)
			}
			defer f.Close()

			titles, err := readTitles(f)
			if err != nil {
				return fmt.Errorf("read titles: %w", err)
			}

			bar := progressbar.NewOptions(len(titles),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionSetDescription("📚 Analyzing"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)

			c := opts.client()
			enc := json.NewEncoder(cmd.OutOrStdout())
			failed := 0
			for _, title := range titles {
				line := batchLine{Query: title}
				result, err := c.Analyze(cmd.Context(), title)
				if err != nil {
					line.Error = client.Message(err)
					failed++
				} else {
					line.Result = result
				}
				if err := enc.Encode(line); err != nil {
					return err
				}
				_ = bar.Add(1)
			}
			_ = bar.Finish()

			fmt.Fprintf(cmd.ErrOrStderr(), "%d analyzed, %d failed\n", len(titles)-failed, failed)
			if failed > 0 {
				return ErrReported
			}
			return nil
		},
	}
}

func readTitles(r io.Reader) ([]string, error) {
	var titles []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		titles = append(titles, line)
	}
	return titles, scanner.Err()
}
