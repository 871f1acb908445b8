// Package cli implements bookctl, a terminal client for the analyze API.
package cli

import (
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/book-classifier/internal/frontend/client"
	"github.com/user/book-classifier/pkg/config"
)

// ErrReported means the failure was already printed; the caller should only set the exit code.
var ErrReported = errors.New("error reported")

type options struct {
	apiURL  string
	timeout time.Duration
}

func (o *options) client() *client.Client {
	return client.New(o.apiURL, &http.Client{Timeout: o.timeout})
}

// NewRootCommand builds the bookctl command tree. cfg supplies flag defaults.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "bookctl",
		Short: "Classify books by Kemendikbud reading level",
		Long: `bookctl sends book titles to the classifier API and prints the reading level,
confidence score, rationale and reading recommendation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", cfg.APIURL, "Base URL of the analyze API (env API_URL)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", cfg.APITimeoutDuration(), "Timeout per analysis request")

	root.AddCommand(newAnalyzeCommand(opts))
	root.AddCommand(newBatchCommand(opts))
	return root
}
