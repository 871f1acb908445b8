// Package page holds the state of one search page: the query, an in-flight flag,
// the last result and the last error message.
package page

import (
	"context"
	"strings"
	"sync"

	"github.com/user/book-classifier/internal/entity"
	"github.com/user/book-classifier/internal/frontend/client"
)

// Analyzer is the remote analyze call.
type Analyzer interface {
	Analyze(ctx context.Context, title string) (*entity.BookResult, error)
}

// View names the single block the page renders below the search form.
type View string

const (
	ViewNone    View = "none"
	ViewError   View = "error"
	ViewLoading View = "loading"
	ViewResult  View = "result"
)

// State is a copy of the page state safe to hand to a template.
type State struct {
	Query   string
	Loading bool
	Result  *entity.BookResult
	Error   string
}

// View reports which block to render. A result is only shown once loading is over.
func (s State) View() View {
	switch {
	case s.Loading:
		return ViewLoading
	case s.Error != "":
		return ViewError
	case s.Result != nil:
		return ViewResult
	default:
		return ViewNone
	}
}

type Page struct {
	api Analyzer

	mu    sync.Mutex
	state State
}

func New(api Analyzer) *Page {
	return &Page{api: api}
}

// Search runs one analysis and waits for it. It returns false without touching
// the state when query is blank.
func (p *Page) Search(ctx context.Context, query string) bool {
	if !p.begin(query) {
		return false
	}
	p.complete(ctx, query)
	return true
}

// Submit starts an analysis and returns as soon as the page is in the loading state.
// The request outlives ctx's cancellation so a redirect does not abort it.
func (p *Page) Submit(ctx context.Context, query string) bool {
	if !p.begin(query) {
		return false
	}
	go p.complete(context.WithoutCancel(ctx), query)
	return true
}

// Snapshot returns the current state.
func (p *Page) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Page) begin(query string) bool {
	if strings.TrimSpace(query) == "" {
		return false
	}
	p.mu.Lock()
	p.state = State{Query: query, Loading: true}
	p.mu.Unlock()
	return true
}

func (p *Page) complete(ctx context.Context, query string) {
	result, err := p.api.Analyze(ctx, query)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Loading = false
	if err != nil {
		p.state.Result = nil
		p.state.Error = client.Message(err)
		return
	}
	p.state.Result = result
	p.state.Error = ""
}
