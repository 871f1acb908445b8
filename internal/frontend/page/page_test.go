package page

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/user/book-classifier/internal/entity"
	"github.com/user/book-classifier/internal/frontend/client"
)

type MockAnalyzer struct{ mock.Mock }

func (m *MockAnalyzer) Analyze(ctx context.Context, title string) (*entity.BookResult, error) {
	args := m.Called(ctx, title)
	result, _ := args.Get(0).(*entity.BookResult)
	return result, args.Error(1)
}

// gatedAnalyzer blocks until release is closed.
type gatedAnalyzer struct {
	release chan struct{}
	result  *entity.BookResult
}

func (g *gatedAnalyzer) Analyze(ctx context.Context, title string) (*entity.BookResult, error) {
	<-g.release
	return g.result, nil
}

func TestViewBeforeFirstSearch(t *testing.T) {
	p := New(new(MockAnalyzer))
	assert.Equal(t, ViewNone, p.Snapshot().View())
}

func TestSearchBlankQuery(t *testing.T) {
	api := new(MockAnalyzer)
	p := New(api)

	for _, q := range []string{"", "   ", "\t\n"} {
		assert.False(t, p.Search(context.Background(), q))
		assert.False(t, p.Submit(context.Background(), q))
	}

	assert.Equal(t, State{}, p.Snapshot())
	api.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestSearchSuccessReplacesResultAndClearsError(t *testing.T) {
	first := &entity.BookResult{Title: "Si Kancil"}
	api := new(MockAnalyzer)
	api.On("Analyze", mock.Anything, "hilang").Return(nil, &client.APIError{Status: 404, Detail: "Buku tidak ditemukan"}).Once()
	api.On("Analyze", mock.Anything, "si kancil").Return(first, nil).Once()
	p := New(api)

	require.True(t, p.Search(context.Background(), "hilang"))
	st := p.Snapshot()
	assert.Equal(t, ViewError, st.View())
	assert.Equal(t, "Buku tidak ditemukan", st.Error)

	require.True(t, p.Search(context.Background(), "si kancil"))
	st = p.Snapshot()
	assert.Equal(t, ViewResult, st.View())
	assert.Same(t, first, st.Result)
	assert.Empty(t, st.Error)
	assert.False(t, st.Loading)
	assert.Equal(t, "si kancil", st.Query)
	api.AssertExpectations(t)
}

func TestSearchFailureClearsResult(t *testing.T) {
	api := new(MockAnalyzer)
	api.On("Analyze", mock.Anything, "ok").Return(&entity.BookResult{Title: "ok"}, nil).Once()
	api.On("Analyze", mock.Anything, "down").Return(nil, errors.New("connection refused")).Once()
	p := New(api)

	p.Search(context.Background(), "ok")
	p.Search(context.Background(), "down")

	st := p.Snapshot()
	assert.Nil(t, st.Result)
	assert.False(t, st.Loading)
	assert.Equal(t, client.FallbackMessage, st.Error)
	assert.Equal(t, ViewError, st.View())
}

func TestSubmitShowsLoadingUntilDone(t *testing.T) {
	api := &gatedAnalyzer{release: make(chan struct{}), result: &entity.BookResult{Title: "Bumi"}}
	p := New(api)

	ctx, cancel := context.WithCancel(context.Background())
	require.True(t, p.Submit(ctx, "bumi"))
	cancel()

	st := p.Snapshot()
	assert.Equal(t, ViewLoading, st.View())
	assert.Nil(t, st.Result)
	assert.Empty(t, st.Error)

	close(api.release)
	require.Eventually(t, func() bool {
		return p.Snapshot().View() == ViewResult
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Bumi", p.Snapshot().Result.Title)
}

func TestViewExclusive(t *testing.T) {
	result := &entity.BookResult{}
	tests := []struct {
		state State
		want  View
	}{
		{State{}, ViewNone},
		{State{Loading: true}, ViewLoading},
		{State{Loading: true, Result: result}, ViewLoading},
		{State{Error: "x"}, ViewError},
		{State{Result: result}, ViewResult},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.View())
	}
}
