package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/book-classifier/internal/entity"
)

func TestHistoryRecentClampsLimit(t *testing.T) {
	testCases := []struct {
		name      string
		requested int
		used      int
	}{
		{"default when zero", 0, 10},
		{"default when negative", -3, 10},
		{"passes through", 25, 25},
		{"capped", 1000, 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			repo := &MockAnalysisRepo{}
			want := []*entity.AnalysisRecord{{ID: 1, Title: "Kancil"}}
			repo.On("Recent", ctx, tc.used).Return(want, nil)

			got, err := NewHistory(repo).Recent(ctx, tc.requested)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			repo.AssertExpectations(t)
		})
	}
}
