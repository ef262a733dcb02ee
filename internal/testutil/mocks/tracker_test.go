package mocks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/douhashi/issuepipe/internal/tracker"
)

func TestMockTracker(t *testing.T) {
	ctx := context.Background()
	repo := tracker.Repository{Owner: "douhashi", Name: "issuepipe"}

	t.Run("WithReadyRepository", func(t *testing.T) {
		m := NewMockTracker().WithReadyRepository(repo)

		assert.NoError(t, m.CheckAuth(ctx))
		got, err := m.RepoIdentity(ctx)
		require.NoError(t, err)
		assert.Equal(t, repo, got)
	})

	t.Run("ListOpenIssues with nil result", func(t *testing.T) {
		m := NewMockTracker()
		m.On("ListOpenIssues", mock.Anything, 10).Return(nil, errors.New("failed"))

		issues, err := m.ListOpenIssues(ctx, 10)
		assert.Nil(t, issues)
		assert.EqualError(t, err, "failed")
	})

	t.Run("CloseIssue", func(t *testing.T) {
		m := NewMockTracker()
		m.On("CloseIssue", mock.Anything, 5, tracker.ReasonNotPlanned).Return(nil)

		assert.NoError(t, m.CloseIssue(ctx, 5, tracker.ReasonNotPlanned))
		m.AssertExpectations(t)
	})
}

func TestMockRepositoryChecker(t *testing.T) {
	assert.NoError(t, NewMockRepositoryChecker(nil).CheckRepository(context.Background()))
	assert.EqualError(t, NewMockRepositoryChecker(errors.New("no git")).CheckRepository(context.Background()), "no git")
}
