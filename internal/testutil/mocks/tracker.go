// Package mocks provides testify mocks for the interfaces used by the pipeline stages.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/douhashi/issuepipe/internal/tracker"
)

// MockTracker is a mock implementation of tracker.Tracker
type MockTracker struct {
	mock.Mock
}

// NewMockTracker creates a new instance of MockTracker
func NewMockTracker() *MockTracker {
	return &MockTracker{}
}

// WithReadyRepository sets up an authenticated session for the given repository
func (m *MockTracker) WithReadyRepository(repo tracker.Repository) *MockTracker {
	m.On("CheckAuth", mock.Anything).Return(nil)
	m.On("RepoIdentity", mock.Anything).Return(repo, nil)
	return m
}

// RepoIdentity mocks the RepoIdentity method
func (m *MockTracker) RepoIdentity(ctx context.Context) (tracker.Repository, error) {
	args := m.Called(ctx)
	return args.Get(0).(tracker.Repository), args.Error(1)
}

// ListOpenIssues mocks the ListOpenIssues method
func (m *MockTracker) ListOpenIssues(ctx context.Context, limit int) ([]tracker.Issue, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tracker.Issue), args.Error(1)
}

// CloseIssue mocks the CloseIssue method
func (m *MockTracker) CloseIssue(ctx context.Context, number int, reason tracker.CloseReason) error {
	args := m.Called(ctx, number, reason)
	return args.Error(0)
}

// CheckAuth mocks the CheckAuth method
func (m *MockTracker) CheckAuth(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Ensure MockTracker implements tracker.Tracker interface
var _ tracker.Tracker = (*MockTracker)(nil)

// MockRepositoryChecker is a mock for the git repository precondition check
type MockRepositoryChecker struct {
	mock.Mock
}

// NewMockRepositoryChecker creates a checker that reports the given result
func NewMockRepositoryChecker(err error) *MockRepositoryChecker {
	m := &MockRepositoryChecker{}
	m.On("CheckRepository", mock.Anything).Return(err)
	return m
}

// CheckRepository mocks the CheckRepository method
func (m *MockRepositoryChecker) CheckRepository(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
