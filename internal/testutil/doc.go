// Package testutil provides common test utilities, mocks, and builders for testing issuepipe components.
//
// This package is organized into the following sub-packages:
//
//   - mocks: testify mocks for the tracker and repository checks
//   - builders: Test data builders for tracker.Issue fixtures
//   - helpers: Observable logger for asserting log output
//
// # Example
//
//	tr := mocks.NewMockTracker().WithReadyRepository(repo)
//	tr.On("CloseIssue", mock.Anything, 1, tracker.ReasonCompleted).Return(nil)
//
//	issue := builders.NewIssueBuilder().
//	    WithNumber(123).
//	    WithTitle("Bug").
//	    WithLabels([]string{"bug"}).
//	    Build()
package testutil
