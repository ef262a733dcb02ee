// Package builders provides test data builders for tracker fixtures.
package builders

import (
	"time"

	"github.com/douhashi/issuepipe/internal/tracker"
)

// IssueBuilder builds tracker.Issue instances for testing
type IssueBuilder struct {
	issue tracker.Issue
}

// NewIssueBuilder creates a new IssueBuilder with sensible defaults
// Timestamps are fixed so that encoded output is stable across runs
func NewIssueBuilder() *IssueBuilder {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return &IssueBuilder{
		issue: tracker.Issue{
			Number:    1,
			Title:     "Default Issue",
			State:     "OPEN",
			CreatedAt: created,
			UpdatedAt: created,
			Author:    tracker.Actor{Login: "octocat"},
			Assignees: []tracker.Actor{},
			Labels:    []tracker.Label{},
			Comments:  []tracker.Comment{},
		},
	}
}

// WithNumber sets the issue number
func (b *IssueBuilder) WithNumber(number int) *IssueBuilder {
	b.issue.Number = number
	return b
}

// WithTitle sets the issue title
func (b *IssueBuilder) WithTitle(title string) *IssueBuilder {
	b.issue.Title = title
	return b
}

// WithBody sets the issue body
func (b *IssueBuilder) WithBody(body string) *IssueBuilder {
	b.issue.Body = body
	return b
}

// WithAuthor sets the issue author
func (b *IssueBuilder) WithAuthor(login string) *IssueBuilder {
	b.issue.Author = tracker.Actor{Login: login}
	return b
}

// WithLabels sets the issue labels
func (b *IssueBuilder) WithLabels(labels []string) *IssueBuilder {
	b.issue.Labels = make([]tracker.Label, len(labels))
	for i, label := range labels {
		b.issue.Labels[i] = tracker.Label{Name: label}
	}
	return b
}

// WithComment adds a comment to the issue
func (b *IssueBuilder) WithComment(author, body string) *IssueBuilder {
	b.issue.Comments = append(b.issue.Comments, tracker.Comment{
		Author:    tracker.Actor{Login: author},
		Body:      body,
		CreatedAt: b.issue.CreatedAt,
	})
	return b
}

// Build returns a copy of the built issue
func (b *IssueBuilder) Build() tracker.Issue {
	issue := b.issue
	issue.Labels = append([]tracker.Label{}, b.issue.Labels...)
	issue.Comments = append([]tracker.Comment{}, b.issue.Comments...)
	issue.Assignees = append([]tracker.Actor{}, b.issue.Assignees...)
	return issue
}
