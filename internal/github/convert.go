package github

import (
	"strings"
	"time"

	"github.com/google/go-github/v67/github"

	"github.com/douhashi/issuepipe/internal/tracker"
)

// convertIssue はAPIのIssueをgh issue listと同じ形のレコードに変換する
func convertIssue(issue *github.Issue) tracker.Issue {
	converted := tracker.Issue{
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		Body:      issue.GetBody(),
		State:     strings.ToUpper(issue.GetState()),
		CreatedAt: issue.GetCreatedAt().Time,
		UpdatedAt: issue.GetUpdatedAt().Time,
		ClosedAt:  timePtr(issue.ClosedAt),
		Author:    convertUser(issue.GetUser()),
		Assignees: make([]tracker.Actor, 0, len(issue.Assignees)),
		Labels:    make([]tracker.Label, 0, len(issue.Labels)),
		Comments:  []tracker.Comment{},
	}

	for _, assignee := range issue.Assignees {
		converted.Assignees = append(converted.Assignees, convertUser(assignee))
	}
	for _, label := range issue.Labels {
		converted.Labels = append(converted.Labels, tracker.Label{
			ID:          label.GetNodeID(),
			Name:        label.GetName(),
			Description: label.GetDescription(),
			Color:       label.GetColor(),
		})
	}
	if m := issue.Milestone; m != nil {
		converted.Milestone = &tracker.Milestone{
			Number:      m.GetNumber(),
			Title:       m.GetTitle(),
			Description: m.GetDescription(),
			DueOn:       timePtr(m.DueOn),
		}
	}

	return converted
}

func convertComment(comment *github.IssueComment) tracker.Comment {
	return tracker.Comment{
		ID:                comment.GetNodeID(),
		Author:            convertUser(comment.GetUser()),
		AuthorAssociation: comment.GetAuthorAssociation(),
		Body:              comment.GetBody(),
		CreatedAt:         comment.GetCreatedAt().Time,
		URL:               comment.GetHTMLURL(),
	}
}

func convertUser(user *github.User) tracker.Actor {
	return tracker.Actor{
		ID:    user.GetNodeID(),
		Login: user.GetLogin(),
		Name:  user.GetName(),
		IsBot: user.GetType() == "Bot",
	}
}

func timePtr(ts *github.Timestamp) *time.Time {
	if ts == nil {
		return nil
	}
	t := ts.Time
	return &t
}
