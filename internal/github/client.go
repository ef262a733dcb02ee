// Package github はGitHub REST APIを使ったtracker.Trackerの実装
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v67/github"
	"golang.org/x/oauth2"

	"github.com/douhashi/issuepipe/internal/logger"
	"github.com/douhashi/issuepipe/internal/tracker"
)

// RepositoryResolver は設定が無い場合に操作対象のリポジトリを判定する
type RepositoryResolver interface {
	GitHubRepository(ctx context.Context) (tracker.Repository, error)
}

// Client はGitHub APIクライアントのラッパー
type Client struct {
	github   *github.Client
	repo     string
	resolver RepositoryResolver
	logger   logger.Logger
	baseURL  *url.URL
}

// Option はClientの設定オプション
type Option func(*Client)

// WithRepository は操作対象のリポジトリ（owner/name）を固定する
func WithRepository(repo string) Option {
	return func(c *Client) {
		c.repo = repo
	}
}

// WithResolver はリポジトリの判定方法を設定する
func WithResolver(r RepositoryResolver) Option {
	return func(c *Client) {
		c.resolver = r
	}
}

// WithLogger はロガーを設定する
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBaseURL はAPIのベースURLを差し替える（GitHub Enterprise やテスト用）
func WithBaseURL(u *url.URL) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// NewClient は新しいGitHub APIクライアントを作成する
func NewClient(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: GitHub token is required", tracker.ErrNotAuthenticated)
	}

	c := &Client{logger: logger.NewNop()}
	for _, opt := range opts {
		opt(c)
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: ts,
			Base:   &loggingRoundTripper{base: http.DefaultTransport, logger: c.logger},
		},
	}

	c.github = github.NewClient(httpClient)
	if c.baseURL != nil {
		base := *c.baseURL
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		c.github.BaseURL = &base
	}

	return c, nil
}

// CheckAuth はトークンで認証済みユーザーを取得できるか確認する
func (c *Client) CheckAuth(ctx context.Context) error {
	user, _, err := c.github.Users.Get(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to get authenticated user: %w", classifyError(err))
	}
	c.logger.Debug("Authenticated to GitHub API", "login", user.GetLogin())
	return nil
}

// RepoIdentity は対象リポジトリを判定し、APIで存在を確認する
func (c *Client) RepoIdentity(ctx context.Context) (tracker.Repository, error) {
	target, err := c.target(ctx)
	if err != nil {
		return tracker.Repository{}, err
	}

	repository, _, err := c.github.Repositories.Get(ctx, target.Owner, target.Name)
	if err != nil {
		return tracker.Repository{}, fmt.Errorf("failed to get repository: %w", classifyRepoError(err))
	}

	return tracker.Repository{
		Owner: repository.GetOwner().GetLogin(),
		Name:  repository.GetName(),
	}, nil
}

// ListOpenIssues はオープンなIssueを最大limit件取得する
// プルリクエストは除外し、コメントがあるIssueはコメントも取得する
func (c *Client) ListOpenIssues(ctx context.Context, limit int) ([]tracker.Issue, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive: %d", limit)
	}
	target, err := c.target(ctx)
	if err != nil {
		return nil, err
	}

	opts := &github.IssueListByRepoOptions{
		State: "open",
		ListOptions: github.ListOptions{
			PerPage: min(limit, 100),
		},
	}

	issues := make([]tracker.Issue, 0)
	for len(issues) < limit {
		page, resp, err := c.github.Issues.ListByRepo(ctx, target.Owner, target.Name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues: %w", classifyError(err))
		}

		for _, issue := range page {
			if issue.IsPullRequest() {
				continue
			}
			converted := convertIssue(issue)
			if issue.GetComments() > 0 {
				comments, err := c.listComments(ctx, target, issue.GetNumber())
				if err != nil {
					return nil, err
				}
				converted.Comments = comments
			}
			issues = append(issues, converted)
			if len(issues) == limit {
				break
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return issues, nil
}

// CloseIssue はstate_reason付きでIssueをクローズする
func (c *Client) CloseIssue(ctx context.Context, number int, reason tracker.CloseReason) error {
	if number <= 0 {
		return fmt.Errorf("invalid issue number: %d", number)
	}
	stateReason, err := apiStateReason(reason)
	if err != nil {
		return err
	}
	target, err := c.target(ctx)
	if err != nil {
		return err
	}

	req := &github.IssueRequest{
		State:       github.String("closed"),
		StateReason: github.String(stateReason),
	}
	if _, _, err := c.github.Issues.Edit(ctx, target.Owner, target.Name, number, req); err != nil {
		return fmt.Errorf("failed to close issue #%d: %w", number, classifyError(err))
	}
	return nil
}

func (c *Client) listComments(ctx context.Context, target tracker.Repository, number int) ([]tracker.Comment, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	comments := []tracker.Comment{}
	for {
		page, resp, err := c.github.Issues.ListComments(ctx, target.Owner, target.Name, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments of issue #%d: %w", number, classifyError(err))
		}
		for _, comment := range page {
			comments = append(comments, convertComment(comment))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return comments, nil
}

// target は設定値、なければresolverから対象リポジトリを返す
func (c *Client) target(ctx context.Context) (tracker.Repository, error) {
	if c.repo != "" {
		repo, err := tracker.ParseRepository(c.repo)
		if err != nil {
			return tracker.Repository{}, fmt.Errorf("%w: %w", tracker.ErrNoRepository, err)
		}
		return repo, nil
	}
	if c.resolver == nil {
		return tracker.Repository{}, fmt.Errorf("%w: repository is not configured", tracker.ErrNoRepository)
	}
	repo, err := c.resolver.GitHubRepository(ctx)
	if err != nil {
		return tracker.Repository{}, fmt.Errorf("%w: %w", tracker.ErrNoRepository, err)
	}
	return repo, nil
}

func apiStateReason(reason tracker.CloseReason) (string, error) {
	switch reason {
	case tracker.ReasonCompleted:
		return "completed", nil
	case tracker.ReasonNotPlanned:
		return "not_planned", nil
	default:
		return "", fmt.Errorf("invalid close reason: %q", reason)
	}
}

// classifyError はAPIのステータスコードをtrackerのエラーに対応付ける
// 404はIssueやコメントが無い場合にも返るため、ここでは対応付けない
func classifyError(err error) error {
	if statusCode(err) == http.StatusUnauthorized {
		return fmt.Errorf("%w: %w", tracker.ErrNotAuthenticated, err)
	}
	return err
}

// classifyRepoError はリポジトリ取得時のエラーを対応付ける
// このときの404はリポジトリが存在しないかアクセスできないことを意味する
func classifyRepoError(err error) error {
	if statusCode(err) == http.StatusNotFound {
		return fmt.Errorf("%w: %w", tracker.ErrNoRepository, err)
	}
	return classifyError(err)
}

func statusCode(err error) int {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return errResp.Response.StatusCode
	}
	return 0
}

// GitHub APIでtracker.Trackerを実装していることをコンパイル時に確認
var _ tracker.Tracker = (*Client)(nil)
