package gh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/douhashi/issuepipe/internal/logger"
	"github.com/douhashi/issuepipe/internal/tracker"
)

// Client はghコマンドを使用してGitHub操作を行うクライアント
type Client struct {
	executor CommandExecutor
	repo     string
	logger   logger.Logger
}

// Option はClientの設定オプション
type Option func(*Client)

// WithRepository は操作対象のリポジトリ（owner/name）を固定する
// 指定しない場合はghがカレントディレクトリのgitリモートから判断する
func WithRepository(repo string) Option {
	return func(c *Client) {
		c.repo = repo
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

// NewClient は新しいClientを作成する
func NewClient(executor CommandExecutor, opts ...Option) (*Client, error) {
	if executor == nil {
		return nil, errors.New("executor is required")
	}
	c := &Client{
		executor: executor,
		logger:   logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ValidatePrerequisites はghがインストール済みかつ認証済みであることを確認する
// gh --version が起動できなければ未インストール、gh auth status が終了コード1なら未認証とみなす
func (c *Client) ValidatePrerequisites(ctx context.Context) error {
	if _, err := c.executor.Execute(ctx, "gh", "--version"); err != nil {
		var execErr *ExecError
		if errors.As(err, &execErr) {
			return fmt.Errorf("%w: %w", tracker.ErrNotInstalled, err)
		}
		return fmt.Errorf("failed to check gh installation: %w", err)
	}

	if _, err := c.executor.Execute(ctx, "gh", "auth", "status"); err != nil {
		var execErr *ExecError
		if errors.As(err, &execErr) && execErr.ExitCode == 1 {
			return fmt.Errorf("%w: %w", tracker.ErrNotAuthenticated, err)
		}
		return fmt.Errorf("failed to check gh authentication: %w", err)
	}

	c.logger.Debug("gh is installed and authenticated")
	return nil
}

// CheckAuth はtracker.Trackerとしての認証確認
func (c *Client) CheckAuth(ctx context.Context) error {
	return c.ValidatePrerequisites(ctx)
}

// RepoIdentity はgh repo viewでリポジトリ情報を取得する
func (c *Client) RepoIdentity(ctx context.Context) (tracker.Repository, error) {
	args := []string{"repo", "view"}
	if c.repo != "" {
		args = append(args, c.repo)
	}
	args = append(args, "--json", "name,owner")

	output, err := c.run(ctx, args...)
	if err != nil {
		return tracker.Repository{}, fmt.Errorf("failed to get repository: %w", err)
	}

	var ghRepo ghRepository
	if err := json.Unmarshal([]byte(output), &ghRepo); err != nil {
		return tracker.Repository{}, fmt.Errorf("failed to parse repository data: %w", err)
	}
	if ghRepo.Owner.Login == "" || ghRepo.Name == "" {
		return tracker.Repository{}, fmt.Errorf("%w: incomplete repository data", tracker.ErrNoRepository)
	}

	return tracker.Repository{Owner: ghRepo.Owner.Login, Name: ghRepo.Name}, nil
}

// ListOpenIssues はオープンなIssueを最大limit件取得する
func (c *Client) ListOpenIssues(ctx context.Context, limit int) ([]tracker.Issue, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive: %d", limit)
	}

	args := []string{"issue", "list",
		"--state", "open",
		"--limit", strconv.Itoa(limit),
		"--json", tracker.IssueFields,
	}
	args = append(args, c.repoArgs()...)

	output, err := c.run(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	// 保存時にghの出力をそのまま残すため、要素ごとに元のJSONを保持する
	var records []json.RawMessage
	if err := json.Unmarshal([]byte(output), &records); err != nil {
		return nil, fmt.Errorf("failed to parse issue list: %w", err)
	}

	issues := make([]tracker.Issue, 0, len(records))
	for i, record := range records {
		var issue tracker.Issue
		if err := json.Unmarshal(record, &issue); err != nil {
			return nil, fmt.Errorf("failed to parse issue at index %d: %w", i, err)
		}
		issue.Raw = record
		issues = append(issues, issue)
	}

	return issues, nil
}

// CloseIssue はgh issue closeでIssueをクローズする
func (c *Client) CloseIssue(ctx context.Context, number int, reason tracker.CloseReason) error {
	if number <= 0 {
		return fmt.Errorf("invalid issue number: %d", number)
	}
	if !reason.Valid() {
		return fmt.Errorf("invalid close reason: %q", reason)
	}

	args := []string{"issue", "close", strconv.Itoa(number), "--reason", string(reason)}
	args = append(args, c.repoArgs()...)

	if _, err := c.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to close issue #%d: %w", number, err)
	}
	return nil
}

func (c *Client) repoArgs() []string {
	if c.repo == "" {
		return nil
	}
	return []string{"--repo", c.repo}
}

// run はghコマンドを実行し、失敗した場合は原因を分類したエラーを返す
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	c.logger.Debug("Executing gh command", "args", args)
	output, err := c.executor.Execute(ctx, "gh", args...)
	if err != nil {
		c.logger.Debug("gh command failed", "args", args, "error", err.Error())
		return "", classifyError(err)
	}
	return output, nil
}

// GitHub CLIでtracker.Trackerを実装していることをコンパイル時に確認
var _ tracker.Tracker = (*Client)(nil)
