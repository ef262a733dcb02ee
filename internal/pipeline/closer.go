package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/douhashi/issuepipe/internal/paths"
	"github.com/douhashi/issuepipe/internal/tracker"
)

// RepositoryChecker は作業ディレクトリがgitリポジトリ内かを確認する
type RepositoryChecker interface {
	CheckRepository(ctx context.Context) error
}

// BucketResult は分類ディレクトリ1つ分の処理結果
type BucketResult struct {
	Bucket  Bucket
	Dir     string
	Missing bool
	Files   int
	Closed  []int
	Failed  []int
	Skipped []string
}

// CloseResult はCloserの実行結果
type CloseResult struct {
	Repository tracker.Repository
	DryRun     bool
	Accepted   BucketResult
	Blocked    BucketResult
}

// TotalFailed はクローズに失敗した件数の合計を返す
func (r *CloseResult) TotalFailed() int {
	return len(r.Accepted.Failed) + len(r.Blocked.Failed)
}

// Closer は分類済みのIssueを分類に応じた理由でクローズする
type Closer struct {
	fs      afero.Fs
	tracker tracker.Tracker
	checker RepositoryChecker
	layout  paths.Layout
	opts    options
}

// NewCloser は新しいCloserを作成する
func NewCloser(fs afero.Fs, t tracker.Tracker, checker RepositoryChecker, layout paths.Layout, opts ...Option) (*Closer, error) {
	if fs == nil {
		return nil, errors.New("filesystem is required")
	}
	if t == nil {
		return nil, errors.New("tracker is required")
	}
	if checker == nil {
		return nil, errors.New("repository checker is required")
	}
	return &Closer{fs: fs, tracker: t, checker: checker, layout: layout, opts: applyOptions(opts)}, nil
}

// Run は前提条件を確認した後、accepted と blocked のIssueを順にクローズする
// 1件ごとの失敗は記録して処理を続ける
func (c *Closer) Run(ctx context.Context) (*CloseResult, error) {
	log := c.opts.logger
	result := &CloseResult{DryRun: c.opts.dryRun}

	if err := c.checker.CheckRepository(ctx); err != nil {
		return result, fmt.Errorf("%w: %w", tracker.ErrNoRepository, err)
	}
	if err := c.tracker.CheckAuth(ctx); err != nil {
		return result, err
	}
	repo, err := c.tracker.RepoIdentity(ctx)
	if err != nil {
		return result, err
	}
	result.Repository = repo
	log.Info("Repository resolved", "repository", repo.NameWithOwner())

	if result.Accepted, err = c.closeBucket(ctx, BucketAccepted); err != nil {
		return result, err
	}
	if result.Blocked, err = c.closeBucket(ctx, BucketBlocked); err != nil {
		return result, err
	}

	return result, nil
}

func (c *Closer) closeBucket(ctx context.Context, bucket Bucket) (BucketResult, error) {
	dir := bucket.Dir(c.layout)
	reason := bucket.CloseReason()
	log := c.opts.logger.WithFields("bucket", string(bucket))
	res := BucketResult{Bucket: bucket, Dir: dir}

	files, exists, err := listJSONFiles(c.fs, dir)
	if err != nil {
		return res, err
	}
	if !exists {
		res.Missing = true
		log.Info("Folder not found, skipping", "dir", dir)
		return res, nil
	}
	if len(files) == 0 {
		log.Info("Folder is empty", "dir", dir)
		return res, nil
	}

	res.Files = len(files)
	log.Info("Processing folder", "dir", dir, "issues", len(files))

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		number, ok := paths.ParseIssueFileName(name)
		if !ok {
			log.Warn("Skipping file: cannot determine issue number", "file", name)
			res.Skipped = append(res.Skipped, name)
			continue
		}

		if c.opts.dryRun {
			log.Info("Would close issue", "number", number, "reason", string(reason))
			res.Closed = append(res.Closed, number)
			continue
		}

		log.Info("Closing issue", "number", number, "reason", string(reason))
		if err := c.tracker.CloseIssue(ctx, number, reason); err != nil {
			log.Error("Failed to close issue", "number", number, "error", err.Error())
			res.Failed = append(res.Failed, number)
			continue
		}
		log.Info("Issue closed", "number", number)
		res.Closed = append(res.Closed, number)
	}

	return res, nil
}
