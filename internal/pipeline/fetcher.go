package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/douhashi/issuepipe/internal/paths"
	"github.com/douhashi/issuepipe/internal/tracker"
)

// FetchResult はFetcherの実行結果
type FetchResult struct {
	Repository tracker.Repository
	Dir        string
	Saved      []string
}

// Fetcher はオープンなIssueを1件ずつJSONファイルに保存する
type Fetcher struct {
	fs      afero.Fs
	tracker tracker.Tracker
	layout  paths.Layout
	opts    options
}

// NewFetcher は新しいFetcherを作成する
func NewFetcher(fs afero.Fs, t tracker.Tracker, layout paths.Layout, opts ...Option) (*Fetcher, error) {
	if fs == nil {
		return nil, errors.New("filesystem is required")
	}
	if t == nil {
		return nil, errors.New("tracker is required")
	}
	o := applyOptions(opts)
	if o.limit <= 0 {
		return nil, fmt.Errorf("limit must be positive: %d", o.limit)
	}
	return &Fetcher{fs: fs, tracker: t, layout: layout, opts: o}, nil
}

// Run はIssueを取得して issues ディレクトリに保存する
// 同名のファイルは上書きされる
func (f *Fetcher) Run(ctx context.Context) (*FetchResult, error) {
	log := f.opts.logger
	dir := f.layout.IssuesDir
	result := &FetchResult{Dir: dir}

	exists, err := afero.DirExists(f.fs, dir)
	if err != nil {
		return result, fmt.Errorf("failed to check issues directory: %w", err)
	}
	if !exists {
		if err := f.fs.MkdirAll(dir, dirPerm); err != nil {
			return result, fmt.Errorf("failed to create issues directory: %w", err)
		}
		log.Info("Created issues directory", "dir", dir)
	}

	log.Info("Fetching repository information")
	repo, err := f.tracker.RepoIdentity(ctx)
	if err != nil {
		return result, err
	}
	result.Repository = repo
	log.Info("Repository resolved", "repository", repo.NameWithOwner())

	log.Info("Fetching open issues", "limit", f.opts.limit)
	issues, err := f.tracker.ListOpenIssues(ctx, f.opts.limit)
	if err != nil {
		return result, err
	}

	if len(issues) == 0 {
		log.Info("No open issues found")
		return result, nil
	}
	log.Info("Found open issues", "count", len(issues))

	for _, issue := range issues {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if issue.Number <= 0 {
			return result, fmt.Errorf("issue without a valid number: %q", issue.Title)
		}

		data, err := encodeIssue(issue)
		if err != nil {
			return result, fmt.Errorf("failed to encode issue #%d: %w", issue.Number, err)
		}

		name := paths.IssueFileName(issue.Number)
		if err := afero.WriteFile(f.fs, filepath.Join(dir, name), data, filePerm); err != nil {
			return result, fmt.Errorf("failed to write %s: %w", name, err)
		}
		result.Saved = append(result.Saved, name)
		log.Debug("Saved issue", "file", name)
	}

	log.Info("Saved issues", "count", len(result.Saved), "dir", dir)
	return result, nil
}

// encodeIssue はIssueを2スペースでインデントしたJSONにする
// バックエンドの元のJSONがあればフィールドを落とさずそれを整形し、無ければ構造体から生成する
// どちらの場合も < や & はエスケープせず、末尾に改行を付けない
func encodeIssue(issue tracker.Issue) ([]byte, error) {
	var buf bytes.Buffer
	if len(issue.Raw) > 0 {
		if err := json.Indent(&buf, bytes.TrimSpace(issue.Raw), "", "  "); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(issue); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
