// Package repo はカレントディレクトリのgitリポジトリとGitHubリモートを判定する
package repo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/douhashi/issuepipe/internal/tracker"
)

var (
	// ErrNotGitRepository はgitリポジトリの外で実行されたことを表す
	ErrNotGitRepository = errors.New("not inside a git repository")
	// ErrNoRemoteFound はoriginリモートが設定されていないことを表す
	ErrNoRemoteFound = errors.New("no origin remote configured")
)

// Info はローカルリポジトリの情報
type Info struct {
	Root      string
	RemoteURL string
}

// Detector は指定ディレクトリからgitリポジトリを探す
type Detector struct {
	dir string
}

// NewDetector は新しいDetectorを作成する
func NewDetector(dir string) *Detector {
	return &Detector{dir: dir}
}

// Detect は親ディレクトリを遡ってリポジトリを開く
func (d *Detector) Detect(ctx context.Context) (*Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := git.PlainOpenWithOptions(d.dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotGitRepository, d.dir)
		}
		return nil, fmt.Errorf("open git repository: %w", err)
	}

	info := &Info{}
	if wt, err := r.Worktree(); err == nil {
		info.Root = wt.Filesystem.Root()
	}

	remote, err := r.Remote("origin")
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return info, nil
		}
		return nil, fmt.Errorf("read origin remote: %w", err)
	}
	if urls := remote.Config().URLs; len(urls) > 0 {
		info.RemoteURL = urls[0]
	}

	return info, nil
}

// CheckRepository はgitリポジトリ内で実行されているかを確認する
func (d *Detector) CheckRepository(ctx context.Context) error {
	_, err := d.Detect(ctx)
	return err
}

// GitHubRepository はoriginリモートからGitHubリポジトリを判定する
func (d *Detector) GitHubRepository(ctx context.Context) (tracker.Repository, error) {
	info, err := d.Detect(ctx)
	if err != nil {
		return tracker.Repository{}, err
	}
	if info.RemoteURL == "" {
		return tracker.Repository{}, ErrNoRemoteFound
	}
	return ParseGitHubURL(info.RemoteURL)
}

var (
	httpsPattern = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)
	sshPattern   = regexp.MustCompile(`^(?:ssh://)?git@github\.com[:/]([^/]+)/([^/]+?)(?:\.git)?$`)
)

// ParseGitHubURL はGitHubのURLからowner/repo情報を抽出する
// 以下の形式に対応:
// - https://github.com/owner/repo(.git)
// - git@github.com:owner/repo(.git)
// - ssh://git@github.com/owner/repo(.git)
func ParseGitHubURL(url string) (tracker.Repository, error) {
	for _, pattern := range []*regexp.Regexp{httpsPattern, sshPattern} {
		if m := pattern.FindStringSubmatch(url); len(m) == 3 {
			return tracker.Repository{
				Owner: m[1],
				Name:  strings.TrimSuffix(m[2], ".git"),
			}, nil
		}
	}
	return tracker.Repository{}, fmt.Errorf("%w: invalid GitHub URL format: %s", tracker.ErrNoRepository, url)
}
