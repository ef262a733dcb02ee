package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/douhashi/issuepipe/internal/appeal"
	"github.com/douhashi/issuepipe/internal/paths"
)

// ErrIssueNotFound は issues ディレクトリに該当するIssueファイルが無いことを示す
var ErrIssueNotFound = errors.New("issue file not found")

// PendingIssue は分類待ちのIssue
type PendingIssue struct {
	Number int
	Title  string
	File   string
}

// Sorter は issues ディレクトリのIssueを分類ディレクトリへ移動する
type Sorter struct {
	fs     afero.Fs
	layout paths.Layout
	opts   options
}

// NewSorter は新しいSorterを作成する
func NewSorter(fs afero.Fs, layout paths.Layout, opts ...Option) (*Sorter, error) {
	if fs == nil {
		return nil, errors.New("filesystem is required")
	}
	return &Sorter{fs: fs, layout: layout, opts: applyOptions(opts)}, nil
}

// Pending は分類待ちのIssueを番号順に返す
// 読み込めないファイルもタイトル無しで一覧に含める
func (s *Sorter) Pending() ([]PendingIssue, error) {
	files, _, err := listJSONFiles(s.fs, s.layout.IssuesDir)
	if err != nil {
		return nil, err
	}

	pending := make([]PendingIssue, 0, len(files))
	for _, name := range files {
		number, ok := paths.ParseIssueFileName(name)
		if !ok {
			continue
		}

		item := PendingIssue{Number: number, File: filepath.Join(s.layout.IssuesDir, name)}
		if title, err := s.readTitle(item.File); err != nil {
			s.opts.logger.Warn("Failed to read issue title", "file", name, "error", err.Error())
		} else {
			item.Title = title
		}
		pending = append(pending, item)
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].Number < pending[j].Number
	})
	return pending, nil
}

// Classify はIssueファイルを分類ディレクトリへ移動する
// 移動先に同名のファイルがある場合は置き換える
func (s *Sorter) Classify(number int, bucket Bucket) error {
	src := s.layout.IssueFile(number)
	exists, err := afero.Exists(s.fs, src)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", src, err)
	}
	if !exists {
		return fmt.Errorf("%w: #%d", ErrIssueNotFound, number)
	}

	dir := bucket.Dir(s.layout)
	if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", bucket, err)
	}

	dst := filepath.Join(dir, paths.IssueFileName(number))
	replace, err := afero.Exists(s.fs, dst)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", dst, err)
	}
	if replace {
		if err := s.fs.Remove(dst); err != nil {
			return fmt.Errorf("failed to replace %s: %w", dst, err)
		}
	}
	if err := s.fs.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to move issue #%d: %w", number, err)
	}

	s.opts.logger.Info("Classified issue", "number", number, "bucket", string(bucket))
	return nil
}

func (s *Sorter) readTitle(path string) (string, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return "", err
	}
	src, err := appeal.Decode(data)
	if err != nil {
		return "", err
	}
	return src.Title, nil
}
