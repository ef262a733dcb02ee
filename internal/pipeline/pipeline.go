// Package pipeline はIssueの取得・分類・クローズ・アーカイブの各段階を実装する
//
// 各段階はファイルシステム上のディレクトリを介して状態を受け渡す。
// issues/ に取得されたIssueは accepted/ または blocked/ に移動され、
// Closerがリモートのクローズを、Archiverがアピール文書への変換と
// ステージングディレクトリの削除を行う。
package pipeline

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/douhashi/issuepipe/internal/appeal"
	"github.com/douhashi/issuepipe/internal/config"
	"github.com/douhashi/issuepipe/internal/logger"
	"github.com/douhashi/issuepipe/internal/paths"
	"github.com/douhashi/issuepipe/internal/tracker"
)

// Bucket は分類ディレクトリの種類
type Bucket string

const (
	// BucketAccepted は受理されたIssue
	BucketAccepted Bucket = "accepted"
	// BucketBlocked は却下されたIssue
	BucketBlocked Bucket = "blocked"
)

// Buckets はCloserが処理する順序で分類を返す
func Buckets() []Bucket {
	return []Bucket{BucketAccepted, BucketBlocked}
}

// ParseBucket は文字列から分類を取得する
func ParseBucket(s string) (Bucket, error) {
	switch Bucket(strings.ToLower(s)) {
	case BucketAccepted:
		return BucketAccepted, nil
	case BucketBlocked:
		return BucketBlocked, nil
	default:
		return "", fmt.Errorf("unknown bucket: %q", s)
	}
}

// CloseReason は分類に対応するクローズ理由を返す
func (b Bucket) CloseReason() tracker.CloseReason {
	if b == BucketBlocked {
		return tracker.ReasonNotPlanned
	}
	return tracker.ReasonCompleted
}

// Dir は分類に対応するディレクトリを返す
func (b Bucket) Dir(l paths.Layout) string {
	if b == BucketBlocked {
		return l.BlockedDir
	}
	return l.AcceptedDir
}

type options struct {
	logger   logger.Logger
	limit    int
	untitled string
	dryRun   bool
}

func defaultOptions() options {
	return options{
		logger:   logger.NewNop(),
		limit:    config.DefaultLimit,
		untitled: appeal.DefaultUntitled,
	}
}

// Option は各段階の設定オプション
type Option func(*options)

// WithLogger はロガーを設定する
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLimit は取得するIssueの上限を設定する
func WithLimit(limit int) Option {
	return func(o *options) {
		o.limit = limit
	}
}

// WithUntitled はタイトルが無いIssueのプレースホルダを設定する
func WithUntitled(untitled string) Option {
	return func(o *options) {
		if untitled != "" {
			o.untitled = untitled
		}
	}
}

// WithDryRun はリモートへの変更を行わずに処理内容だけをログに出す
func WithDryRun(dryRun bool) Option {
	return func(o *options) {
		o.dryRun = dryRun
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// listJSONFiles はディレクトリ内の .json ファイル名を名前順に返す
// ディレクトリが存在しない場合は exists=false を返す
func listJSONFiles(fs afero.Fs, dir string) (names []string, exists bool, err error) {
	exists, err = afero.DirExists(fs, dir)
	if err != nil || !exists {
		return nil, exists, err
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, true, nil
}

const (
	dirPerm  os.FileMode = 0755
	filePerm os.FileMode = 0644
)
