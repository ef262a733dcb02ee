package paths

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
)

// Layout はパイプラインが使用するディレクトリ構成
// 作業ディレクトリに依存せず、明示的に渡されたパスのみを扱う
type Layout struct {
	IssuesDir   string
	AcceptedDir string
	BlockedDir  string
	AppealsDir  string
}

// NewLayout は baseDir を基準にした相対パスを解決してLayoutを作成する
// 絶対パスが指定された場合はそのまま使用する
func NewLayout(baseDir, issues, accepted, blocked, appeals string) Layout {
	resolve := func(p string) string {
		if filepath.IsAbs(p) || baseDir == "" {
			return filepath.Clean(p)
		}
		return filepath.Join(baseDir, p)
	}

	return Layout{
		IssuesDir:   resolve(issues),
		AcceptedDir: resolve(accepted),
		BlockedDir:  resolve(blocked),
		AppealsDir:  resolve(appeals),
	}
}

// StagingDirs はサイクルごとに削除されるステージングディレクトリを返す
func (l Layout) StagingDirs() []string {
	return []string{l.AcceptedDir, l.BlockedDir, l.IssuesDir}
}

// IssueFile は issues ディレクトリ内のIssueファイルのパスを返す
func (l Layout) IssueFile(number int) string {
	return filepath.Join(l.IssuesDir, IssueFileName(number))
}

// AppealFile はアピール文書のパスを返す
func (l Layout) AppealFile(number int) string {
	return filepath.Join(l.AppealsDir, AppealFileName(number))
}

// Validate はディレクトリ同士が重複していないことを確認する
func (l Layout) Validate() error {
	seen := make(map[string]string)
	named := []struct{ name, dir string }{
		{"issues", l.IssuesDir},
		{"accepted", l.AcceptedDir},
		{"blocked", l.BlockedDir},
		{"appeals", l.AppealsDir},
	}
	for _, n := range named {
		if n.dir == "" || n.dir == "." {
			return fmt.Errorf("%s directory must not be empty", n.name)
		}
		if other, ok := seen[n.dir]; ok {
			return fmt.Errorf("%s and %s directories must differ: %s", other, n.name, n.dir)
		}
		seen[n.dir] = n.name
	}
	return nil
}

var issueFilePattern = regexp.MustCompile(`^issue-(\d+)\.json$`)

// IssueFileName はIssue番号からファイル名を作成する
func IssueFileName(number int) string {
	return fmt.Sprintf("issue-%d.json", number)
}

// ParseIssueFileName はファイル名からIssue番号を取り出す
// issue-<数字>.json 以外の名前、0、intに収まらない番号では ok=false を返す
func ParseIssueFileName(name string) (number int, ok bool) {
	m := issueFilePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// AppealFileName はIssue番号からアピール文書のファイル名を作成する
func AppealFileName(number int) string {
	return fmt.Sprintf("appeal-%d.md", number)
}
