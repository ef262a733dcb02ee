// Package tracker はIssueトラッカーとのやり取りを抽象化する
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// CloseReason はIssueをクローズする際の理由
type CloseReason string

const (
	// ReasonCompleted は対応済みとしてクローズする
	ReasonCompleted CloseReason = "completed"
	// ReasonNotPlanned は対応しないものとしてクローズする
	ReasonNotPlanned CloseReason = "not planned"
)

// Valid は既知のクローズ理由かどうかを返す
func (r CloseReason) Valid() bool {
	return r == ReasonCompleted || r == ReasonNotPlanned
}

var (
	// ErrNotInstalled はトラッカーCLIが見つからないことを表す
	ErrNotInstalled = errors.New("GitHub CLI (gh) is not installed")
	// ErrNotAuthenticated はトラッカーへの認証が済んでいないことを表す
	ErrNotAuthenticated = errors.New("GitHub CLI is not authenticated")
	// ErrNoRepository は対象のリポジトリを特定できないことを表す
	ErrNoRepository = errors.New("not in a GitHub repository or repository not found")
)

// Repository はトラッカー上のリポジトリの識別情報
type Repository struct {
	Owner string
	Name  string
}

// NameWithOwner は owner/name 形式の文字列を返す
func (r Repository) NameWithOwner() string {
	return r.Owner + "/" + r.Name
}

func (r Repository) String() string {
	return r.NameWithOwner()
}

// ParseRepository は owner/name 形式の文字列を解析する
func ParseRepository(s string) (Repository, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repository{}, fmt.Errorf("invalid repository %q: expected owner/name", s)
	}
	return Repository{Owner: owner, Name: name}, nil
}

// Tracker はパイプラインが必要とするトラッカーの操作
type Tracker interface {
	// RepoIdentity は操作対象のリポジトリを返す
	RepoIdentity(ctx context.Context) (Repository, error)
	// ListOpenIssues はオープンなIssueを最大limit件返す
	ListOpenIssues(ctx context.Context, limit int) ([]Issue, error)
	// CloseIssue は指定された理由でIssueをクローズする
	CloseIssue(ctx context.Context, number int, reason CloseReason) error
	// CheckAuth は認証済みのセッションがあるかを確認する
	CheckAuth(ctx context.Context) error
}

// Hint はエラーの種類に応じた対処方法を返す。該当しない場合は空文字列
func Hint(err error) string {
	switch {
	case errors.Is(err, ErrNotInstalled):
		return "Please install it from: https://cli.github.com/"
	case errors.Is(err, ErrNotAuthenticated):
		return "Please run: gh auth login"
	case errors.Is(err, ErrNoRepository):
		return "Run this command inside a clone of a GitHub repository, or set github.repo in the config"
	default:
		return ""
	}
}
