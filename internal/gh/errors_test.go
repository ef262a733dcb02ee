package gh

import (
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"github.com/douhashi/issuepipe/internal/tracker"
	"github.com/stretchr/testify/assert"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{
			name:   "ghが見つからない",
			err:    &ExecError{Command: "gh", ExitCode: -1, Err: &exec.Error{Name: "gh", Err: exec.ErrNotFound}},
			target: tracker.ErrNotInstalled,
		},
		{
			name:   "シェル経由でcommand not found",
			err:    &ExecError{Command: "gh", ExitCode: 127, Stderr: "sh: gh: command not found"},
			target: tracker.ErrNotInstalled,
		},
		{
			name:   "リポジトリが見つからない",
			err:    &ExecError{Command: "gh", ExitCode: 1, Stderr: "GraphQL: Could not resolve to a Repository with the name 'a/b'."},
			target: tracker.ErrNoRepository,
		},
		{
			name:   "gitリポジトリ外",
			err:    &ExecError{Command: "gh", ExitCode: 1, Stderr: "failed to run git: fatal: not a git repository"},
			target: tracker.ErrNoRepository,
		},
		{
			name:   "未認証",
			err:    &ExecError{Command: "gh", ExitCode: 4, Stderr: "To get started with GitHub CLI, please run:  gh auth login"},
			target: tracker.ErrNotAuthenticated,
		},
		{
			name:   "認証エラー",
			err:    &ExecError{Command: "gh", ExitCode: 1, Stderr: "HTTP 401: Requires authentication"},
			target: tracker.ErrNotAuthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			assert.ErrorIs(t, got, tt.target)
		})
	}

	t.Run("分類できないエラーはそのまま", func(t *testing.T) {
		orig := fmt.Errorf("network unreachable")
		assert.Same(t, orig, classifyError(orig))
	})

	t.Run("nilはnil", func(t *testing.T) {
		assert.NoError(t, classifyError(nil))
	})

	t.Run("分類後も元のExecErrorを取り出せる", func(t *testing.T) {
		got := classifyError(&ExecError{Command: "gh", ExitCode: 127, Stderr: "command not found"})
		var execErr *ExecError
		assert.True(t, errors.As(got, &execErr))
		assert.Equal(t, 127, execErr.ExitCode)
	})
}
