package gh

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealCommandExecutor_Execute(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh is not available")
	}
	executor := NewRealCommandExecutor()

	t.Run("正常系: 標準出力を返す", func(t *testing.T) {
		out, err := executor.Execute(context.Background(), "sh", "-c", "printf hello")
		require.NoError(t, err)
		assert.Equal(t, "hello", out)
	})

	t.Run("異常系: 終了コードと標準エラー出力を保持する", func(t *testing.T) {
		_, err := executor.Execute(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
		var execErr *ExecError
		require.True(t, errors.As(err, &execErr))
		assert.Equal(t, 3, execErr.ExitCode)
		assert.Equal(t, "oops\n", execErr.Stderr)
		assert.Contains(t, err.Error(), "exit code 3")
	})

	t.Run("異常系: 存在しないコマンドはexec.ErrNotFoundを包む", func(t *testing.T) {
		_, err := executor.Execute(context.Background(), "issuepipe-no-such-binary")
		var execErr *ExecError
		require.True(t, errors.As(err, &execErr))
		assert.Equal(t, -1, execErr.ExitCode)
		assert.True(t, errors.Is(err, exec.ErrNotFound))
	})
}

func TestExecError_Error(t *testing.T) {
	err := &ExecError{Command: "gh", Args: []string{"issue", "close", "1"}, ExitCode: 1, Stderr: "not found\n"}
	assert.Equal(t, "command 'gh issue close 1' failed with exit code 1: not found", err.Error())
}
