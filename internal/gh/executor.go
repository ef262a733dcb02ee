package gh

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommandExecutor はコマンド実行の抽象化インターフェース
type CommandExecutor interface {
	Execute(ctx context.Context, command string, args ...string) (string, error)
}

// ExecError はコマンド実行エラーを表す
type ExecError struct {
	Command  string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

// Error はエラーメッセージを返す
func (e *ExecError) Error() string {
	cmdStr := e.Command
	if len(e.Args) > 0 {
		cmdStr = fmt.Sprintf("%s %s", e.Command, strings.Join(e.Args, " "))
	}
	if e.ExitCode < 0 && e.Err != nil {
		return fmt.Sprintf("command '%s' could not be started: %v", cmdStr, e.Err)
	}
	return fmt.Sprintf("command '%s' failed with exit code %d: %s", cmdStr, e.ExitCode, strings.TrimSpace(e.Stderr))
}

// Unwrap は元のエラーを返す
func (e *ExecError) Unwrap() error {
	return e.Err
}

// RealCommandExecutor は実際のコマンドを実行する実装
type RealCommandExecutor struct{}

// NewRealCommandExecutor は新しいRealCommandExecutorを作成する
func NewRealCommandExecutor() CommandExecutor {
	return &RealCommandExecutor{}
}

// Execute はコマンドを実行し、標準出力を返す
func (r *RealCommandExecutor) Execute(ctx context.Context, command string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		exitCode := -1
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			exitCode = exitError.ExitCode()
		}
		return "", &ExecError{
			Command:  command,
			Args:     args,
			ExitCode: exitCode,
			Stderr:   stderr.String(),
			Err:      err,
		}
	}

	return stdout.String(), nil
}
