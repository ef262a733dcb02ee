package gh

import (
	"context"
	"strings"
)

// MockCommandExecutor はテスト用のCommandExecutor
// 呼び出されたコマンドを記録し、ExecuteFuncが無ければ空の出力を返す
type MockCommandExecutor struct {
	ExecuteFunc func(ctx context.Context, command string, args ...string) (string, error)
	Calls       []string
}

// NewOutputExecutor はgh issue list や gh repo view の出力を固定で返すモックを作成する
// キーはサブコマンド（"issue list" など）
func NewOutputExecutor(outputs map[string]string) *MockCommandExecutor {
	return &MockCommandExecutor{
		ExecuteFunc: func(ctx context.Context, command string, args ...string) (string, error) {
			if len(args) >= 2 {
				if out, ok := outputs[args[0]+" "+args[1]]; ok {
					return out, nil
				}
			}
			return "", nil
		},
	}
}

// Execute は呼び出しを記録してモック関数を呼ぶ
func (m *MockCommandExecutor) Execute(ctx context.Context, command string, args ...string) (string, error) {
	m.Calls = append(m.Calls, strings.TrimSpace(command+" "+strings.Join(args, " ")))
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, command, args...)
	}
	return "", nil
}
