package gh

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/douhashi/issuepipe/internal/tracker"
)

// classifyError はghコマンドのエラー出力から原因を判定し、trackerのエラーで包む
// 判定できない場合は元のエラーをそのまま返す
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	text := err.Error()
	var execErr *ExecError
	if errors.As(err, &execErr) {
		text += "\n" + execErr.Stderr
	}

	switch {
	case errors.Is(err, exec.ErrNotFound) || strings.Contains(text, "command not found"):
		return fmt.Errorf("%w: %w", tracker.ErrNotInstalled, err)
	case strings.Contains(text, "Could not resolve to a Repository") ||
		strings.Contains(text, "not a git repository") ||
		strings.Contains(text, "none of the git remotes"):
		return fmt.Errorf("%w: %w", tracker.ErrNoRepository, err)
	case strings.Contains(text, "authentication") || strings.Contains(text, "gh auth login"):
		return fmt.Errorf("%w: %w", tracker.ErrNotAuthenticated, err)
	default:
		return err
	}
}
