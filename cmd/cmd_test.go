package cmd

import (
	"bytes"
	"path/filepath"
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/douhashi/issuepipe/internal/config"
	"github.com/douhashi/issuepipe/internal/logger"
	"github.com/douhashi/issuepipe/internal/pipeline"
	"github.com/douhashi/issuepipe/internal/testutil/mocks"
	"github.com/douhashi/issuepipe/internal/tracker"
	"github.com/douhashi/issuepipe/internal/tui"
)

const testWorkDir = "/work/project"

// setupCommandTest は関数変数を差し替え、テスト終了時に元に戻す
func setupCommandTest(t *testing.T, tr tracker.Tracker) afero.Fs {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("ISSUEPIPE_GITHUB_TOKEN", "")

	origFs := newFsFunc
	origGetwd := getwdFunc
	origTracker := newTrackerFunc
	origChecker := newRepoCheckerFunc
	origSorter := runSorterFunc
	t.Cleanup(func() {
		newFsFunc = origFs
		getwdFunc = origGetwd
		newTrackerFunc = origTracker
		newRepoCheckerFunc = origChecker
		runSorterFunc = origSorter
	})

	fs := afero.NewMemMapFs()
	newFsFunc = func() afero.Fs { return fs }
	getwdFunc = func() (string, error) { return testWorkDir, nil }
	newTrackerFunc = func(cfg *config.Config, dir string, log logger.Logger) (tracker.Tracker, error) {
		return tr, nil
	}
	newRepoCheckerFunc = func(dir string) pipeline.RepositoryChecker {
		return mocks.NewMockRepositoryChecker(nil)
	}
	runSorterFunc = func(c tui.Classifier, pending []pipeline.PendingIssue, opts ...tea.ProgramOption) (tui.Summary, error) {
		t.Fatal("sorter UI should not be started")
		return tui.Summary{}, nil
	}
	return fs
}

// executeCommand はルートコマンドを実行して標準出力と標準エラー出力を返す
func executeCommand(args ...string) (string, string, error) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	rootCmd = NewRootCmd()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeIssue(t *testing.T, fs afero.Fs, dir string, number int, content string) {
	t.Helper()
	path := filepath.Join(testWorkDir, dir, "issue-"+strconv.Itoa(number)+".json")
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}
