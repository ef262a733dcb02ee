package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/douhashi/issuepipe/internal/config"
	"github.com/douhashi/issuepipe/internal/gh"
	"github.com/douhashi/issuepipe/internal/github"
	"github.com/douhashi/issuepipe/internal/logger"
	"github.com/douhashi/issuepipe/internal/paths"
	"github.com/douhashi/issuepipe/internal/pipeline"
	"github.com/douhashi/issuepipe/internal/repo"
	"github.com/douhashi/issuepipe/internal/tracker"
	"github.com/douhashi/issuepipe/internal/tui"
)

// テスト時に差し替えるための関数変数
var (
	newFsFunc          = afero.NewOsFs
	getwdFunc          = os.Getwd
	newTrackerFunc     = newTracker
	newRepoCheckerFunc = newRepoChecker
	runSorterFunc      = tui.Run
)

// workspace はコマンドが操作するファイルシステムとディレクトリ構成
type workspace struct {
	fs     afero.Fs
	dir    string
	layout paths.Layout
}

// prepareWorkspace は設定を検証して作業ディレクトリ基準のレイアウトを作成する
func prepareWorkspace() (*workspace, error) {
	if err := appConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir, err := getwdFunc()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	return &workspace{
		fs:     newFsFunc(),
		dir:    dir,
		layout: appConfig.Layout(dir),
	}, nil
}

// newTracker は設定されたバックエンドのTrackerを作成する
func newTracker(cfg *config.Config, dir string, log logger.Logger) (tracker.Tracker, error) {
	switch cfg.Tracker.Backend {
	case config.BackendAPI:
		return github.NewClient(cfg.GitHub.Token,
			github.WithRepository(cfg.GitHub.Repo),
			github.WithResolver(repo.NewDetector(dir)),
			github.WithLogger(log),
		)
	default:
		return gh.NewClient(gh.NewRealCommandExecutor(),
			gh.WithRepository(cfg.GitHub.Repo),
			gh.WithLogger(log),
		)
	}
}

func newRepoChecker(dir string) pipeline.RepositoryChecker {
	return repo.NewDetector(dir)
}
