package cmd

import (
	"github.com/spf13/cobra"

	"github.com/douhashi/issuepipe/internal/pipeline"
	"github.com/douhashi/issuepipe/internal/report"
)

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "オープンなIssueを取得",
		Long: `リポジトリのオープンなIssueを取得し、1件ずつ issues/issue-<番号>.json に保存します。
既存のファイルは上書きされます。`,
		Args: cobra.NoArgs,
		RunE: runFetch,
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	ws, err := prepareWorkspace()
	if err != nil {
		return err
	}

	t, err := newTrackerFunc(appConfig, ws.dir, appLog)
	if err != nil {
		return err
	}

	fetcher, err := pipeline.NewFetcher(ws.fs, t, ws.layout,
		pipeline.WithLogger(appLog),
		pipeline.WithLimit(appConfig.Tracker.Limit),
	)
	if err != nil {
		return err
	}

	result, err := fetcher.Run(cmd.Context())
	if err != nil {
		return err
	}

	report.NewPrinter(cmd.OutOrStdout()).Fetch(result)
	return nil
}
