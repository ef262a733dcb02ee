package cmd

import (
	"github.com/spf13/cobra"

	"github.com/douhashi/issuepipe/internal/pipeline"
	"github.com/douhashi/issuepipe/internal/report"
)

var dryRunFlag bool

func newCloseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close",
		Short: "振り分け済みのIssueをクローズ",
		Long: `accepted/ のIssueを completed として、blocked/ のIssueを not planned としてクローズします。
クローズに失敗したIssueは記録され、残りの処理は続行されます。`,
		Args: cobra.NoArgs,
		RunE: runClose,
	}

	cmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "クローズせずに対象のIssueを表示")

	return cmd
}

func runClose(cmd *cobra.Command, args []string) error {
	ws, err := prepareWorkspace()
	if err != nil {
		return err
	}

	t, err := newTrackerFunc(appConfig, ws.dir, appLog)
	if err != nil {
		return err
	}

	closer, err := pipeline.NewCloser(ws.fs, t, newRepoCheckerFunc(ws.dir), ws.layout,
		pipeline.WithLogger(appLog),
		pipeline.WithDryRun(dryRunFlag),
	)
	if err != nil {
		return err
	}

	result, err := closer.Run(cmd.Context())
	if err != nil {
		return err
	}

	report.NewPrinter(cmd.OutOrStdout()).Close(result)
	return nil
}
