package cmd

import (
	"github.com/spf13/cobra"

	"github.com/douhashi/issuepipe/internal/pipeline"
	"github.com/douhashi/issuepipe/internal/report"
)

func newArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "受理したIssueをアピール文書に変換",
		Long: `accepted/ のIssueを appeals/appeal-<番号>.md に変換した後、
issues/ accepted/ blocked/ を確認なしで削除します。`,
		Args: cobra.NoArgs,
		RunE: runArchive,
	}
}

func runArchive(cmd *cobra.Command, args []string) error {
	ws, err := prepareWorkspace()
	if err != nil {
		return err
	}

	archiver, err := pipeline.NewArchiver(ws.fs, ws.layout,
		pipeline.WithLogger(appLog),
		pipeline.WithUntitled(appConfig.Appeal.Untitled),
	)
	if err != nil {
		return err
	}

	result, err := archiver.Run(cmd.Context())
	if err != nil {
		return err
	}

	report.NewPrinter(cmd.OutOrStdout()).Archive(result)
	return nil
}
