package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/douhashi/issuepipe/internal/pipeline"
)

func newSortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort",
		Short: "取得したIssueを対話的に振り分け",
		Long: `issues/ のIssueを一覧表示し、accepted/ または blocked/ に移動します。

  a  accepted に移動
  b  blocked に移動
  s  スキップ
  q  終了

ファイルを手動で移動しても同じ結果になります。`,
		Args: cobra.NoArgs,
		RunE: runSort,
	}
}

func runSort(cmd *cobra.Command, args []string) error {
	ws, err := prepareWorkspace()
	if err != nil {
		return err
	}

	sorter, err := pipeline.NewSorter(ws.fs, ws.layout, pipeline.WithLogger(appLog))
	if err != nil {
		return err
	}

	pending, err := sorter.Pending()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No pending issues in", ws.layout.IssuesDir)
		return nil
	}

	summary, err := runSorterFunc(sorter, pending,
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithContext(cmd.Context()),
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "accepted: %d, blocked: %d, remaining: %d\n",
		len(summary.Accepted), len(summary.Blocked), summary.Left)
	return nil
}
