package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/douhashi/issuepipe/internal/config"
)

var (
	initOutput string
	initForce  bool
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "設定ファイルを作成",
		Long: `デフォルト値を書き込んだ issuepipe.yaml を作成します。
トークンはファイルに書き込まれません。GITHUB_TOKEN 環境変数を使用してください。`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}

	cmd.Flags().StringVarP(&initOutput, "output", "o", "issuepipe.yaml", "作成する設定ファイルのパス")
	cmd.Flags().BoolVar(&initForce, "force", false, "既存のファイルを上書き")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(initOutput); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", initOutput)
	}

	if err := config.NewConfig().WriteFile(initOutput); err != nil {
		return err
	}

	appLog.Info("Config file created", "path", initOutput)
	fmt.Fprintln(cmd.OutOrStdout(), "Created", initOutput)
	return nil
}
