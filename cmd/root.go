package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/douhashi/issuepipe/internal/config"
	"github.com/douhashi/issuepipe/internal/logger"
	"github.com/douhashi/issuepipe/internal/tracker"
	"github.com/douhashi/issuepipe/internal/version"
)

var (
	cfgFile   string
	verbose   bool
	logLevel  string
	rootCmd   *cobra.Command
	appLog    logger.Logger
	appConfig *config.Config
)

func init() {
	rootCmd = NewRootCmd()
}

// NewRootCmd はすべてのサブコマンドを持つルートコマンドを作成する
func NewRootCmd() *cobra.Command {
	cmd := newRootCmd()
	cmd.AddCommand(newFetchCmd())
	cmd.AddCommand(newSortCmd())
	cmd.AddCommand(newCloseCmd())
	cmd.AddCommand(newArchiveCmd())
	cmd.AddCommand(newInitCmd())
	return cmd
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issuepipe",
		Short: "GitHub Issueのトリアージパイプライン",
		Long: `issuepipeは、GitHubのオープンなIssueをローカルに取得し、
accepted/blocked への振り分け、クローズ、アピール文書への変換までを行うCLIツールです。

  issuepipe fetch     オープンなIssueを issues/ に保存
  issuepipe sort      issues/ のIssueを対話的に振り分け
  issuepipe close     振り分け済みのIssueをクローズ
  issuepipe archive   accepted/ をアピール文書に変換して作業ディレクトリを削除`,
		Version:       version.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// 設定ファイルを先に読み込む
			appConfig = config.NewConfig()
			if err := appConfig.Load(cfgFile); err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			opts := []logger.Option{logger.WithOutput(cmd.ErrOrStderr())}
			if verbose {
				opts = append(opts, logger.WithLevel("debug"))
			}
			if logLevel != "" {
				opts = append(opts, logger.WithLevel(logLevel))
			}

			var err error
			appLog, err = logger.NewFromEnv(opts...)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
	}

	cmd.SetVersionTemplate(version.Get().String() + "\n")
	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "設定ファイルのパス")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "詳細出力")
	cmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "ログレベル (debug, info, warn, error)")

	return cmd
}

// Execute はルートコマンドを実行し、失敗した場合は終了コード1で終了する
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(rootCmd, err)
		stop()
		os.Exit(1)
	}
}

// printError はエラーと対処方法を標準エラー出力に表示する
func printError(cmd *cobra.Command, err error) {
	fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	if hint := tracker.Hint(err); hint != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), hint)
	}
}
