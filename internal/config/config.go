package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/douhashi/issuepipe/internal/appeal"
	"github.com/douhashi/issuepipe/internal/paths"
	"github.com/douhashi/issuepipe/internal/tracker"
)

const (
	// BackendGH はgh CLIを使うバックエンド
	BackendGH = "gh"
	// BackendAPI はGitHub REST APIを直接使うバックエンド
	BackendAPI = "api"

	// DefaultLimit は一度に取得するIssueの上限
	DefaultLimit = 1000
)

// Config はアプリケーション全体の設定
type Config struct {
	Dirs    DirsConfig    `mapstructure:"dirs" yaml:"dirs"`
	Tracker TrackerConfig `mapstructure:"tracker" yaml:"tracker"`
	GitHub  GitHubConfig  `mapstructure:"github" yaml:"github"`
	Appeal  AppealConfig  `mapstructure:"appeal" yaml:"appeal"`
}

// DirsConfig はパイプラインのディレクトリ設定
// 相対パスは作業ディレクトリを基準に解決される
type DirsConfig struct {
	Issues   string `mapstructure:"issues" yaml:"issues"`
	Accepted string `mapstructure:"accepted" yaml:"accepted"`
	Blocked  string `mapstructure:"blocked" yaml:"blocked"`
	Appeals  string `mapstructure:"appeals" yaml:"appeals"`
}

// TrackerConfig はIssueトラッカーの設定
type TrackerConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Limit   int    `mapstructure:"limit" yaml:"limit"`
}

// GitHubConfig はGitHub関連の設定
type GitHubConfig struct {
	Token string `mapstructure:"token" yaml:"token,omitempty"`
	Repo  string `mapstructure:"repo" yaml:"repo,omitempty"`
}

// AppealConfig はアピール文書の設定
type AppealConfig struct {
	Untitled string `mapstructure:"untitled" yaml:"untitled"`
}

// NewConfig は新しいConfigを作成する
func NewConfig() *Config {
	return &Config{
		Dirs: DirsConfig{
			Issues:   "issues",
			Accepted: "accepted",
			Blocked:  "blocked",
			Appeals:  filepath.Join("..", "appeals"),
		},
		Tracker: TrackerConfig{
			Backend: BackendGH,
			Limit:   DefaultLimit,
		},
		Appeal: AppealConfig{
			Untitled: appeal.DefaultUntitled,
		},
	}
}

// Load は設定ファイルと環境変数から設定を読み込む
// configPathが空の場合は ~/.config/issuepipe と カレントディレクトリの issuepipe.yaml を探し、
// 見つからなければデフォルト値を使う
func (c *Config) Load(configPath string) error {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "issuepipe"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("issuepipe")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("ISSUEPIPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// GITHUB_TOKENもサポート
	_ = v.BindEnv("github.token", "ISSUEPIPE_GITHUB_TOKEN", "GITHUB_TOKEN")

	defaults := NewConfig()
	v.SetDefault("dirs.issues", defaults.Dirs.Issues)
	v.SetDefault("dirs.accepted", defaults.Dirs.Accepted)
	v.SetDefault("dirs.blocked", defaults.Dirs.Blocked)
	v.SetDefault("dirs.appeals", defaults.Dirs.Appeals)
	v.SetDefault("tracker.backend", defaults.Tracker.Backend)
	v.SetDefault("tracker.limit", defaults.Tracker.Limit)
	v.SetDefault("github.token", "")
	v.SetDefault("github.repo", "")
	v.SetDefault("appeal.untitled", defaults.Appeal.Untitled)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}

	return nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	switch c.Tracker.Backend {
	case BackendGH:
	case BackendAPI:
		if c.GitHub.Token == "" {
			return errors.New("github.token (or GITHUB_TOKEN) is required for the api backend")
		}
	default:
		return fmt.Errorf("unknown tracker backend: %q", c.Tracker.Backend)
	}

	if c.Tracker.Limit <= 0 {
		return fmt.Errorf("tracker.limit must be positive: %d", c.Tracker.Limit)
	}

	if c.GitHub.Repo != "" {
		if _, err := tracker.ParseRepository(c.GitHub.Repo); err != nil {
			return fmt.Errorf("github.repo: %w", err)
		}
	}

	if c.Appeal.Untitled == "" {
		c.Appeal.Untitled = appeal.DefaultUntitled
	}

	return c.Layout("").Validate()
}

// Layout はbaseDirを基準にディレクトリ構成を解決する
func (c *Config) Layout(baseDir string) paths.Layout {
	return paths.NewLayout(baseDir, c.Dirs.Issues, c.Dirs.Accepted, c.Dirs.Blocked, c.Dirs.Appeals)
}

// WriteFile は設定をYAMLファイルとして書き出す
// トークンは書き出さない
func (c *Config) WriteFile(path string) error {
	out := *c
	out.GitHub.Token = ""

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
