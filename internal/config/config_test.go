package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GITHUB_TOKEN", "ISSUEPIPE_GITHUB_TOKEN", "ISSUEPIPE_TRACKER_BACKEND", "ISSUEPIPE_TRACKER_LIMIT", "ISSUEPIPE_DIRS_APPEALS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, "issues", cfg.Dirs.Issues)
	assert.Equal(t, "accepted", cfg.Dirs.Accepted)
	assert.Equal(t, "blocked", cfg.Dirs.Blocked)
	assert.Equal(t, filepath.Join("..", "appeals"), cfg.Dirs.Appeals)
	assert.Equal(t, BackendGH, cfg.Tracker.Backend)
	assert.Equal(t, 1000, cfg.Tracker.Limit)
	assert.Equal(t, "Untitled", cfg.Appeal.Untitled)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Load(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		envVars       map[string]string
		wantErr       bool
		checkFunc     func(t *testing.T, cfg *Config)
	}{
		{
			name: "正常系: YAMLファイルから設定を読み込める",
			configContent: `
dirs:
  issues: inbox
  appeals: /srv/appeals
tracker:
  backend: api
  limit: 50
github:
  repo: douhashi/issuepipe
appeal:
  untitled: "(no title)"
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "inbox", cfg.Dirs.Issues)
				assert.Equal(t, "accepted", cfg.Dirs.Accepted)
				assert.Equal(t, "/srv/appeals", cfg.Dirs.Appeals)
				assert.Equal(t, BackendAPI, cfg.Tracker.Backend)
				assert.Equal(t, 50, cfg.Tracker.Limit)
				assert.Equal(t, "douhashi/issuepipe", cfg.GitHub.Repo)
				assert.Equal(t, "(no title)", cfg.Appeal.Untitled)
			},
		},
		{
			name:          "正常系: GITHUB_TOKENからトークンを読み込む",
			configContent: "tracker:\n  backend: api\n",
			envVars:       map[string]string{"GITHUB_TOKEN": "env-token"},
			checkFunc: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "env-token", cfg.GitHub.Token)
			},
		},
		{
			name:          "正常系: 環境変数がファイルより優先される",
			configContent: "tracker:\n  limit: 10\n",
			envVars:       map[string]string{"ISSUEPIPE_TRACKER_LIMIT": "20"},
			checkFunc: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 20, cfg.Tracker.Limit)
			},
		},
		{
			name:          "異常系: 不正なYAML",
			configContent: "tracker: [",
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			path := filepath.Join(t.TempDir(), "issuepipe.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.configContent), 0644))

			cfg := NewConfig()
			err := cfg.Load(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}

	t.Run("異常系: 明示したファイルが存在しない", func(t *testing.T) {
		clearEnv(t)
		cfg := NewConfig()
		assert.Error(t, cfg.Load(filepath.Join(t.TempDir(), "missing.yaml")))
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "正常系: デフォルト",
			modify: func(cfg *Config) {},
		},
		{
			name: "正常系: apiバックエンドとトークン",
			modify: func(cfg *Config) {
				cfg.Tracker.Backend = BackendAPI
				cfg.GitHub.Token = "token"
			},
		},
		{
			name:    "異常系: apiバックエンドでトークンなし",
			modify:  func(cfg *Config) { cfg.Tracker.Backend = BackendAPI },
			wantErr: "github.token",
		},
		{
			name:    "異常系: 不明なバックエンド",
			modify:  func(cfg *Config) { cfg.Tracker.Backend = "gitlab" },
			wantErr: "unknown tracker backend",
		},
		{
			name:    "異常系: limitが0",
			modify:  func(cfg *Config) { cfg.Tracker.Limit = 0 },
			wantErr: "tracker.limit",
		},
		{
			name:    "異常系: 不正なリポジトリ",
			modify:  func(cfg *Config) { cfg.GitHub.Repo = "issuepipe" },
			wantErr: "github.repo",
		},
		{
			name:    "異常系: ディレクトリの重複",
			modify:  func(cfg *Config) { cfg.Dirs.Blocked = "accepted" },
			wantErr: "must differ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	t.Run("空のプレースホルダはデフォルトに戻る", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Appeal.Untitled = ""
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "Untitled", cfg.Appeal.Untitled)
	})
}

func TestConfig_Layout(t *testing.T) {
	cfg := NewConfig()
	layout := cfg.Layout("/work/scripts")
	assert.Equal(t, "/work/scripts/issues", layout.IssuesDir)
	assert.Equal(t, "/work/appeals", layout.AppealsDir)
}

func TestConfig_WriteFile(t *testing.T) {
	clearEnv(t)
	cfg := NewConfig()
	cfg.GitHub.Token = "secret-token"
	cfg.GitHub.Repo = "douhashi/issuepipe"

	path := filepath.Join(t.TempDir(), "nested", "issuepipe.yaml")
	require.NoError(t, cfg.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret-token")

	var raw map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.Contains(t, raw, "dirs")

	loaded := NewConfig()
	require.NoError(t, loaded.Load(path))
	assert.Equal(t, "douhashi/issuepipe", loaded.GitHub.Repo)
	assert.Equal(t, cfg.Dirs, loaded.Dirs)
	assert.Empty(t, loaded.GitHub.Token)
}
