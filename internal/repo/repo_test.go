package repo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/douhashi/issuepipe/internal/tracker"
)

func initRepo(t *testing.T, remoteURL string) string {
	t.Helper()
	dir := t.TempDir()
	r, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	if remoteURL != "" {
		_, err = r.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{remoteURL}})
		require.NoError(t, err)
	}
	return dir
}

func TestDetector_Detect(t *testing.T) {
	t.Run("正常系: サブディレクトリからリポジトリを検出", func(t *testing.T) {
		dir := initRepo(t, "git@github.com:douhashi/issuepipe.git")
		sub := filepath.Join(dir, "scripts")
		require.NoError(t, os.MkdirAll(sub, 0755))

		info, err := NewDetector(sub).Detect(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "git@github.com:douhashi/issuepipe.git", info.RemoteURL)
	})

	t.Run("正常系: リモートなし", func(t *testing.T) {
		dir := initRepo(t, "")
		info, err := NewDetector(dir).Detect(context.Background())
		require.NoError(t, err)
		assert.Empty(t, info.RemoteURL)
	})

	t.Run("異常系: gitリポジトリ外", func(t *testing.T) {
		err := NewDetector(t.TempDir()).CheckRepository(context.Background())
		assert.ErrorIs(t, err, ErrNotGitRepository)
	})

	t.Run("異常系: キャンセル済みコンテキスト", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewDetector(t.TempDir()).Detect(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDetector_GitHubRepository(t *testing.T) {
	t.Run("正常系: originからowner/nameを取得", func(t *testing.T) {
		dir := initRepo(t, "https://github.com/douhashi/issuepipe.git")
		got, err := NewDetector(dir).GitHubRepository(context.Background())
		require.NoError(t, err)
		assert.Equal(t, tracker.Repository{Owner: "douhashi", Name: "issuepipe"}, got)
	})

	t.Run("異常系: originなし", func(t *testing.T) {
		dir := initRepo(t, "")
		_, err := NewDetector(dir).GitHubRepository(context.Background())
		assert.ErrorIs(t, err, ErrNoRemoteFound)
	})

	t.Run("異常系: GitHub以外のリモート", func(t *testing.T) {
		dir := initRepo(t, "https://gitlab.com/douhashi/issuepipe.git")
		_, err := NewDetector(dir).GitHubRepository(context.Background())
		assert.ErrorIs(t, err, tracker.ErrNoRepository)
	})
}

func TestParseGitHubURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    tracker.Repository
		wantErr bool
	}{
		{name: "HTTPS URL with .git", url: "https://github.com/douhashi/issuepipe.git", want: tracker.Repository{Owner: "douhashi", Name: "issuepipe"}},
		{name: "HTTPS URL without .git", url: "https://github.com/douhashi/issuepipe", want: tracker.Repository{Owner: "douhashi", Name: "issuepipe"}},
		{name: "SSH URL with .git", url: "git@github.com:douhashi/issuepipe.git", want: tracker.Repository{Owner: "douhashi", Name: "issuepipe"}},
		{name: "SSH URL without .git", url: "git@github.com:douhashi/issuepipe", want: tracker.Repository{Owner: "douhashi", Name: "issuepipe"}},
		{name: "SSH URL with ssh:// prefix", url: "ssh://git@github.com/douhashi/issuepipe.git", want: tracker.Repository{Owner: "douhashi", Name: "issuepipe"}},
		{name: "Non-GitHub URL", url: "https://gitlab.com/douhashi/issuepipe.git", wantErr: true},
		{name: "Empty URL", url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGitHubURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
