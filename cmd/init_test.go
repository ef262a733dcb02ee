package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/douhashi/issuepipe/internal/testutil/mocks"
)

func TestInitCmd(t *testing.T) {
	t.Run("正常系: デフォルトの設定ファイルを作成する", func(t *testing.T) {
		setupCommandTest(t, mocks.NewMockTracker())
		path := filepath.Join(t.TempDir(), "conf", "issuepipe.yaml")

		stdout, _, err := executeCommand("init", "-o", path)
		require.NoError(t, err)
		assert.Contains(t, stdout, "Created")

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var got map[string]map[string]interface{}
		require.NoError(t, yaml.Unmarshal(data, &got))
		assert.Equal(t, "gh", got["tracker"]["backend"])
		assert.Equal(t, 1000, got["tracker"]["limit"])
		assert.Equal(t, "issues", got["dirs"]["issues"])
		assert.NotContains(t, string(data), "token")
	})

	t.Run("異常系: 既存ファイルは上書きしない", func(t *testing.T) {
		setupCommandTest(t, mocks.NewMockTracker())
		path := filepath.Join(t.TempDir(), "issuepipe.yaml")
		require.NoError(t, os.WriteFile(path, []byte("keep"), 0644))

		_, _, err := executeCommand("init", "-o", path)
		require.Error(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "keep", string(data))
	})

	t.Run("正常系: --forceで上書きする", func(t *testing.T) {
		setupCommandTest(t, mocks.NewMockTracker())
		path := filepath.Join(t.TempDir(), "issuepipe.yaml")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

		_, _, err := executeCommand("init", "-o", path, "--force")
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "backend: gh")
	})
}
