package cmd

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/douhashi/issuepipe/internal/testutil/mocks"
)

func TestArchiveCmd(t *testing.T) {
	t.Run("正常系: 変換して作業ディレクトリを削除する", func(t *testing.T) {
		fs := setupCommandTest(t, mocks.NewMockTracker())
		writeIssue(t, fs, "accepted", 4, `{"title":"Bug","body":"Steps..."}`)
		writeIssue(t, fs, "blocked", 5, `{}`)
		writeIssue(t, fs, "issues", 6, `{}`)

		stdout, _, err := executeCommand("archive")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Archive summary")
		assert.Contains(t, stdout, "/work/appeals")

		doc, err := afero.ReadFile(fs, "/work/appeals/appeal-4.md")
		require.NoError(t, err)
		assert.Equal(t, "# Bug\n\nSteps...", string(doc))

		for _, dir := range []string{"issues", "accepted", "blocked"} {
			exists, err := afero.DirExists(fs, "/work/project/"+dir)
			require.NoError(t, err)
			assert.False(t, exists, dir)
		}
	})

	t.Run("正常系: プレースホルダを設定できる", func(t *testing.T) {
		fs := setupCommandTest(t, mocks.NewMockTracker())
		t.Setenv("ISSUEPIPE_APPEAL_UNTITLED", "No title")
		writeIssue(t, fs, "accepted", 1, `{"body":"x"}`)

		_, _, err := executeCommand("archive")
		require.NoError(t, err)

		doc, err := afero.ReadFile(fs, "/work/appeals/appeal-1.md")
		require.NoError(t, err)
		assert.Equal(t, "# No title\n\nx", string(doc))
	})
}
