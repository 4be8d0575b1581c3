package evaluator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPromptIncludesCommitsAndContext(t *testing.T) {
	prompt, err := BuildPrompt("crax", "octocat", []CommitInput{
		{Message: "add caching layer", AddedFiles: []string{"cache.go"}, ModifiedFiles: []string{"server.go"}},
		{Message: "fix typo", RemovedFiles: []string{"old.go"}},
	})
	require.NoError(t, err)

	require.Contains(t, prompt, "crax")
	require.Contains(t, prompt, "octocat")
	require.Contains(t, prompt, "add caching layer")
	require.Contains(t, prompt, "fix typo")
	require.Contains(t, prompt, "added: cache.go")
	require.Contains(t, prompt, "modified: server.go")
	require.Contains(t, prompt, "removed: old.go")
	require.Contains(t, prompt, `"should_post"`)

	// First commit renders before the second.
	require.Less(t,
		strings.Index(prompt, "add caching layer"),
		strings.Index(prompt, "fix typo"),
	)
}

func TestBuildPromptRequiresRepositoryAndCommits(t *testing.T) {
	_, err := BuildPrompt("", "octocat", []CommitInput{{Message: "x"}})
	require.Error(t, err)

	_, err = BuildPrompt("crax", "octocat", nil)
	require.Error(t, err)
}

func TestBuildPromptCapsCommitCount(t *testing.T) {
	commits := make([]CommitInput, maxPromptCommits+5)
	for i := range commits {
		commits[i] = CommitInput{Message: "commit"}
	}
	commits[maxPromptCommits].Message = "over-the-limit"

	prompt, err := BuildPrompt("crax", "octocat", commits)
	require.NoError(t, err)
	require.NotContains(t, prompt, "over-the-limit")
}

func TestBuildPromptTruncatesLongMessages(t *testing.T) {
	long := strings.Repeat("a", maxMessageLen+50)

	prompt, err := BuildPrompt("crax", "octocat", []CommitInput{{Message: long}})
	require.NoError(t, err)
	require.NotContains(t, prompt, long)
	require.Contains(t, prompt, long[:maxMessageLen]+"...")
}

func TestBuildPromptCapsFileLists(t *testing.T) {
	files := make([]string, maxFilesPerCommit+7)
	for i := range files {
		files[i] = "file.go"
	}

	prompt, err := BuildPrompt("crax", "octocat", []CommitInput{{Message: "big", AddedFiles: files}})
	require.NoError(t, err)
	require.Contains(t, prompt, "(+7 more)")
}
