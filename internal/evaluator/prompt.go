package evaluator

import (
	"bytes"
	"fmt"
	"text/template"
)

// Bounds applied before rendering so the prompt stays a predictable size no
// matter how large the push was.
const (
	maxPromptCommits  = 10
	maxMessageLen     = 300
	maxFilesPerCommit = 15
)

// CommitInput is the slice of a stored commit the evaluator gets to see.
type CommitInput struct {
	Message       string
	AddedFiles    []string
	ModifiedFiles []string
	RemovedFiles  []string
}

const decisionPromptTemplate = `You are helping run a "build in public" feed. A developer just pushed commits to the main branch of their public repository {{.Repository}} (GitHub user: {{.Pusher}}).

The commits, oldest first:
{{range .Commits}}
- {{.Message}}{{if .AddedFiles}}
  added: {{join .AddedFiles}}{{end}}{{if .ModifiedFiles}}
  modified: {{join .ModifiedFiles}}{{end}}{{if .RemovedFiles}}
  removed: {{join .RemovedFiles}}{{end}}
{{end}}
Decide whether this batch represents meaningful, shareable progress. Trivial or mechanical changes (formatting, dependency bumps, typo fixes, merge noise) are not worth posting.

If it is worth posting, also write the post:
- Under 280 characters
- Casual and enthusiastic, first person, like sharing progress with friends
- Highlights what was built or improved
- No hashtags, no emojis, no technical jargon

Respond with ONLY this JSON (no markdown fences):
{"should_post": true, "post": "the post text, empty string when should_post is false", "reasoning": "brief explanation"}`

type promptData struct {
	Repository string
	Pusher     string
	Commits    []CommitInput
}

var decisionTmpl = template.Must(
	template.New("decision").
		Funcs(template.FuncMap{"join": joinFiles}).
		Parse(decisionPromptTemplate),
)

// BuildPrompt renders the decision prompt for a batch of commits. Commit
// order is preserved; messages and file lists are truncated to the bounds
// above.
func BuildPrompt(repository, pusher string, commits []CommitInput) (string, error) {
	if repository == "" {
		return "", fmt.Errorf("repository name is required")
	}
	if len(commits) == 0 {
		return "", fmt.Errorf("at least one commit is required")
	}

	if len(commits) > maxPromptCommits {
		commits = commits[:maxPromptCommits]
	}

	bounded := make([]CommitInput, len(commits))
	for i, c := range commits {
		bounded[i] = CommitInput{
			Message:       truncate(c.Message, maxMessageLen),
			AddedFiles:    capFiles(c.AddedFiles),
			ModifiedFiles: capFiles(c.ModifiedFiles),
			RemovedFiles:  capFiles(c.RemovedFiles),
		}
	}

	var buf bytes.Buffer
	if err := decisionTmpl.Execute(&buf, promptData{
		Repository: repository,
		Pusher:     pusher,
		Commits:    bounded,
	}); err != nil {
		return "", fmt.Errorf("rendering prompt template: %w", err)
	}

	return buf.String(), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func capFiles(files []string) []string {
	if len(files) <= maxFilesPerCommit {
		return files
	}
	capped := make([]string, maxFilesPerCommit, maxFilesPerCommit+1)
	copy(capped, files[:maxFilesPerCommit])
	return append(capped, fmt.Sprintf("(+%d more)", len(files)-maxFilesPerCommit))
}

func joinFiles(files []string) string {
	var buf bytes.Buffer
	for i, f := range files {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(f)
	}
	return buf.String()
}
