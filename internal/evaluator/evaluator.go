// Package evaluator asks the LLM whether a batch of pushed commits is worth
// a feed post, and for the post text when it is. Any provider failure or
// unparseable response surfaces as an error so the pipeline fails closed
// instead of posting on garbage.
package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Crax-AI/crax.app/internal/provider"
)

// Decision is the evaluator's verdict on one webhook delivery. Post is only
// meaningful when ShouldPost is true.
type Decision struct {
	ShouldPost bool   `json:"should_post"`
	Post       string `json:"post"`
	Reasoning  string `json:"reasoning"`
}

// Evaluator wraps a Completer with the prompt, timeout and response parsing
// for the post-worthiness call.
type Evaluator struct {
	completer provider.Completer
	timeout   time.Duration
}

// New creates an Evaluator with the given completer and timeout.
// If timeout is zero, defaults to 30 seconds.
func New(completer provider.Completer, timeout time.Duration) *Evaluator {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Evaluator{
		completer: completer,
		timeout:   timeout,
	}
}

// codeFenceRe matches markdown code fences around JSON.
var codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*\n?(.*?)\\s*```")

const retryPromptSuffix = `

IMPORTANT: You MUST respond with ONLY valid JSON. No markdown, no code fences, no extra text.
Example: {"should_post": false, "post": "", "reasoning": "only a dependency bump"}`

// Evaluate runs one post-worthiness decision. The commits are the ones just
// stored for the delivery, oldest first. A malformed response is retried
// once with a stricter prompt before giving up.
func (e *Evaluator) Evaluate(ctx context.Context, repository, pusher string, commits []CommitInput) (Decision, error) {
	prompt, err := BuildPrompt(repository, pusher, commits)
	if err != nil {
		return Decision{}, fmt.Errorf("building prompt: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.completer.Complete(ctx, prompt)
	if err != nil {
		return Decision{}, fmt.Errorf("completing prompt: %w", err)
	}

	decision, err := parseDecision(raw)
	if err == nil {
		return decision, nil
	}

	raw, retryErr := e.completer.Complete(ctx, prompt+retryPromptSuffix)
	if retryErr != nil {
		return Decision{}, fmt.Errorf("completing strict retry: %w", retryErr)
	}

	decision, err = parseDecision(raw)
	if err != nil {
		return Decision{}, err
	}

	return decision, nil
}

// parseDecision parses the LLM's JSON response, stripping markdown fences if
// present.
func parseDecision(raw string) (Decision, error) {
	cleaned := strings.TrimSpace(raw)

	if matches := codeFenceRe.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = strings.TrimSpace(matches[1])
	}

	var decision Decision
	if err := json.Unmarshal([]byte(cleaned), &decision); err != nil {
		return Decision{}, fmt.Errorf("%w: %s", provider.ErrInvalidResponse, err)
	}

	decision.Post = strings.TrimSpace(decision.Post)
	if decision.ShouldPost && decision.Post == "" {
		return Decision{}, fmt.Errorf("%w: should_post is true but post text is empty", provider.ErrInvalidResponse)
	}

	return decision, nil
}
