package githubhooks

import (
	"context"
	"flag"
	"os"
	"testing"

	"github.com/Crax-AI/crax.app/internal"

	"github.com/gofiber/fiber/v3"
)

var (
	app *fiber.App
	res *internal.Resources
)

// script is the behaviour of the stubbed LLM for the current test. The
// default judges every batch not post-worthy.
var script = func(prompt string) (string, error) {
	return `{"should_post": false, "post": "", "reasoning": "default stub"}`, nil
}

type scriptedCompleter struct{}

func (scriptedCompleter) Complete(_ context.Context, prompt string) (string, error) {
	return script(prompt)
}

// TestMain spins up the full fiber app with the test deployment profile and
// a scripted completer in place of the live LLM.
func TestMain(m *testing.M) {
	envRoot := flag.String("env-root", "", "directory containing environment files")
	appVersion := flag.String("app-version", "", "application version override")

	flag.Parse()

	app, res = internal.SetupApp(
		"test",
		*envRoot,
		*appVersion,
		internal.WithCompleter(scriptedCompleter{}),
	)

	code := m.Run()

	res.Close()
	os.Exit(code)
}
