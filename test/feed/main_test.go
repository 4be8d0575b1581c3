package feed

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

type stubCompleter struct{}

func (stubCompleter) Complete(context.Context, string) (string, error) {
	return `{"should_post": false, "post": "", "reasoning": "stub"}`, nil
}

func TestMain(m *testing.M) {
	envRoot := flag.String("env-root", "", "directory containing environment files")
	appVersion := flag.String("app-version", "", "application version override")

	flag.Parse()

	app, res = internal.SetupApp(
		"test",
		*envRoot,
		*appVersion,
		internal.WithCompleter(stubCompleter{}),
	)

	code := m.Run()

	res.Close()
	os.Exit(code)
}
