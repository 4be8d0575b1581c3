package projects

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/Crax-AI/crax.app/internal"

	"github.com/gofiber/fiber/v3"
	"github.com/google/go-github/v60/github"
)

var (
	app *fiber.App
	res *internal.Resources

	// reposByLogin is what the fake GitHub API serves per user; tests set it
	// before hitting the sync endpoint.
	reposByLogin map[string]string
)

type stubCompleter struct{}

func (stubCompleter) Complete(context.Context, string) (string, error) {
	return `{"should_post": false, "post": "", "reasoning": "stub"}`, nil
}

// fakeGithub serves the repository listing endpoint project sync pages
// through.
func fakeGithub() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/users/")
		login, found := strings.CutSuffix(path, "/repos")
		if !found {
			http.NotFound(w, r)
			return
		}

		body, ok := reposByLogin[login]
		if !ok {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	})

	return httptest.NewServer(mux)
}

func TestMain(m *testing.M) {
	envRoot := flag.String("env-root", "", "directory containing environment files")
	appVersion := flag.String("app-version", "", "application version override")

	flag.Parse()

	srv := fakeGithub()
	defer srv.Close()

	gh := github.NewClient(nil)
	baseURL, err := url.Parse(srv.URL + "/")
	if err != nil {
		panic(err)
	}
	gh.BaseURL = baseURL

	app, res = internal.SetupApp(
		"test",
		*envRoot,
		*appVersion,
		internal.WithCompleter(stubCompleter{}),
		internal.WithGithubClient(gh),
	)

	code := m.Run()

	res.Close()
	os.Exit(code)
}
