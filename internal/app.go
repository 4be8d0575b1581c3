package internal

import (
	"github.com/Crax-AI/crax.app/internal/commits"
	"github.com/Crax-AI/crax.app/internal/db"
	"github.com/Crax-AI/crax.app/internal/env"
	"github.com/Crax-AI/crax.app/internal/evaluator"
	"github.com/Crax-AI/crax.app/internal/events"
	"github.com/Crax-AI/crax.app/internal/feed"
	"github.com/Crax-AI/crax.app/internal/githubhooks"
	"github.com/Crax-AI/crax.app/internal/metrics"
	"github.com/Crax-AI/crax.app/internal/models"
	"github.com/Crax-AI/crax.app/internal/operators"
	"github.com/Crax-AI/crax.app/internal/projects"
	"github.com/Crax-AI/crax.app/internal/provider"
	"github.com/Crax-AI/crax.app/internal/pubsub"

	"github.com/gofiber/fiber/v3"
	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog/log"
)

// Resources holds everything SetupApp constructs that outlives a request and
// must be released at shutdown.
type Resources struct {
	Store   *db.Store
	Emitter *events.Emitter
	Feed    *pubsub.Broker[models.Post]
}

// Close drains the event emitter and disconnects the store clients.
func (r *Resources) Close() {
	if r.Emitter != nil {
		r.Emitter.Close()
	}
	if r.Store != nil {
		r.Store.Close()
	}
}

type setupConfig struct {
	completer provider.Completer
	gh        *github.Client
}

// Option overrides a collaborator during SetupApp, used by the test suites
// to swap the live LLM and GitHub clients for scripted ones.
type Option func(*setupConfig)

// WithCompleter replaces the LLM completer behind the evaluator.
func WithCompleter(c provider.Completer) Option {
	return func(cfg *setupConfig) { cfg.completer = c }
}

// WithGithubClient replaces the GitHub REST client used by project sync.
func WithGithubClient(gh *github.Client) Option {
	return func(cfg *setupConfig) { cfg.gh = gh }
}

// SetupApp loads config, opens the store, and wires every feature router
// with explicitly injected collaborators.
func SetupApp(deployment string, envRoot string, appVersion string, opts ...Option) (*fiber.App, *Resources) {
	env.Init(envRoot, appVersion)

	var cfg setupConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	store, err := db.Open(deployment)
	if err != nil {
		log.Fatal().Err(err).Msg("could not open the data store")
		return nil, nil
	}

	emitter := events.NewEmitter(store.Events, deployment)

	if cfg.completer == nil {
		cfg.completer = mustCompleter()
	}
	eval := evaluator.New(cfg.completer, env.EVAL_TIMEOUT)

	if cfg.gh == nil {
		cfg.gh = githubClient()
	}

	broker := pubsub.NewBroker[models.Post]()

	app := fiber.New()

	app.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "crax-webhook-server",
		})
	})

	app.Get("/version", func(c fiber.Ctx) error {
		return c.SendString("v" + env.VERSION)
	})

	app.Get("/metrics", metrics.Handler())

	githubhooks.Routes(app, &githubhooks.Handler{
		Store:     store,
		Evaluator: eval,
		Emitter:   emitter,
		Feed:      broker,
	})

	feed.Routes(app, store, broker)
	operators.Routes(app, store, emitter)

	admin := app.Group("/admin", models.OperatorMiddleware)
	commits.Routes(admin, store)
	projects.Routes(admin, store, emitter, cfg.gh)

	return app, &Resources{
		Store:   store,
		Emitter: emitter,
		Feed:    broker,
	}
}

func mustCompleter() provider.Completer {
	completer, err := provider.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not build the LLM completer")
		return nil
	}
	return completer
}

func githubClient() *github.Client {
	gh := github.NewClient(nil)
	if env.GITHUB_TOKEN != "" {
		gh = gh.WithAuthToken(env.GITHUB_TOKEN)
	}
	return gh
}
