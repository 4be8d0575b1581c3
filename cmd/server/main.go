// @Tag.name Webhooks
// @Tag.description GitHub push ingestion pipeline.

// @Tag.name Feed
// @Tag.description Read surface of the build-in-public feed.

// @Tag.name Operators
// @Tag.description Authentication flows for staff operators.

// @Tag.name Admin
// @Tag.description Operator-only inspection and import tooling.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Crax-AI/crax.app/internal"
	"github.com/Crax-AI/crax.app/internal/env"
	"github.com/Crax-AI/crax.app/internal/swagger"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	deployment := flag.String("deployment", "", "deployment profile (dev|test|prod)")
	portFlag := flag.String("port", "", "port to listen on")
	envRoot := flag.String("env-root", "", "directory containing environment files")
	appVersion := flag.String("app-version", "", "application version override")

	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	deploy := strings.TrimSpace(*deployment)
	if deploy == "" {
		args := flag.Args()
		if len(args) == 0 {
			fmt.Println("Usage: server --deployment <type> --port <port> [--env-root <dir>] [--app-version <version>]")
			os.Exit(1)
		}
		deploy = strings.TrimSpace(args[0])
	}

	if deploy == "" {
		log.Fatal().Msg("deployment is required")
	}

	port := strings.TrimSpace(*portFlag)
	if port == "" {
		log.Fatal().Msg("port is required")
	}

	app, resources := internal.SetupApp(deploy, *envRoot, *appVersion)
	swagger.Register(app)

	log.Info().
		Str("version", env.VERSION).
		Str("deployment", deploy).
		Str("port", port).
		Msg("starting crax webhook server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		errs <- app.Listen(fmt.Sprintf(":%s", port), fiber.ListenConfig{
			EnablePrefork: env.PREFORK,
		})
	}()

	select {
	case err := <-errs:
		if err != nil {
			log.Fatal().Err(err).Str("port", port).Msg("listener failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("shutdown did not finish cleanly")
		}
	}

	resources.Close()
}
