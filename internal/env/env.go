package env

import (
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// actual environment variables
var MONGO_URI string
var REDIS_ADDR string
var REDIS_DB int
var GITHUB_WEBHOOK_SECRET string
var GITHUB_TOKEN string
var JWT_SECRET []byte
var ANTHROPIC_API_KEY string
var OPENAI_API_KEY string
var LLM_PROVIDER string
var LLM_MODEL string
var EVAL_TIMEOUT time.Duration
var PREFORK bool

// this is required
var VERSION string

func Init(envRoot string, appVersion string) {
	loadEnv(envRoot)
	loadVersion(appVersion)

	PREFORK, _ = strconv.ParseBool(os.Getenv("PREFORK"))
	MONGO_URI = os.Getenv("MONGO_URI")
	REDIS_ADDR = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if REDIS_ADDR == "" {
		REDIS_ADDR = "127.0.0.1:6379"
	}
	REDIS_DB, _ = strconv.Atoi(os.Getenv("REDIS_DB"))
	GITHUB_WEBHOOK_SECRET = strings.TrimSpace(os.Getenv("GITHUB_WEBHOOK_SECRET"))
	GITHUB_TOKEN = strings.TrimSpace(os.Getenv("GITHUB_TOKEN"))
	JWT_SECRET = []byte(os.Getenv("JWT_SECRET"))
	ANTHROPIC_API_KEY = strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	OPENAI_API_KEY = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	LLM_PROVIDER = strings.TrimSpace(os.Getenv("LLM_PROVIDER"))
	if LLM_PROVIDER == "" {
		LLM_PROVIDER = "anthropic"
	}
	LLM_MODEL = strings.TrimSpace(os.Getenv("LLM_MODEL"))
	EVAL_TIMEOUT = parseTimeout(os.Getenv("EVAL_TIMEOUT"))
}

func parseTimeout(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 30 * time.Second
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warn().Str("value", raw).Msg("invalid EVAL_TIMEOUT, using default")
		return 30 * time.Second
	}

	return d
}

func loadEnv(envRoot string) {
	if envRoot == "" {
		envRoot = repoRoot()
	}

	path := path.Join(envRoot, ".env")
	if err := godotenv.Overload(path); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("failed to load env file")
	}
}

func loadVersion(appVersion string) {
	if appVersion == "" {
		data, err := os.ReadFile(filepath.Join(repoRoot(), "VERSION"))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to read version file from repo root")
		}

		trimmed := strings.TrimSpace(string(data))
		if trimmed != "" {
			VERSION = trimmed
		} else {
			VERSION = "unknown"
		}
	} else {
		VERSION = appVersion
	}
}

func repoRoot() string {
	_, b, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(b), "../..")
}
