package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/anisan-cli/anicat/icon"
	"github.com/anisan-cli/anicat/key"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Default maps every registered key to its field.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to environment variables, in registration order.
var EnvExposed []string

// Keys returns the registered keys sorted alphabetically.
func Keys() []string {
	keys := lo.Keys(Default)
	slices.Sort(keys)
	return keys
}

func register(k string, v any, desc string, check func(any) error) {
	if _, exists := Default[k]; exists {
		panic("duplicate config key: " + k)
	}
	Default[k] = Field{Key: k, Value: v, Description: desc, check: check}
	EnvExposed = append(EnvExposed, k)
}

func nonNegative(v any) error {
	if v.(int) < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func between(from, to int) func(any) error {
	return func(v any) error {
		if n := v.(int); n < from || n > to {
			return fmt.Errorf("must be between %d and %d", from, to)
		}
		return nil
	}
}

func oneOf(options ...string) func(any) error {
	return func(v any) error {
		if !slices.Contains(options, v.(string)) {
			return fmt.Errorf("must be one of %v", options)
		}
		return nil
	}
}

func logLevel(v any) error {
	_, err := logrus.ParseLevel(v.(string))
	return err
}

func init() {
	register(key.DownloaderRetryLimit, 0, "How many times a rate-limited (429) request is retried.\n0 retries forever, waiting 4 to 8 seconds between attempts", nonNegative)
	register(key.DownloaderTLSFingerprint, false, "Send plain HTTP requests with a Chrome TLS fingerprint", nil)
	register(key.DownloaderHeadless, true, "Use a headless browser for sites that require script execution", nil)
	register(key.DownloaderHeadlessBin, "", "Path to the browser binary used for headless downloads.\nEmpty downloads a managed browser on first use", nil)

	register(key.CrawlerParallelism, 0, "Worker pool size for the cache warm-up crawler.\n0 uses the number of available CPUs", nonNegative)

	register(key.RecommendationsLimit, 100, "Maximum number of titles in the top recommendations", between(1, 10_000))
	register(key.RecommendationsCutoff, 80, "Cumulative share of all recommendation votes covered by the top recommendations", between(1, 100))

	register(key.IconsVariant, icon.Plain, "Icons variant.\nnerd requires a patched font", oneOf(icon.AvailableVariants()...))

	register(key.LogsWrite, false, "Write logs to the logs directory", nil)
	register(key.LogsLevel, "info", "Least severe level written.\nOne of panic, fatal, error, warn, info, debug, trace", logLevel)
	register(key.LogsJson, false, "Write logs as JSON lines", nil)

	register(key.CliColored, true, "Colored help output", nil)
	register(key.CliVersionCheck, true, "Check for a newer release when showing help or version", nil)
}
