// Package appconfig maps environment settings onto the normalizer run configuration
package appconfig

import (
	"errors"
	"log"
	"strings"

	"github.com/UnendingLoop/FaviconNormalizer/internal/model"
	"github.com/rs/zerolog"
)

const (
	KeyDir         = "FAVICON_DIR"
	KeyVariant     = "FAVICON_VARIANT"
	KeyJobs        = "FAVICON_JOBS"
	KeyCompression = "PNG_COMPRESSION"
	KeyLogLevel    = "LOG_LEVEL"
	KeyEnvFile     = "ENV_FILE"
)

const (
	DefaultDir      = "./public/images"
	DefaultLogLevel = "info"
	DefaultEnvFile  = "./.env"
)

// Getter - то, что нужно от конфига; *config.Config из wbf подходит
type Getter interface {
	GetString(key string) string
}

// Load collects every setting. Only a bad variant or job list is an error (joined via errors.Join);
// unknown PNG_COMPRESSION and LOG_LEVEL values are logged and replaced by their defaults.
func Load(cfg Getter) (*model.RunConfig, string, error) {
	runCfg := &model.RunConfig{
		BaseDir:     DefaultDir,
		Variant:     model.VariantFill,
		Jobs:        model.DefaultJobs(),
		Compression: model.CompressionBest,
	}
	var errs []error

	if dir := strings.TrimSpace(cfg.GetString(KeyDir)); dir != "" {
		runCfg.BaseDir = dir
	}

	variant, err := model.ParseVariant(cfg.GetString(KeyVariant))
	if err != nil {
		errs = append(errs, err)
	} else {
		runCfg.Variant = variant
	}

	if raw := cfg.GetString(KeyJobs); strings.TrimSpace(raw) != "" {
		jobs, err := model.ParseJobs(raw)
		if err != nil {
			errs = append(errs, err)
		} else {
			runCfg.Jobs = jobs
		}
	}

	if c := strings.ToLower(strings.TrimSpace(cfg.GetString(KeyCompression))); c != "" {
		if !model.CompressionMap[c] {
			log.Printf("Unknown %s value %q, using default %q", KeyCompression, c, model.CompressionBest)
		} else {
			runCfg.Compression = c
		}
	}

	level := DefaultLogLevel
	if l := strings.ToLower(strings.TrimSpace(cfg.GetString(KeyLogLevel))); l != "" {
		if _, err := zerolog.ParseLevel(l); err != nil {
			log.Printf("Unknown %s value %q (%v), using default %q", KeyLogLevel, l, err, DefaultLogLevel)
		} else {
			level = l
		}
	}

	return runCfg, level, errors.Join(errs...)
}

// EnvFile - путь к .env, который грузим только если он существует
func EnvFile(cfg Getter) string {
	if f := strings.TrimSpace(cfg.GetString(KeyEnvFile)); f != "" {
		return f
	}
	return DefaultEnvFile
}
