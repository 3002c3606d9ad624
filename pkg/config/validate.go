package config

import (
	"strings"

	"github.com/arthur-debert/dodist/pkg/errors"
)

// Validate checks a decoded configuration for values that cannot work.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Build.Source) == "" {
		return invalid("build.source", "must not be empty")
	}
	if strings.TrimSpace(cfg.Build.Output) == "" {
		return invalid("build.output", "must not be empty")
	}
	if cfg.Build.Workers < 0 {
		return invalid("build.workers", "must be zero or positive")
	}

	seen := map[string]string{}
	for section, list := range map[string][]string{
		"extensions.javascript": cfg.Extensions.JavaScript,
		"extensions.stylesheet": cfg.Extensions.Stylesheet,
		"extensions.markup":     cfg.Extensions.Markup,
	} {
		for _, ext := range list {
			ext = normalizeExtension(ext)
			if ext == "" {
				continue
			}
			if other, ok := seen[ext]; ok && other != section {
				return errors.Newf(errors.ErrConfigValid, "extension %s is listed in both %s and %s", ext, other, section).
					WithDetail("extension", ext)
			}
			seen[ext] = section
		}
	}

	return cfg.TransformOptions().Validate()
}

func normalizeExtension(ext string) string {
	if ext == "" || ext[0] == '.' {
		return ext
	}
	return "." + ext
}

func invalid(key, reason string) error {
	return errors.Newf(errors.ErrConfigValid, "%s %s", key, reason).WithDetail("key", key)
}
