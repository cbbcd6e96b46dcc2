package internal

import (
	"log/slog"

	"github.com/starford/blogview/internal/contentindex"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	logger *slog.Logger
	source contentindex.Source
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithLogger replaces the JSON logger built from the config.
func WithLogger(logger *slog.Logger) Option {
	return func(a *application) {
		a.logger = logger
	}
}

// WithSource replaces the content index source built from the config.
func WithSource(src contentindex.Source) Option {
	return func(a *application) {
		a.source = src
	}
}
