package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/starford/blogview/internal/models"
	"github.com/starford/blogview/internal/query"
	"github.com/starford/blogview/internal/view"
)

// Config represents the application configuration.
type Config struct {
	App   ApplicationConfig `yaml:"app"`
	Index IndexConfig       `yaml:"index"`
	Site  SiteConfig        `yaml:"site"`
	List  ListConfig        `yaml:"list"`
	Tags  TagsConfig        `yaml:"tags"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.Index.Validate(); err != nil {
		return fmt.Errorf("index: %w", err)
	}
	if err := c.Site.Validate(); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	if err := c.List.Validate(); err != nil {
		return fmt.Errorf("list: %w", err)
	}
	if err := c.Tags.Validate(); err != nil {
		return fmt.Errorf("tags: %w", err)
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// IndexConfig says where the content index lives. Exactly one of URL and
// Path is set: URL is a site origin or a direct .json URL, Path a local file.
type IndexConfig struct {
	URL     string        `yaml:"url"`
	Path    string        `yaml:"path"`
	Timeout time.Duration `yaml:"timeout"`
}

// Validate validates the index configuration.
func (c *IndexConfig) Validate() error {
	if (c.URL == "") == (c.Path == "") {
		return errors.New("exactly one of url and path must be set")
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.URL, is.URL),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// SiteConfig describes the site the blog is part of.
type SiteConfig struct {
	URL          string `yaml:"url"`
	BasePath     string `yaml:"base_path"`
	DefaultImage string `yaml:"default_image"`
	Template     string `yaml:"template"`
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.URL, is.URL),
		validation.Field(&c.BasePath, validation.Required),
		validation.Field(&c.Template, validation.Required),
	)
}

// ListConfig holds the listing block defaults.
type ListConfig struct {
	Limit      int    `yaml:"limit"`
	Category   string `yaml:"category"`
	Tag        string `yaml:"tag"`
	Pagination bool   `yaml:"pagination"`
	TagMatch   string `yaml:"tag_match"`
}

// Validate validates the list configuration.
func (c *ListConfig) Validate() error {
	if c.TagMatch == "" {
		c.TagMatch = query.TagMatchSubstring.String()
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Limit, validation.Required, validation.Min(1)),
		validation.Field(&c.TagMatch, validation.In(query.TagMatchSubstring.String(), query.TagMatchToken.String())),
	)
}

// TagsConfig holds the tag cloud block defaults.
type TagsConfig struct {
	Max       int    `yaml:"max"`
	Step      int    `yaml:"step"`
	ShowCount bool   `yaml:"show_count"`
	Title     string `yaml:"title"`
	Layout    string `yaml:"layout"`
}

// Validate validates the tags configuration.
func (c *TagsConfig) Validate() error {
	if c.Layout == "" {
		c.Layout = view.LayoutCloud
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Max, validation.Required, validation.Min(1)),
		validation.Field(&c.Step, validation.Required, validation.Min(1)),
		validation.Field(&c.Layout, validation.In(view.LayoutCloud, view.LayoutList)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
// The index location has no default.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Index: IndexConfig{
			Timeout: 10 * time.Second,
		},
		Site: SiteConfig{
			BasePath:     models.DefaultListingPath,
			DefaultImage: models.DefaultImage,
			Template:     models.BlogPostTemplate,
		},
		List: ListConfig{
			Limit:      10,
			Pagination: true,
			TagMatch:   query.TagMatchSubstring.String(),
		},
		Tags: TagsConfig{
			Max:       20,
			Step:      10,
			ShowCount: true,
			Title:     "Popular Tags",
			Layout:    view.LayoutCloud,
		},
	}
}
