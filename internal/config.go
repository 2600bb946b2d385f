package internal

import (
	"errors"
	"log/slog"
	"path/filepath"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/mdbook-hidebuild/internal/enrich"
	"github.com/starford/mdbook-hidebuild/internal/parser"
)

var extensionRe = regexp.MustCompile(`^\.[A-Za-z0-9]+$`)

// Config represents the application configuration.
type Config struct {
	App          ApplicationConfig  `yaml:"app"`
	Preprocessor PreprocessorConfig `yaml:"preprocessor"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return c.Preprocessor.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// PreprocessorConfig controls how hidden documents are discovered and titled.
//
// DebugSnapshot, when non-empty, is a path relative to the book root where
// the enriched book is written as indented JSON before it is sent to mdBook.
type PreprocessorConfig struct {
	Extension     string `yaml:"extension"`
	FallbackTitle string `yaml:"fallback_title"`
	DebugSnapshot string `yaml:"debug_snapshot"`
}

// Validate validates the preprocessor configuration.
func (c *PreprocessorConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Extension, validation.Required, validation.Match(extensionRe)),
		validation.Field(&c.FallbackTitle, validation.Required),
		validation.Field(&c.DebugSnapshot, validation.By(relativePath)),
	)
}

func relativePath(value any) error {
	s, _ := value.(string)
	if filepath.IsAbs(s) {
		return errors.New("must be relative to the book root")
	}
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Preprocessor: PreprocessorConfig{
			Extension:     enrich.DefaultExtension,
			FallbackTitle: parser.DefaultFallbackTitle,
		},
	}
}
