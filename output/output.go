package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sagarc03/codecrusher"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// ErrUnknownFormat is returned by NewFormatter for an unsupported format.
var ErrUnknownFormat = errors.New("unknown output format")

// Header is printed before the configuration in text output.
const Header = "CodeCrusher is ready to run with the following configuration:"

// Formatter formats a resolved configuration for output.
type Formatter interface {
	FormatConfig(w io.Writer, cfg codecrusher.Config) error
}

// NewFormatter returns the formatter for format.
// quiet only affects text output.
func NewFormatter(format string, quiet bool) (Formatter, error) {
	switch format {
	case FormatText, "":
		return &TextFormatter{Quiet: quiet}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("%w: %s (valid formats: %s)", ErrUnknownFormat, format, strings.Join(Formats, ", "))
	}
}

// TextFormatter outputs "key: value" lines.
type TextFormatter struct {
	Quiet bool
}

// FormatConfig writes cfg as indented key: value lines.
func (f *TextFormatter) FormatConfig(w io.Writer, cfg codecrusher.Config) error {
	if !f.Quiet {
		if _, err := fmt.Fprintln(w, Header); err != nil {
			return err
		}
	}
	for _, field := range cfg.Fields() {
		if _, err := fmt.Fprintf(w, "  %s: %s\n", field.Key, formatValue(field.Value)); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

// FormatConfig writes cfg as an indented JSON object.
func (f *JSONFormatter) FormatConfig(w io.Writer, cfg codecrusher.Config) error {
	return writeJSON(w, newDocument(cfg))
}

// YAMLFormatter outputs YAML.
type YAMLFormatter struct{}

// FormatConfig writes cfg as a YAML mapping.
func (f *YAMLFormatter) FormatConfig(w io.Writer, cfg codecrusher.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(cfg)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// document fixes the key order for JSON and YAML output.
// Pointers keep explicit zero values and empty tag lists.
type document struct {
	Provider   *string   `json:"provider,omitempty" yaml:"provider,omitempty"`
	Model      *string   `json:"model,omitempty" yaml:"model,omitempty"`
	MaxRetries *int      `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
	Timeout    *int      `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	UseCache   *bool     `json:"use_cache,omitempty" yaml:"use_cache,omitempty"`
	Prompt     *string   `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Tags       *[]string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

func newDocument(cfg codecrusher.Config) document {
	doc := document{
		Model:      cfg.Model,
		MaxRetries: cfg.MaxRetries,
		Timeout:    cfg.Timeout,
		UseCache:   cfg.UseCache,
		Prompt:     cfg.Prompt,
	}
	if cfg.Provider != nil {
		doc.Provider = codecrusher.Ptr(string(*cfg.Provider))
	}
	if cfg.Tags != nil {
		doc.Tags = &cfg.Tags
	}
	return doc
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatValue renders a field value for text output.
func formatValue(v any) string {
	switch val := v.(type) {
	case []string:
		return "[" + strings.Join(val, ", ") + "]"
	default:
		return fmt.Sprint(val)
	}
}
