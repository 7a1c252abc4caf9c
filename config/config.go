package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sagarc03/codecrusher"
)

// DefaultPath is the config file used when --config is not given.
const DefaultPath = "codecrusher.config.json"

// Keys recognized in the config file.
const (
	FileKeyProvider          = "provider"
	FileKeyModel             = "model"
	FileKeyMaxRetries        = "max_retries"
	FileKeyTimeout           = "timeout"
	FileKeyUseCache          = "use_cache"
	FileKeyDefaultTags       = "default_tags"
	FileKeyDefaultPromptText = "default_prompt_text"
)

// fileKeys lists the recognized keys in validation order.
var fileKeys = []string{
	FileKeyProvider,
	FileKeyModel,
	FileKeyMaxRetries,
	FileKeyTimeout,
	FileKeyUseCache,
	FileKeyDefaultTags,
	FileKeyDefaultPromptText,
}

// FileConfig holds the validated contents of a config file.
// A nil field means the key was absent or dropped.
type FileConfig struct {
	Provider          *codecrusher.Provider
	Model             *string
	MaxRetries        *int
	Timeout           *int
	UseCache          *bool
	DefaultTags       []string
	DefaultPromptText *string

	// Extra holds unrecognized keys verbatim.
	Extra map[string]json.RawMessage
}

// ExtraKeys returns the unrecognized keys in sorted order.
func (c FileConfig) ExtraKeys() []string {
	return slices.Sorted(maps.Keys(c.Extra))
}

// Parse decodes and validates config file content.
// It returns ErrConfigMalformed if data is not valid UTF-8 or not a JSON
// object. Recognized keys with invalid values are left out of the result and
// reported as FieldErrors.
func Parse(data []byte) (FileConfig, []*FieldError, error) {
	// encoding/json would replace invalid bytes with U+FFFD.
	if !utf8.Valid(data) {
		return FileConfig{}, nil, fmt.Errorf("%w: invalid UTF-8", ErrConfigMalformed)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return FileConfig{}, nil, fmt.Errorf("%w: %w", ErrConfigMalformed, err)
	}
	if raw == nil {
		return FileConfig{}, nil, fmt.Errorf("%w: top-level value must be an object", ErrConfigMalformed)
	}

	var (
		cfg       FileConfig
		fieldErrs []*FieldError
	)

	reject := func(key string, msg json.RawMessage, reason string) {
		fieldErrs = append(fieldErrs, &FieldError{
			Field:  key,
			Value:  string(bytes.TrimSpace(msg)),
			Reason: reason,
		})
	}

	for _, key := range fileKeys {
		msg, ok := raw[key]
		if !ok {
			continue
		}

		switch key {
		case FileKeyProvider:
			s, ok := decodeString(msg)
			if !ok {
				reject(key, msg, "must be a string")
				continue
			}
			p, err := codecrusher.ParseProvider(s)
			if err != nil {
				reject(key, msg, fmt.Sprintf("must be one of [%s]", strings.Join(codecrusher.ProviderNames(), " ")))
				continue
			}
			cfg.Provider = &p
		case FileKeyModel:
			s, ok := decodeString(msg)
			if !ok {
				reject(key, msg, "must be a string")
				continue
			}
			cfg.Model = &s
		case FileKeyMaxRetries:
			n, ok := decodeInt(msg)
			if !ok {
				reject(key, msg, "must be an integer")
				continue
			}
			cfg.MaxRetries = &n
		case FileKeyTimeout:
			n, ok := decodeInt(msg)
			if !ok {
				reject(key, msg, "must be an integer")
				continue
			}
			cfg.Timeout = &n
		case FileKeyUseCache:
			b, ok := decodeBool(msg)
			if !ok {
				reject(key, msg, "must be a boolean")
				continue
			}
			cfg.UseCache = &b
		case FileKeyDefaultTags:
			tags, ok := decodeStrings(msg)
			if !ok {
				reject(key, msg, "must be a list of strings")
				continue
			}
			cfg.DefaultTags = tags
		case FileKeyDefaultPromptText:
			s, ok := decodeString(msg)
			if !ok {
				reject(key, msg, "must be a string")
				continue
			}
			cfg.DefaultPromptText = &s
		}
	}

	for key, msg := range raw {
		if slices.Contains(fileKeys, key) {
			continue
		}
		if cfg.Extra == nil {
			cfg.Extra = make(map[string]json.RawMessage)
		}
		cfg.Extra[key] = msg
	}

	return cfg, fieldErrs, nil
}

// ReadFile reads and parses the config file at path.
// A missing file is reported as ErrConfigNotFound.
func ReadFile(path string) (FileConfig, []*FieldError, error) {
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) //#nosec G304 -- path is user-provided config file
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return FileConfig{}, nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return FileConfig{}, nil, fmt.Errorf("read config file: %w", err)
	}

	cfg, fieldErrs, err := Parse(data)
	if err != nil {
		return FileConfig{}, nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return cfg, fieldErrs, nil
}

// MarshalJSON encodes c in the config file schema.
// Unrecognized keys are written back unchanged.
func (c FileConfig) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+len(fileKeys))
	for k, v := range c.Extra {
		out[k] = v
	}

	if c.Provider != nil {
		out[FileKeyProvider] = string(*c.Provider)
	}
	if c.Model != nil {
		out[FileKeyModel] = *c.Model
	}
	if c.MaxRetries != nil {
		out[FileKeyMaxRetries] = *c.MaxRetries
	}
	if c.Timeout != nil {
		out[FileKeyTimeout] = *c.Timeout
	}
	if c.UseCache != nil {
		out[FileKeyUseCache] = *c.UseCache
	}
	if c.DefaultTags != nil {
		out[FileKeyDefaultTags] = c.DefaultTags
	}
	if c.DefaultPromptText != nil {
		out[FileKeyDefaultPromptText] = *c.DefaultPromptText
	}

	return json.Marshal(out)
}

// Save writes the config to the specified path.
// Creates the parent directory if it doesn't exist.
func (c FileConfig) Save(path string) error {
	cleanPath := filepath.Clean(path)

	dir := filepath.Dir(cleanPath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(cleanPath, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

func isNull(msg json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(msg), []byte("null"))
}

func decodeString(msg json.RawMessage) (string, bool) {
	if isNull(msg) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(msg, &s); err != nil {
		return "", false
	}
	return s, true
}

func decodeBool(msg json.RawMessage) (bool, bool) {
	if isNull(msg) {
		return false, false
	}
	var b bool
	if err := json.Unmarshal(msg, &b); err != nil {
		return false, false
	}
	return b, true
}

// decodeInt accepts integer literals only. 3.0 and 1e2 are rejected.
func decodeInt(msg json.RawMessage) (int, bool) {
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, false
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(num.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

func decodeStrings(msg json.RawMessage) ([]string, bool) {
	if isNull(msg) {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(msg, &items); err != nil {
		return nil, false
	}

	tags := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := decodeString(item)
		if !ok {
			return nil, false
		}
		tags = append(tags, s)
	}
	return tags, true
}
