package config_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/codecrusher"
	"github.com/sagarc03/codecrusher/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "codecrusher.config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestResolver() (*config.Resolver, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return config.NewResolver(logger), &buf
}

func TestParse_AllFields(t *testing.T) {
	data := []byte(`{
  "provider": "mistral",
  "model": "mistral-7b",
  "max_retries": 3,
  "timeout": 30,
  "use_cache": true,
  "default_tags": ["api", "backend"],
  "default_prompt_text": "Refactor this function"
}`)

	cfg, fieldErrs, err := config.Parse(data)
	require.NoError(t, err)
	assert.Empty(t, fieldErrs)

	require.NotNil(t, cfg.Provider)
	assert.Equal(t, codecrusher.ProviderMistral, *cfg.Provider)
	require.NotNil(t, cfg.Model)
	assert.Equal(t, "mistral-7b", *cfg.Model)
	require.NotNil(t, cfg.MaxRetries)
	assert.Equal(t, 3, *cfg.MaxRetries)
	require.NotNil(t, cfg.Timeout)
	assert.Equal(t, 30, *cfg.Timeout)
	require.NotNil(t, cfg.UseCache)
	assert.True(t, *cfg.UseCache)
	assert.Equal(t, []string{"api", "backend"}, cfg.DefaultTags)
	require.NotNil(t, cfg.DefaultPromptText)
	assert.Equal(t, "Refactor this function", *cfg.DefaultPromptText)
	assert.Empty(t, cfg.Extra)
}

func TestParse_InvalidFieldsDropped(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
		check   func(t *testing.T, cfg config.FileConfig)
	}{
		{
			name:    "unknown provider",
			content: `{"provider": "anthropic"}`,
			field:   "provider",
			check:   func(t *testing.T, cfg config.FileConfig) { assert.Nil(t, cfg.Provider) },
		},
		{
			name:    "uppercase provider",
			content: `{"provider": "OpenAI"}`,
			field:   "provider",
			check:   func(t *testing.T, cfg config.FileConfig) { assert.Nil(t, cfg.Provider) },
		},
		{
			name:    "provider not a string",
			content: `{"provider": 1}`,
			field:   "provider",
			check:   func(t *testing.T, cfg config.FileConfig) { assert.Nil(t, cfg.Provider) },
		},
		{
			name:    "max_retries as string",
			content: `{"max_retries": "3"}`,
			field:   "max_retries",
			check:   func(t *testing.T, cfg config.FileConfig) { assert.Nil(t, cfg.MaxRetries) },
		},
		{
			name:    "max_retries as float",
			content: `{"max_retries": 3.5}`,
			field:   "max_retries",
			check:   func(t *testing.T, cfg config.FileConfig) { assert.Nil(t, cfg.MaxRetries) },
		},
		{
			name:    "max_retries as whole float",
			content: `{"max_retries": 3.0}`,
			field:   "max_retries",
			check:   func(t *testing.T, cfg config.FileConfig) { assert.Nil(t, cfg.MaxRetries) },
		},
		{
			name:    "timeout as bool",
			content: `{"timeout": true}`,
			field:   "timeout",
			check:   func(t *testing.T, cfg config.FileConfig) { assert.Nil(t, cfg.Timeout) },
		},
		{
			name:    "timeout as exponent",
			content: `{"timeout": 1e2}`,
			field:   "timeout",
			check:   func(t *testing.T, cfg config.FileConfig) { assert.Nil(t, cfg.Timeout) },
		},
		{
			name:    "timeout null",
			content: `{"timeout": null}`,
			field:   "timeout",
			check:   func(t *testing.T, cfg config.FileConfig) { assert.Nil(t, cfg.Timeout) },
		},
		{
			name:    "use_cache as string",
			content: `{"use_cache": "yes"}`,
			field:   "use_cache",
			check:   func(t *testing.T, cfg config.FileConfig) { assert.Nil(t, cfg.UseCache) },
		},
		{
			name:    "use_cache as number",
			content: `{"use_cache": 1}`,
			field:   "use_cache",
			check:   func(t *testing.T, cfg config.FileConfig) { assert.Nil(t, cfg.UseCache) },
		},
		{
			name:    "default_tags as string",
			content: `{"default_tags": "a,b"}`,
			field:   "default_tags",
			check:   func(t *testing.T, cfg config.FileConfig) { assert.Nil(t, cfg.DefaultTags) },
		},
		{
			name:    "default_tags with non-string item",
			content: `{"default_tags": ["a", 2]}`,
			field:   "default_tags",
			check:   func(t *testing.T, cfg config.FileConfig) { assert.Nil(t, cfg.DefaultTags) },
		},
		{
			name:    "default_tags with null item",
			content: `{"default_tags": ["a", null]}`,
			field:   "default_tags",
			check:   func(t *testing.T, cfg config.FileConfig) { assert.Nil(t, cfg.DefaultTags) },
		},
		{
			name:    "model not a string",
			content: `{"model": 7}`,
			field:   "model",
			check:   func(t *testing.T, cfg config.FileConfig) { assert.Nil(t, cfg.Model) },
		},
		{
			name:    "default_prompt_text not a string",
			content: `{"default_prompt_text": ["hi"]}`,
			field:   "default_prompt_text",
			check:   func(t *testing.T, cfg config.FileConfig) { assert.Nil(t, cfg.DefaultPromptText) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, fieldErrs, err := config.Parse([]byte(tt.content))
			require.NoError(t, err)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.field, fieldErrs[0].Field)
			assert.ErrorIs(t, fieldErrs[0], config.ErrInvalidField)
			tt.check(t, cfg)
		})
	}
}

func TestParse_ValidFieldsSurviveInvalidNeighbours(t *testing.T) {
	cfg, fieldErrs, err := config.Parse([]byte(`{"provider": "bogus", "timeout": "x", "model": "gpt-4-turbo", "max_retries": -1}`))
	require.NoError(t, err)
	require.Len(t, fieldErrs, 2)
	assert.Equal(t, "provider", fieldErrs[0].Field)
	assert.Equal(t, `"bogus"`, fieldErrs[0].Value)
	assert.Equal(t, "timeout", fieldErrs[1].Field)

	assert.Nil(t, cfg.Provider)
	assert.Nil(t, cfg.Timeout)
	require.NotNil(t, cfg.Model)
	assert.Equal(t, "gpt-4-turbo", *cfg.Model)
	require.NotNil(t, cfg.MaxRetries)
	assert.Equal(t, -1, *cfg.MaxRetries)
}

func TestParse_EmptyTagList(t *testing.T) {
	cfg, fieldErrs, err := config.Parse([]byte(`{"default_tags": []}`))
	require.NoError(t, err)
	assert.Empty(t, fieldErrs)
	assert.NotNil(t, cfg.DefaultTags)
	assert.Empty(t, cfg.DefaultTags)
}

func TestParse_UnknownKeysPassThrough(t *testing.T) {
	cfg, fieldErrs, err := config.Parse([]byte(`{"theme": "dark", "Provider": 42, "nested": {"a": [1, 2]}}`))
	require.NoError(t, err)
	assert.Empty(t, fieldErrs)

	assert.Equal(t, []string{"Provider", "nested", "theme"}, cfg.ExtraKeys())
	assert.JSONEq(t, `"dark"`, string(cfg.Extra["theme"]))
	assert.JSONEq(t, `{"a": [1, 2]}`, string(cfg.Extra["nested"]))
	assert.Nil(t, cfg.Provider)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "truncated object", content: `{"provider": "mistral"`},
		{name: "trailing data", content: `{"provider": "mistral"} {}`},
		{name: "yaml", content: "provider: mistral\n"},
		{name: "empty", content: ""},
		{name: "top-level array", content: `["mistral"]`},
		{name: "top-level null", content: `null`},
		{name: "invalid utf-8 in string", content: "{\"model\": \"a\xffb\"}"},
		{name: "invalid utf-8 in unknown key", content: "{\"model\": \"m\", \"note\": \"\xc3\x28\"}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, fieldErrs, err := config.Parse([]byte(tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrConfigMalformed)
			assert.Empty(t, fieldErrs)
			assert.Equal(t, config.FileConfig{}, cfg)
		})
	}
}

func TestReadFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, _, err := config.ReadFile(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrConfigNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		_, _, err := config.ReadFile(t.TempDir())
		require.Error(t, err)
		assert.NotErrorIs(t, err, config.ErrConfigNotFound)
		assert.NotErrorIs(t, err, config.ErrConfigMalformed)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := writeConfig(t, `{not json`)
		_, _, err := config.ReadFile(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrConfigMalformed)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("valid file", func(t *testing.T) {
		path := writeConfig(t, `{"model": "gpt-4-turbo"}`)
		cfg, fieldErrs, err := config.ReadFile(path)
		require.NoError(t, err)
		assert.Empty(t, fieldErrs)
		require.NotNil(t, cfg.Model)
		assert.Equal(t, "gpt-4-turbo", *cfg.Model)
	})
}

func TestResolver_LoadFile(t *testing.T) {
	t.Run("missing file warns and returns empty config", func(t *testing.T) {
		r, logs := newTestResolver()
		path := filepath.Join(t.TempDir(), "missing.json")

		cfg := r.LoadFile(path)

		assert.Equal(t, config.FileConfig{}, cfg)
		assert.Contains(t, logs.String(), "level=WARN")
		assert.Contains(t, logs.String(), "config file not found")
		assert.Contains(t, logs.String(), path)
	})

	t.Run("malformed file logs error and returns empty config", func(t *testing.T) {
		r, logs := newTestResolver()
		path := writeConfig(t, `{"provider": `)

		cfg := r.LoadFile(path)

		assert.Equal(t, config.FileConfig{}, cfg)
		assert.Contains(t, logs.String(), "level=ERROR")
		assert.Contains(t, logs.String(), "error parsing config file")
	})

	t.Run("invalid utf-8 logs error and returns empty config", func(t *testing.T) {
		r, logs := newTestResolver()
		path := writeConfig(t, "{\"model\": \"a\xffb\", \"timeout\": 5}")

		cfg := r.LoadFile(path)

		assert.Equal(t, config.FileConfig{}, cfg)
		assert.Contains(t, logs.String(), "level=ERROR")
		assert.Contains(t, logs.String(), "error parsing config file")
		assert.Contains(t, logs.String(), "invalid UTF-8")
	})

	t.Run("unreadable path logs error", func(t *testing.T) {
		r, logs := newTestResolver()

		cfg := r.LoadFile(t.TempDir())

		assert.Equal(t, config.FileConfig{}, cfg)
		assert.Contains(t, logs.String(), "error loading config file")
	})

	t.Run("invalid field warns with field and value", func(t *testing.T) {
		r, logs := newTestResolver()
		path := writeConfig(t, `{"provider": "gemini", "model": "m"}`)

		cfg := r.LoadFile(path)

		assert.Nil(t, cfg.Provider)
		require.NotNil(t, cfg.Model)
		assert.Contains(t, logs.String(), "invalid config field")
		assert.Contains(t, logs.String(), "field=provider")
		assert.Contains(t, logs.String(), "gemini")
		assert.Contains(t, logs.String(), "loaded configuration")
	})

	t.Run("unknown keys logged at debug", func(t *testing.T) {
		r, logs := newTestResolver()
		path := writeConfig(t, `{"theme": "dark"}`)

		cfg := r.LoadFile(path)

		assert.Equal(t, []string{"theme"}, cfg.ExtraKeys())
		assert.Contains(t, logs.String(), "passing through unknown config keys")
	})

	t.Run("nil logger uses default", func(t *testing.T) {
		r := config.NewResolver(nil)
		cfg := r.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
		assert.Equal(t, config.FileConfig{}, cfg)
	})
}

func TestResolver_Resolve(t *testing.T) {
	t.Run("missing file and no flags yields empty config", func(t *testing.T) {
		r, _ := newTestResolver()
		cfg := r.Resolve(config.Args{ConfigPath: filepath.Join(t.TempDir(), "missing.json")})
		assert.True(t, cfg.IsEmpty())
	})

	t.Run("file prompt is renamed", func(t *testing.T) {
		r, logs := newTestResolver()
		path := writeConfig(t, `{"default_prompt_text": "hello"}`)

		cfg := r.Resolve(config.Args{ConfigPath: path})

		require.NotNil(t, cfg.Prompt)
		assert.Equal(t, "hello", *cfg.Prompt)
		assert.Contains(t, logs.String(), "final configuration")
		assert.Contains(t, logs.String(), "key=prompt")
	})

	t.Run("resolving twice is identical", func(t *testing.T) {
		r, _ := newTestResolver()
		path := writeConfig(t, `{"provider": "openai", "default_tags": ["a"], "use_cache": true}`)
		args := config.Args{ConfigPath: path, Timeout: codecrusher.Ptr(10), NoCache: true}

		first := r.Resolve(args)
		second := r.Resolve(args)

		assert.Equal(t, first, second)
		assert.Equal(t, first.Fields(), second.Fields())
	})
}

func TestFileConfig_Save(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "codecrusher.config.json")
		orig := config.FileConfig{
			Provider:          codecrusher.Ptr(codecrusher.ProviderOpenAI),
			Model:             codecrusher.Ptr("gpt-4-turbo"),
			MaxRetries:        codecrusher.Ptr(0),
			Timeout:           codecrusher.Ptr(60),
			UseCache:          codecrusher.Ptr(false),
			DefaultTags:       []string{"x", "y"},
			DefaultPromptText: codecrusher.Ptr("write tests"),
			Extra:             map[string]json.RawMessage{"theme": json.RawMessage(`"dark"`)},
		}

		require.NoError(t, orig.Save(path))

		loaded, fieldErrs, err := config.ReadFile(path)
		require.NoError(t, err)
		assert.Empty(t, fieldErrs)
		assert.Equal(t, orig.Provider, loaded.Provider)
		assert.Equal(t, orig.Model, loaded.Model)
		assert.Equal(t, orig.MaxRetries, loaded.MaxRetries)
		assert.Equal(t, orig.Timeout, loaded.Timeout)
		assert.Equal(t, orig.UseCache, loaded.UseCache)
		assert.Equal(t, orig.DefaultTags, loaded.DefaultTags)
		assert.Equal(t, orig.DefaultPromptText, loaded.DefaultPromptText)
		assert.JSONEq(t, `"dark"`, string(loaded.Extra["theme"]))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("unset fields are omitted", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "codecrusher.config.json")
		require.NoError(t, config.FileConfig{Model: codecrusher.Ptr("m")}.Save(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"model\": \"m\"\n}\n", string(data))
	})
}
