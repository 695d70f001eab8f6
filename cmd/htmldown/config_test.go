package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkowalczyk/htmldown/converter"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "htmldown.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `
absolute: true
baseURI: https://example.com/docs/
inline: true
maxDepth: 64
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Absolute)
	assert.Equal(t, "https://example.com/docs/", cfg.BaseURI)
	assert.True(t, cfg.Inline)
	assert.Equal(t, 64, cfg.MaxDepth)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeTempConfig(t, "absolute: [not a bool")
	_, err := loadConfig(path)
	assert.Error(t, err)
}

func TestResolveOptions(t *testing.T) {
	cfg := Config{Options: converter.Options{
		Absolute: true,
		BaseURI:  "https://file.example/",
		MaxDepth: 10,
	}}

	flags := cliFlags{
		absolute: false,
		inline:   true,
		baseURI:  "https://flag.example/",
		maxDepth: 0,
	}

	t.Run("file values win when flags untouched", func(t *testing.T) {
		opts := resolveOptions(cfg, flags, func(string) bool { return false })
		assert.Equal(t, cfg.Options, opts)
	})

	t.Run("explicit flags override file values", func(t *testing.T) {
		set := map[string]bool{"inline": true, "base-uri": true}
		opts := resolveOptions(cfg, flags, func(name string) bool { return set[name] })

		assert.True(t, opts.Inline)
		assert.Equal(t, "https://flag.example/", opts.BaseURI)
		assert.True(t, opts.Absolute, "untouched flag keeps file value")
		assert.Equal(t, 10, opts.MaxDepth)
	})

	t.Run("explicit zero flag clears file value", func(t *testing.T) {
		set := map[string]bool{"absolute": true, "max-depth": true}
		opts := resolveOptions(cfg, flags, func(name string) bool { return set[name] })

		assert.False(t, opts.Absolute)
		assert.Equal(t, 0, opts.MaxDepth)
	})
}
