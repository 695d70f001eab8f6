package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/mkowalczyk/htmldown/converter"
)

// Config mirrors the conversion options in a YAML file, so repeated
// invocations don't have to re-state flags.
//
//	absolute: true
//	baseURI: https://example.com/docs/
//	inline: false
//	maxDepth: 512
type Config struct {
	converter.Options `yaml:",inline"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// resolveOptions layers explicitly set flags over config file values.
func resolveOptions(cfg Config, flags cliFlags, changed func(string) bool) converter.Options {
	opts := cfg.Options

	if changed("absolute") {
		opts.Absolute = flags.absolute
	}
	if changed("inline") {
		opts.Inline = flags.inline
	}
	if changed("base-uri") {
		opts.BaseURI = flags.baseURI
	}
	if changed("max-depth") {
		opts.MaxDepth = flags.maxDepth
	}
	return opts
}
