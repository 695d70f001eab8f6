// Command htmldown converts an HTML document to Markdown.
//
//	htmldown [flags] [input.html]
//
// With no input file the document is read from stdin.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/mkowalczyk/htmldown/browser"
	"github.com/mkowalczyk/htmldown/converter"
	"github.com/mkowalczyk/htmldown/plugins"
)

type cliFlags struct {
	absolute   bool
	inline     bool
	baseURI    string
	maxDepth   int
	configPath string
	output     string
}

func main() {
	var flags cliFlags

	pflag.BoolVar(&flags.absolute, "absolute", false, "Emit absolute URLs for links and images")
	pflag.BoolVar(&flags.inline, "inline", false, "Emit inline-style links instead of reference-style")
	pflag.StringVar(&flags.baseURI, "base-uri", "", "Base URI for resolving relative URLs")
	pflag.IntVar(&flags.maxDepth, "max-depth", 0, "Abort on element nesting deeper than this (0 = unbounded)")
	pflag.StringVar(&flags.configPath, "config", "", "Path to a YAML options file")
	pflag.StringVarP(&flags.output, "output", "o", "", "Write Markdown to a file instead of stdout")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: htmldown [flags] [input.html]\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if err := run(flags, pflag.Args()); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "htmldown: %v\n", err)
		os.Exit(1)
	}
}

func run(flags cliFlags, args []string) error {
	var cfg Config
	if flags.configPath != "" {
		loaded, err := loadConfig(flags.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	input, err := readInput(args)
	if err != nil {
		return err
	}

	conv, err := newConverter(resolveOptions(cfg, flags, pflag.CommandLine.Changed))
	if err != nil {
		return err
	}

	markdown, err := conv.Convert(input)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	return writeOutput(flags.output, markdown)
}

func newConverter(opts converter.Options) (*converter.Converter, error) {
	conv, err := converter.New(opts)
	if err != nil {
		return nil, err
	}
	if err := conv.RegisterPreset(plugins.Default()); err != nil {
		return nil, err
	}
	if err := conv.Use(browser.Service{BaseURI: opts.BaseURI}); err != nil {
		return nil, err
	}
	return conv, nil
}

func readInput(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

func writeOutput(path, markdown string) error {
	if markdown != "" {
		markdown += "\n"
	}
	if path == "" {
		_, err := io.WriteString(os.Stdout, markdown)
		return err
	}
	if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
