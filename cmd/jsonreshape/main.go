package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/davecgh/go-spew/spew"

	"github.com/sanity-io/reshape"
	"github.com/sanity-io/reshape/pkg/reshapemsgpack"
	"github.com/sanity-io/reshape/pkg/ruleset"
)

type config struct {
	format  string
	verbose bool
	dump    bool
}

func readDoc(format string, r io.Reader) (interface{}, error) {
	switch format {
	case "json":
		var doc interface{}
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, err
		}
		return doc, nil
	case "msgpack":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return reshapemsgpack.Unmarshal(data)
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

func writeDoc(format string, w io.Writer, doc interface{}) error {
	if format == "msgpack" {
		data, err := reshapemsgpack.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	encoder := json.NewEncoder(w)
	return encoder.Encode(doc)
}

func run(ctx context.Context, cfg config, rulesPath, inputPath string, stdout, stderr io.Writer) error {
	set, err := ruleset.Load(rulesPath)
	if err != nil {
		return err
	}

	input, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer input.Close()

	doc, err := readDoc(cfg.format, input)
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	options := set.Options().WithReporter(reshape.NewSlogReporter(logger))

	result, err := options.ReshapeAsync(ctx, doc, set.Rules().Async())
	if err != nil {
		return err
	}

	if cfg.dump {
		spew.Fdump(stderr, result)
	}

	return writeDoc(cfg.format, stdout, result)
}

func main() {
	var cfg config

	flags := flag.NewFlagSet("jsonreshape", flag.ExitOnError)
	flags.StringVar(&cfg.format, "format", "json", "document format: json or msgpack")
	flags.BoolVar(&cfg.verbose, "v", false, "log every applied rule")
	flags.BoolVar(&cfg.dump, "dump", false, "dump the Go value of the result to stderr")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: jsonreshape [flags] rules.yaml input\n")
		flags.PrintDefaults()
	}
	_ = flags.Parse(os.Args[1:])

	if flags.NArg() != 2 {
		flags.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, cfg, flags.Arg(0), flags.Arg(1), os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		stop()
		os.Exit(1)
	}
}
