// mdbcreate reads an edited structured text dump of the music database,
// re-encodes it, and writes an encrypted mdbe.bin for GFDM V8.
//
// Usage:
//
//	mdbcreate -i mdb.yaml -o path/to/mdbe.bin [-F yaml|json|msgpack] [-f] [-v|-d]
//
// The format is inferred from the input extension unless -F is given. XML
// dumps are export only and cannot be rebuilt from.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/573dev/pakdump/mdb"
	mdbjson "github.com/573dev/pakdump/mdb/json"
	mdbmsgpack "github.com/573dev/pakdump/mdb/msgpack"
	mdbyaml "github.com/573dev/pakdump/mdb/yaml"
)

func main() {
	var (
		input   string
		output  string
		format  string
		force   bool
		verbose bool
		debug   bool
	)
	flag.StringVarP(&input, "input", "i", "", "path to structured music DB file (required)")
	flag.StringVarP(&output, "output", "o", "", "path to output mdbe.bin file (required)")
	flag.StringVarP(&format, "format", "F", "", "input format: yaml, json, or msgpack (default: from extension)")
	flag.BoolVarP(&force, "force", "f", false, "overwrite the output file even if it already exists")
	flag.BoolVarP(&verbose, "verbose", "v", false, "set log level to INFO")
	flag.BoolVarP(&debug, "debug", "d", false, "set log level to DEBUG")
	flag.Parse()

	logger := newLogger(verbose, debug)

	if err := run(input, output, format, force, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(input, output, format string, force bool, logger *slog.Logger) error {
	if input == "" {
		return errors.New("-i/--input is required")
	}
	if output == "" {
		return errors.New("-o/--output is required")
	}

	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(input), ".")
	}
	codec, err := codecFor(format)
	if err != nil {
		return err
	}

	text, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	logger.Info("read structured dump", "path", input, "bytes", len(text))

	pipe, err := mdb.NewPipeline(mdb.V8, codec)
	if err != nil {
		return err
	}
	raw, err := pipe.Build(context.Background(), text)
	if err != nil {
		return err
	}

	if _, err := os.Stat(output); err == nil && !force {
		return fmt.Errorf("%s exists; use -f to overwrite it", output)
	}

	if err := os.WriteFile(output, raw, 0o644); err != nil {
		return err
	}
	fmt.Printf("Writing: %s\n", output)
	return nil
}

// codecFor maps a format name to its codec. XML is deliberately absent:
// the XML dump cannot be imported.
func codecFor(format string) (mdb.Codec, error) {
	switch format {
	case "yaml", "yml":
		return mdbyaml.New(), nil
	case "json":
		return mdbjson.New(), nil
	case "msgpack":
		return mdbmsgpack.New(), nil
	}
	return nil, fmt.Errorf("unknown input format %q", format)
}

// newLogger builds the stderr logger. The default level only surfaces errors.
func newLogger(verbose, debug bool) *slog.Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelInfo
	}
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
