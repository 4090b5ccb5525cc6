// mdbdump decrypts the music database from a GFDM V8 mdbe.bin file and
// writes it out in a structured text format for editing.
//
// Usage:
//
//	mdbdump -i path/to/mdbe.bin [-o outdir] [-F yaml|json|xml|msgpack] [-f] [-v|-d]
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/573dev/pakdump/mdb"
	mdbjson "github.com/573dev/pakdump/mdb/json"
	mdbmsgpack "github.com/573dev/pakdump/mdb/msgpack"
	mdbxml "github.com/573dev/pakdump/mdb/xml"
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
	flag.StringVarP(&input, "input", "i", "", "path to mdbe.bin file (required)")
	flag.StringVarP(&output, "output", "o", ".", "path to output directory")
	flag.StringVarP(&format, "format", "F", "yaml", "output format: yaml, json, xml, or msgpack")
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
	if filepath.Base(input) != "mdbe.bin" {
		return fmt.Errorf("input must be the mdbe.bin file, got %q", filepath.Base(input))
	}

	codec, ext, err := codecFor(format)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	logger.Info("read database", "path", input, "bytes", len(raw))

	pipe, err := mdb.NewPipeline(mdb.V8, codec)
	if err != nil {
		return err
	}
	text, err := pipe.Dump(context.Background(), raw)
	if err != nil {
		return err
	}

	outPath := filepath.Join(output, "mdb."+ext)
	if _, err := os.Stat(outPath); err == nil && !force {
		return fmt.Errorf("%s exists; use -f to overwrite it", outPath)
	}

	if err := os.WriteFile(outPath, text, 0o644); err != nil {
		return err
	}
	fmt.Printf("Writing: %s\n", outPath)
	return nil
}

// codecFor maps a format name to its codec and file extension.
func codecFor(format string) (mdb.Codec, string, error) {
	switch format {
	case "yaml":
		return mdbyaml.New(), "yaml", nil
	case "json":
		return mdbjson.New(), "json", nil
	case "xml":
		return mdbxml.New(), "xml", nil
	case "msgpack":
		return mdbmsgpack.New(), "msgpack", nil
	}
	return nil, "", fmt.Errorf("unknown format %q", format)
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
