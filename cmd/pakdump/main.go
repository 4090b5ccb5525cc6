// pakdump extracts files from GFDM V8 pak archives. The pack table stores
// filename hashes rather than filenames, so extraction is driven by a list
// of candidate paths to probe.
//
// Usage:
//
//	pakdump -i path/to/data -p filelist.txt [-o outdir] [-r] [-f] [-v|-d]
//	pakdump -i path/to/data -t /data/product/music/mdbe.bin
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/573dev/pakdump"
)

func main() {
	var (
		input    string
		output   string
		filelist string
		tests    []string
		dryrun   bool
		force    bool
		verbose  bool
		debug    bool
	)
	flag.StringVarP(&input, "input", "i", "", "path to GFDM data directory (required)")
	flag.StringVarP(&output, "output", "o", ".", "path to output directory")
	flag.StringVarP(&filelist, "filelist-path", "p", "", "path to list of candidate files to extract")
	flag.StringArrayVarP(&tests, "test-filepath", "t", nil, "test a file path to see if it exists in the pack data")
	flag.BoolVarP(&dryrun, "dryrun", "r", false, "perform a dry run; do not extract any files")
	flag.BoolVarP(&force, "force", "f", false, "write out extracted files even if they already exist")
	flag.BoolVarP(&verbose, "verbose", "v", false, "set log level to INFO")
	flag.BoolVarP(&debug, "debug", "d", false, "set log level to DEBUG")
	flag.Parse()

	logger := newLogger(verbose, debug)

	if err := run(input, output, filelist, tests, dryrun, force, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(input, output, filelist string, tests []string, dryrun, force bool, logger *slog.Logger) error {
	if input == "" {
		return errors.New("-i/--input is required")
	}
	if filepath.Base(input) != "data" {
		return fmt.Errorf("input must be the GFDM data directory, got %q", filepath.Base(input))
	}

	dumper, err := pakdump.New(input, logger)
	if err != nil {
		return err
	}

	if len(tests) > 0 {
		for _, path := range tests {
			if dumper.Probe(path) {
				fmt.Printf("Filepath exists: %s\n", path)
			} else {
				fmt.Printf("Filepath does not exist: %s\n", path)
			}
		}
		return nil
	}

	if filelist == "" {
		return errors.New("-p/--filelist-path is required unless testing paths with -t")
	}
	f, err := os.Open(filelist)
	if err != nil {
		return err
	}
	found, err := dumper.LoadFilelist(f)
	f.Close()
	if err != nil {
		return err
	}
	logger.Info("probed filelist", "path", filelist, "found", found)

	if dryrun {
		total := len(dumper.Entries())
		fmt.Printf("Total files: %d\n", total)
		fmt.Printf("Files found: %d\n", found)
		fmt.Printf("    Missing: %d\n", total-found)
		return nil
	}

	_, err = dumper.Dump(output, force)
	return err
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
