package pakdump

import (
	"bufio"
	"crypto/md5"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var packNameRe = regexp.MustCompile(`^pack(\d{4})\.pak$`)

// Dumper indexes a GFDM data directory: the packinfo.bin entry table plus
// the packNNNN.pak payload files it references.
type Dumper struct {
	root    string
	entries map[uint32]*Entry
	packs   map[int]string
	logger  *slog.Logger
}

// New walks the data directory for packinfo.bin and the pack files and
// builds the entry index. A nil logger falls back to slog.Default().
func New(root string, logger *slog.Logger) (*Dumper, error) {
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dumper{
		root:   root,
		packs:  make(map[int]string),
		logger: logger,
	}

	var infoPath string
	err := filepath.WalkDir(root, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if de.IsDir() {
			return nil
		}
		name := de.Name()
		if name == "packinfo.bin" {
			infoPath = path
			return nil
		}
		if m := packNameRe.FindStringSubmatch(name); m != nil {
			id, _ := strconv.Atoi(m[1])
			d.packs[id] = path
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if infoPath == "" {
		return nil, fmt.Errorf("%w: searched subtree %s", ErrNoPackInfo, root)
	}
	logger.Debug("found packinfo", "path", infoPath, "packs", len(d.packs))

	d.entries, err = parsePackInfo(infoPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed pack table", "entries", len(d.entries))

	return d, nil
}

// Probe tests a candidate path against the entry table. On a match the
// entry learns its filename and becomes extractable.
func (d *Dumper) Probe(path string) bool {
	entry, ok := d.entries[filenameCRC32(path)]
	if !ok || entry.CRC16 != filenameCRC16(path) {
		return false
	}
	entry.Filename = path
	return true
}

// LoadFilelist probes every candidate path in the reader, one per line.
// Blank lines and #-comments are ignored. It returns the number of paths
// that matched an entry.
func (d *Dumper) LoadFilelist(r io.Reader) (int, error) {
	found := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if d.Probe(line) {
			found++
		}
	}
	return found, scanner.Err()
}

// Entries returns the full entry index keyed by filename CRC32.
func (d *Dumper) Entries() map[uint32]*Entry {
	return d.entries
}

// Found returns how many entries have been matched to a filename.
func (d *Dumper) Found() int {
	n := 0
	for _, e := range d.entries {
		if e.Filename != "" {
			n++
		}
	}
	return n
}

// Extract reads one entry's payload out of its pack file and verifies the
// table MD5. Payloads that fail verification are stored with the per-file
// pack cipher and are reported as ErrStillEncrypted.
func (d *Dumper) Extract(e *Entry) ([]byte, error) {
	packPath, ok := d.packs[int(e.PackID)]
	if !ok {
		return nil, fmt.Errorf("%w: pack %04d for %q", ErrUnknownPack, e.PackID, e.Filename)
	}

	f, err := os.Open(packPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data := make([]byte, e.Filesize)
	if _, err := f.ReadAt(data, int64(e.Offset)); err != nil {
		return nil, fmt.Errorf("reading %q from %s: %w", e.Filename, packPath, err)
	}

	if md5.Sum(data) != e.MD5 {
		return nil, fmt.Errorf("%w: %q", ErrStillEncrypted, e.Filename)
	}
	return data, nil
}

// Dump extracts every matched entry into outdir, preserving the archive
// paths. Existing files are kept unless force is set. Entries that cannot
// be extracted are logged and skipped; the count of written files is
// returned.
func (d *Dumper) Dump(outdir string, force bool) (int, error) {
	keys := make([]uint32, 0, len(d.entries))
	for k, e := range d.entries {
		if e.Filename != "" {
			keys = append(keys, k)
		}
	}
	// Pack order then offset order keeps reads sequential per pack.
	sort.Slice(keys, func(i, j int) bool {
		a, b := d.entries[keys[i]], d.entries[keys[j]]
		if a.PackID != b.PackID {
			return a.PackID < b.PackID
		}
		return a.Offset < b.Offset
	})

	written := 0
	for _, k := range keys {
		entry := d.entries[k]

		outPath := filepath.Join(outdir, strings.TrimPrefix(entry.Filename, "/"))
		if _, err := os.Stat(outPath); err == nil && !force {
			d.logger.Info("skipping existing file", "path", outPath)
			continue
		}

		data, err := d.Extract(entry)
		if err != nil {
			d.logger.Error("extract failed", "file", entry.Filename, "error", err)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return written, err
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return written, err
		}
		d.logger.Debug("wrote file", "path", outPath, "bytes", len(data))
		written++
	}

	d.logger.Info("dump complete", "extracted", written, "matched", d.Found(), "total", len(d.entries))
	return written, nil
}
