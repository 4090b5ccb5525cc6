package mdb

import (
	"fmt"
	"sync"
)

// Version identifies a known revision of the music database format.
type Version string

// V8 is the GuitarFreaks & DrumMania V8 revision, the only revision with
// recovered reference samples.
const V8 Version = "v8"

// Schema bundles everything needed to move one format revision between raw
// bytes and typed records: the cipher key table and the per-region record
// schemas. Schemas are immutable once built.
type Schema struct {
	Version Version
	Key     []byte
	Header  *RecordSchema
	Song    *RecordSchema
	Course  *RecordSchema
}

var (
	schemaCache = make(map[Version]*Schema)
	schemaMu    sync.RWMutex
)

// SchemaFor returns the schema for a format version, building and caching it
// on first use. Construction validates stride coverage, so a malformed
// layout surfaces here rather than mid-decode.
func SchemaFor(v Version) (*Schema, error) {
	// Fast path: read-lock cache check
	schemaMu.RLock()
	if cached, ok := schemaCache[v]; ok {
		schemaMu.RUnlock()
		return cached, nil
	}
	schemaMu.RUnlock()

	// Slow path: build and cache with write-lock
	schemaMu.Lock()
	defer schemaMu.Unlock()

	// Double-check pattern
	if cached, ok := schemaCache[v]; ok {
		return cached, nil
	}

	schema, err := buildSchema(v)
	if err != nil {
		return nil, err
	}

	schemaCache[v] = schema
	return schema, nil
}

// ResetSchemas clears the schema cache.
// This is primarily useful for test isolation.
func ResetSchemas() {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	schemaCache = make(map[Version]*Schema)
}

// buildSchema constructs the declarative schema for a version.
func buildSchema(v Version) (*Schema, error) {
	switch v {
	case V8:
		header, err := buildRecordSchema[Header](headerStride)
		if err != nil {
			return nil, err
		}
		song, err := buildRecordSchema[Song](songStride)
		if err != nil {
			return nil, err
		}
		course, err := buildRecordSchema[Course](courseStride)
		if err != nil {
			return nil, err
		}
		return &Schema{
			Version: v,
			Key:     KeyV8,
			Header:  header,
			Song:    song,
			Course:  course,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownVersion, v)
}
