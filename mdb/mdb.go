// Package mdb decodes and re-encodes the encrypted music database shipped in
// GuitarFreaks & DrumMania V8's pak archives (mdbe.bin).
//
// The blob is protected by a positional keystream cipher and laid out as a
// fixed-schema record file: a 0x40-byte header, then song records, then
// course records. The package converts between that byte form and a typed,
// editable representation, bit for bit in both directions.
//
// # Components
//
//   - Cipher: the symmetric transform between the stored blob and its
//     decodable plaintext. The key table is a constructor argument, not
//     package state, so format revisions with different tables can coexist.
//   - Schema registry: record layouts are declared once as tagged structs
//     (Header, Song, Course); SchemaFor scans them into field descriptor
//     plans and verifies the descriptors exactly tile each record stride.
//   - Record codec: Decode/Encode move whole databases between plaintext
//     bytes and typed records, guaranteeing Encode(Decode(p)) == p.
//   - Structured representation: ToTree/FromTree move databases to and from
//     a text form via a pluggable Codec; FromTree validates every field
//     against the schema before trusting the document.
//   - Pipeline: composes the above into the dump and build flows.
//
// # Basic Usage
//
//	pipe, _ := mdb.NewPipeline(mdb.V8, yaml.New())
//
//	// mdbe.bin -> editable YAML
//	text, err := pipe.Dump(ctx, raw)
//
//	// edited YAML -> byte-identical mdbe.bin framing
//	raw, err = pipe.Build(ctx, text)
//
// # Codec Providers
//
// The following codec implementations are available as subpackages:
//
//   - yaml - YAML (application/yaml), the default dump format
//   - json - JSON (application/json)
//   - xml - XML (application/xml), export only
//   - msgpack - MessagePack (application/msgpack)
//
// # Round-Trip Guarantees
//
// For any blob accepted by Decode, re-encoding the decoded database
// reproduces the plaintext exactly, and Encrypt(Decrypt(x)) == x for any
// input, so a dump/build cycle with no edits reproduces the original file.
// Edits that no longer fit their fixed byte span are rejected with
// ErrFieldOverflow naming the record and field; nothing is truncated or
// defaulted silently.
package mdb
