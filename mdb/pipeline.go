package mdb

import (
	"context"
	"time"
)

// Pipeline composes the cipher, the record codec, and a text codec into the
// two end-to-end flows. It enforces flow ordering only; every step runs to
// completion in memory or the whole flow fails, so no partial output can
// escape. Each flow owns its buffers exclusively, which makes running many
// pipelines across files in parallel safe without locking.
type Pipeline struct {
	schema *Schema
	cipher *Cipher
	codec  Codec
}

// NewPipeline creates a pipeline for a format version using the given text codec.
func NewPipeline(version Version, c Codec) (*Pipeline, error) {
	schema, err := SchemaFor(version)
	if err != nil {
		return nil, err
	}
	cipher, err := NewCipher(schema.Key)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{schema: schema, cipher: cipher, codec: c}
	emitPipelineCreated(context.Background(), c.ContentType(), version)
	return p, nil
}

// Schema returns the schema the pipeline was built with.
func (p *Pipeline) Schema() *Schema {
	return p.schema
}

// Dump runs raw blob -> decrypt -> decode -> structured text.
func (p *Pipeline) Dump(ctx context.Context, raw []byte) ([]byte, error) {
	start := time.Now()
	emitDumpStart(ctx, p.codec.ContentType(), p.schema.Version, len(raw))

	text, songs, courses, err := p.dump(raw)
	emitDumpComplete(ctx, p.codec.ContentType(), p.schema.Version, songs, courses, time.Since(start), err)
	return text, err
}

func (p *Pipeline) dump(raw []byte) ([]byte, int, int, error) {
	plain := p.cipher.Decrypt(raw)
	db, err := Decode(plain, p.schema)
	if err != nil {
		return nil, 0, 0, err
	}
	text, err := ToTree(db, p.codec)
	if err != nil {
		return nil, 0, 0, err
	}
	return text, len(db.Songs), len(db.Courses), nil
}

// Build runs structured text -> validate -> encode -> encrypt -> raw blob.
func (p *Pipeline) Build(ctx context.Context, text []byte) ([]byte, error) {
	start := time.Now()
	emitBuildStart(ctx, p.codec.ContentType(), p.schema.Version, len(text))

	raw, songs, courses, err := p.build(text)
	emitBuildComplete(ctx, p.codec.ContentType(), p.schema.Version, songs, courses, time.Since(start), err)
	return raw, err
}

func (p *Pipeline) build(text []byte) ([]byte, int, int, error) {
	db, err := FromTree(text, p.codec, p.schema)
	if err != nil {
		return nil, 0, 0, err
	}
	plain, err := Encode(db, p.schema)
	if err != nil {
		return nil, len(db.Songs), len(db.Courses), err
	}
	return p.cipher.Encrypt(plain), len(db.Songs), len(db.Courses), nil
}
