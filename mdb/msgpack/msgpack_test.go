package msgpack_test

import (
	"testing"

	"github.com/573dev/pakdump/mdb/msgpack"
	mdbtesting "github.com/573dev/pakdump/mdb/testing"
)

func TestContentType(t *testing.T) {
	if got := msgpack.New().ContentType(); got != "application/msgpack" {
		t.Errorf("ContentType() = %q, want application/msgpack", got)
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	c := msgpack.New()

	data, err := c.Marshal(mdbtesting.SampleDatabase())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Marshal() produced no output")
	}

	var doc map[string]any
	if err := c.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	header, ok := doc["header"].(map[string]any)
	if !ok {
		t.Fatal("Unmarshal() header is not a mapping")
	}
	if header["id"] != "GF/DMmdb" {
		t.Errorf("header id = %v, want GF/DMmdb", header["id"])
	}
	songs, ok := doc["songs"].([]any)
	if !ok || len(songs) != 2 {
		t.Errorf("songs = %v, want 2 records", doc["songs"])
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	var doc any
	if err := msgpack.New().Unmarshal([]byte{0xc1}, &doc); err == nil {
		t.Error("Unmarshal() should fail on invalid MessagePack")
	}
}
