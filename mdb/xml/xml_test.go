package xml_test

import (
	"errors"
	"strings"
	"testing"

	mdbtesting "github.com/573dev/pakdump/mdb/testing"
	"github.com/573dev/pakdump/mdb/xml"
)

func TestContentType(t *testing.T) {
	if got := xml.New().ContentType(); got != "application/xml" {
		t.Errorf("ContentType() = %q, want application/xml", got)
	}
}

func TestMarshal(t *testing.T) {
	data, err := xml.New().Marshal(mdbtesting.SampleDatabase())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	s := string(data)
	if !strings.HasPrefix(s, "<?xml") {
		t.Error("Marshal() output missing XML declaration")
	}
	if !strings.Contains(s, "<title_ascii>CASSANDRA</title_ascii>") {
		t.Error("Marshal() output missing wire field name")
	}
	if !strings.Contains(s, "<mdb_data>") {
		t.Error("Marshal() output missing song element")
	}
}

func TestUnmarshalUnsupported(t *testing.T) {
	var doc any
	err := xml.New().Unmarshal([]byte("<Database></Database>"), &doc)
	if !errors.Is(err, xml.ErrImportUnsupported) {
		t.Errorf("Unmarshal() error = %v, want ErrImportUnsupported", err)
	}
}
