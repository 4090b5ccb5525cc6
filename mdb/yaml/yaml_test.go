package yaml_test

import (
	"strings"
	"testing"

	mdbtesting "github.com/573dev/pakdump/mdb/testing"
	"github.com/573dev/pakdump/mdb/yaml"
)

func TestContentType(t *testing.T) {
	if got := yaml.New().ContentType(); got != "application/yaml" {
		t.Errorf("ContentType() = %q, want application/yaml", got)
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	c := yaml.New()

	data, err := c.Marshal(mdbtesting.SampleDatabase())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), "title_ascii: CASSANDRA") {
		t.Error("Marshal() output missing wire field name")
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
}

func TestUnmarshalInvalid(t *testing.T) {
	var doc any
	if err := yaml.New().Unmarshal([]byte("{unclosed"), &doc); err == nil {
		t.Error("Unmarshal() should fail on invalid YAML")
	}
}

func TestChartListFlowStyle(t *testing.T) {
	data, err := yaml.New().Marshal(mdbtesting.SampleDatabase())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), "chart_list: [") {
		t.Error("chart_list should render in flow style")
	}
}
