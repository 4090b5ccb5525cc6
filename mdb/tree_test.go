package mdb_test

import (
	"errors"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/573dev/pakdump/mdb"
	mdbjson "github.com/573dev/pakdump/mdb/json"
	mdbmsgpack "github.com/573dev/pakdump/mdb/msgpack"
	mdbtesting "github.com/573dev/pakdump/mdb/testing"
	mdbyaml "github.com/573dev/pakdump/mdb/yaml"
)

func TestTreeRoundTrip(t *testing.T) {
	schema := v8Schema(t)
	db := mdbtesting.SampleDatabase()

	codecs := []mdb.Codec{mdbyaml.New(), mdbjson.New(), mdbmsgpack.New()}
	for _, c := range codecs {
		t.Run(c.ContentType(), func(t *testing.T) {
			text, err := mdb.ToTree(db, c)
			if err != nil {
				t.Fatalf("ToTree() error: %v", err)
			}
			got, err := mdb.FromTree(text, c, schema)
			if err != nil {
				t.Fatalf("FromTree() error: %v", err)
			}
			if !reflect.DeepEqual(got, db) {
				t.Error("FromTree(ToTree(db)) != db")
			}
		})
	}
}

// sampleDoc dumps the sample database to YAML and hands back the parsed
// document so tests can mutate it before feeding it to FromTree.
func sampleDoc(t *testing.T) map[string]any {
	t.Helper()
	text, err := mdb.ToTree(mdbtesting.SampleDatabase(), mdbyaml.New())
	if err != nil {
		t.Fatalf("ToTree() error: %v", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(text, &doc); err != nil {
		t.Fatalf("yaml.Unmarshal() error: %v", err)
	}
	return doc
}

func fromDoc(t *testing.T, doc map[string]any) (*mdb.Database, error) {
	t.Helper()
	text, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("yaml.Marshal() error: %v", err)
	}
	return mdb.FromTree(text, mdbyaml.New(), v8Schema(t))
}

func docSong(t *testing.T, doc map[string]any, i int) map[string]any {
	t.Helper()
	songs, ok := doc["songs"].([]any)
	if !ok || i >= len(songs) {
		t.Fatalf("document has no song %d", i)
	}
	song, ok := songs[i].(map[string]any)
	if !ok {
		t.Fatalf("song %d is not a mapping", i)
	}
	return song
}

func TestFromTreeMissingField(t *testing.T) {
	doc := sampleDoc(t)
	delete(docSong(t, doc, 0), "bpm")

	_, err := fromDoc(t, doc)
	if !errors.Is(err, mdb.ErrMissingField) {
		t.Fatalf("FromTree() error = %v, want ErrMissingField", err)
	}

	var fe *mdb.FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("FromTree() error type = %T, want *FieldError", err)
	}
	if fe.Section != "songs" || fe.Record != 0 || fe.Field != "bpm" {
		t.Errorf("FieldError = %s[%d].%s, want songs[0].bpm", fe.Section, fe.Record, fe.Field)
	}
}

func TestFromTreeMissingNestedField(t *testing.T) {
	doc := sampleDoc(t)
	diff := docSong(t, doc, 1)["difficulty"].(map[string]any)
	guitar := diff["guitar"].(map[string]any)
	delete(guitar, "basic")

	_, err := fromDoc(t, doc)
	if !errors.Is(err, mdb.ErrMissingField) {
		t.Fatalf("FromTree() error = %v, want ErrMissingField", err)
	}

	var fe *mdb.FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("FromTree() error type = %T, want *FieldError", err)
	}
	if fe.Record != 1 || fe.Field != "difficulty.guitar.basic" {
		t.Errorf("FieldError = %s[%d].%s, want songs[1].difficulty.guitar.basic",
			fe.Section, fe.Record, fe.Field)
	}
}

func TestFromTreeMissingSection(t *testing.T) {
	for _, section := range []string{"header", "songs", "courses"} {
		doc := sampleDoc(t)
		delete(doc, section)

		_, err := fromDoc(t, doc)
		if !errors.Is(err, mdb.ErrMissingField) {
			t.Errorf("missing %s: FromTree() error = %v, want ErrMissingField", section, err)
		}
	}
}

func TestFromTreeNullSectionIsEmpty(t *testing.T) {
	doc := sampleDoc(t)
	doc["courses"] = nil

	db, err := fromDoc(t, doc)
	if err != nil {
		t.Fatalf("FromTree() error: %v", err)
	}
	if len(db.Courses) != 0 {
		t.Errorf("courses = %d, want 0", len(db.Courses))
	}
}

func TestFromTreeTypeMismatch(t *testing.T) {
	t.Run("string field", func(t *testing.T) {
		doc := sampleDoc(t)
		docSong(t, doc, 0)["title_ascii"] = 5

		_, err := fromDoc(t, doc)
		if !errors.Is(err, mdb.ErrTypeMismatch) {
			t.Errorf("FromTree() error = %v, want ErrTypeMismatch", err)
		}
	})

	t.Run("bool field", func(t *testing.T) {
		doc := sampleDoc(t)
		docSong(t, doc, 0)["b_long"] = "yes"

		_, err := fromDoc(t, doc)
		if !errors.Is(err, mdb.ErrTypeMismatch) {
			t.Errorf("FromTree() error = %v, want ErrTypeMismatch", err)
		}
	})

	t.Run("numeric field", func(t *testing.T) {
		doc := sampleDoc(t)
		docSong(t, doc, 0)["bpm"] = "fast"

		_, err := fromDoc(t, doc)
		if !errors.Is(err, mdb.ErrTypeMismatch) {
			t.Errorf("FromTree() error = %v, want ErrTypeMismatch", err)
		}
	})

	t.Run("sequence length", func(t *testing.T) {
		doc := sampleDoc(t)
		docSong(t, doc, 0)["chart_list"] = []any{1, 2, 3}

		_, err := fromDoc(t, doc)
		if !errors.Is(err, mdb.ErrTypeMismatch) {
			t.Errorf("FromTree() error = %v, want ErrTypeMismatch", err)
		}
	})
}

func TestFromTreeValueOverflow(t *testing.T) {
	cases := []struct {
		name  string
		field string
		value any
	}{
		{"u16 too large", "bpm", 90000},
		{"u8 too large", "speed", 300},
		{"u8 negative", "life", -1},
		{"s8 too large", "gf_ofst", 128},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := sampleDoc(t)
			docSong(t, doc, 0)[tc.field] = tc.value

			_, err := fromDoc(t, doc)
			if !errors.Is(err, mdb.ErrFieldOverflow) {
				t.Fatalf("FromTree() error = %v, want ErrFieldOverflow", err)
			}

			var fe *mdb.FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("FromTree() error type = %T, want *FieldError", err)
			}
			if fe.Field != tc.field {
				t.Errorf("FieldError field = %q, want %q", fe.Field, tc.field)
			}
		})
	}
}

func TestFromTreeGarbageInput(t *testing.T) {
	_, err := mdb.FromTree([]byte("[:::"), mdbyaml.New(), v8Schema(t))
	if !errors.Is(err, mdb.ErrUnmarshal) {
		t.Errorf("FromTree() error = %v, want ErrUnmarshal", err)
	}
}

func TestFromTreeNonMappingRoot(t *testing.T) {
	_, err := mdb.FromTree([]byte("- a\n- b\n"), mdbyaml.New(), v8Schema(t))
	if !errors.Is(err, mdb.ErrTypeMismatch) {
		t.Errorf("FromTree() error = %v, want ErrTypeMismatch", err)
	}
}

// TestToTreeStableOrder checks that YAML dumps keep declaration order, which
// keeps diffs between edits readable.
func TestToTreeStableOrder(t *testing.T) {
	text, err := mdb.ToTree(mdbtesting.SampleDatabase(), mdbyaml.New())
	if err != nil {
		t.Fatalf("ToTree() error: %v", err)
	}

	s := string(text)
	prev := -1
	for _, key := range []string{"header:", "songs:", "music_id:", "title_ascii:", "courses:"} {
		idx := indexAfter(s, key, prev)
		if idx < 0 {
			t.Fatalf("dump missing %q after position %d", key, prev)
		}
		prev = idx
	}
}

func indexAfter(s, sub string, after int) int {
	for i := after + 1; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
