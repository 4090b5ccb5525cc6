package testing_test

import (
	"testing"

	"github.com/573dev/pakdump/mdb"
	mdbtesting "github.com/573dev/pakdump/mdb/testing"
)

func TestSampleDatabaseConsistent(t *testing.T) {
	db := mdbtesting.SampleDatabase()

	if db.Header.ID != mdb.Identifier {
		t.Errorf("header id = %q, want %q", db.Header.ID, mdb.Identifier)
	}
	if int(db.Header.RecordCount) != len(db.Songs) {
		t.Errorf("record_nr = %d, songs = %d", db.Header.RecordCount, len(db.Songs))
	}
	if int(db.Header.CourseCount) != len(db.Courses) {
		t.Errorf("course_nr = %d, courses = %d", db.Header.CourseCount, len(db.Courses))
	}
}

func TestSamplePlaintextLength(t *testing.T) {
	plain := mdbtesting.SamplePlaintext()
	if want := 0x40 + 2*192 + 40; len(plain) != want {
		t.Errorf("plaintext length = %d, want %d", len(plain), want)
	}
}

func TestSampleBlobDecrypts(t *testing.T) {
	schema, err := mdb.SchemaFor(mdb.V8)
	if err != nil {
		t.Fatalf("SchemaFor() error: %v", err)
	}
	cipher, err := mdb.NewCipher(schema.Key)
	if err != nil {
		t.Fatalf("NewCipher() error: %v", err)
	}

	db, err := mdb.Decode(cipher.Decrypt(mdbtesting.SampleBlob()), schema)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(db.Songs) != 2 || len(db.Courses) != 1 {
		t.Errorf("decoded %d songs and %d courses, want 2 and 1", len(db.Songs), len(db.Courses))
	}
}
