// Package testing provides test fixtures for the mdb codec.
package testing

import (
	"github.com/573dev/pakdump/mdb"
)

// SampleDatabase returns a small, internally consistent V8 database: two
// songs, one course, header counts and sizes matching.
func SampleDatabase() *mdb.Database {
	db := &mdb.Database{
		Header: mdb.Header{
			ID:          mdb.Identifier,
			Format:      2,
			Checksum:    0x1A2B3C4D,
			HeaderSize:  0x40,
			RecordSize:  188,
			RecordCount: 2,
			CourseCount: 1,
			CourseSize:  36,
		},
		Songs: []mdb.Song{
			{
				MusicID: 1001,
				Difficulty: mdb.DifficultyList{
					Guitar: mdb.Difficulty{Beginner: 10, Basic: 25, Advanced: 48, Extreme: 71},
					Bass:   mdb.Difficulty{Beginner: 9, Basic: 22, Advanced: 40, Extreme: 0},
					Open:   mdb.Difficulty{Beginner: 11, Basic: 27, Advanced: 52, Extreme: 0},
					Drum:   mdb.Difficulty{Beginner: 14, Basic: 30, Advanced: 55, Extreme: 80},
				},
				Long:       false,
				BPM:        145,
				BPM2:       145,
				Title:      "CASSANDRA",
				OrderASCII: 3,
				OrderKana:  12,
				Speed:      1,
				Life:       2,
				Origin:     8,
				Genre:      4,
			},
			{
				MusicID: 1002,
				Difficulty: mdb.DifficultyList{
					Guitar: mdb.Difficulty{Beginner: 5, Basic: 18, Advanced: 33, Extreme: 60},
					Drum:   mdb.Difficulty{Beginner: 7, Basic: 20, Advanced: 39, Extreme: 66},
				},
				Long:         true,
				BPM:          190,
				BPM2:         208,
				Title:        "MODEL DD8",
				OrderASCII:   7,
				CategoryKana: -1,
				Session:      true,
				GFOffset:     -2,
				DMOffset:     1,
				Origin:       8,
				MusicType:    1,
			},
		},
		Courses: []mdb.Course{
			{
				CourseID:   1,
				CourseFlag: 0x03,
				MusicIDs:   [4]int32{1001, 1002, -1, -1},
				Difficulty: mdb.DifficultyList{
					Guitar: mdb.Difficulty{Beginner: 12, Basic: 28, Advanced: 50, Extreme: 75},
					Drum:   mdb.Difficulty{Beginner: 13, Basic: 29, Advanced: 51, Extreme: 77},
				},
			},
		},
	}

	// A little texture in the opaque byte regions so round trips prove more
	// than zeros.
	db.Songs[0].ChartList[0] = 1
	db.Songs[0].ChartList[64] = 3
	db.Songs[1].ChartList[127] = 9
	db.Header.Reserved[0] = 0x7F

	return db
}

// SamplePlaintext returns SampleDatabase encoded to its plaintext byte form.
func SamplePlaintext() []byte {
	schema, err := mdb.SchemaFor(mdb.V8)
	if err != nil {
		panic(err)
	}
	plain, err := mdb.Encode(SampleDatabase(), schema)
	if err != nil {
		panic(err)
	}
	return plain
}

// SampleBlob returns SampleDatabase in its encrypted on-disk form.
func SampleBlob() []byte {
	schema, err := mdb.SchemaFor(mdb.V8)
	if err != nil {
		panic(err)
	}
	cipher, err := mdb.NewCipher(schema.Key)
	if err != nil {
		panic(err)
	}
	return cipher.Encrypt(SamplePlaintext())
}
