package mdb

// Identifier is the magic string at the start of every mdbe.bin header.
const Identifier = "GF/DMmdb"

// Fixed region sizes for the V8 layout. The on-disk header under-reports the
// song and course strides by four bytes; see SchemaFor.
const (
	headerStride = 0x40
	songStride   = 192
	courseStride = 40
)

// Header holds the metadata region at the front of the database blob.
// Field order is byte order. The checksum algorithm is not known; the value
// is carried opaquely so re-encoding reproduces the original framing.
type Header struct {
	ID          string   `mdb:"str,len=8" yaml:"id" json:"id" xml:"id" msgpack:"id"`
	Format      int32    `mdb:"s32" yaml:"format" json:"format" xml:"format" msgpack:"format"`
	Checksum    int32    `mdb:"s32" yaml:"chksum" json:"chksum" xml:"chksum" msgpack:"chksum"`
	HeaderSize  int16    `mdb:"s16" yaml:"header_sz" json:"header_sz" xml:"header_sz" msgpack:"header_sz"`
	RecordSize  int16    `mdb:"s16" yaml:"record_sz" json:"record_sz" xml:"record_sz" msgpack:"record_sz"`
	RecordCount int16    `mdb:"s16" yaml:"record_nr" json:"record_nr" xml:"record_nr" msgpack:"record_nr"`
	CourseCount int16    `mdb:"s16" yaml:"course_nr" json:"course_nr" xml:"course_nr" msgpack:"course_nr"`
	CourseSize  int16    `mdb:"s16" yaml:"course_sz" json:"course_sz" xml:"course_sz" msgpack:"course_sz"`
	Reserved    [38]byte `mdb:"pad" yaml:"reserved" json:"reserved" xml:"reserved" msgpack:"reserved"`
}

// Difficulty holds the four chart levels for one instrument.
type Difficulty struct {
	Beginner uint8 `mdb:"u8" yaml:"beginner" json:"beginner" xml:"beginner" msgpack:"beginner"`
	Basic    uint8 `mdb:"u8" yaml:"basic" json:"basic" xml:"basic" msgpack:"basic"`
	Advanced uint8 `mdb:"u8" yaml:"advanced" json:"advanced" xml:"advanced" msgpack:"advanced"`
	Extreme  uint8 `mdb:"u8" yaml:"extreme" json:"extreme" xml:"extreme" msgpack:"extreme"`
}

// DifficultyList is the 16-byte difficulty grid: four instruments, four
// levels each, in guitar/bass/open/drum order.
type DifficultyList struct {
	Guitar Difficulty `yaml:"guitar" json:"guitar" xml:"guitar" msgpack:"guitar"`
	Bass   Difficulty `yaml:"bass" json:"bass" xml:"bass" msgpack:"bass"`
	Open   Difficulty `yaml:"open" json:"open" xml:"open" msgpack:"open"`
	Drum   Difficulty `yaml:"drum" json:"drum" xml:"drum" msgpack:"drum"`
}

// Song is one music record. The byte layout is the struct field order; the
// full record is 192 bytes. Several fields are carried verbatim without a
// known meaning (pad_diff, seq_flag, contain_stat, secret, chart_list).
type Song struct {
	MusicID      int32          `mdb:"s32" yaml:"music_id" json:"music_id" xml:"music_id" msgpack:"music_id"`
	Difficulty   DifficultyList `yaml:"difficulty" json:"difficulty" xml:"difficulty" msgpack:"difficulty"`
	PadDiff      uint16         `mdb:"u16" yaml:"pad_diff" json:"pad_diff" xml:"pad_diff" msgpack:"pad_diff"`
	SeqFlag      uint16         `mdb:"u16" yaml:"seq_flag" json:"seq_flag" xml:"seq_flag" msgpack:"seq_flag"`
	ContainStat  [2]uint8       `mdb:"u8" yaml:"contain_stat" json:"contain_stat" xml:"contain_stat" msgpack:"contain_stat"`
	Long         bool           `mdb:"bool" yaml:"b_long" json:"b_long" xml:"b_long" msgpack:"b_long"`
	EEMall       bool           `mdb:"bool" yaml:"b_eemall" json:"b_eemall" xml:"b_eemall" msgpack:"b_eemall"`
	BPM          uint16         `mdb:"u16" yaml:"bpm" json:"bpm" xml:"bpm" msgpack:"bpm"`
	BPM2         uint16         `mdb:"u16" yaml:"bpm2" json:"bpm2" xml:"bpm2" msgpack:"bpm2"`
	Title        string         `mdb:"str,len=16" yaml:"title_ascii" json:"title_ascii" xml:"title_ascii" msgpack:"title_ascii"`
	OrderASCII   uint16         `mdb:"u16" yaml:"order_ascii" json:"order_ascii" xml:"order_ascii" msgpack:"order_ascii"`
	OrderKana    uint16         `mdb:"u16" yaml:"order_kana" json:"order_kana" xml:"order_kana" msgpack:"order_kana"`
	CategoryKana int8           `mdb:"s8" yaml:"category_kana" json:"category_kana" xml:"category_kana" msgpack:"category_kana"`
	Secret       [2]uint8       `mdb:"u8" yaml:"secret" json:"secret" xml:"secret" msgpack:"secret"`
	Session      bool           `mdb:"bool" yaml:"b_session" json:"b_session" xml:"b_session" msgpack:"b_session"`
	Speed        uint8          `mdb:"u8" yaml:"speed" json:"speed" xml:"speed" msgpack:"speed"`
	Life         uint8          `mdb:"u8" yaml:"life" json:"life" xml:"life" msgpack:"life"`
	GFOffset     int8           `mdb:"s8" yaml:"gf_ofst" json:"gf_ofst" xml:"gf_ofst" msgpack:"gf_ofst"`
	DMOffset     int8           `mdb:"s8" yaml:"dm_ofst" json:"dm_ofst" xml:"dm_ofst" msgpack:"dm_ofst"`
	ChartList    [128]uint8     `mdb:"u8" yaml:"chart_list,flow" json:"chart_list" xml:"chart_list" msgpack:"chart_list"`
	Origin       uint8          `mdb:"u8" yaml:"origin" json:"origin" xml:"origin" msgpack:"origin"`
	MusicType    uint8          `mdb:"u8" yaml:"music_type" json:"music_type" xml:"music_type" msgpack:"music_type"`
	Genre        uint8          `mdb:"u8" yaml:"genre" json:"genre" xml:"genre" msgpack:"genre"`
	Remaster     uint8          `mdb:"u8" yaml:"is_remaster" json:"is_remaster" xml:"is_remaster" msgpack:"is_remaster"`
}

// Course is one course record, 40 bytes. V8 does not use courses in play but
// the region is present in the file and must survive a round trip.
type Course struct {
	CourseID   int32          `mdb:"s32" yaml:"course_id" json:"course_id" xml:"course_id" msgpack:"course_id"`
	CourseFlag uint32         `mdb:"u32" yaml:"course_flag" json:"course_flag" xml:"course_flag" msgpack:"course_flag"`
	MusicIDs   [4]int32       `mdb:"s32" yaml:"music_ids" json:"music_ids" xml:"music_ids" msgpack:"music_ids"`
	Difficulty DifficultyList `yaml:"difficulty" json:"difficulty" xml:"difficulty" msgpack:"difficulty"`
}

// Database is the fully decoded music database: header metadata plus the
// ordered song and course records. Record order is file order.
type Database struct {
	Header  Header   `yaml:"header" json:"header" xml:"header" msgpack:"header"`
	Songs   []Song   `yaml:"songs" json:"songs" xml:"mdb_data" msgpack:"songs"`
	Courses []Course `yaml:"courses" json:"courses" xml:"mdb_course" msgpack:"courses"`
}
