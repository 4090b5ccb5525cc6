package mdb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"reflect"
)

// Decode parses a decrypted blob into a Database per the schema.
//
// The header region is decoded first and the blob's total length is checked
// against the declared record counts before any song or course field is
// touched. All multi-byte values are little-endian.
func Decode(plain []byte, schema *Schema) (*Database, error) {
	if len(plain) < schema.Header.Stride {
		return nil, newLengthError("header region", schema.Header.Stride, len(plain))
	}

	// The record region must be a whole number of stride units. Any other
	// length is mis-framed, and since the cipher garbles every byte of a
	// truncated blob, this has to be reported before reading the header.
	unit := gcd(schema.Song.Stride, schema.Course.Stride)
	if rest := len(plain) - schema.Header.Stride; rest%unit != 0 {
		return nil, fmt.Errorf("%w: record region of %d bytes is not a whole number of %d byte units",
			ErrLengthMismatch, rest, unit)
	}

	db := &Database{}
	hv := reflect.ValueOf(&db.Header).Elem()
	if err := schema.Header.decode(plain[:schema.Header.Stride], hv, "header", -1); err != nil {
		return nil, err
	}

	if db.Header.ID != Identifier {
		return nil, fmt.Errorf("%w: %q does not match %q", ErrBadIdentifier, db.Header.ID, Identifier)
	}
	if err := checkStrides(&db.Header, schema); err != nil {
		return nil, err
	}

	songs := int(db.Header.RecordCount)
	courses := int(db.Header.CourseCount)
	if songs < 0 || courses < 0 {
		return nil, newLengthError("record counts", 0, songs+courses)
	}

	expected := schema.Header.Stride + songs*schema.Song.Stride + courses*schema.Course.Stride
	if len(plain) != expected {
		return nil, newLengthError("blob", expected, len(plain))
	}

	off := schema.Header.Stride
	db.Songs = make([]Song, songs)
	for i := range db.Songs {
		rv := reflect.ValueOf(&db.Songs[i]).Elem()
		if err := schema.Song.decode(plain[off:off+schema.Song.Stride], rv, "songs", i); err != nil {
			return nil, err
		}
		off += schema.Song.Stride
	}

	db.Courses = make([]Course, courses)
	for i := range db.Courses {
		rv := reflect.ValueOf(&db.Courses[i]).Elem()
		if err := schema.Course.decode(plain[off:off+schema.Course.Stride], rv, "courses", i); err != nil {
			return nil, err
		}
		off += schema.Course.Stride
	}

	return db, nil
}

// Encode renders a Database back into a plaintext blob, the exact inverse of
// Decode. The header's declared record counts must match the records present;
// a value that no longer fits its byte span aborts with ErrFieldOverflow
// naming the record and field, and no blob is produced.
func Encode(db *Database, schema *Schema) ([]byte, error) {
	if db.Header.ID != Identifier {
		return nil, fmt.Errorf("%w: %q does not match %q", ErrBadIdentifier, db.Header.ID, Identifier)
	}
	if err := checkStrides(&db.Header, schema); err != nil {
		return nil, err
	}
	if len(db.Songs) != int(db.Header.RecordCount) {
		return nil, newLengthError("songs", int(db.Header.RecordCount), len(db.Songs))
	}
	if len(db.Courses) != int(db.Header.CourseCount) {
		return nil, newLengthError("courses", int(db.Header.CourseCount), len(db.Courses))
	}

	total := schema.Header.Stride +
		len(db.Songs)*schema.Song.Stride +
		len(db.Courses)*schema.Course.Stride
	buf := make([]byte, total)

	hv := reflect.ValueOf(&db.Header).Elem()
	if err := schema.Header.encode(hv, buf[:schema.Header.Stride], "header", -1); err != nil {
		return nil, err
	}

	off := schema.Header.Stride
	for i := range db.Songs {
		rv := reflect.ValueOf(&db.Songs[i]).Elem()
		if err := schema.Song.encode(rv, buf[off:off+schema.Song.Stride], "songs", i); err != nil {
			return nil, err
		}
		off += schema.Song.Stride
	}
	for i := range db.Courses {
		rv := reflect.ValueOf(&db.Courses[i]).Elem()
		if err := schema.Course.encode(rv, buf[off:off+schema.Course.Stride], "courses", i); err != nil {
			return nil, err
		}
		off += schema.Course.Stride
	}

	return buf, nil
}

// gcd returns the greatest common divisor of two positive strides.
func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// checkStrides validates the header's declared record sizes against the
// schema. The on-disk sizes under-report the real strides by four bytes.
func checkStrides(h *Header, schema *Schema) error {
	if int(h.RecordSize)+4 != schema.Song.Stride {
		return newLengthError("declared song stride", schema.Song.Stride, int(h.RecordSize)+4)
	}
	if int(h.CourseSize)+4 != schema.Course.Stride {
		return newLengthError("declared course stride", schema.Course.Stride, int(h.CourseSize)+4)
	}
	return nil
}

// decode fills one record struct from a stride-sized byte window.
func (rs *RecordSchema) decode(buf []byte, rv reflect.Value, section string, record int) error {
	for _, plan := range rs.plans {
		fv := rv.FieldByIndex(plan.index)
		b := buf[plan.offset : plan.offset+plan.span()]

		switch plan.kind {
		case KindStr:
			// Trailing pad bytes are trimmed; interior NULs survive.
			fv.SetString(string(bytes.TrimRight(b, "\x00")))
		case KindPad:
			reflect.Copy(fv, reflect.ValueOf(b))
		default:
			if plan.count == 1 {
				if err := decodeScalar(fv, plan, b, section, record); err != nil {
					return err
				}
				continue
			}
			w := plan.kind.elemSize()
			for j := 0; j < plan.count; j++ {
				if err := decodeScalar(fv.Index(j), plan, b[j*w:(j+1)*w], section, record); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// encode renders one record struct into a stride-sized byte window.
// The window arrives zeroed, so string fields pad with NUL for free.
func (rs *RecordSchema) encode(rv reflect.Value, buf []byte, section string, record int) error {
	for _, plan := range rs.plans {
		fv := rv.FieldByIndex(plan.index)
		b := buf[plan.offset : plan.offset+plan.span()]

		switch plan.kind {
		case KindStr:
			s := fv.String()
			if len(s) > plan.width {
				return newFieldError(ErrFieldOverflow, section, record, plan.name,
					fmt.Sprintf("%d bytes does not fit the %d byte span", len(s), plan.width))
			}
			copy(b, s)
		case KindPad:
			reflect.Copy(reflect.ValueOf(b), fv)
		default:
			if plan.count == 1 {
				encodeScalar(fv, plan, b)
				continue
			}
			w := plan.kind.elemSize()
			for j := 0; j < plan.count; j++ {
				encodeScalar(fv.Index(j), plan, b[j*w:(j+1)*w])
			}
		}
	}
	return nil
}

// decodeScalar reads a single numeric or boolean element.
func decodeScalar(fv reflect.Value, plan fieldPlan, b []byte, section string, record int) error {
	switch plan.kind {
	case KindBool:
		// Anything but 0/1 would re-encode differently, which breaks the
		// round-trip guarantee, so it is rejected rather than coerced.
		if b[0] > 1 {
			return newFieldError(ErrTypeMismatch, section, record, plan.name,
				fmt.Sprintf("boolean byte is 0x%02x", b[0]))
		}
		fv.SetBool(b[0] == 1)
	case KindU8:
		fv.SetUint(uint64(b[0]))
	case KindS8:
		fv.SetInt(int64(int8(b[0])))
	case KindU16:
		fv.SetUint(uint64(binary.LittleEndian.Uint16(b)))
	case KindS16:
		fv.SetInt(int64(int16(binary.LittleEndian.Uint16(b))))
	case KindU32:
		fv.SetUint(uint64(binary.LittleEndian.Uint32(b)))
	case KindS32:
		fv.SetInt(int64(int32(binary.LittleEndian.Uint32(b))))
	}
	return nil
}

// encodeScalar writes a single numeric or boolean element.
func encodeScalar(fv reflect.Value, plan fieldPlan, b []byte) {
	switch plan.kind {
	case KindBool:
		if fv.Bool() {
			b[0] = 1
		} else {
			b[0] = 0
		}
	case KindU8:
		b[0] = byte(fv.Uint())
	case KindS8:
		b[0] = byte(fv.Int())
	case KindU16:
		binary.LittleEndian.PutUint16(b, uint16(fv.Uint()))
	case KindS16:
		binary.LittleEndian.PutUint16(b, uint16(fv.Int()))
	case KindU32:
		binary.LittleEndian.PutUint32(b, uint32(fv.Uint()))
	case KindS32:
		binary.LittleEndian.PutUint32(b, uint32(fv.Int()))
	}
}
