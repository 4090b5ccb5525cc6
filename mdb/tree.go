package mdb

import (
	"fmt"
	"math"
	"reflect"
)

// ToTree renders a Database into its structured text form. Field order in
// the output follows struct declaration order, which is descriptor order, so
// dumps are stable across runs for diffing.
func ToTree(db *Database, c Codec) ([]byte, error) {
	data, err := c.Marshal(db)
	if err != nil {
		return nil, newCodecError(ErrMarshal, err)
	}
	return data, nil
}

// FromTree parses a structured text document and validates it against the
// schema before building typed records: every schema field must be present
// and type-compatible, and integral values must fit their field's bit width.
// Nothing is ever defaulted; a silently defaulted field would desynchronize
// the reconstructed binary.
func FromTree(data []byte, c Codec, schema *Schema) (*Database, error) {
	var doc any
	if err := c.Unmarshal(data, &doc); err != nil {
		return nil, newCodecError(ErrUnmarshal, err)
	}

	root, ok := asMap(doc)
	if !ok {
		return nil, newFieldError(ErrTypeMismatch, "document", -1, "", "top level must be a mapping")
	}

	db := &Database{}

	headerDoc, ok := root["header"]
	if !ok {
		return nil, newFieldError(ErrMissingField, "document", -1, "header", "")
	}
	hm, ok := asMap(headerDoc)
	if !ok {
		return nil, newFieldError(ErrTypeMismatch, "document", -1, "header", "must be a mapping")
	}
	hv := reflect.ValueOf(&db.Header).Elem()
	if err := convertRecord(hm, schema.Header, hv, "header", -1); err != nil {
		return nil, err
	}

	songs, err := sectionItems(root, "songs")
	if err != nil {
		return nil, err
	}
	db.Songs = make([]Song, len(songs))
	for i, item := range songs {
		m, ok := asMap(item)
		if !ok {
			return nil, newFieldError(ErrTypeMismatch, "songs", i, "", "record must be a mapping")
		}
		rv := reflect.ValueOf(&db.Songs[i]).Elem()
		if err := convertRecord(m, schema.Song, rv, "songs", i); err != nil {
			return nil, err
		}
	}

	courses, err := sectionItems(root, "courses")
	if err != nil {
		return nil, err
	}
	db.Courses = make([]Course, len(courses))
	for i, item := range courses {
		m, ok := asMap(item)
		if !ok {
			return nil, newFieldError(ErrTypeMismatch, "courses", i, "", "record must be a mapping")
		}
		rv := reflect.ValueOf(&db.Courses[i]).Elem()
		if err := convertRecord(m, schema.Course, rv, "courses", i); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// sectionItems returns the record sequence for a required top-level section.
// An explicit null counts as an empty sequence; an absent key does not.
func sectionItems(root map[string]any, name string) ([]any, error) {
	doc, ok := root[name]
	if !ok {
		return nil, newFieldError(ErrMissingField, "document", -1, name, "")
	}
	if doc == nil {
		return nil, nil
	}
	items, ok := doc.([]any)
	if !ok {
		return nil, newFieldError(ErrTypeMismatch, "document", -1, name, "must be a sequence")
	}
	return items, nil
}

// convertRecord validates one record mapping against the schema and fills
// the typed record struct.
func convertRecord(m map[string]any, rs *RecordSchema, rv reflect.Value, section string, record int) error {
	for _, plan := range rs.plans {
		// Walk nested mappings down to the leaf value.
		cur := m
		for depth := 0; depth < len(plan.path)-1; depth++ {
			child, ok := cur[plan.path[depth]]
			if !ok {
				return newFieldError(ErrMissingField, section, record, joinPath(plan.path[:depth+1]), "")
			}
			cm, ok := asMap(child)
			if !ok {
				return newFieldError(ErrTypeMismatch, section, record, joinPath(plan.path[:depth+1]), "must be a mapping")
			}
			cur = cm
		}

		leaf := plan.path[len(plan.path)-1]
		val, ok := cur[leaf]
		if !ok {
			return newFieldError(ErrMissingField, section, record, plan.name, "")
		}

		fv := rv.FieldByIndex(plan.index)
		if err := convertValue(val, plan, fv, section, record); err != nil {
			return err
		}
	}
	return nil
}

// convertValue checks one leaf value against its field descriptor and stores it.
func convertValue(val any, plan fieldPlan, fv reflect.Value, section string, record int) error {
	switch plan.kind {
	case KindStr:
		s, ok := val.(string)
		if !ok {
			return newFieldError(ErrTypeMismatch, section, record, plan.name,
				fmt.Sprintf("expected string, got %T", val))
		}
		fv.SetString(s)
		return nil

	case KindBool:
		b, ok := val.(bool)
		if !ok {
			return newFieldError(ErrTypeMismatch, section, record, plan.name,
				fmt.Sprintf("expected bool, got %T", val))
		}
		fv.SetBool(b)
		return nil

	case KindPad:
		// msgpack encodes byte arrays as bin, so the decoded document
		// carries []byte where yaml and json produce a sequence.
		if b, ok := val.([]byte); ok {
			if len(b) != plan.width {
				return newFieldError(ErrTypeMismatch, section, record, plan.name,
					fmt.Sprintf("expected %d elements, got %d", plan.width, len(b)))
			}
			reflect.Copy(fv, reflect.ValueOf(b))
			return nil
		}
		items, ok := val.([]any)
		if !ok {
			return newFieldError(ErrTypeMismatch, section, record, plan.name,
				fmt.Sprintf("expected sequence, got %T", val))
		}
		if len(items) != plan.width {
			return newFieldError(ErrTypeMismatch, section, record, plan.name,
				fmt.Sprintf("expected %d elements, got %d", plan.width, len(items)))
		}
		for j, item := range items {
			n, err := intInRange(item, 0, math.MaxUint8)
			if err != nil {
				return wrapRange(err, section, record, plan.name, j)
			}
			fv.Index(j).SetUint(uint64(n))
		}
		return nil
	}

	// Numeric kinds, scalar or fixed-size array.
	lo, hi := plan.kind.valueRange()
	if plan.count == 1 {
		n, err := intInRange(val, lo, hi)
		if err != nil {
			return wrapRange(err, section, record, plan.name, -1)
		}
		setIntValue(fv, plan.kind, n)
		return nil
	}

	// u8 arrays arrive as msgpack bin too; the bytes are in range by
	// construction.
	if b, ok := val.([]byte); ok && plan.kind == KindU8 {
		if len(b) != plan.count {
			return newFieldError(ErrTypeMismatch, section, record, plan.name,
				fmt.Sprintf("expected %d elements, got %d", plan.count, len(b)))
		}
		for j, x := range b {
			fv.Index(j).SetUint(uint64(x))
		}
		return nil
	}

	items, ok := val.([]any)
	if !ok {
		return newFieldError(ErrTypeMismatch, section, record, plan.name,
			fmt.Sprintf("expected sequence, got %T", val))
	}
	if len(items) != plan.count {
		return newFieldError(ErrTypeMismatch, section, record, plan.name,
			fmt.Sprintf("expected %d elements, got %d", plan.count, len(items)))
	}
	for j, item := range items {
		n, err := intInRange(item, lo, hi)
		if err != nil {
			return wrapRange(err, section, record, plan.name, j)
		}
		setIntValue(fv.Index(j), plan.kind, n)
	}
	return nil
}

// rangeError distinguishes "not an integer" from "integer out of range" so
// wrapRange can pick the right sentinel.
type rangeError struct {
	overflow bool
	detail   string
}

func (e *rangeError) Error() string { return e.detail }

// intInRange coerces the decoder-dependent numeric representations (yaml
// ints, json float64s, msgpack sized ints) into an int64 within [lo, hi].
func intInRange(val any, lo, hi int64) (int64, error) {
	var n int64
	switch v := val.(type) {
	case int:
		n = int64(v)
	case int8:
		n = int64(v)
	case int16:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, &rangeError{overflow: true, detail: fmt.Sprintf("value %d out of range", v)}
		}
		n = int64(v)
	case uint8:
		n = int64(v)
	case uint16:
		n = int64(v)
	case uint32:
		n = int64(v)
	case uint64:
		if v > math.MaxInt64 {
			return 0, &rangeError{overflow: true, detail: fmt.Sprintf("value %d out of range", v)}
		}
		n = int64(v)
	case float64:
		if v != math.Trunc(v) {
			return 0, &rangeError{detail: fmt.Sprintf("expected integer, got %v", v)}
		}
		if v < math.MinInt64 || v > math.MaxInt64 {
			return 0, &rangeError{overflow: true, detail: fmt.Sprintf("value %v out of range", v)}
		}
		n = int64(v)
	default:
		return 0, &rangeError{detail: fmt.Sprintf("expected integer, got %T", val)}
	}

	if n < lo || n > hi {
		return 0, &rangeError{overflow: true, detail: fmt.Sprintf("value %d outside [%d, %d]", n, lo, hi)}
	}
	return n, nil
}

// wrapRange converts a rangeError into the appropriate FieldError.
func wrapRange(err error, section string, record int, name string, elem int) error {
	re, ok := err.(*rangeError)
	if !ok {
		return err
	}
	if elem >= 0 {
		name = fmt.Sprintf("%s[%d]", name, elem)
	}
	if re.overflow {
		return newFieldError(ErrFieldOverflow, section, record, name, re.detail)
	}
	return newFieldError(ErrTypeMismatch, section, record, name, re.detail)
}

// setIntValue stores a validated integer into a record field.
func setIntValue(fv reflect.Value, kind FieldKind, n int64) {
	switch kind {
	case KindU8, KindU16, KindU32:
		fv.SetUint(uint64(n))
	default:
		fv.SetInt(n)
	}
}

// valueRange returns the inclusive value bounds for a numeric kind.
func (k FieldKind) valueRange() (int64, int64) {
	switch k {
	case KindU8:
		return 0, math.MaxUint8
	case KindS8:
		return math.MinInt8, math.MaxInt8
	case KindU16:
		return 0, math.MaxUint16
	case KindS16:
		return math.MinInt16, math.MaxInt16
	case KindU32:
		return 0, math.MaxUint32
	case KindS32:
		return math.MinInt32, math.MaxInt32
	}
	return 0, 0
}

// asMap normalizes the decoder-dependent mapping representations.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}

// joinPath renders a wire name path for error messages.
func joinPath(path []string) string {
	out := path[0]
	for _, p := range path[1:] {
		out += "." + p
	}
	return out
}
