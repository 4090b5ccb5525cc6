package mdb

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register the layout tag and the wire-name tag with sentinel
	sentinel.Tag("mdb")
	sentinel.Tag("yaml")
}

// FieldKind identifies the byte encoding of one field descriptor.
type FieldKind string

const (
	KindU8   FieldKind = "u8"
	KindS8   FieldKind = "s8"
	KindU16  FieldKind = "u16"
	KindS16  FieldKind = "s16"
	KindU32  FieldKind = "u32"
	KindS32  FieldKind = "s32"
	KindBool FieldKind = "bool" // one byte, 0 or 1
	KindStr  FieldKind = "str"  // fixed-width ASCII, NUL padded
	KindPad  FieldKind = "pad"  // reserved bytes carried verbatim
)

// IsValidFieldKind reports whether k is a recognized field kind.
func IsValidFieldKind(k FieldKind) bool {
	switch k {
	case KindU8, KindS8, KindU16, KindS16, KindU32, KindS32, KindBool, KindStr, KindPad:
		return true
	}
	return false
}

// elemSize returns the per-element byte width of a kind.
// Str and pad spans are carried on the plan instead.
func (k FieldKind) elemSize() int {
	switch k {
	case KindU8, KindS8, KindBool:
		return 1
	case KindU16, KindS16:
		return 2
	case KindU32, KindS32:
		return 4
	}
	return 1
}

// fieldPlan describes how to move a single field between its byte span and
// the typed record struct.
type fieldPlan struct {
	name   string    // dotted wire name, for error messages
	path   []string  // wire name path through nested records
	index  []int     // reflect.Value.FieldByIndex access path
	kind   FieldKind
	offset int // byte offset within the record window
	count  int // array element count (1 for scalars)
	width  int // full byte span for str/pad; elemSize otherwise
}

// span returns the total byte span the plan occupies.
func (p fieldPlan) span() int {
	if p.kind == KindStr || p.kind == KindPad {
		return p.width
	}
	return p.count * p.width
}

// RecordSchema is the ordered field descriptor list for one record type plus
// its fixed stride. Plans are offset-cumulative in struct declaration order,
// so gaps and overlaps cannot occur by construction; the stride check at
// build time is the coverage guarantee.
type RecordSchema struct {
	TypeName string
	Stride   int

	rtype reflect.Type
	plans []fieldPlan
}

// buildRecordSchema scans T's struct tags and produces its schema.
// Every exported non-struct field must carry an mdb layout tag; the field
// spans must sum to exactly stride, else ErrSchemaCoverage.
func buildRecordSchema[T any](stride int) (*RecordSchema, error) {
	spec := sentinel.Scan[T]()
	rs := &RecordSchema{
		TypeName: spec.TypeName,
		Stride:   stride,
		rtype:    reflect.TypeFor[T](),
	}

	offset, err := buildFieldPlans(rs, spec, nil, nil, 0)
	if err != nil {
		return nil, err
	}
	if offset != stride {
		return nil, newSchemaError(ErrSchemaCoverage, rs.TypeName, "",
			fmt.Sprintf("field spans cover %d of %d stride bytes", offset, stride))
	}
	return rs, nil
}

// buildFieldPlans recursively processes fields and nested record structs,
// assigning cumulative byte offsets in declaration order. It returns the
// offset one past the last field it placed.
func buildFieldPlans(rs *RecordSchema, spec sentinel.Metadata, parentIndex []int, parentPath []string, offset int) (int, error) {
	for _, field := range spec.Fields {
		fullIndex := append(append([]int{}, parentIndex...), field.Index...)
		fullPath := append(append([]string{}, parentPath...), wireName(field))

		// Nested sub-records recurse; their fields take consecutive offsets.
		if field.ReflectType.Kind() == reflect.Struct {
			nested := scanNested(field.ReflectType)
			if nested == nil {
				return 0, newSchemaError(ErrSchemaCoverage, rs.TypeName, strings.Join(fullPath, "."),
					"nested record type cannot be scanned")
			}
			var err error
			offset, err = buildFieldPlans(rs, *nested, fullIndex, fullPath, offset)
			if err != nil {
				return 0, err
			}
			continue
		}

		tag, ok := field.Tags["mdb"]
		if !ok {
			return 0, newSchemaError(ErrSchemaCoverage, rs.TypeName, strings.Join(fullPath, "."),
				"field has no mdb layout tag; every byte in the stride must be described")
		}

		plan, err := parseFieldPlan(rs.TypeName, fullPath, fullIndex, field.ReflectType, tag)
		if err != nil {
			return 0, err
		}
		plan.offset = offset
		offset += plan.span()
		rs.plans = append(rs.plans, plan)
	}
	return offset, nil
}

// parseFieldPlan interprets one mdb layout tag against the field's Go type.
func parseFieldPlan(schema string, path []string, index []int, rt reflect.Type, tag string) (fieldPlan, error) {
	name := strings.Join(path, ".")
	parts := strings.Split(tag, ",")
	kind := FieldKind(parts[0])
	if !IsValidFieldKind(kind) {
		return fieldPlan{}, newSchemaError(ErrSchemaCoverage, schema, name,
			fmt.Sprintf("unknown field kind %q", parts[0]))
	}

	opts := make(map[string]string)
	for _, part := range parts[1:] {
		k, v, _ := strings.Cut(part, "=")
		opts[k] = v
	}

	plan := fieldPlan{
		name:  name,
		path:  path,
		index: index,
		kind:  kind,
		count: 1,
		width: kind.elemSize(),
	}

	switch kind {
	case KindStr:
		if rt.Kind() != reflect.String {
			return fieldPlan{}, newSchemaError(ErrSchemaCoverage, schema, name,
				fmt.Sprintf("str field must be a string, not %s", rt))
		}
		n, err := strconv.Atoi(opts["len"])
		if err != nil || n <= 0 {
			return fieldPlan{}, newSchemaError(ErrSchemaCoverage, schema, name,
				"str field needs a positive len option")
		}
		plan.width = n

	case KindPad:
		if rt.Kind() != reflect.Array || rt.Elem().Kind() != reflect.Uint8 {
			return fieldPlan{}, newSchemaError(ErrSchemaCoverage, schema, name,
				fmt.Sprintf("pad field must be a byte array, not %s", rt))
		}
		plan.width = rt.Len()

	default:
		elem := rt
		if rt.Kind() == reflect.Array {
			plan.count = rt.Len()
			elem = rt.Elem()
		}
		if elem.Kind() != kind.goKind() {
			return fieldPlan{}, newSchemaError(ErrSchemaCoverage, schema, name,
				fmt.Sprintf("kind %s needs a %s field, not %s", kind, kind.goKind(), rt))
		}
	}

	return plan, nil
}

// goKind maps a numeric/bool field kind to the Go type it must be stored in.
func (k FieldKind) goKind() reflect.Kind {
	switch k {
	case KindU8:
		return reflect.Uint8
	case KindS8:
		return reflect.Int8
	case KindU16:
		return reflect.Uint16
	case KindS16:
		return reflect.Int16
	case KindU32:
		return reflect.Uint32
	case KindS32:
		return reflect.Int32
	case KindBool:
		return reflect.Bool
	}
	return reflect.Invalid
}

// wireName returns the field's name in the structured text form, taken from
// the yaml tag so every codec shares one spelling.
func wireName(field sentinel.FieldMetadata) string {
	if v, ok := field.Tags["yaml"]; ok {
		if i := strings.Index(v, ","); i >= 0 {
			v = v[:i]
		}
		if v != "" && v != "-" {
			return v
		}
	}
	return field.Name
}

// scanNested scans a nested record struct and returns its metadata.
func scanNested(rt reflect.Type) *sentinel.Metadata {
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		return &spec
	}

	if rt.Kind() != reflect.Struct {
		return nil
	}

	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		spec.Fields = append(spec.Fields, sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        parseLayoutTags(sf.Tag),
		})
	}

	return &spec
}

// parseLayoutTags extracts the tags the schema builder reads.
func parseLayoutTags(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	for _, name := range []string{"mdb", "yaml"} {
		if val, ok := tag.Lookup(name); ok {
			tags[name] = val
		}
	}
	return tags
}
