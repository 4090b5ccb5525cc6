package mdb

// Codec provides content-type aware marshaling for the structured text form.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/yaml").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}
