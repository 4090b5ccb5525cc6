// Package xml provides an export-only XML codec implementation.
//
// XML cannot be decoded into the generic mapping/sequence form the schema
// validator works on, and the original tooling never imported from XML
// either, so Unmarshal is unsupported.
package xml

import (
	"encoding/xml"
	"errors"

	"github.com/573dev/pakdump/mdb"
)

// ErrImportUnsupported is returned by Unmarshal; XML dumps are export only.
var ErrImportUnsupported = errors.New("xml import is not supported")

// xmlCodec implements mdb.Codec for XML.
type xmlCodec struct{}

// New returns an XML codec.
func New() mdb.Codec {
	return &xmlCodec{}
}

// ContentType returns the MIME type for XML.
func (c *xmlCodec) ContentType() string {
	return "application/xml"
}

// Marshal encodes v as indented XML with a declaration header.
func (c *xmlCodec) Marshal(v any) ([]byte, error) {
	data, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), data...), nil
}

// Unmarshal always fails; see the package comment.
func (c *xmlCodec) Unmarshal(data []byte, v any) error {
	return ErrImportUnsupported
}
