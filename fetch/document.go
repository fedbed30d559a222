package fetch

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// ErrInvalidJSON is returned when a body does not hold exactly one JSON value.
var ErrInvalidJSON = errors.New("invalid JSON")

var indentOptions = &pretty.Options{Indent: "  ", SortKeys: false}

// Document is a JSON value decoded from a response body.
type Document struct {
	raw []byte
}

// ParseDocument validates data as JSON and returns it as a Document.
func ParseDocument(data []byte) (*Document, error) {
	raw := bytes.TrimSpace(data)
	if !gjson.ValidBytes(raw) {
		return nil, errors.Wrapf(ErrInvalidJSON, "%d bytes", len(data))
	}
	return &Document{raw: raw}, nil
}

// Value returns the structured value: map[string]interface{},
// []interface{}, float64, string, bool or nil.
func (d *Document) Value() interface{} {
	return gjson.ParseBytes(d.raw).Value()
}

// Get returns the value at path, in gjson path syntax.
func (d *Document) Get(path string) gjson.Result {
	return gjson.GetBytes(d.raw, path)
}

// Indent re-encodes the decoded value with two spaces per nesting level,
// one member or element per line, and no trailing newline. Keys keep the
// position of their first occurrence and the value of their last. Numbers
// and strings are written in their shortest canonical form, so 1.0 becomes
// 1 and "\/" becomes "/".
func (d *Document) Indent() string {
	compact := appendCanonical(nil, gjson.ParseBytes(d.raw))
	return string(bytes.TrimRight(pretty.PrettyOptions(compact, indentOptions), "\n"))
}

// Raw returns the document text as received, without surrounding space.
func (d *Document) Raw() []byte {
	return d.raw
}
