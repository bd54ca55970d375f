package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is one catalog entry. Fields hold the decoded JSON object verbatim;
// ID is the string form of the schema's identity field.
type Record struct {
	ID     string
	Fields map[string]any
}

// MarshalJSON emits the record exactly as the backend returned it.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.Fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.Fields)
}

// Text renders a field for display. Missing and null fields render empty.
func (r Record) Text(field string) string {
	v, ok := r.Fields[field]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Column describes a display column of a schema.
type Column struct {
	Field string
	Title string
	Width int // zero means flexible
}

// Schema describes one backend response shape.
type Schema struct {
	Name       string
	IDField    string
	Envelope   string // object key wrapping the result array; empty for bare arrays
	TitleField string
	LinkField  string // empty when records carry no link
	Columns    []Column
}

// Stories matches the Hacker News search API.
var Stories = Schema{
	Name:       "stories",
	IDField:    "objectID",
	Envelope:   "hits",
	TitleField: "title",
	LinkField:  "url",
	Columns: []Column{
		{Field: "title", Title: "Title"},
		{Field: "author", Title: "Author", Width: 18},
		{Field: "num_comments", Title: "Comments", Width: 9},
		{Field: "points", Title: "Points", Width: 7},
	},
}

// Books matches the book catalog API.
var Books = Schema{
	Name:       "books",
	IDField:    "Id",
	TitleField: "Name",
	Columns: []Column{
		{Field: "Name", Title: "Name"},
		{Field: "Author", Title: "Author", Width: 24},
		{Field: "Price", Title: "Price", Width: 9},
	},
}

var schemas = map[string]Schema{
	Stories.Name: Stories,
	Books.Name:   Books,
}

// LookupSchema returns the built-in schema with the given name.
func LookupSchema(name string) (Schema, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Stories, nil
	}
	s, ok := schemas[key]
	if !ok {
		return Schema{}, fmt.Errorf("unknown schema %q", name)
	}
	return s, nil
}

// Title returns the record's headline according to the schema.
func (s Schema) Title(r Record) string {
	if s.TitleField == "" {
		return r.ID
	}
	return r.Text(s.TitleField)
}

// Link returns the record's URL, or "" when the schema has none.
func (s Schema) Link(r Record) string {
	if s.LinkField == "" {
		return ""
	}
	return r.Text(s.LinkField)
}

func (s Schema) recordFrom(fields map[string]any) Record {
	rec := Record{Fields: fields}
	if s.IDField != "" {
		rec.ID = rec.Text(s.IDField)
	}
	return rec
}
