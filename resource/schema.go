package resource

import (
	"math"
	"strconv"
)

// FieldType constrains what a form field accepts.
type FieldType string

const (
	Text     FieldType = "text"
	Number   FieldType = "number"
	Bool     FieldType = "bool"
	DateTime FieldType = "datetime"
)

type (
	// Field declares one form field of a resource schema.
	Field struct {
		Name     string
		Type     FieldType
		Required bool
		MaxWords int // free-text ceiling; 0 = unlimited
		Default  string
	}

	// SlotSpec declares one image slot of a resource schema.
	SlotSpec struct {
		Name     string
		Required bool // a file must be staged or an existing image kept
	}

	// DateRange names a start/end field pair where start must not exceed end.
	DateRange struct {
		Start, End string
	}

	// Schema is the declarative description of one screen: the shared
	// list/form engine is parameterized by it. It replaces the per-screen
	// ad hoc state the old dashboard repeated for every resource.
	Schema struct {
		Name         string // plural resource name, e.g. "courses"
		Path         string // collection path, e.g. "/api/courses"
		Fields       []Field
		Slots        []SlotSpec
		Ranges       []DateRange
		SearchFields []string // list filter targets; defaults to id + title/name
		IDField      string   // defaults to "id"
	}
)

func (s Schema) idField() string {
	if s.IDField == "" {
		return "id"
	}
	return s.IDField
}

// Field looks a field declaration up by name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Row is one backend record as decoded from the list response.
type Row = map[string]interface{}

// RowID renders a row's identifier as a string; ids arrive as JSON numbers
// or strings depending on the endpoint.
func RowID(s Schema, row Row) string {
	return Stringify(row[s.idField()])
}

// Stringify renders a decoded JSON value the way a form input would hold it.
func Stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		if val == math.Trunc(val) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return ""
	}
}
