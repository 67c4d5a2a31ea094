package config

import (
	"bytes"
	"encoding"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"github.com/rpgo/projection-engine/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var (
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	jsonUnmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	decimalType         = reflect.TypeOf(decimal.Decimal{})
	dateType            = reflect.TypeOf(domain.Date{})
)

// DecodeJSON strictly decodes a JSON document into v. Unknown keys and
// values of the wrong shape are reported as InputFormatErrors naming the field.
func DecodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tree any
		if json.Unmarshal(data, &tree) != nil {
			return documentError(FormatJSON, err)
		}
		return classify(FormatJSON, tree, v, err)
	}
	return nil
}

func decodeYAML(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		var tree any
		if yaml.Unmarshal(data, &tree) != nil {
			return documentError(FormatYAML, err)
		}
		return classify(FormatYAML, tree, v, err)
	}
	return nil
}

func decodeTOML(data []byte, v any) error {
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(v)
	if err != nil {
		var tree map[string]any
		if _, treeErr := toml.Decode(string(data), &tree); treeErr != nil {
			return documentError(FormatTOML, err)
		}
		return classify(FormatTOML, tree, v, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		c := &collector{}
		for _, key := range undecoded {
			c.add(&InputFormatError{Field: key.String(), Value: key[len(key)-1], Expected: "a recognized key"})
		}
		return c.err()
	}
	return nil
}

// documentError reports a document that does not parse at all
func documentError(format DocumentFormat, err error) error {
	msg, _, _ := strings.Cut(err.Error(), "\n")
	return &InputFormatError{
		Field:    "document",
		Value:    msg,
		Expected: "a well-formed " + strings.ToUpper(string(format)) + " document",
	}
}

// classify walks the generic tree of a document that parsed but did not
// decode into v, reporting each unknown key and each misshapen value.
func classify(format DocumentFormat, tree, v any, decodeErr error) error {
	c := &collector{}
	locate(c, tree, reflect.TypeOf(v).Elem(), "", "", 0)
	if len(c.errs) == 0 {
		return documentError(format, decodeErr)
	}
	return c.err()
}

func joinField(prefix, key string) string {
	if prefix == "" {
		return key
	}
	if key == "" {
		return prefix
	}
	return prefix + "." + key
}

// locate checks value against t, naming fields by their dotted document path.
// Elements of a list are reported with their 1-based row.
func locate(c *collector, value any, t reflect.Type, prefix, key string, row int) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if value == nil {
		return
	}
	field := joinField(prefix, key)
	rv := reflect.ValueOf(value)

	switch {
	case isLeaf(t):
		checkLeaf(c, value, t, field, row)
	case t.Kind() == reflect.Struct:
		if rv.Kind() != reflect.Map {
			c.add(&InputFormatError{Field: fieldOrDocument(field), Row: row, Value: describe(value), Expected: "a table of fields"})
			return
		}
		known := fieldsByKey(t)
		entries := make(map[string]any, rv.Len())
		keys := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := fmt.Sprint(iter.Key().Interface())
			entries[k] = iter.Value().Interface()
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			ft, ok := known[k]
			if !ok {
				c.add(&InputFormatError{Field: joinField(field, k), Row: row, Value: k, Expected: "a recognized key"})
				continue
			}
			locate(c, entries[k], ft, field, k, row)
		}
	case t.Kind() == reflect.Slice:
		if rv.Kind() != reflect.Slice {
			c.add(&InputFormatError{Field: field, Row: row, Value: describe(value), Expected: "a list"})
			return
		}
		for i := 0; i < rv.Len(); i++ {
			locate(c, rv.Index(i).Interface(), t.Elem(), field, "", i+1)
		}
	default:
		checkLeaf(c, value, t, field, row)
	}
}

func fieldOrDocument(field string) string {
	if field == "" {
		return "document"
	}
	return field
}

func isLeaf(t reflect.Type) bool {
	pt := reflect.PointerTo(t)
	return pt.Implements(textUnmarshalerType) || pt.Implements(jsonUnmarshalerType)
}

// checkLeaf decodes a single scalar into a fresh t. Any scalar is accepted
// as text.
func checkLeaf(c *collector, value any, t reflect.Type, field string, row int) {
	if kind := reflect.ValueOf(value).Kind(); t.Kind() == reflect.String && kind != reflect.Map && kind != reflect.Slice {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := json.Unmarshal(raw, reflect.New(t).Interface()); err != nil {
		c.add(&InputFormatError{Field: field, Row: row, Value: describe(value), Expected: expectedFor(t)})
	}
}

func fieldsByKey(t reflect.Type) map[string]reflect.Type {
	out := make(map[string]reflect.Type, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		out[name] = sf.Type
	}
	return out
}

func describe(value any) string {
	switch value.(type) {
	case map[string]any, map[any]any:
		return "table"
	case []any, []map[string]any:
		return "list"
	}
	return fmt.Sprint(value)
}

func expectedFor(t reflect.Type) string {
	switch t {
	case dateType:
		return "a date (" + domain.DateFormats + ")"
	case decimalType:
		return "a number"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "a whole number"
	case reflect.Bool:
		return "true or false"
	case reflect.String:
		return "text"
	}
	return "a value of type " + t.String()
}
