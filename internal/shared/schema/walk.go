package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	rawMessageType  = reflect.TypeOf(json.RawMessage(nil))
	timeType        = reflect.TypeOf(time.Time{})
)

// expecter lets custom wire types describe what they accept.
type expecter interface {
	SchemaExpect() string
}

// walker checks a generic JSON document against a Go type and collects
// every mismatch instead of stopping at the first one.
type walker struct {
	faults []Fault
}

func (w *walker) fault(path, expected, actual string) {
	if path == "" {
		path = "$"
	}
	w.faults = append(w.faults, Fault{Path: path, Expected: expected, Actual: actual})
}

func (w *walker) walk(path string, t reflect.Type, v any) {
	if t == rawMessageType || t.Kind() == reflect.Interface {
		return
	}
	if v == nil {
		if t.Kind() != reflect.Pointer {
			w.fault(path, describe(t), "null")
		}
		return
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if reflect.PointerTo(t).Implements(unmarshalerType) {
		w.trial(path, t, v)
		return
	}

	switch t.Kind() {
	case reflect.Struct:
		obj, ok := v.(map[string]any)
		if !ok {
			w.fault(path, "object", describeValue(v))
			return
		}
		w.fields(path, t, obj)
	case reflect.Slice, reflect.Array:
		arr, ok := v.([]any)
		if !ok {
			w.fault(path, "array", describeValue(v))
			return
		}
		for i, item := range arr {
			w.walk(path+"["+strconv.Itoa(i)+"]", t.Elem(), item)
		}
	case reflect.Map:
		obj, ok := v.(map[string]any)
		if !ok {
			w.fault(path, "object", describeValue(v))
			return
		}
		for key, item := range obj {
			w.walk(join(path, key), t.Elem(), item)
		}
	case reflect.String:
		if _, ok := v.(string); !ok {
			w.fault(path, "string", describeValue(v))
		}
	case reflect.Bool:
		if _, ok := v.(bool); !ok {
			w.fault(path, "boolean", describeValue(v))
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := v.(json.Number)
		if !ok {
			w.fault(path, "integer", describeValue(v))
			return
		}
		if _, err := n.Int64(); err != nil {
			w.fault(path, "integer", describeValue(v))
		}
	case reflect.Float32, reflect.Float64:
		n, ok := v.(json.Number)
		if !ok {
			w.fault(path, "number", describeValue(v))
			return
		}
		if _, err := n.Float64(); err != nil {
			w.fault(path, "number", describeValue(v))
		}
	}
}

func (w *walker) fields(path string, t reflect.Type, obj map[string]any) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, skip := wireName(f)
		if skip {
			continue
		}
		if f.Anonymous && name == "" && f.Type.Kind() == reflect.Struct {
			w.fields(path, f.Type, obj)
			continue
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		child := join(path, name)
		value, present := obj[name]
		optional := hasOption(f.Tag.Get("schema"), "optional")
		switch {
		case !present && optional:
		case !present:
			w.fault(child, describe(f.Type), "missing")
		case value == nil && optional:
		default:
			w.walk(child, f.Type, value)
		}
		if present {
			for _, other := range caseVariants(obj, name) {
				w.fault(join(path, other), "no key other than "+strconv.Quote(name), "duplicate of "+strconv.Quote(name)+" differing only in case")
			}
		}
	}
}

// caseVariants lists keys that encoding/json would also bind to name.
func caseVariants(obj map[string]any, name string) []string {
	var out []string
	for key := range obj {
		if key != name && strings.EqualFold(key, name) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// trial round-trips the value through the type's own decoder.
func (w *walker) trial(path string, t reflect.Type, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		w.fault(path, describe(t), describeValue(v))
		return
	}
	if err := json.Unmarshal(raw, reflect.New(t).Interface()); err != nil {
		w.fault(path, describe(t), describeValue(v))
	}
}

func wireName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", true
	}
	name, _, _ := strings.Cut(tag, ",")
	return name, false
}

func hasOption(tag, option string) bool {
	for _, part := range strings.Split(tag, ",") {
		if strings.TrimSpace(part) == option {
			return true
		}
	}
	return false
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func describe(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		return describe(t.Elem()) + " or null"
	}
	if t == timeType {
		return "RFC 3339 timestamp"
	}
	if e, ok := reflect.New(t).Interface().(expecter); ok {
		return e.SchemaExpect()
	}
	switch t.Kind() {
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	default:
		return t.String()
	}
}

func describeValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		if len(val) > 32 {
			val = val[:32] + "..."
		}
		return fmt.Sprintf("string %q", val)
	case json.Number:
		return "number " + val.String()
	case bool:
		return "boolean " + strconv.FormatBool(val)
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
