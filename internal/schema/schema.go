// Package schema implements a declarative validate-and-default engine for
// document records. Each entity declares its rules as a Schema (field name
// to Field rule node); one generic traversal applies required checks, type
// coercion, bounds, enums, patterns and defaults, and accumulates every
// violation into a single ValidationError keyed by dot-notation field path.
package schema

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the declared type of a field.
type Kind int

// Supported field kinds.
const (
	String Kind = iota
	Int
	Float
	Bool
	Time
	Object
	Array
	// Map accepts an arbitrary key-value object without validating its
	// contents (e.g. a notification payload's free-form data).
	Map
)

// Field is one rule node in a schema. Zero value means: optional string
// with no constraints.
type Field struct {
	Kind     Kind
	Required bool

	// Min and Max are inclusive numeric bounds for Int and Float kinds.
	Min *float64
	Max *float64

	// MaxLen is the maximum rune length for String kinds (0 = unbounded).
	MaxLen int

	// Enum restricts a String field to a fixed member set.
	Enum []string

	// Pattern, when set, must match the full string value. PatternMsg
	// overrides the generic violation message.
	Pattern    *regexp.Regexp
	PatternMsg string

	// Default is applied when the field is absent on record construction.
	// Maps and slices are deep-copied before insertion.
	Default any

	// Fields declares the children of an Object field. An absent object
	// never errors on its own, even when children are required; once the
	// object is present its children are validated in full.
	Fields map[string]Field

	// Elem declares the element rule for an Array field.
	Elem *Field

	// AllowEmpty permits a present-but-empty array. Empty-array policy is
	// field specific: a zone's coordinates reject [], a schedule's days
	// accept it.
	AllowEmpty bool
}

// Schema is the declarative rule table for one entity kind.
type Schema struct {
	Name   string
	Fields map[string]Field
}

// ValidationError carries every violated field of one record, keyed by
// dot-notation field path (nested objects and array indices included).
type ValidationError struct {
	Fields map[string][]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	paths := make([]string, 0, len(e.Fields))
	for p := range e.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return "validation failed: " + strings.Join(paths, ", ")
}

// Has reports whether the given field path has at least one violation.
func (e *ValidationError) Has(path string) bool {
	return len(e.Fields[path]) > 0
}

func (e *ValidationError) add(path, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[path] = append(e.Fields[path], msg)
}

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// Bound returns a pointer to v, for use as a Min or Max rule.
func Bound(v float64) *float64 {
	return &v
}

// EmptyDoc is a Default that constructs an empty object so that the
// defaults of its children can cascade into it.
func EmptyDoc() any {
	return map[string]any{}
}

// Validate checks a candidate record against the schema on initial
// construction. Required fields must be present, every supplied value is
// coerced and checked, and defaults fill absent optional fields. Unknown
// keys are dropped. On success the normalized record is returned; on any
// violation a *ValidationError listing every failed field path is returned.
func (s Schema) Validate(doc map[string]any) (map[string]any, error) {
	verr := &ValidationError{}
	out := make(map[string]any, len(s.Fields))

	for name, field := range s.Fields {
		value, present := doc[name]
		if !present || value == nil {
			if field.Required {
				verr.add(name, "is required")
				continue
			}
			if def := defaultFor(field); def != nil {
				out[name] = def
			}
			continue
		}
		if v, ok := field.check(name, value, verr); ok {
			out[name] = v
		}
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return out, nil
}

// ValidatePartial checks a partial update. Only supplied fields are
// validated; absence never errors and top-level defaults are not reapplied.
// A nested object that is supplied is validated as a whole, so its required
// children apply and its child defaults fill in (the field is newly
// introduced on this record).
func (s Schema) ValidatePartial(doc map[string]any) (map[string]any, error) {
	verr := &ValidationError{}
	out := make(map[string]any, len(doc))

	for name, value := range doc {
		field, declared := s.Fields[name]
		if !declared {
			continue
		}
		if value == nil {
			continue
		}
		if v, ok := field.check(name, value, verr); ok {
			out[name] = v
		}
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return out, nil
}

// check validates a present value against one rule node. It returns the
// coerced value and whether it passed.
func (f Field) check(path string, value any, verr *ValidationError) (any, bool) {
	switch f.Kind {
	case String:
		return f.checkString(path, value, verr)
	case Int:
		return f.checkInt(path, value, verr)
	case Float:
		return f.checkFloat(path, value, verr)
	case Bool:
		b, ok := value.(bool)
		if !ok {
			verr.add(path, "must be a boolean")
			return nil, false
		}
		return b, true
	case Time:
		return f.checkTime(path, value, verr)
	case Object:
		return f.checkObject(path, value, verr)
	case Array:
		return f.checkArray(path, value, verr)
	case Map:
		m, ok := value.(map[string]any)
		if !ok {
			verr.add(path, "must be an object")
			return nil, false
		}
		return m, true
	}
	verr.add(path, "has an unsupported kind")
	return nil, false
}

func (f Field) checkString(path string, value any, verr *ValidationError) (any, bool) {
	s, ok := value.(string)
	if !ok {
		verr.add(path, "must be a string")
		return nil, false
	}

	valid := true
	if f.MaxLen > 0 && len([]rune(s)) > f.MaxLen {
		verr.add(path, fmt.Sprintf("must be at most %d characters", f.MaxLen))
		valid = false
	}
	if len(f.Enum) > 0 && !contains(f.Enum, s) {
		verr.add(path, "must be one of: "+strings.Join(f.Enum, ", "))
		valid = false
	}
	if f.Pattern != nil && !f.Pattern.MatchString(s) {
		msg := f.PatternMsg
		if msg == "" {
			msg = "has an invalid format"
		}
		verr.add(path, msg)
		valid = false
	}
	return s, valid
}

func (f Field) checkInt(path string, value any, verr *ValidationError) (any, bool) {
	n, ok := toFloat(value)
	if !ok || n != math.Trunc(n) {
		verr.add(path, "must be an integer")
		return nil, false
	}
	if !f.checkBounds(path, n, verr) {
		return nil, false
	}
	return int(n), true
}

func (f Field) checkFloat(path string, value any, verr *ValidationError) (any, bool) {
	n, ok := toFloat(value)
	if !ok {
		verr.add(path, "must be a number")
		return nil, false
	}
	if !f.checkBounds(path, n, verr) {
		return nil, false
	}
	return n, true
}

func (f Field) checkBounds(path string, n float64, verr *ValidationError) bool {
	switch {
	case f.Min != nil && f.Max != nil:
		if n < *f.Min || n > *f.Max {
			verr.add(path, fmt.Sprintf("must be between %s and %s", formatBound(*f.Min), formatBound(*f.Max)))
			return false
		}
	case f.Min != nil:
		if n < *f.Min {
			verr.add(path, "must be at least "+formatBound(*f.Min))
			return false
		}
	case f.Max != nil:
		if n > *f.Max {
			verr.add(path, "must be at most "+formatBound(*f.Max))
			return false
		}
	}
	return true
}

func (f Field) checkTime(path string, value any, verr *ValidationError) (any, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			verr.add(path, "must be an RFC 3339 timestamp")
			return nil, false
		}
		return t, true
	}
	verr.add(path, "must be a timestamp")
	return nil, false
}

func (f Field) checkObject(path string, value any, verr *ValidationError) (any, bool) {
	m, ok := value.(map[string]any)
	if !ok {
		verr.add(path, "must be an object")
		return nil, false
	}

	out := make(map[string]any, len(f.Fields))
	before := len(verr.Fields)

	for name, child := range f.Fields {
		childPath := path + "." + name
		v, present := m[name]
		if !present || v == nil {
			if child.Required {
				verr.add(childPath, "is required")
				continue
			}
			if def := defaultFor(child); def != nil {
				out[name] = def
			}
			continue
		}
		if cv, ok := child.check(childPath, v, verr); ok {
			out[name] = cv
		}
	}

	return out, len(verr.Fields) == before
}

func (f Field) checkArray(path string, value any, verr *ValidationError) (any, bool) {
	items, ok := toSlice(value)
	if !ok {
		verr.add(path, "must be an array")
		return nil, false
	}
	if len(items) == 0 && !f.AllowEmpty {
		verr.add(path, "must not be empty")
		return nil, false
	}
	if f.Elem == nil {
		return items, true
	}

	out := make([]any, 0, len(items))
	before := len(verr.Fields)
	for i, item := range items {
		elemPath := path + "." + strconv.Itoa(i)
		if item == nil {
			verr.add(elemPath, "is required")
			continue
		}
		if v, ok := f.Elem.check(elemPath, item, verr); ok {
			out = append(out, v)
		}
	}
	return out, len(verr.Fields) == before
}

// defaultFor materializes a field's default, cascading child defaults into
// object defaults so a constructed sub-document is itself normalized.
func defaultFor(f Field) any {
	if f.Default == nil {
		return nil
	}
	def := copyValue(f.Default)
	if f.Kind == Object {
		m, ok := def.(map[string]any)
		if !ok {
			return def
		}
		for name, child := range f.Fields {
			if _, present := m[name]; present {
				continue
			}
			if cd := defaultFor(child); cd != nil {
				m[name] = cd
			}
		}
		return m
	}
	return def
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = copyValue(e)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = copyValue(e)
		}
		return s
	}
	return v
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func toSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []int:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []float64:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	}
	return nil, false
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
