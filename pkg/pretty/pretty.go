// Package pretty renders structured values as indented, colorized, JSON-like text.
//
// Two variants are provided. ColorizeKeysIndent is the one used by the logger: dates
// (time.Time values and ISO-8601 strings with millisecond precision) are rendered as
// it-IT local date/times, booleans are green or red. ColorizeKeys keeps dates as
// ISO-8601 strings and renders booleans with the value style.
//
// Object keys follow the insertion order of cornlog.Object, the declaration order
// of struct fields (json tag names are honored) and the sorted order of Go maps.
package pretty

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hyp3rd/cornlog"
	"github.com/hyp3rd/cornlog/internal/utils"
	"github.com/hyp3rd/cornlog/pkg/payload"
)

// UndefinedValue marks a value that is absent rather than null.
type UndefinedValue struct{}

// Undefined renders as `undefined`.
//
//nolint:gochecknoglobals
var Undefined = UndefinedValue{}

const (
	maxDepthToken = "[max depth]"
	circularToken = "[circular]"
)

//nolint:gochecknoglobals
var isoDate = regexp.MustCompile(`^(\d+)[-/](\d+)[-/](\d+)T(\d{2}):(\d{2}):(\d{2})\.(\d{3})Z$`)

// Value styles shared by both variants.
//
//nolint:gochecknoglobals
var (
	dateStyle   = cornlog.StyleBlue
	stringStyle = cornlog.StyleYellow
	numberStyle = cornlog.StyleCyan
	nullStyle   = cornlog.StyleDim
	mutedStyle  = cornlog.StyleGray
	trueStyle   = cornlog.StyleGreen
	falseStyle  = cornlog.StyleRed
)

//nolint:gochecknoglobals
var (
	objectType     = reflect.TypeFor[cornlog.Object]()
	rawMessageType = reflect.TypeFor[json.RawMessage]()
)

type numberLike interface {
	Float64() (float64, error)
	String() string
}

type visitKey struct {
	ptr uintptr
	typ reflect.Type
	len int
}

type printer struct {
	opts     Options
	keyStyle cornlog.Style
	locale   bool
	visiting map[visitKey]struct{}
}

// ColorizeKeysIndent renders value with locale dates and colored booleans.
func ColorizeKeysIndent(value any, opts ...Option) string {
	return newPrinter(true, opts).render(value)
}

// ColorizeKeys renders value with ISO dates and value-styled booleans.
func ColorizeKeys(value any, opts ...Option) string {
	return newPrinter(false, opts).render(value)
}

// ParseDate reports whether s is an ISO-8601 instant with millisecond precision
// and returns it. Out of range components are rejected.
func ParseDate(s string) (time.Time, bool) {
	match := isoDate.FindStringSubmatch(s)
	if match == nil {
		return time.Time{}, false
	}

	parts := make([]int, 0, len(match)-1)

	for _, raw := range match[1:] {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return time.Time{}, false
		}

		parts = append(parts, n)
	}

	year, month, day := parts[0], parts[1], parts[2]
	hour, minute, sec, milli := parts[3], parts[4], parts[5], parts[6]

	if month < 1 || month > 12 || day < 1 || hour > 23 || minute > 59 || sec > 59 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, hour, minute, sec, milli*int(time.Millisecond), time.UTC)
	if t.Day() != day {
		// time.Date normalized an overflowing day such as 31/02.
		return time.Time{}, false
	}

	return t, true
}

func newPrinter(locale bool, opts []Option) *printer {
	options := buildOptions(opts)

	return &printer{
		opts:     options,
		keyStyle: options.KeyStyle.Then(options.KeyBackground).Then(options.KeyDecoration),
		locale:   locale,
		visiting: make(map[visitKey]struct{}),
	}
}

func (p *printer) render(value any) string {
	return p.format(reflect.ValueOf(value), p.opts.Indent, 0)
}

func (p *printer) format(v reflect.Value, indent, depth int) string {
	if doc, ok := rawDocument(v); ok {
		return p.format(reflect.ValueOf(doc), indent, depth)
	}

	if out, ok := p.leaf(v); ok {
		return out
	}

	if depth >= p.opts.MaxDepth {
		return mutedStyle.Apply(maxDepthToken)
	}

	key, tracked := visitKeyOf(v)
	if tracked {
		if _, seen := p.visiting[key]; seen {
			return mutedStyle.Apply(circularToken)
		}

		p.visiting[key] = struct{}{}
		defer delete(p.visiting, key)
	}

	if v.Type() == objectType && v.CanInterface() {
		return p.ordered(v.Interface().(cornlog.Object), indent, depth) //nolint:forcetypeassert
	}

	//nolint:exhaustive // leaf kinds are handled above.
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return p.format(v.Elem(), indent, depth)
	case reflect.Slice, reflect.Array:
		return p.array(v, indent, depth)
	case reflect.Map:
		return p.mapping(v, indent, depth)
	case reflect.Struct:
		return p.structure(v, indent, depth)
	default:
		return p.opts.ValueStyle.Apply(fmt.Sprint(v))
	}
}

// leaf renders scalars, dates and nil values. It reports false for composites.
//
//nolint:cyclop,exhaustive // one case per scalar shape.
func (p *printer) leaf(v reflect.Value) (string, bool) {
	if !v.IsValid() {
		return nullStyle.Apply("null"), true
	}

	if isNil(v) {
		return nullStyle.Apply("null"), true
	}

	if v.CanInterface() {
		switch typed := v.Interface().(type) {
		case UndefinedValue:
			return mutedStyle.Apply("undefined"), true
		case time.Time:
			return p.date(typed), true
		case time.Duration:
			return p.opts.ValueStyle.Apply(typed.String()), true
		case json.Number:
			return numberStyle.Apply(typed.String()), true
		case numberLike:
			return numberStyle.Apply(typed.String()), true
		case []byte:
			return p.str(string(typed)), true
		case error:
			return p.opts.ValueStyle.Apply(typed.Error()), true
		}
	}

	switch v.Kind() {
	case reflect.Bool:
		return p.boolean(v.Bool()), true
	case reflect.String:
		return p.str(v.String()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return numberStyle.Apply(strconv.FormatInt(v.Int(), 10)), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return numberStyle.Apply(strconv.FormatUint(v.Uint(), 10)), true
	case reflect.Float32, reflect.Float64:
		return numberStyle.Apply(formatFloat(v.Float())), true
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return p.str(string(v.Bytes())), true
		}

		return "", false
	case reflect.Complex64, reflect.Complex128, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return p.opts.ValueStyle.Apply(fmt.Sprint(v)), true
	default:
		return "", false
	}
}

func (p *printer) date(t time.Time) string {
	if p.locale {
		return dateStyle.Apply(utils.LocaleDateTime(t, p.opts.Location))
	}

	return dateStyle.Apply(utils.ISOString(t))
}

func (p *printer) boolean(b bool) string {
	if !p.locale {
		return p.opts.ValueStyle.Apply(strconv.FormatBool(b))
	}

	if b {
		return trueStyle.Apply("true")
	}

	return falseStyle.Apply("false")
}

func (p *printer) str(s string) string {
	if p.locale {
		if t, ok := ParseDate(s); ok {
			return p.date(t)
		}
	}

	return stringStyle.Apply(`"` + s + `"`)
}

func (p *printer) array(v reflect.Value, indent, depth int) string {
	if v.Len() == 0 {
		return "[]"
	}

	pad := strings.Repeat(" ", indent)
	items := make([]string, 0, v.Len())

	for i := range v.Len() {
		items = append(items, pad+p.format(v.Index(i), indent+2, depth+1))
	}

	return "[\n" + strings.Join(items, ",\n") + "\n" + closingPad(indent) + "]"
}

func (p *printer) mapping(v reflect.Value, indent, depth int) string {
	keys := v.MapKeys()
	names := make([]string, len(keys))
	order := make([]int, len(keys))

	for i, key := range keys {
		names[i] = fmt.Sprint(key)
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool { return names[order[a]] < names[order[b]] })

	entries := make([]entry, 0, len(keys))
	for _, i := range order {
		entries = append(entries, entry{key: names[i], value: v.MapIndex(keys[i])})
	}

	return p.object(entries, indent, depth)
}

func (p *printer) ordered(obj cornlog.Object, indent, depth int) string {
	entries := make([]entry, 0, len(obj))
	for _, field := range obj {
		entries = append(entries, entry{key: field.Key, value: reflect.ValueOf(field.Value)})
	}

	return p.object(entries, indent, depth)
}

func (p *printer) structure(v reflect.Value, indent, depth int) string {
	return p.object(structEntries(v, nil), indent, depth)
}

type entry struct {
	key   string
	value reflect.Value
}

func (p *printer) object(entries []entry, indent, depth int) string {
	if len(entries) == 0 {
		return "{}"
	}

	pad := strings.Repeat(" ", indent)
	lines := make([]string, 0, len(entries))

	for _, e := range entries {
		lines = append(lines, pad+p.keyStyle.Apply(e.key)+": "+p.format(e.value, indent+2, depth+1))
	}

	return "{\n" + strings.Join(lines, ",\n") + "\n" + closingPad(indent) + "}"
}

// structEntries lists the exported fields of a struct the way encoding/json names
// them. Untagged embedded structs are flattened.
func structEntries(v reflect.Value, entries []entry) []entry {
	typ := v.Type()

	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() && !field.Anonymous {
			continue
		}

		name, omitEmpty, skip := jsonName(field)
		if skip {
			continue
		}

		value := v.Field(i)

		if field.Anonymous && field.Tag.Get("json") == "" {
			embedded := value
			if embedded.Kind() == reflect.Pointer {
				if embedded.IsNil() {
					continue
				}

				embedded = embedded.Elem()
			}

			if embedded.Kind() == reflect.Struct {
				entries = structEntries(embedded, entries)

				continue
			}
		}

		if !field.IsExported() {
			continue
		}

		if omitEmpty && value.IsZero() {
			continue
		}

		entries = append(entries, entry{key: name, value: value})
	}

	return entries
}

//nolint:nonamedreturns
func jsonName(field reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}

	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}

	for opt := range strings.SplitSeq(opts, ",") {
		if opt == "omitempty" || opt == "omitzero" {
			omitEmpty = true
		}
	}

	return name, omitEmpty, false
}

// rawDocument decodes a non-empty json.RawMessage so it renders as the document
// it holds. Invalid JSON is left to the byte slice rendering.
func rawDocument(v reflect.Value) (any, bool) {
	if !v.IsValid() || v.Type() != rawMessageType || v.Len() == 0 || !v.CanInterface() {
		return nil, false
	}

	raw, _ := v.Interface().(json.RawMessage)

	doc, err := payload.Decode(payload.FormatJSON, string(raw))
	if err != nil {
		return nil, false
	}

	return doc, true
}

func isNil(v reflect.Value) bool {
	//nolint:exhaustive // only nillable kinds.
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

func visitKeyOf(v reflect.Value) (visitKey, bool) {
	//nolint:exhaustive // only reference kinds can form cycles.
	switch v.Kind() {
	case reflect.Pointer, reflect.Map:
		return visitKey{ptr: v.Pointer(), typ: v.Type()}, true
	case reflect.Slice:
		return visitKey{ptr: v.Pointer(), typ: v.Type(), len: v.Len()}, true
	default:
		return visitKey{}, false
	}
}

func closingPad(indent int) string {
	return strings.Repeat(" ", max(indent-2, 0))
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	default:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}
