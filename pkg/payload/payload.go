// Package payload decodes structured messages given on the command line into
// values the logger renders as objects.
//
// JSON and YAML documents keep the key order of the input: mappings become
// cornlog.Object values and sequences become []any. JSON numbers are kept as
// json.Number so their literal survives. JSON5 is decoded with
// github.com/titanous/json5 into Go maps, so its keys render sorted.
package payload

import (
	"encoding/json"
	"strings"

	"github.com/hyp3rd/ewrap"
	"github.com/titanous/json5"
	"gopkg.in/yaml.v3"

	"github.com/hyp3rd/cornlog"
)

// Format names the encoding of a message.
type Format string

const (
	// FormatText keeps the message as a plain string.
	FormatText Format = "text"
	// FormatJSON decodes a strict JSON document.
	FormatJSON Format = "json"
	// FormatYAML decodes a YAML document.
	FormatYAML Format = "yaml"
	// FormatJSON5 decodes a JSON5 document.
	FormatJSON5 Format = "json5"
)

// ErrUnknownFormat is returned for format names other than text, json, yaml and json5.
var ErrUnknownFormat = ewrap.New("unknown payload format")

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatJSON5}
}

// ParseFormat converts a case-insensitive name into a Format. An empty name is text.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON5:
		return FormatJSON5, nil
	default:
		return "", ewrap.Wrap(ErrUnknownFormat, "parsing format").WithMetadata("format", name)
	}
}

// Decode converts input according to format.
func Decode(format Format, input string) (any, error) {
	switch format {
	case FormatText, "":
		return input, nil
	case FormatJSON:
		if !json.Valid([]byte(input)) {
			return nil, ewrap.New("invalid JSON message").WithMetadata("format", format)
		}

		return decodeJSON(input)
	case FormatYAML:
		return decodeYAML(input)
	case FormatJSON5:
		return decodeJSON5(input)
	default:
		return nil, ewrap.Wrap(ErrUnknownFormat, "decoding message").WithMetadata("format", format)
	}
}

func decodeJSON(input string) (any, error) {
	decoder := json.NewDecoder(strings.NewReader(input))
	decoder.UseNumber()

	value, err := readJSONValue(decoder)
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to decode JSON message")
	}

	return value, nil
}

// readJSONValue consumes one value from the token stream. Objects are read key by
// key so the input order is kept.
func readJSONValue(decoder *json.Decoder) (any, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := token.(json.Delim)
	if !ok {
		// string, bool, json.Number or nil
		return token, nil
	}

	switch delim {
	case '{':
		obj := cornlog.Object{}

		for decoder.More() {
			keyToken, err := decoder.Token()
			if err != nil {
				return nil, err
			}

			key, ok := keyToken.(string)
			if !ok {
				return nil, ewrap.New("object key is not a string").WithMetadata("token", keyToken)
			}

			value, err := readJSONValue(decoder)
			if err != nil {
				return nil, err
			}

			obj = obj.Set(key, value)
		}

		return obj, closeDelim(decoder)
	case '[':
		items := []any{}

		for decoder.More() {
			value, err := readJSONValue(decoder)
			if err != nil {
				return nil, err
			}

			items = append(items, value)
		}

		return items, closeDelim(decoder)
	default:
		return nil, ewrap.New("unexpected JSON delimiter").WithMetadata("delim", delim.String())
	}
}

func closeDelim(decoder *json.Decoder) error {
	_, err := decoder.Token()

	return err
}

func decodeYAML(input string) (any, error) {
	var doc yaml.Node

	err := yaml.Unmarshal([]byte(input), &doc)
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to decode YAML message")
	}

	if doc.Kind == 0 {
		return cornlog.Object{}, nil
	}

	return fromNode(&doc)
}

func fromNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil //nolint:nilnil // an empty document is null.
		}

		return fromNode(node.Content[0])
	case yaml.MappingNode:
		obj := make(cornlog.Object, 0, len(node.Content)/2)

		for i := 0; i+1 < len(node.Content); i += 2 {
			value, err := fromNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}

			obj = obj.Set(node.Content[i].Value, value)
		}

		return obj, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))

		for _, child := range node.Content {
			value, err := fromNode(child)
			if err != nil {
				return nil, err
			}

			items = append(items, value)
		}

		return items, nil
	case yaml.AliasNode:
		return fromNode(node.Alias)
	case yaml.ScalarNode:
		var value any

		err := node.Decode(&value)
		if err != nil {
			return nil, ewrap.Wrap(err, "failed to decode scalar").
				WithMetadata("line", node.Line).
				WithMetadata("column", node.Column)
		}

		return value, nil
	default:
		return nil, ewrap.New("unsupported YAML node").WithMetadata("line", node.Line)
	}
}

func decodeJSON5(input string) (any, error) {
	var value any

	err := json5.Unmarshal([]byte(input), &value)
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to decode JSON5 message")
	}

	return value, nil
}
