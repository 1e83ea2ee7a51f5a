package json

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zoobzio/transcode"
)

// Flag is a bitmask of encode and decode behaviors.
type Flag uint16

// Encode flags.
const (
	// PreserveZeroFraction writes 1.0 rather than 1 for integral floats.
	PreserveZeroFraction Flag = 1 << iota
	// UnescapedSlashes leaves '/' as is.
	UnescapedSlashes
	// UnescapedUnicode writes non-ASCII text as UTF-8 rather than \u escapes.
	UnescapedUnicode
	// HexTag escapes '<', '>' and '&' as \u003c, \u003e and \u0026.
	HexTag
	// PrettyPrint indents output with four spaces. Ignored when Indent is set.
	PrettyPrint

	// BigIntAsString keeps numbers as their literal text (Number) so large
	// integers survive decoding.
	BigIntAsString
	// ObjectAsMap decodes objects as map[string]any rather than *Object.
	ObjectAsMap
)

const (
	// encodeForced is always OR'd into encode flags.
	encodeForced = PreserveZeroFraction | UnescapedSlashes | UnescapedUnicode
	// decodeForced is always OR'd into decode flags.
	decodeForced = BigIntAsString
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{PreserveZeroFraction, "preserve_zero_fraction"},
	{UnescapedSlashes, "unescaped_slashes"},
	{UnescapedUnicode, "unescaped_unicode"},
	{HexTag, "hex_tag"},
	{PrettyPrint, "pretty_print"},
	{BigIntAsString, "bigint_as_string"},
	{ObjectAsMap, "object_as_map"},
}

// Has reports whether every bit of x is set in f.
func (f Flag) Has(x Flag) bool { return f&x == x }

// String lists the set flags joined by '|'.
func (f Flag) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	for _, n := range flagNames {
		if f&n.flag != 0 {
			parts = append(parts, n.name)
			f &^= n.flag
		}
	}
	if f != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(f), 16))
	}
	return strings.Join(parts, "|")
}

// ParseFlag returns the flag with the given name.
func ParseFlag(name string) (Flag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, n := range flagNames {
		if n.name == name {
			return n.flag, nil
		}
	}
	return 0, transcode.NewConfigError(transcode.ErrInvalidOption, transcode.FormatJSON, "flags", name)
}

// UnmarshalYAML accepts an integer bitmask, a single flag name, or a list
// of flag names.
func (f *Flag) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!int" {
			n, err := strconv.ParseUint(node.Value, 0, 16)
			if err != nil {
				return transcode.NewConfigError(transcode.ErrInvalidOption, transcode.FormatJSON, "flags", node.Value)
			}
			*f = Flag(n)
			return nil
		}
		flag, err := ParseFlag(node.Value)
		if err != nil {
			return err
		}
		*f = flag
		return nil

	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		var out Flag
		for _, name := range names {
			flag, err := ParseFlag(name)
			if err != nil {
				return err
			}
			out |= flag
		}
		*f = out
		return nil

	default:
		return transcode.NewConfigError(transcode.ErrInvalidOption, transcode.FormatJSON, "flags", node.Value)
	}
}
