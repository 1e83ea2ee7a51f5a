package pretty

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zoobzio/transcode"
)

// Indent is an indentation unit: one or more spaces, or one or more tabs.
// The empty Indent means no indentation where callers allow it.
type Indent string

// Spaces returns an Indent of n spaces. Non-positive n yields the empty Indent.
func Spaces(n int) Indent {
	if n <= 0 {
		return ""
	}
	return Indent(strings.Repeat(" ", n))
}

// Tabs returns an Indent of n tabs. Non-positive n yields the empty Indent.
func Tabs(n int) Indent {
	if n <= 0 {
		return ""
	}
	return Indent(strings.Repeat("\t", n))
}

// Validate fails with transcode.ErrInvalidIndent unless i is a run of
// spaces or a run of tabs. Mixed runs are rejected.
func (i Indent) Validate() error {
	if i == "" {
		return invalidIndent(i)
	}
	first := i[0]
	if first != ' ' && first != '\t' {
		return invalidIndent(i)
	}
	for j := 1; j < len(i); j++ {
		if i[j] != first {
			return invalidIndent(i)
		}
	}
	return nil
}

// Width is the number of characters in the unit.
func (i Indent) Width() int { return len(i) }

// IsTabs reports whether the unit is made of tabs.
func (i Indent) IsTabs() bool { return i != "" && i[0] == '\t' }

// UnmarshalYAML accepts either an integer (that many spaces) or a string.
func (i *Indent) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!int" {
		n, err := strconv.Atoi(node.Value)
		if err != nil {
			return invalidIndent(Indent(node.Value))
		}
		*i = Spaces(n)
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	*i = Indent(s)
	return nil
}

// ValidateNewline fails with transcode.ErrInvalidNewline unless nl is
// "\n", "\r\n" or "\r".
func ValidateNewline(nl string) error {
	switch nl {
	case "\n", "\r\n", "\r":
		return nil
	default:
		return &transcode.ConfigError{Err: transcode.ErrInvalidNewline, Option: "newline", Value: strconv.Quote(nl)}
	}
}

func invalidIndent(i Indent) error {
	return &transcode.ConfigError{Err: transcode.ErrInvalidIndent, Option: "indent", Value: strconv.Quote(string(i))}
}
