// Package pretty re-indents compact JSON text.
//
// The printer makes a single forward pass over its input, one byte at a
// time. It never parses or validates: string literals are copied intact,
// structural whitespace is dropped and regenerated, and malformed input
// simply comes out malformed but re-indented. The only errors it reports
// are for bad indent or newline parameters.
//
//	out, err := pretty.Prettify(`{"a":1,"b":[1,2]}`, 2, "\n")
//	// {
//	//   "a": 1,
//	//   "b": [
//	//     1,
//	//     2
//	//   ]
//	// }
//
// Empty containers collapse onto one line ({} and []), and re-running the
// printer over its own output with the same parameters is a no-op.
package pretty

import (
	"bytes"
	"reflect"
	"strings"
)

// Unit is an indent setting: a string used as is, or an integer
// count of spaces.
type Unit interface {
	~string | ~int
}

// Prettify re-indents src using indent per level and newline between lines.
//
// An integer indent means that many spaces. The resulting unit must be one
// or more spaces or one or more tabs, and newline must be "\n", "\r\n" or
// "\r"; otherwise Prettify fails with transcode.ErrInvalidIndent or
// transcode.ErrInvalidNewline. Input that is empty or holds no '{' or '['
// is returned unchanged.
func Prettify[U Unit](src string, indent U, newline string) (string, error) {
	out, err := Format(nil, []byte(src), unitOf(indent), newline)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Format appends the re-indented form of src to dst.
func Format(dst, src []byte, unit, newline string) ([]byte, error) {
	if err := Indent(unit).Validate(); err != nil {
		return nil, err
	}
	if err := ValidateNewline(newline); err != nil {
		return nil, err
	}
	if len(src) == 0 || !bytes.ContainsAny(src, "{[") {
		return append(dst, src...), nil
	}
	return appendPretty(dst, src, unit, newline), nil
}

// unitOf normalizes an indent setting to its string form.
func unitOf[U Unit](indent U) string {
	rv := reflect.ValueOf(indent)
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	n := int(rv.Int())
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

func appendPretty(buf, src []byte, unit, newline string) []byte {
	// Only bytes we appended are inspected when collapsing empty containers.
	base := len(buf)

	level := 0
	noEscape := true
	inString := false
	literal := -1 // start of the pending string literal in src

	for i := 0; i < len(src); i++ {
		c := src[i]

		if noEscape && c == '"' {
			inString = !inString
		}

		if inString {
			if literal < 0 {
				literal = i
			}
			if c == '\\' {
				noEscape = !noEscape
			} else {
				noEscape = true
			}
			continue
		}

		// The closing quote flushes the literal untouched.
		if literal >= 0 {
			buf = append(buf, src[literal:i+1]...)
			literal = -1
			continue
		}

		switch c {
		case ' ', '\t', '\n', '\r':
			// regenerated below
		case ':':
			buf = append(buf, ':', ' ')
		case ',':
			buf = append(buf, ',')
			buf = appendBreak(buf, newline, unit, level)
		case '{', '[':
			level++
			buf = append(buf, c)
			buf = appendBreak(buf, newline, unit, level)
		case '}', ']':
			level--
			trimmed := bytes.TrimRight(buf[base:], " \t\r\n")
			if n := len(trimmed); n > 0 && trimmed[n-1] == opener(c) {
				buf = append(buf[:base+n], c)
				continue
			}
			buf = appendBreak(buf, newline, unit, level)
			buf = append(buf, c)
		default:
			buf = append(buf, c)
		}
	}

	// Unterminated literal in malformed input.
	if literal >= 0 {
		buf = append(buf, src[literal:]...)
	}
	return buf
}

func appendBreak(buf []byte, newline, unit string, level int) []byte {
	buf = append(buf, newline...)
	for range level {
		buf = append(buf, unit...)
	}
	return buf
}

func opener(closer byte) byte {
	if closer == '}' {
		return '{'
	}
	return '['
}
