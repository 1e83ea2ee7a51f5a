package transcode

import "strings"

// Format identifies one of the supported data formats.
// The set is closed; it doubles as the kind of a CodecError.
type Format uint8

const (
	// FormatJSON is JSON text.
	FormatJSON Format = iota + 1

	// FormatXML is an XML document.
	FormatXML

	// FormatGzip is gzip framed deflate data.
	FormatGzip

	// FormatZlib is zlib framed deflate data.
	FormatZlib
)

var formatNames = map[Format]string{
	FormatJSON: "json",
	FormatXML:  "xml",
	FormatGzip: "gzip",
	FormatZlib: "zlib",
}

// Formats returns every supported format in declaration order.
func Formats() []Format {
	return []Format{FormatJSON, FormatXML, FormatGzip, FormatZlib}
}

// String returns the lower-case format name.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	_, ok := formatNames[f]
	return ok
}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for f, n := range formatNames {
		if n == want {
			return f, nil
		}
	}
	return 0, &ConfigError{Err: ErrUnknownFormat, Value: name}
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, &ConfigError{Err: ErrUnknownFormat, Value: uint8(f)}
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
