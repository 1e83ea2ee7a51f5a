package transcode

import "bytes"

// gzipMagic is the two byte gzip member header.
var gzipMagic = []byte{0x1f, 0x8b}

// zlibHeaders are the CMF/FLG pairs written for a 32K window at each
// compression level class (none/fast, low, default, best).
var zlibHeaders = [][]byte{
	{0x78, 0x01},
	{0x78, 0x5e},
	{0x78, 0x9c},
	{0x78, 0xda},
}

// IsEncoded reports whether value looks like it is already encoded in the
// given format. Value may be a string or a []byte; anything else is false.
//
// This is a heuristic based on structural prefixes and suffixes only. It
// does not validate, so false positives and false negatives are expected:
//
//   - json: the trimmed value starts and ends with {}, [] or "". Bare
//     numbers and the literals true, false and null do not count.
//   - xml: the value starts with '<' and ends with '>'.
//   - gzip: the first two bytes are the gzip magic number 1F 8B.
//   - zlib: the first two bytes are a standard zlib header (78 01, 78 5E,
//     78 9C or 78 DA).
//
// Unknown formats report false.
func IsEncoded(f Format, value any) bool {
	var b []byte
	switch v := value.(type) {
	case string:
		b = []byte(v)
	case []byte:
		b = v
	default:
		return false
	}

	switch f {
	case FormatJSON:
		b = bytes.TrimSpace(b)
		if len(b) < 2 {
			return false
		}
		first, last := b[0], b[len(b)-1]
		return (first == '{' && last == '}') ||
			(first == '[' && last == ']') ||
			(first == '"' && last == '"')
	case FormatXML:
		return len(b) >= 2 && b[0] == '<' && b[len(b)-1] == '>'
	case FormatGzip:
		return bytes.HasPrefix(b, gzipMagic)
	case FormatZlib:
		if len(b) < 2 {
			return false
		}
		for _, h := range zlibHeaders {
			if b[0] == h[0] && b[1] == h[1] {
				return true
			}
		}
		return false
	default:
		return false
	}
}
