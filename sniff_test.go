package transcode

import "testing"

func TestIsEncoded(t *testing.T) {
	tests := []struct {
		name  string
		f     Format
		value any
		want  bool
	}{
		{"json object", FormatJSON, `{"a":1}`, true},
		{"json array padded", FormatJSON, " [1, 2]\n", true},
		{"json string", FormatJSON, `"hi"`, true},
		{"json empty string literal", FormatJSON, `""`, true},
		{"json bytes", FormatJSON, []byte(`{}`), true},
		{"json number", FormatJSON, "123", false},
		{"json true", FormatJSON, "true", false},
		{"json null", FormatJSON, "null", false},
		{"json lone quote", FormatJSON, `"`, false},
		{"json unbalanced", FormatJSON, `{"a":1`, false},
		{"json mixed brackets", FormatJSON, `{]`, false},
		{"json empty", FormatJSON, "", false},

		{"xml element", FormatXML, "<a>1</a>", true},
		{"xml self closing", FormatXML, "<a/>", true},
		{"xml text", FormatXML, "a", false},
		{"xml single bracket", FormatXML, "<", false},
		{"xml trailing newline", FormatXML, "<a/>\n", false},

		{"gzip magic", FormatGzip, []byte{0x1f, 0x8b, 0x08}, true},
		{"gzip plain text", FormatGzip, "plain text", false},
		{"gzip short", FormatGzip, []byte{0x1f}, false},

		{"zlib none", FormatZlib, []byte{0x78, 0x01}, true},
		{"zlib low", FormatZlib, []byte{0x78, 0x5e}, true},
		{"zlib default", FormatZlib, []byte{0x78, 0x9c, 0x00}, true},
		{"zlib best", FormatZlib, []byte{0x78, 0xda}, true},
		{"zlib other", FormatZlib, []byte{0x78, 0x9d}, false},
		{"zlib short", FormatZlib, []byte{0x78}, false},

		{"unknown format", Format(0), "{}", false},
		{"unsupported value", FormatJSON, 42, false},
		{"nil value", FormatXML, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEncoded(tt.f, tt.value); got != tt.want {
				t.Errorf("IsEncoded(%v, %q) = %v, want %v", tt.f, tt.value, got, tt.want)
			}
		})
	}
}
