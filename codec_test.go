package transcode

import (
	"errors"
	"testing"
)

func TestRequireInput(t *testing.T) {
	if err := RequireInput(FormatXML, nil); !errors.Is(err, ErrNoInput) {
		t.Errorf("nil input: got %v, want ErrNoInput", err)
	}
	for _, v := range []any{"", 0, map[string]any{}, false} {
		if err := RequireInput(FormatXML, v); err != nil {
			t.Errorf("RequireInput(%#v) = %v, want nil", v, err)
		}
	}
}

func TestEncodeInput(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"string", "abc", "abc"},
		{"bytes", []byte("abc"), "abc"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeInput(FormatGzip, tt.input)
			if err != nil {
				t.Fatalf("EncodeInput() error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInput_Errors(t *testing.T) {
	_, err := EncodeInput(FormatGzip, nil)
	var ce *ConfigError
	if !errors.As(err, &ce) || !errors.Is(err, ErrNoInput) || ce.Format != FormatGzip {
		t.Errorf("nil encode input: got %#v", err)
	}

	_, err = EncodeInput(FormatGzip, 3)
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, ErrEncode) {
		t.Errorf("int encode input: got %v", err)
	}

	_, err = DecodeInput(FormatZlib, []int{1})
	var codecErr *CodecError
	if !errors.As(err, &codecErr) || codecErr.Kind != FormatZlib || !errors.Is(err, ErrDecode) {
		t.Errorf("slice decode input: got %#v", err)
	}
}
