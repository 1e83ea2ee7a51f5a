package gzip

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/zoobzio/transcode"
)

func samples(t *testing.T) map[string][]byte {
	t.Helper()
	random := make([]byte, 64<<10)
	_, _ = rand.Read(random)
	return map[string][]byte{
		"empty":      {},
		"short":      []byte("hello"),
		"repetitive": bytes.Repeat([]byte("abcabcabc"), 4096),
		"random":     random,
		"binary":     {0x00, 0xff, 0x1f, 0x8b, 0x78, 0x9c},
	}
}

func TestRoundTrip_AllLevels(t *testing.T) {
	for name, data := range samples(t) {
		for level := DefaultCompression; level <= BestCompression; level++ {
			o := &Options{Level: level}
			enc, err := Encode(data, o)
			if err != nil {
				t.Fatalf("%s level %d: Encode() error: %v", name, level, err)
			}
			if !transcode.IsEncoded(transcode.FormatGzip, enc) {
				t.Errorf("%s level %d: output not recognized as gzip", name, level)
			}

			dec, err := Decode(enc, o)
			if err != nil {
				t.Fatalf("%s level %d: Decode() error: %v", name, level, err)
			}
			if !bytes.Equal(dec, data) {
				t.Errorf("%s level %d: round trip mismatch", name, level)
			}
		}
	}
}

func TestRoundTrip_Deflate(t *testing.T) {
	o := &Options{Level: BestCompression, Mode: ModeDeflate}
	data := []byte(strings.Repeat("deflate me ", 100))

	enc, err := Encode(data, o)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if transcode.IsEncoded(transcode.FormatGzip, enc) {
		t.Error("raw deflate output should not carry a gzip header")
	}
	if len(enc) >= len(data) {
		t.Errorf("compressed %d bytes to %d", len(data), len(enc))
	}

	dec, err := Decode(enc, o)
	if err != nil || !bytes.Equal(dec, data) {
		t.Errorf("Decode() = %d bytes, %v", len(dec), err)
	}

	// a raw stream is not a gzip member
	if _, err := Decode(enc, nil); !errors.Is(err, transcode.ErrDecode) {
		t.Errorf("gzip mode decode of raw stream: got %v, want ErrDecode", err)
	}
}

func TestIsEncoded_PlainText(t *testing.T) {
	if transcode.IsEncoded(transcode.FormatGzip, "plain text") {
		t.Error("plain text detected as gzip")
	}
	if transcode.IsEncoded(transcode.FormatGzip, []byte{0x1f}) {
		t.Error("single magic byte detected as gzip")
	}
}

func TestDecode_MultipleMembers(t *testing.T) {
	a, err := Encode([]byte("foo"), nil)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	b, err := Encode([]byte("bar"), nil)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	out, err := Decode(append(a, b...), nil)
	if err != nil || string(out) != "foobar" {
		t.Errorf("Decode() = %q, %v, want foobar", out, err)
	}
}

func TestDecode_Length(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 1000)
	enc, err := Encode(data, nil)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	_, err = Decode(enc, &Options{Level: DefaultCompression, Length: 10})
	if !errors.Is(err, transcode.ErrLengthExceeded) || !errors.Is(err, transcode.ErrDecode) {
		t.Errorf("got %v, want ErrLengthExceeded", err)
	}
	var ce *transcode.CodecError
	if !errors.As(err, &ce) || ce.Kind != transcode.FormatGzip {
		t.Errorf("got %#v, want a gzip CodecError", err)
	}

	out, err := Decode(enc, &Options{Level: DefaultCompression, Length: 1000})
	if err != nil || len(out) != 1000 {
		t.Errorf("at the limit: got %d bytes, %v", len(out), err)
	}
}

func TestDecode_Errors(t *testing.T) {
	enc, err := Encode([]byte("some text to compress"), nil)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	tests := map[string][]byte{
		"empty":     {},
		"plain":     []byte("plain text"),
		"truncated": enc[:len(enc)-6],
		"bad magic": append([]byte{0x1f, 0x8c}, enc[2:]...),
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(input, nil)
			if !errors.Is(err, transcode.ErrDecode) {
				t.Fatalf("got %v, want ErrDecode", err)
			}
			var ce *transcode.CodecError
			if !errors.As(err, &ce) || ce.Kind != transcode.FormatGzip {
				t.Errorf("got %#v, want a gzip CodecError", err)
			}
			if !strings.Contains(err.Error(), "gzip decode") {
				t.Errorf("message %q should name the codec", err)
			}
		})
	}
}

func TestInvalidOptions(t *testing.T) {
	tests := map[string]*Options{
		"level too high": {Level: 10},
		"level too low":  {Level: -2},
		"mode":           {Mode: 7},
		"length":         {Length: -1},
	}
	for name, o := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Encode([]byte("x"), o)
			var ce *transcode.ConfigError
			if !errors.Is(err, transcode.ErrInvalidOption) || !errors.As(err, &ce) || ce.Format != transcode.FormatGzip {
				t.Errorf("Encode() error = %#v, want a gzip ConfigError", err)
			}
			if _, err := factory(o); !errors.Is(err, transcode.ErrInvalidOption) {
				t.Errorf("factory() error = %v", err)
			}
		})
	}
}

func TestOptionsFromMap(t *testing.T) {
	o, err := OptionsFromMap(map[string]any{"level": 9, "mode": "deflate", "length": 100})
	if err != nil || !reflect.DeepEqual(o, &Options{Level: 9, Mode: ModeDeflate, Length: 100}) {
		t.Errorf("got %+v, %v", o, err)
	}

	o, err = OptionsFromMap(nil)
	if err != nil || !reflect.DeepEqual(o, DefaultOptions()) {
		t.Errorf("nil map: got %+v, %v", o, err)
	}

	if _, err := OptionsFromMap(map[string]any{"mode": "brotli"}); !errors.Is(err, transcode.ErrInvalidOption) {
		t.Errorf("unknown mode: got %v", err)
	}
}

func TestMode_String(t *testing.T) {
	tests := []struct {
		m    Mode
		want string
	}{
		{ModeGzip, "gzip"},
		{ModeDeflate, "deflate"},
		{Mode(9), "mode(9)"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCodec(t *testing.T) {
	ctx := context.Background()
	c, err := transcode.New(transcode.FormatGzip, map[string]any{"level": 1})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if c.Format() != transcode.FormatGzip {
		t.Errorf("Format() = %v", c.Format())
	}

	enc, err := c.Encode(ctx, "hello gzip")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	packed, ok := enc.([]byte)
	if !ok {
		t.Fatalf("Encode() returned %T, want []byte", enc)
	}

	dec, err := c.Decode(ctx, packed)
	if err != nil || !reflect.DeepEqual(dec, []byte("hello gzip")) {
		t.Errorf("Decode() = %v, %v", dec, err)
	}

	// string input decodes too
	dec, err = c.Decode(ctx, string(packed))
	if err != nil || !reflect.DeepEqual(dec, []byte("hello gzip")) {
		t.Errorf("Decode(string) = %v, %v", dec, err)
	}
}

func TestCodec_InputErrors(t *testing.T) {
	ctx := context.Background()
	c := New(nil)

	if _, err := c.Encode(ctx, nil); !errors.Is(err, transcode.ErrNoInput) {
		t.Errorf("Encode(nil) error = %v", err)
	}
	_, err := c.Encode(ctx, 3.5)
	if !errors.Is(err, transcode.ErrInvalidInput) || !errors.Is(err, transcode.ErrEncode) {
		t.Errorf("Encode(3.5) error = %v", err)
	}
	if _, err := c.Decode(ctx, nil); !errors.Is(err, transcode.ErrNoInput) {
		t.Errorf("Decode(nil) error = %v", err)
	}
}

func TestFactory(t *testing.T) {
	for _, opts := range []any{nil, DefaultOptions(), Options{}, map[string]any{}} {
		c, err := factory(opts)
		if err != nil {
			t.Fatalf("factory(%#v) error: %v", opts, err)
		}
		if c.Format() != transcode.FormatGzip {
			t.Errorf("Format() = %v", c.Format())
		}
	}

	if _, err := factory("fast"); !errors.Is(err, transcode.ErrInvalidOption) {
		t.Errorf("factory(string) error = %v", err)
	}
}

func TestNew_CopiesOptions(t *testing.T) {
	o := &Options{Level: BestSpeed, Mode: ModeDeflate}
	c := New(o)
	o.Mode = ModeGzip

	enc, err := c.Encode(context.Background(), []byte("abc"))
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if transcode.IsEncoded(transcode.FormatGzip, enc) {
		t.Error("codec should keep the deflate mode it was built with")
	}
}
