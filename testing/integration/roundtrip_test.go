package integration

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/zoobzio/transcode"
	"github.com/zoobzio/transcode/config"
	"github.com/zoobzio/transcode/gzip"
	"github.com/zoobzio/transcode/json"
	"github.com/zoobzio/transcode/pretty"
	codectest "github.com/zoobzio/transcode/testing"
	"github.com/zoobzio/transcode/xml"
	"github.com/zoobzio/transcode/zlib"
)

func TestRegistry_AllFormats(t *testing.T) {
	got := transcode.Registered()
	if !reflect.DeepEqual(got, transcode.Formats()) {
		t.Errorf("Registered() = %v, want %v", got, transcode.Formats())
	}
}

func TestDocument_JSON(t *testing.T) {
	c := codectest.MustCodec(t, transcode.FormatJSON, json.DefaultOptions().WithAssoc(true))
	got := codectest.RoundTrip(t, c, codectest.Document())
	if !reflect.DeepEqual(got, codectest.Document()) {
		t.Errorf("JSON round trip = %#v", got)
	}
}

func TestDocument_XML(t *testing.T) {
	c := codectest.MustCodec(t, transcode.FormatXML, nil)
	got := codectest.RoundTrip(t, c, codectest.Document())
	if !reflect.DeepEqual(got, codectest.Document()) {
		t.Errorf("XML round trip = %#v", got)
	}
}

func TestDocument_XMLThroughJSON(t *testing.T) {
	ctx := context.Background()
	xc := codectest.MustCodec(t, transcode.FormatXML, map[string]any{"indent": true})
	jc := codectest.MustCodec(t, transcode.FormatJSON, map[string]any{"assoc": true})

	doc, err := xc.Encode(ctx, codectest.Document())
	if err != nil {
		t.Fatalf("xml encode: %v", err)
	}
	parsed, err := xc.Decode(ctx, doc)
	if err != nil {
		t.Fatalf("xml decode: %v", err)
	}
	text, err := jc.Encode(ctx, parsed)
	if err != nil {
		t.Fatalf("json encode: %v", err)
	}
	back, err := jc.Decode(ctx, text)
	if err != nil {
		t.Fatalf("json decode: %v", err)
	}
	again, err := xc.Encode(ctx, back)
	if err != nil {
		t.Fatalf("xml re-encode: %v", err)
	}
	if again != doc {
		t.Errorf("XML changed across JSON:\n%s\nvs\n%s", doc, again)
	}
}

func TestCompressed_JSON(t *testing.T) {
	for _, f := range []transcode.Format{transcode.FormatGzip, transcode.FormatZlib} {
		t.Run(f.String(), func(t *testing.T) {
			got := codectest.Chain(t, codectest.Document(),
				codectest.MustCodec(t, transcode.FormatJSON, map[string]any{"assoc": true}),
				codectest.MustCodec(t, f, map[string]any{"level": 9}),
			)
			if !reflect.DeepEqual(got, codectest.Document()) {
				t.Errorf("round trip = %#v", got)
			}
		})
	}
}

func TestCompressed_Payloads(t *testing.T) {
	for _, f := range []transcode.Format{transcode.FormatGzip, transcode.FormatZlib} {
		c := codectest.MustCodec(t, f, nil)
		for name, data := range codectest.Payloads() {
			got := codectest.RoundTrip(t, c, data)
			if !bytes.Equal(got.([]byte), data) {
				t.Errorf("%v %s: round trip mismatch", f, name)
			}
		}
	}
}

func TestZlib_DecodesGzip(t *testing.T) {
	ctx := context.Background()
	gz := codectest.MustCodec(t, transcode.FormatGzip, nil)
	zl := codectest.MustCodec(t, transcode.FormatZlib, nil)

	packed, err := gz.Encode(ctx, "from gzip")
	if err != nil {
		t.Fatalf("gzip encode: %v", err)
	}
	if !transcode.IsEncoded(transcode.FormatGzip, packed) || transcode.IsEncoded(transcode.FormatZlib, packed) {
		t.Fatal("gzip output sniffed wrong")
	}
	out, err := zl.Decode(ctx, packed)
	if err != nil {
		t.Fatalf("zlib decode of gzip: %v", err)
	}
	if string(out.([]byte)) != "from gzip" {
		t.Errorf("got %q", out)
	}
}

func TestPrettify_DecodesSame(t *testing.T) {
	compact, err := json.Encode(codectest.Document(), nil)
	if err != nil {
		t.Fatalf("json encode: %v", err)
	}
	pretty4, err := pretty.Prettify(compact, 4, "\r\n")
	if err != nil {
		t.Fatalf("Prettify: %v", err)
	}
	if !strings.Contains(pretty4, "\r\n    \"library\": {") {
		t.Errorf("unexpected layout:\n%s", pretty4)
	}

	a, err := json.Decode([]byte(compact), json.DefaultOptions().WithAssoc(true))
	if err != nil {
		t.Fatalf("decode compact: %v", err)
	}
	b, err := json.Decode([]byte(pretty4), json.DefaultOptions().WithAssoc(true))
	if err != nil {
		t.Fatalf("decode pretty: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("pretty printed JSON decodes differently:\n%#v\n%#v", a, b)
	}
}

func TestConfig_Codecs(t *testing.T) {
	cfg, err := config.Load(strings.NewReader(`
json:
  indent: "\t"
xml:
  indent: true
gzip:
  mode: deflate
zlib:
  length: 65536
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	codecs, err := cfg.Codecs()
	if err != nil {
		t.Fatalf("Codecs: %v", err)
	}

	got := codectest.Chain(t, codectest.Document(),
		codecs[transcode.FormatXML],
		codecs[transcode.FormatGzip],
		codecs[transcode.FormatZlib],
	)
	if !reflect.DeepEqual(got, codectest.Document()) {
		t.Errorf("config chain = %#v", got)
	}
}

func TestErrors_AreTyped(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		f     transcode.Format
		input any
	}{
		{transcode.FormatJSON, `{"a":`},
		{transcode.FormatXML, "<a><b>"},
		{transcode.FormatGzip, "plain text"},
		{transcode.FormatZlib, []byte{0x78, 0x9c, 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			c := codectest.MustCodec(t, tt.f, nil)

			_, err := c.Decode(ctx, tt.input)
			var ce *transcode.CodecError
			if !errors.As(err, &ce) || ce.Kind != tt.f || !errors.Is(err, transcode.ErrDecode) {
				t.Errorf("Decode error = %#v, want a %v CodecError", err, tt.f)
			}

			_, err = c.Decode(ctx, nil)
			if !errors.Is(err, transcode.ErrNoInput) {
				t.Errorf("nil input error = %v, want ErrNoInput", err)
			}
		})
	}
}

func TestCodecs_Concurrent(t *testing.T) {
	ctx := context.Background()
	codecs := map[transcode.Format]transcode.Codec{
		transcode.FormatJSON: transcode.Instrument(json.New(json.DefaultOptions().WithAssoc(true))),
		transcode.FormatXML:  transcode.Instrument(xml.New(nil)),
		transcode.FormatGzip: transcode.Instrument(gzip.New(nil)),
		transcode.FormatZlib: transcode.Instrument(zlib.New(nil)),
	}

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 16; i++ {
		for f, c := range codecs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				input := any(codectest.Document())
				if f == transcode.FormatGzip || f == transcode.FormatZlib {
					input = codectest.Payloads()["repetitive"]
				}
				enc, err := c.Encode(ctx, input)
				if err != nil {
					errs <- err
					return
				}
				if _, err := c.Decode(ctx, enc); err != nil {
					errs <- err
				}
			}()
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
