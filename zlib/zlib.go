// Package zlib provides the RFC 1950 zlib codec, backed by
// klauspost/compress.
//
// Decode is lenient about framing: gzip members, zlib streams and bare
// deflate data are all accepted.
package zlib

import (
	"bytes"
	"context"
	"io"

	"github.com/klauspost/compress/flate"
	kgzip "github.com/klauspost/compress/gzip"
	kzlib "github.com/klauspost/compress/zlib"

	"github.com/zoobzio/transcode"
	"github.com/zoobzio/transcode/internal/stream"
)

// Compression levels accepted by Options.Level.
const (
	DefaultCompression = flate.DefaultCompression
	NoCompression      = flate.NoCompression
	BestSpeed          = flate.BestSpeed
	BestCompression    = flate.BestCompression
)

// Options configures zlib compression.
type Options struct {
	// Level is the compression level, -1 (library default) through 9.
	// The zero value means NoCompression; start from DefaultOptions.
	Level int `yaml:"level"`

	// Length caps decoded output in bytes. Zero means unbounded.
	Length int `yaml:"length"`
}

// DefaultOptions returns the default zlib options.
func DefaultOptions() *Options {
	return &Options{Level: DefaultCompression}
}

// OptionsFromMap merges m over the defaults.
func OptionsFromMap(m map[string]any) (*Options, error) {
	o := DefaultOptions()
	if err := transcode.DecodeOptions(transcode.FormatZlib, m, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate reports the first invalid option as a *transcode.ConfigError.
func (o *Options) Validate() error {
	_, err := o.resolve()
	return err
}

func (o *Options) resolve() (*Options, error) {
	if o == nil {
		return DefaultOptions(), nil
	}
	r := *o
	if r.Level < DefaultCompression || r.Level > BestCompression {
		return nil, transcode.NewConfigError(transcode.ErrInvalidOption, transcode.FormatZlib, "level", r.Level)
	}
	if r.Length < 0 {
		return nil, transcode.NewConfigError(transcode.ErrInvalidOption, transcode.FormatZlib, "length", r.Length)
	}
	return &r, nil
}

// Encode compresses data into a zlib stream.
func Encode(data []byte, o *Options) ([]byte, error) {
	r, err := o.resolve()
	if err != nil {
		return nil, err
	}
	out, err := stream.Compress(data, func(w io.Writer) (io.WriteCloser, error) {
		return kzlib.NewWriterLevel(w, r.Level)
	})
	if err != nil {
		return nil, transcode.EncodeError(transcode.FormatZlib, err)
	}
	return out, nil
}

// Decode decompresses data held in gzip, zlib or raw deflate framing.
func Decode(data []byte, o *Options) ([]byte, error) {
	r, err := o.resolve()
	if err != nil {
		return nil, err
	}
	rc, err := open(data)
	if err != nil {
		return nil, transcode.DecodeError(transcode.FormatZlib, err)
	}
	defer rc.Close()

	out, err := stream.ReadAll(rc, r.Length)
	if err != nil {
		return nil, transcode.DecodeError(transcode.FormatZlib, err)
	}
	return out, nil
}

func open(data []byte) (io.ReadCloser, error) {
	src := bytes.NewReader(data)
	switch {
	case transcode.IsEncoded(transcode.FormatGzip, data):
		return kgzip.NewReader(src)
	case zlibHeader(data):
		return kzlib.NewReader(src)
	default:
		return flate.NewReader(src), nil
	}
}

// zlibHeader reports whether data opens with a valid CMF/FLG pair: deflate
// method, a window of at most 32K and a check value divisible by 31.
func zlibHeader(data []byte) bool {
	if len(data) < 2 {
		return false
	}
	cmf, flg := data[0], data[1]
	return cmf&0x0f == 8 && cmf>>4 <= 7 && (uint16(cmf)<<8|uint16(flg))%31 == 0
}

// Codec is the transcode.Codec for zlib. Both directions accept a string
// or []byte and return []byte.
type Codec struct {
	opts Options
}

// New returns a zlib codec. A nil o means DefaultOptions.
func New(o *Options) *Codec {
	if o == nil {
		o = DefaultOptions()
	}
	return &Codec{opts: *o}
}

// Format returns transcode.FormatZlib.
func (c *Codec) Format() transcode.Format {
	return transcode.FormatZlib
}

// Encode compresses input.
func (c *Codec) Encode(_ context.Context, input any) (any, error) {
	data, err := transcode.EncodeInput(transcode.FormatZlib, input)
	if err != nil {
		return nil, err
	}
	out, err := Encode(data, &c.opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Decode decompresses input.
func (c *Codec) Decode(_ context.Context, input any) (any, error) {
	data, err := transcode.DecodeInput(transcode.FormatZlib, input)
	if err != nil {
		return nil, err
	}
	out, err := Decode(data, &c.opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func init() {
	transcode.Register(transcode.FormatZlib, factory)
}

func factory(opts any) (transcode.Codec, error) {
	o, err := transcode.ResolveOptions(transcode.FormatZlib, opts, DefaultOptions)
	if err != nil {
		return nil, err
	}
	if _, err := o.resolve(); err != nil {
		return nil, err
	}
	return New(o), nil
}
