// Package gzip provides the gzip codec, backed by klauspost/compress.
//
// Output is gzip framed by default; ModeDeflate switches both directions
// to a bare deflate stream. Decoded output can be capped with
// Options.Length.
package gzip

import (
	"bytes"
	"context"
	"io"

	"github.com/klauspost/compress/flate"
	kgzip "github.com/klauspost/compress/gzip"

	"github.com/zoobzio/transcode"
	"github.com/zoobzio/transcode/internal/stream"
)

// Encode compresses data.
func Encode(data []byte, o *Options) ([]byte, error) {
	r, err := o.resolve()
	if err != nil {
		return nil, err
	}
	out, err := stream.Compress(data, func(w io.Writer) (io.WriteCloser, error) {
		if r.Mode == ModeDeflate {
			return flate.NewWriter(w, r.Level)
		}
		return kgzip.NewWriterLevel(w, r.Level)
	})
	if err != nil {
		return nil, transcode.EncodeError(transcode.FormatGzip, err)
	}
	return out, nil
}

// Decode decompresses data. Concatenated gzip members decode as one stream.
func Decode(data []byte, o *Options) ([]byte, error) {
	r, err := o.resolve()
	if err != nil {
		return nil, err
	}

	var rc io.ReadCloser
	if r.Mode == ModeDeflate {
		rc = flate.NewReader(bytes.NewReader(data))
	} else {
		zr, err := kgzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, transcode.DecodeError(transcode.FormatGzip, err)
		}
		rc = zr
	}
	defer rc.Close()

	out, err := stream.ReadAll(rc, r.Length)
	if err != nil {
		return nil, transcode.DecodeError(transcode.FormatGzip, err)
	}
	return out, nil
}

// Codec is the transcode.Codec for gzip. Both directions accept a string
// or []byte and return []byte.
type Codec struct {
	opts Options
}

// New returns a gzip codec. A nil o means DefaultOptions.
func New(o *Options) *Codec {
	if o == nil {
		o = DefaultOptions()
	}
	return &Codec{opts: *o}
}

// Format returns transcode.FormatGzip.
func (c *Codec) Format() transcode.Format {
	return transcode.FormatGzip
}

// Encode compresses input.
func (c *Codec) Encode(_ context.Context, input any) (any, error) {
	data, err := transcode.EncodeInput(transcode.FormatGzip, input)
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
	data, err := transcode.DecodeInput(transcode.FormatGzip, input)
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
	transcode.Register(transcode.FormatGzip, factory)
}

func factory(opts any) (transcode.Codec, error) {
	o, err := transcode.ResolveOptions(transcode.FormatGzip, opts, DefaultOptions)
	if err != nil {
		return nil, err
	}
	if _, err := o.resolve(); err != nil {
		return nil, err
	}
	return New(o), nil
}
