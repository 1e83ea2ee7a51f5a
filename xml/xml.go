// Package xml provides the XML codec.
//
// Documents are built and parsed with etree. Values go in as a map with a
// single root key, a Node, or a struct, and come back out as a map or a
// *Node:
//
//	doc := map[string]any{
//	    "user": map[string]any{
//	        "@attributes": map[string]any{"id": "7"},
//	        "name":        "ada",
//	        "role":        []any{"admin", "dev"},
//	    },
//	}
//	out, err := xml.Encode(doc, &xml.Options{Indent: true})
package xml

import (
	"context"

	"github.com/zoobzio/transcode"
)

// Codec is the transcode.Codec for XML. Encode returns a string; Decode
// accepts a string or []byte.
type Codec struct {
	opts *Options
}

// New returns an XML codec. A nil o means DefaultOptions.
func New(o *Options) *Codec {
	return &Codec{opts: o.clone()}
}

// Format returns transcode.FormatXML.
func (c *Codec) Format() transcode.Format {
	return transcode.FormatXML
}

// Encode renders input as an XML document.
func (c *Codec) Encode(_ context.Context, input any) (any, error) {
	if err := transcode.RequireInput(transcode.FormatXML, input); err != nil {
		return nil, err
	}
	out, err := Encode(input, c.opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Decode parses an XML document held in a string or []byte.
func (c *Codec) Decode(_ context.Context, input any) (any, error) {
	data, err := transcode.DecodeInput(transcode.FormatXML, input)
	if err != nil {
		return nil, err
	}
	return Decode(data, c.opts)
}

func init() {
	transcode.Register(transcode.FormatXML, factory)
}

func factory(opts any) (transcode.Codec, error) {
	o, err := transcode.ResolveOptions(transcode.FormatXML, opts, DefaultOptions)
	if err != nil {
		return nil, err
	}
	if _, err := o.resolve(); err != nil {
		return nil, err
	}
	return New(o), nil
}
