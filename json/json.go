// Package json provides the JSON codec.
//
// Encoding goes through json-iterator with map keys sorted, slashes and
// non-ASCII text left unescaped and integral floats written with a zero
// fraction (1.0). Output is compact unless Options.Indent or PrettyPrint
// asks for the pretty printer.
//
// Decoding keeps numbers as Number and, by default, objects as *Object so
// key order survives a round trip. Set Options.Assoc or the ObjectAsMap
// flag for plain maps.
package json

import (
	"bytes"
	"context"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/zoobzio/transcode"
	"github.com/zoobzio/transcode/pretty"
)

// Number is a decoded JSON number in its literal form.
type Number = stdjson.Number

var (
	compactAPI = newAPI(false)
	hexTagAPI  = newAPI(true)
)

func newAPI(escapeHTML bool) jsoniter.API {
	api := jsoniter.Config{
		EscapeHTML:             escapeHTML,
		SortMapKeys:            true,
		UseNumber:              true,
		ValidateJsonRawMessage: true,
	}.Froze()
	api.RegisterExtension(&extension{})
	return api
}

func apiFor(f Flag) jsoniter.API {
	if f.Has(HexTag) {
		return hexTagAPI
	}
	return compactAPI
}

// Encode converts v to JSON text.
//
// The empty string encodes to the two-character literal "". Output nested
// deeper than Options.Depth fails with transcode.ErrDepth.
func Encode(v any, o *Options) (string, error) {
	opts, err := o.resolve()
	if err != nil {
		return "", err
	}

	out, err := apiFor(opts.Flags).Marshal(v)
	if err != nil {
		return "", transcode.EncodeError(transcode.FormatJSON, err)
	}
	if d := pretty.Depth(out); d > opts.Depth {
		return "", transcode.EncodeError(transcode.FormatJSON, depthError(d, opts.Depth))
	}

	if unit := opts.indentUnit(); unit != "" {
		out, err = pretty.Format(nil, out, unit, opts.Newline)
		if err != nil {
			return "", err
		}
	}
	return string(out), nil
}

// Decode parses JSON text.
//
// Empty or whitespace-only input decodes to nil without error. Objects
// decode as *Object unless map mode is selected; numbers decode as Number.
func Decode(data []byte, o *Options) (any, error) {
	opts, err := o.resolve()
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	if d := pretty.Depth(data); d > opts.Depth {
		return nil, transcode.DecodeError(transcode.FormatJSON, depthError(d, opts.Depth))
	}

	api := apiFor(opts.Flags)
	if opts.assoc() {
		var v any
		if err := api.Unmarshal(data, &v); err != nil {
			return nil, transcode.DecodeError(transcode.FormatJSON, err)
		}
		return v, nil
	}

	v, err := decodeOrdered(api, data)
	if err != nil {
		return nil, transcode.DecodeError(transcode.FormatJSON, err)
	}
	return v, nil
}

// DecodeAs parses JSON text into a value of type T.
// Empty input yields the zero T.
func DecodeAs[T any](data []byte, o *Options) (T, error) {
	var v T
	opts, err := o.resolve()
	if err != nil {
		return v, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return v, nil
	}
	if d := pretty.Depth(data); d > opts.Depth {
		return v, transcode.DecodeError(transcode.FormatJSON, depthError(d, opts.Depth))
	}
	if err := apiFor(opts.Flags).Unmarshal(data, &v); err != nil {
		return v, transcode.DecodeError(transcode.FormatJSON, fmt.Errorf("%s: %w", transcode.TypeName[T](), err))
	}
	return v, nil
}

var errTrailingData = errors.New("unexpected data after top-level value")

func depthError(got, limit int) error {
	return fmt.Errorf("%w: nesting %d, limit %d", transcode.ErrDepth, got, limit)
}

// decodeOrdered reads one value, keeping object key order, and rejects
// anything after it but whitespace.
func decodeOrdered(api jsoniter.API, data []byte) (any, error) {
	iter := api.BorrowIterator(data)
	defer api.ReturnIterator(iter)

	v := readValue(iter)
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, iter.Error
	}
	if iter.WhatIsNext() != jsoniter.InvalidValue || iter.Error != io.EOF {
		return nil, errTrailingData
	}
	return v, nil
}

func readValue(iter *jsoniter.Iterator) any {
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		return iter.ReadString()
	case jsoniter.NumberValue:
		return iter.ReadNumber()
	case jsoniter.BoolValue:
		return iter.ReadBool()
	case jsoniter.NilValue:
		iter.ReadNil()
		return nil
	case jsoniter.ArrayValue:
		arr := make([]any, 0)
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			arr = append(arr, readValue(it))
			return it.Error == nil
		})
		return arr
	case jsoniter.ObjectValue:
		obj := NewObject()
		iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			obj.Set(key, readValue(it))
			return it.Error == nil
		})
		return obj
	default:
		iter.ReportError("decode", "unexpected character")
		return nil
	}
}

// Codec is the transcode.Codec for JSON. Encode returns a string; Decode
// accepts a string or []byte.
type Codec struct {
	opts *Options
}

// New returns a JSON codec. A nil o means DefaultOptions.
func New(o *Options) *Codec {
	return &Codec{opts: o.clone()}
}

// Format returns transcode.FormatJSON.
func (c *Codec) Format() transcode.Format {
	return transcode.FormatJSON
}

// Encode converts input to JSON text.
func (c *Codec) Encode(_ context.Context, input any) (any, error) {
	if err := transcode.RequireInput(transcode.FormatJSON, input); err != nil {
		return nil, err
	}
	out, err := Encode(input, c.opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Decode parses JSON text held in a string or []byte.
func (c *Codec) Decode(_ context.Context, input any) (any, error) {
	data, err := transcode.DecodeInput(transcode.FormatJSON, input)
	if err != nil {
		return nil, err
	}
	return Decode(data, c.opts)
}

func init() {
	transcode.Register(transcode.FormatJSON, factory)
}

func factory(opts any) (transcode.Codec, error) {
	o, err := transcode.ResolveOptions(transcode.FormatJSON, opts, DefaultOptions)
	if err != nil {
		return nil, err
	}
	if _, err := o.resolve(); err != nil {
		return nil, err
	}
	return New(o), nil
}
