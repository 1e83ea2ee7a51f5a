// Package transcode normalizes encode/decode for JSON, XML, GZip and ZLib
// behind one contract.
//
// Every conversion returns either a complete output or an error. Nothing
// panics unless the caller opts in through Must.
//
// # Formats
//
// The format set is closed:
//
//   - json - JSON text (package json), with optional pretty printing
//   - xml  - XML documents (package xml)
//   - gzip - gzip framed or raw deflate data (package gzip)
//   - zlib - zlib framed deflate data (package zlib)
//
// Each format package offers free functions (Encode, Decode) taking a typed
// *Options, and a Codec constructor. Importing a format package registers
// it, so the generic constructor can build it by tag:
//
//	import (
//	    "github.com/zoobzio/transcode"
//	    _ "github.com/zoobzio/transcode/gzip"
//	)
//
//	c, err := transcode.New(transcode.FormatGzip, map[string]any{"level": 9})
//	if err != nil {
//	    return err
//	}
//	packed, err := c.Encode(ctx, payload)
//
// # Errors
//
// Conversion failures are *CodecError values whose Kind names the format.
// Programmer errors (no input, bad option values, unknown formats, bad
// indent or newline parameters) are *ConfigError values. Both wrap sentinel
// errors for errors.Is:
//
//	if errors.Is(err, transcode.ErrDecode) { ... }
//	if errors.Is(err, transcode.ErrNoInput) { ... }
//
// Call sites that treat every failure as fatal wrap the call in Must.
//
// # Sniffing
//
// IsEncoded guesses whether a value already looks encoded in a format. It
// inspects prefixes and suffixes only and is not a validator.
//
// # Signals
//
// Codecs built by New emit capitan signals around every operation:
//
//   - transcode.codec.created
//   - transcode.encode.start, transcode.encode.complete
//   - transcode.decode.start, transcode.decode.complete
package transcode

import "context"

// Codec is a paired encode/decode unit for one format.
//
// Implementations hold only their resolved options and are safe for
// concurrent use.
type Codec interface {
	// Format returns the format this codec converts.
	Format() Format

	// Encode converts input into the encoded form.
	// A nil input fails with ErrNoInput.
	Encode(ctx context.Context, input any) (any, error)

	// Decode converts encoded input back into its plain form.
	// A nil input fails with ErrNoInput.
	Decode(ctx context.Context, input any) (any, error)
}

// Factory builds a Codec from loosely typed options. Options may be nil
// (defaults), the format's Options value or pointer, or a map[string]any
// merged over the defaults.
type Factory func(opts any) (Codec, error)
