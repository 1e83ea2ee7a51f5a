// Package testing provides shared fixtures and helpers for codec tests.
package testing

import (
	"bytes"
	"context"
	"testing"

	"github.com/zoobzio/transcode"
)

// Payloads returns byte samples for the compression codecs: empty, short,
// highly repetitive and binary input.
func Payloads() map[string][]byte {
	binary := make([]byte, 4096)
	for i := range binary {
		binary[i] = byte(i * 31 % 251)
	}
	return map[string][]byte{
		"empty":      {},
		"short":      []byte("hello"),
		"repetitive": bytes.Repeat([]byte("transcode "), 2048),
		"binary":     binary,
		"magic":      {0x1f, 0x8b, 0x78, 0x9c},
	}
}

// Document returns a nested value in the map form both the JSON and XML
// codecs carry without loss: string leaves, one attribute map per element
// and a repeated child.
func Document() map[string]any {
	return map[string]any{
		"library": map[string]any{
			"@attributes": map[string]any{"id": "main"},
			"name":        "Central",
			"book": []any{
				map[string]any{
					"@attributes": map[string]any{"isbn": "0-1"},
					"title":       "Go in Practice",
				},
				map[string]any{
					"@attributes": map[string]any{"isbn": "0-2"},
					"title":       "XML & You",
				},
			},
		},
	}
}

// MustCodec builds a codec through the registry or fails the test.
func MustCodec(tb testing.TB, f transcode.Format, opts any) transcode.Codec {
	tb.Helper()
	c, err := transcode.New(f, opts)
	if err != nil {
		tb.Fatalf("New(%v): %v", f, err)
	}
	return c
}

// RoundTrip encodes input with c and decodes the result.
func RoundTrip(tb testing.TB, c transcode.Codec, input any) any {
	tb.Helper()
	return Chain(tb, input, c)
}

// Chain encodes input through each codec in order, then decodes back
// through them in reverse.
func Chain(tb testing.TB, input any, codecs ...transcode.Codec) any {
	tb.Helper()
	ctx := context.Background()

	v := input
	for _, c := range codecs {
		out, err := c.Encode(ctx, v)
		if err != nil {
			tb.Fatalf("%v encode: %v", c.Format(), err)
		}
		v = out
	}
	for i := len(codecs) - 1; i >= 0; i-- {
		out, err := codecs[i].Decode(ctx, v)
		if err != nil {
			tb.Fatalf("%v decode: %v", codecs[i].Format(), err)
		}
		v = out
	}
	return v
}
