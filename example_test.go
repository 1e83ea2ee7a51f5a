package transcode_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/zoobzio/transcode"
	_ "github.com/zoobzio/transcode/gzip"
	"github.com/zoobzio/transcode/json"
)

func ExampleNew() {
	ctx := context.Background()

	c, err := transcode.New(transcode.FormatGzip, map[string]any{"level": 9})
	if err != nil {
		panic(err)
	}
	packed, err := c.Encode(ctx, "hello, hello, hello")
	if err != nil {
		panic(err)
	}
	fmt.Println(transcode.IsEncoded(transcode.FormatGzip, packed))

	plain, err := c.Decode(ctx, packed)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(plain.([]byte)))
	// Output:
	// true
	// hello, hello, hello
}

func ExampleIsEncoded() {
	fmt.Println(transcode.IsEncoded(transcode.FormatJSON, `{"a":1}`))
	fmt.Println(transcode.IsEncoded(transcode.FormatJSON, "123"))
	fmt.Println(transcode.IsEncoded(transcode.FormatXML, "<a/>"))
	// Output:
	// true
	// false
	// true
}

func ExampleMust() {
	out := transcode.Must(json.Encode(map[string]any{"b": 1.0, "a": "x/y"}, nil))
	fmt.Println(out)
	// Output: {"a":"x/y","b":1.0}
}

func ExampleCodecError() {
	_, err := json.Decode([]byte(`{"a":`), nil)

	var ce *transcode.CodecError
	if errors.As(err, &ce) {
		fmt.Println(ce.Kind, ce.Op, errors.Is(err, transcode.ErrDecode))
	}
	// Output: json decode true
}
