package transcode

import (
	"context"
	"fmt"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for codec events.
var (
	SignalCodecCreated   = capitan.NewSignal("transcode.codec.created", "Codec instantiated")
	SignalEncodeStart    = capitan.NewSignal("transcode.encode.start", "Encode operation beginning")
	SignalEncodeComplete = capitan.NewSignal("transcode.encode.complete", "Encode operation finished")
	SignalDecodeStart    = capitan.NewSignal("transcode.decode.start", "Decode operation beginning")
	SignalDecodeComplete = capitan.NewSignal("transcode.decode.complete", "Decode operation finished")
)

// Keys for typed event data.
var (
	KeyFormat   = capitan.NewStringKey("format")
	KeyTypeName = capitan.NewStringKey("type_name")
	KeySize     = capitan.NewIntKey("size")
	KeyDuration = capitan.NewDurationKey("duration")
	KeyError    = capitan.NewErrorKey("error")
)

// Instrument wraps c so that every Encode and Decode emits start and
// complete signals. Wrapping an already instrumented codec returns it as is.
func Instrument(c Codec) Codec {
	if _, ok := c.(*instrumented); ok {
		return c
	}
	return &instrumented{codec: c}
}

type instrumented struct {
	codec Codec
}

func (i *instrumented) Format() Format {
	return i.codec.Format()
}

func (i *instrumented) Encode(ctx context.Context, input any) (any, error) {
	f := i.codec.Format()
	typeName := fmt.Sprintf("%T", input)
	start := time.Now()

	emitEncodeStart(ctx, f, typeName)
	out, err := i.codec.Encode(ctx, input)
	emitEncodeComplete(ctx, f, typeName, sizeOf(out), time.Since(start), err)

	return out, err
}

func (i *instrumented) Decode(ctx context.Context, input any) (any, error) {
	f := i.codec.Format()
	typeName := fmt.Sprintf("%T", input)
	start := time.Now()

	emitDecodeStart(ctx, f, typeName)
	out, err := i.codec.Decode(ctx, input)
	emitDecodeComplete(ctx, f, typeName, sizeOf(input), time.Since(start), err)

	return out, err
}

// sizeOf returns the byte length of string and []byte values, zero otherwise.
func sizeOf(v any) int {
	switch b := v.(type) {
	case string:
		return len(b)
	case []byte:
		return len(b)
	default:
		return 0
	}
}

// emitCodecCreated emits an event when a codec is built through New.
func emitCodecCreated(ctx context.Context, f Format) {
	capitan.Emit(ctx, SignalCodecCreated,
		KeyFormat.Field(f.String()),
	)
}

// emitEncodeStart emits an event when encode begins.
func emitEncodeStart(ctx context.Context, f Format, typeName string) {
	capitan.Emit(ctx, SignalEncodeStart,
		KeyFormat.Field(f.String()),
		KeyTypeName.Field(typeName),
	)
}

// emitEncodeComplete emits an event when encode finishes.
// size is the length of the encoded output.
func emitEncodeComplete(ctx context.Context, f Format, typeName string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyFormat.Field(f.String()),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalEncodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalEncodeComplete, fields...)
	}
}

// emitDecodeStart emits an event when decode begins.
func emitDecodeStart(ctx context.Context, f Format, typeName string) {
	capitan.Emit(ctx, SignalDecodeStart,
		KeyFormat.Field(f.String()),
		KeyTypeName.Field(typeName),
	)
}

// emitDecodeComplete emits an event when decode finishes.
// size is the length of the encoded input.
func emitDecodeComplete(ctx context.Context, f Format, typeName string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyFormat.Field(f.String()),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDecodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDecodeComplete, fields...)
	}
}
