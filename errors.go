package transcode

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrNoInput indicates a codec was invoked without any input.
	ErrNoInput = errors.New("no input given")

	// ErrInvalidOption indicates an option holds a value the codec cannot use.
	ErrInvalidOption = errors.New("invalid option")

	// ErrUnknownFormat indicates a format name or tag outside the supported set,
	// or a format whose package was never imported.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrInvalidIndent indicates an indent unit that is not a run of spaces or tabs.
	ErrInvalidIndent = errors.New("invalid indent")

	// ErrInvalidNewline indicates a newline other than "\n", "\r\n" or "\r".
	ErrInvalidNewline = errors.New("invalid newline")

	// ErrEncode indicates the codec failed to encode its input.
	ErrEncode = errors.New("encode failed")

	// ErrDecode indicates the codec failed to decode its input.
	ErrDecode = errors.New("decode failed")

	// ErrInvalidInput indicates input of a type or shape the format cannot take.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDepth indicates a document nested deeper than the configured depth.
	ErrDepth = errors.New("maximum stack depth exceeded")

	// ErrLengthExceeded indicates decoded output grew past the configured length.
	ErrLengthExceeded = errors.New("decoded length exceeded")
)

// ConfigError represents a programmer error: a missing input, a bad option
// value or an unknown format. It wraps a sentinel error with the format and
// option that triggered it.
type ConfigError struct {
	Err    error  // Underlying sentinel error (ErrNoInput, ErrInvalidOption, etc.)
	Format Format // Format being configured, zero when not format specific
	Option string // Option name that triggered the error
	Value  any    // Offending value, if any
}

func (e *ConfigError) Error() string {
	msg := e.Err.Error()
	if e.Option != "" {
		if e.Value != nil {
			msg = fmt.Sprintf("%s %s %q", msg, e.Option, fmt.Sprint(e.Value))
		} else {
			msg = fmt.Sprintf("%s %s", msg, e.Option)
		}
	} else if e.Value != nil {
		msg = fmt.Sprintf("%s %q", msg, fmt.Sprint(e.Value))
	}
	if e.Format.Valid() {
		return e.Format.String() + ": " + msg
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// CodecError represents a conversion failure reported by one of the four
// formats. Kind names the subsystem that raised it.
type CodecError struct {
	Kind  Format // Format that failed
	Op    string // "encode" or "decode"
	Err   error  // Underlying sentinel error (ErrEncode, ErrDecode)
	Cause error  // Original error from the library or a sentinel like ErrDepth
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v", e.Kind, e.Op, e.Cause)
	}
	return fmt.Sprintf("%s %s", e.Kind, e.Err.Error())
}

// Unwrap exposes both the operation sentinel and the cause.
func (e *CodecError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// NewConfigError creates a ConfigError for an option of the given format.
func NewConfigError(sentinel error, format Format, option string, value any) error {
	return &ConfigError{
		Err:    sentinel,
		Format: format,
		Option: option,
		Value:  value,
	}
}

// EncodeError creates a CodecError for an encode failure.
func EncodeError(kind Format, cause error) error {
	return &CodecError{
		Kind:  kind,
		Op:    "encode",
		Err:   ErrEncode,
		Cause: cause,
	}
}

// DecodeError creates a CodecError for a decode failure.
func DecodeError(kind Format, cause error) error {
	return &CodecError{
		Kind:  kind,
		Op:    "decode",
		Err:   ErrDecode,
		Cause: cause,
	}
}

// Must returns v, panicking when err is non-nil. It is the fail-fast policy
// for call sites that treat any conversion error as fatal.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
