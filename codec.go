package transcode

import "fmt"

// RequireInput fails with ErrNoInput when input is nil.
func RequireInput(f Format, input any) error {
	if input == nil {
		return &ConfigError{Err: ErrNoInput, Format: f}
	}
	return nil
}

// EncodeInput returns input as bytes for an encode call. Strings and byte
// slices are accepted; nil is a ConfigError and any other type an encode
// CodecError wrapping ErrInvalidInput.
func EncodeInput(f Format, input any) ([]byte, error) {
	return bytesOf(f, input, EncodeError)
}

// DecodeInput is EncodeInput for decode calls.
func DecodeInput(f Format, input any) ([]byte, error) {
	return bytesOf(f, input, DecodeError)
}

func bytesOf(f Format, input any, wrap func(Format, error) error) ([]byte, error) {
	switch v := input.(type) {
	case nil:
		return nil, &ConfigError{Err: ErrNoInput, Format: f}
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, wrap(f, fmt.Errorf("%w: want string or []byte, got %T", ErrInvalidInput, input))
	}
}
