package transcode

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeOptions merges m over dst, a pointer to a format's options struct.
// Keys follow the struct's yaml tags; unknown keys are ignored and missing
// keys leave dst untouched.
func DecodeOptions(f Format, m map[string]any, dst any) error {
	if len(m) == 0 {
		return nil
	}
	raw, err := yaml.Marshal(m)
	if err != nil {
		return NewConfigError(ErrInvalidOption, f, "options", err.Error())
	}
	if err := yaml.Unmarshal(raw, dst); err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) {
			return err
		}
		return NewConfigError(ErrInvalidOption, f, "options", err.Error())
	}
	return nil
}

// ResolveOptions turns the loosely typed options a Factory receives into
// *O: nil means defaults, O and *O are used as given, and a map is merged
// over the defaults.
func ResolveOptions[O any](f Format, opts any, defaults func() *O) (*O, error) {
	switch v := opts.(type) {
	case nil:
		return defaults(), nil
	case *O:
		if v == nil {
			return defaults(), nil
		}
		return v, nil
	case O:
		return &v, nil
	case map[string]any:
		o := defaults()
		if err := DecodeOptions(f, v, o); err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, NewConfigError(ErrInvalidOption, f, "options", fmt.Sprintf("%T", opts))
	}
}
