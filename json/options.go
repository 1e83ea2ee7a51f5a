package json

import (
	"github.com/zoobzio/transcode"
	"github.com/zoobzio/transcode/pretty"
)

// DefaultDepth is the nesting limit applied when Options.Depth is zero.
const DefaultDepth = 512

// Options configures JSON encoding and decoding.
type Options struct {
	// Flags selects encode and decode behaviors. PreserveZeroFraction,
	// UnescapedSlashes, UnescapedUnicode and BigIntAsString are always on.
	Flags Flag `yaml:"flags"`

	// Depth is the maximum container nesting for both directions.
	// Zero means DefaultDepth; negative values are rejected.
	Depth int `yaml:"depth"`

	// Assoc, when set, picks the decode shape outright: true for
	// map[string]any, false for *Object. It overrides ObjectAsMap.
	Assoc *bool `yaml:"assoc"`

	// Indent pretty prints encoded output with this unit. Empty means
	// compact output unless PrettyPrint is set.
	Indent pretty.Indent `yaml:"indent"`

	// Newline separates lines of pretty printed output. Empty means "\n".
	Newline string `yaml:"newline"`
}

// DefaultOptions returns the default JSON options.
func DefaultOptions() *Options {
	return &Options{
		Depth:   DefaultDepth,
		Newline: "\n",
	}
}

// OptionsFromMap merges m over the defaults. Keys follow the YAML names of
// the Options fields; unknown keys are ignored.
func OptionsFromMap(m map[string]any) (*Options, error) {
	o := DefaultOptions()
	if err := transcode.DecodeOptions(transcode.FormatJSON, m, o); err != nil {
		return nil, err
	}
	return o, nil
}

// WithAssoc returns a copy of o with Assoc set to v.
func (o *Options) WithAssoc(v bool) *Options {
	r := o.clone()
	r.Assoc = &v
	return r
}

func (o *Options) clone() *Options {
	if o == nil {
		return DefaultOptions()
	}
	r := *o
	if o.Assoc != nil {
		v := *o.Assoc
		r.Assoc = &v
	}
	return &r
}

// Validate reports the first invalid option as a *transcode.ConfigError.
func (o *Options) Validate() error {
	_, err := o.resolve()
	return err
}

// resolve returns a validated private copy with forced flags applied.
func (o *Options) resolve() (*Options, error) {
	r := o.clone()

	if r.Depth < 0 {
		return nil, transcode.NewConfigError(transcode.ErrInvalidOption, transcode.FormatJSON, "depth", r.Depth)
	}
	if r.Depth == 0 {
		r.Depth = DefaultDepth
	}
	if r.Newline == "" {
		r.Newline = "\n"
	}
	if err := pretty.ValidateNewline(r.Newline); err != nil {
		return nil, err
	}
	if r.Indent != "" {
		if err := r.Indent.Validate(); err != nil {
			return nil, err
		}
		r.Flags &^= PrettyPrint
	}

	r.Flags |= encodeForced | decodeForced
	if r.Assoc != nil {
		r.Flags &^= ObjectAsMap
	}
	return r, nil
}

// assoc reports whether objects decode as maps.
func (o *Options) assoc() bool {
	if o.Assoc != nil {
		return *o.Assoc
	}
	return o.Flags.Has(ObjectAsMap)
}

// indentUnit returns the pretty print unit, empty for compact output.
func (o *Options) indentUnit() string {
	if o.Indent != "" {
		return string(o.Indent)
	}
	if o.Flags.Has(PrettyPrint) {
		return "    "
	}
	return ""
}
