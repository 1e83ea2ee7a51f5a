package gzip

import (
	"strconv"
	"strings"

	"github.com/klauspost/compress/flate"
	"gopkg.in/yaml.v3"

	"github.com/zoobzio/transcode"
)

// Compression levels accepted by Options.Level.
const (
	DefaultCompression = flate.DefaultCompression
	NoCompression      = flate.NoCompression
	BestSpeed          = flate.BestSpeed
	BestCompression    = flate.BestCompression
)

// Mode selects the framing written around the deflate stream.
type Mode uint8

const (
	// ModeGzip writes RFC 1952 gzip members.
	ModeGzip Mode = iota
	// ModeDeflate writes a bare RFC 1951 deflate stream.
	ModeDeflate
)

func (m Mode) String() string {
	switch m {
	case ModeGzip:
		return "gzip"
	case ModeDeflate:
		return "deflate"
	default:
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// UnmarshalYAML accepts "gzip" or "deflate".
func (m *Mode) UnmarshalYAML(node *yaml.Node) error {
	switch strings.ToLower(strings.TrimSpace(node.Value)) {
	case "", "gzip":
		*m = ModeGzip
	case "deflate":
		*m = ModeDeflate
	default:
		return transcode.NewConfigError(transcode.ErrInvalidOption, transcode.FormatGzip, "mode", node.Value)
	}
	return nil
}

// Options configures gzip compression.
type Options struct {
	// Level is the compression level, -1 (library default) through 9.
	// The zero value means NoCompression; start from DefaultOptions.
	Level int `yaml:"level"`

	// Mode picks gzip or raw deflate framing for both directions.
	Mode Mode `yaml:"mode"`

	// Length caps decoded output in bytes. Zero means unbounded.
	Length int `yaml:"length"`
}

// DefaultOptions returns the default gzip options.
func DefaultOptions() *Options {
	return &Options{Level: DefaultCompression}
}

// OptionsFromMap merges m over the defaults.
func OptionsFromMap(m map[string]any) (*Options, error) {
	o := DefaultOptions()
	if err := transcode.DecodeOptions(transcode.FormatGzip, m, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate reports the first invalid option as a *transcode.ConfigError.
func (o *Options) Validate() error {
	_, err := o.resolve()
	return err
}

func (o *Options) resolve() (*Options, error) {
	if o == nil {
		return DefaultOptions(), nil
	}
	r := *o
	if r.Level < DefaultCompression || r.Level > BestCompression {
		return nil, transcode.NewConfigError(transcode.ErrInvalidOption, transcode.FormatGzip, "level", r.Level)
	}
	if r.Mode > ModeDeflate {
		return nil, transcode.NewConfigError(transcode.ErrInvalidOption, transcode.FormatGzip, "mode", r.Mode)
	}
	if r.Length < 0 {
		return nil, transcode.NewConfigError(transcode.ErrInvalidOption, transcode.FormatGzip, "length", r.Length)
	}
	return &r, nil
}
