package xml

import (
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"gopkg.in/yaml.v3"

	"github.com/zoobzio/transcode"
	"github.com/zoobzio/transcode/pretty"
)

// ParseFlag tunes how parsed documents are turned into values.
type ParseFlag uint8

const (
	// ParseNoBlanks drops whitespace-only text between elements.
	ParseNoBlanks ParseFlag = 1 << iota
	// ParseNoNamespace strips namespace prefixes and xmlns attributes.
	ParseNoNamespace
)

var parseFlagNames = map[string]ParseFlag{
	"no_blanks":    ParseNoBlanks,
	"no_namespace": ParseNoNamespace,
}

// UnmarshalYAML accepts an integer bitmask or a list of flag names.
func (f *ParseFlag) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!int" {
		n, err := strconv.ParseUint(node.Value, 0, 8)
		if err != nil {
			return transcode.NewConfigError(transcode.ErrInvalidOption, transcode.FormatXML, "flags", node.Value)
		}
		*f = ParseFlag(n)
		return nil
	}

	var names []string
	if node.Kind == yaml.ScalarNode {
		names = []string{node.Value}
	} else if err := node.Decode(&names); err != nil {
		return err
	}

	var out ParseFlag
	for _, name := range names {
		flag, ok := parseFlagNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return transcode.NewConfigError(transcode.ErrInvalidOption, transcode.FormatXML, "flags", name)
		}
		out |= flag
	}
	*f = out
	return nil
}

// Options configures XML encoding and decoding.
type Options struct {
	// Charset is declared in the output and used to encode it.
	// Empty means utf-8.
	Charset string `yaml:"charset"`

	// Indent pretty prints output with IndentString per level.
	Indent bool `yaml:"indent"`

	// IndentString is the indent unit. Empty means two spaces. Tab units
	// indent with a single tab per level.
	IndentString pretty.Indent `yaml:"indentString"`

	// ValidateOnParse checks the document is well formed before it is read.
	ValidateOnParse bool `yaml:"validateOnParse"`

	// PreserveWhiteSpace keeps text exactly as found instead of trimming it.
	PreserveWhiteSpace bool `yaml:"preserveWhiteSpace"`

	// StrictErrorChecking rejects unquoted attributes and unknown entities,
	// which are otherwise tolerated.
	StrictErrorChecking bool `yaml:"strictErrorChecking"`

	// ThrowErrors reports parse failures. When false they decode to nil.
	// Nil means true.
	ThrowErrors *bool `yaml:"throwErrors"`

	// Flags tunes the decoded value.
	Flags ParseFlag `yaml:"flags"`

	// Assoc decodes to map form; false decodes to *Node. Nil means true.
	Assoc *bool `yaml:"assoc"`
}

// DefaultOptions returns the default XML options.
func DefaultOptions() *Options {
	yes := true
	assoc := true
	return &Options{
		Charset:      "utf-8",
		IndentString: pretty.Spaces(2),
		ThrowErrors:  &yes,
		Assoc:        &assoc,
	}
}

// OptionsFromMap merges m over the defaults. Keys follow the YAML names of
// the Options fields; unknown keys are ignored.
func OptionsFromMap(m map[string]any) (*Options, error) {
	o := DefaultOptions()
	if err := transcode.DecodeOptions(transcode.FormatXML, m, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Options) clone() *Options {
	if o == nil {
		return DefaultOptions()
	}
	r := *o
	if o.ThrowErrors != nil {
		v := *o.ThrowErrors
		r.ThrowErrors = &v
	}
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

// resolved is a validated private copy of the options.
type resolved struct {
	*Options
	enc  encoding.Encoding
	utf8 bool
}

func (o *Options) resolve() (*resolved, error) {
	r := &resolved{Options: o.clone()}

	if r.Charset == "" {
		r.Charset = "utf-8"
	}
	enc, err := htmlindex.Get(r.Charset)
	if err != nil {
		return nil, transcode.NewConfigError(transcode.ErrInvalidOption, transcode.FormatXML, "charset", r.Charset)
	}
	name, _ := htmlindex.Name(enc)
	r.enc = enc
	r.utf8 = name == "utf-8"

	if r.IndentString == "" {
		r.IndentString = pretty.Spaces(2)
	}
	if err := r.IndentString.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *resolved) throwErrors() bool {
	return r.ThrowErrors == nil || *r.ThrowErrors
}

func (r *resolved) assoc() bool {
	return r.Assoc == nil || *r.Assoc
}
