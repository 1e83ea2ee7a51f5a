// Package config loads codec options from YAML.
//
// A document has one optional section per format. Each section is decoded
// over that format's defaults, so only the options that differ need to be
// written:
//
//	json:
//	  flags: [hex_tag]
//	  indent: 2
//	xml:
//	  charset: iso-8859-1
//	  flags: [no_blanks, no_namespace]
//	gzip:
//	  level: 9
//	zlib:
//	  length: 1048576
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zoobzio/transcode"
	"github.com/zoobzio/transcode/gzip"
	"github.com/zoobzio/transcode/json"
	"github.com/zoobzio/transcode/xml"
	"github.com/zoobzio/transcode/zlib"
)

// Config holds the options for every format.
type Config struct {
	JSON *json.Options `yaml:"json"`
	XML  *xml.Options  `yaml:"xml"`
	Gzip *gzip.Options `yaml:"gzip"`
	Zlib *zlib.Options `yaml:"zlib"`
}

// Default returns a Config with every section at its defaults.
func Default() *Config {
	return &Config{
		JSON: json.DefaultOptions(),
		XML:  xml.DefaultOptions(),
		Gzip: gzip.DefaultOptions(),
		Zlib: zlib.DefaultOptions(),
	}
}

// Load reads a YAML document from r. Unknown keys are rejected and every
// section is validated. An empty document yields Default.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		var ce *transcode.ConfigError
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, fmt.Errorf("config: %w", err)
	}

	// an explicit null section falls back to its defaults
	if cfg.JSON == nil {
		cfg.JSON = json.DefaultOptions()
	}
	if cfg.XML == nil {
		cfg.XML = xml.DefaultOptions()
	}
	if cfg.Gzip == nil {
		cfg.Gzip = gzip.DefaultOptions()
	}
	if cfg.Zlib == nil {
		cfg.Zlib = zlib.DefaultOptions()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads the YAML document at path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Validate checks every section.
func (c *Config) Validate() error {
	for _, f := range transcode.Formats() {
		if err := c.validate(f); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validate(f transcode.Format) error {
	switch f {
	case transcode.FormatJSON:
		return c.JSON.Validate()
	case transcode.FormatXML:
		return c.XML.Validate()
	case transcode.FormatGzip:
		return c.Gzip.Validate()
	case transcode.FormatZlib:
		return c.Zlib.Validate()
	}
	return &transcode.ConfigError{Err: transcode.ErrUnknownFormat, Value: f.String()}
}

// Options returns the options section for f, or nil for an unknown format.
func (c *Config) Options(f transcode.Format) any {
	switch f {
	case transcode.FormatJSON:
		return c.JSON
	case transcode.FormatXML:
		return c.XML
	case transcode.FormatGzip:
		return c.Gzip
	case transcode.FormatZlib:
		return c.Zlib
	}
	return nil
}

// Codec builds an instrumented codec for f from its section.
func (c *Config) Codec(f transcode.Format) (transcode.Codec, error) {
	opts := c.Options(f)
	if opts == nil {
		return nil, &transcode.ConfigError{Err: transcode.ErrUnknownFormat, Value: f.String()}
	}
	return transcode.New(f, opts)
}

// Codecs builds a codec for every format.
func (c *Config) Codecs() (map[transcode.Format]transcode.Codec, error) {
	out := make(map[transcode.Format]transcode.Codec, len(transcode.Formats()))
	for _, f := range transcode.Formats() {
		codec, err := c.Codec(f)
		if err != nil {
			return nil, err
		}
		out[f] = codec
	}
	return out, nil
}
