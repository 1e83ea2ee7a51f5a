package xml

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/zoobzio/sentinel"

	"github.com/zoobzio/transcode"
)

func init() {
	sentinel.Tag("xml")
}

var textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()

// fieldPlan says where a struct field goes in the element.
type fieldPlan struct {
	index     []int
	name      string
	attr      bool
	chardata  bool
	omitempty bool
}

// structPlan is the element layout of a struct type.
type structPlan struct {
	name   string // from an XMLName field, else the type name
	fields []fieldPlan
}

var plans sync.Map // reflect.Type -> *structPlan

// planFor returns the cached plan for rt, scanning it on first use.
func planFor(rt reflect.Type) *structPlan {
	if p, ok := plans.Load(rt); ok {
		return p.(*structPlan)
	}
	p := buildPlan(rt, scanType(rt))
	actual, _ := plans.LoadOrStore(rt, p)
	return actual.(*structPlan)
}

// scanType returns sentinel metadata for rt, building it by reflection for
// types sentinel has not scanned.
func scanType(rt reflect.Type) sentinel.Metadata {
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		return spec
	}

	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        map[string]string{},
		}
		if tag, ok := sf.Tag.Lookup("xml"); ok {
			fm.Tags["xml"] = tag
		}
		spec.Fields = append(spec.Fields, fm)
	}
	return spec
}

func buildPlan(rt reflect.Type, spec sentinel.Metadata) *structPlan {
	p := &structPlan{name: rt.Name()}

	for _, f := range spec.Fields {
		sf := rt.FieldByIndex(f.Index)
		if !sf.IsExported() {
			continue
		}
		tag, ok := f.Tags["xml"]
		if !ok {
			tag = sf.Tag.Get("xml")
		}
		if tag == "-" {
			continue
		}

		name, opts, _ := strings.Cut(tag, ",")
		if sf.Name == "XMLName" {
			if name != "" {
				p.name = name
			}
			continue
		}
		if name == "" {
			name = sf.Name
		}

		fp := fieldPlan{index: f.Index, name: name}
		for _, opt := range strings.Split(opts, ",") {
			switch opt {
			case "attr":
				fp.attr = true
			case "chardata":
				fp.chardata = true
			case "omitempty":
				fp.omitempty = true
			}
		}
		p.fields = append(p.fields, fp)
	}
	return p
}

// structNode lays out a struct value as an element named name.
func structNode(name string, rv reflect.Value) (*Node, error) {
	p := planFor(rv.Type())
	n := &Node{Name: name}

	for _, f := range p.fields {
		fv := rv.FieldByIndex(f.index)
		if f.omitempty && fv.IsZero() {
			continue
		}

		switch {
		case f.attr:
			s, ok := scalarText(fv)
			if !ok {
				return nil, fmt.Errorf("%w: attribute %s of %s is not a scalar", transcode.ErrInvalidInput, f.name, rv.Type())
			}
			n.Attrs = append(n.Attrs, Attr{Name: f.name, Value: s})
		case f.chardata:
			s, ok := scalarText(fv)
			if !ok {
				return nil, fmt.Errorf("%w: text of %s is not a scalar", transcode.ErrInvalidInput, rv.Type())
			}
			n.Text = s
		default:
			children, err := valueNodes(f.name, fv)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, children...)
		}
	}
	return n, nil
}

// scalarText renders a scalar value as text. The bool result is false for
// composite values.
func scalarText(rv reflect.Value) (string, bool) {
	if !rv.IsValid() {
		return "", true
	}
	if rv.Type().Implements(textMarshalerType) {
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "", true
		}
		b, err := rv.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return "", false
		}
		return string(b), true
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64), true
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes()), true
		}
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "", true
		}
		return scalarText(rv.Elem())
	}
	return "", false
}
