package xml

import (
	"fmt"
	"reflect"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/zoobzio/sentinel"

	"github.com/zoobzio/transcode"
)

// Encode renders v as an XML document.
//
// v may be a map with exactly one key naming the root element, a Node or
// *Node, or a struct. Maps follow the map form described on Node.Map.
// Empty input (nil, an empty map or an unnamed node) encodes to "".
func Encode(v any, o *Options) (string, error) {
	r, err := o.resolve()
	if err != nil {
		return "", err
	}

	root, err := rootNode(v)
	if err != nil {
		return "", transcode.EncodeError(transcode.FormatXML, err)
	}
	if root == nil {
		return "", nil
	}

	out, err := render(root, r)
	if err != nil {
		return "", transcode.EncodeError(transcode.FormatXML, err)
	}
	return out, nil
}

// EncodeValue renders a struct of type T as an XML document. Field layout
// comes from `xml` struct tags: "name", "name,attr", ",chardata",
// "omitempty" and "-" are honoured, and an XMLName field names the root.
func EncodeValue[T any](v T, o *Options) (string, error) {
	rt := reflect.TypeFor[T]()
	if rt.Kind() == reflect.Struct {
		if _, ok := plans.Load(rt); !ok {
			plans.LoadOrStore(rt, buildPlan(rt, sentinel.Scan[T]()))
		}
	}
	return Encode(v, o)
}

func rootNode(v any) (*Node, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case *Node:
		if t == nil || t.Name == "" {
			return nil, nil
		}
		return t, nil
	case Node:
		if t.Name == "" {
			return nil, nil
		}
		return &t, nil
	case map[string]any:
		if len(t) == 0 {
			return nil, nil
		}
		if len(t) != 1 {
			return nil, fmt.Errorf("%w: want a single root element, got %d keys", transcode.ErrInvalidInput, len(t))
		}
		for name, value := range t {
			nodes, err := nodesFromValue(name, value)
			if err != nil {
				return nil, err
			}
			if len(nodes) != 1 {
				return nil, fmt.Errorf("%w: root element %s must appear once", transcode.ErrInvalidInput, name)
			}
			return nodes[0], nil
		}
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Struct {
		return structNode(planFor(rv.Type()).name, rv)
	}
	return nil, fmt.Errorf("%w: cannot encode %T as a document", transcode.ErrInvalidInput, v)
}

// nodesFromValue converts a map-form value into the elements it stands for.
// Lists yield one element per item; everything else yields one.
func nodesFromValue(name string, v any) ([]*Node, error) {
	switch t := v.(type) {
	case nil:
		return []*Node{{Name: name}}, nil
	case *Node:
		if t == nil {
			return nil, nil
		}
		n := *t
		n.Name = name
		return []*Node{&n}, nil
	case Node:
		t.Name = name
		return []*Node{&t}, nil
	case map[string]any:
		n, err := mapNode(name, t)
		if err != nil {
			return nil, err
		}
		return []*Node{n}, nil
	case []any:
		var out []*Node
		for _, item := range t {
			nodes, err := nodesFromValue(name, item)
			if err != nil {
				return nil, err
			}
			out = append(out, nodes...)
		}
		return out, nil
	}
	return valueNodes(name, reflect.ValueOf(v))
}

// valueNodes is nodesFromValue for arbitrary Go values. Nil pointers and
// interfaces produce no element.
func valueNodes(name string, rv reflect.Value) ([]*Node, error) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, nil
		}
		if rv.Type().Implements(textMarshalerType) {
			break
		}
		rv = rv.Elem()
	}

	if s, ok := scalarText(rv); ok {
		return []*Node{{Name: name, Text: s}}, nil
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		var out []*Node
		for i := 0; i < rv.Len(); i++ {
			nodes, err := nodesFromValue(name, rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out = append(out, nodes...)
		}
		return out, nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		n, err := mapNode(name, m)
		if err != nil {
			return nil, err
		}
		return []*Node{n}, nil

	case reflect.Struct:
		n, err := structNode(name, rv)
		if err != nil {
			return nil, err
		}
		return []*Node{n}, nil
	}
	return nil, fmt.Errorf("%w: cannot encode %s as element %s", transcode.ErrInvalidInput, rv.Type(), name)
}

func mapNode(name string, m map[string]any) (*Node, error) {
	n := &Node{Name: name}

	if raw, ok := m[AttributesKey]; ok {
		attrs, err := attrsOf(name, raw)
		if err != nil {
			return nil, err
		}
		n.Attrs = attrs
	}
	if raw, ok := m[TextKey]; ok {
		s, ok := scalarText(reflect.ValueOf(raw))
		if !ok {
			return nil, fmt.Errorf("%w: text of %s is not a scalar", transcode.ErrInvalidInput, name)
		}
		n.Text = s
	}

	for _, k := range sortedKeys(m) {
		if k == AttributesKey || k == TextKey {
			continue
		}
		children, err := nodesFromValue(k, m[k])
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, children...)
	}
	return n, nil
}

func attrsOf(name string, raw any) ([]Attr, error) {
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w: attributes of %s must be a map, got %T", transcode.ErrInvalidInput, name, raw)
	}
	values := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		values[iter.Key().String()] = iter.Value().Interface()
	}

	attrs := make([]Attr, 0, len(values))
	for _, k := range sortedKeys(values) {
		s, ok := scalarText(reflect.ValueOf(values[k]))
		if !ok {
			return nil, fmt.Errorf("%w: attribute %s of %s is not a scalar", transcode.ErrInvalidInput, k, name)
		}
		attrs = append(attrs, Attr{Name: k, Value: s})
	}
	return attrs, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// render writes the document for root, transcoding to the target charset.
func render(root *Node, r *resolved) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", fmt.Sprintf(`version="1.0" encoding="%s"`, r.Charset))
	if !r.Indent {
		doc.CreateText("\n")
	}

	if err := appendElement(&doc.Element, root); err != nil {
		return "", err
	}

	if r.Indent {
		if r.IndentString.IsTabs() {
			doc.IndentTabs()
		} else {
			doc.Indent(r.IndentString.Width())
		}
	}

	out, err := doc.WriteToString()
	if err != nil {
		return "", err
	}
	if r.utf8 {
		return out, nil
	}
	return r.enc.NewEncoder().String(out)
}

func appendElement(parent *etree.Element, n *Node) error {
	if !validName(n.Name) {
		return fmt.Errorf("%w: invalid element name %q", transcode.ErrInvalidInput, n.Name)
	}
	e := parent.CreateElement(n.Name)
	for _, a := range n.Attrs {
		if !validName(a.Name) {
			return fmt.Errorf("%w: invalid attribute name %q on %s", transcode.ErrInvalidInput, a.Name, n.Name)
		}
		e.CreateAttr(a.Name, a.Value)
	}
	if n.Text != "" {
		e.SetText(n.Text)
	}
	for _, c := range n.Children {
		if err := appendElement(e, c); err != nil {
			return err
		}
	}
	return nil
}

// validName reports whether s is usable as an element or attribute name.
func validName(s string) bool {
	if s == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	if first != '_' && first != ':' && !unicode.IsLetter(first) {
		return false
	}
	for _, c := range s {
		switch {
		case unicode.IsLetter(c), unicode.IsDigit(c):
		case c == '_', c == ':', c == '-', c == '.':
		default:
			return false
		}
	}
	return true
}
