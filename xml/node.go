package xml

// Keys with special meaning in the map form of a document.
const (
	// AttributesKey holds an element's attributes as a map of name to value.
	AttributesKey = "@attributes"
	// TextKey holds an element's text when it also has attributes or children.
	TextKey = "@text"
)

// Attr is an element attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is an element with its attributes, text and child elements. It is
// the decode shape when Options.Assoc is false, and an accepted encode input.
type Node struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Child returns the first child element with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Map returns the node in map form: {name: value}, where value is the text
// for a text-only element and otherwise a map of children, AttributesKey
// and TextKey. Repeated children become a []any.
func (n *Node) Map() map[string]any {
	return map[string]any{n.Name: n.value()}
}

func (n *Node) value() any {
	if len(n.Attrs) == 0 && len(n.Children) == 0 {
		return n.Text
	}

	m := make(map[string]any, len(n.Children)+2)
	if len(n.Attrs) > 0 {
		attrs := make(map[string]any, len(n.Attrs))
		for _, a := range n.Attrs {
			attrs[a.Name] = a.Value
		}
		m[AttributesKey] = attrs
	}
	for _, c := range n.Children {
		v := c.value()
		existing, ok := m[c.Name]
		if !ok {
			m[c.Name] = v
			continue
		}
		// value never yields []any, so a list here is a repeat.
		if list, ok := existing.([]any); ok {
			m[c.Name] = append(list, v)
		} else {
			m[c.Name] = []any{existing, v}
		}
	}
	if n.Text != "" {
		m[TextKey] = n.Text
	}
	return m
}
