package xml

import (
	"bytes"
	stdxml "encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"

	"github.com/zoobzio/transcode"
)

var errNoRoot = errors.New("document has no root element")

// Decode parses an XML document.
//
// The result is the map form (see Node.Map) unless Options.Assoc is false,
// in which case it is a *Node. Declared charsets other than UTF-8 are
// converted on the way in. With ThrowErrors false a document that fails to
// parse decodes to nil without error.
func Decode(data []byte, o *Options) (any, error) {
	r, err := o.resolve()
	if err != nil {
		return nil, err
	}

	root, err := parse(data, r)
	if err != nil {
		if !r.throwErrors() {
			return nil, nil
		}
		return nil, transcode.DecodeError(transcode.FormatXML, err)
	}

	if r.assoc() {
		return root.Map(), nil
	}
	return root, nil
}

// DecodeNode parses an XML document into its root Node.
func DecodeNode(data []byte, o *Options) (*Node, error) {
	r, err := o.resolve()
	if err != nil {
		return nil, err
	}
	root, err := parse(data, r)
	if err != nil {
		return nil, transcode.DecodeError(transcode.FormatXML, err)
	}
	return root, nil
}

func parse(data []byte, r *resolved) (*Node, error) {
	if r.ValidateOnParse {
		if err := validate(data); err != nil {
			return nil, err
		}
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	doc.ReadSettings.Permissive = !r.StrictErrorChecking
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}

	root := doc.Root()
	if root == nil {
		return nil, errNoRoot
	}
	return nodeFromElement(root, r), nil
}

// validate runs a strict token pass over the whole document.
func validate(data []byte) error {
	d := stdxml.NewDecoder(bytes.NewReader(data))
	d.Strict = true
	d.CharsetReader = charset.NewReaderLabel
	for {
		_, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func nodeFromElement(e *etree.Element, r *resolved) *Node {
	noNamespace := r.Flags&ParseNoNamespace != 0
	noBlanks := r.Flags&ParseNoBlanks != 0

	n := &Node{Name: e.FullTag()}
	if noNamespace {
		n.Name = e.Tag
	}

	for i := range e.Attr {
		a := &e.Attr[i]
		name := a.FullKey()
		if noNamespace {
			if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
				continue
			}
			name = a.Key
		}
		n.Attrs = append(n.Attrs, Attr{Name: name, Value: a.Value})
	}

	var text strings.Builder
	for _, tok := range e.Child {
		switch t := tok.(type) {
		case *etree.Element:
			n.Children = append(n.Children, nodeFromElement(t, r))
		case *etree.CharData:
			if noBlanks && t.IsWhitespace() {
				continue
			}
			text.WriteString(t.Data)
		}
	}

	n.Text = text.String()
	if !r.PreserveWhiteSpace {
		n.Text = strings.TrimSpace(n.Text)
	}
	return n
}
