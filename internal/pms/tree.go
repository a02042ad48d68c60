package pms

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// node is a minimal element tree. text holds character data that appears
// before the first child element.
type node struct {
	name     string
	text     strings.Builder
	children []*node
}

func (n *node) findAll(name string) []*node {
	var out []*node
	var walk func(*node)
	walk = func(cur *node) {
		for _, child := range cur.children {
			if child.name == name {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(n)
	return out
}

// childText returns the text of the first direct child named name.
func (n *node) childText(name string) (string, bool) {
	for _, child := range n.children {
		if child.name == name {
			return child.text.String(), true
		}
	}
	return "", false
}

func parseTree(r io.Reader) (*node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var (
		root  *node
		stack []*node
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if t.Name.Space != "" {
				name = "{" + t.Name.Space + "}" + name
			}
			el := &node{name: name}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: junk after document element", ErrMalformedXML)
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, fmt.Errorf("%w: text outside document element", ErrMalformedXML)
				}
				continue
			}
			top := stack[len(stack)-1]
			if len(top.children) == 0 {
				top.text.Write(t)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("%w: no element found", ErrMalformedXML)
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("%w: unclosed element <%s>", ErrMalformedXML, stack[len(stack)-1].name)
	}
	return root, nil
}

// charsetReader decodes non-UTF-8 exports declared in the XML prolog.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
