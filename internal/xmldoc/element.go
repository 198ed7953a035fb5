// Package xmldoc provides a schema-agnostic XML document tree and a
// serializer for it. Elements are either branches holding ordered child
// elements or leaves holding text; the shape is fixed at construction time.
package xmldoc

// Attr is a single attribute on an element. Attributes are emitted in
// insertion order; keys are not deduplicated at this layer.
type Attr struct {
	Key   string
	Value string
}

// Element is one node of a document tree.
type Element struct {
	name     string
	attrs    []Attr
	leaf     bool
	text     string
	children []*Element
}

// Branch creates an element that holds child elements. The children, if
// any, become the initial content; more can be added with Append.
func Branch(name string, attrs []Attr, children ...*Element) *Element {
	return &Element{name: name, attrs: attrs, children: children}
}

// Leaf creates an element that holds text content. A leaf element can
// never acquire children.
func Leaf(name string, attrs []Attr, text string) *Element {
	return &Element{name: name, attrs: attrs, leaf: true, text: text}
}

// Append adds a child to a branch element, mutating it in place. Appending
// to a leaf element is a programming error and panics.
func (e *Element) Append(child *Element) {
	if e.leaf {
		panic("xmldoc: cannot append a child to a leaf element")
	}
	e.children = append(e.children, child)
}

// Name returns the tag name of the element.
func (e *Element) Name() string { return e.name }

// Attrs returns the attributes in insertion order.
func (e *Element) Attrs() []Attr { return e.attrs }

// IsLeaf reports whether the element holds text instead of children.
func (e *Element) IsLeaf() bool { return e.leaf }

// Text returns the text content of a leaf element, or the empty string for
// a branch.
func (e *Element) Text() string { return e.text }

// Children returns the child elements of a branch in order.
func (e *Element) Children() []*Element { return e.children }

// Find returns the first direct child with the given name, or nil.
func (e *Element) Find(name string) *Element {
	for _, child := range e.children {
		if child.name == name {
			return child
		}
	}
	return nil
}

// FindAll returns all direct children with the given name, in order.
func (e *Element) FindAll(name string) []*Element {
	var matches []*Element
	for _, child := range e.children {
		if child.name == name {
			matches = append(matches, child)
		}
	}
	return matches
}
