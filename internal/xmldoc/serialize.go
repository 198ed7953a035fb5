package xmldoc

import (
	"io"
	"os"

	"github.com/beevik/etree"
)

// indentSpaces is the indentation width per nesting level.
const indentSpaces = 4

// Serialize writes the element tree as indented UTF-8 XML, preceded by
// exactly one XML declaration. Attributes keep their stored order; leaf
// text stays on the same line as its tags. Reserved characters in text and
// attribute values are escaped on output.
func Serialize(w io.Writer, root *Element) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root.build(&doc.Element)
	doc.Indent(indentSpaces)
	_, err := doc.WriteTo(w)
	return err
}

// WriteFile serializes the tree into the named file, creating or
// truncating it. Failures to open or write the file are returned to the
// caller; a partially written file is not removed.
func WriteFile(path string, root *Element) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Serialize(f, root); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (e *Element) build(parent *etree.Element) {
	el := parent.CreateElement(e.name)
	for _, a := range e.attrs {
		el.CreateAttr(a.Key, a.Value)
	}
	if e.leaf {
		el.SetText(e.text)
		return
	}
	for _, child := range e.children {
		child.build(el)
	}
}
