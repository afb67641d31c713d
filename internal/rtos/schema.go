package rtos

import (
	"encoding/xml"
	"fmt"
)

// SchemaEntry is one node of a component configuration schema tree. An entry
// with zero children is a leaf; anything else is a subtree of uniquely-named
// children. Every entry carries a mandatory "name" attribute.
type SchemaEntry struct {
	XMLName  xml.Name
	Attrs    []xml.Attr     `xml:",any,attr"`
	Text     string         `xml:",chardata"`
	Children []*SchemaEntry `xml:",any"`
}

func (e *SchemaEntry) nameAttr() (string, bool) {
	for _, attr := range e.Attrs {
		if attr.Name.Local == "name" {
			return attr.Value, true
		}
	}
	return "", false
}

func (e *SchemaEntry) isLeaf() bool { return len(e.Children) == 0 }

// deepCopy clones an entry and its subtree so that merged trees never alias
// nodes of their inputs.
func (e *SchemaEntry) deepCopy() *SchemaEntry {
	clone := &SchemaEntry{
		XMLName: e.XMLName,
		Attrs:   append([]xml.Attr(nil), e.Attrs...),
		Text:    e.Text,
	}
	for _, child := range e.Children {
		clone.Children = append(clone.Children, child.deepCopy())
	}
	return clone
}

// mergeSchemaEntries merges b's children into a, recursively. path is the
// dotted location of a, used in diagnostics.
//
// A child of b whose name is new to a is appended (as a copy). When both
// sides have a child of the same name, the pair must agree on whether it has
// children: disagreement is a structural conflict. Two subtrees recurse; two
// leaves resolve last-writer-wins, b's version replacing a's. b is never
// modified.
func mergeSchemaEntries(a, b *SchemaEntry, path string) error {
	aChildren := make(map[string]*SchemaEntry, len(a.Children))
	for _, child := range a.Children {
		name, ok := child.nameAttr()
		if !ok {
			return fmt.Errorf("a schema entry under \"%s\" does not contain a name attribute", path)
		}
		aChildren[name] = child
	}

	for _, bChild := range b.Children {
		name, ok := bChild.nameAttr()
		if !ok {
			return fmt.Errorf("a schema entry under \"%s\" does not contain a name attribute", path)
		}
		aChild, present := aChildren[name]
		if !present {
			a.Children = append(a.Children, bChild.deepCopy())
			continue
		}
		if aChild.isLeaf() != bChild.isLeaf() {
			return fmt.Errorf("unable to merge two schemas: the entry %s.%s is present in both schemas, "+
				"but it has children in one and no children in the other", path, name)
		}
		if !aChild.isLeaf() {
			if err := mergeSchemaEntries(aChild, bChild, path+"."+name); err != nil {
				return err
			}
		} else {
			// Replace a's leaf with b's, allowing later components to
			// override earlier entries.
			replaceChild(a, aChild, bChild.deepCopy())
		}
	}
	return nil
}

func replaceChild(parent, old, repl *SchemaEntry) {
	for i, child := range parent.Children {
		if child == old {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			break
		}
	}
	parent.Children = append(parent.Children, repl)
}

// MergeSchemaSections folds each component's schema section fragment, in
// component order, into one merged schema tree and returns its
// serialization. An empty section list merges to an empty schema.
func MergeSchemaSections(sections []string) (string, error) {
	merged := &SchemaEntry{XMLName: xml.Name{Local: "schema"}, Text: "\n"}

	for _, section := range sections {
		doc := fmt.Sprintf("<schema>\n%s\n</schema>", section)
		var schema SchemaEntry
		if err := xml.Unmarshal([]byte(doc), &schema); err != nil {
			return "", fmt.Errorf("parsing schema section: %w", err)
		}
		if err := mergeSchemaEntries(merged, &schema, ""); err != nil {
			return "", err
		}
	}

	out, err := xml.Marshal(merged)
	if err != nil {
		return "", fmt.Errorf("serializing merged schema: %w", err)
	}
	return string(out), nil
}
