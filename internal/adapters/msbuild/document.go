// Package msbuild implements parsing and mutation of MSBuild-style XML
// project manifests. Mutations touch only the affected item elements and
// their indentation; every other token of the document tree is preserved as
// parsed.
package msbuild

import (
	"strings"

	"github.com/beevik/etree"
	"go.trai.ch/psync/internal/core/domain"
	"go.trai.ch/psync/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	itemGroupTag = "ItemGroup"
	includeAttr  = "Include"

	// indentUnit is one level of indentation, the convention these
	// manifests are authored with.
	indentUnit = "  "
)

var _ ports.Manifest = (*Document)(nil)

// Document is a parsed project manifest open for mutation.
type Document struct {
	ref domain.ProjectRef
	doc *etree.Document
}

// Path returns the absolute path of the manifest on disk.
func (d *Document) Path() string {
	return d.ref.Path
}

// Name returns the display name (file name without extension).
func (d *Document) Name() string {
	return d.ref.Name
}

// Items returns every file reference in the document, across all item
// groups, in document order. Elements without an Include attribute (header
// comments, wildcard removes) are not items and are skipped.
func (d *Document) Items() []domain.Item {
	var items []domain.Item
	for _, group := range d.itemGroups() {
		for _, el := range childElements(group) {
			include := el.SelectAttrValue(includeAttr, "")
			if include == "" {
				continue
			}
			items = append(items, domain.Item{Kind: el.Tag, Include: include})
		}
	}
	return items
}

// Contains reports whether an item with the given include path exists.
func (d *Document) Contains(include string) bool {
	return d.findItem(include) != nil
}

// Add appends the item under the last item group, creating one if the
// document has none. It returns false when an item with the same include is
// already present.
func (d *Document) Add(item domain.Item) bool {
	if d.Contains(item.Include) {
		return false
	}

	groups := d.itemGroups()
	var group *etree.Element
	if len(groups) > 0 {
		group = groups[len(groups)-1]
	} else {
		group = d.createItemGroup()
	}

	el := etree.NewElement(item.Kind)
	el.CreateAttr(includeAttr, item.Include)
	appendItem(group, el)
	return true
}

// Remove deletes the item with the given include path along with its
// indentation. An emptied item group is left in place.
func (d *Document) Remove(include string) error {
	el := d.findItem(include)
	if el == nil {
		return zerr.With(domain.ErrItemNotFound, "include", include)
	}
	removeWithIndent(el)
	return nil
}

// Rename rewrites the include of an existing item in place. The element
// keeps its position and metadata children.
func (d *Document) Rename(from, to string) error {
	el := d.findItem(from)
	if el == nil {
		return zerr.With(domain.ErrItemNotFound, "include", from)
	}
	el.CreateAttr(includeAttr, to)
	return nil
}

// itemGroups returns the item group elements directly under the project
// root, in document order.
func (d *Document) itemGroups() []*etree.Element {
	return d.doc.Root().SelectElements(itemGroupTag)
}

// findItem returns the element whose include path matches, or nil.
func (d *Document) findItem(include string) *etree.Element {
	want := domain.CanonicalInclude(include)
	for _, group := range d.itemGroups() {
		for _, el := range childElements(group) {
			value := el.SelectAttrValue(includeAttr, "")
			if value == "" {
				continue
			}
			if domain.CanonicalInclude(value) == want {
				return el
			}
		}
	}
	return nil
}

// createItemGroup inserts a new item group as the last element child of the
// project root, indented like its siblings.
func (d *Document) createItemGroup() *etree.Element {
	root := d.doc.Root()
	group := etree.NewElement(itemGroupTag)

	elems := childElements(root)
	if len(elems) > 0 {
		last := elems[len(elems)-1]
		indent := indentBefore(last)
		if indent == "" {
			indent = "\n" + indentUnit
		}
		idx := last.Index() + 1
		root.InsertChildAt(idx, etree.NewText(indent))
		root.InsertChildAt(idx+1, group)
		return group
	}

	// Bare root: lay out the group and the root's closing tag.
	removeWhitespaceChildren(root)
	root.AddChild(etree.NewText("\n" + indentUnit))
	root.AddChild(group)
	root.AddChild(etree.NewText("\n"))
	return group
}

// appendItem places el after the group's last item, cloning the indentation
// of the element it follows.
func appendItem(group, el *etree.Element) {
	items := childElements(group)
	if len(items) > 0 {
		last := items[len(items)-1]
		indent := indentBefore(last)
		if indent == "" {
			indent = "\n" + indentUnit + indentUnit
		}
		idx := last.Index() + 1
		group.InsertChildAt(idx, etree.NewText(indent))
		group.InsertChildAt(idx+1, el)
		return
	}

	// Empty group: the item gets one level more than the group itself, and
	// the closing tag returns to the group's own level.
	base := indentBefore(group)
	if base == "" {
		base = "\n"
	}
	removeWhitespaceChildren(group)
	group.AddChild(etree.NewText(base + indentUnit))
	group.AddChild(el)
	group.AddChild(etree.NewText(base))
}

// removeWithIndent removes el and the whitespace token preceding it, so the
// surrounding lines close up without leaving a blank line behind.
func removeWithIndent(el *etree.Element) {
	parent := el.Parent()
	idx := el.Index()
	if idx > 0 {
		if cd, ok := parent.Child[idx-1].(*etree.CharData); ok && isWhitespace(cd.Data) {
			parent.RemoveChildAt(idx - 1)
			idx--
		}
	}
	parent.RemoveChildAt(idx)
}

// childElements returns the element children of e, in order.
func childElements(e *etree.Element) []*etree.Element {
	var elems []*etree.Element
	for _, child := range e.Child {
		if el, ok := child.(*etree.Element); ok {
			elems = append(elems, el)
		}
	}
	return elems
}

// indentBefore returns the whitespace token immediately preceding el in its
// parent, or an empty string when there is none.
func indentBefore(el *etree.Element) string {
	parent := el.Parent()
	if parent == nil {
		return ""
	}
	idx := el.Index()
	if idx == 0 {
		return ""
	}
	if cd, ok := parent.Child[idx-1].(*etree.CharData); ok && isWhitespace(cd.Data) {
		return cd.Data
	}
	return ""
}

// removeWhitespaceChildren drops whitespace-only text children of e.
func removeWhitespaceChildren(e *etree.Element) {
	for i := len(e.Child) - 1; i >= 0; i-- {
		if cd, ok := e.Child[i].(*etree.CharData); ok && isWhitespace(cd.Data) {
			e.RemoveChildAt(i)
		}
	}
}

func isWhitespace(s string) bool {
	return strings.TrimLeft(s, " \t\r\n") == ""
}
