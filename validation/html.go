package validation

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	classValid   = "is-valid"
	classInvalid = "is-invalid"
)

// Document is a parsed HTML page and the forms in it that opted into
// validation with data-validate="true".
type Document struct {
	Forms []*Form

	root *html.Node
}

// ParseDocument reads an HTML page and extracts its validated forms
func ParseDocument(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	doc := &Document{root: root}
	walk(root, func(n *html.Node) bool {
		if n.DataAtom == atom.Form && attr(n, "data-validate") == "true" {
			doc.Forms = append(doc.Forms, extractForm(n))
			return false
		}
		return true
	})
	return doc, nil
}

// Apply copies each field's state onto its element as the is-valid /
// is-invalid class.
func (d *Document) Apply() {
	for _, form := range d.Forms {
		for _, field := range form.Fields {
			if field.node == nil {
				continue
			}
			classes := removeClasses(attr(field.node, "class"), classValid, classInvalid)
			switch field.State {
			case Valid:
				classes = append(classes, classValid)
			case Invalid:
				classes = append(classes, classInvalid)
			}
			if len(classes) == 0 && !hasAttr(field.node, "class") {
				continue
			}
			setAttr(field.node, "class", strings.Join(classes, " "))
		}
	}
}

// Render writes the document back out as HTML
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func extractForm(n *html.Node) *Form {
	form := &Form{Name: attr(n, "name"), node: n}
	if form.Name == "" {
		form.Name = attr(n, "id")
	}
	walk(n, func(c *html.Node) bool {
		switch c.DataAtom {
		case atom.Input, atom.Select, atom.Textarea:
			form.Fields = append(form.Fields, extractField(c))
			return false
		}
		return true
	})
	return form
}

func extractField(n *html.Node) *Field {
	field := &Field{
		Name:     attr(n, "name"),
		Required: hasAttr(n, "required"),
		node:     n,
	}
	if field.Name == "" {
		field.Name = attr(n, "id")
	}

	switch n.DataAtom {
	case atom.Input:
		field.Type = strings.ToLower(attr(n, "type"))
		if field.Type == "" {
			field.Type = "text"
		}
		field.Value = attr(n, "value")
	case atom.Textarea:
		field.Type = "textarea"
		field.Value = textContent(n)
	case atom.Select:
		field.Type = "select"
		field.Value = selectedOption(n)
	}

	switch {
	case hasClass(n, classInvalid):
		field.State = Invalid
	case hasClass(n, classValid):
		field.State = Valid
	}
	return field
}

func selectedOption(n *html.Node) string {
	first, selected := "", ""
	found := false
	walk(n, func(c *html.Node) bool {
		if c.DataAtom != atom.Option {
			return true
		}
		value := attr(c, "value")
		if !hasAttr(c, "value") {
			value = textContent(c)
		}
		if !found {
			first, found = value, true
		}
		if hasAttr(c, "selected") && selected == "" {
			selected = value
		}
		return false
	})
	if selected != "" {
		return selected
	}
	return first
}

// walk visits n's descendants depth-first; fn returning false skips children
func walk(n *html.Node, fn func(*html.Node) bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && !fn(c) {
			continue
		}
		walk(c, fn)
	}
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
			collect(c)
		}
	}
	collect(n)
	return strings.TrimSpace(sb.String())
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func removeClasses(classAttr string, drop ...string) []string {
	var kept []string
	for _, c := range strings.Fields(classAttr) {
		skip := false
		for _, d := range drop {
			if c == d {
				skip = true
				break
			}
		}
		if !skip {
			kept = append(kept, c)
		}
	}
	return kept
}
