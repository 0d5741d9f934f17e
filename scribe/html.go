package scribe

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/grammar"
)

// HTMLScribe is implemented by scribes that read hCard markup themselves.
type HTMLScribe interface {
	ParseHTML(el *HTMLElement, params *vcard.Parameters, ctx *ParseContext) Result
}

// HTMLWriter is implemented by scribes that render their own hCard markup.
// The returned element must carry the property class.
type HTMLWriter interface {
	WriteHTML(p vcard.Property, ctx *WriteContext) (*html.Node, error)
}

// HTMLElement is an element of an hCard document.
type HTMLElement struct {
	Node *html.Node
	Base *url.URL
}

// NewHTMLElement wraps n. Relative links are resolved against base, which
// may be nil.
func NewHTMLElement(n *html.Node, base *url.URL) *HTMLElement {
	return &HTMLElement{Node: n, Base: base}
}

// Tag returns the lower-case tag name.
func (e *HTMLElement) Tag() string {
	return e.Node.Data
}

// Attr returns the value of an attribute, or "".
func (e *HTMLElement) Attr(name string) string {
	return attr(e.Node, name)
}

// Classes returns the class names of the element.
func (e *HTMLElement) Classes() []string {
	return Classes(e.Node)
}

// HasClass reports whether the element carries class.
func (e *HTMLElement) HasClass(class string) bool {
	return HasClass(e.Node, class)
}

// AbsURL returns the attribute resolved against the page URL.
func (e *HTMLElement) AbsURL(name string) string {
	v := strings.TrimSpace(e.Attr(name))
	if v == "" || e.Base == nil {
		return v
	}
	ref, err := url.Parse(v)
	if err != nil {
		return v
	}
	return e.Base.ResolveReference(ref).String()
}

// ByClass returns the descendants carrying class, in document order.
func (e *HTMLElement) ByClass(class string) []*HTMLElement {
	var found []*HTMLElement
	walk(e.Node, func(n *html.Node) bool {
		if n != e.Node && HasClass(n, class) {
			found = append(found, &HTMLElement{Node: n, Base: e.Base})
		}
		return true
	})
	return found
}

// FirstValue returns the value of the first descendant carrying class.
func (e *HTMLElement) FirstValue(class string) (string, bool) {
	els := e.ByClass(class)
	if len(els) == 0 {
		return "", false
	}
	return els[0].Value(), true
}

// AllValues returns the values of the descendants carrying class.
func (e *HTMLElement) AllValues(class string) []string {
	var values []string
	for _, el := range e.ByClass(class) {
		values = append(values, el.Value())
	}
	return values
}

// Types returns the lower-cased values of the descendants classed "type".
func (e *HTMLElement) Types() []string {
	var types []string
	for _, el := range e.ByClass("type") {
		if t := strings.ToLower(el.Value()); t != "" {
			types = append(types, t)
		}
	}
	return types
}

// Value returns the value of the element following the hCard value rules:
// the title of an abbr element, the joined values of "value" descendants,
// or else the text content where br elements become line breaks and
// elements classed "type" are ignored.
func (e *HTMLElement) Value() string {
	if e.Node.DataAtom == atom.Abbr {
		if title := e.Attr("title"); title != "" {
			return title
		}
	}
	if values := e.ByClass("value"); len(values) > 0 {
		var b strings.Builder
		for _, v := range values {
			b.WriteString(textValue(v.Node))
		}
		return b.String()
	}
	return textValue(e.Node)
}

func textValue(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b.WriteString(collapseSpace(c.Data))
			case html.ElementNode:
				switch {
				case HasClass(c, "type"), c.DataAtom == atom.Del:
				case c.DataAtom == atom.Br:
					b.WriteString("\n")
				default:
					visit(c)
				}
			}
		}
	}
	visit(n)
	return strings.TrimSpace(b.String())
}

// collapseSpace replaces runs of whitespace with a single space.
func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s == "" {
			return ""
		}
		return " "
	}
	out := strings.Join(fields, " ")
	if strings.TrimLeft(s, " \t\r\n") != s {
		out = " " + out
	}
	if strings.TrimRight(s, " \t\r\n") != s {
		out += " "
	}
	return out
}

// Classes returns the class names of n.
func Classes(n *html.Node) []string {
	return strings.Fields(attr(n, "class"))
}

// HasClass reports whether n is an element carrying class,
// case-insensitively.
func HasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range Classes(n) {
		if strings.EqualFold(c, class) {
			return true
		}
	}
	return false
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

// walk visits n and its descendants depth first. Returning false from fn
// skips the children of the visited node.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

// Element returns a new element with the given tag, class and text.
func Element(a atom.Atom, class, text string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	if text != "" {
		appendText(n, text)
	}
	return n
}

// appendText adds text to n, turning line breaks into br elements.
func appendText(n *html.Node, text string) {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			n.AppendChild(&html.Node{Type: html.ElementNode, DataAtom: atom.Br, Data: "br"})
		}
		if line != "" {
			n.AppendChild(&html.Node{Type: html.TextNode, Data: line})
		}
	}
}

// SetAttr sets an attribute on n.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// appendTypes adds a span classed "type" for every TYPE value of params.
func appendTypes(n *html.Node, params *vcard.Parameters) {
	for _, t := range params.Types() {
		n.AppendChild(Element(atom.Span, "type", t))
		n.AppendChild(&html.Node{Type: html.TextNode, Data: " "})
	}
}

// ParseHTML decodes an hCard property element. The default parses the
// escaped element value as a version 3.0 text value.
func ParseHTML(s Scribe, el *HTMLElement, params *vcard.Parameters, ctx *ParseContext) Result {
	if hs, ok := s.(HTMLScribe); ok {
		return hs.ParseHTML(el, params, ctx)
	}
	return s.ParseText(grammar.Escape(el.Value()), s.DefaultDataType(vcard.V3_0), params, ctx)
}

// WriteHTML renders p as hCard markup. The default is a div carrying the
// property class with the unescaped version 3.0 text value.
func WriteHTML(s Scribe, p vcard.Property, ctx *WriteContext) (*html.Node, error) {
	if hw, ok := s.(HTMLWriter); ok {
		return hw.WriteHTML(p, ctx)
	}
	text, err := s.WriteText(p, at(ctx, vcard.V3_0))
	if err != nil {
		return nil, err
	}
	return Element(atom.Div, HTMLClass(s), grammar.Unescape(text)), nil
}

// HTMLClass returns the hCard class name of the property of s.
func HTMLClass(s Scribe) string {
	if s.Kind() == vcard.KindCategories {
		return "category"
	}
	return strings.ToLower(s.Name())
}
