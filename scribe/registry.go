package scribe

import (
	"strings"
	"sync"

	elog "github.com/eluv-io/log-go"

	"github.com/KimNorgaard/go-vcard"
)

var log = elog.Get("/vcard/scribe")

type qname struct {
	space, local string
}

// table indexes scribes by name, kind and XML qualified name.
type table struct {
	byName  map[string]Scribe
	byKind  map[vcard.Kind]Scribe
	byQName map[qname]Scribe
}

func newTable() *table {
	return &table{
		byName:  map[string]Scribe{},
		byKind:  map[vcard.Kind]Scribe{},
		byQName: map[qname]Scribe{},
	}
}

func keys(s Scribe) (string, vcard.Kind, qname) {
	space, local := QName(s)
	return strings.ToUpper(s.Name()), s.Kind(), qname{space, local}
}

// add inserts s. A scribe holding any of the keys of s is removed from all
// three indices first.
func (t *table) add(s Scribe) {
	name, kind, q := keys(s)
	for _, old := range []Scribe{t.byName[name], t.byKind[kind], t.byQName[q]} {
		if old != nil {
			t.remove(old)
		}
	}
	t.byName[name] = s
	t.byKind[kind] = s
	t.byQName[q] = s
}

func (t *table) remove(s Scribe) {
	name, kind, q := keys(s)
	if t.byName[name] == s {
		delete(t.byName, name)
	}
	if t.byKind[kind] == s {
		delete(t.byKind, kind)
	}
	if t.byQName[q] == s {
		delete(t.byQName, q)
	}
}

var (
	builtinOnce  sync.Once
	builtinTable *table
	xmlFallback  Scribe
)

var (
	v30 = versions{vcard.V3_0}
	v40 = versions{vcard.V4_0}
	v21 = versions{vcard.V2_1, vcard.V3_0}
	v3x = versions{vcard.V3_0, vcard.V4_0}
)

// builtins returns the table of built-in scribes, building it on first use.
func builtins() *table {
	builtinOnce.Do(func() {
		xmlFallback = newXML()
		t := newTable()
		for _, s := range []Scribe{
			newText(vcard.KindFormattedName, "FN", nil),
			newName(),
			newList(vcard.KindNickname, "NICKNAME", v3x),
			newBinary(vcard.KindPhoto, "PHOTO", "image"),
			newDate(vcard.KindBirthday, "BDAY", nil),
			newDate(vcard.KindAnniversary, "ANNIVERSARY", v40),
			newDate(vcard.KindDeathdate, "DEATHDATE", v40),
			newAddress(),
			newText(vcard.KindLabel, "LABEL", v21),
			newTel(),
			newText(vcard.KindEmail, "EMAIL", nil).withPref(),
			newText(vcard.KindMailer, "MAILER", v21),
			newGeo(),
			newText(vcard.KindTitle, "TITLE", nil),
			newText(vcard.KindRole, "ROLE", nil),
			newBinary(vcard.KindLogo, "LOGO", "image"),
			newAgent(),
			newOrg(),
			newList(vcard.KindCategories, "CATEGORIES", v3x),
			newText(vcard.KindNote, "NOTE", nil),
			newText(vcard.KindProductID, "PRODID", v3x),
			newTimestamp(),
			newText(vcard.KindSortString, "SORT-STRING", v30),
			newBinary(vcard.KindSound, "SOUND", "audio"),
			newText(vcard.KindUID, "UID", nil).withTypes(vcard.TypeText, vcard.TypeText, vcard.TypeURI),
			newText(vcard.KindURL, "URL", nil).withTypes(vcard.TypeURL, vcard.TypeURI, vcard.TypeURI),
			newBinary(vcard.KindKey, "KEY", ""),
			newText(vcard.KindClassification, "CLASS", v30),
			newText(vcard.KindSource, "SOURCE", v3x).withTypes(vcard.TypeURI, vcard.TypeURI, vcard.TypeURI),
			newText(vcard.KindSourceName, "NAME", v30),
			newText(vcard.KindContactKind, "KIND", v40),
			newText(vcard.KindLanguage, "LANG", v40).withTypes(vcard.TypeLanguageTag, vcard.TypeLanguageTag, vcard.TypeLanguageTag),
			xmlFallback,
		} {
			t.add(s)
		}
		builtinTable = t
	})
	return builtinTable
}

// Registry resolves property names, kinds and xCard elements to scribes.
// Scribes registered on a Registry shadow the built-in ones. A Registry may
// be shared by concurrent readers and writers as long as nobody registers
// or unregisters scribes at the same time.
type Registry struct {
	extensions *table
}

// NewRegistry returns a registry holding only the built-in scribes.
func NewRegistry() *Registry {
	return &Registry{extensions: newTable()}
}

// Register adds s, replacing any scribe registered for the same name, kind
// or qualified name.
func (r *Registry) Register(s Scribe) {
	r.extensions.add(s)
	space, local := QName(s)
	log.Debug("scribe registered", "name", s.Name(), "kind", s.Kind(), "qname", space+":"+local)
}

// Unregister removes s. Built-in scribes cannot be removed.
func (r *Registry) Unregister(s Scribe) {
	r.extensions.remove(s)
	log.Debug("scribe unregistered", "name", s.Name(), "kind", s.Kind())
}

// ByName returns the scribe of a property name, or nil.
func (r *Registry) ByName(name string) Scribe {
	name = strings.ToUpper(name)
	if s, ok := r.extensions.byName[name]; ok {
		return s
	}
	return builtins().byName[name]
}

// ByKind returns the scribe of a property kind, or nil.
func (r *Registry) ByKind(kind vcard.Kind) Scribe {
	if s, ok := r.extensions.byKind[kind]; ok {
		return s
	}
	return builtins().byKind[kind]
}

// ByQName returns the scribe of an xCard element, or nil.
func (r *Registry) ByQName(space, local string) Scribe {
	q := qname{space, local}
	if s, ok := r.extensions.byQName[q]; ok {
		return s
	}
	return builtins().byQName[q]
}

// ByHTMLClass returns the scribe of an hCard class name, or nil.
func (r *Registry) ByHTMLClass(class string) Scribe {
	if strings.EqualFold(class, "category") {
		return r.ByKind(vcard.KindCategories)
	}
	if strings.EqualFold(class, "xml") {
		return nil
	}
	return r.ByName(class)
}

// ForProperty returns the scribe that writes p. Raw properties get a raw
// scribe of their own name. It returns nil for a kind nobody registered.
func (r *Registry) ForProperty(p vcard.Property) Scribe {
	if raw, ok := p.(*vcard.Raw); ok {
		return NewRawScribe(raw.Name)
	}
	return r.ByKind(p.Kind())
}

// ForName returns the scribe of a property name, or a raw scribe when the
// name is unknown.
func (r *Registry) ForName(name string) Scribe {
	if s := r.ByName(name); s != nil {
		return s
	}
	return NewRawScribe(name)
}

// ForXML returns the scribe of an xCard element. Unknown elements of the
// vCard namespace get a raw scribe; elements of other namespaces are kept
// as XML properties.
func (r *Registry) ForXML(space, local string) Scribe {
	if s := r.ByQName(space, local); s != nil {
		return s
	}
	if space == vcard.Namespace {
		return NewRawScribe(local)
	}
	builtins()
	return xmlFallback
}
