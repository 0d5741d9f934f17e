package vcard

// Kind identifies the kind of a property and thereby the scribe that encodes
// it. The built-in kinds form a closed set; extension scribes registered by
// callers use their own Kind values.
type Kind string

const (
	KindFormattedName  Kind = "formatted-name"
	KindStructuredName Kind = "structured-name"
	KindNickname       Kind = "nickname"
	KindPhoto          Kind = "photo"
	KindBirthday       Kind = "birthday"
	KindAnniversary    Kind = "anniversary"
	KindDeathdate      Kind = "deathdate"
	KindAddress        Kind = "address"
	KindLabel          Kind = "label"
	KindTelephone      Kind = "telephone"
	KindEmail          Kind = "email"
	KindMailer         Kind = "mailer"
	KindGeo            Kind = "geo"
	KindTitle          Kind = "title"
	KindRole           Kind = "role"
	KindLogo           Kind = "logo"
	KindAgent          Kind = "agent"
	KindOrganization   Kind = "organization"
	KindCategories     Kind = "categories"
	KindNote           Kind = "note"
	KindProductID      Kind = "product-id"
	KindRevision       Kind = "revision"
	KindSortString     Kind = "sort-string"
	KindSound          Kind = "sound"
	KindUID            Kind = "uid"
	KindURL            Kind = "url"
	KindKey            Kind = "key"
	KindClassification Kind = "classification"
	KindSource         Kind = "source"
	KindSourceName     Kind = "source-name"
	KindContactKind    Kind = "kind"
	KindLanguage       Kind = "language"
	KindRaw            Kind = "raw"
	KindXML            Kind = "xml"
)

// Property is one typed attribute of a VCard.
type Property interface {
	Kind() Kind
	Meta() *Base
}

// Base holds what every property carries besides its value: an optional
// group label and its parameters. Concrete property types embed it.
type Base struct {
	Group  string
	Params Parameters
}

// Meta returns b itself so that embedding types satisfy Property.
func (b *Base) Meta() *Base { return b }

// Types is a shortcut for the TYPE parameter values.
func (b *Base) Types() []string { return b.Params.Types() }

// AddType adds a TYPE parameter value.
func (b *Base) AddType(t string) { b.Params.AddType(t) }

// Pref returns the PREF parameter.
func (b *Base) Pref() (int, bool) { return b.Params.Pref() }
