package vcard

import (
	"time"

	"github.com/eluv-io/utc-go"
)

// Text is a property with a single free-text (or URI) value, used for FN,
// NOTE, TITLE, ROLE, EMAIL, URL, UID, PRODID and the other simple kinds.
type Text struct {
	Base
	kind  Kind
	Value string
}

// NewText creates a text property of the given kind.
func NewText(kind Kind, value string) *Text { return &Text{kind: kind, Value: value} }

func (t *Text) Kind() Kind { return t.kind }

func NewFormattedName(name string) *Text { return NewText(KindFormattedName, name) }
func NewNote(note string) *Text          { return NewText(KindNote, note) }
func NewEmail(addr string) *Text         { return NewText(KindEmail, addr) }
func NewTitle(title string) *Text        { return NewText(KindTitle, title) }
func NewURL(url string) *Text            { return NewText(KindURL, url) }
func NewUID(uid string) *Text            { return NewText(KindUID, uid) }
func NewProductID(id string) *Text       { return NewText(KindProductID, id) }

// ProducerID is the PRODID value of records written by this module.
const ProducerID = "-//go-vcard//NONSGML go-vcard//EN"

// NewProducer returns the property naming this module as the producer of a
// record written in version v. Version 2.1 has no PRODID, so X-PRODID is used
// there.
func NewProducer(v Version) Property {
	if v == V2_1 {
		return NewRaw("X-PRODID", ProducerID)
	}
	return NewProductID(ProducerID)
}

// NewLabel creates a mailing label (2.1 and 3.0 only). Labels read from a
// record that could not be matched to an address are kept as Label
// properties in the record ("orphaned" labels).
func NewLabel(label string) *Text { return NewText(KindLabel, label) }

// List is a property holding a flat list of values (NICKNAME, CATEGORIES).
type List struct {
	Base
	kind   Kind
	Values []string
}

// NewList creates a list property of the given kind.
func NewList(kind Kind, values ...string) *List { return &List{kind: kind, Values: values} }

func (l *List) Kind() Kind { return l.kind }

// Telephone is a TEL property. Exactly one of Text and URI is normally set; a
// URI ("tel:+1-555-555-5555") is only written as such in 4.0.
type Telephone struct {
	Base
	Text string
	URI  string
}

func (*Telephone) Kind() Kind { return KindTelephone }

// StructuredName is the N property.
type StructuredName struct {
	Base
	Family     string
	Given      string
	Additional []string
	Prefixes   []string
	Suffixes   []string
}

func (*StructuredName) Kind() Kind { return KindStructuredName }

// Address is the ADR property. Every component may hold several values (4.0).
// The mailing label, if any, is kept in the LABEL parameter.
type Address struct {
	Base
	POBoxes           []string
	ExtendedAddresses []string
	StreetAddresses   []string
	Localities        []string
	Regions           []string
	PostalCodes       []string
	Countries         []string
}

func (*Address) Kind() Kind { return KindAddress }

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func (a *Address) POBox() string           { return first(a.POBoxes) }
func (a *Address) ExtendedAddress() string { return first(a.ExtendedAddresses) }
func (a *Address) StreetAddress() string   { return first(a.StreetAddresses) }
func (a *Address) Locality() string        { return first(a.Localities) }
func (a *Address) Region() string          { return first(a.Regions) }
func (a *Address) PostalCode() string      { return first(a.PostalCodes) }
func (a *Address) Country() string         { return first(a.Countries) }

// Label returns the mailing label attached to the address.
func (a *Address) Label() string { return a.Params.Label() }

// SetLabel attaches a mailing label; an empty label removes it.
func (a *Address) SetLabel(label string) {
	if label == "" {
		a.Params.Remove(ParamLabel)
		return
	}
	a.Params.Set(ParamLabel, label)
}

// Components returns the seven address components in wire order.
func (a *Address) Components() [][]string {
	return [][]string{
		a.POBoxes, a.ExtendedAddresses, a.StreetAddresses, a.Localities,
		a.Regions, a.PostalCodes, a.Countries,
	}
}

// Organization is the ORG property: the organization name followed by its
// units.
type Organization struct {
	Base
	Values []string
}

func (*Organization) Kind() Kind { return KindOrganization }

// Geo is the GEO property.
type Geo struct {
	Base
	Latitude  float64
	Longitude float64
}

func (*Geo) Kind() Kind { return KindGeo }

// Unset marks an absent component of a PartialDate.
const Unset = -1

// PartialDate is a date and/or time with reduced precision, such as a
// birthday without a year ("--0412") or a bare hour ("T10"). Absent fields
// are Unset. Offset is the UTC offset as written ("Z", "-0500") or "".
type PartialDate struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	Offset               string
}

// NewPartialDate returns a partial date with every field unset.
func NewPartialDate() PartialDate {
	return PartialDate{Year: Unset, Month: Unset, Day: Unset, Hour: Unset, Minute: Unset, Second: Unset}
}

// HasDate reports whether any date field is set.
func (p PartialDate) HasDate() bool { return p.Year != Unset || p.Month != Unset || p.Day != Unset }

// HasTime reports whether any time field is set.
func (p PartialDate) HasTime() bool { return p.Hour != Unset || p.Minute != Unset || p.Second != Unset }

// DateOrTime is a date-valued property (BDAY, ANNIVERSARY, DEATHDATE). One of
// Date, Partial or Text is in effect, checked in that order. Text values are
// only legal in 4.0.
type DateOrTime struct {
	Base
	kind    Kind
	Date    time.Time
	HasTime bool
	Partial *PartialDate
	Text    string
}

// NewDate creates a date property of the given kind from a full date, with or
// without its time of day.
func NewDate(kind Kind, t time.Time, withTime bool) *DateOrTime {
	return &DateOrTime{kind: kind, Date: t, HasTime: withTime}
}

// NewPartial creates a date property holding a reduced-precision date.
func NewPartial(kind Kind, p PartialDate) *DateOrTime {
	return &DateOrTime{kind: kind, Partial: &p}
}

// NewDateText creates a date property holding free text (4.0 only).
func NewDateText(kind Kind, text string) *DateOrTime {
	return &DateOrTime{kind: kind, Text: text}
}

func (d *DateOrTime) Kind() Kind { return d.kind }

// Timestamp is the REV property.
type Timestamp struct {
	Base
	Time utc.UTC
}

func (*Timestamp) Kind() Kind { return KindRevision }

// NewRevision creates a REV property.
func NewRevision(t time.Time) *Timestamp { return &Timestamp{Time: utc.New(t)} }

// Binary is a property that holds either a link or inline bytes: PHOTO, LOGO,
// SOUND and KEY. KEY may also hold plain text.
type Binary struct {
	Base
	kind        Kind
	URL         string
	Data        []byte
	ContentType string
	Text        string
}

// NewBinaryURL creates a binary property that links to its content.
func NewBinaryURL(kind Kind, url, contentType string) *Binary {
	return &Binary{kind: kind, URL: url, ContentType: contentType}
}

// NewBinaryData creates a binary property that embeds its content.
func NewBinaryData(kind Kind, data []byte, contentType string) *Binary {
	return &Binary{kind: kind, Data: data, ContentType: contentType}
}

// NewKeyText creates a KEY property holding a plain-text key.
func NewKeyText(text string) *Binary {
	return &Binary{kind: KindKey, Text: text}
}

func (b *Binary) Kind() Kind { return b.kind }

// Agent is the AGENT property (2.1 and 3.0): a reference to a secondary
// contact, either by URL or as an embedded record.
type Agent struct {
	Base
	URL   string
	VCard *VCard
}

func (*Agent) Kind() Kind { return KindAgent }

// Raw is a property no scribe understands, typically an extended "X-"
// property. Its value is kept exactly as read.
type Raw struct {
	Base
	Name     string
	Value    string
	DataType DataType
}

// NewRaw creates a raw property.
func NewRaw(name, value string) *Raw { return &Raw{Name: name, Value: value} }

func (*Raw) Kind() Kind { return KindRaw }

// XML is an opaque XML element carried for round-tripping: the XML property of
// the text syntax, or an element of a foreign namespace inside an xCard.
type XML struct {
	Base
	Value string
}

func (*XML) Kind() Kind { return KindXML }
