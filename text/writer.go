package text

import (
	"io"
	"strings"

	"github.com/eluv-io/errors-go"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/fold"
	"github.com/KimNorgaard/go-vcard/grammar"
	"github.com/KimNorgaard/go-vcard/scribe"
)

// Writer writes records in the text syntax of one version. Records are
// never modified while they are written.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	w       io.Writer
	version vcard.Version
	opts    []Option
	o       *options
	fw      *fold.Writer
}

// NewWriter returns a Writer writing records in version v to w. Options are
// applied by the first call to Write, which reports invalid ones.
func NewWriter(w io.Writer, v vcard.Version, opts ...Option) *Writer {
	return &Writer{w: w, version: v, opts: opts}
}

func (w *Writer) init() error {
	if w.fw != nil {
		return nil
	}
	if !w.version.Valid() {
		return errors.E("text.NewWriter", errors.K.Invalid, "reason", "unknown version", "version", int(w.version))
	}
	o, err := newOptions(w.opts)
	if err != nil {
		return err
	}
	fw, err := fold.NewWriter(w.w, fold.LineLength(o.foldLength), fold.Indent(o.indent), fold.Newline(o.newline))
	if err != nil {
		return err
	}
	w.o, w.fw = o, fw
	return nil
}

// Write writes card.
func (w *Writer) Write(card *vcard.VCard) error {
	if err := w.init(); err != nil {
		return err
	}
	return w.writeCard(card, true)
}

func (w *Writer) writeCard(card *vcard.VCard, top bool) error {
	if err := w.writeRaw("BEGIN:VCARD"); err != nil {
		return err
	}
	if err := w.writeRaw("VERSION:" + w.version.String()); err != nil {
		return err
	}
	for _, p := range w.properties(card, top) {
		if err := w.writeProperty(card, p); err != nil {
			return err
		}
	}
	return w.writeRaw("END:VCARD")
}

// properties returns the properties to write for card: the record's own,
// plus a PRODID and the LABEL properties of addresses for versions without
// a LABEL parameter.
func (w *Writer) properties(card *vcard.VCard, top bool) []vcard.Property {
	producer := w.o.productID && top
	var props []vcard.Property
	if producer {
		props = append(props, vcard.NewProducer(w.version))
	}
	for _, p := range card.Properties {
		if producer && isProducer(p) {
			continue
		}
		props = append(props, p)
		if w.version == vcard.V4_0 {
			continue
		}
		if a, ok := p.(*vcard.Address); ok && a.Label() != "" {
			label := vcard.NewLabel(a.Label())
			label.Params.Set(vcard.ParamType, a.Types()...)
			props = append(props, label)
		}
	}
	return props
}

func isProducer(p vcard.Property) bool {
	if raw, ok := p.(*vcard.Raw); ok {
		return strings.EqualFold(raw.Name, "X-PRODID")
	}
	return p.Kind() == vcard.KindProductID
}

func (w *Writer) writeProperty(card *vcard.VCard, p vcard.Property) error {
	s := w.o.registry.ForProperty(p)
	if s == nil {
		return errors.E("text.Writer.Write", errors.K.NotExist,
			"reason", "no scribe registered for property", "kind", p.Kind())
	}
	v := w.version
	if w.o.versionStrict && !scribe.Supports(s, v) {
		log.Debug("property skipped", "property", s.Name(), "version", v, "reason", "not supported by version")
		return nil
	}

	ctx := &scribe.WriteContext{Version: v, VCard: card, TrailingSemicolons: w.o.trailingSemicolons}
	params := scribe.PrepareParameters(s, p, ctx)

	if nested := scribe.NestedRecord(s, p); nested != nil {
		return w.writeNested(s.Name(), p.Meta().Group, params, nested)
	}

	value, err := s.WriteText(p, ctx)
	if err != nil {
		if scribe.IsSkip(err) {
			log.Debug("property skipped", "property", s.Name(), "version", v, "reason", err)
			return nil
		}
		return err
	}
	if dt := scribe.DataType(s, p, v); dt != "" && dt != s.DefaultDataType(v) {
		if v == vcard.V2_1 {
			params.Set(vcard.ParamValue, strings.ToUpper(string(dt)))
		} else {
			params.SetValue(dt)
		}
	}
	return w.writeLine(p.Meta().Group, s.Name(), params, value)
}

// writeNested writes an AGENT holding a record: as a BEGIN/END block after
// the property line in version 2.1, as an escaped value in version 3.0.
func (w *Writer) writeNested(name, group string, params *vcard.Parameters, nested *vcard.VCard) error {
	switch w.version {
	case vcard.V2_1:
		if err := w.writeLine(group, name, params, ""); err != nil {
			return err
		}
		return w.writeCard(nested, false)
	case vcard.V3_0:
		var b strings.Builder
		fw, err := fold.NewWriter(&b, fold.LineLength(0), fold.Newline("\n"))
		if err != nil {
			return err
		}
		sub := &Writer{w: &b, version: w.version, o: w.o, fw: fw}
		if err := sub.writeCard(nested, false); err != nil {
			return err
		}
		value := grammar.Escape(strings.TrimSuffix(b.String(), "\n"))
		return w.writeLine(group, name, params, value)
	}
	log.Debug("property skipped", "property", name, "version", w.version, "reason", "embedded vCard")
	return nil
}

// writeLine writes one content line. Version 2.1 values with line breaks
// are written quoted-printable; the other versions escape line breaks.
func (w *Writer) writeLine(group, name string, params *vcard.Parameters, value string) error {
	qp := false
	charset := ""
	if w.version == vcard.V2_1 {
		if strings.EqualFold(params.Encoding(), "QUOTED-PRINTABLE") || strings.ContainsAny(value, "\r\n") {
			qp = true
			params.Set(vcard.ParamEncoding, "QUOTED-PRINTABLE")
			charset = params.Charset()
			if _, err := fold.Charset(charset); charset == "" || err != nil {
				charset = "UTF-8"
				params.Set(vcard.ParamCharset, charset)
			}
		}
	} else {
		value = escapeNewlines(value)
	}

	var b strings.Builder
	if group != "" {
		b.WriteString(group)
		b.WriteByte('.')
	}
	b.WriteString(name)
	w.writeParameters(&b, params)
	b.WriteByte(':')

	if err := w.fw.Write(b.String()); err != nil {
		return err
	}
	var err error
	if qp {
		err = w.fw.WriteQuotedPrintable(value, charset)
	} else {
		err = w.fw.Write(value)
	}
	if err != nil {
		return err
	}
	if err := w.fw.Writeln(); err != nil {
		return err
	}
	if w.version == vcard.V2_1 && strings.EqualFold(params.Encoding(), "BASE64") {
		// 2.1 base64 data ends with an empty line.
		return w.fw.Writeln()
	}
	return nil
}

func (w *Writer) writeParameters(b *strings.Builder, params *vcard.Parameters) {
	params.Each(func(name string, values []string) {
		if w.version == vcard.V2_1 {
			for _, v := range values {
				v = sanitizeOldParameter(v)
				if v == "" {
					continue
				}
				b.WriteByte(';')
				if name != vcard.ParamType {
					b.WriteString(name)
					b.WriteByte('=')
				}
				b.WriteString(v)
			}
			return
		}
		b.WriteByte(';')
		b.WriteString(name)
		b.WriteByte('=')
		for i, v := range values {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(w.parameterValue(v))
		}
	})
}

// parameterValue encodes a 3.0 or 4.0 parameter value, quoting it when it
// holds a delimiter.
func (w *Writer) parameterValue(s string) string {
	if w.o.caretEncoding {
		s = grammar.CaretEncode(s)
	} else {
		s = escapeNewlines(strings.ReplaceAll(s, `"`, "'"))
	}
	if strings.ContainsAny(s, ",;:") {
		return `"` + s + `"`
	}
	return s
}

// sanitizeOldParameter removes what a 2.1 parameter value cannot hold.
func sanitizeOldParameter(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', ':', ',', '"':
			return -1
		}
		return r
	}, s)
}

var newlineEscaper = strings.NewReplacer("\r\n", `\n`, "\r", `\n`, "\n", `\n`)

func escapeNewlines(s string) string {
	return newlineEscaper.Replace(s)
}

func (w *Writer) writeRaw(line string) error {
	if err := w.fw.Write(line); err != nil {
		return err
	}
	return w.fw.Writeln()
}
