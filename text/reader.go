package text

import (
	"io"
	"strings"

	"github.com/eluv-io/errors-go"
	elog "github.com/eluv-io/log-go"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/diag"
	"github.com/KimNorgaard/go-vcard/fold"
	"github.com/KimNorgaard/go-vcard/scribe"
)

var log = elog.Get("/vcard/text")

// Reader reads records from a stream in the text syntax of any version.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	fr       *fold.Reader
	opts     []Option
	o        *options
	warnings diag.Warnings
}

// NewReader returns a Reader reading from r. Options are applied by the
// first call to ReadVCard, which reports invalid ones.
func NewReader(r io.Reader, opts ...Option) *Reader {
	return &Reader{fr: fold.NewReader(r), opts: opts}
}

func (r *Reader) init() error {
	if r.o != nil {
		return nil
	}
	o, err := newOptions(r.opts)
	if err != nil {
		return err
	}
	r.o = o
	return nil
}

// Warnings returns the warnings raised by the last call to ReadVCard, or by
// all records read by ReadAll.
func (r *Reader) Warnings() diag.Warnings {
	return r.warnings
}

// ReadVCard reads the next record. Lines outside of BEGIN:VCARD and
// END:VCARD are ignored. It returns io.EOF when there are no more records.
func (r *Reader) ReadVCard() (*vcard.VCard, error) {
	if err := r.init(); err != nil {
		return nil, err
	}
	r.warnings = nil
	return r.next(r.o.defaultVersion, 0)
}

// ReadAll reads all remaining records.
func (r *Reader) ReadAll() ([]*vcard.VCard, error) {
	var (
		cards    []*vcard.VCard
		warnings diag.Warnings
	)
	for {
		card, err := r.ReadVCard()
		warnings = append(warnings, r.warnings...)
		if err == io.EOF {
			r.warnings = warnings
			return cards, nil
		}
		if err != nil {
			r.warnings = warnings
			return cards, err
		}
		cards = append(cards, card)
	}
}

// next skips to the next BEGIN:VCARD and reads the record it starts.
func (r *Reader) next(v vcard.Version, depth int) (*vcard.VCard, error) {
	for {
		raw, err := r.readLine()
		if err != nil {
			return nil, err
		}
		line, perr := parseLine(raw, v, false)
		if perr != nil {
			continue
		}
		switch {
		case line.is("BEGIN", "VCARD"):
			return r.readCard(v, depth)
		case line.is("END", "VCARD"):
			r.warn(diag.CodeUnexpectedEnd, "", r.fr.LineNumber())
		}
	}
}

func (r *Reader) readLine() (string, error) {
	raw, err := r.fr.ReadLine()
	if err == nil || err == io.EOF {
		return raw, err
	}
	return "", errors.E("text.Reader.ReadVCard", errors.K.IO, err)
}

// readCard reads the properties of a record up to its END:VCARD. A record
// cut short by the end of the stream is returned as it is.
func (r *Reader) readCard(v vcard.Version, depth int) (*vcard.VCard, error) {
	card := vcard.New(v)
	// pending is the AGENT of version 2.1 whose record follows as a block.
	var pending *scribe.Nested
	for {
		raw, err := r.readLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		num := r.fr.LineNumber()

		line, perr := parseLine(raw, card.Version, r.o.caretDecoding)
		if perr != nil {
			perr.Line = num
			r.add(diag.Warning{Code: diag.CodeMalformedLine, Message: perr.Error(), Line: num})
			pending = nil
			continue
		}

		switch {
		case line.is("BEGIN", "VCARD"):
			if err := r.readBlock(pending, card.Version, depth, num); err != nil {
				return nil, err
			}
			pending = nil
			continue
		case line.is("END", "VCARD"):
			r.assignLabels(card)
			return card, nil
		case strings.EqualFold(line.Name, "VERSION"):
			r.setVersion(card, line.Value, num)
			continue
		}
		pending = r.readProperty(card, line, num, depth)
	}
	r.assignLabels(card)
	return card, nil
}

// readBlock reads a record nested as a BEGIN/END block and hands it to the
// AGENT that precedes it.
func (r *Reader) readBlock(pending *scribe.Nested, v vcard.Version, depth, num int) error {
	if pending == nil {
		r.warn(diag.CodeEmbeddedOrphan, "", num)
		return r.skipCard()
	}
	if depth+1 > r.o.maxDepth {
		r.warn(diag.CodeEmbeddedDepth, "AGENT", num, r.o.maxDepth)
		return r.skipCard()
	}
	nested, err := r.readCard(v, depth+1)
	if err != nil {
		return err
	}
	pending.Inject(nested)
	return nil
}

// readInline reads a record embedded as an escaped value (version 3.0).
func (r *Reader) readInline(nested *scribe.Nested, v vcard.Version, depth int, name string, num int) {
	if depth+1 > r.o.maxDepth {
		r.warn(diag.CodeEmbeddedDepth, name, num, r.o.maxDepth)
		return
	}
	sub := &Reader{fr: fold.NewReader(strings.NewReader(nested.Text)), o: r.o}
	card, err := sub.next(v, depth+1)
	for _, w := range sub.warnings {
		w.Line = num
		r.add(w)
	}
	if err != nil {
		r.warn(diag.CodeParseFailed, name, num, "no embedded vCard found")
		return
	}
	nested.Inject(card)
}

// skipCard skips the lines of a record up to its END:VCARD.
func (r *Reader) skipCard() error {
	open := 1
	for open > 0 {
		raw, err := r.readLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line, perr := parseLine(raw, vcard.V4_0, false)
		if perr != nil {
			continue
		}
		switch {
		case line.is("BEGIN", "VCARD"):
			open++
		case line.is("END", "VCARD"):
			open--
		}
	}
	return nil
}

func (r *Reader) setVersion(card *vcard.VCard, value string, num int) {
	v, ok := vcard.ParseVersion(value)
	if !ok {
		r.warn(diag.CodeUnknownVersion, "VERSION", num, value, card.Version)
		return
	}
	card.Version = v
}

// readProperty decodes one property and adds it to card. It returns the
// nested record handle of a 2.1 AGENT, which the next BEGIN:VCARD fills.
func (r *Reader) readProperty(card *vcard.VCard, line *contentLine, num, depth int) *scribe.Nested {
	v := card.Version
	params := line.Params
	value := line.Value
	s := r.o.registry.ForName(line.Name)

	if strings.EqualFold(params.Encoding(), "QUOTED-PRINTABLE") {
		value = r.decodeQuotedPrintable(value, params, line.Name, num)
	}

	dt := params.Value()
	params.Remove(vcard.ParamValue)
	if dt == "" || dt == "inline" {
		dt = s.DefaultDataType(v)
	}
	if !scribe.Supports(s, v) {
		r.warn(diag.CodeVersionUnsupported, line.Name, num, v)
	}

	ctx := &scribe.ParseContext{Version: v, Line: num, Name: line.Name}
	res := s.ParseText(value, dt, params, ctx)
	r.add(ctx.Warnings()...)

	switch res.Outcome {
	case scribe.Skipped, scribe.Failed:
		r.add(diag.Warning{Code: res.Code, Message: res.Message, Property: line.Name, Line: num})
		return nil
	}

	meta := res.Property.Meta()
	meta.Group = line.Group
	meta.Params = *params
	card.Add(res.Property)

	if res.Outcome != scribe.Embedded {
		return nil
	}
	if res.Nested.Text == "" {
		return res.Nested
	}
	r.readInline(res.Nested, v, depth, line.Name, num)
	return nil
}

// decodeQuotedPrintable decodes a 2.1 quoted-printable value and removes the
// parameters that described its encoding.
func (r *Reader) decodeQuotedPrintable(value string, params *vcard.Parameters, name string, num int) string {
	charset := params.Charset()
	if _, err := fold.Charset(charset); err != nil {
		r.warn(diag.CodeCharset, name, num, charset)
		charset = ""
	}
	decoded, err := fold.DecodeQuotedPrintable(value, charset)
	if err != nil {
		r.warn(diag.CodeQuotedPrintable, name, num, err)
		return value
	}
	params.Remove(vcard.ParamEncoding)
	params.Remove(vcard.ParamCharset)
	return decoded
}

// assignLabels attaches LABEL properties to the addresses they belong to.
// Labels without a matching address stay in the record.
func (r *Reader) assignLabels(card *vcard.VCard) {
	for _, p := range card.ByKind(vcard.KindLabel) {
		if label, ok := p.(*vcard.Text); ok && card.AssignLabel(label) {
			card.Remove(label)
		}
	}
}

func (r *Reader) warn(code diag.Code, property string, line int, args ...any) {
	r.add(diag.Warning{Code: code, Message: diag.Message(code, args...), Property: property, Line: line})
}

func (r *Reader) add(ws ...diag.Warning) {
	for _, w := range ws {
		log.Debug("warning", "property", w.Property, "line", w.Line, "code", w.Code, "message", w.Message)
		r.warnings = append(r.warnings, w)
	}
}
