package jcard

import (
	"io"
	"strings"

	"github.com/eluv-io/errors-go"
	"github.com/ugorji/go/codec"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/scribe"
)

// Writer writes records as jCard. Without the Stream option every record is
// written by Write as its own JSON value, one per line. With it, the records
// are written as a single vcardstream array by Close.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	w      io.Writer
	opts   []Option
	o      *options
	enc    *codec.Encoder
	cards  []any
	closed bool
}

// NewWriter returns a Writer writing to w.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	return &Writer{w: w, opts: opts}
}

func (w *Writer) init() error {
	if w.o != nil {
		return nil
	}
	o, err := newOptions(w.opts)
	if err != nil {
		return err
	}
	w.o = o
	w.enc = codec.NewEncoder(w.w, newHandle(o.indent))
	return nil
}

// Write writes card, or queues it in stream mode.
func (w *Writer) Write(card *vcard.VCard) error {
	if err := w.init(); err != nil {
		return err
	}
	if w.closed {
		return errors.E("jcard.Writer.Write", errors.K.Invalid, "reason", "writer is closed")
	}
	c, err := w.card(card)
	if err != nil {
		return err
	}
	if w.o.stream {
		w.cards = append(w.cards, c)
		return nil
	}
	return w.encode(c)
}

// Close writes the queued records in stream mode. It does not close the
// underlying writer.
func (w *Writer) Close() error {
	if err := w.init(); err != nil {
		return err
	}
	if w.closed {
		return nil
	}
	w.closed = true
	if !w.o.stream {
		return nil
	}
	stream := append([]any{tagVCardStream}, w.cards...)
	w.cards = nil
	return w.encode(stream)
}

func (w *Writer) encode(v any) error {
	if err := w.enc.Encode(v); err != nil {
		return errors.E("jcard.Writer.Write", errors.K.IO, err)
	}
	if _, err := io.WriteString(w.w, "\n"); err != nil {
		return errors.E("jcard.Writer.Write", errors.K.IO, err)
	}
	return nil
}

// card returns the jCard array of card.
func (w *Writer) card(card *vcard.VCard) ([]any, error) {
	props := []any{
		[]any{"version", map[string]any{}, string(vcard.TypeText), vcard.V4_0.String()},
	}
	producer := w.o.productID
	list := card.Properties
	if producer {
		list = append([]vcard.Property{vcard.NewProducer(vcard.V4_0)}, list...)
	}
	for i, p := range list {
		if producer && i > 0 && p.Kind() == vcard.KindProductID {
			continue
		}
		jp, err := w.property(card, p)
		if err != nil {
			return nil, err
		}
		if jp != nil {
			props = append(props, jp)
		}
	}
	return []any{tagVCard, props}, nil
}

// property returns the jCard array of p, or nil when p is skipped.
func (w *Writer) property(card *vcard.VCard, p vcard.Property) ([]any, error) {
	s := w.o.registry.ForProperty(p)
	if s == nil {
		return nil, errors.E("jcard.Writer.Write", errors.K.NotExist,
			"reason", "no scribe registered for property", "kind", p.Kind())
	}
	if w.o.versionStrict && !scribe.Supports(s, vcard.V4_0) {
		log.Debug("property skipped", "property", s.Name(), "reason", "not supported by version 4.0")
		return nil, nil
	}
	if scribe.NestedRecord(s, p) != nil {
		log.Debug("property skipped", "property", s.Name(), "reason", "embedded vCard")
		return nil, nil
	}

	ctx := &scribe.WriteContext{Version: vcard.V4_0, VCard: card}
	params := scribe.PrepareParameters(s, p, ctx)
	value, err := scribe.WriteJSON(s, p, ctx)
	if err != nil {
		if scribe.IsSkip(err) {
			log.Debug("property skipped", "property", s.Name(), "reason", err)
			return nil, nil
		}
		return nil, err
	}

	dt := scribe.DataType(s, p, vcard.V4_0)
	if dt == "" {
		dt = vcard.TypeUnknown
	}
	params.Remove(vcard.ParamValue)

	jp := []any{strings.ToLower(s.Name()), writeParameters(p.Meta().Group, params), string(dt)}
	if len(value) == 0 {
		value = scribe.SingleJSON("")
	}
	return append(jp, value...), nil
}

func writeParameters(group string, params *vcard.Parameters) map[string]any {
	m := map[string]any{}
	if group != "" {
		m["group"] = group
	}
	params.Each(func(name string, values []string) {
		name = strings.ToLower(name)
		if len(values) == 1 {
			m[name] = values[0]
			return
		}
		list := make([]any, len(values))
		for i, v := range values {
			list[i] = v
		}
		m[name] = list
	})
	return m
}
