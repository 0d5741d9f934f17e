package jcard

import (
	"bufio"
	"io"
	"sort"
	"strings"

	"github.com/eluv-io/errors-go"
	elog "github.com/eluv-io/log-go"
	"github.com/ugorji/go/codec"

	"github.com/KimNorgaard/go-vcard"
	"github.com/KimNorgaard/go-vcard/diag"
	"github.com/KimNorgaard/go-vcard/scribe"
)

var log = elog.Get("/vcard/jcard")

// Reader reads jCard records from a stream of JSON values.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	r        io.Reader
	br       *bufio.Reader
	opts     []Option
	o        *options
	dec      *codec.Decoder
	queue    []any
	warnings diag.Warnings
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader, opts ...Option) *Reader {
	return &Reader{r: r, opts: opts}
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
	r.br = bufio.NewReader(r.r)
	r.dec = codec.NewDecoder(r.br, newHandle(0))
	return nil
}

// Warnings returns the warnings raised by the last call to ReadVCard, or by
// all records read by ReadAll.
func (r *Reader) Warnings() diag.Warnings {
	return r.warnings
}

// ReadVCard reads the next record. It returns io.EOF when there are no more
// records, and an error of kind Invalid when the JSON is not jCard.
func (r *Reader) ReadVCard() (*vcard.VCard, error) {
	if err := r.init(); err != nil {
		return nil, err
	}
	r.warnings = nil
	for len(r.queue) == 0 {
		if err := r.decode(); err != nil {
			return nil, err
		}
	}
	next := r.queue[0]
	r.queue = r.queue[1:]
	return r.readCard(next)
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

// decode reads the next JSON value and queues the records it holds.
func (r *Reader) decode() error {
	if err := r.skipSpace(); err != nil {
		return err
	}
	var v any
	if err := r.dec.Decode(&v); err != nil {
		return errors.E("jcard.Reader.ReadVCard", errors.K.Invalid, err)
	}

	arr, ok := v.([]any)
	if !ok {
		return invalid("top-level value is not an array")
	}
	if len(arr) == 0 {
		return nil
	}
	switch tag, _ := arr[0].(string); strings.ToLower(tag) {
	case tagVCard:
		r.queue = append(r.queue, arr)
	case tagVCardStream:
		for _, c := range arr[1:] {
			if !isCard(c) {
				return invalid("vcardstream holds a value that is not a vcard")
			}
			r.queue = append(r.queue, c)
		}
	default:
		for _, c := range arr {
			if !isCard(c) {
				return invalid("array holds a value that is not a vcard")
			}
			r.queue = append(r.queue, c)
		}
	}
	return nil
}

// skipSpace consumes the whitespace between two JSON values. It returns
// io.EOF at the end of the stream.
func (r *Reader) skipSpace() error {
	for {
		b, err := r.br.ReadByte()
		if err == io.EOF {
			return io.EOF
		}
		if err != nil {
			return errors.E("jcard.Reader.ReadVCard", errors.K.IO, err)
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return r.br.UnreadByte()
	}
}

func isCard(v any) bool {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return false
	}
	tag, _ := arr[0].(string)
	return strings.EqualFold(tag, tagVCard)
}

func invalid(reason string) error {
	return errors.E("jcard.Reader.ReadVCard", errors.K.Invalid, "reason", reason)
}

func (r *Reader) readCard(v any) (*vcard.VCard, error) {
	arr := v.([]any)
	if len(arr) < 2 {
		return nil, invalid("vcard has no property array")
	}
	props, ok := arr[1].([]any)
	if !ok {
		return nil, invalid("vcard property list is not an array")
	}

	card := vcard.New(vcard.V4_0)
	for i, p := range props {
		r.readProperty(card, p, i+1)
	}
	return card, nil
}

// readProperty decodes one ["name", {params}, "type", value...] array. num
// is the position of the property in the record and stands in for a line
// number in warnings.
func (r *Reader) readProperty(card *vcard.VCard, v any, num int) {
	arr, ok := v.([]any)
	if !ok || len(arr) < 4 {
		r.warn(diag.CodeJSONValue, "", num, v)
		return
	}
	name, ok1 := arr[0].(string)
	rawParams, ok2 := arr[1].(map[string]any)
	typ, ok3 := arr[2].(string)
	if !ok1 || !ok2 || !ok3 || name == "" {
		r.warn(diag.CodeJSONValue, name, num, v)
		return
	}
	name = strings.ToUpper(name)
	value := scribe.JSONValue(arr[3:])

	if name == "VERSION" {
		if value.String() != vcard.V4_0.String() {
			r.warn(diag.CodeUnknownVersion, name, num, value.String(), vcard.V4_0)
		}
		return
	}

	params, group := readParameters(rawParams)
	s := r.o.registry.ForName(name)
	dt, _ := vcard.ParseDataType(typ)
	if !scribe.Supports(s, vcard.V4_0) {
		r.warn(diag.CodeVersionUnsupported, name, num, vcard.V4_0)
	}

	ctx := &scribe.ParseContext{Version: vcard.V4_0, Line: num, Name: name}
	res := scribe.ParseJSON(s, value, dt, params, ctx)
	r.add(ctx.Warnings()...)

	switch res.Outcome {
	case scribe.Skipped, scribe.Failed:
		r.add(diag.Warning{Code: res.Code, Message: res.Message, Property: name, Line: num})
		return
	case scribe.Embedded:
		r.warn(diag.CodeEmbeddedUnsupported, name, num)
		return
	}

	meta := res.Property.Meta()
	meta.Group = group
	meta.Params = *params
	card.Add(res.Property)
}

// readParameters converts a jCard parameter object. The "group" member
// carries the property group and is returned separately.
func readParameters(m map[string]any) (*vcard.Parameters, string) {
	params := &vcard.Parameters{}
	group := ""
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		values := scribe.JSONValue{m[name]}.List()
		if strings.EqualFold(name, "group") {
			if len(values) > 0 {
				group = values[0]
			}
			continue
		}
		for _, v := range values {
			params.Add(name, v)
		}
	}
	return params, group
}

func (r *Reader) warn(code diag.Code, property string, num int, args ...any) {
	r.add(diag.Warning{Code: code, Message: diag.Message(code, args...), Property: property, Line: num})
}

func (r *Reader) add(ws ...diag.Warning) {
	for _, w := range ws {
		log.Debug("warning", "property", w.Property, "line", w.Line, "code", w.Code, "message", w.Message)
		r.warnings = append(r.warnings, w)
	}
}
