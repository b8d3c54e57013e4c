package imap

// Parameter is a single "attribute value" pair from a body-fld-param
// list (e.g. Content-Type parameters such as charset=us-ascii).
type Parameter struct {
	Attribute Quoted
	Value     Quoted
}

func (p Parameter) IntoOwned() Parameter {
	return Parameter{Attribute: p.Attribute.IntoOwned(), Value: p.Value.IntoOwned()}
}

// BasicFields are the MIME fields common to every body part: its
// Content-Type parameters, Content-ID, Content-Description,
// Content-Transfer-Encoding, and size in octets.
type BasicFields struct {
	Params   []Parameter
	ID       NString
	Description NString
	Encoding ContentEncoding
	Octets   uint32
}

func (b BasicFields) IntoOwned() BasicFields {
	params := make([]Parameter, len(b.Params))
	for i, p := range b.Params {
		params[i] = p.IntoOwned()
	}
	return BasicFields{
		Params:      params,
		ID:          b.ID.IntoOwned(),
		Description: b.Description.IntoOwned(),
		Encoding:    b.Encoding.IntoOwned(),
		Octets:      b.Octets,
	}
}

// ContentEncoding is body-fld-enc: one of the well-known
// Content-Transfer-Encoding tokens or an arbitrary string, since the
// grammar accepts any `string` here for robustness against encodings
// outside the enumerated set.
type ContentEncoding struct {
	raw AString
}

func NewContentEncoding(s AString) ContentEncoding { return ContentEncoding{raw: s} }
func (c ContentEncoding) String() string           { return c.raw.String() }

// AString returns the wrapped value in its original representation,
// for encoders that must preserve the quoted-vs-literal distinction.
func (c ContentEncoding) AString() AString { return c.raw }
func (c ContentEncoding) IntoOwned() ContentEncoding {
	return ContentEncoding{raw: c.raw.IntoOwned()}
}

// SpecificFieldsKind discriminates the three shapes SpecificFields
// can take, one per Content-Type family.
type SpecificFieldsKind int

const (
	SpecificFieldsBasic SpecificFieldsKind = iota
	SpecificFieldsMessage
	SpecificFieldsText
)

// SpecificFields carries the Content-Type-dependent part of a
// body-type-1part: a bare type/subtype pair for anything not
// message/rfc822 or text/*, an embedded Envelope/BodyStructure/line
// count for message/rfc822, or a subtype/line count for text/*.
type SpecificFields struct {
	kind SpecificFieldsKind

	basicType    AString
	basicSubtype AString

	msgEnvelope Envelope
	msgBody     *BodyStructure
	msgLines    uint32

	textSubtype AString
	textLines   uint32
}

func SpecificFieldsBasicOf(typ, subtype AString) SpecificFields {
	return SpecificFields{kind: SpecificFieldsBasic, basicType: typ, basicSubtype: subtype}
}

func SpecificFieldsMessageOf(env Envelope, body *BodyStructure, lines uint32) SpecificFields {
	return SpecificFields{kind: SpecificFieldsMessage, msgEnvelope: env, msgBody: body, msgLines: lines}
}

func SpecificFieldsTextOf(subtype AString, lines uint32) SpecificFields {
	return SpecificFields{kind: SpecificFieldsText, textSubtype: subtype, textLines: lines}
}

func (s SpecificFields) Kind() SpecificFieldsKind { return s.kind }
func (s SpecificFields) BasicTypeSubtype() (typ, subtype AString) {
	return s.basicType, s.basicSubtype
}
func (s SpecificFields) Message() (Envelope, *BodyStructure, uint32) {
	return s.msgEnvelope, s.msgBody, s.msgLines
}
func (s SpecificFields) Text() (subtype AString, lines uint32) {
	return s.textSubtype, s.textLines
}

func (s SpecificFields) IntoOwned() SpecificFields {
	switch s.kind {
	case SpecificFieldsBasic:
		return SpecificFieldsBasicOf(s.basicType.IntoOwned(), s.basicSubtype.IntoOwned())
	case SpecificFieldsMessage:
		var body *BodyStructure
		if s.msgBody != nil {
			owned := s.msgBody.IntoOwned()
			body = &owned
		}
		return SpecificFieldsMessageOf(s.msgEnvelope.IntoOwned(), body, s.msgLines)
	case SpecificFieldsText:
		return SpecificFieldsTextOf(s.textSubtype.IntoOwned(), s.textLines)
	}
	return s
}

// BodyExtensionKind discriminates the recursive BodyExtension union.
type BodyExtensionKind int

const (
	BodyExtensionNString BodyExtensionKind = iota
	BodyExtensionNumber
	BodyExtensionList
)

// BodyExtension is extension data appended after the disposition,
// language, and location fields of a body structure. It is itself
// recursive: NIL/string, a number, or a parenthesized list of
// BodyExtension.
type BodyExtension struct {
	kind BodyExtensionKind
	str  NString
	num  uint32
	list []BodyExtension
}

func BodyExtensionOfNString(s NString) BodyExtension {
	return BodyExtension{kind: BodyExtensionNString, str: s}
}
func BodyExtensionOfNumber(n uint32) BodyExtension {
	return BodyExtension{kind: BodyExtensionNumber, num: n}
}
func BodyExtensionOfList(items []BodyExtension) BodyExtension {
	return BodyExtension{kind: BodyExtensionList, list: items}
}

func (e BodyExtension) Kind() BodyExtensionKind { return e.kind }
func (e BodyExtension) NStringValue() NString   { return e.str }
func (e BodyExtension) NumberValue() uint32     { return e.num }
func (e BodyExtension) ListValue() []BodyExtension { return e.list }

func (e BodyExtension) IntoOwned() BodyExtension {
	switch e.kind {
	case BodyExtensionNString:
		return BodyExtensionOfNString(e.str.IntoOwned())
	case BodyExtensionList:
		out := make([]BodyExtension, len(e.list))
		for i, it := range e.list {
			out[i] = it.IntoOwned()
		}
		return BodyExtensionOfList(out)
	default:
		return e
	}
}

// SinglePartExtension is the optional tail of a single-part body:
// MD5, disposition, language, location, and further extension data,
// each only present if all preceding fields are also present
// (position-dependent per RFC 3501 body-ext-1part).
type SinglePartExtension struct {
	MD5         NString
	Disposition *Disposition
	Language    []AString // absent is represented as a nil/empty slice; NSTRING-or-list handled by the codec
	Location    NString
	Extensions  []BodyExtension
}

func (e *SinglePartExtension) IntoOwned() *SinglePartExtension {
	if e == nil {
		return nil
	}
	out := &SinglePartExtension{
		MD5:      e.MD5.IntoOwned(),
		Location: e.Location.IntoOwned(),
	}
	if e.Disposition != nil {
		d := e.Disposition.IntoOwned()
		out.Disposition = &d
	}
	if e.Language != nil {
		out.Language = make([]AString, len(e.Language))
		for i, l := range e.Language {
			out.Language[i] = l.IntoOwned()
		}
	}
	if e.Extensions != nil {
		out.Extensions = make([]BodyExtension, len(e.Extensions))
		for i, x := range e.Extensions {
			out.Extensions[i] = x.IntoOwned()
		}
	}
	return out
}

// MultipartExtension is the optional tail of a multipart body:
// Content-Type parameters, disposition, language, location, and
// further extension data.
type MultipartExtension struct {
	Params      []Parameter
	Disposition *Disposition
	Language    []AString
	Location    NString
	Extensions  []BodyExtension
}

func (e *MultipartExtension) IntoOwned() *MultipartExtension {
	if e == nil {
		return nil
	}
	out := &MultipartExtension{Location: e.Location.IntoOwned()}
	for _, p := range e.Params {
		out.Params = append(out.Params, p.IntoOwned())
	}
	if e.Disposition != nil {
		d := e.Disposition.IntoOwned()
		out.Disposition = &d
	}
	for _, l := range e.Language {
		out.Language = append(out.Language, l.IntoOwned())
	}
	for _, x := range e.Extensions {
		out.Extensions = append(out.Extensions, x.IntoOwned())
	}
	return out
}

// Disposition is Content-Disposition: a type plus parameter list.
type Disposition struct {
	Type   AString
	Params []Parameter
}

func (d Disposition) IntoOwned() Disposition {
	params := make([]Parameter, len(d.Params))
	for i, p := range d.Params {
		params[i] = p.IntoOwned()
	}
	return Disposition{Type: d.Type.IntoOwned(), Params: params}
}

// BodyStructureKind discriminates single-part from multipart bodies.
type BodyStructureKind int

const (
	BodyStructureSingle BodyStructureKind = iota
	BodyStructureMulti
)

// BodyStructure is the recursive FETCH BODYSTRUCTURE/BODY tree. It is
// either a single part (basic fields plus content-type-specific
// fields) or a multipart (a non-empty list of child BodyStructures
// plus the multipart subtype), each with optional extension data.
// Single vs. multi is distinguished on the wire by whether the first
// token is itself a parenthesized body (multi) or a string (single).
type BodyStructure struct {
	kind BodyStructureKind

	singleBasic    BasicFields
	singleSpecific SpecificFields
	singleExt      *SinglePartExtension

	multiParts   Vec1[BodyStructure]
	multiSubtype AString
	multiExt     *MultipartExtension
}

func NewSingleBodyStructure(basic BasicFields, specific SpecificFields, ext *SinglePartExtension) BodyStructure {
	return BodyStructure{kind: BodyStructureSingle, singleBasic: basic, singleSpecific: specific, singleExt: ext}
}

func NewMultiBodyStructure(parts []BodyStructure, subtype AString, ext *MultipartExtension) (BodyStructure, error) {
	v, err := NewVec1(parts)
	if err != nil {
		return BodyStructure{}, err
	}
	return BodyStructure{kind: BodyStructureMulti, multiParts: v, multiSubtype: subtype, multiExt: ext}, nil
}

func (b BodyStructure) Kind() BodyStructureKind { return b.kind }

func (b BodyStructure) Single() (BasicFields, SpecificFields, *SinglePartExtension, bool) {
	if b.kind != BodyStructureSingle {
		return BasicFields{}, SpecificFields{}, nil, false
	}
	return b.singleBasic, b.singleSpecific, b.singleExt, true
}

func (b BodyStructure) Multi() ([]BodyStructure, AString, *MultipartExtension, bool) {
	if b.kind != BodyStructureMulti {
		return nil, AString{}, nil, false
	}
	return b.multiParts.Slice(), b.multiSubtype, b.multiExt, true
}

func (b BodyStructure) IntoOwned() BodyStructure {
	switch b.kind {
	case BodyStructureSingle:
		return NewSingleBodyStructure(b.singleBasic.IntoOwned(), b.singleSpecific.IntoOwned(), b.singleExt.IntoOwned())
	case BodyStructureMulti:
		parts := b.multiParts.Slice()
		owned := make([]BodyStructure, len(parts))
		for i, p := range parts {
			owned[i] = p.IntoOwned()
		}
		out, _ := NewMultiBodyStructure(owned, b.multiSubtype.IntoOwned(), b.multiExt.IntoOwned())
		return out
	}
	return b
}
