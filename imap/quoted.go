package imap

// Quoted is the unescaped content of an IMAP quoted string: any
// TEXT-CHAR except the wire-level escaping of '"' and '\\'. CR and LF
// cannot occur in quoted content at all. The escaping itself is an
// encoding concern (see package imapwire); this type stores the
// logical, already-unescaped value.
type Quoted struct {
	raw []byte
}

// TryQuoted validates b as Quoted content. b may be empty (an empty
// quoted string, `""`, is well-formed).
func TryQuoted(b []byte) (Quoted, error) {
	if err := validateAll("Quoted", b, isTextChar); err != nil {
		return Quoted{}, err
	}
	return Quoted{raw: b}, nil
}

// UnvalidatedQuoted builds a Quoted without checking b.
func UnvalidatedQuoted(b []byte) Quoted { return Quoted{raw: b} }

func (q Quoted) String() string { return string(q.raw) }
func (q Quoted) Bytes() []byte  { return q.raw }

func (q Quoted) IntoOwned() Quoted {
	if q.raw == nil {
		return q
	}
	cp := make([]byte, len(q.raw))
	copy(cp, q.raw)
	return Quoted{raw: cp}
}

func (Quoted) istring() {}

// QuotedChar is exactly one TEXT-CHAR, used for mailbox hierarchy
// delimiters (LIST/LSUB responses).
type QuotedChar struct {
	b byte
	// set distinguishes the zero value (unset) from an actual NUL
	// delimiter byte, which while exotic is not excluded by the grammar.
	set bool
}

// TryQuotedChar validates b as a single QuotedChar.
func TryQuotedChar(b byte) (QuotedChar, error) {
	if !isTextChar(b) {
		return QuotedChar{}, errAt("QuotedChar", []byte{b}, 0, "illegal character")
	}
	return QuotedChar{b: b, set: true}, nil
}

func (q QuotedChar) Byte() byte   { return q.b }
func (q QuotedChar) IsSet() bool  { return q.set }
func (q QuotedChar) String() string {
	if !q.set {
		return ""
	}
	return string(q.b)
}
