package imap

// Text is one or more TEXT-CHAR: printable content with no CR or LF,
// used for human-readable status and greeting text that is emitted
// unquoted at the end of a response line.
type Text struct {
	raw []byte
}

// TryText validates b as Text. Per RFC 3501, text must not be empty;
// deployed servers that violate this are handled by the MissingText
// quirk at parse time, not here.
func TryText(b []byte) (Text, error) {
	if err := validateNonEmpty("Text", b); err != nil {
		return Text{}, err
	}
	if err := validateAll("Text", b, isTextChar); err != nil {
		return Text{}, err
	}
	return Text{raw: b}, nil
}

// UnvalidatedText builds a Text without checking b.
func UnvalidatedText(b []byte) Text { return Text{raw: b} }

func (t Text) String() string { return string(t.raw) }
func (t Text) Bytes() []byte  { return t.raw }
func (t Text) IsZero() bool   { return t.raw == nil }

func (t Text) IntoOwned() Text {
	if t.raw == nil {
		return t
	}
	cp := make([]byte, len(t.raw))
	copy(cp, t.raw)
	return Text{raw: cp}
}

// Charset is the union Atom ∪ Quoted, used for the charset argument
// of SEARCH and the BADCHARSET response code.
type Charset struct {
	atom   Atom
	quoted Quoted
	isAtom bool
}

func CharsetFromAtom(a Atom) Charset     { return Charset{atom: a, isAtom: true} }
func CharsetFromQuoted(q Quoted) Charset { return Charset{quoted: q} }

// Atom returns the wrapped Atom and true when the charset was built
// from (or parsed as) an atom.
func (c Charset) Atom() (Atom, bool) { return c.atom, c.isAtom }

// Quoted returns the wrapped Quoted and true when the charset was
// built from a quoted string.
func (c Charset) Quoted() (Quoted, bool) { return c.quoted, !c.isAtom }

func (c Charset) String() string {
	if c.isAtom {
		return c.atom.String()
	}
	return c.quoted.String()
}

func (c Charset) IntoOwned() Charset {
	if c.isAtom {
		return Charset{atom: c.atom.IntoOwned(), isAtom: true}
	}
	return Charset{quoted: c.quoted.IntoOwned()}
}
