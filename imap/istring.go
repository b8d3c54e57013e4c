package imap

// IString is the union of Quoted and Literal: a "string" production
// that may be sent either quoted or as a literal. Both Quoted and
// Literal implement it; the istring() marker method keeps the union
// closed to this package's two members, mirroring the sum type in the
// specification.
type IString interface {
	istring()
	IntoOwnedIString() IString
}

// IntoOwnedIString deep-copies q so it no longer aliases any buffer.
func (q Quoted) IntoOwnedIString() IString { return q.IntoOwned() }

// IntoOwnedIString deep-copies l so it no longer aliases any buffer.
func (l Literal) IntoOwnedIString() IString { return l.IntoOwned() }

// AString is the union Atom ∪ IString (i.e. Atom ∪ Quoted ∪ Literal),
// the most general "string" production used for e.g. mailbox names,
// usernames and passwords, and search keys.
type AString struct {
	atom    Atom
	istring IString
	isAtom  bool
}

// AStringFromAtom wraps an Atom as an AString.
func AStringFromAtom(a Atom) AString { return AString{atom: a, isAtom: true} }

// AStringFromIString wraps an IString (Quoted or Literal) as an AString.
func AStringFromIString(s IString) AString { return AString{istring: s} }

// IsAtom reports whether the AString holds an Atom.
func (a AString) IsAtom() bool { return a.isAtom }

// Atom returns the wrapped Atom and true, or the zero Atom and false.
func (a AString) Atom() (Atom, bool) { return a.atom, a.isAtom }

// IString returns the wrapped IString and true, or nil and false.
func (a AString) IString() (IString, bool) {
	if a.isAtom {
		return nil, false
	}
	return a.istring, true
}

// String renders the logical (unescaped) string content, regardless
// of which alternative is wrapped.
func (a AString) String() string {
	if a.isAtom {
		return a.atom.String()
	}
	switch v := a.istring.(type) {
	case Quoted:
		return v.String()
	case Literal:
		return string(v.Bytes())
	}
	return ""
}

func (a AString) IntoOwned() AString {
	if a.isAtom {
		return AString{atom: a.atom.IntoOwned(), isAtom: true}
	}
	return AString{istring: a.istring.IntoOwnedIString()}
}

// TryAStringAsAtomOrQuoted picks the narrowest representation for s:
// an Atom if every byte is atom-safe, otherwise a Quoted. It never
// produces a Literal; call AStringFromIString with a Literal directly
// when the payload demands one (e.g. it contains CR/LF or is large).
func TryAStringAsAtomOrQuoted(s []byte) (AString, error) {
	if ok := validateAll("Atom", s, isAtomChar); ok == nil && len(s) > 0 {
		a, err := TryAtom(s)
		if err == nil {
			return AStringFromAtom(a), nil
		}
	}
	q, err := TryQuoted(s)
	if err != nil {
		return AString{}, err
	}
	return AStringFromIString(q), nil
}

// NString is an optional IString: present (Quoted or Literal) or
// absent, the latter encoding as NIL on the wire.
type NString struct {
	value   IString
	present bool
}

// NStringAbsent is the NIL form of NString.
func NStringAbsent() NString { return NString{} }

// NStringPresent wraps an IString as a present NString.
func NStringPresent(s IString) NString { return NString{value: s, present: true} }

func (n NString) IsPresent() bool { return n.present }

// Value returns the wrapped IString and true, or nil and false if absent.
func (n NString) Value() (IString, bool) {
	if !n.present {
		return nil, false
	}
	return n.value, true
}

// String returns the logical string content, or "" if absent (callers
// that must distinguish absent from empty should use IsPresent).
func (n NString) String() string {
	if !n.present {
		return ""
	}
	switch v := n.value.(type) {
	case Quoted:
		return v.String()
	case Literal:
		return string(v.Bytes())
	}
	return ""
}

func (n NString) IntoOwned() NString {
	if !n.present {
		return n
	}
	return NString{value: n.value.IntoOwnedIString(), present: true}
}
