package imap

// Atom is one or more ATOM-CHAR: printable ASCII minus the IMAP
// "atom-specials" ("(){%*"\]") and control characters. Atoms are
// emitted on the wire verbatim, unquoted.
type Atom struct {
	raw []byte
}

// TryAtom validates b as an Atom. The returned error is a
// *ValidationError naming the first illegal byte.
func TryAtom(b []byte) (Atom, error) {
	if err := validateNonEmpty("Atom", b); err != nil {
		return Atom{}, err
	}
	if err := validateAll("Atom", b, isAtomChar); err != nil {
		return Atom{}, err
	}
	return Atom{raw: b}, nil
}

// UnvalidatedAtom builds an Atom without checking b. Misuse can make
// the encoder emit malformed IMAP; prefer TryAtom.
func UnvalidatedAtom(b []byte) Atom { return Atom{raw: b} }

// String returns the atom's bytes as a string.
func (a Atom) String() string { return string(a.raw) }

// Bytes returns the atom's raw bytes. The slice aliases the
// constructor's input; call IntoOwned to detach it.
func (a Atom) Bytes() []byte { return a.raw }

// IsZero reports whether a is the zero value (no atom was ever set).
func (a Atom) IsZero() bool { return a.raw == nil }

// IntoOwned returns a copy of a whose backing array is independent of
// whatever buffer it may currently alias.
func (a Atom) IntoOwned() Atom {
	if a.raw == nil {
		return a
	}
	cp := make([]byte, len(a.raw))
	copy(cp, a.raw)
	return Atom{raw: cp}
}

// EqualFold reports whether a and b are equal ignoring ASCII case, as
// IMAP atoms (keywords, command names, capabilities) normally compare.
func (a Atom) EqualFold(b Atom) bool {
	return asciiEqualFold(a.raw, b.raw)
}

func asciiEqualFold(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if asciiLower(a[i]) != asciiLower(b[i]) {
			return false
		}
	}
	return true
}

func asciiLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// AtomExt is an Atom extended to additionally permit "]", used in a
// handful of productions (e.g. response-code atoms, flag-extension)
// where the grammar allows it but plain Atom would reject it.
type AtomExt struct {
	raw []byte
}

// TryAtomExt validates b as an AtomExt.
func TryAtomExt(b []byte) (AtomExt, error) {
	if err := validateNonEmpty("AtomExt", b); err != nil {
		return AtomExt{}, err
	}
	if err := validateAll("AtomExt", b, isAtomExtChar); err != nil {
		return AtomExt{}, err
	}
	return AtomExt{raw: b}, nil
}

func (a AtomExt) String() string { return string(a.raw) }
func (a AtomExt) Bytes() []byte  { return a.raw }

func (a AtomExt) IntoOwned() AtomExt {
	if a.raw == nil {
		return a
	}
	cp := make([]byte, len(a.raw))
	copy(cp, a.raw)
	return AtomExt{raw: cp}
}
