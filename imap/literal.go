package imap

// LiteralMode distinguishes a synchronizing literal, which requires a
// "+" continuation request from the peer before its payload may be
// sent, from a non-synchronizing literal (LITERAL+/LITERAL-), which
// does not.
type LiteralMode int

const (
	// LiteralModeSync is the default IMAP4rev1 literal: the sender
	// must wait for a continuation request before writing the payload.
	LiteralModeSync LiteralMode = iota
	// LiteralModeNonSync is only valid when the peer has advertised
	// LITERAL+ or LITERAL-.
	LiteralModeNonSync
)

func (m LiteralMode) String() string {
	if m == LiteralModeNonSync {
		return "NonSync"
	}
	return "Sync"
}

// Literal is an IMAP literal: arbitrary octets, announced on the wire
// by their exact byte length, carried in an associated
// LiteralMode, and optionally tagged as binary (Literal8, RFC 3516)
// when produced by an APPEND using the BINARY extension.
type Literal struct {
	raw    []byte
	mode   LiteralMode
	binary bool
}

// NewLiteral builds a Literal from arbitrary bytes. Unlike the
// string-class Try* constructors, there is no byte content to reject:
// a literal's entire point is that it can carry anything.
func NewLiteral(b []byte, mode LiteralMode) Literal {
	return Literal{raw: b, mode: mode}
}

// NewLiteral8 builds a binary (RFC 3516 Literal8) literal. Callers
// must only do this when the peer has advertised BINARY; this
// constructor does not have access to capability state to enforce
// that itself.
func NewLiteral8(b []byte, mode LiteralMode) Literal {
	return Literal{raw: b, mode: mode, binary: true}
}

func (l Literal) Bytes() []byte       { return l.raw }
func (l Literal) Mode() LiteralMode   { return l.mode }
func (l Literal) IsBinary() bool      { return l.binary }
func (l Literal) Len() int            { return len(l.raw) }

func (l Literal) IntoOwned() Literal {
	if l.raw == nil {
		return l
	}
	cp := make([]byte, len(l.raw))
	copy(cp, l.raw)
	l.raw = cp
	return l
}

func (Literal) istring() {}
