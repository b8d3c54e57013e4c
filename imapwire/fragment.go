package imapwire

import "github.com/nugget/imapwire/imap"

// FragmentKind discriminates the two kinds of output Encoder produces.
type FragmentKind int

const (
	FragmentLine FragmentKind = iota
	FragmentLiteral
)

// Fragment is one piece of encoded output. A FragmentLine is ready to
// write immediately. A FragmentLiteral carrying a Sync Mode must not
// be written until the peer has acknowledged the preceding line with a
// "+" continuation request; a NonSync literal may be written straight
// through.
type Fragment struct {
	Kind FragmentKind
	Data []byte
	Mode imap.LiteralMode // meaningful only for FragmentLiteral
}

// Encoded is the ordered fragment sequence produced by Encoder.Finish.
type Encoded struct {
	fragments []Fragment
	pos       int
}

// Next returns the next fragment to write, or ok=false once every
// fragment has been consumed.
func (e *Encoded) Next() (Fragment, bool) {
	if e.pos >= len(e.fragments) {
		return Fragment{}, false
	}
	f := e.fragments[e.pos]
	e.pos++
	return f, true
}

// Fragments returns every fragment without consuming the iterator.
func (e Encoded) Fragments() []Fragment { return e.fragments }

// Dump concatenates every fragment's bytes, ignoring the
// synchronizing-literal handshake a real transport must perform. It
// exists for tests and logging, not for writing to a connection.
func (e Encoded) Dump() []byte {
	var out []byte
	for _, f := range e.fragments {
		out = append(out, f.Data...)
	}
	return out
}
