package imapwire

import (
	"fmt"
	"strconv"
	"time"

	"github.com/nugget/imapwire/imap"
)

// Encoder builds up an Encoded fragment sequence with a fluent,
// chainable API. A literal value interrupts the current line: Encoder
// flushes everything buffered so far as a FragmentLine announcing the
// literal, emits a FragmentLiteral for the literal's bytes, and
// resumes buffering a new line for whatever follows.
type Encoder struct {
	fragments []Fragment
	line      []byte
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder { return &Encoder{} }

func (e *Encoder) raw(b []byte) *Encoder {
	e.line = append(e.line, b...)
	return e
}

// Atom writes s verbatim with no surrounding quotes or escaping. The
// caller is responsible for only passing bytes valid in atom position;
// imap.Atom.String() always satisfies that.
func (e *Encoder) Atom(s string) *Encoder { return e.raw([]byte(s)) }

// SP writes a single space.
func (e *Encoder) SP() *Encoder { return e.raw([]byte{' '}) }

// Special writes a single reserved character (parens, brackets,
// braces) with no surrounding space.
func (e *Encoder) Special(b byte) *Encoder { return e.raw([]byte{b}) }

// CRLF terminates the current line, flushing it as a plain
// FragmentLine with no literal announcement.
func (e *Encoder) CRLF() *Encoder {
	e.line = append(e.line, '\r', '\n')
	e.flushLine(nil)
	return e
}

func (e *Encoder) flushLine(announcement *imap.LiteralMode) {
	data := e.line
	e.line = nil
	if len(data) == 0 && announcement == nil {
		return
	}
	f := Fragment{Kind: FragmentLine, Data: data}
	e.fragments = append(e.fragments, f)
	_ = announcement // the announced literal mode travels on the FragmentLiteral itself
}

// Number writes an unsigned 32-bit decimal number.
func (e *Encoder) Number(n uint32) *Encoder { return e.Atom(strconv.FormatUint(uint64(n), 10)) }

// Number64 writes an unsigned 64-bit decimal number (used by
// extensions such as QUOTA whose resource limits exceed 32 bits).
func (e *Encoder) Number64(n uint64) *Encoder { return e.Atom(strconv.FormatUint(n, 10)) }

// Tag writes a command tag.
func (e *Encoder) Tag(t imap.Tag) *Encoder { return e.Atom(t.String()) }

// Quoted writes s as a quoted string, backslash-escaping `"` and `\`.
// The caller must ensure s contains no CR or LF; Quoted does not
// check, since an imap.Quoted value is already guaranteed not to.
func (e *Encoder) Quoted(s []byte) *Encoder {
	e.line = append(e.line, '"')
	for _, b := range s {
		if b == '"' || b == '\\' {
			e.line = append(e.line, '\\')
		}
		e.line = append(e.line, b)
	}
	e.line = append(e.line, '"')
	return e
}

// Literal appends a literal announcement ("{len}\r\n" or "{len+}\r\n")
// to the current line, flushes that line, and emits the literal bytes
// as their own FragmentLiteral. A NonSync literal can be written
// through without waiting for a continuation; a Sync literal must not
// be written until the peer has sent one.
func (e *Encoder) Literal(data []byte, mode imap.LiteralMode) *Encoder {
	e.line = append(e.line, '{')
	e.line = append(e.line, []byte(strconv.Itoa(len(data)))...)
	if mode == imap.LiteralModeNonSync {
		e.line = append(e.line, '+')
	}
	e.line = append(e.line, '}', '\r', '\n')
	m := mode
	e.flushLine(&m)
	e.fragments = append(e.fragments, Fragment{Kind: FragmentLiteral, Data: data, Mode: mode})
	return e
}

// Literal8 is Literal but announced with the BINARY extension's "~"
// prefix ("~{len}\r\n"), used for IString values built from
// imap.Literal with IsBinary() true.
func (e *Encoder) Literal8(data []byte, mode imap.LiteralMode) *Encoder {
	e.line = append(e.line, '~', '{')
	e.line = append(e.line, []byte(strconv.Itoa(len(data)))...)
	if mode == imap.LiteralModeNonSync {
		e.line = append(e.line, '+')
	}
	e.line = append(e.line, '}', '\r', '\n')
	m := mode
	e.flushLine(&m)
	e.fragments = append(e.fragments, Fragment{Kind: FragmentLiteral, Data: data, Mode: mode})
	return e
}

// isSafeQuoted reports whether s can be sent as a quoted string: no
// CR, LF, or NUL. Any byte value otherwise is allowed, since TEXT-CHAR
// and QUOTED-CHAR both only exclude those three plus the quoting
// character itself (handled separately by escaping).
func isSafeQuoted(s []byte) bool {
	for _, b := range s {
		if b == '\r' || b == '\n' || b == 0x00 {
			return false
		}
	}
	return true
}

// String writes s as the narrowest IString representation that can
// carry it: a quoted string when safe, otherwise a synchronizing
// literal.
func (e *Encoder) String(s []byte) *Encoder {
	if isSafeQuoted(s) {
		return e.Quoted(s)
	}
	return e.Literal(s, imap.LiteralModeSync)
}

// IString writes an already-typed IString value using its concrete
// representation (Quoted stays quoted; Literal stays a literal, with
// Literal8 framing when it carries BINARY-extension data).
func (e *Encoder) IString(s imap.IString) *Encoder {
	switch v := s.(type) {
	case imap.Quoted:
		return e.Quoted(v.Bytes())
	case imap.Literal:
		if v.IsBinary() {
			return e.Literal8(v.Bytes(), v.Mode())
		}
		return e.Literal(v.Bytes(), v.Mode())
	default:
		return e.String(nil)
	}
}

// AString writes an AString using its atom representation when
// possible, falling back to its IString representation otherwise.
func (e *Encoder) AString(a imap.AString) *Encoder {
	if a.IsAtom() {
		atom, _ := a.Atom()
		return e.Atom(atom.String())
	}
	istr, _ := a.IString()
	return e.IString(istr)
}

// NString writes NIL for an absent NString, or its value's IString
// representation otherwise.
func (e *Encoder) NString(n imap.NString) *Encoder {
	v, ok := n.Value()
	if !ok {
		return e.Atom("NIL")
	}
	return e.IString(v)
}

// Mailbox writes a mailbox name, preferring the canonical "INBOX"
// spelling when the mailbox is the inbox.
func (e *Encoder) Mailbox(m imap.Mailbox) *Encoder {
	if m.IsInbox() {
		return e.Atom("INBOX")
	}
	other, _ := m.Other()
	return e.AString(other)
}

// DateTime writes an IMAP date-time in the canonical
// `"02-Jan-2006 15:04:05 -0700"` quoted form.
func (e *Encoder) DateTime(t time.Time) *Encoder {
	return e.Quoted([]byte(t.Format("02-Jan-2006 15:04:05 -0700")))
}

// Date writes an IMAP date (no time component) in the unquoted
// `02-Jan-2006` form used by SEARCH date keys.
func (e *Encoder) Date(t time.Time) *Encoder {
	return e.Atom(t.Format("02-Jan-2006"))
}

// List writes a parenthesized, space-separated list of n items, each
// emitted by calling item(i) in order.
func (e *Encoder) List(n int, item func(i int)) *Encoder {
	e.Special('(')
	for i := 0; i < n; i++ {
		if i > 0 {
			e.SP()
		}
		item(i)
	}
	e.Special(')')
	return e
}

// Flag writes a Flag in its wire spelling.
func (e *Encoder) Flag(f imap.Flag) *Encoder { return e.Atom(f.String()) }

// FlagFetch writes a FlagFetch, including \Recent.
func (e *Encoder) FlagFetch(f imap.FlagFetch) *Encoder { return e.Atom(f.String()) }

// FlagPerm writes a FlagPerm, including the \* wildcard.
func (e *Encoder) FlagPerm(f imap.FlagPerm) *Encoder { return e.Atom(f.String()) }

// StoreFlag writes a StoreFlag.
func (e *Encoder) StoreFlag(f imap.StoreFlag) *Encoder { return e.Atom(f.String()) }

// SequenceSet writes a sequence set such as "1:5,7,9:*".
func (e *Encoder) SequenceSet(set imap.SequenceSet) *Encoder { return e.Atom(set.String()) }

// Sprintf is a narrow escape hatch for wire fragments this Encoder has
// no typed helper for yet (numeric suffixes on extension atoms,
// section specifiers). Prefer a typed method above when one exists.
func (e *Encoder) Sprintf(format string, args ...any) *Encoder {
	return e.Atom(fmt.Sprintf(format, args...))
}

// Finish returns the accumulated fragments as an Encoded, flushing any
// buffered-but-unterminated line (e.g. if the caller forgot a trailing
// CRLF — this should not happen for well-formed commands/responses,
// but Finish is defensive about it rather than silently dropping
// bytes).
func (e *Encoder) Finish() Encoded {
	if len(e.line) > 0 {
		e.flushLine(nil)
	}
	return Encoded{fragments: e.fragments}
}
