package codec

import (
	"time"

	"github.com/nugget/imapwire/imap"
	"github.com/nugget/imapwire/imapwire"
)

// decodeState carries everything one Decode call needs: the cursor
// over the message buffer, the quirk toggles, the recursion budget for
// the recursive productions, and the sticky literal error that lets a
// failed parse report "this was a valid prefix expecting more literal
// bytes" instead of a plain syntax error.
type decodeState struct {
	d     *imapwire.Decoder
	q     imap.Quirks
	limit int

	// litErr records the most recent literal announcement whose
	// payload was not fully present in the buffer. If the overall
	// parse fails, this is the error to surface: the input is not
	// malformed, it is incomplete.
	litErr *ParseError
}

func newDecodeState(input []byte, q imap.Quirks, limit int) *decodeState {
	if limit <= 0 {
		limit = DefaultRecursionLimit
	}
	return &decodeState{d: imapwire.NewDecoder(input), q: q, limit: limit}
}

func (s *decodeState) sp() bool { return s.d.SP() }

func (s *decodeState) crlf() bool { return s.d.CRLF(s.q.CRLFRelaxed) }

// trailingSP consumes one optional extra space before CRLF when the
// TrailingSpace quirk is enabled; a no-op otherwise.
func (s *decodeState) trailingSP() {
	if s.q.TrailingSpace {
		s.d.SP()
	}
}

// fail builds the error a failed Decode should report: the pending
// literal error if one was recorded, otherwise a syntax error at the
// cursor.
func (s *decodeState) fail(reason string) error {
	if s.litErr != nil {
		return s.litErr
	}
	return errSyntax(s.d.Pos(), reason)
}

// readLiteral consumes a "{len}" or "{len+}" announcement (optionally
// with the BINARY "~" prefix), its terminating CRLF, and then exactly
// len raw bytes from the same buffer (literal payload is already
// embedded at this position in the message buffer the fragment package
// assembled). If the payload is short, litErr is recorded so the
// caller can distinguish "needs more bytes" from "bad grammar".
func (s *decodeState) readLiteral() (imap.Literal, bool) {
	save := s.d.Pos()
	binary := s.d.Byte('~')
	pos := s.d.Pos()
	length, nonSync, ok := s.d.LiteralAnnouncement()
	if !ok {
		s.d.SetPos(save)
		return imap.Literal{}, false
	}
	if !s.crlf() {
		s.d.SetPos(save)
		return imap.Literal{}, false
	}
	mode := imap.LiteralModeSync
	modeName := "sync"
	if nonSync {
		mode = imap.LiteralModeNonSync
		modeName = "non-sync"
	}
	if len(s.d.Remaining()) < int(length) {
		s.litErr = &ParseError{Kind: ParseErrorLiteral, Pos: pos, Mode: modeName, Length: length}
		s.d.SetPos(save)
		return imap.Literal{}, false
	}
	data := s.d.Advance(int(length))
	if binary {
		return imap.NewLiteral8(data, mode), true
	}
	return imap.NewLiteral(data, mode), true
}

// readIString reads the IString alternation: a quoted string or a
// literal.
func (s *decodeState) readIString() (imap.IString, bool) {
	if b, ok := s.d.Quoted(); ok {
		quoted, err := imap.TryQuoted(b)
		if err != nil {
			return nil, false
		}
		return quoted, true
	}
	if lit, ok := s.readLiteral(); ok {
		return lit, true
	}
	return nil, false
}

// readAString reads the AString alternation: an atom, or an IString.
func (s *decodeState) readAString() (imap.AString, bool) {
	save := s.d.Pos()
	if a, ok := s.d.Atom(); ok {
		atom, err := imap.TryAtom([]byte(a))
		if err == nil {
			return imap.AStringFromAtom(atom), true
		}
	}
	s.d.SetPos(save)
	if str, ok := s.readIString(); ok {
		return imap.AStringFromIString(str), true
	}
	return imap.AString{}, false
}

// readNString reads NIL or an IString.
func (s *decodeState) readNString() (imap.NString, bool) {
	if s.matchNil() {
		return imap.NStringAbsent(), true
	}
	if str, ok := s.readIString(); ok {
		return imap.NStringPresent(str), true
	}
	return imap.NString{}, false
}

// matchNil consumes the literal atom "NIL" case-insensitively.
func (s *decodeState) matchNil() bool { return s.matchAtomCI("NIL") }

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

// matchAtomCI consumes word (an ASCII keyword) case-insensitively if
// it appears next, requiring that it not be immediately followed by
// another atom-char (so "OK" doesn't match a prefix of "OKAY").
func (s *decodeState) matchAtomCI(word string) bool {
	b := s.d.Remaining()
	if len(b) < len(word) {
		return false
	}
	for i := 0; i < len(word); i++ {
		if upper(b[i]) != upper(word[i]) {
			return false
		}
	}
	if len(b) > len(word) && imapwire.IsAtomChar(b[len(word)]) {
		return false
	}
	s.d.Advance(len(word))
	return true
}

// readNumber reads the `number` production (a non-negative uint32).
func (s *decodeState) readNumber() (uint32, bool) { return s.d.Number() }

// readNzNumber reads a nonzero number.
func (s *decodeState) readNzNumber() (uint32, bool) {
	save := s.d.Pos()
	n, ok := s.d.Number()
	if !ok {
		return 0, false
	}
	if n == 0 {
		s.d.SetPos(save)
		return 0, false
	}
	return n, true
}

// readSize reads body-fld-octets: a `number`, with the RectifyNumbers
// quirk additionally accepting a leading "-" (clamped to 0, observed
// from Dovecot) and a digit run that overflows uint32 (clamped to
// uint32 max).
func (s *decodeState) readSize() (uint32, bool) {
	if s.q.RectifyNumbers {
		save := s.d.Pos()
		if s.d.Byte('-') {
			if _, ok := s.d.Number(); ok {
				return 0, true
			}
			s.d.SetPos(save)
		}
		if n, ok := s.d.Number(); ok {
			return n, true
		}
		// A digit run too large for uint32: consume it and clamp.
		start := s.d.Pos()
		for {
			b, ok := s.d.Peek()
			if !ok || b < '0' || b > '9' {
				break
			}
			s.d.Advance(1)
		}
		if s.d.Pos() > start {
			return ^uint32(0), true
		}
		return 0, false
	}
	return s.d.Number()
}

// readParenList reads a parenthesized, space-separated list using
// item to read one element; calls item until it fails or the closing
// ")" is found. Returns false if the opening "(" is missing.
func (s *decodeState) readParenList(item func() bool) bool {
	if !s.d.Byte('(') {
		return false
	}
	first := true
	for {
		if s.d.Byte(')') {
			return true
		}
		if !first {
			if !s.sp() {
				return false
			}
		}
		first = false
		if !item() {
			return false
		}
	}
}

// dateTimeLayout is the IMAP internal date-time wire format. The "_2"
// day verb reads a two-digit day or a single digit.
const dateTimeLayout = "_2-Jan-2006 15:04:05 -0700"

// searchDateLayout is the wire format of SEARCH date keys (no time of
// day).
const searchDateLayout = "02-Jan-2006"

// readDateTime reads a quoted internal date-time. The day may be
// space-padded ("␣2-Jan-2006"): a leading space is dropped first, and
// the "_2" day verb of dateTimeLayout reads the remaining single digit.
func (s *decodeState) readDateTime() (time.Time, bool) {
	save := s.d.Pos()
	b, ok := s.d.Quoted()
	if !ok {
		return time.Time{}, false
	}
	raw := string(b)
	if len(raw) > 0 && raw[0] == ' ' {
		raw = raw[1:]
	}
	t, err := time.Parse(dateTimeLayout, raw)
	if err != nil {
		s.d.SetPos(save)
		return time.Time{}, false
	}
	return t, true
}

// readSearchDate reads an unquoted or quoted SEARCH date (the grammar
// permits either in practice; servers commonly quote it despite the
// ABNF using a bare date-day "-" date-month "-" date-year). A bare
// date is a run of atom-chars (digits, letters, and "-" are all
// atom-safe), so it is read the same way an Atom is.
func (s *decodeState) readSearchDate() (time.Time, bool) {
	save := s.d.Pos()
	if b, ok := s.d.Quoted(); ok {
		t, err := time.Parse(searchDateLayout, string(b))
		if err != nil {
			s.d.SetPos(save)
			return time.Time{}, false
		}
		return t, true
	}
	token, ok := s.d.Atom()
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(searchDateLayout, token)
	if err != nil {
		s.d.SetPos(save)
		return time.Time{}, false
	}
	return t, true
}

// readMailbox reads a Mailbox, which on the wire is just an AString
// that compares case-insensitively to "INBOX".
func (s *decodeState) readMailbox() (imap.Mailbox, bool) {
	a, ok := s.readAString()
	if !ok {
		return imap.Mailbox{}, false
	}
	return imap.MailboxFromAString(a), true
}

// isListMailboxChar reports whether b may appear in an unquoted
// list-mailbox token: an atom-char, or the two LIST wildcards "%" and
// "*" that plain atoms forbid.
func isListMailboxChar(b byte) bool {
	return imapwire.IsAtomChar(b) || b == '%' || b == '*'
}

// readListMailbox reads the LIST/LSUB mailbox-wildcard argument:
// either a quoted/literal string, or an unquoted run of list-mailbox
// chars (which may contain "%"/"*" that a plain atom rejects).
func (s *decodeState) readListMailbox() (imap.AString, bool) {
	if str, ok := s.readIString(); ok {
		return imap.AStringFromIString(str), true
	}
	start := s.d.Pos()
	for {
		b, ok := s.d.Peek()
		if !ok || !isListMailboxChar(b) {
			break
		}
		s.d.Advance(1)
	}
	if s.d.Pos() == start {
		return imap.AString{}, false
	}
	raw := s.d.Slice(start, s.d.Pos())
	atom, err := imap.TryAtom(raw)
	if err == nil {
		return imap.AStringFromAtom(atom), true
	}
	return imap.AStringFromAtom(imap.UnvalidatedAtom(raw)), true
}

// readAtom reads an Atom value.
func (s *decodeState) readAtom() (imap.Atom, bool) {
	a, ok := s.d.Atom()
	if !ok {
		return imap.Atom{}, false
	}
	atom, err := imap.TryAtom([]byte(a))
	if err != nil {
		return imap.Atom{}, false
	}
	return atom, true
}

// readFlag reads a single flag: "\Name" (system or extension) or a
// bare keyword atom.
func (s *decodeState) readFlag() (imap.Flag, bool) {
	if s.d.Byte('\\') {
		name, ok := s.readAtom()
		if !ok {
			return imap.Flag{}, false
		}
		if sys, ok := imap.ParseSystemFlag(name.String()); ok {
			return imap.FlagSystem(sys), true
		}
		return imap.FlagExtension(name), true
	}
	keyword, ok := s.readAtom()
	if !ok {
		return imap.Flag{}, false
	}
	return imap.FlagKeyword(keyword), true
}

// readFlagFetch reads a flag-fetch: a flag or "\Recent".
func (s *decodeState) readFlagFetch() (imap.FlagFetch, bool) {
	save := s.d.Pos()
	if s.d.Byte('\\') {
		if s.matchAtomCI("Recent") {
			return imap.FlagFetchRecent(), true
		}
		s.d.SetPos(save)
	}
	f, ok := s.readFlag()
	if !ok {
		return imap.FlagFetch{}, false
	}
	return imap.FlagFetchFrom(f), true
}

// readFlagPerm reads a flag-perm: a flag or the "\*" wildcard.
func (s *decodeState) readFlagPerm() (imap.FlagPerm, bool) {
	save := s.d.Pos()
	if s.d.Byte('\\') {
		if s.d.Byte('*') {
			return imap.FlagPermWildcard(), true
		}
		s.d.SetPos(save)
	}
	f, ok := s.readFlag()
	if !ok {
		return imap.FlagPerm{}, false
	}
	return imap.FlagPermFrom(f), true
}

// readSequenceSet reads a sequence-set: comma-separated sequences,
// each a SeqOrUid or a range a:b.
func (s *decodeState) readSequenceSet() (imap.SequenceSet, bool) {
	var seqs []imap.Sequence
	for {
		seq, ok := s.readSequence()
		if !ok {
			break
		}
		seqs = append(seqs, seq)
		if !s.d.Byte(',') {
			break
		}
	}
	set, err := imap.NewSequenceSet(seqs)
	if err != nil {
		return imap.SequenceSet{}, false
	}
	return set, true
}

func (s *decodeState) readSequence() (imap.Sequence, bool) {
	a, ok := s.readSeqOrUid()
	if !ok {
		return imap.Sequence{}, false
	}
	if !s.d.Byte(':') {
		return imap.SequenceSingle(a), true
	}
	b, ok := s.readSeqOrUid()
	if !ok {
		return imap.Sequence{}, false
	}
	return imap.SequenceRange(a, b), true
}

func (s *decodeState) readSeqOrUid() (imap.SeqOrUid, bool) {
	if s.d.Byte('*') {
		return imap.SeqOrUidStar(), true
	}
	n, ok := s.readNzNumber()
	if !ok {
		return imap.SeqOrUid{}, false
	}
	v, err := imap.SeqOrUidNum(n)
	if err != nil {
		return imap.SeqOrUid{}, false
	}
	return v, true
}

// readTextToEOL captures everything up to (not including) the line
// terminator as Text. Strictly at least one character is required;
// the MissingText quirk synthesizes "..." for an empty trailer.
func (s *decodeState) readTextToEOL() (imap.Text, bool) {
	start := s.d.Pos()
	for {
		b, ok := s.d.Peek()
		if !ok || b == '\r' || b == '\n' {
			break
		}
		s.d.Advance(1)
	}
	raw := s.d.Slice(start, s.d.Pos())
	if len(raw) == 0 {
		if s.q.MissingText {
			return imap.UnvalidatedText([]byte("...")), true
		}
		return imap.Text{}, false
	}
	if s.q.TrailingSpace && raw[len(raw)-1] == ' ' {
		raw = raw[:len(raw)-1]
	}
	t, err := imap.TryText(raw)
	if err != nil {
		return imap.Text{}, false
	}
	return t, true
}

// readBase64ToEOL captures everything up to the line terminator and
// decodes it as strict base64, backtracking entirely on failure.
func (s *decodeState) readBase64ToEOL() ([]byte, bool) {
	save := s.d.Pos()
	start := s.d.Pos()
	for {
		b, ok := s.d.Peek()
		if !ok || b == '\r' || b == '\n' {
			break
		}
		s.d.Advance(1)
	}
	raw := s.d.Slice(start, s.d.Pos())
	decoded, ok := decodeBase64(raw)
	if !ok {
		s.d.SetPos(save)
		return nil, false
	}
	return decoded, true
}

// readCharset reads the Atom ∪ Quoted charset production.
func (s *decodeState) readCharset() (imap.Charset, bool) {
	if b, ok := s.d.Quoted(); ok {
		q, err := imap.TryQuoted(b)
		if err != nil {
			return imap.Charset{}, false
		}
		return imap.CharsetFromQuoted(q), true
	}
	a, ok := s.readAtom()
	if !ok {
		return imap.Charset{}, false
	}
	return imap.CharsetFromAtom(a), true
}
