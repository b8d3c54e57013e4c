package fragment

import "github.com/nugget/imapwire/imap"

// LineEnding records which character sequence terminated a line
// fragment, since the grammar engine accepts both but callers
// sometimes want to know which one a peer actually used.
type LineEnding int

const (
	LineEndingLF LineEnding = iota
	LineEndingCRLF
)

func (e LineEnding) String() string {
	if e == LineEndingCRLF {
		return "CRLF"
	}
	return "LF"
}

// LiteralAnnouncement is the "{length}" or "{length+}" trailer on a
// line that means the next fragment is a literal of that many bytes.
type LiteralAnnouncement struct {
	Mode   imap.LiteralMode
	Length uint32
}

// FragmentKind discriminates the two fragment shapes Fragmentizer
// emits.
type FragmentKind int

const (
	FragmentLine FragmentKind = iota
	FragmentLiteral
)

// FragmentInfo describes one fragment of the message currently being
// assembled: its byte range within the message buffer, and — for
// lines — whether it announces a following literal and which line
// ending it used. Ranges are relative to the current message, not the
// connection's entire byte stream, and are only meaningful until
// Fragmentizer.IsMessageComplete returns true and the next call to
// Progress starts a new message.
type FragmentInfo struct {
	kind         FragmentKind
	start, end   int
	announcement *LiteralAnnouncement
	ending       LineEnding
}

func lineFragment(start, end int, announcement *LiteralAnnouncement, ending LineEnding) FragmentInfo {
	return FragmentInfo{kind: FragmentLine, start: start, end: end, announcement: announcement, ending: ending}
}

func literalFragment(start, end int) FragmentInfo {
	return FragmentInfo{kind: FragmentLiteral, start: start, end: end}
}

func (f FragmentInfo) Kind() FragmentKind { return f.kind }
func (f FragmentInfo) Range() (start, end int) { return f.start, f.end }

// Announcement reports the literal a line fragment announces, if any.
// Always returns ok=false for a FragmentLiteral.
func (f FragmentInfo) Announcement() (LiteralAnnouncement, bool) {
	if f.announcement == nil {
		return LiteralAnnouncement{}, false
	}
	return *f.announcement, true
}

// Ending reports the line ending used by a line fragment. Meaningless
// for a FragmentLiteral.
func (f FragmentInfo) Ending() LineEnding { return f.ending }
