package fragment

import (
	"github.com/nugget/imapwire/imap"
)

// Fragmentizer splits a byte stream into line and literal fragments,
// one message at a time, while bounding how much of any single
// message it is willing to buffer.
//
// If a message exceeds MaxMessageSize, decoding it with DecodeMessage
// fails and MessageBytes returns a truncated prefix, but fragmentation
// of the following message proceeds normally — a peer that sends one
// oversized message does not desynchronize the stream.
type Fragmentizer struct {
	unparsed         []byte
	maxMessageSize   *uint32
	sizeExceeded     bool
	messageBuffer    []byte
	currentParser    parser
}

// New creates a Fragmentizer bounding any single message to
// maxMessageSize bytes.
func New(maxMessageSize uint32) *Fragmentizer {
	return &Fragmentizer{
		maxMessageSize: &maxMessageSize,
		currentParser:  &lineParser{start: 0, end: 0, state: latestByteState{kind: lbOther}},
	}
}

// WithoutMaxMessageSize creates a Fragmentizer with no upper bound on
// message size. A peer can force unbounded memory allocation this way;
// only use it against trusted peers or behind an external size guard.
func WithoutMaxMessageSize() *Fragmentizer {
	return &Fragmentizer{
		currentParser: &lineParser{start: 0, end: 0, state: latestByteState{kind: lbOther}},
	}
}

// Progress continues parsing the current message until the next
// fragment is found. It returns ok=false if more bytes are needed via
// EnqueueBytes. When IsMessageComplete returns true after a call to
// Progress, the message is fully fragmented; the next call to Progress
// starts the following message.
func (f *Fragmentizer) Progress() (FragmentInfo, bool) {
	if f.currentParser == nil {
		f.sizeExceeded = false
		f.messageBuffer = f.messageBuffer[:0]
		f.currentParser = &lineParser{start: 0, end: 0, state: latestByteState{kind: lbOther}}
	}

	parsedCount, frag, hasFrag := f.currentParser.parse(f.unparsed)
	f.dequeueParsedBytes(parsedCount)

	if hasFrag {
		switch frag.kind {
		case FragmentLine:
			if frag.announcement == nil {
				f.currentParser = nil
			} else {
				f.currentParser = &literalParser{start: frag.end, end: frag.end, remaining: frag.announcement.Length}
			}
		case FragmentLiteral:
			f.currentParser = &lineParser{start: frag.end, end: frag.end, state: latestByteState{kind: lbOther}}
		}
		return frag, true
	}
	return FragmentInfo{}, false
}

// EnqueueBytes makes more bytes available to Progress. The message
// size limit is not enforced on enqueued bytes directly — only on how
// much of them ends up retained in the message buffer — so callers
// control memory use by only enqueuing what Progress says it needs.
func (f *Fragmentizer) EnqueueBytes(b []byte) {
	f.unparsed = append(f.unparsed, b...)
}

// FragmentBytes returns the bytes of the current message belonging to
// fragment.
func (f *Fragmentizer) FragmentBytes(fragment FragmentInfo) []byte {
	start, end := fragment.Range()
	if start > len(f.messageBuffer) {
		start = len(f.messageBuffer)
	}
	if end > len(f.messageBuffer) {
		end = len(f.messageBuffer)
	}
	return f.messageBuffer[start:end]
}

// IsMessageComplete reports whether the current message has been
// fully fragmented.
func (f *Fragmentizer) IsMessageComplete() bool { return f.currentParser == nil }

// MessageBytes returns the bytes of the current message accumulated
// so far. They may be incomplete (more fragments remain) or truncated
// (the size limit was exceeded and bytes were dropped) — check
// IsMessageComplete and IsMaxMessageSizeExceeded accordingly.
func (f *Fragmentizer) MessageBytes() []byte { return f.messageBuffer }

// IsMaxMessageSizeExceeded reports whether the size limit was exceeded
// for the current message.
func (f *Fragmentizer) IsMaxMessageSizeExceeded() bool { return f.sizeExceeded }

// SkipMessage abandons the current message and starts the next one
// immediately. This is dangerous: client and server must agree on
// where a message is skipped, or the peer may end up treating
// untrusted bytes (e.g. literal data) as new IMAP messages. The only
// well-understood use is a server rejecting a synchronizing literal
// from a client that has already sent it.
func (f *Fragmentizer) SkipMessage() {
	f.sizeExceeded = false
	f.messageBuffer = f.messageBuffer[:0]
	f.currentParser = &lineParser{start: 0, end: 0, state: latestByteState{kind: lbOther}}
}

// DecodeTag makes a best-effort attempt to extract the Tag from the
// current message, even if the message is incomplete or malformed.
// Whether this succeeds depends on the message type (not every message
// carries a tag); it exists to let a reader respond sensibly to a
// broken or oversized tagged command.
func (f *Fragmentizer) DecodeTag() (imap.Tag, bool) {
	return decodeTag(f.messageBuffer)
}

func decodeTag(message []byte) (imap.Tag, bool) {
	sp := -1
	for i, b := range message {
		if b == ' ' {
			sp = i
			break
		}
		if b == '\n' {
			return imap.Tag{}, false
		}
	}
	if sp < 0 {
		return imap.Tag{}, false
	}
	tag, err := imap.TryTag(message[:sp])
	if err != nil {
		return imap.Tag{}, false
	}
	return tag, true
}

func (f *Fragmentizer) dequeueParsedBytes(parsedByteCount int) {
	parsedBytes := f.unparsed[:parsedByteCount]
	f.unparsed = f.unparsed[parsedByteCount:]

	if f.maxMessageSize == nil {
		f.messageBuffer = append(f.messageBuffer, parsedBytes...)
		return
	}

	remaining := int(*f.maxMessageSize) - len(f.messageBuffer)
	if remaining < parsedByteCount {
		if remaining < 0 {
			remaining = 0
		}
		f.messageBuffer = append(f.messageBuffer, parsedBytes[:remaining]...)
		f.sizeExceeded = true
		return
	}
	f.messageBuffer = append(f.messageBuffer, parsedBytes...)
}

// parser is the stateful scanner for the next fragment of the current
// message: either a lineParser or a literalParser.
type parser interface {
	// parse consumes as many bytes of unprocessed as it can, returning
	// how many it consumed and the completed fragment, if any.
	parse(unprocessed []byte) (parsedByteCount int, fragment FragmentInfo, ok bool)
}

type latestByteKind int

const (
	lbOther latestByteKind = iota
	lbOpeningBracket
	lbDigit
	lbPlus
	lbClosingBracket
	lbCr
)

type latestByteState struct {
	kind         latestByteKind
	length       uint32                // valid for lbDigit, lbPlus
	announcement *LiteralAnnouncement  // valid for lbClosingBracket (always set), lbCr (optional)
}

// lineParser implements the 6-state byte-at-a-time automaton that
// scans a line while also detecting a trailing literal announcement
// of the form "{digits}" or "{digits+}".
type lineParser struct {
	start, end int
	state      latestByteState
}

func (p *lineParser) parse(unprocessed []byte) (int, FragmentInfo, bool) {
	parsedByteCount := 0
	var result FragmentInfo
	var found bool

	for _, next := range unprocessed {
		parsedByteCount++
		p.end++

		switch p.state.kind {
		case lbOther:
			switch next {
			case '\r':
				p.state = latestByteState{kind: lbCr}
			case '\n':
				result = lineFragment(p.start, p.end, nil, LineEndingLF)
				found = true
				p.state = latestByteState{kind: lbOther}
			case '{':
				p.state = latestByteState{kind: lbOpeningBracket}
			default:
				p.state = latestByteState{kind: lbOther}
			}

		case lbOpeningBracket:
			switch {
			case next == '\r':
				p.state = latestByteState{kind: lbCr}
			case next == '\n':
				result = lineFragment(p.start, p.end, nil, LineEndingLF)
				found = true
				p.state = latestByteState{kind: lbOther}
			case next == '{':
				p.state = latestByteState{kind: lbOpeningBracket}
			case next >= '0' && next <= '9':
				p.state = latestByteState{kind: lbDigit, length: uint32(next - '0')}
			default:
				p.state = latestByteState{kind: lbOther}
			}

		case lbPlus:
			length := p.state.length
			switch {
			case next == '\r':
				p.state = latestByteState{kind: lbCr}
			case next == '\n':
				result = lineFragment(p.start, p.end, nil, LineEndingLF)
				found = true
				p.state = latestByteState{kind: lbOther}
			case next == '{':
				p.state = latestByteState{kind: lbOpeningBracket}
			case next == '}':
				ann := LiteralAnnouncement{Mode: imap.LiteralModeNonSync, Length: length}
				p.state = latestByteState{kind: lbClosingBracket, announcement: &ann}
			default:
				p.state = latestByteState{kind: lbOther}
			}

		case lbDigit:
			length := p.state.length
			switch {
			case next == '\r':
				p.state = latestByteState{kind: lbCr}
			case next == '\n':
				result = lineFragment(p.start, p.end, nil, LineEndingLF)
				found = true
				p.state = latestByteState{kind: lbOther}
			case next == '{':
				p.state = latestByteState{kind: lbOpeningBracket}
			case next >= '0' && next <= '9':
				digit := uint32(next - '0')
				newLength, overflow := checkedMulAdd(length, 10, digit)
				if overflow {
					p.state = latestByteState{kind: lbOther}
				} else {
					p.state = latestByteState{kind: lbDigit, length: newLength}
				}
			case next == '+':
				p.state = latestByteState{kind: lbPlus, length: length}
			case next == '}':
				ann := LiteralAnnouncement{Mode: imap.LiteralModeSync, Length: length}
				p.state = latestByteState{kind: lbClosingBracket, announcement: &ann}
			default:
				p.state = latestByteState{kind: lbOther}
			}

		case lbClosingBracket:
			announcement := p.state.announcement
			switch next {
			case '\r':
				p.state = latestByteState{kind: lbCr, announcement: announcement}
			case '\n':
				result = lineFragment(p.start, p.end, announcement, LineEndingLF)
				found = true
				p.state = latestByteState{kind: lbOther}
			case '{':
				p.state = latestByteState{kind: lbOpeningBracket}
			default:
				p.state = latestByteState{kind: lbOther}
			}

		case lbCr:
			announcement := p.state.announcement
			switch next {
			case '\r':
				p.state = latestByteState{kind: lbCr}
			case '\n':
				result = lineFragment(p.start, p.end, announcement, LineEndingCRLF)
				found = true
				p.state = latestByteState{kind: lbOther}
			case '{':
				p.state = latestByteState{kind: lbOpeningBracket}
			default:
				p.state = latestByteState{kind: lbOther}
			}
		}

		if found {
			break
		}
	}

	return parsedByteCount, result, found
}

func checkedMulAdd(length, mul, add uint32) (uint32, bool) {
	product := uint64(length) * uint64(mul)
	if product > 0xFFFFFFFF {
		return 0, true
	}
	sum := product + uint64(add)
	if sum > 0xFFFFFFFF {
		return 0, true
	}
	return uint32(sum), false
}

// literalParser consumes exactly the announced number of literal
// bytes, regardless of their content.
type literalParser struct {
	start, end int
	remaining  uint32
}

func (p *literalParser) parse(unprocessed []byte) (int, FragmentInfo, bool) {
	if len(unprocessed) < int(p.remaining) {
		n := len(unprocessed)
		p.end += n
		p.remaining -= uint32(n)
		return n, FragmentInfo{}, false
	}
	n := int(p.remaining)
	p.end += n
	p.remaining = 0
	return n, literalFragment(p.start, p.end), true
}
