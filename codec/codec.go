package codec

import (
	"encoding/base64"

	"github.com/nugget/imapwire/imap"
	"github.com/nugget/imapwire/imapwire"
)

// Options configures a codec handle. The zero value is usable: strict
// quirk-free parsing with the default recursion limit.
type Options struct {
	// Quirks selects the leniencies this handle applies while
	// decoding (and, for IDEmptyToNil, encoding). Per-handle rather
	// than global so a proxy can apply server-specific leniency to
	// one upstream connection without affecting another.
	Quirks imap.Quirks

	// RecursionLimit bounds how deeply body, body-extension, and
	// search-key may nest. Zero means DefaultRecursionLimit.
	RecursionLimit int
}

func (o Options) limit() int {
	if o.RecursionLimit <= 0 {
		return DefaultRecursionLimit
	}
	return o.RecursionLimit
}

// GreetingCodec decodes and encodes the server greeting, the very
// first line of any IMAP connection.
type GreetingCodec struct{ opts Options }

// NewGreetingCodec builds a GreetingCodec with the given options.
func NewGreetingCodec(opts Options) GreetingCodec { return GreetingCodec{opts: opts} }

// Decode parses one greeting from input, returning any unconsumed
// remainder.
func (c GreetingCodec) Decode(input []byte) ([]byte, imap.Greeting, error) {
	s := newDecodeState(input, c.opts.Quirks, c.opts.limit())
	g, err := decodeGreeting(s)
	if err != nil {
		return nil, imap.Greeting{}, err
	}
	return s.d.Remaining(), g, nil
}

// Encode renders g as a fragment sequence (always a single line — a
// greeting cannot carry a literal).
func (c GreetingCodec) Encode(g imap.Greeting) imapwire.Encoded {
	return encodeGreeting(g)
}

// CommandCodec decodes and encodes client commands.
type CommandCodec struct{ opts Options }

// NewCommandCodec builds a CommandCodec with the given options.
func NewCommandCodec(opts Options) CommandCodec { return CommandCodec{opts: opts} }

// Decode parses one complete command (its line plus any inline
// literal payloads) from input.
func (c CommandCodec) Decode(input []byte) ([]byte, imap.Command, error) {
	s := newDecodeState(input, c.opts.Quirks, c.opts.limit())
	cmd, err := decodeCommand(s)
	if err != nil {
		return nil, imap.Command{}, err
	}
	return s.d.Remaining(), cmd, nil
}

// Encode renders cmd as a fragment sequence. Commands whose arguments
// contain literals produce multiple fragments; the transport must
// await a continuation request before writing each Sync literal.
func (c CommandCodec) Encode(cmd imap.Command) imapwire.Encoded {
	return encodeCommand(cmd, c.opts.Quirks)
}

// ResponseCodec decodes and encodes server responses: status, data,
// and continuation requests.
type ResponseCodec struct{ opts Options }

// NewResponseCodec builds a ResponseCodec with the given options.
func NewResponseCodec(opts Options) ResponseCodec { return ResponseCodec{opts: opts} }

// Decode parses one complete response from input.
func (c ResponseCodec) Decode(input []byte) ([]byte, imap.Response, error) {
	s := newDecodeState(input, c.opts.Quirks, c.opts.limit())
	r, err := decodeResponse(s)
	if err != nil {
		return nil, imap.Response{}, err
	}
	return s.d.Remaining(), r, nil
}

// Encode renders r as a fragment sequence.
func (c ResponseCodec) Encode(r imap.Response) imapwire.Encoded {
	return encodeResponse(r, c.opts.Quirks)
}

// AuthenticateDataCodec decodes and encodes the client's SASL
// continuation lines: a base64 payload or the "*" cancellation.
type AuthenticateDataCodec struct{ opts Options }

// NewAuthenticateDataCodec builds an AuthenticateDataCodec with the
// given options.
func NewAuthenticateDataCodec(opts Options) AuthenticateDataCodec {
	return AuthenticateDataCodec{opts: opts}
}

// Decode parses one authenticate-data line from input.
func (c AuthenticateDataCodec) Decode(input []byte) ([]byte, imap.AuthenticateData, error) {
	s := newDecodeState(input, c.opts.Quirks, c.opts.limit())
	a, err := decodeAuthenticateData(s)
	if err != nil {
		return nil, imap.AuthenticateData{}, err
	}
	return s.d.Remaining(), a, nil
}

// Encode renders a as a single line fragment.
func (c AuthenticateDataCodec) Encode(a imap.AuthenticateData) imapwire.Encoded {
	return encodeAuthenticateData(a)
}

// IdleDoneCodec decodes and encodes the bare "DONE" line that ends an
// IDLE.
type IdleDoneCodec struct{ opts Options }

// NewIdleDoneCodec builds an IdleDoneCodec with the given options.
func NewIdleDoneCodec(opts Options) IdleDoneCodec { return IdleDoneCodec{opts: opts} }

// Decode parses the DONE line from input.
func (c IdleDoneCodec) Decode(input []byte) ([]byte, imap.IdleDone, error) {
	s := newDecodeState(input, c.opts.Quirks, c.opts.limit())
	if !s.matchAtomCI("DONE") {
		return nil, imap.IdleDone{}, s.fail("expected DONE")
	}
	if !s.crlf() {
		return nil, imap.IdleDone{}, s.fail("expected CRLF after DONE")
	}
	return s.d.Remaining(), imap.NewIdleDone(), nil
}

// Encode renders the DONE line.
func (c IdleDoneCodec) Encode(imap.IdleDone) imapwire.Encoded {
	return imapwire.NewEncoder().Atom("DONE").CRLF().Finish()
}

// decodeBase64 strictly decodes b, reporting false for anything that
// is not canonical padded base64 (including the empty string, which
// the continuation-request preference order wants treated as text).
func decodeBase64(b []byte) ([]byte, bool) {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil, false
	}
	out, err := base64.StdEncoding.Strict().DecodeString(string(b))
	if err != nil {
		return nil, false
	}
	return out, true
}

func decodeAuthenticateData(s *decodeState) (imap.AuthenticateData, error) {
	if s.d.Byte('*') {
		if !s.crlf() {
			return imap.AuthenticateData{}, s.fail("expected CRLF after authenticate-data cancellation")
		}
		return imap.AuthenticateDataCancel(), nil
	}
	// An empty line is a valid zero-length SASL response.
	if s.crlf() {
		return imap.AuthenticateDataOf(nil), nil
	}
	data, ok := s.readBase64ToEOL()
	if !ok {
		return imap.AuthenticateData{}, s.fail("expected base64 authenticate-data")
	}
	if !s.crlf() {
		return imap.AuthenticateData{}, s.fail("expected CRLF after authenticate-data")
	}
	return imap.AuthenticateDataOf(data), nil
}

func encodeAuthenticateData(a imap.AuthenticateData) imapwire.Encoded {
	e := imapwire.NewEncoder()
	if a.IsCancel() {
		return e.Special('*').CRLF().Finish()
	}
	return e.Atom(base64.StdEncoding.EncodeToString(a.Bytes())).CRLF().Finish()
}
