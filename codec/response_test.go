package codec

import (
	"bytes"
	"testing"

	"github.com/nugget/imapwire/imap"
)

func roundTripResponse(t *testing.T, c ResponseCodec, wire string) imap.Response {
	t.Helper()
	remainder, resp, err := c.Decode([]byte(wire))
	if err != nil {
		t.Fatalf("decode %q: %v", wire, err)
	}
	if len(remainder) != 0 {
		t.Fatalf("decode %q left remainder %q", wire, remainder)
	}
	if got := c.Encode(resp).Dump(); !bytes.Equal(got, []byte(wire)) {
		t.Fatalf("round trip of %q produced %q", wire, got)
	}
	return resp
}

func TestResponseStatusRoundTrips(t *testing.T) {
	c := NewResponseCodec(Options{})
	wires := []string{
		"A1 OK LOGIN completed\r\n",
		"A2 NO [TRYCREATE] no such mailbox\r\n",
		"A3 BAD command unknown\r\n",
		"A4 OK [READ-WRITE] SELECT completed\r\n",
		"* OK [UNSEEN 17] message 17 is first unseen\r\n",
		"* OK [UIDVALIDITY 3857529045] UIDs valid\r\n",
		"* OK [UIDNEXT 4392] predicted next UID\r\n",
		"* OK [PERMANENTFLAGS (\\Deleted \\Seen \\*)] limited\r\n",
		"* OK [ALERT] the server is on fire\r\n",
		"* OK [PARSE] header parse glitch\r\n",
		"* NO [BADCHARSET] only ASCII here\r\n",
		"* NO [BADCHARSET (UTF-8 \"iso-8859-1\")] pick one\r\n",
		"* OK [CAPABILITY IMAP4rev1 STARTTLS AUTH=PLAIN LITERAL+ UIDPLUS] ready\r\n",
		"* OK [APPENDUID 38505 3955] APPEND completed\r\n",
		"* OK [COPYUID 38505 304,319:320 3956:3958] done\r\n",
		"* NO [UIDNOTSTICKY] no persistent UIDs\r\n",
		"* OK [COMPRESSIONACTIVE] deflate active\r\n",
		"* NO [OVERQUOTA] quota exceeded\r\n",
		"* NO [TOOBIG] message too large\r\n",
		"* NO [UNKNOWN-CTE] cannot decode\r\n",
		"* OK [XVENDOR extra stuff] proprietary hint\r\n",
		"* BYE autologout\r\n",
		"* BYE [ALERT] shutting down\r\n",
	}
	for _, wire := range wires {
		t.Run(wire[:min(len(wire)-2, 24)], func(t *testing.T) {
			roundTripResponse(t, c, wire)
		})
	}
}

func TestResponseUnknownCodePreservedVerbatim(t *testing.T) {
	c := NewResponseCodec(Options{})
	resp := roundTripResponse(t, c, "* OK [HIGHESTMODSEQ 715194045007] ok\r\n")
	status, _ := resp.Status()
	code, ok := status.Code()
	if !ok || code.Kind() != imap.CodeOther {
		t.Fatalf("expected CodeOther, got %+v", code)
	}
	if string(code.OtherBytes()) != "HIGHESTMODSEQ 715194045007" {
		t.Fatalf("verbatim bytes = %q", code.OtherBytes())
	}
}

func TestResponseDataRoundTrips(t *testing.T) {
	c := NewResponseCodec(Options{})
	wires := []string{
		"* CAPABILITY IMAP4rev1 IDLE MOVE ID UNSELECT QUOTA QUOTASET QUOTA=RES-STORAGE BINARY METADATA METADATA-SERVER SORT SORT=DISPLAY THREAD=REFERENCES COMPRESS=DEFLATE ENABLE LITERAL-\r\n",
		"* LIST (\\Noselect) \"/\" foo\r\n",
		"* LIST () \"/\" \"two words\"\r\n",
		"* LIST (\\Marked \\HasChildren) NIL INBOX\r\n",
		"* LSUB () \".\" #news.comp.mail.misc\r\n",
		"* STATUS blurdybloop (MESSAGES 231 UIDNEXT 44292)\r\n",
		"* SEARCH\r\n",
		"* SEARCH 2 3 6\r\n",
		"* FLAGS (\\Answered \\Flagged \\Deleted \\Seen \\Draft)\r\n",
		"* 23 EXISTS\r\n",
		"* 5 RECENT\r\n",
		"* 44 EXPUNGE\r\n",
		"* QUOTA \"\" (STORAGE 10 512)\r\n",
		"* QUOTAROOT INBOX \"\"\r\n",
		"* QUOTAROOT comp.mail.mime\r\n",
		"* ID (\"name\" \"Cyrus\" \"version\" NIL)\r\n",
		"* ID NIL\r\n",
		"* ENABLED CONDSTORE\r\n",
		"* ENABLED\r\n",
	}
	for _, wire := range wires {
		t.Run(wire[:min(len(wire)-2, 24)], func(t *testing.T) {
			roundTripResponse(t, c, wire)
		})
	}
}

func TestResponseFetchRoundTrip(t *testing.T) {
	c := NewResponseCodec(Options{})
	wire := "* 12 FETCH (FLAGS (\\Seen \\Recent) INTERNALDATE \"17-Jul-1996 02:44:25 -0700\" RFC822.SIZE 4286 UID 443)\r\n"
	resp := roundTripResponse(t, c, wire)
	data, _ := resp.Data()
	if data.Kind() != imap.DataFetch || data.Fetch().Seq != 12 {
		t.Fatalf("unexpected fetch data: %+v", data)
	}
	if len(data.Fetch().Items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(data.Fetch().Items))
	}
}

func TestResponseFetchEnvelopeRoundTrip(t *testing.T) {
	c := NewResponseCodec(Options{})
	wire := "* 12 FETCH (ENVELOPE (\"Wed, 17 Jul 1996 02:23:25 -0700 (PDT)\" " +
		"\"IMAP4rev1 WG mtg summary and minutes\" " +
		"((\"Terry Gray\" NIL \"gray\" \"cac.washington.edu\")) " +
		"((\"Terry Gray\" NIL \"gray\" \"cac.washington.edu\")) " +
		"((\"Terry Gray\" NIL \"gray\" \"cac.washington.edu\")) " +
		"((NIL NIL \"imap\" \"cac.washington.edu\")) " +
		"((NIL NIL \"minutes\" \"CNRI.Reston.VA.US\")(\"John Klensin\" NIL \"KLENSIN\" \"MIT.EDU\")) " +
		"NIL NIL \"<B27397-0100000@cac.washington.edu>\"))\r\n"
	resp := roundTripResponse(t, c, wire)
	data, _ := resp.Data()
	item := data.Fetch().Items[0]
	env := item.Envelope()
	if env.Subject.String() != "IMAP4rev1 WG mtg summary and minutes" {
		t.Fatalf("subject = %q", env.Subject.String())
	}
	if len(env.CC.Addresses()) != 2 {
		t.Fatalf("cc count = %d", len(env.CC.Addresses()))
	}
	if !env.Sender.Addresses()[0].Name.IsPresent() {
		t.Fatal("sender name should be present")
	}
	if env.InReplyTo.IsPresent() {
		t.Fatal("in-reply-to should be NIL")
	}
}

func TestResponseBodyStructureRoundTrip(t *testing.T) {
	c := NewResponseCodec(Options{})
	wires := []string{
		// Simple text part, no extension data.
		"* 1 FETCH (BODYSTRUCTURE (\"TEXT\" \"PLAIN\" (\"CHARSET\" \"US-ASCII\") NIL NIL \"7BIT\" 3028 92))\r\n",
		// Single part with the full extension tail.
		"* 2 FETCH (BODYSTRUCTURE (\"APPLICATION\" \"OCTET-STREAM\" NIL NIL NIL \"BASE64\" 8192 \"md5sum\" (\"ATTACHMENT\" (\"FILENAME\" \"x.bin\")) \"en\" \"http://example.net/x\" 42 (\"deep\" 7)))\r\n",
		// Nested message/rfc822.
		"* 3 FETCH (BODYSTRUCTURE (\"MESSAGE\" \"RFC822\" NIL NIL NIL \"7BIT\" 512 (NIL \"inner\" NIL NIL NIL NIL NIL NIL NIL NIL) (\"TEXT\" \"PLAIN\" NIL NIL NIL \"7BIT\" 64 4) 12))\r\n",
		// Multipart with subtype and extension parameters.
		"* 4 FETCH (BODYSTRUCTURE ((\"TEXT\" \"PLAIN\" NIL NIL NIL \"7BIT\" 64 4)(\"TEXT\" \"HTML\" NIL NIL NIL \"QUOTED-PRINTABLE\" 128 8) \"ALTERNATIVE\" (\"BOUNDARY\" \"xyz\")))\r\n",
		// BODY[section] payloads, quoted and literal.
		"* 5 FETCH (BODY[HEADER.FIELDS (SUBJECT)] \"Subject: hi\")\r\n",
		"* 6 FETCH (BODY[1]<20> {3}\r\nabc)\r\n",
		"* 7 FETCH (BODY[] NIL)\r\n",
	}
	for _, wire := range wires {
		roundTripResponse(t, c, wire)
	}
}

func TestResponseDeeplyNestedMultipart(t *testing.T) {
	c := NewResponseCodec(Options{})
	leaf := "(\"TEXT\" \"PLAIN\" NIL NIL NIL \"7BIT\" 8 1)"
	// Seven levels of nesting reaches, but does not exceed, the
	// default depth budget of eight.
	body := leaf
	for i := 0; i < 7; i++ {
		body = "(" + body + " \"MIXED\")"
	}
	wire := "* 9 FETCH (BODYSTRUCTURE " + body + ")\r\n"
	roundTripResponse(t, c, wire)

	// One level deeper fails with the typed recursion error.
	body = "(" + body + " \"MIXED\")"
	_, _, err := c.Decode([]byte("* 9 FETCH (BODYSTRUCTURE " + body + ")\r\n"))
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != ParseErrorRecursionLimitExceeded {
		t.Fatalf("expected recursion limit error, got %v", err)
	}
}

func TestResponseBodyRecursionBombed(t *testing.T) {
	c := NewResponseCodec(Options{})
	input := append([]byte("* 1 FETCH (BODYSTRUCTURE "), bytes.Repeat([]byte("("), 1_000_000)...)
	_, _, err := c.Decode(input)
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != ParseErrorRecursionLimitExceeded {
		t.Fatalf("expected recursion limit error, got %v", err)
	}
}

func TestContinuationPreference(t *testing.T) {
	c := NewResponseCodec(Options{})

	// A trailer that decodes as base64 is Base64.
	resp := roundTripResponse(t, c, "+ aGVsbG8=\r\n")
	cont, _ := resp.Continuation()
	if cont.Kind() != imap.ContinuationBase64 || string(cont.Base64()) != "hello" {
		t.Fatalf("unexpected continuation: %+v", cont)
	}

	// Anything else is Basic.
	resp = roundTripResponse(t, c, "+ idling\r\n")
	cont, _ = resp.Continuation()
	if cont.Kind() != imap.ContinuationBasic || cont.Text().String() != "idling" {
		t.Fatalf("unexpected continuation: %+v", cont)
	}

	// A bracketed code keeps base64-shaped text unambiguous.
	resp = roundTripResponse(t, c, "+ [READ-WRITE] aGVsbG8=\r\n")
	cont, _ = resp.Continuation()
	if cont.Kind() != imap.ContinuationBasic {
		t.Fatalf("coded continuation must stay Basic: %+v", cont)
	}
	if code, ok := cont.Code(); !ok || code.Kind() != imap.CodeReadWrite {
		t.Fatalf("unexpected code: %+v", code)
	}
}

func TestGreetingRoundTrips(t *testing.T) {
	c := NewGreetingCodec(Options{})
	wires := []string{
		"* OK IMAP4rev1 server ready\r\n",
		"* OK [CAPABILITY IMAP4rev1 STARTTLS AUTH=GSSAPI] ready\r\n",
		"* PREAUTH logged in as Pete\r\n",
		"* BYE not accepting connections\r\n",
	}
	for _, wire := range wires {
		remainder, g, err := c.Decode([]byte(wire))
		if err != nil {
			t.Fatalf("decode %q: %v", wire, err)
		}
		if len(remainder) != 0 {
			t.Fatalf("remainder %q", remainder)
		}
		if got := c.Encode(g).Dump(); !bytes.Equal(got, []byte(wire)) {
			t.Fatalf("round trip of %q produced %q", wire, got)
		}
	}
}

func TestAuthenticateDataRoundTrip(t *testing.T) {
	c := NewAuthenticateDataCodec(Options{})

	remainder, a, err := c.Decode([]byte("AGZvbwBiYXI=\r\n"))
	if err != nil || len(remainder) != 0 {
		t.Fatalf("decode: %v, remainder %q", err, remainder)
	}
	if a.IsCancel() || string(a.Bytes()) != "\x00foo\x00bar" {
		t.Fatalf("unexpected authenticate data: %+v", a)
	}
	if got := c.Encode(a).Dump(); !bytes.Equal(got, []byte("AGZvbwBiYXI=\r\n")) {
		t.Fatalf("re-encode produced %q", got)
	}

	_, cancel, err := c.Decode([]byte("*\r\n"))
	if err != nil || !cancel.IsCancel() {
		t.Fatalf("cancel decode: %v %+v", err, cancel)
	}
	if got := c.Encode(cancel).Dump(); !bytes.Equal(got, []byte("*\r\n")) {
		t.Fatalf("cancel re-encode produced %q", got)
	}
}

func TestIdleDoneRoundTrip(t *testing.T) {
	c := NewIdleDoneCodec(Options{})
	remainder, done, err := c.Decode([]byte("DONE\r\n"))
	if err != nil || len(remainder) != 0 {
		t.Fatalf("decode: %v, remainder %q", err, remainder)
	}
	if got := c.Encode(done).Dump(); !bytes.Equal(got, []byte("DONE\r\n")) {
		t.Fatalf("re-encode produced %q", got)
	}
	if _, _, err := c.Decode([]byte("DONT\r\n")); err == nil {
		t.Fatal("expected decode failure")
	}
}

func TestResponseQuirks(t *testing.T) {
	t.Run("trailing space", func(t *testing.T) {
		wire := []byte("* SEARCH 2 3 \r\n")
		strict := NewResponseCodec(Options{})
		if _, _, err := strict.Decode(wire); err == nil {
			t.Fatal("trailing space must fail without the quirk")
		}
		lenient := NewResponseCodec(Options{Quirks: imap.Quirks{TrailingSpace: true}})
		_, resp, err := lenient.Decode(wire)
		if err != nil {
			t.Fatalf("trailing space should pass with the quirk: %v", err)
		}
		data, _ := resp.Data()
		if len(data.Search()) != 2 {
			t.Fatalf("search results = %v", data.Search())
		}
	})

	t.Run("missing text", func(t *testing.T) {
		wire := []byte("* OK [UIDNEXT 5]\r\n")
		strict := NewResponseCodec(Options{})
		if _, _, err := strict.Decode(wire); err == nil {
			t.Fatal("missing text must fail without the quirk")
		}
		lenient := NewResponseCodec(Options{Quirks: imap.Quirks{MissingText: true}})
		_, resp, err := lenient.Decode(wire)
		if err != nil {
			t.Fatalf("missing text should pass with the quirk: %v", err)
		}
		status, _ := resp.Status()
		if status.Text().String() != "..." {
			t.Fatalf("synthesized text = %q", status.Text().String())
		}
	})

	t.Run("rectify numbers", func(t *testing.T) {
		wire := []byte("* 1 FETCH (RFC822.SIZE -1)\r\n")
		strict := NewResponseCodec(Options{})
		if _, _, err := strict.Decode(wire); err == nil {
			t.Fatal("negative size must fail without the quirk")
		}
		lenient := NewResponseCodec(Options{Quirks: imap.Quirks{RectifyNumbers: true}})
		_, resp, err := lenient.Decode(wire)
		if err != nil {
			t.Fatalf("negative size should pass with the quirk: %v", err)
		}
		data, _ := resp.Data()
		if data.Fetch().Items[0].RFC822Size() != 0 {
			t.Fatal("negative size should rectify to 0")
		}
	})
}

func TestResponseDecodeRemainder(t *testing.T) {
	c := NewResponseCodec(Options{})
	remainder, _, err := c.Decode([]byte("* 23 EXISTS\r\n* 5 RECENT\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(remainder, []byte("* 5 RECENT\r\n")) {
		t.Fatalf("remainder = %q", remainder)
	}
}
