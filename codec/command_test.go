package codec

import (
	"bytes"
	"testing"

	"github.com/nugget/imapwire/imap"
	"github.com/nugget/imapwire/imapwire"
)

// roundTripCommand decodes wire, re-encodes the result, and requires
// the dump to reproduce wire byte for byte.
func roundTripCommand(t *testing.T, c CommandCodec, wire string) imap.Command {
	t.Helper()
	remainder, cmd, err := c.Decode([]byte(wire))
	if err != nil {
		t.Fatalf("decode %q: %v", wire, err)
	}
	if len(remainder) != 0 {
		t.Fatalf("decode %q left remainder %q", wire, remainder)
	}
	encoded := c.Encode(cmd)
	if got := encoded.Dump(); !bytes.Equal(got, []byte(wire)) {
		t.Fatalf("round trip of %q produced %q", wire, got)
	}
	return cmd
}

func TestCommandRoundTrips(t *testing.T) {
	c := NewCommandCodec(Options{})
	wires := []string{
		"A1 CAPABILITY\r\n",
		"A2 NOOP\r\n",
		"A3 LOGOUT\r\n",
		"A4 STARTTLS\r\n",
		"A5 CHECK\r\n",
		"A6 CLOSE\r\n",
		"A7 EXPUNGE\r\n",
		"A8 IDLE\r\n",
		"A49 UNSELECT\r\n",
		"A9 LOGIN joe secret\r\n",
		"A10 LOGIN \"two words\" \"pa\\\"ss\"\r\n",
		"A11 AUTHENTICATE PLAIN\r\n",
		"A12 AUTHENTICATE PLAIN AGZvbwBiYXI=\r\n",
		"A13 AUTHENTICATE EXTERNAL =\r\n",
		"A14 SELECT INBOX\r\n",
		"A15 EXAMINE Drafts\r\n",
		"A16 CREATE \"New Folder\"\r\n",
		"A17 DELETE old\r\n",
		"A18 RENAME old new\r\n",
		"A19 SUBSCRIBE lists.go\r\n",
		"A20 UNSUBSCRIBE lists.go\r\n",
		"A21 LIST \"\" *\r\n",
		"A22 LSUB \"#news.\" \"comp.mail.%\"\r\n",
		"A23 STATUS INBOX (MESSAGES UNSEEN UIDNEXT)\r\n",
		"A24 FETCH 1:5,7 (FLAGS UID)\r\n",
		"A25 FETCH 2 ALL\r\n",
		"A26 FETCH 3 UID\r\n",
		"A27 FETCH 4 BODY.PEEK[HEADER]<0.100>\r\n",
		"A28 FETCH 5 BODY[1.2.TEXT]\r\n",
		"A29 UID FETCH 100:* FULL\r\n",
		"A30 STORE 2:4 +FLAGS.SILENT (\\Deleted)\r\n",
		"A31 STORE 7 FLAGS (\\Seen keyword)\r\n",
		"A32 UID STORE 9 -FLAGS (\\Flagged)\r\n",
		"A33 COPY 1:3 Archive\r\n",
		"A34 UID COPY 4 Archive\r\n",
		"A35 MOVE 5 Trash\r\n",
		"A36 UID MOVE 6:8 Trash\r\n",
		"A37 SEARCH FLAGGED SINCE 01-Feb-1994 NOT FROM Smith\r\n",
		"A38 SEARCH CHARSET UTF-8 TEXT foo\r\n",
		"A39 SEARCH OR SEEN (UNSEEN LARGER 1024)\r\n",
		"A40 UID SEARCH UID 443:557\r\n",
		"A41 SEARCH HEADER Message-Id <x@y>\r\n",
		"A42 ENABLE CONDSTORE\r\n",
		"A43 COMPRESS DEFLATE\r\n",
		"A44 ID (\"name\" \"imapcodec\" \"version\" NIL)\r\n",
		"A45 ID NIL\r\n",
		"A46 GETQUOTA \"\"\r\n",
		"A47 GETQUOTAROOT INBOX\r\n",
		"A48 SETQUOTA \"\" (STORAGE 512)\r\n",
	}
	for _, wire := range wires {
		t.Run(wire[:min(len(wire)-2, 18)], func(t *testing.T) {
			roundTripCommand(t, c, wire)
		})
	}
}

func TestCommandLoginLiteralFlow(t *testing.T) {
	c := NewCommandCodec(Options{})
	cmd := roundTripCommand(t, c, "A1 LOGIN {5}\r\nABCDE EFGIJ\r\n")

	login, ok := cmd.Body.(imap.LoginCmd)
	if !ok {
		t.Fatalf("expected LoginCmd, got %T", cmd.Body)
	}
	if cmd.Tag.String() != "A1" {
		t.Fatalf("tag = %q", cmd.Tag.String())
	}
	user, ok := login.Username.IString()
	if !ok {
		t.Fatal("username should be a literal")
	}
	lit, ok := user.(imap.Literal)
	if !ok || string(lit.Bytes()) != "ABCDE" || lit.Mode() != imap.LiteralModeSync {
		t.Fatalf("unexpected username literal: %+v", user)
	}
	pass, ok := login.Password.Expose().Atom()
	if !ok || pass.String() != "EFGIJ" {
		t.Fatalf("unexpected password: %+v", login.Password.Expose())
	}

	// The encoded form exposes the literal boundary to the transport:
	// line announcing the literal, the literal itself, then the rest.
	encoded := c.Encode(cmd)
	frags := encoded.Fragments()
	if len(frags) != 3 {
		t.Fatalf("expected 3 fragments, got %d", len(frags))
	}
	if frags[0].Kind != imapwire.FragmentLine || !bytes.Equal(frags[0].Data, []byte("A1 LOGIN {5}\r\n")) {
		t.Fatalf("fragment 0: %+v", frags[0])
	}
	if frags[1].Kind != imapwire.FragmentLiteral || !bytes.Equal(frags[1].Data, []byte("ABCDE")) ||
		frags[1].Mode != imap.LiteralModeSync {
		t.Fatalf("fragment 1: %+v", frags[1])
	}
	if frags[2].Kind != imapwire.FragmentLine || !bytes.Equal(frags[2].Data, []byte(" EFGIJ\r\n")) {
		t.Fatalf("fragment 2: %+v", frags[2])
	}
}

func TestCommandAppendRoundTrip(t *testing.T) {
	c := NewCommandCodec(Options{})
	wire := "A3 APPEND saved (\\Seen) \"17-Jul-1996 02:44:25 -0700\" {10}\r\n0123456789\r\n"
	cmd := roundTripCommand(t, c, wire)
	app, ok := cmd.Body.(imap.AppendCmd)
	if !ok {
		t.Fatalf("expected AppendCmd, got %T", cmd.Body)
	}
	if len(app.Flags) != 1 || app.Date == nil || string(app.Message.Bytes()) != "0123456789" {
		t.Fatalf("unexpected append: %+v", app)
	}
}

func TestCommandAppendNonSyncLiteral(t *testing.T) {
	c := NewCommandCodec(Options{})
	cmd := imap.Command{
		Tag:  imap.UnvalidatedTag([]byte("A4")),
		Body: imap.NewAppendCmd(imap.MailboxInbox(), nil, nil, imap.NewLiteral([]byte("ABCDE"), imap.LiteralModeNonSync)),
	}
	frags := c.Encode(cmd).Fragments()
	if len(frags) != 3 {
		t.Fatalf("expected 3 fragments, got %d", len(frags))
	}
	if !bytes.HasSuffix(frags[0].Data, []byte("{5+}\r\n")) {
		t.Fatalf("announcing line must end with {5+}: %q", frags[0].Data)
	}
	if frags[1].Mode != imap.LiteralModeNonSync {
		t.Fatalf("literal fragment must carry NonSync, got %v", frags[1].Mode)
	}
}

func TestCommandAppendBinaryLiteral8(t *testing.T) {
	c := NewCommandCodec(Options{})
	wire := "A5 APPEND INBOX ~{4}\r\n\x00\x01\x02\x03\r\n"
	cmd := roundTripCommand(t, c, wire)
	app := cmd.Body.(imap.AppendCmd)
	if !app.Message.IsBinary() {
		t.Fatal("expected a binary Literal8 message")
	}
}

func TestCommandIDEmptyToNilQuirk(t *testing.T) {
	// A nil field list is the NIL wire form; an empty non-nil list is
	// the "()" form, which the quirk folds to NIL as well.
	nilCmd := imap.Command{Tag: imap.UnvalidatedTag([]byte("A1")), Body: imap.NewIDCmd(nil)}
	emptyCmd := imap.Command{Tag: imap.UnvalidatedTag([]byte("A1")), Body: imap.NewIDCmd([]imap.IDField{})}

	strict := NewCommandCodec(Options{})
	if got := strict.Encode(nilCmd).Dump(); !bytes.Equal(got, []byte("A1 ID NIL\r\n")) {
		t.Fatalf("strict nil ID = %q", got)
	}
	if got := strict.Encode(emptyCmd).Dump(); !bytes.Equal(got, []byte("A1 ID ()\r\n")) {
		t.Fatalf("strict empty ID = %q", got)
	}

	lenient := NewCommandCodec(Options{Quirks: imap.Quirks{IDEmptyToNil: true}})
	if got := lenient.Encode(emptyCmd).Dump(); !bytes.Equal(got, []byte("A1 ID NIL\r\n")) {
		t.Fatalf("quirked empty ID = %q", got)
	}

	// Both wire spellings round-trip under the strict codec.
	roundTripCommand(t, strict, "A2 ID ()\r\n")
	roundTripCommand(t, strict, "A3 ID NIL\r\n")
}

func TestCommandDecodeErrors(t *testing.T) {
	c := NewCommandCodec(Options{})
	for _, wire := range []string{
		"\r\n",
		"A1\r\n",
		"A1 BOGUS\r\n",
		"A+1 NOOP\r\n",
		"A1 LOGIN joe\r\n",
		"A1 FETCH 0 UID\r\n",
		"A1 STORE 1 FLAGS (\\Recent)\r\n",
		"A1 NOOP",
	} {
		if _, _, err := c.Decode([]byte(wire)); err == nil {
			t.Errorf("decode %q should fail", wire)
		}
	}
}

func TestCommandLiteralNeedsMoreBytes(t *testing.T) {
	c := NewCommandCodec(Options{})
	_, _, err := c.Decode([]byte("A1 LOGIN {5}\r\nABC"))
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T (%v)", err, err)
	}
	if perr.Kind != ParseErrorLiteral || perr.Length != 5 {
		t.Fatalf("expected a literal error carrying the announced length, got %+v", perr)
	}
}

func TestCommandCRLFRelaxedQuirk(t *testing.T) {
	strict := NewCommandCodec(Options{})
	if _, _, err := strict.Decode([]byte("A1 NOOP\n")); err == nil {
		t.Fatal("bare LF must fail without the quirk")
	}
	relaxed := NewCommandCodec(Options{Quirks: imap.Quirks{CRLFRelaxed: true}})
	if _, _, err := relaxed.Decode([]byte("A1 NOOP\n")); err != nil {
		t.Fatalf("bare LF should pass with the quirk: %v", err)
	}
}

func TestSearchKeyRecursionLimit(t *testing.T) {
	c := NewCommandCodec(Options{})
	input := append([]byte("A1 SEARCH "), bytes.Repeat([]byte("("), 1_000_000)...)
	_, _, err := c.Decode(input)
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != ParseErrorRecursionLimitExceeded {
		t.Fatalf("expected recursion limit error, got %v", err)
	}
}

func TestSearchKeyDeepButWithinLimit(t *testing.T) {
	c := NewCommandCodec(Options{})
	// Seven nested NOTs stay inside the default budget of eight.
	roundTripCommand(t, c, "A1 SEARCH NOT NOT NOT NOT NOT NOT NOT SEEN\r\n")
}
