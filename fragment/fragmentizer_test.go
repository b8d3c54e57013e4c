package fragment

import (
	"bytes"
	"testing"

	"github.com/nugget/imapwire/imap"
)

func TestProgressNothing(t *testing.T) {
	f := WithoutMaxMessageSize()

	if _, ok := f.Progress(); ok {
		t.Fatal("expected no fragment")
	}
	if len(f.MessageBytes()) != 0 {
		t.Fatal("expected empty message bytes")
	}
	if f.IsMessageComplete() {
		t.Fatal("expected incomplete message")
	}

	f.EnqueueBytes(nil)
	if _, ok := f.Progress(); ok {
		t.Fatal("expected no fragment after enqueuing nothing")
	}
}

func TestProgressSingleMessage(t *testing.T) {
	f := WithoutMaxMessageSize()
	f.EnqueueBytes([]byte("* OK ...\r\n"))

	frag, ok := f.Progress()
	if !ok {
		t.Fatal("expected a fragment")
	}
	start, end := frag.Range()
	if start != 0 || end != 10 {
		t.Fatalf("got range %d..%d", start, end)
	}
	if !bytes.Equal(f.FragmentBytes(frag), []byte("* OK ...\r\n")) {
		t.Fatal("unexpected fragment bytes")
	}
	if !f.IsMessageComplete() {
		t.Fatal("expected message complete")
	}

	if _, ok := f.Progress(); ok {
		t.Fatal("expected no fragment for the next (empty) message")
	}
}

func TestProgressMultipleMessages(t *testing.T) {
	f := WithoutMaxMessageSize()
	f.EnqueueBytes([]byte("A1 OK ...\r\n"))
	f.EnqueueBytes([]byte("A2 BAD ...\r\n"))

	frag, ok := f.Progress()
	if !ok || !bytes.Equal(f.FragmentBytes(frag), []byte("A1 OK ...\r\n")) {
		t.Fatal("unexpected first message")
	}
	if !f.IsMessageComplete() {
		t.Fatal("expected first message complete")
	}

	frag, ok = f.Progress()
	if !ok || !bytes.Equal(f.FragmentBytes(frag), []byte("A2 BAD ...\r\n")) {
		t.Fatal("unexpected second message")
	}
	if !f.IsMessageComplete() {
		t.Fatal("expected second message complete")
	}
}

func TestProgressMultipleMessagesWithLF(t *testing.T) {
	f := WithoutMaxMessageSize()
	f.EnqueueBytes([]byte("A1 NOOP\n"))
	f.EnqueueBytes([]byte("A2 LOGIN {5}\n"))
	f.EnqueueBytes([]byte("ABCDE"))
	f.EnqueueBytes([]byte(" EFGIJ\n"))

	frag, ok := f.Progress()
	if !ok || !bytes.Equal(f.FragmentBytes(frag), []byte("A1 NOOP\n")) {
		t.Fatal("unexpected first line")
	}
	if frag.Ending() != LineEndingLF {
		t.Fatal("expected LF ending")
	}
	if !f.IsMessageComplete() {
		t.Fatal("expected message complete")
	}

	frag, ok = f.Progress()
	if !ok {
		t.Fatal("expected second line")
	}
	ann, hasAnn := frag.Announcement()
	if !hasAnn || ann.Mode != imap.LiteralModeSync || ann.Length != 5 {
		t.Fatalf("expected sync literal announcement of length 5, got %+v", ann)
	}
	if f.IsMessageComplete() {
		t.Fatal("expected message not yet complete")
	}

	frag, ok = f.Progress()
	if !ok || frag.Kind() != FragmentLiteral {
		t.Fatal("expected literal fragment")
	}
	if !bytes.Equal(f.FragmentBytes(frag), []byte("ABCDE")) {
		t.Fatal("unexpected literal bytes")
	}

	frag, ok = f.Progress()
	if !ok || !bytes.Equal(f.FragmentBytes(frag), []byte(" EFGIJ\n")) {
		t.Fatal("unexpected trailing line")
	}
	if !f.IsMessageComplete() {
		t.Fatal("expected message complete")
	}
}

func TestProgressMessageWithMultipleLiterals(t *testing.T) {
	f := WithoutMaxMessageSize()
	f.EnqueueBytes([]byte("A1 LOGIN {5}\r\n"))
	f.EnqueueBytes([]byte("ABCDE"))
	f.EnqueueBytes([]byte(" {5}\r\n"))
	f.EnqueueBytes([]byte("FGHIJ"))
	f.EnqueueBytes([]byte("\r\n"))

	expect := func(want []byte, wantComplete bool) {
		t.Helper()
		frag, ok := f.Progress()
		if !ok {
			t.Fatalf("expected fragment for %q", want)
		}
		if !bytes.Equal(f.FragmentBytes(frag), want) {
			t.Fatalf("got %q want %q", f.FragmentBytes(frag), want)
		}
		if f.IsMessageComplete() != wantComplete {
			t.Fatalf("complete=%v want %v after %q", f.IsMessageComplete(), wantComplete, want)
		}
	}

	expect([]byte("A1 LOGIN {5}\r\n"), false)
	expect([]byte("ABCDE"), false)
	expect([]byte(" {5}\r\n"), false)
	expect([]byte("FGHIJ"), false)
	expect([]byte("\r\n"), true)
}

func TestSkipMessageAfterLiteralAnnouncement(t *testing.T) {
	f := WithoutMaxMessageSize()
	f.EnqueueBytes([]byte("A1 LOGIN {5}\r\n"))
	f.EnqueueBytes([]byte("A2 NOOP\r\n"))

	frag, ok := f.Progress()
	if !ok || !bytes.Equal(f.FragmentBytes(frag), []byte("A1 LOGIN {5}\r\n")) {
		t.Fatal("unexpected first line")
	}
	if f.IsMessageComplete() {
		t.Fatal("message should await a literal")
	}

	f.SkipMessage()

	frag, ok = f.Progress()
	if !ok || !bytes.Equal(f.FragmentBytes(frag), []byte("A2 NOOP\r\n")) {
		t.Fatal("expected the skip to resynchronize onto the next line")
	}
	if !f.IsMessageComplete() {
		t.Fatal("expected message complete after skip")
	}
}

func TestProgressByteByByte(t *testing.T) {
	f := WithoutMaxMessageSize()
	var queue []byte
	queue = append(queue, []byte("A1 LOGIN {5}\r\n")...)
	queue = append(queue, []byte("ABCDE")...)
	queue = append(queue, []byte(" FGHIJ\r\n")...)

	for i := 0; i < 14; i++ {
		if _, ok := f.Progress(); ok {
			t.Fatal("expected no fragment before the line is complete")
		}
		f.EnqueueBytes(queue[:1])
		queue = queue[1:]
	}

	frag, ok := f.Progress()
	if !ok || !bytes.Equal(f.FragmentBytes(frag), []byte("A1 LOGIN {5}\r\n")) {
		t.Fatal("unexpected line")
	}

	for i := 0; i < 5; i++ {
		if _, ok := f.Progress(); ok {
			t.Fatal("expected no fragment before the literal is complete")
		}
		f.EnqueueBytes(queue[:1])
		queue = queue[1:]
	}

	frag, ok = f.Progress()
	if !ok || !bytes.Equal(f.FragmentBytes(frag), []byte("ABCDE")) {
		t.Fatal("unexpected literal")
	}
}

func TestMultipleMessagesLongerThanMaxSize(t *testing.T) {
	f := New(17)
	f.EnqueueBytes([]byte("A1 NOOP\r\n"))
	f.EnqueueBytes([]byte("A2 LOGIN ABCDE EFGIJ\r\n"))
	f.EnqueueBytes([]byte("A3 LOGIN {5}\r\n"))
	f.EnqueueBytes([]byte("ABCDE"))
	f.EnqueueBytes([]byte(" EFGIJ\r\n"))
	f.EnqueueBytes([]byte("A4 LOGIN A B\r\n"))

	frag, ok := f.Progress()
	if !ok || !bytes.Equal(f.FragmentBytes(frag), []byte("A1 NOOP\r\n")) {
		t.Fatal("unexpected first message")
	}
	if f.IsMaxMessageSizeExceeded() {
		t.Fatal("first message should fit")
	}

	frag, ok = f.Progress()
	if !ok || !bytes.Equal(f.FragmentBytes(frag), []byte("A2 LOGIN ABCDE EF")) {
		t.Fatalf("expected truncated second message, got %q", f.FragmentBytes(frag))
	}
	if !f.IsMaxMessageSizeExceeded() {
		t.Fatal("second message should exceed the limit")
	}

	frag, ok = f.Progress()
	if !ok {
		t.Fatal("expected the third message's announcing line")
	}
	if !bytes.Equal(f.FragmentBytes(frag), []byte("A3 LOGIN {5}\r\n")) {
		t.Fatal("unexpected third message line")
	}
	if f.IsMaxMessageSizeExceeded() {
		t.Fatal("line alone should fit within 17 bytes")
	}

	frag, ok = f.Progress()
	if !ok || !bytes.Equal(f.FragmentBytes(frag), []byte("ABC")) {
		t.Fatalf("expected truncated literal, got %q", f.FragmentBytes(frag))
	}
	if !f.IsMaxMessageSizeExceeded() {
		t.Fatal("message should now exceed the limit")
	}

	frag, ok = f.Progress()
	if !ok || !f.IsMessageComplete() {
		t.Fatal("expected trailing line to complete the third message")
	}

	frag, ok = f.Progress()
	if !ok || !bytes.Equal(f.FragmentBytes(frag), []byte("A4 LOGIN A B\r\n")) {
		t.Fatal("fourth message should fragment cleanly after the oversized one")
	}
	if f.IsMaxMessageSizeExceeded() {
		t.Fatal("fourth message should fit")
	}
}

func TestDecodeTag(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"A1 NOOP\r\n", "A1", true},
		{"A1 NOOP", "A1", true},
		{"A1 ", "A1", true},
		{"A1", "", false},
		{"A1\r\n", "", false},
		{" \r\n", "", false},
		{"", "", false},
		{" A1 NOOP\r\n", "", false},
	}
	for _, c := range cases {
		tag, ok := decodeTag([]byte(c.in))
		if ok != c.ok {
			t.Fatalf("decodeTag(%q): ok=%v want %v", c.in, ok, c.ok)
		}
		if ok && tag.String() != c.want {
			t.Fatalf("decodeTag(%q) = %q want %q", c.in, tag.String(), c.want)
		}
	}
}

func TestLineParserExamples(t *testing.T) {
	type want struct {
		n    int
		ann  *LiteralAnnouncement
		end  LineEnding
	}
	cases := []struct {
		in   string
		want *want
	}{
		{"", nil},
		{"foo", nil},
		{"\n", &want{1, nil, LineEndingLF}},
		{"\r\n", &want{2, nil, LineEndingCRLF}},
		{"foo\n", &want{4, nil, LineEndingLF}},
		{"foo\r\n", &want{5, nil, LineEndingCRLF}},
		{"{1}\r\n", &want{5, &LiteralAnnouncement{Mode: imap.LiteralModeSync, Length: 1}, LineEndingCRLF}},
		{"{1}\n", &want{4, &LiteralAnnouncement{Mode: imap.LiteralModeSync, Length: 1}, LineEndingLF}},
		{"foo {1}\r\n", &want{9, &LiteralAnnouncement{Mode: imap.LiteralModeSync, Length: 1}, LineEndingCRLF}},
		{"foo {2} {1}\r\n", &want{13, &LiteralAnnouncement{Mode: imap.LiteralModeSync, Length: 1}, LineEndingCRLF}},
		{"foo {1} \r\n", &want{10, nil, LineEndingCRLF}},
		{"foo {1} foo\r\n", &want{13, nil, LineEndingCRLF}},
		{"foo {1\r\n", &want{8, nil, LineEndingCRLF}},
		{"foo 1}\r\n", &want{8, nil, LineEndingCRLF}},
		{"foo { 1}\r\n", &want{10, nil, LineEndingCRLF}},
		{"foo {{1}\r\n", &want{10, &LiteralAnnouncement{Mode: imap.LiteralModeSync, Length: 1}, LineEndingCRLF}},
		{"foo {42}\r\n", &want{10, &LiteralAnnouncement{Mode: imap.LiteralModeSync, Length: 42}, LineEndingCRLF}},
		{"foo {42+}\r\n", &want{11, &LiteralAnnouncement{Mode: imap.LiteralModeNonSync, Length: 42}, LineEndingCRLF}},
		{"foo +{42}\r\n", &want{11, &LiteralAnnouncement{Mode: imap.LiteralModeSync, Length: 42}, LineEndingCRLF}},
		{"foo {+}\r\n", &want{9, nil, LineEndingCRLF}},
		{"foo {42++}\r\n", &want{12, nil, LineEndingCRLF}},
		{"foo {-42}\r\n", &want{11, nil, LineEndingCRLF}},
		{"foo {42-}\r\n", &want{11, nil, LineEndingCRLF}},
		{"foo {4294967295}\r\n", &want{18, &LiteralAnnouncement{Mode: imap.LiteralModeSync, Length: 4294967295}, LineEndingCRLF}},
		{"foo {4294967296}\r\n", &want{18, nil, LineEndingCRLF}},
	}

	for _, c := range cases {
		p := &lineParser{state: latestByteState{kind: lbOther}}
		n, frag, ok := p.parse([]byte(c.in))
		if c.want == nil {
			if ok {
				t.Fatalf("%q: expected no line, got one", c.in)
			}
			if n != len(c.in) {
				t.Fatalf("%q: consumed %d want %d", c.in, n, len(c.in))
			}
			continue
		}
		if !ok {
			t.Fatalf("%q: expected a line", c.in)
		}
		if n != c.want.n {
			t.Fatalf("%q: consumed %d want %d", c.in, n, c.want.n)
		}
		ann, hasAnn := frag.Announcement()
		if (c.want.ann == nil) != !hasAnn {
			t.Fatalf("%q: announcement presence mismatch", c.in)
		}
		if c.want.ann != nil {
			if ann.Mode != c.want.ann.Mode || ann.Length != c.want.ann.Length {
				t.Fatalf("%q: announcement %+v want %+v", c.in, ann, *c.want.ann)
			}
		}
		if frag.Ending() != c.want.end {
			t.Fatalf("%q: ending %v want %v", c.in, frag.Ending(), c.want.end)
		}
	}
}
