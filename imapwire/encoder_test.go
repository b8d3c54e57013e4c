package imapwire

import (
	"bytes"
	"testing"

	"github.com/nugget/imapwire/imap"
)

func TestEncoderPlainLine(t *testing.T) {
	e := NewEncoder()
	encoded := e.Atom("A1").SP().Atom("NOOP").CRLF().Finish()

	frags := encoded.Fragments()
	if len(frags) != 1 {
		t.Fatalf("expected one fragment, got %d", len(frags))
	}
	if frags[0].Kind != FragmentLine || !bytes.Equal(frags[0].Data, []byte("A1 NOOP\r\n")) {
		t.Fatalf("unexpected fragment: %+v", frags[0])
	}
}

func TestEncoderLiteralSplitsLine(t *testing.T) {
	e := NewEncoder()
	encoded := e.Atom("A1").SP().Atom("LOGIN").SP().
		Literal([]byte("ABCDE"), imap.LiteralModeSync).SP().
		Quoted([]byte("pass")).CRLF().Finish()

	frags := encoded.Fragments()
	if len(frags) != 3 {
		t.Fatalf("expected three fragments, got %d", len(frags))
	}
	if !bytes.Equal(frags[0].Data, []byte("A1 LOGIN {5}\r\n")) {
		t.Fatalf("announcing line = %q", frags[0].Data)
	}
	if frags[1].Kind != FragmentLiteral || frags[1].Mode != imap.LiteralModeSync {
		t.Fatalf("literal fragment = %+v", frags[1])
	}
	if !bytes.Equal(frags[2].Data, []byte(" \"pass\"\r\n")) {
		t.Fatalf("trailing line = %q", frags[2].Data)
	}

	// Dump is exactly the fragment concatenation.
	want := []byte("A1 LOGIN {5}\r\nABCDE \"pass\"\r\n")
	if !bytes.Equal(encoded.Dump(), want) {
		t.Fatalf("dump = %q", encoded.Dump())
	}
}

func TestEncoderNonSyncAndBinaryLiterals(t *testing.T) {
	e := NewEncoder()
	encoded := e.Literal([]byte("abc"), imap.LiteralModeNonSync).CRLF().Finish()
	if !bytes.HasSuffix(encoded.Fragments()[0].Data, []byte("{3+}\r\n")) {
		t.Fatalf("non-sync announcement = %q", encoded.Fragments()[0].Data)
	}

	e = NewEncoder()
	encoded = e.Literal8([]byte("abc"), imap.LiteralModeSync).CRLF().Finish()
	if !bytes.HasSuffix(encoded.Fragments()[0].Data, []byte("~{3}\r\n")) {
		t.Fatalf("binary announcement = %q", encoded.Fragments()[0].Data)
	}
}

func TestEncoderQuotedEscaping(t *testing.T) {
	e := NewEncoder()
	encoded := e.Quoted([]byte(`a"b\c`)).CRLF().Finish()
	if !bytes.Equal(encoded.Dump(), []byte("\"a\\\"b\\\\c\"\r\n")) {
		t.Fatalf("dump = %q", encoded.Dump())
	}
}

func TestEncoderStringPicksNarrowestForm(t *testing.T) {
	e := NewEncoder()
	if got := e.String([]byte("hello")).CRLF().Finish().Dump(); !bytes.Equal(got, []byte("\"hello\"\r\n")) {
		t.Fatalf("safe content should be quoted: %q", got)
	}

	e = NewEncoder()
	got := e.String([]byte("line\r\nbreak")).CRLF().Finish().Dump()
	if !bytes.Equal(got, []byte("{11}\r\nline\r\nbreak\r\n")) {
		t.Fatalf("CRLF content must fall back to a literal: %q", got)
	}
}

func TestEncodedIterator(t *testing.T) {
	e := NewEncoder()
	encoded := e.Atom("x").Literal([]byte("y"), imap.LiteralModeSync).CRLF().Finish()

	var kinds []FragmentKind
	for {
		f, ok := encoded.Next()
		if !ok {
			break
		}
		kinds = append(kinds, f.Kind)
	}
	want := []FragmentKind{FragmentLine, FragmentLiteral, FragmentLine}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
}
