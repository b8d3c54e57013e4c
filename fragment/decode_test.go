package fragment

import (
	"bytes"
	"errors"
	"testing"

	"github.com/nugget/imapwire/codec"
	"github.com/nugget/imapwire/imap"
)

func drain(t *testing.T, f *Fragmentizer) {
	t.Helper()
	for !f.IsMessageComplete() {
		if _, ok := f.Progress(); !ok {
			t.Fatal("ran out of input before the message completed")
		}
	}
}

func TestDecodeMessageCommand(t *testing.T) {
	f := WithoutMaxMessageSize()
	f.EnqueueBytes([]byte("A1 LOGIN {5}\r\nABCDE EFGIJ\r\n"))
	drain(t, f)

	cmd, err := DecodeMessage[imap.Command](f, codec.NewCommandCodec(codec.Options{}))
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Tag.String() != "A1" {
		t.Fatalf("tag = %q", cmd.Tag.String())
	}
	if _, ok := cmd.Body.(imap.LoginCmd); !ok {
		t.Fatalf("body = %T", cmd.Body)
	}
}

func TestDecodeMessageTooLong(t *testing.T) {
	f := New(17)
	f.EnqueueBytes([]byte("A2 LOGIN ABCDE EFGIJ\r\n"))
	drain(t, f)

	if !f.IsMaxMessageSizeExceeded() {
		t.Fatal("expected the size limit to be exceeded")
	}
	_, err := DecodeMessage[imap.Command](f, codec.NewCommandCodec(codec.Options{}))
	var derr *DecodeMessageError[imap.Command]
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DecodeMessageError, got %T", err)
	}
	if derr.Kind != MessageTooLong {
		t.Fatalf("kind = %v", derr.Kind)
	}
	if !bytes.Equal(derr.Initial, []byte("A2 LOGIN ABCDE EF")) {
		t.Fatalf("initial = %q", derr.Initial)
	}

	// The tag is still recoverable for a tagged BAD reply.
	tag, ok := f.DecodeTag()
	if !ok || tag.String() != "A2" {
		t.Fatalf("tag = %v %v", tag, ok)
	}
}

func TestDecodeMessageFailure(t *testing.T) {
	f := WithoutMaxMessageSize()
	f.EnqueueBytes([]byte("A3 BOGUS stuff\r\n"))
	drain(t, f)

	_, err := DecodeMessage[imap.Command](f, codec.NewCommandCodec(codec.Options{}))
	var derr *DecodeMessageError[imap.Command]
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DecodeMessageError, got %T", err)
	}
	if derr.Kind != DecodingFailure {
		t.Fatalf("kind = %v", derr.Kind)
	}
	var perr *codec.ParseError
	if !errors.As(derr.Err, &perr) {
		t.Fatalf("expected wrapped *codec.ParseError, got %T", derr.Err)
	}
}

func TestDecodeMessageMaxSizeZero(t *testing.T) {
	// Everything truncates but fragmentation still finds boundaries.
	f := New(0)
	f.EnqueueBytes([]byte("A1 NOOP\r\nA2 NOOP\r\n"))

	drain(t, f)
	if len(f.MessageBytes()) != 0 || !f.IsMaxMessageSizeExceeded() {
		t.Fatalf("message bytes = %q", f.MessageBytes())
	}

	if _, ok := f.Progress(); !ok {
		t.Fatal("expected the second message to fragment")
	}
	if !f.IsMessageComplete() {
		t.Fatal("expected the second message to complete")
	}
}
