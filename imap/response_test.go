package imap

import (
	"fmt"
	"strings"
	"testing"
)

func text(t *testing.T, s string) Text {
	t.Helper()
	v, err := TryText([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestContinuationBasicRefusesBase64(t *testing.T) {
	// "aGVsbG8=" is valid base64; without a code the wire form would
	// re-parse as a Base64 continuation.
	if _, err := TryContinuationRequestBasic(nil, text(t, "aGVsbG8=")); err == nil {
		t.Fatal("expected base64-shaped text to be refused without a code")
	}

	// With a code the bracket disambiguates, so the same text is fine.
	code := CodeReadWriteCode()
	c, err := TryContinuationRequestBasic(&code, text(t, "aGVsbG8="))
	if err != nil {
		t.Fatalf("coded continuation should accept base64-shaped text: %v", err)
	}
	if c.Kind() != ContinuationBasic {
		t.Fatal("expected Basic kind")
	}
}

func TestContinuationBasicRefusesBracket(t *testing.T) {
	if _, err := TryContinuationRequestBasic(nil, UnvalidatedText([]byte("[hm] hi"))); err == nil {
		t.Fatal("expected leading [ to be refused without a code")
	}
}

func TestContinuationBasicAcceptsPlainText(t *testing.T) {
	c, err := TryContinuationRequestBasic(nil, text(t, "idling"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Kind() != ContinuationBasic || c.Text().String() != "idling" {
		t.Fatalf("unexpected continuation: %+v", c)
	}
}

func TestStatusTextBracketNeedsCode(t *testing.T) {
	if _, err := StatusUntagged(StatusOK, nil, UnvalidatedText([]byte("[odd] text"))); err == nil {
		t.Fatal("text starting with [ must be refused without a code")
	}
	code := CodeAlertCode()
	if _, err := StatusUntagged(StatusOK, &code, UnvalidatedText([]byte("[odd] text"))); err != nil {
		t.Fatalf("with a code the text is unambiguous: %v", err)
	}
	if _, err := TryGreeting(GreetingOK, nil, UnvalidatedText([]byte("[odd]"))); err == nil {
		t.Fatal("greeting text starting with [ must be refused without a code")
	}
}

func TestStatusByeNeverTagged(t *testing.T) {
	tag, err := TryTag([]byte("A1"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := StatusTagged(tag, StatusBye, nil, text(t, "bye")); err == nil {
		t.Fatal("a tagged BYE must be refused")
	}
	if _, err := StatusUntagged(StatusBye, nil, text(t, "bye")); err == nil {
		t.Fatal("StatusUntagged must route BYE to StatusByeOf")
	}
	s, err := StatusByeOf(nil, text(t, "bye"))
	if err != nil {
		t.Fatal(err)
	}
	if s.IsTagged() || s.Kind() != StatusBye {
		t.Fatalf("unexpected BYE status: %+v", s)
	}
}

func TestSecretRedactsDebugOutput(t *testing.T) {
	password, err := TryAStringAsAtomOrQuoted([]byte("hunter2"))
	if err != nil {
		t.Fatal(err)
	}
	username, err := TryAStringAsAtomOrQuoted([]byte("joe"))
	if err != nil {
		t.Fatal(err)
	}
	cmd := NewLoginCmd(username, password)

	for _, format := range []string{"%v", "%+v", "%#v", "%s"} {
		out := fmt.Sprintf(format, cmd.Password)
		if strings.Contains(out, "hunter2") {
			t.Errorf("format %s leaked the password: %s", format, out)
		}
	}
	if string(cmd.Password.Expose().String()) != "hunter2" {
		t.Error("Expose must still return the wrapped value")
	}
}
