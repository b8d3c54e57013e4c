package transport

import (
	"bufio"
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/nugget/imapwire/imap"
)

func testConn(t *testing.T) (*Conn, net.Conn) {
	t.Helper()
	client, server := net.Pipe()
	t.Cleanup(func() {
		client.Close()
		server.Close()
	})
	conn, err := NewConn(client, Config{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return conn, server
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestReadResponse(t *testing.T) {
	conn, server := testConn(t)
	ctx := testContext(t)

	go func() {
		server.Write([]byte("* 23 EXISTS\r\n"))
	}()

	resp, err := conn.ReadResponse(ctx)
	if err != nil {
		t.Fatal(err)
	}
	data, ok := resp.Data()
	if !ok || data.Kind() != imap.DataExists || data.Number() != 23 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestWriteCommandSyncLiteralHandshake(t *testing.T) {
	conn, server := testConn(t)
	ctx := testContext(t)

	user := imap.AStringFromIString(imap.NewLiteral([]byte("ABCDE"), imap.LiteralModeSync))
	pass, err := imap.TryAStringAsAtomOrQuoted([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}
	cmd := imap.Command{
		Tag:  imap.UnvalidatedTag([]byte("A1")),
		Body: imap.NewLoginCmd(user, pass),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- conn.WriteCommand(ctx, cmd)
	}()

	br := bufio.NewReader(server)
	line, err := br.ReadString('\n')
	if err != nil {
		t.Fatal(err)
	}
	if line != "A1 LOGIN {5}\r\n" {
		t.Fatalf("announcing line = %q", line)
	}

	// The literal must not arrive before the continuation grant.
	select {
	case err := <-errCh:
		t.Fatalf("write finished before the continuation: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	if _, err := server.Write([]byte("+ go ahead\r\n")); err != nil {
		t.Fatal(err)
	}

	rest, err := br.ReadString('\n')
	if err != nil {
		t.Fatal(err)
	}
	if rest != "ABCDE secret\r\n" {
		t.Fatalf("literal and trailer = %q", rest)
	}
	if err := <-errCh; err != nil {
		t.Fatal(err)
	}
}

func TestWriteCommandRefusedLiteral(t *testing.T) {
	conn, server := testConn(t)
	ctx := testContext(t)

	user := imap.AStringFromIString(imap.NewLiteral([]byte("ABCDE"), imap.LiteralModeSync))
	pass, _ := imap.TryAStringAsAtomOrQuoted([]byte("secret"))
	cmd := imap.Command{
		Tag:  imap.UnvalidatedTag([]byte("A1")),
		Body: imap.NewLoginCmd(user, pass),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- conn.WriteCommand(ctx, cmd)
	}()

	br := bufio.NewReader(server)
	if _, err := br.ReadString('\n'); err != nil {
		t.Fatal(err)
	}
	// Refuse the literal with a tagged BAD instead of a continuation.
	if _, err := server.Write([]byte("A1 BAD no literals today\r\n")); err != nil {
		t.Fatal(err)
	}
	if err := <-errCh; err == nil {
		t.Fatal("expected the refused literal to abort the write")
	}
}

func TestReadCommandRecoversTagOnParseFailure(t *testing.T) {
	conn, server := testConn(t)
	ctx := testContext(t)

	go func() {
		server.Write([]byte("A9 BOGUS arg\r\n"))
	}()

	_, tag, err := conn.ReadCommand(ctx)
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if tag == nil || tag.String() != "A9" {
		t.Fatalf("tag = %v", tag)
	}
}

func TestWriteResponse(t *testing.T) {
	conn, server := testConn(t)
	ctx := testContext(t)

	status, err := imap.StatusUntagged(imap.StatusOK, nil, imap.UnvalidatedText([]byte("ready")))
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.WriteResponse(ctx, imap.ResponseOfStatus(status))
	}()

	buf := make([]byte, 64)
	n, err := server.Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf[:n], []byte("* OK ready\r\n")) {
		t.Fatalf("wire = %q", buf[:n])
	}
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}
