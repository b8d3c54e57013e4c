// Package transport demonstrates how a caller drives the codec over a
// real byte stream: reads feed the fragmentizer until a message
// completes, writes walk an encoded fragment sequence and pause
// before each synchronizing literal until the peer grants a
// continuation. It deliberately tracks no protocol state (no
// greeting/login/selected bookkeeping) — which codec to decode the
// next message with is the caller's choice.
package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/nugget/imapwire/codec"
	"github.com/nugget/imapwire/fragment"
	"github.com/nugget/imapwire/imap"
	"github.com/nugget/imapwire/imapwire"
	"github.com/nugget/imapwire/internal/config"
)

// Conn wraps a duplex byte stream with a fragmentizer on the read
// side and the literal synchronization handshake on the write side.
// All public methods are goroutine-safe; a single mutex serializes
// access because the underlying fragmentizer is single-owner.
type Conn struct {
	cfg    Config
	logger *slog.Logger

	mu sync.Mutex
	rw io.ReadWriter
	fz *fragment.Fragmentizer

	responses codec.ResponseCodec
	commands  codec.CommandCodec
}

// NewConn wraps rw. The configuration is defaulted and validated;
// a nil logger discards trace output.
func NewConn(rw io.ReadWriter, cfg Config, logger *slog.Logger) (*Conn, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("transport config: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	opts := codec.Options{Quirks: cfg.Quirks.ToQuirks()}
	return &Conn{
		cfg:       cfg,
		logger:    logger,
		rw:        rw,
		fz:        fragment.New(cfg.MaxMessageSize),
		responses: codec.NewResponseCodec(opts),
		commands:  codec.NewCommandCodec(opts),
	}, nil
}

// readMessageLocked drives the fragmentizer until the current message
// is complete, reading more bytes whenever Progress stalls. Caller
// must hold c.mu.
func (c *Conn) readMessageLocked(ctx context.Context) error {
	buf := make([]byte, c.cfg.ReadChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		frag, ok := c.fz.Progress()
		if !ok {
			n, err := c.rw.Read(buf)
			if n > 0 {
				c.fz.EnqueueBytes(buf[:n])
			}
			if err != nil {
				return fmt.Errorf("read: %w", err)
			}
			continue
		}
		start, end := frag.Range()
		c.logger.Log(ctx, config.LevelTrace, "fragment",
			"kind", frag.Kind(), "start", start, "end", end)
		if c.fz.IsMessageComplete() {
			return nil
		}
	}
}

// ReadResponse reads and decodes the peer's next response. On a parse
// failure the message is skipped so the stream stays synchronized,
// and the decode error is returned.
func (c *Conn) ReadResponse(ctx context.Context) (imap.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readResponseLocked(ctx)
}

func (c *Conn) readResponseLocked(ctx context.Context) (imap.Response, error) {
	if err := c.readMessageLocked(ctx); err != nil {
		return imap.Response{}, err
	}
	resp, err := fragment.DecodeMessage[imap.Response](c.fz, c.responses)
	if err != nil {
		return imap.Response{}, fmt.Errorf("decode response: %w", err)
	}
	return resp.IntoOwned(), nil
}

// ReadCommand reads and decodes the peer's next command (server side).
// If decoding fails, the tag — when one can be recovered — is
// returned alongside the error so the caller can answer with a tagged
// BAD.
func (c *Conn) ReadCommand(ctx context.Context) (imap.Command, *imap.Tag, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.readMessageLocked(ctx); err != nil {
		return imap.Command{}, nil, err
	}
	cmd, err := fragment.DecodeMessage[imap.Command](c.fz, c.commands)
	if err != nil {
		var tag *imap.Tag
		if t, ok := c.fz.DecodeTag(); ok {
			owned := t.IntoOwned()
			tag = &owned
		}
		return imap.Command{}, tag, fmt.Errorf("decode command: %w", err)
	}
	return cmd.IntoOwned(), nil, nil
}

// WriteCommand encodes cmd and writes its fragments, pausing before
// each synchronizing literal until the server grants a continuation.
// A non-continuation response received while waiting aborts the write
// and is returned as the error — per the protocol the server has
// rejected the command (typically a tagged NO/BAD refusing the
// literal).
func (c *Conn) WriteCommand(ctx context.Context, cmd imap.Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	encoded := c.commands.Encode(cmd)
	for {
		frag, ok := encoded.Next()
		if !ok {
			return nil
		}
		if frag.Kind == imapwire.FragmentLiteral && frag.Mode == imap.LiteralModeSync {
			c.logger.Log(ctx, config.LevelTrace, "awaiting continuation",
				"literal_bytes", len(frag.Data))
			resp, err := c.readResponseLocked(ctx)
			if err != nil {
				return err
			}
			if _, ok := resp.Continuation(); !ok {
				return fmt.Errorf("server refused literal: %v", resp.Kind())
			}
		}
		if _, err := c.rw.Write(frag.Data); err != nil {
			return fmt.Errorf("write: %w", err)
		}
		c.logger.Log(ctx, config.LevelTrace, "wrote fragment",
			"kind", frag.Kind, "bytes", len(frag.Data))
	}
}

// WriteResponse encodes resp and writes it (server side). Responses
// carry literals too (FETCH body sections), but a server never waits
// for a continuation — it owns the conversation while responding —
// so every fragment is written straight through.
func (c *Conn) WriteResponse(ctx context.Context, resp imap.Response) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	encoded := c.responses.Encode(resp)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		frag, ok := encoded.Next()
		if !ok {
			return nil
		}
		if _, err := c.rw.Write(frag.Data); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
}

// SkipMessage abandons the message currently being read. See
// fragment.Fragmentizer.SkipMessage for when this is safe.
func (c *Conn) SkipMessage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fz.SkipMessage()
}
