// Package imapwire provides the low-level building blocks for writing
// IMAP4rev1 wire bytes: a fluent Encoder that turns typed values into
// an ordered sequence of line and literal fragments, and a Decoder
// that reads the same primitives back out of a byte slice.
//
// The encoder never hands the caller a single flat byte slice. A
// command or response that contains a literal is, on the wire,
// actually several discrete writes — interrupted by a potential
// "+ OK" continuation for synchronizing literals — and collapsing that
// into one buffer would hide the handshake the transport has to drive.
// Encoded.Dump is provided for tests and logging, where the full
// concatenated bytes are what's wanted.
package imapwire
