// Package fragment splits a raw IMAP byte stream into line and literal
// fragments without attempting to parse IMAP grammar.
//
// Separating fragmentation from grammar parsing gives three things a
// single-pass parser cannot: malformed messages are discarded cleanly
// at a message boundary instead of potentially desynchronizing the
// stream, literal bytes are never mistaken for command or response
// text no matter what they contain, and the maximum amount of memory
// a peer can force the reader to allocate is bounded independently of
// how IMAP grammar is eventually parsed.
package fragment
