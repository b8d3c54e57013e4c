// Package codec is the grammar engine: it turns complete message
// buffers (as assembled by the fragment package) into typed imap
// values, and typed imap values into imapwire-encoded fragment
// sequences.
//
// Each direction is exposed through a small Codec handle per message
// kind (GreetingCodec, CommandCodec, ResponseCodec,
// AuthenticateDataCodec, IdleDoneCodec) rather than one do-everything
// parser, since which kind of message to expect next is a question
// only the caller's connection state can answer.
package codec
