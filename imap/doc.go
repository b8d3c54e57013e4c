// Package imap is the typed, validated data model for IMAP4rev1 (RFC
// 3501) messages and the productions they are built from.
//
// Every string-like IMAP production has its own lexical class —
// atoms, quoted strings, literals, tags — and the classes are not
// interchangeable: an encoder must pick the narrowest representation
// a value fits, and a parser only accepts what the grammar permits in
// a given position. This package turns those classes into distinct Go
// types with validating constructors, so that a value built through
// them is guaranteed encodable without producing malformed IMAP: TryAtom
// refuses a space. The Unvalidated* constructors skip these checks;
// UnvalidatedAtom, for example, accepts any bytes.
//
// Parsed values may alias the byte buffer they were decoded from
// (see the fragment package); call IntoOwned on a value before it
// outlives that buffer.
package imap
