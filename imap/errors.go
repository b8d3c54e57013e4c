package imap

import "fmt"

// ValidationError reports that a byte sequence does not satisfy the
// lexical rules of the string class it was offered to. It is returned
// by every validating constructor in this package (the Try* family).
type ValidationError struct {
	// Class names the string class the constructor was building
	// (e.g. "Atom", "Tag", "QuotedChar").
	Class string

	// Input is the offending input, preserved for diagnostics.
	Input []byte

	// Pos is the byte offset of the first illegal character, or -1
	// if the defect is structural (e.g. empty input) rather than a
	// specific character.
	Pos int

	// Reason is a short human-readable explanation.
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("imap: invalid %s at byte %d: %s (input %q)", e.Class, e.Pos, e.Reason, e.Input)
	}
	return fmt.Sprintf("imap: invalid %s: %s (input %q)", e.Class, e.Reason, e.Input)
}

func errAt(class string, input []byte, pos int, reason string) *ValidationError {
	return &ValidationError{Class: class, Input: input, Pos: pos, Reason: reason}
}

func errStruct(class string, input []byte, reason string) *ValidationError {
	return &ValidationError{Class: class, Input: input, Pos: -1, Reason: reason}
}
