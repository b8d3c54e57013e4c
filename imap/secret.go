package imap

// Secret wraps a value (typically a password or a SASL initial
// response) solely to suppress it from default debug formatting. It
// imposes no encryption and no access control: encoding a Secret
// reveals the wrapped value on the wire normally, and the value is
// still copied freely in memory. Its only job is to stop a stray
// fmt.Printf("%+v", cmd) from leaking a password into a log file.
type Secret[T any] struct {
	value T
}

// NewSecret wraps v.
func NewSecret[T any](v T) Secret[T] { return Secret[T]{value: v} }

// Expose returns the wrapped value. The name is deliberately loud:
// callers should think before passing the result to a logger.
func (s Secret[T]) Expose() T { return s.value }

// String implements fmt.Stringer with a redacted placeholder so that
// %v and %s formatting never print the wrapped value.
func (s Secret[T]) String() string { return "Secret(...)" }

// GoString implements fmt.GoStringer so that %#v formatting is
// likewise redacted.
func (s Secret[T]) GoString() string { return "imap.Secret(...)" }
