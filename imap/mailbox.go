package imap

// Mailbox is either the case-insensitive singleton INBOX or any other
// mailbox name carried as an AString. INBOX comparison is
// case-insensitive by RFC 3501 mandate; every other mailbox name
// compares byte-exact.
type Mailbox struct {
	other   AString
	isInbox bool
}

// MailboxInbox is the canonical INBOX mailbox.
func MailboxInbox() Mailbox { return Mailbox{isInbox: true} }

// MailboxFromAString wraps name as a Mailbox. If name equals "INBOX"
// ignoring ASCII case, the result is the INBOX singleton regardless of
// how the caller wrote it, matching RFC 3501 section 5.1.
func MailboxFromAString(name AString) Mailbox {
	if asciiEqualFoldString(name.String(), "INBOX") {
		return MailboxInbox()
	}
	return Mailbox{other: name}
}

func asciiEqualFoldString(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if asciiLower(a[i]) != asciiLower(b[i]) {
			return false
		}
	}
	return true
}

// IsInbox reports whether m is the INBOX singleton.
func (m Mailbox) IsInbox() bool { return m.isInbox }

// Other returns the wrapped AString and true for a non-INBOX mailbox,
// or the zero value and false for INBOX.
func (m Mailbox) Other() (AString, bool) {
	if m.isInbox {
		return AString{}, false
	}
	return m.other, true
}

// String renders the mailbox name as it should compare: "INBOX" for
// the singleton, otherwise the wrapped name's logical content.
func (m Mailbox) String() string {
	if m.isInbox {
		return "INBOX"
	}
	return m.other.String()
}

// Equal compares two mailboxes per RFC 3501 section 5.1: INBOX
// against anything spelling INBOX case-insensitively is equal; all
// other comparisons are byte-exact.
func (m Mailbox) Equal(o Mailbox) bool {
	if m.isInbox || o.isInbox {
		return asciiEqualFoldString(m.String(), o.String())
	}
	return m.other.String() == o.other.String()
}

func (m Mailbox) IntoOwned() Mailbox {
	if m.isInbox {
		return m
	}
	return Mailbox{other: m.other.IntoOwned()}
}
