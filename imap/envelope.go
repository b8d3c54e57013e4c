package imap

// Address is one parsed RFC 2822 address as carried in an Envelope's
// address lists: a display name, an "at-domain-list" source route
// (long obsolete but still part of the wire grammar), a mailbox name,
// and a host. Each field is an NString; a group-start/end marker
// (RFC 2822 "group" syntax) is represented as an Address with Mailbox
// present and Host absent.
type Address struct {
	Name    NString
	ADL     NString
	Mailbox NString
	Host    NString
}

func (a Address) IntoOwned() Address {
	return Address{
		Name:    a.Name.IntoOwned(),
		ADL:     a.ADL.IntoOwned(),
		Mailbox: a.Mailbox.IntoOwned(),
		Host:    a.Host.IntoOwned(),
	}
}

// AddressList is a possibly-empty list of addresses. An empty list
// encodes as NIL on the wire; a non-empty list as a parenthesized
// sequence of addresses (not Vec1, because the empty case is
// meaningful and distinct from "absent" only in that it still encodes
// as NIL either way — see the encoder).
type AddressList struct {
	addrs []Address
}

func NewAddressList(addrs []Address) AddressList { return AddressList{addrs: addrs} }

func (l AddressList) Addresses() []Address { return l.addrs }
func (l AddressList) IsEmpty() bool         { return len(l.addrs) == 0 }

func (l AddressList) IntoOwned() AddressList {
	out := make([]Address, len(l.addrs))
	for i, a := range l.addrs {
		out[i] = a.IntoOwned()
	}
	return AddressList{addrs: out}
}

// Envelope is the parsed FETCH ENVELOPE structure: a message's Date
// and Subject headers, its five address lists, and the In-Reply-To
// and Message-ID headers.
type Envelope struct {
	Date       NString
	Subject    NString
	From       AddressList
	Sender     AddressList
	ReplyTo    AddressList
	To         AddressList
	CC         AddressList
	BCC        AddressList
	InReplyTo  NString
	MessageID  NString
}

func (e Envelope) IntoOwned() Envelope {
	return Envelope{
		Date:      e.Date.IntoOwned(),
		Subject:   e.Subject.IntoOwned(),
		From:      e.From.IntoOwned(),
		Sender:    e.Sender.IntoOwned(),
		ReplyTo:   e.ReplyTo.IntoOwned(),
		To:        e.To.IntoOwned(),
		CC:        e.CC.IntoOwned(),
		BCC:       e.BCC.IntoOwned(),
		InReplyTo: e.InReplyTo.IntoOwned(),
		MessageID: e.MessageID.IntoOwned(),
	}
}
