package imap

import "time"

// CommandBody is the tagged union over every IMAP client command this
// package knows how to represent. Each concrete type below implements
// it via the unexported commandBody marker, closing the union to this
// package — callers switch on a type assertion or a type switch, the
// idiomatic Go analogue of a sum type.
type CommandBody interface {
	commandBody()
	CommandName() string
}

// Command is {tag, body}: a complete client command line (plus any
// literal continuations its body requires).
type Command struct {
	Tag  Tag
	Body CommandBody
}

func (c Command) IntoOwned() Command {
	return Command{Tag: c.Tag.IntoOwned(), Body: c.Body}
}

type cmdBase struct{ name string }

func (c cmdBase) CommandName() string { return c.name }

// --- Commands requiring no state (6.1) ---

type CapabilityCmd struct{ cmdBase }

func NewCapabilityCmd() CapabilityCmd { return CapabilityCmd{cmdBase{"CAPABILITY"}} }
func (CapabilityCmd) commandBody()    {}

type NoopCmd struct{ cmdBase }

func NewNoopCmd() NoopCmd { return NoopCmd{cmdBase{"NOOP"}} }
func (NoopCmd) commandBody() {}

type LogoutCmd struct{ cmdBase }

func NewLogoutCmd() LogoutCmd { return LogoutCmd{cmdBase{"LOGOUT"}} }
func (LogoutCmd) commandBody() {}

// --- Not-authenticated state (6.2) ---

type StartTLSCmd struct{ cmdBase }

func NewStartTLSCmd() StartTLSCmd { return StartTLSCmd{cmdBase{"STARTTLS"}} }
func (StartTLSCmd) commandBody() {}

// AuthenticateCmd begins a SASL exchange. InitialResponse, when
// present, is sent via SASL-IR (RFC 4959) instead of waiting for the
// server's first challenge. This package carries SASL payloads
// without interpreting the mechanism's semantics.
type AuthenticateCmd struct {
	cmdBase
	Mechanism       Atom
	InitialResponse *Secret[[]byte]
}

func NewAuthenticateCmd(mechanism Atom, initialResponse *Secret[[]byte]) AuthenticateCmd {
	return AuthenticateCmd{cmdBase{"AUTHENTICATE"}, mechanism, initialResponse}
}
func (AuthenticateCmd) commandBody() {}

// LoginCmd is LOGIN username password. Both arguments are AString per
// the grammar; the password is wrapped in Secret to keep it out of
// default debug output (it is still sent on the wire in clear, as
// LOGIN always is — callers needing confidentiality must STARTTLS
// first).
type LoginCmd struct {
	cmdBase
	Username AString
	Password Secret[AString]
}

func NewLoginCmd(username AString, password AString) LoginCmd {
	return LoginCmd{cmdBase{"LOGIN"}, username, NewSecret(password)}
}
func (LoginCmd) commandBody() {}

// --- Authenticated state (6.3) ---

type SelectCmd struct {
	cmdBase
	Mailbox Mailbox
}

func NewSelectCmd(mailbox Mailbox) SelectCmd { return SelectCmd{cmdBase{"SELECT"}, mailbox} }
func (SelectCmd) commandBody()               {}

type ExamineCmd struct {
	cmdBase
	Mailbox Mailbox
}

func NewExamineCmd(mailbox Mailbox) ExamineCmd { return ExamineCmd{cmdBase{"EXAMINE"}, mailbox} }
func (ExamineCmd) commandBody()                {}

type CreateCmd struct {
	cmdBase
	Mailbox Mailbox
}

func NewCreateCmd(mailbox Mailbox) CreateCmd { return CreateCmd{cmdBase{"CREATE"}, mailbox} }
func (CreateCmd) commandBody()               {}

type DeleteCmd struct {
	cmdBase
	Mailbox Mailbox
}

func NewDeleteCmd(mailbox Mailbox) DeleteCmd { return DeleteCmd{cmdBase{"DELETE"}, mailbox} }
func (DeleteCmd) commandBody()               {}

type RenameCmd struct {
	cmdBase
	From, To Mailbox
}

func NewRenameCmd(from, to Mailbox) RenameCmd { return RenameCmd{cmdBase{"RENAME"}, from, to} }
func (RenameCmd) commandBody()                {}

type SubscribeCmd struct {
	cmdBase
	Mailbox Mailbox
}

func NewSubscribeCmd(mailbox Mailbox) SubscribeCmd {
	return SubscribeCmd{cmdBase{"SUBSCRIBE"}, mailbox}
}
func (SubscribeCmd) commandBody() {}

type UnsubscribeCmd struct {
	cmdBase
	Mailbox Mailbox
}

func NewUnsubscribeCmd(mailbox Mailbox) UnsubscribeCmd {
	return UnsubscribeCmd{cmdBase{"UNSUBSCRIBE"}, mailbox}
}
func (UnsubscribeCmd) commandBody() {}

type ListCmd struct {
	cmdBase
	Reference    Mailbox
	MailboxWildcard AString
}

func NewListCmd(reference Mailbox, wildcard AString) ListCmd {
	return ListCmd{cmdBase{"LIST"}, reference, wildcard}
}
func (ListCmd) commandBody() {}

type LsubCmd struct {
	cmdBase
	Reference       Mailbox
	MailboxWildcard AString
}

func NewLsubCmd(reference Mailbox, wildcard AString) LsubCmd {
	return LsubCmd{cmdBase{"LSUB"}, reference, wildcard}
}
func (LsubCmd) commandBody() {}

// StatusItem is one of the data items STATUS may request.
type StatusItem int

const (
	StatusItemMessages StatusItem = iota
	StatusItemRecent
	StatusItemUIDNext
	StatusItemUIDValidity
	StatusItemUnseen
)

func (s StatusItem) String() string {
	switch s {
	case StatusItemMessages:
		return "MESSAGES"
	case StatusItemRecent:
		return "RECENT"
	case StatusItemUIDNext:
		return "UIDNEXT"
	case StatusItemUIDValidity:
		return "UIDVALIDITY"
	case StatusItemUnseen:
		return "UNSEEN"
	}
	return ""
}

type StatusCmd struct {
	cmdBase
	Mailbox Mailbox
	Items   Vec1[StatusItem]
}

func NewStatusCmd(mailbox Mailbox, items []StatusItem) (StatusCmd, error) {
	v, err := NewVec1(items)
	if err != nil {
		return StatusCmd{}, err
	}
	return StatusCmd{cmdBase{"STATUS"}, mailbox, v}, nil
}
func (StatusCmd) commandBody() {}

// LiteralOrLiteral8 carries an APPEND message body, which may be a
// plain Literal or (only when BINARY is advertised) a
// Literal8 — the type is identical (Literal) but IsBinary()
// distinguishes the wire prefix ("{N}" vs "~{N}").
type LiteralOrLiteral8 = Literal

type AppendCmd struct {
	cmdBase
	Mailbox Mailbox
	Flags   []Flag
	Date    *time.Time
	Message LiteralOrLiteral8
}

func NewAppendCmd(mailbox Mailbox, flags []Flag, date *time.Time, message Literal) AppendCmd {
	return AppendCmd{cmdBase{"APPEND"}, mailbox, flags, date, message}
}
func (AppendCmd) commandBody() {}

type CheckCmd struct{ cmdBase }

func NewCheckCmd() CheckCmd { return CheckCmd{cmdBase{"CHECK"}} }
func (CheckCmd) commandBody() {}

type CloseCmd struct{ cmdBase }

func NewCloseCmd() CloseCmd { return CloseCmd{cmdBase{"CLOSE"}} }
func (CloseCmd) commandBody() {}

type ExpungeCmd struct{ cmdBase }

func NewExpungeCmd() ExpungeCmd { return ExpungeCmd{cmdBase{"EXPUNGE"}} }
func (ExpungeCmd) commandBody() {}

// SearchCmd is SEARCH/UID SEARCH. Charset, if present, names the
// charset CHARSET the search keys' strings are encoded in.
type SearchCmd struct {
	cmdBase
	Charset *Charset
	Keys    Vec1[SearchKey]
	UID     bool
}

func NewSearchCmd(charset *Charset, keys []SearchKey, uid bool) (SearchCmd, error) {
	v, err := NewVec1(keys)
	if err != nil {
		return SearchCmd{}, err
	}
	return SearchCmd{cmdBase{"SEARCH"}, charset, v, uid}, nil
}
func (SearchCmd) commandBody() {}

// FetchItemKind enumerates FETCH data items, including the three
// macros (ALL/FAST/FULL), which the decoder does not expand: they are
// preserved as their own variants since expanding them is a policy
// choice outside the codec's job.
type FetchItemKind int

const (
	FetchItemMacroAll FetchItemKind = iota
	FetchItemMacroFast
	FetchItemMacroFull
	FetchItemEnvelope
	FetchItemFlags
	FetchItemInternalDate
	FetchItemRFC822Size
	FetchItemUID
	FetchItemBodyStructure // non-extensible BODY
	FetchItemBodyStructureExtended // BODYSTRUCTURE
	FetchItemBodySection   // BODY[section]<partial> / BODY.PEEK[section]<partial>
)

// FetchItem is one requested FETCH data item.
type FetchItem struct {
	kind    FetchItemKind
	section string // raw section-text for FetchItemBodySection, e.g. "1.HEADER"
	peek    bool
	partial *[2]uint32
}

func FetchItemSimple(kind FetchItemKind) FetchItem { return FetchItem{kind: kind} }

func FetchItemBodySectionOf(section string, peek bool, partial *[2]uint32) FetchItem {
	return FetchItem{kind: FetchItemBodySection, section: section, peek: peek, partial: partial}
}

func (f FetchItem) Kind() FetchItemKind { return f.kind }
func (f FetchItem) Section() string     { return f.section }
func (f FetchItem) Peek() bool          { return f.peek }
func (f FetchItem) Partial() *[2]uint32 { return f.partial }

type FetchCmd struct {
	cmdBase
	SequenceSet SequenceSet
	Items       Vec1[FetchItem]
	UID         bool
}

func NewFetchCmd(seqSet SequenceSet, items []FetchItem, uid bool) (FetchCmd, error) {
	v, err := NewVec1(items)
	if err != nil {
		return FetchCmd{}, err
	}
	return FetchCmd{cmdBase{"FETCH"}, seqSet, v, uid}, nil
}
func (FetchCmd) commandBody() {}

// StoreKind is the STORE verb: replace, add, or remove flags.
type StoreKind int

const (
	StoreReplace StoreKind = iota
	StoreAdd
	StoreRemove
)

type StoreCmd struct {
	cmdBase
	SequenceSet SequenceSet
	Kind        StoreKind
	Silent      bool
	Flags       []StoreFlag
	UID         bool
}

func NewStoreCmd(seqSet SequenceSet, kind StoreKind, silent bool, flags []StoreFlag, uid bool) StoreCmd {
	return StoreCmd{cmdBase{"STORE"}, seqSet, kind, silent, flags, uid}
}
func (StoreCmd) commandBody() {}

type CopyCmd struct {
	cmdBase
	SequenceSet SequenceSet
	Mailbox     Mailbox
	UID         bool
}

func NewCopyCmd(seqSet SequenceSet, mailbox Mailbox, uid bool) CopyCmd {
	return CopyCmd{cmdBase{"COPY"}, seqSet, mailbox, uid}
}
func (CopyCmd) commandBody() {}

// MoveCmd is the MOVE extension (RFC 6851).
type MoveCmd struct {
	cmdBase
	SequenceSet SequenceSet
	Mailbox     Mailbox
	UID         bool
}

func NewMoveCmd(seqSet SequenceSet, mailbox Mailbox, uid bool) MoveCmd {
	return MoveCmd{cmdBase{"MOVE"}, seqSet, mailbox, uid}
}
func (MoveCmd) commandBody() {}

// UnselectCmd is UNSELECT (RFC 3691): leave the selected mailbox
// without expunging, unlike CLOSE.
type UnselectCmd struct{ cmdBase }

func NewUnselectCmd() UnselectCmd { return UnselectCmd{cmdBase{"UNSELECT"}} }
func (UnselectCmd) commandBody()  {}

// IdleCmd starts an IDLE (RFC 2177). The matching "DONE" line is a
// distinct production (IdleDone), not part of this command, because
// the server must see it as a bare line outside the usual tagged
// command grammar.
type IdleCmd struct{ cmdBase }

func NewIdleCmd() IdleCmd { return IdleCmd{cmdBase{"IDLE"}} }
func (IdleCmd) commandBody() {}

// EnableCmd is ENABLE (RFC 5161): request server-side activation of
// extensions that change protocol behavior (e.g. CONDSTORE, UTF8=ACCEPT).
type EnableCmd struct {
	cmdBase
	Capabilities Vec1[Capability]
}

func NewEnableCmd(caps []Capability) (EnableCmd, error) {
	v, err := NewVec1(caps)
	if err != nil {
		return EnableCmd{}, err
	}
	return EnableCmd{cmdBase{"ENABLE"}, v}, nil
}
func (EnableCmd) commandBody() {}

// CompressCmd is COMPRESS (RFC 4978).
type CompressCmd struct {
	cmdBase
	Algorithm Atom
}

func NewCompressCmd(algorithm Atom) CompressCmd { return CompressCmd{cmdBase{"COMPRESS"}, algorithm} }
func (CompressCmd) commandBody()                {}

// IDCmd is the ID extension (RFC 2971): a list of client
// identification field/value pairs, or none (encodes as NIL, or as ()
// when the id_empty_to_nil quirk is disabled).
type IDCmd struct {
	cmdBase
	Fields []IDField
}

type IDField struct {
	Key   Quoted
	Value NString
}

func NewIDCmd(fields []IDField) IDCmd { return IDCmd{cmdBase{"ID"}, fields} }
func (IDCmd) commandBody()            {}

// --- QUOTA extension (RFC 2087) ---

type GetQuotaCmd struct {
	cmdBase
	Root AString
}

func NewGetQuotaCmd(root AString) GetQuotaCmd { return GetQuotaCmd{cmdBase{"GETQUOTA"}, root} }
func (GetQuotaCmd) commandBody()              {}

type GetQuotaRootCmd struct {
	cmdBase
	Mailbox Mailbox
}

func NewGetQuotaRootCmd(mailbox Mailbox) GetQuotaRootCmd {
	return GetQuotaRootCmd{cmdBase{"GETQUOTAROOT"}, mailbox}
}
func (GetQuotaRootCmd) commandBody() {}

// QuotaResourceLimit is one resource/limit pair in SETQUOTA.
type QuotaResourceLimit struct {
	Resource Atom
	Limit    uint64
}

type SetQuotaCmd struct {
	cmdBase
	Root   AString
	Limits []QuotaResourceLimit
}

func NewSetQuotaCmd(root AString, limits []QuotaResourceLimit) SetQuotaCmd {
	return SetQuotaCmd{cmdBase{"SETQUOTA"}, root, limits}
}
func (SetQuotaCmd) commandBody() {}

// UIDCmd is not a distinct command in this data model: UID-prefixed
// operations (FETCH, STORE, COPY, MOVE, SEARCH) carry their own UID
// bool field instead of being wrapped, because their response framing
// differs in ways (UID in every FETCH data item, etc.) that are easier
// to reason about on the concrete command than through a generic
// wrapper.
