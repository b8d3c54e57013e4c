package imap

import "encoding/base64"

// Response is the tagged union over everything a server can send: a
// status response (tagged or untagged), an untagged data response, or
// a command continuation request. Unlike Command, which is always
// {tag, body}, a Response's shape varies enough (three structurally
// different productions) that it is represented as its own
// discriminated union rather than a single flat struct.
type ResponseKind int

const (
	ResponseStatus ResponseKind = iota
	ResponseData
	ResponseContinuation
)

type Response struct {
	kind         ResponseKind
	status       Status
	data         Data
	continuation CommandContinuationRequest
}

func ResponseOfStatus(s Status) Response { return Response{kind: ResponseStatus, status: s} }
func ResponseOfData(d Data) Response     { return Response{kind: ResponseData, data: d} }
func ResponseOfContinuation(c CommandContinuationRequest) Response {
	return Response{kind: ResponseContinuation, continuation: c}
}

func (r Response) Kind() ResponseKind                               { return r.kind }
func (r Response) Status() (Status, bool)                           { return r.status, r.kind == ResponseStatus }
func (r Response) Data() (Data, bool)                               { return r.data, r.kind == ResponseData }
func (r Response) Continuation() (CommandContinuationRequest, bool) {
	return r.continuation, r.kind == ResponseContinuation
}

func (r Response) IntoOwned() Response {
	switch r.kind {
	case ResponseStatus:
		return ResponseOfStatus(r.status.IntoOwned())
	case ResponseData:
		return ResponseOfData(r.data.IntoOwned())
	case ResponseContinuation:
		return ResponseOfContinuation(r.continuation.IntoOwned())
	}
	return r
}

// StatusKind is the resp-cond-state alternation (OK, NO, or BAD) plus
// BYE. resp-cond-bye is grammatically distinct (it never carries a
// tag, by construction rather than by convention), so a StatusBye
// status is built only by the dedicated StatusByeOf below and is
// refused by StatusTagged and StatusUntagged.
type StatusKind int

const (
	StatusOK StatusKind = iota
	StatusNo
	StatusBad
	StatusBye
)

func (s StatusKind) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusNo:
		return "NO"
	case StatusBad:
		return "BAD"
	case StatusBye:
		return "BYE"
	}
	return ""
}

// Status is a status response: OK/NO/BAD, tagged to a specific command
// or untagged, plus an optional response Code and required
// human-readable Text. BYE is always untagged by construction (Tag is
// never set alongside StatusBye).
type Status struct {
	kind StatusKind
	tag  *Tag
	code *Code
	text Text
}

// validateStatusText refuses text that begins with "[" when no code
// is present: the wire form would re-parse as a (possibly malformed)
// response code instead of as text.
func validateStatusText(code *Code, text Text) error {
	if code == nil && len(text.Bytes()) > 0 && text.Bytes()[0] == '[' {
		return errStruct("Text", text.Bytes(), `text starting with "[" requires a response code`)
	}
	return nil
}

// StatusTagged builds a tagged OK/NO/BAD response completing the
// command with the matching tag.
func StatusTagged(tag Tag, kind StatusKind, code *Code, text Text) (Status, error) {
	if kind == StatusBye {
		return Status{}, errStruct("Status", nil, "BYE status cannot be tagged")
	}
	if err := validateStatusText(code, text); err != nil {
		return Status{}, err
	}
	return Status{kind: kind, tag: &tag, code: code, text: text}, nil
}

// StatusUntagged builds an untagged OK/NO/BAD response.
func StatusUntagged(kind StatusKind, code *Code, text Text) (Status, error) {
	if kind == StatusBye {
		return Status{}, errStruct("Status", nil, "use StatusByeOf to build a BYE response")
	}
	if err := validateStatusText(code, text); err != nil {
		return Status{}, err
	}
	return Status{kind: kind, code: code, text: text}, nil
}

// StatusByeOf builds the untagged BYE response sent as a server shuts
// down the connection (gracefully or due to an inactivity timeout).
func StatusByeOf(code *Code, text Text) (Status, error) {
	if err := validateStatusText(code, text); err != nil {
		return Status{}, err
	}
	return Status{kind: StatusBye, code: code, text: text}, nil
}

func (s Status) Kind() StatusKind { return s.kind }
func (s Status) Tag() (Tag, bool) {
	if s.tag == nil {
		return Tag{}, false
	}
	return *s.tag, true
}
func (s Status) IsTagged() bool    { return s.tag != nil }
func (s Status) Code() (Code, bool) {
	if s.code == nil {
		return Code{}, false
	}
	return *s.code, true
}
func (s Status) Text() Text { return s.text }

func (s Status) IntoOwned() Status {
	out := s
	out.text = s.text.IntoOwned()
	if s.tag != nil {
		t := s.tag.IntoOwned()
		out.tag = &t
	}
	if s.code != nil {
		c := s.code.IntoOwned()
		out.code = &c
	}
	return out
}

// GreetingKind is the three possible server greetings sent immediately
// after a connection is accepted.
type GreetingKind int

const (
	GreetingOK GreetingKind = iota
	GreetingPreAuth
	GreetingBye
)

// Greeting is the very first line a server sends. It is structurally
// identical to Status but is its own type because it can never be
// tagged and never follows a client command.
type Greeting struct {
	kind GreetingKind
	code *Code
	text Text
}

// TryGreeting builds a Greeting, refusing text that begins with "["
// when no code is present (the same ambiguity rule Status enforces).
func TryGreeting(kind GreetingKind, code *Code, text Text) (Greeting, error) {
	if err := validateStatusText(code, text); err != nil {
		return Greeting{}, err
	}
	return Greeting{kind: kind, code: code, text: text}, nil
}

func (g Greeting) Kind() GreetingKind { return g.kind }
func (g Greeting) Code() (Code, bool) {
	if g.code == nil {
		return Code{}, false
	}
	return *g.code, true
}
func (g Greeting) Text() Text { return g.text }

func (g Greeting) IntoOwned() Greeting {
	out := Greeting{kind: g.kind, text: g.text.IntoOwned()}
	if g.code != nil {
		c := g.code.IntoOwned()
		out.code = &c
	}
	return out
}

// CommandContinuationRequestKind distinguishes a plain "+ text" server
// challenge from one carrying a base64-encoded SASL challenge payload.
// Per the ambiguity-resolution policy this package follows, a
// continuation line is treated as Base64 only when every byte of its
// trailing text decodes as valid base64; anything else, including the
// empty string, falls back to Basic. A continuation request is
// never ambiguous between the two readings once that preference
// order is applied.
type CommandContinuationRequestKind int

const (
	ContinuationBasic CommandContinuationRequestKind = iota
	ContinuationBase64
)

type CommandContinuationRequest struct {
	kind   CommandContinuationRequestKind
	code   *Code
	text   Text
	base64 []byte
}

// looksLikeBase64 reports whether b would decode as valid strict
// base64 (the test TryContinuationRequestBasic applies to keep the
// two continuation variants unambiguous on the wire).
func looksLikeBase64(b []byte) bool {
	if len(b) == 0 || len(b)%4 != 0 {
		return false
	}
	_, err := base64.StdEncoding.Strict().DecodeString(string(b))
	return err == nil
}

// TryContinuationRequestBasic builds a plain "+ [code] text"
// continuation request. When code is nil it refuses text that begins
// with "[" (would re-parse as a coded continuation) and text that is
// itself valid base64 (would re-parse as a Base64 continuation) — the
// wire form must round-trip to the same variant it was built as.
func TryContinuationRequestBasic(code *Code, text Text) (CommandContinuationRequest, error) {
	if code == nil {
		if b := text.Bytes(); len(b) > 0 && b[0] == '[' {
			return CommandContinuationRequest{}, errStruct("CommandContinuationRequest", b,
				`text starting with "[" requires a response code`)
		}
		if looksLikeBase64(text.Bytes()) {
			return CommandContinuationRequest{}, errStruct("CommandContinuationRequest", text.Bytes(),
				"text parses as base64 and would be ambiguous on the wire")
		}
	}
	return CommandContinuationRequest{kind: ContinuationBasic, code: code, text: text}, nil
}

func ContinuationRequestBase64(data []byte) CommandContinuationRequest {
	return CommandContinuationRequest{kind: ContinuationBase64, base64: data}
}

func (c CommandContinuationRequest) Kind() CommandContinuationRequestKind { return c.kind }
func (c CommandContinuationRequest) Code() (Code, bool) {
	if c.code == nil {
		return Code{}, false
	}
	return *c.code, true
}
func (c CommandContinuationRequest) Text() Text     { return c.text }
func (c CommandContinuationRequest) Base64() []byte { return c.base64 }

func (c CommandContinuationRequest) IntoOwned() CommandContinuationRequest {
	out := c
	out.text = c.text.IntoOwned()
	if c.code != nil {
		cc := c.code.IntoOwned()
		out.code = &cc
	}
	if c.base64 != nil {
		cp := make([]byte, len(c.base64))
		copy(cp, c.base64)
		out.base64 = cp
	}
	return out
}

// DataKind enumerates the untagged data responses (RFC 3501 §7) this
// package carries as typed values.
type DataKind int

const (
	DataCapability DataKind = iota
	DataList
	DataLsub
	DataStatus
	DataSearch
	DataFlags
	DataExists
	DataRecent
	DataExpunge
	DataFetch
	DataQuota
	DataQuotaRoot
	DataID
	DataEnabled
)

// MailboxAttribute is a single \Attribute token from a LIST/LSUB
// response (\Noselect, \Noinferiors, \Marked, \Unmarked, or any other
// atom preserved verbatim for forward compatibility).
type MailboxAttribute struct {
	raw Atom
}

func NewMailboxAttribute(a Atom) MailboxAttribute      { return MailboxAttribute{raw: a} }
func (m MailboxAttribute) String() string              { return `\` + m.raw.String() }
func (m MailboxAttribute) IntoOwned() MailboxAttribute { return MailboxAttribute{raw: m.raw.IntoOwned()} }

// ListData is one LIST or LSUB untagged response.
type ListData struct {
	Attributes []MailboxAttribute
	Delimiter  QuotedChar
	Mailbox    Mailbox
}

func (l ListData) IntoOwned() ListData {
	attrs := make([]MailboxAttribute, len(l.Attributes))
	for i, a := range l.Attributes {
		attrs[i] = a.IntoOwned()
	}
	return ListData{Attributes: attrs, Delimiter: l.Delimiter, Mailbox: l.Mailbox.IntoOwned()}
}

// StatusData is a STATUS response: the mailbox name plus the
// requested attribute/value pairs, in the order the server sent them.
type StatusAttributeValue struct {
	Item  StatusItem
	Value uint32
}

type StatusData struct {
	Mailbox Mailbox
	Items   []StatusAttributeValue
}

func (s StatusData) IntoOwned() StatusData {
	return StatusData{Mailbox: s.Mailbox.IntoOwned(), Items: append([]StatusAttributeValue(nil), s.Items...)}
}

// MessageDataItemKind mirrors FetchItemKind but for values returned in
// a FETCH response rather than items requested by a FETCH command.
type MessageDataItemKind int

const (
	MessageDataEnvelope MessageDataItemKind = iota
	MessageDataFlags
	MessageDataInternalDate
	MessageDataRFC822Size
	MessageDataUID
	MessageDataBodyStructure
	MessageDataBodySection
)

// MessageDataItem is one {name: value} pair inside a FETCH response's
// parenthesized list.
type MessageDataItem struct {
	kind MessageDataItemKind

	envelope Envelope
	flags    []FlagFetch
	date     NString
	size     uint32
	uid      uint32
	body     BodyStructure

	section     string
	partialOrig uint32
	literal     NString
}

func MessageDataItemEnvelope(e Envelope) MessageDataItem {
	return MessageDataItem{kind: MessageDataEnvelope, envelope: e}
}
func MessageDataItemFlags(flags []FlagFetch) MessageDataItem {
	return MessageDataItem{kind: MessageDataFlags, flags: flags}
}
func MessageDataItemInternalDate(date NString) MessageDataItem {
	return MessageDataItem{kind: MessageDataInternalDate, date: date}
}
func MessageDataItemRFC822Size(n uint32) MessageDataItem {
	return MessageDataItem{kind: MessageDataRFC822Size, size: n}
}
func MessageDataItemUID(uid uint32) MessageDataItem {
	return MessageDataItem{kind: MessageDataUID, uid: uid}
}
func MessageDataItemBodyStructure(b BodyStructure) MessageDataItem {
	return MessageDataItem{kind: MessageDataBodyStructure, body: b}
}
func MessageDataItemBodySection(section string, partialOrigin uint32, literal NString) MessageDataItem {
	return MessageDataItem{kind: MessageDataBodySection, section: section, partialOrig: partialOrigin, literal: literal}
}

func (m MessageDataItem) Kind() MessageDataItemKind { return m.kind }
func (m MessageDataItem) Envelope() Envelope        { return m.envelope }
func (m MessageDataItem) Flags() []FlagFetch        { return m.flags }
func (m MessageDataItem) InternalDate() NString      { return m.date }
func (m MessageDataItem) RFC822Size() uint32        { return m.size }
func (m MessageDataItem) UID() uint32               { return m.uid }
func (m MessageDataItem) BodyStructureValue() BodyStructure { return m.body }
func (m MessageDataItem) Section() (string, uint32, NString) {
	return m.section, m.partialOrig, m.literal
}

func (m MessageDataItem) IntoOwned() MessageDataItem {
	out := m
	out.envelope = m.envelope.IntoOwned()
	out.date = m.date.IntoOwned()
	out.body = m.body.IntoOwned()
	out.literal = m.literal.IntoOwned()
	if m.flags != nil {
		flags := make([]FlagFetch, len(m.flags))
		for i, f := range m.flags {
			flags[i] = f.IntoOwned()
		}
		out.flags = flags
	}
	return out
}

// FetchData is a FETCH response: the message sequence number and the
// list of data items the server chose to return for it.
type FetchData struct {
	Seq   uint32
	Items []MessageDataItem
}

func (f FetchData) IntoOwned() FetchData {
	items := make([]MessageDataItem, len(f.Items))
	for i, it := range f.Items {
		items[i] = it.IntoOwned()
	}
	return FetchData{Seq: f.Seq, Items: items}
}

// QuotaData is a QUOTA response (RFC 2087): a quota root name plus its
// resource usage/limit pairs.
type QuotaResourceUsage struct {
	Resource Atom
	Usage    uint64
	Limit    uint64
}

type QuotaData struct {
	Root      AString
	Resources []QuotaResourceUsage
}

func (q QuotaData) IntoOwned() QuotaData {
	return QuotaData{Root: q.Root.IntoOwned(), Resources: append([]QuotaResourceUsage(nil), q.Resources...)}
}

// QuotaRootData is a QUOTAROOT response: a mailbox and the quota roots
// that apply to it.
type QuotaRootData struct {
	Mailbox Mailbox
	Roots   []AString
}

func (q QuotaRootData) IntoOwned() QuotaRootData {
	roots := make([]AString, len(q.Roots))
	for i, r := range q.Roots {
		roots[i] = r.IntoOwned()
	}
	return QuotaRootData{Mailbox: q.Mailbox.IntoOwned(), Roots: roots}
}

// Data is the untagged-data-response union.
type Data struct {
	kind DataKind

	caps      []Capability
	list      ListData
	status    StatusData
	search    []uint32
	flags     []Flag
	num       uint32
	fetch     FetchData
	quota     QuotaData
	quotaRoot QuotaRootData
	id        []IDField
	enabled   []Capability
}

func DataOfCapability(caps []Capability) Data { return Data{kind: DataCapability, caps: caps} }
func DataOfList(l ListData) Data              { return Data{kind: DataList, list: l} }
func DataOfLsub(l ListData) Data              { return Data{kind: DataLsub, list: l} }
func DataOfStatus(s StatusData) Data          { return Data{kind: DataStatus, status: s} }
func DataOfSearch(nums []uint32) Data         { return Data{kind: DataSearch, search: nums} }
func DataOfFlags(flags []Flag) Data           { return Data{kind: DataFlags, flags: flags} }
func DataOfExists(n uint32) Data              { return Data{kind: DataExists, num: n} }
func DataOfRecent(n uint32) Data              { return Data{kind: DataRecent, num: n} }
func DataOfExpunge(seq uint32) Data           { return Data{kind: DataExpunge, num: seq} }
func DataOfFetch(f FetchData) Data            { return Data{kind: DataFetch, fetch: f} }
func DataOfQuota(q QuotaData) Data            { return Data{kind: DataQuota, quota: q} }
func DataOfQuotaRoot(q QuotaRootData) Data    { return Data{kind: DataQuotaRoot, quotaRoot: q} }
func DataOfID(fields []IDField) Data          { return Data{kind: DataID, id: fields} }
func DataOfEnabled(caps []Capability) Data    { return Data{kind: DataEnabled, enabled: caps} }

func (d Data) Kind() DataKind                  { return d.kind }
func (d Data) Capabilities() []Capability      { return d.caps }
func (d Data) List() ListData                  { return d.list }
func (d Data) Status() StatusData              { return d.status }
func (d Data) Search() []uint32                { return d.search }
func (d Data) Flags() []Flag                   { return d.flags }
func (d Data) Number() uint32                  { return d.num }
func (d Data) Fetch() FetchData                { return d.fetch }
func (d Data) Quota() QuotaData                { return d.quota }
func (d Data) QuotaRoot() QuotaRootData        { return d.quotaRoot }
func (d Data) ID() []IDField                   { return d.id }
func (d Data) Enabled() []Capability           { return d.enabled }

func (d Data) IntoOwned() Data {
	switch d.kind {
	case DataCapability:
		caps := make([]Capability, len(d.caps))
		for i, c := range d.caps {
			caps[i] = c.IntoOwned()
		}
		return DataOfCapability(caps)
	case DataList:
		return DataOfList(d.list.IntoOwned())
	case DataLsub:
		return DataOfLsub(d.list.IntoOwned())
	case DataStatus:
		return DataOfStatus(d.status.IntoOwned())
	case DataSearch:
		return DataOfSearch(append([]uint32(nil), d.search...))
	case DataFlags:
		flags := make([]Flag, len(d.flags))
		for i, f := range d.flags {
			flags[i] = f.IntoOwned()
		}
		return DataOfFlags(flags)
	case DataExists:
		return DataOfExists(d.num)
	case DataRecent:
		return DataOfRecent(d.num)
	case DataExpunge:
		return DataOfExpunge(d.num)
	case DataFetch:
		return DataOfFetch(d.fetch.IntoOwned())
	case DataQuota:
		return DataOfQuota(d.quota.IntoOwned())
	case DataQuotaRoot:
		return DataOfQuotaRoot(d.quotaRoot.IntoOwned())
	case DataID:
		fields := make([]IDField, len(d.id))
		for i, f := range d.id {
			fields[i] = IDField{Key: f.Key.IntoOwned(), Value: f.Value.IntoOwned()}
		}
		return DataOfID(fields)
	case DataEnabled:
		caps := make([]Capability, len(d.enabled))
		for i, c := range d.enabled {
			caps[i] = c.IntoOwned()
		}
		return DataOfEnabled(caps)
	}
	return d
}
