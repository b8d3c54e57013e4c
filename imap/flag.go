package imap

import "fmt"

// FlagKind discriminates the three flag categories the grammar
// recognizes: a closed set of system flags, an open set of keywords
// (arbitrary atoms), and an escape hatch for extension flags that
// start with "\" but aren't one of the system flags.
type FlagKind int

const (
	FlagKindSystem FlagKind = iota
	FlagKindKeyword
	FlagKindExtension
)

// SystemFlag enumerates the five flags RFC 3501 section 2.3.2 defines.
type SystemFlag int

const (
	SystemFlagSeen SystemFlag = iota
	SystemFlagAnswered
	SystemFlagFlagged
	SystemFlagDeleted
	SystemFlagDraft
)

func (f SystemFlag) String() string {
	switch f {
	case SystemFlagSeen:
		return `\Seen`
	case SystemFlagAnswered:
		return `\Answered`
	case SystemFlagFlagged:
		return `\Flagged`
	case SystemFlagDeleted:
		return `\Deleted`
	case SystemFlagDraft:
		return `\Draft`
	default:
		return fmt.Sprintf(`\Unknown(%d)`, int(f))
	}
}

// ParseSystemFlag maps a case-insensitive atom name (without the
// leading backslash) to a SystemFlag.
func ParseSystemFlag(name string) (SystemFlag, bool) {
	switch {
	case asciiEqualFoldString(name, "Seen"):
		return SystemFlagSeen, true
	case asciiEqualFoldString(name, "Answered"):
		return SystemFlagAnswered, true
	case asciiEqualFoldString(name, "Flagged"):
		return SystemFlagFlagged, true
	case asciiEqualFoldString(name, "Deleted"):
		return SystemFlagDeleted, true
	case asciiEqualFoldString(name, "Draft"):
		return SystemFlagDraft, true
	default:
		return 0, false
	}
}

// Flag is a message flag as it may be stored or searched: a system
// flag, an arbitrary keyword (atom), or an unrecognized "\Extension"
// flag preserved verbatim.
type Flag struct {
	kind      FlagKind
	system    SystemFlag
	keyword   Atom
	extension Atom // atom name without the leading backslash
}

func FlagSystem(f SystemFlag) Flag       { return Flag{kind: FlagKindSystem, system: f} }
func FlagKeyword(a Atom) Flag            { return Flag{kind: FlagKindKeyword, keyword: a} }
func FlagExtension(a Atom) Flag          { return Flag{kind: FlagKindExtension, extension: a} }

func (f Flag) Kind() FlagKind { return f.kind }
func (f Flag) System() (SystemFlag, bool) {
	if f.kind != FlagKindSystem {
		return 0, false
	}
	return f.system, true
}
func (f Flag) Keyword() (Atom, bool) {
	if f.kind != FlagKindKeyword {
		return Atom{}, false
	}
	return f.keyword, true
}
func (f Flag) Extension() (Atom, bool) {
	if f.kind != FlagKindExtension {
		return Atom{}, false
	}
	return f.extension, true
}

func (f Flag) String() string {
	switch f.kind {
	case FlagKindSystem:
		return f.system.String()
	case FlagKindKeyword:
		return f.keyword.String()
	case FlagKindExtension:
		return `\` + f.extension.String()
	}
	return ""
}

func (f Flag) IntoOwned() Flag {
	switch f.kind {
	case FlagKindKeyword:
		return Flag{kind: f.kind, keyword: f.keyword.IntoOwned()}
	case FlagKindExtension:
		return Flag{kind: f.kind, extension: f.extension.IntoOwned()}
	default:
		return f
	}
}

// FlagFetch is a Flag additionally permitting \Recent, which FETCH
// responses report but which can never be set by a client (it is
// maintained by the server).
type FlagFetch struct {
	Flag
	recent bool
}

func FlagFetchFrom(f Flag) FlagFetch  { return FlagFetch{Flag: f} }
func FlagFetchRecent() FlagFetch      { return FlagFetch{recent: true} }
func (f FlagFetch) IsRecent() bool    { return f.recent }
func (f FlagFetch) String() string {
	if f.recent {
		return `\Recent`
	}
	return f.Flag.String()
}

func (f FlagFetch) IntoOwned() FlagFetch {
	return FlagFetch{Flag: f.Flag.IntoOwned(), recent: f.recent}
}

// FlagPerm is a Flag additionally permitting "\*", the PERMANENTFLAGS
// wildcard meaning "the server supports creating new keywords".
type FlagPerm struct {
	Flag
	wildcard bool
}

func FlagPermFrom(f Flag) FlagPerm { return FlagPerm{Flag: f} }
func FlagPermWildcard() FlagPerm   { return FlagPerm{wildcard: true} }
func (f FlagPerm) IsWildcard() bool { return f.wildcard }
func (f FlagPerm) String() string {
	if f.wildcard {
		return `\*`
	}
	return f.Flag.String()
}

// StoreFlag is a Flag restricted to what a client may send in STORE:
// \Recent and \* are refused: neither can ever be set by a client.
type StoreFlag struct {
	flag Flag
}

// ErrFlagNotStorable is returned by NewStoreFlag for \Recent or \*.
var ErrFlagNotStorable = fmt.Errorf("imap: \\Recent and \\* cannot be stored")

// NewStoreFlag validates f for use in a STORE command.
func NewStoreFlag(f Flag) (StoreFlag, error) {
	if f.kind == FlagKindExtension && asciiEqualFoldString(f.extension.String(), "Recent") {
		return StoreFlag{}, ErrFlagNotStorable
	}
	return StoreFlag{flag: f}, nil
}

func (s StoreFlag) Flag() Flag     { return s.flag }
func (s StoreFlag) String() string { return s.flag.String() }
