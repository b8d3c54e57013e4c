package imap

// CapabilityKind enumerates the closed set of capabilities this
// package has typed knowledge of, plus CapabilityOther for anything
// else (new extensions, vendor capabilities) which is preserved
// verbatim rather than rejected.
type CapabilityKind int

const (
	CapabilityIMAP4rev1 CapabilityKind = iota
	CapabilityAuth               // AUTH=mechanism
	CapabilityStartTLS
	CapabilityIdle
	CapabilityEnable
	CapabilityCompress           // COMPRESS=algorithm
	CapabilityQuota
	CapabilityQuotaRes           // QUOTA=RES-name
	CapabilityQuotaSet
	CapabilityLiteralPlus
	CapabilityLiteralMinus
	CapabilityMove
	CapabilityID
	CapabilityUnselect
	CapabilitySort                // SORT or SORT=algorithm
	CapabilityThread              // THREAD=algorithm
	CapabilityMetadata
	CapabilityMetadataServer
	CapabilityBinary
	CapabilityUIDPlus
	CapabilityOther // verbatim atom, e.g. a vendor or unrecognized extension
)

// Capability is a single entry from a CAPABILITY response or greeting
// code: a member of the closed CapabilityKind set, carrying whatever
// parameter that member's syntax requires, or CapabilityOther with
// the verbatim atom for anything unrecognized.
type Capability struct {
	kind  CapabilityKind
	param string // mechanism / algorithm / resource name, where applicable
	other Atom
}

func CapabilitySimple(kind CapabilityKind) Capability { return Capability{kind: kind} }

// CapabilityWithParam builds a parameterized capability such as
// AUTH=PLAIN, COMPRESS=DEFLATE, QUOTA=STORAGE, SORT=DISPLAY, or
// THREAD=REFERENCES.
func CapabilityWithParam(kind CapabilityKind, param string) Capability {
	return Capability{kind: kind, param: param}
}

// CapabilityOtherAtom builds a CapabilityOther preserving atom verbatim.
func CapabilityOtherAtom(atom Atom) Capability {
	return Capability{kind: CapabilityOther, other: atom}
}

func (c Capability) Kind() CapabilityKind { return c.kind }
func (c Capability) Param() (string, bool) {
	if c.param == "" {
		return "", false
	}
	return c.param, true
}
func (c Capability) OtherAtom() (Atom, bool) {
	if c.kind != CapabilityOther {
		return Atom{}, false
	}
	return c.other, true
}

func (c Capability) String() string {
	switch c.kind {
	case CapabilityIMAP4rev1:
		return "IMAP4rev1"
	case CapabilityAuth:
		return "AUTH=" + c.param
	case CapabilityStartTLS:
		return "STARTTLS"
	case CapabilityIdle:
		return "IDLE"
	case CapabilityEnable:
		return "ENABLE"
	case CapabilityCompress:
		return "COMPRESS=" + c.param
	case CapabilityQuota:
		return "QUOTA"
	case CapabilityQuotaRes:
		return "QUOTA=" + c.param
	case CapabilityQuotaSet:
		return "QUOTASET"
	case CapabilityLiteralPlus:
		return "LITERAL+"
	case CapabilityLiteralMinus:
		return "LITERAL-"
	case CapabilityMove:
		return "MOVE"
	case CapabilityID:
		return "ID"
	case CapabilityUnselect:
		return "UNSELECT"
	case CapabilitySort:
		if c.param == "" {
			return "SORT"
		}
		return "SORT=" + c.param
	case CapabilityThread:
		return "THREAD=" + c.param
	case CapabilityMetadata:
		return "METADATA"
	case CapabilityMetadataServer:
		return "METADATA-SERVER"
	case CapabilityBinary:
		return "BINARY"
	case CapabilityUIDPlus:
		return "UIDPLUS"
	case CapabilityOther:
		return c.other.String()
	default:
		return ""
	}
}

func (c Capability) IntoOwned() Capability {
	if c.kind == CapabilityOther {
		return Capability{kind: c.kind, other: c.other.IntoOwned()}
	}
	return c
}
