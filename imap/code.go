package imap

// CodeKind enumerates the closed set of response codes this package
// understands, plus CodeOther for anything else, preserved verbatim
// (bytes between the brackets, not including them).
type CodeKind int

const (
	CodeAlert CodeKind = iota
	CodeBadCharset   // BADCHARSET[(charset*)]
	CodeCapability   // CAPABILITY caps
	CodeParse
	CodePermanentFlags // PERMANENTFLAGS(list)
	CodeReadOnly
	CodeReadWrite
	CodeTryCreate
	CodeUIDNext        // UIDNEXT n
	CodeUIDValidity    // UIDVALIDITY n
	CodeUnseen         // UNSEEN n
	CodeAppendUID      // APPENDUID validity uid
	CodeCopyUID        // COPYUID validity src dst
	CodeUIDNotSticky
	CodeCompressionActive
	CodeOverQuota
	CodeTooBig
	CodeUnknownCTE
	CodeOther
)

// Code is a single response code, the optional bracketed hint inside
// a status or greeting line.
type Code struct {
	kind CodeKind

	charsets []Charset // CodeBadCharset, may be empty (bare BADCHARSET)
	caps     []Capability // CodeCapability
	flags    []FlagPerm   // CodePermanentFlags

	n1 uint32 // UIDNEXT/UIDVALIDITY/UNSEEN n; APPENDUID/COPYUID validity
	n2 uint32 // APPENDUID uid; COPYUID uses seqSrc/seqDst below instead
	seqSrc SequenceSet // COPYUID source set
	seqDst SequenceSet // COPYUID dest set

	other []byte // CodeOther verbatim bytes
}

func CodeAlertCode() Code { return Code{kind: CodeAlert} }
func CodeParseCode() Code { return Code{kind: CodeParse} }
func CodeReadOnlyCode() Code  { return Code{kind: CodeReadOnly} }
func CodeReadWriteCode() Code { return Code{kind: CodeReadWrite} }
func CodeTryCreateCode() Code { return Code{kind: CodeTryCreate} }
func CodeUIDNotStickyCode() Code     { return Code{kind: CodeUIDNotSticky} }
func CodeCompressionActiveCode() Code { return Code{kind: CodeCompressionActive} }
func CodeOverQuotaCode() Code   { return Code{kind: CodeOverQuota} }
func CodeTooBigCode() Code      { return Code{kind: CodeTooBig} }
func CodeUnknownCTECode() Code  { return Code{kind: CodeUnknownCTE} }

func CodeBadCharsetCode(charsets []Charset) Code {
	return Code{kind: CodeBadCharset, charsets: charsets}
}
func CodeCapabilityCode(caps []Capability) Code {
	return Code{kind: CodeCapability, caps: caps}
}
func CodePermanentFlagsCode(flags []FlagPerm) Code {
	return Code{kind: CodePermanentFlags, flags: flags}
}
func CodeUIDNextCode(n uint32) Code     { return Code{kind: CodeUIDNext, n1: n} }
func CodeUIDValidityCode(n uint32) Code { return Code{kind: CodeUIDValidity, n1: n} }
func CodeUnseenCode(n uint32) Code      { return Code{kind: CodeUnseen, n1: n} }
func CodeAppendUIDCode(validity, uid uint32) Code {
	return Code{kind: CodeAppendUID, n1: validity, n2: uid}
}
func CodeCopyUIDCode(validity uint32, src, dst SequenceSet) Code {
	return Code{kind: CodeCopyUID, n1: validity, seqSrc: src, seqDst: dst}
}
func CodeOtherCode(raw []byte) Code { return Code{kind: CodeOther, other: raw} }

func (c Code) Kind() CodeKind { return c.kind }
func (c Code) Charsets() []Charset { return c.charsets }
func (c Code) Capabilities() []Capability { return c.caps }
func (c Code) PermanentFlags() []FlagPerm { return c.flags }
func (c Code) Number() uint32 { return c.n1 }
func (c Code) AppendUID() (validity, uid uint32) { return c.n1, c.n2 }
func (c Code) CopyUID() (validity uint32, src, dst SequenceSet) { return c.n1, c.seqSrc, c.seqDst }
func (c Code) OtherBytes() []byte { return c.other }

func (c Code) IntoOwned() Code {
	out := c
	if c.other != nil {
		cp := make([]byte, len(c.other))
		copy(cp, c.other)
		out.other = cp
	}
	if c.charsets != nil {
		cp := make([]Charset, len(c.charsets))
		for i, ch := range c.charsets {
			cp[i] = ch.IntoOwned()
		}
		out.charsets = cp
	}
	if c.caps != nil {
		cp := make([]Capability, len(c.caps))
		for i, cap := range c.caps {
			cp[i] = cap.IntoOwned()
		}
		out.caps = cp
	}
	return out
}
