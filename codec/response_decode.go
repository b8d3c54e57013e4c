package codec

import (
	"github.com/nugget/imapwire/imap"
)

// decodeGreeting parses `* SP (OK / PREAUTH / BYE) SP resp-text CRLF`.
func decodeGreeting(s *decodeState) (imap.Greeting, error) {
	if !s.d.Byte('*') || !s.sp() {
		return imap.Greeting{}, s.fail("expected untagged greeting")
	}
	var kind imap.GreetingKind
	switch {
	case s.matchAtomCI("OK"):
		kind = imap.GreetingOK
	case s.matchAtomCI("PREAUTH"):
		kind = imap.GreetingPreAuth
	case s.matchAtomCI("BYE"):
		kind = imap.GreetingBye
	default:
		return imap.Greeting{}, s.fail("expected OK, PREAUTH, or BYE")
	}
	code, text, err := readRespText(s)
	if err != nil {
		return imap.Greeting{}, err
	}
	if !s.crlf() {
		return imap.Greeting{}, s.fail("expected CRLF after greeting")
	}
	g, err := imap.TryGreeting(kind, code, text)
	if err != nil {
		return imap.Greeting{}, errSyntax(s.d.Pos(), err.Error())
	}
	return g, nil
}

// decodeResponse parses one complete server response: a continuation
// request, an untagged status or data response, or a tagged status.
func decodeResponse(s *decodeState) (imap.Response, error) {
	if s.d.Byte('+') {
		return decodeContinuation(s)
	}
	if s.d.Byte('*') {
		if !s.sp() {
			return imap.Response{}, s.fail("expected SP after *")
		}
		return decodeUntagged(s)
	}
	return decodeTaggedStatus(s)
}

// decodeContinuation parses everything after the leading "+". The
// whole trailer is preferred as base64; anything that does not decode
// falls back to resp-text.
func decodeContinuation(s *decodeState) (imap.Response, error) {
	save := s.d.Pos()
	if !s.sp() {
		// A bare "+\r\n" is tolerated the same way an empty trailer
		// after "+ " is: only under the MissingText quirk.
		if !s.q.MissingText || !s.crlf() {
			return imap.Response{}, s.fail("expected SP after +")
		}
		c, err := imap.TryContinuationRequestBasic(nil, imap.UnvalidatedText([]byte("...")))
		if err != nil {
			return imap.Response{}, errSyntax(s.d.Pos(), err.Error())
		}
		return imap.ResponseOfContinuation(c), nil
	}
	if data, ok := s.readBase64ToEOL(); ok {
		if !s.crlf() {
			return imap.Response{}, s.fail("expected CRLF after continuation request")
		}
		return imap.ResponseOfContinuation(imap.ContinuationRequestBase64(data)), nil
	}
	// Not base64 — re-read the whole trailer (including the SP) as
	// resp-text instead.
	s.d.SetPos(save)
	code, text, err := readRespText(s)
	if err != nil {
		return imap.Response{}, err
	}
	if !s.crlf() {
		return imap.Response{}, s.fail("expected CRLF after continuation request")
	}
	c, err := imap.TryContinuationRequestBasic(code, text)
	if err != nil {
		return imap.Response{}, errSyntax(s.d.Pos(), err.Error())
	}
	return imap.ResponseOfContinuation(c), nil
}

func decodeTaggedStatus(s *decodeState) (imap.Response, error) {
	start := s.d.Pos()
	token, ok := s.d.Atom()
	if !ok {
		return imap.Response{}, s.fail("expected response tag")
	}
	tag, err := imap.TryTag([]byte(token))
	if err != nil {
		return imap.Response{}, errSyntax(start, "invalid response tag")
	}
	if !s.sp() {
		return imap.Response{}, s.fail("expected SP after tag")
	}
	var kind imap.StatusKind
	switch {
	case s.matchAtomCI("OK"):
		kind = imap.StatusOK
	case s.matchAtomCI("NO"):
		kind = imap.StatusNo
	case s.matchAtomCI("BAD"):
		kind = imap.StatusBad
	default:
		return imap.Response{}, s.fail("expected OK, NO, or BAD")
	}
	code, text, err := readRespText(s)
	if err != nil {
		return imap.Response{}, err
	}
	if !s.crlf() {
		return imap.Response{}, s.fail("expected CRLF after status")
	}
	status, err := imap.StatusTagged(tag, kind, code, text)
	if err != nil {
		return imap.Response{}, errSyntax(s.d.Pos(), err.Error())
	}
	return imap.ResponseOfStatus(status), nil
}

// decodeUntagged parses everything after "* ".
func decodeUntagged(s *decodeState) (imap.Response, error) {
	// Numbered data: EXISTS, RECENT, EXPUNGE, FETCH.
	if n, ok := s.readNumber(); ok {
		return decodeNumberedData(s, n)
	}

	switch {
	case s.matchAtomCI("OK"):
		return decodeUntaggedStatus(s, imap.StatusOK)
	case s.matchAtomCI("NO"):
		return decodeUntaggedStatus(s, imap.StatusNo)
	case s.matchAtomCI("BAD"):
		return decodeUntaggedStatus(s, imap.StatusBad)
	case s.matchAtomCI("BYE"):
		code, text, err := readRespText(s)
		if err != nil {
			return imap.Response{}, err
		}
		if !s.crlf() {
			return imap.Response{}, s.fail("expected CRLF after BYE")
		}
		status, err := imap.StatusByeOf(code, text)
		if err != nil {
			return imap.Response{}, errSyntax(s.d.Pos(), err.Error())
		}
		return imap.ResponseOfStatus(status), nil
	case s.matchAtomCI("CAPABILITY"):
		caps, err := readCapabilities(s)
		if err != nil {
			return imap.Response{}, err
		}
		s.trailingSP()
		if !s.crlf() {
			return imap.Response{}, s.fail("expected CRLF after CAPABILITY data")
		}
		return imap.ResponseOfData(imap.DataOfCapability(caps)), nil
	case s.matchAtomCI("FLAGS"):
		if !s.sp() {
			return imap.Response{}, s.fail("expected SP after FLAGS")
		}
		var flags []imap.Flag
		ok := s.readParenList(func() bool {
			f, ok := s.readFlag()
			if ok {
				flags = append(flags, f)
			}
			return ok
		})
		if !ok {
			return imap.Response{}, s.fail("expected flag list")
		}
		s.trailingSP()
		if !s.crlf() {
			return imap.Response{}, s.fail("expected CRLF after FLAGS data")
		}
		return imap.ResponseOfData(imap.DataOfFlags(flags)), nil
	case s.matchAtomCI("LIST"):
		return decodeListData(s, false)
	case s.matchAtomCI("LSUB"):
		return decodeListData(s, true)
	case s.matchAtomCI("STATUS"):
		return decodeStatusData(s)
	case s.matchAtomCI("SEARCH"):
		var nums []uint32
		for {
			save := s.d.Pos()
			if !s.sp() {
				break
			}
			n, ok := s.readNzNumber()
			if !ok {
				// The SP may have been a quirk-tolerated trailing space.
				s.d.SetPos(save)
				break
			}
			nums = append(nums, n)
		}
		s.trailingSP()
		if !s.crlf() {
			return imap.Response{}, s.fail("expected CRLF after SEARCH data")
		}
		return imap.ResponseOfData(imap.DataOfSearch(nums)), nil
	case s.matchAtomCI("QUOTAROOT"):
		return decodeQuotaRootData(s)
	case s.matchAtomCI("QUOTA"):
		return decodeQuotaData(s)
	case s.matchAtomCI("ENABLED"):
		// Unlike CAPABILITY, an empty ENABLED list is legal: the
		// server enabled nothing the client asked for.
		var caps []imap.Capability
		for {
			save := s.d.Pos()
			if !s.sp() {
				break
			}
			a, ok := s.readAtom()
			if !ok {
				s.d.SetPos(save)
				break
			}
			caps = append(caps, parseCapability(a))
		}
		s.trailingSP()
		if !s.crlf() {
			return imap.Response{}, s.fail("expected CRLF after ENABLED data")
		}
		return imap.ResponseOfData(imap.DataOfEnabled(caps)), nil
	case s.matchAtomCI("ID"):
		return decodeIDData(s)
	}
	return imap.Response{}, s.fail("unrecognized untagged response")
}

func decodeUntaggedStatus(s *decodeState, kind imap.StatusKind) (imap.Response, error) {
	code, text, err := readRespText(s)
	if err != nil {
		return imap.Response{}, err
	}
	if !s.crlf() {
		return imap.Response{}, s.fail("expected CRLF after status")
	}
	status, err := imap.StatusUntagged(kind, code, text)
	if err != nil {
		return imap.Response{}, errSyntax(s.d.Pos(), err.Error())
	}
	return imap.ResponseOfStatus(status), nil
}

func decodeNumberedData(s *decodeState, n uint32) (imap.Response, error) {
	if !s.sp() {
		return imap.Response{}, s.fail("expected SP after number")
	}
	switch {
	case s.matchAtomCI("EXISTS"):
		s.trailingSP()
		if !s.crlf() {
			return imap.Response{}, s.fail("expected CRLF after EXISTS")
		}
		return imap.ResponseOfData(imap.DataOfExists(n)), nil
	case s.matchAtomCI("RECENT"):
		s.trailingSP()
		if !s.crlf() {
			return imap.Response{}, s.fail("expected CRLF after RECENT")
		}
		return imap.ResponseOfData(imap.DataOfRecent(n)), nil
	case s.matchAtomCI("EXPUNGE"):
		s.trailingSP()
		if !s.crlf() {
			return imap.Response{}, s.fail("expected CRLF after EXPUNGE")
		}
		return imap.ResponseOfData(imap.DataOfExpunge(n)), nil
	case s.matchAtomCI("FETCH"):
		if !s.sp() {
			return imap.Response{}, s.fail("expected SP after FETCH")
		}
		items, err := readMessageDataItems(s)
		if err != nil {
			return imap.Response{}, err
		}
		s.trailingSP()
		if !s.crlf() {
			return imap.Response{}, s.fail("expected CRLF after FETCH data")
		}
		return imap.ResponseOfData(imap.DataOfFetch(imap.FetchData{Seq: n, Items: items})), nil
	}
	return imap.Response{}, s.fail("expected EXISTS, RECENT, EXPUNGE, or FETCH")
}

func decodeListData(s *decodeState, lsub bool) (imap.Response, error) {
	if !s.sp() {
		return imap.Response{}, s.fail("expected SP after LIST/LSUB")
	}
	var attrs []imap.MailboxAttribute
	ok := s.readParenList(func() bool {
		if !s.d.Byte('\\') {
			return false
		}
		a, ok := s.readAtom()
		if ok {
			attrs = append(attrs, imap.NewMailboxAttribute(a))
		}
		return ok
	})
	if !ok {
		return imap.Response{}, s.fail("expected mailbox attribute list")
	}
	if !s.sp() {
		return imap.Response{}, s.fail("expected SP after attributes")
	}
	var delim imap.QuotedChar
	if !s.matchNil() {
		b, ok := s.d.Quoted()
		if !ok || len(b) != 1 {
			return imap.Response{}, s.fail("expected hierarchy delimiter")
		}
		qc, err := imap.TryQuotedChar(b[0])
		if err != nil {
			return imap.Response{}, errSyntax(s.d.Pos(), err.Error())
		}
		delim = qc
	}
	if !s.sp() {
		return imap.Response{}, s.fail("expected SP after delimiter")
	}
	mbx, ok2 := s.readMailbox()
	if !ok2 {
		return imap.Response{}, s.fail("expected mailbox name")
	}
	s.trailingSP()
	if !s.crlf() {
		return imap.Response{}, s.fail("expected CRLF after LIST/LSUB data")
	}
	data := imap.ListData{Attributes: attrs, Delimiter: delim, Mailbox: mbx}
	if lsub {
		return imap.ResponseOfData(imap.DataOfLsub(data)), nil
	}
	return imap.ResponseOfData(imap.DataOfList(data)), nil
}

func decodeStatusData(s *decodeState) (imap.Response, error) {
	if !s.sp() {
		return imap.Response{}, s.fail("expected SP after STATUS")
	}
	mbx, ok := s.readMailbox()
	if !ok {
		return imap.Response{}, s.fail("expected mailbox name")
	}
	if !s.sp() {
		return imap.Response{}, s.fail("expected SP after mailbox")
	}
	var items []imap.StatusAttributeValue
	ok = s.readParenList(func() bool {
		item, ok := readStatusItem(s)
		if !ok {
			return false
		}
		if !s.sp() {
			return false
		}
		n, ok := s.readNumber()
		if !ok {
			return false
		}
		items = append(items, imap.StatusAttributeValue{Item: item, Value: n})
		return true
	})
	if !ok {
		return imap.Response{}, s.fail("expected status attribute list")
	}
	s.trailingSP()
	if !s.crlf() {
		return imap.Response{}, s.fail("expected CRLF after STATUS data")
	}
	return imap.ResponseOfData(imap.DataOfStatus(imap.StatusData{Mailbox: mbx, Items: items})), nil
}

func readStatusItem(s *decodeState) (imap.StatusItem, bool) {
	switch {
	case s.matchAtomCI("MESSAGES"):
		return imap.StatusItemMessages, true
	case s.matchAtomCI("RECENT"):
		return imap.StatusItemRecent, true
	case s.matchAtomCI("UIDNEXT"):
		return imap.StatusItemUIDNext, true
	case s.matchAtomCI("UIDVALIDITY"):
		return imap.StatusItemUIDValidity, true
	case s.matchAtomCI("UNSEEN"):
		return imap.StatusItemUnseen, true
	}
	return 0, false
}

func decodeQuotaData(s *decodeState) (imap.Response, error) {
	if !s.sp() {
		return imap.Response{}, s.fail("expected SP after QUOTA")
	}
	root, ok := s.readAString()
	if !ok {
		return imap.Response{}, s.fail("expected quota root")
	}
	if !s.sp() {
		return imap.Response{}, s.fail("expected SP after quota root")
	}
	var resources []imap.QuotaResourceUsage
	ok = s.readParenList(func() bool {
		res, ok := s.readAtom()
		if !ok || !s.sp() {
			return false
		}
		usage, ok := s.d.Number64()
		if !ok || !s.sp() {
			return false
		}
		limit, ok := s.d.Number64()
		if !ok {
			return false
		}
		resources = append(resources, imap.QuotaResourceUsage{Resource: res, Usage: usage, Limit: limit})
		return true
	})
	if !ok {
		return imap.Response{}, s.fail("expected quota resource list")
	}
	s.trailingSP()
	if !s.crlf() {
		return imap.Response{}, s.fail("expected CRLF after QUOTA data")
	}
	return imap.ResponseOfData(imap.DataOfQuota(imap.QuotaData{Root: root, Resources: resources})), nil
}

func decodeQuotaRootData(s *decodeState) (imap.Response, error) {
	if !s.sp() {
		return imap.Response{}, s.fail("expected SP after QUOTAROOT")
	}
	mbx, ok := s.readMailbox()
	if !ok {
		return imap.Response{}, s.fail("expected mailbox name")
	}
	var roots []imap.AString
	for {
		save := s.d.Pos()
		if !s.sp() {
			break
		}
		root, ok := s.readAString()
		if !ok {
			s.d.SetPos(save)
			break
		}
		roots = append(roots, root)
	}
	s.trailingSP()
	if !s.crlf() {
		return imap.Response{}, s.fail("expected CRLF after QUOTAROOT data")
	}
	return imap.ResponseOfData(imap.DataOfQuotaRoot(imap.QuotaRootData{Mailbox: mbx, Roots: roots})), nil
}

func decodeIDData(s *decodeState) (imap.Response, error) {
	if !s.sp() {
		return imap.Response{}, s.fail("expected SP after ID")
	}
	if s.matchNil() {
		if !s.crlf() {
			return imap.Response{}, s.fail("expected CRLF after ID data")
		}
		return imap.ResponseOfData(imap.DataOfID(nil)), nil
	}
	var fields []imap.IDField
	ok := s.readParenList(func() bool {
		key, ok := s.d.Quoted()
		if !ok {
			return false
		}
		kq, err := imap.TryQuoted(key)
		if err != nil || !s.sp() {
			return false
		}
		value, ok := s.readNString()
		if !ok {
			return false
		}
		fields = append(fields, imap.IDField{Key: kq, Value: value})
		return true
	})
	if !ok {
		return imap.Response{}, s.fail("expected NIL or ID field list")
	}
	if fields == nil {
		fields = []imap.IDField{}
	}
	s.trailingSP()
	if !s.crlf() {
		return imap.Response{}, s.fail("expected CRLF after ID data")
	}
	return imap.ResponseOfData(imap.DataOfID(fields)), nil
}

// readRespText parses resp-text: an optional bracketed code followed
// by human-readable text. If the first byte is "[", a code must parse
// up to its closing "]"; unrecognized bracketed content is captured
// verbatim as a CodeOther rather than rejected.
func readRespText(s *decodeState) (*imap.Code, imap.Text, error) {
	if !s.sp() {
		return nil, imap.Text{}, s.fail("expected SP before resp-text")
	}
	var code *imap.Code
	if s.d.Byte('[') {
		c, err := readCode(s)
		if err != nil {
			return nil, imap.Text{}, err
		}
		if !s.d.Byte(']') {
			return nil, imap.Text{}, s.fail("expected ] after response code")
		}
		code = &c
		if !s.sp() {
			// "[CODE]\r\n" with no trailing text: only legal under the
			// MissingText quirk, which synthesizes a placeholder.
			if s.q.MissingText {
				return code, imap.UnvalidatedText([]byte("...")), nil
			}
			return nil, imap.Text{}, s.fail("expected SP after response code")
		}
	}
	text, ok := s.readTextToEOL()
	if !ok {
		return nil, imap.Text{}, s.fail("expected resp-text")
	}
	return code, text, nil
}

// readCode parses the content between "[" and "]". A recognized code
// must also be immediately followed by the closing bracket; anything
// else backtracks and is preserved verbatim as CodeOther.
func readCode(s *decodeState) (imap.Code, error) {
	save := s.d.Pos()
	if c, ok := readKnownCode(s); ok {
		if b, _ := s.d.Peek(); b == ']' {
			return c, nil
		}
	}
	s.d.SetPos(save)
	start := s.d.Pos()
	for {
		b, ok := s.d.Peek()
		if !ok || b == '\r' || b == '\n' {
			return imap.Code{}, s.fail("unterminated response code")
		}
		if b == ']' {
			break
		}
		s.d.Advance(1)
	}
	raw := s.d.Slice(start, s.d.Pos())
	if len(raw) == 0 {
		return imap.Code{}, errSyntax(start, "empty response code")
	}
	return imap.CodeOtherCode(raw), nil
}

func readKnownCode(s *decodeState) (imap.Code, bool) {
	switch {
	case s.matchAtomCI("ALERT"):
		return imap.CodeAlertCode(), true
	case s.matchAtomCI("PARSE"):
		return imap.CodeParseCode(), true
	case s.matchAtomCI("READ-ONLY"):
		return imap.CodeReadOnlyCode(), true
	case s.matchAtomCI("READ-WRITE"):
		return imap.CodeReadWriteCode(), true
	case s.matchAtomCI("TRYCREATE"):
		return imap.CodeTryCreateCode(), true
	case s.matchAtomCI("UIDNOTSTICKY"):
		return imap.CodeUIDNotStickyCode(), true
	case s.matchAtomCI("COMPRESSIONACTIVE"):
		return imap.CodeCompressionActiveCode(), true
	case s.matchAtomCI("OVERQUOTA"):
		return imap.CodeOverQuotaCode(), true
	case s.matchAtomCI("TOOBIG"):
		return imap.CodeTooBigCode(), true
	case s.matchAtomCI("UNKNOWN-CTE"):
		return imap.CodeUnknownCTECode(), true
	case s.matchAtomCI("BADCHARSET"):
		var charsets []imap.Charset
		save := s.d.Pos()
		if s.sp() {
			ok := s.readParenList(func() bool {
				cs, ok := s.readCharset()
				if ok {
					charsets = append(charsets, cs)
				}
				return ok
			})
			if !ok {
				s.d.SetPos(save)
			}
		}
		return imap.CodeBadCharsetCode(charsets), true
	case s.matchAtomCI("CAPABILITY"):
		caps, err := readCapabilities(s)
		if err != nil || len(caps) == 0 {
			return imap.Code{}, false
		}
		return imap.CodeCapabilityCode(caps), true
	case s.matchAtomCI("PERMANENTFLAGS"):
		if !s.sp() {
			return imap.Code{}, false
		}
		var flags []imap.FlagPerm
		ok := s.readParenList(func() bool {
			f, ok := s.readFlagPerm()
			if ok {
				flags = append(flags, f)
			}
			return ok
		})
		if !ok {
			return imap.Code{}, false
		}
		return imap.CodePermanentFlagsCode(flags), true
	case s.matchAtomCI("UIDNEXT"):
		if !s.sp() {
			return imap.Code{}, false
		}
		n, ok := s.readNzNumber()
		if !ok {
			return imap.Code{}, false
		}
		return imap.CodeUIDNextCode(n), true
	case s.matchAtomCI("UIDVALIDITY"):
		if !s.sp() {
			return imap.Code{}, false
		}
		n, ok := s.readNzNumber()
		if !ok {
			return imap.Code{}, false
		}
		return imap.CodeUIDValidityCode(n), true
	case s.matchAtomCI("UNSEEN"):
		if !s.sp() {
			return imap.Code{}, false
		}
		n, ok := s.readNzNumber()
		if !ok {
			return imap.Code{}, false
		}
		return imap.CodeUnseenCode(n), true
	case s.matchAtomCI("APPENDUID"):
		if !s.sp() {
			return imap.Code{}, false
		}
		validity, ok := s.readNzNumber()
		if !ok || !s.sp() {
			return imap.Code{}, false
		}
		uid, ok := s.readNzNumber()
		if !ok {
			return imap.Code{}, false
		}
		return imap.CodeAppendUIDCode(validity, uid), true
	case s.matchAtomCI("COPYUID"):
		if !s.sp() {
			return imap.Code{}, false
		}
		validity, ok := s.readNzNumber()
		if !ok || !s.sp() {
			return imap.Code{}, false
		}
		src, ok := s.readSequenceSet()
		if !ok || !s.sp() {
			return imap.Code{}, false
		}
		dst, ok := s.readSequenceSet()
		if !ok {
			return imap.Code{}, false
		}
		return imap.CodeCopyUIDCode(validity, src, dst), true
	}
	return imap.Code{}, false
}

// readCapabilities reads `1*(SP capability)`.
func readCapabilities(s *decodeState) ([]imap.Capability, error) {
	var caps []imap.Capability
	for {
		save := s.d.Pos()
		if !s.sp() {
			break
		}
		a, ok := s.readAtom()
		if !ok {
			s.d.SetPos(save)
			break
		}
		caps = append(caps, parseCapability(a))
	}
	if len(caps) == 0 {
		return nil, s.fail("expected at least one capability")
	}
	return caps, nil
}

// parseCapability maps one capability atom to its typed form.
func parseCapability(a imap.Atom) imap.Capability {
	name := a.String()
	eq := -1
	for i := 0; i < len(name); i++ {
		if name[i] == '=' {
			eq = i
			break
		}
	}
	if eq >= 0 {
		head, param := name[:eq], name[eq+1:]
		switch {
		case equalsCI(head, "AUTH"):
			return imap.CapabilityWithParam(imap.CapabilityAuth, param)
		case equalsCI(head, "COMPRESS"):
			return imap.CapabilityWithParam(imap.CapabilityCompress, param)
		case equalsCI(head, "QUOTA"):
			return imap.CapabilityWithParam(imap.CapabilityQuotaRes, param)
		case equalsCI(head, "SORT"):
			return imap.CapabilityWithParam(imap.CapabilitySort, param)
		case equalsCI(head, "THREAD"):
			return imap.CapabilityWithParam(imap.CapabilityThread, param)
		}
		return imap.CapabilityOtherAtom(a)
	}
	switch {
	case equalsCI(name, "IMAP4rev1"):
		return imap.CapabilitySimple(imap.CapabilityIMAP4rev1)
	case equalsCI(name, "STARTTLS"):
		return imap.CapabilitySimple(imap.CapabilityStartTLS)
	case equalsCI(name, "IDLE"):
		return imap.CapabilitySimple(imap.CapabilityIdle)
	case equalsCI(name, "ENABLE"):
		return imap.CapabilitySimple(imap.CapabilityEnable)
	case equalsCI(name, "QUOTA"):
		return imap.CapabilitySimple(imap.CapabilityQuota)
	case equalsCI(name, "QUOTASET"):
		return imap.CapabilitySimple(imap.CapabilityQuotaSet)
	case equalsCI(name, "LITERAL+"):
		return imap.CapabilitySimple(imap.CapabilityLiteralPlus)
	case equalsCI(name, "LITERAL-"):
		return imap.CapabilitySimple(imap.CapabilityLiteralMinus)
	case equalsCI(name, "MOVE"):
		return imap.CapabilitySimple(imap.CapabilityMove)
	case equalsCI(name, "ID"):
		return imap.CapabilitySimple(imap.CapabilityID)
	case equalsCI(name, "UNSELECT"):
		return imap.CapabilitySimple(imap.CapabilityUnselect)
	case equalsCI(name, "SORT"):
		return imap.CapabilitySimple(imap.CapabilitySort)
	case equalsCI(name, "METADATA"):
		return imap.CapabilitySimple(imap.CapabilityMetadata)
	case equalsCI(name, "METADATA-SERVER"):
		return imap.CapabilitySimple(imap.CapabilityMetadataServer)
	case equalsCI(name, "BINARY"):
		return imap.CapabilitySimple(imap.CapabilityBinary)
	case equalsCI(name, "UIDPLUS"):
		return imap.CapabilitySimple(imap.CapabilityUIDPlus)
	}
	return imap.CapabilityOtherAtom(a)
}

func equalsCI(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if upper(a[i]) != upper(b[i]) {
			return false
		}
	}
	return true
}
