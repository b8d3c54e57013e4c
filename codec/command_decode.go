package codec

import (
	"time"

	"github.com/nugget/imapwire/imap"
)

// decodeCommand parses `tag SP command-body CRLF`, including any
// literal payloads embedded in the message buffer.
func decodeCommand(s *decodeState) (imap.Command, error) {
	start := s.d.Pos()
	token, ok := s.d.Atom()
	if !ok {
		return imap.Command{}, s.fail("expected command tag")
	}
	tag, err := imap.TryTag([]byte(token))
	if err != nil {
		return imap.Command{}, errSyntax(start, "invalid command tag")
	}
	if !s.sp() {
		return imap.Command{}, s.fail("expected SP after tag")
	}
	body, err := decodeCommandBody(s, false)
	if err != nil {
		return imap.Command{}, err
	}
	if !s.crlf() {
		return imap.Command{}, s.fail("expected CRLF after command")
	}
	return imap.Command{Tag: tag, Body: body}, nil
}

// decodeCommandBody dispatches on the command name. uid is true when
// the body follows a "UID " prefix, which only FETCH, STORE, COPY,
// MOVE, and SEARCH accept.
func decodeCommandBody(s *decodeState, uid bool) (imap.CommandBody, error) {
	if !uid {
		switch {
		case s.matchAtomCI("CAPABILITY"):
			return imap.NewCapabilityCmd(), nil
		case s.matchAtomCI("NOOP"):
			return imap.NewNoopCmd(), nil
		case s.matchAtomCI("LOGOUT"):
			return imap.NewLogoutCmd(), nil
		case s.matchAtomCI("STARTTLS"):
			return imap.NewStartTLSCmd(), nil
		case s.matchAtomCI("CHECK"):
			return imap.NewCheckCmd(), nil
		case s.matchAtomCI("CLOSE"):
			return imap.NewCloseCmd(), nil
		case s.matchAtomCI("EXPUNGE"):
			return imap.NewExpungeCmd(), nil
		case s.matchAtomCI("IDLE"):
			return imap.NewIdleCmd(), nil
		case s.matchAtomCI("UNSELECT"):
			return imap.NewUnselectCmd(), nil
		case s.matchAtomCI("LOGIN"):
			return decodeLogin(s)
		case s.matchAtomCI("AUTHENTICATE"):
			return decodeAuthenticate(s)
		case s.matchAtomCI("SELECT"):
			return decodeMailboxArg(s, func(m imap.Mailbox) imap.CommandBody { return imap.NewSelectCmd(m) })
		case s.matchAtomCI("EXAMINE"):
			return decodeMailboxArg(s, func(m imap.Mailbox) imap.CommandBody { return imap.NewExamineCmd(m) })
		case s.matchAtomCI("CREATE"):
			return decodeMailboxArg(s, func(m imap.Mailbox) imap.CommandBody { return imap.NewCreateCmd(m) })
		case s.matchAtomCI("DELETE"):
			return decodeMailboxArg(s, func(m imap.Mailbox) imap.CommandBody { return imap.NewDeleteCmd(m) })
		case s.matchAtomCI("SUBSCRIBE"):
			return decodeMailboxArg(s, func(m imap.Mailbox) imap.CommandBody { return imap.NewSubscribeCmd(m) })
		case s.matchAtomCI("UNSUBSCRIBE"):
			return decodeMailboxArg(s, func(m imap.Mailbox) imap.CommandBody { return imap.NewUnsubscribeCmd(m) })
		case s.matchAtomCI("RENAME"):
			return decodeRename(s)
		case s.matchAtomCI("LIST"):
			return decodeList(s, false)
		case s.matchAtomCI("LSUB"):
			return decodeList(s, true)
		case s.matchAtomCI("STATUS"):
			return decodeStatus(s)
		case s.matchAtomCI("APPEND"):
			return decodeAppend(s)
		case s.matchAtomCI("ENABLE"):
			return decodeEnable(s)
		case s.matchAtomCI("COMPRESS"):
			return decodeCompress(s)
		case s.matchAtomCI("ID"):
			return decodeID(s)
		case s.matchAtomCI("GETQUOTAROOT"):
			return decodeMailboxArg(s, func(m imap.Mailbox) imap.CommandBody { return imap.NewGetQuotaRootCmd(m) })
		case s.matchAtomCI("GETQUOTA"):
			return decodeGetQuota(s)
		case s.matchAtomCI("SETQUOTA"):
			return decodeSetQuota(s)
		case s.matchAtomCI("UID"):
			if !s.sp() {
				return nil, s.fail("expected SP after UID")
			}
			return decodeCommandBody(s, true)
		}
	}
	switch {
	case s.matchAtomCI("FETCH"):
		return decodeFetch(s, uid)
	case s.matchAtomCI("STORE"):
		return decodeStore(s, uid)
	case s.matchAtomCI("COPY"):
		return decodeCopyMove(s, uid, false)
	case s.matchAtomCI("MOVE"):
		return decodeCopyMove(s, uid, true)
	case s.matchAtomCI("SEARCH"):
		return decodeSearch(s, uid)
	}
	if uid {
		return nil, s.fail("expected FETCH, STORE, COPY, MOVE, or SEARCH after UID")
	}
	return nil, s.fail("unrecognized command")
}

func decodeLogin(s *decodeState) (imap.CommandBody, error) {
	if !s.sp() {
		return nil, s.fail("expected SP after LOGIN")
	}
	username, ok := s.readAString()
	if !ok {
		return nil, s.fail("expected username")
	}
	if !s.sp() {
		return nil, s.fail("expected SP after username")
	}
	password, ok := s.readAString()
	if !ok {
		return nil, s.fail("expected password")
	}
	return imap.NewLoginCmd(username, password), nil
}

func decodeAuthenticate(s *decodeState) (imap.CommandBody, error) {
	if !s.sp() {
		return nil, s.fail("expected SP after AUTHENTICATE")
	}
	mech, ok := s.readAtom()
	if !ok {
		return nil, s.fail("expected SASL mechanism")
	}
	var initial *imap.Secret[[]byte]
	save := s.d.Pos()
	if s.sp() {
		// SASL-IR: "=" stands for a zero-length initial response.
		if s.d.Byte('=') {
			sec := imap.NewSecret([]byte{})
			initial = &sec
		} else if data, ok := s.readBase64ToEOL(); ok {
			sec := imap.NewSecret(data)
			initial = &sec
		} else {
			s.d.SetPos(save)
		}
	}
	return imap.NewAuthenticateCmd(mech, initial), nil
}

func decodeMailboxArg(s *decodeState, build func(imap.Mailbox) imap.CommandBody) (imap.CommandBody, error) {
	if !s.sp() {
		return nil, s.fail("expected SP before mailbox")
	}
	m, ok := s.readMailbox()
	if !ok {
		return nil, s.fail("expected mailbox name")
	}
	return build(m), nil
}

func decodeRename(s *decodeState) (imap.CommandBody, error) {
	if !s.sp() {
		return nil, s.fail("expected SP after RENAME")
	}
	from, ok := s.readMailbox()
	if !ok {
		return nil, s.fail("expected source mailbox")
	}
	if !s.sp() {
		return nil, s.fail("expected SP after source mailbox")
	}
	to, ok := s.readMailbox()
	if !ok {
		return nil, s.fail("expected destination mailbox")
	}
	return imap.NewRenameCmd(from, to), nil
}

func decodeList(s *decodeState, lsub bool) (imap.CommandBody, error) {
	if !s.sp() {
		return nil, s.fail("expected SP after LIST/LSUB")
	}
	ref, ok := s.readMailbox()
	if !ok {
		return nil, s.fail("expected reference name")
	}
	if !s.sp() {
		return nil, s.fail("expected SP after reference")
	}
	pattern, ok := s.readListMailbox()
	if !ok {
		return nil, s.fail("expected mailbox pattern")
	}
	if lsub {
		return imap.NewLsubCmd(ref, pattern), nil
	}
	return imap.NewListCmd(ref, pattern), nil
}

func decodeStatus(s *decodeState) (imap.CommandBody, error) {
	if !s.sp() {
		return nil, s.fail("expected SP after STATUS")
	}
	mbx, ok := s.readMailbox()
	if !ok {
		return nil, s.fail("expected mailbox name")
	}
	if !s.sp() {
		return nil, s.fail("expected SP after mailbox")
	}
	var items []imap.StatusItem
	ok = s.readParenList(func() bool {
		item, ok := readStatusItem(s)
		if ok {
			items = append(items, item)
		}
		return ok
	})
	if !ok {
		return nil, s.fail("expected status item list")
	}
	cmd, err := imap.NewStatusCmd(mbx, items)
	if err != nil {
		return nil, errSyntax(s.d.Pos(), err.Error())
	}
	return cmd, nil
}

func decodeAppend(s *decodeState) (imap.CommandBody, error) {
	if !s.sp() {
		return nil, s.fail("expected SP after APPEND")
	}
	mbx, ok := s.readMailbox()
	if !ok {
		return nil, s.fail("expected mailbox name")
	}
	if !s.sp() {
		return nil, s.fail("expected SP after mailbox")
	}
	var flags []imap.Flag
	if b, _ := s.d.Peek(); b == '(' {
		ok := s.readParenList(func() bool {
			f, ok := s.readFlag()
			if ok {
				flags = append(flags, f)
			}
			return ok
		})
		if !ok {
			return nil, s.fail("expected flag list")
		}
		if !s.sp() {
			return nil, s.fail("expected SP after flag list")
		}
	}
	var date *time.Time
	if b, _ := s.d.Peek(); b == '"' {
		t, ok := s.readDateTime()
		if !ok {
			return nil, s.fail("expected internal date")
		}
		date = &t
		if !s.sp() {
			return nil, s.fail("expected SP after internal date")
		}
	}
	message, ok := s.readLiteral()
	if !ok {
		return nil, s.fail("expected message literal")
	}
	return imap.NewAppendCmd(mbx, flags, date, message), nil
}

func decodeEnable(s *decodeState) (imap.CommandBody, error) {
	caps, err := readCapabilities(s)
	if err != nil {
		return nil, err
	}
	cmd, cerr := imap.NewEnableCmd(caps)
	if cerr != nil {
		return nil, errSyntax(s.d.Pos(), cerr.Error())
	}
	return cmd, nil
}

func decodeCompress(s *decodeState) (imap.CommandBody, error) {
	if !s.sp() {
		return nil, s.fail("expected SP after COMPRESS")
	}
	alg, ok := s.readAtom()
	if !ok {
		return nil, s.fail("expected compression algorithm")
	}
	return imap.NewCompressCmd(alg), nil
}

func decodeID(s *decodeState) (imap.CommandBody, error) {
	if !s.sp() {
		return nil, s.fail("expected SP after ID")
	}
	if s.matchNil() {
		return imap.NewIDCmd(nil), nil
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
		return nil, s.fail("expected NIL or ID field list")
	}
	if fields == nil {
		// "()" and "NIL" are distinct on the wire; an empty non-nil
		// slice records that the parenthesized form was used.
		fields = []imap.IDField{}
	}
	return imap.NewIDCmd(fields), nil
}

func decodeGetQuota(s *decodeState) (imap.CommandBody, error) {
	if !s.sp() {
		return nil, s.fail("expected SP after GETQUOTA")
	}
	root, ok := s.readAString()
	if !ok {
		return nil, s.fail("expected quota root")
	}
	return imap.NewGetQuotaCmd(root), nil
}

func decodeSetQuota(s *decodeState) (imap.CommandBody, error) {
	if !s.sp() {
		return nil, s.fail("expected SP after SETQUOTA")
	}
	root, ok := s.readAString()
	if !ok {
		return nil, s.fail("expected quota root")
	}
	if !s.sp() {
		return nil, s.fail("expected SP after quota root")
	}
	var limits []imap.QuotaResourceLimit
	ok = s.readParenList(func() bool {
		res, ok := s.readAtom()
		if !ok || !s.sp() {
			return false
		}
		limit, ok := s.d.Number64()
		if !ok {
			return false
		}
		limits = append(limits, imap.QuotaResourceLimit{Resource: res, Limit: limit})
		return true
	})
	if !ok {
		return nil, s.fail("expected quota limit list")
	}
	return imap.NewSetQuotaCmd(root, limits), nil
}

func decodeFetch(s *decodeState, uid bool) (imap.CommandBody, error) {
	if !s.sp() {
		return nil, s.fail("expected SP after FETCH")
	}
	set, ok := s.readSequenceSet()
	if !ok {
		return nil, s.fail("expected sequence set")
	}
	if !s.sp() {
		return nil, s.fail("expected SP after sequence set")
	}
	var items []imap.FetchItem
	switch {
	case s.matchAtomCI("ALL"):
		items = append(items, imap.FetchItemSimple(imap.FetchItemMacroAll))
	case s.matchAtomCI("FAST"):
		items = append(items, imap.FetchItemSimple(imap.FetchItemMacroFast))
	case s.matchAtomCI("FULL"):
		items = append(items, imap.FetchItemSimple(imap.FetchItemMacroFull))
	default:
		if b, _ := s.d.Peek(); b == '(' {
			ok := s.readParenList(func() bool {
				item, ok := readFetchItem(s)
				if ok {
					items = append(items, item)
				}
				return ok
			})
			if !ok {
				return nil, s.fail("expected fetch item list")
			}
		} else {
			item, ok := readFetchItem(s)
			if !ok {
				return nil, s.fail("expected fetch item")
			}
			items = append(items, item)
		}
	}
	cmd, err := imap.NewFetchCmd(set, items, uid)
	if err != nil {
		return nil, errSyntax(s.d.Pos(), err.Error())
	}
	return cmd, nil
}

// readFetchItem parses one fetch-att.
func readFetchItem(s *decodeState) (imap.FetchItem, bool) {
	switch {
	case s.matchAtomCI("ENVELOPE"):
		return imap.FetchItemSimple(imap.FetchItemEnvelope), true
	case s.matchAtomCI("FLAGS"):
		return imap.FetchItemSimple(imap.FetchItemFlags), true
	case s.matchAtomCI("INTERNALDATE"):
		return imap.FetchItemSimple(imap.FetchItemInternalDate), true
	case s.matchAtomCI("RFC822.SIZE"):
		return imap.FetchItemSimple(imap.FetchItemRFC822Size), true
	case s.matchAtomCI("UID"):
		return imap.FetchItemSimple(imap.FetchItemUID), true
	case s.matchAtomCI("BODYSTRUCTURE"):
		return imap.FetchItemSimple(imap.FetchItemBodyStructureExtended), true
	}
	// "[" is an atom-char, so matchAtomCI refuses BODY and BODY.PEEK
	// when a section follows; the bracketed forms are matched first.
	bracketed := func(word string) bool {
		r := s.d.Remaining()
		if len(r) <= len(word) || r[len(word)] != '[' || !equalsCI(string(r[:len(word)]), word) {
			return false
		}
		s.d.Advance(len(word))
		return true
	}
	peek := false
	switch {
	case bracketed("BODY.PEEK"):
		peek = true
	case bracketed("BODY"):
	case s.matchAtomCI("BODY.PEEK"):
		peek = true
	case s.matchAtomCI("BODY"):
	default:
		return imap.FetchItem{}, false
	}
	if !s.d.Byte('[') {
		if peek {
			return imap.FetchItem{}, false
		}
		return imap.FetchItemSimple(imap.FetchItemBodyStructure), true
	}
	start := s.d.Pos()
	for {
		b, ok := s.d.Peek()
		if !ok || b == '\r' || b == '\n' {
			return imap.FetchItem{}, false
		}
		if b == ']' {
			break
		}
		s.d.Advance(1)
	}
	section := string(s.d.Slice(start, s.d.Pos()))
	s.d.Advance(1) // the ]
	var partial *[2]uint32
	if s.d.Byte('<') {
		a, ok := s.readNumber()
		if !ok || !s.d.Byte('.') {
			return imap.FetchItem{}, false
		}
		b, ok := s.readNzNumber()
		if !ok || !s.d.Byte('>') {
			return imap.FetchItem{}, false
		}
		partial = &[2]uint32{a, b}
	}
	return imap.FetchItemBodySectionOf(section, peek, partial), true
}

func decodeStore(s *decodeState, uid bool) (imap.CommandBody, error) {
	if !s.sp() {
		return nil, s.fail("expected SP after STORE")
	}
	set, ok := s.readSequenceSet()
	if !ok {
		return nil, s.fail("expected sequence set")
	}
	if !s.sp() {
		return nil, s.fail("expected SP after sequence set")
	}
	kind := imap.StoreReplace
	if s.d.Byte('+') {
		kind = imap.StoreAdd
	} else if s.d.Byte('-') {
		kind = imap.StoreRemove
	}
	if !s.matchAtomCI("FLAGS.SILENT") {
		if !s.matchAtomCI("FLAGS") {
			return nil, s.fail("expected FLAGS")
		}
		return decodeStoreFlags(s, set, kind, false, uid)
	}
	return decodeStoreFlags(s, set, kind, true, uid)
}

func decodeStoreFlags(s *decodeState, set imap.SequenceSet, kind imap.StoreKind, silent, uid bool) (imap.CommandBody, error) {
	if !s.sp() {
		return nil, s.fail("expected SP after FLAGS")
	}
	var flags []imap.StoreFlag
	appendFlag := func() bool {
		f, ok := s.readFlag()
		if !ok {
			return false
		}
		sf, err := imap.NewStoreFlag(f)
		if err != nil {
			return false
		}
		flags = append(flags, sf)
		return true
	}
	if b, _ := s.d.Peek(); b == '(' {
		if !s.readParenList(appendFlag) {
			return nil, s.fail("expected flag list")
		}
	} else {
		// The grammar also allows a bare space-separated flag run.
		if !appendFlag() {
			return nil, s.fail("expected at least one flag")
		}
		for {
			save := s.d.Pos()
			if !s.sp() {
				break
			}
			if !appendFlag() {
				s.d.SetPos(save)
				break
			}
		}
	}
	return imap.NewStoreCmd(set, kind, silent, flags, uid), nil
}

func decodeCopyMove(s *decodeState, uid, move bool) (imap.CommandBody, error) {
	if !s.sp() {
		return nil, s.fail("expected SP after COPY/MOVE")
	}
	set, ok := s.readSequenceSet()
	if !ok {
		return nil, s.fail("expected sequence set")
	}
	if !s.sp() {
		return nil, s.fail("expected SP after sequence set")
	}
	mbx, ok := s.readMailbox()
	if !ok {
		return nil, s.fail("expected mailbox name")
	}
	if move {
		return imap.NewMoveCmd(set, mbx, uid), nil
	}
	return imap.NewCopyCmd(set, mbx, uid), nil
}

func decodeSearch(s *decodeState, uid bool) (imap.CommandBody, error) {
	if !s.sp() {
		return nil, s.fail("expected SP after SEARCH")
	}
	var charset *imap.Charset
	if s.matchAtomCI("CHARSET") {
		if !s.sp() {
			return nil, s.fail("expected SP after CHARSET")
		}
		cs, ok := s.readCharset()
		if !ok {
			return nil, s.fail("expected charset")
		}
		charset = &cs
		if !s.sp() {
			return nil, s.fail("expected SP after charset")
		}
	}
	var keys []imap.SearchKey
	for {
		key, err := readSearchKey(s, s.limit)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
		save := s.d.Pos()
		if !s.sp() {
			break
		}
		if b, _ := s.d.Peek(); b == '\r' || b == '\n' {
			s.d.SetPos(save)
			break
		}
	}
	cmd, err := imap.NewSearchCmd(charset, keys, uid)
	if err != nil {
		return nil, errSyntax(s.d.Pos(), err.Error())
	}
	return cmd, nil
}

// readSearchKey parses one recursive search-key with an explicit
// depth budget.
func readSearchKey(s *decodeState, depth int) (imap.SearchKey, error) {
	if depth <= 0 {
		return imap.SearchKey{}, errRecursion(s.d.Pos())
	}
	if s.d.Byte('(') {
		var keys []imap.SearchKey
		for {
			key, err := readSearchKey(s, depth-1)
			if err != nil {
				return imap.SearchKey{}, err
			}
			keys = append(keys, key)
			if s.d.Byte(')') {
				break
			}
			if !s.sp() {
				return imap.SearchKey{}, s.fail("expected SP or ) in search key group")
			}
		}
		return imap.SearchAndKey(keys), nil
	}

	switch {
	case s.matchAtomCI("ALL"):
		return imap.SearchAllKey(), nil
	case s.matchAtomCI("ANSWERED"):
		return imap.SearchAnsweredKey(), nil
	case s.matchAtomCI("DELETED"):
		return imap.SearchDeletedKey(), nil
	case s.matchAtomCI("DRAFT"):
		return imap.SearchDraftKey(), nil
	case s.matchAtomCI("FLAGGED"):
		return imap.SearchFlaggedKey(), nil
	case s.matchAtomCI("NEW"):
		return imap.SearchNewKey(), nil
	case s.matchAtomCI("OLD"):
		return imap.SearchOldKey(), nil
	case s.matchAtomCI("RECENT"):
		return imap.SearchRecentKey(), nil
	case s.matchAtomCI("SEEN"):
		return imap.SearchSeenKey(), nil
	case s.matchAtomCI("UNANSWERED"):
		return imap.SearchUnansweredKey(), nil
	case s.matchAtomCI("UNDELETED"):
		return imap.SearchUndeletedKey(), nil
	case s.matchAtomCI("UNDRAFT"):
		return imap.SearchUndraftKey(), nil
	case s.matchAtomCI("UNFLAGGED"):
		return imap.SearchUnflaggedKey(), nil
	case s.matchAtomCI("UNSEEN"):
		return imap.SearchUnseenKey(), nil
	case s.matchAtomCI("BCC"):
		return readSearchAStringKey(s, imap.SearchBccKey)
	case s.matchAtomCI("BODY"):
		return readSearchAStringKey(s, imap.SearchBodyKey)
	case s.matchAtomCI("CC"):
		return readSearchAStringKey(s, imap.SearchCcKey)
	case s.matchAtomCI("FROM"):
		return readSearchAStringKey(s, imap.SearchFromKey)
	case s.matchAtomCI("SUBJECT"):
		return readSearchAStringKey(s, imap.SearchSubjectKey)
	case s.matchAtomCI("TEXT"):
		return readSearchAStringKey(s, imap.SearchTextKey)
	case s.matchAtomCI("TO"):
		return readSearchAStringKey(s, imap.SearchToKey)
	case s.matchAtomCI("KEYWORD"):
		return readSearchKeywordKey(s, imap.SearchKeywordKey)
	case s.matchAtomCI("UNKEYWORD"):
		return readSearchKeywordKey(s, imap.SearchUnkeywordKey)
	case s.matchAtomCI("HEADER"):
		if !s.sp() {
			return imap.SearchKey{}, s.fail("expected SP after HEADER")
		}
		field, ok := s.readAString()
		if !ok {
			return imap.SearchKey{}, s.fail("expected header field name")
		}
		if !s.sp() {
			return imap.SearchKey{}, s.fail("expected SP after header field name")
		}
		value, ok := s.readAString()
		if !ok {
			return imap.SearchKey{}, s.fail("expected header value")
		}
		return imap.SearchHeaderKey(field.String(), value), nil
	case s.matchAtomCI("BEFORE"):
		return readSearchDateKey(s, imap.SearchBeforeKey)
	case s.matchAtomCI("ON"):
		return readSearchDateKey(s, imap.SearchOnKey)
	case s.matchAtomCI("SINCE"):
		return readSearchDateKey(s, imap.SearchSinceKey)
	case s.matchAtomCI("SENTBEFORE"):
		return readSearchDateKey(s, imap.SearchSentBeforeKey)
	case s.matchAtomCI("SENTON"):
		return readSearchDateKey(s, imap.SearchSentOnKey)
	case s.matchAtomCI("SENTSINCE"):
		return readSearchDateKey(s, imap.SearchSentSinceKey)
	case s.matchAtomCI("LARGER"):
		return readSearchSizeKey(s, imap.SearchLargerKey)
	case s.matchAtomCI("SMALLER"):
		return readSearchSizeKey(s, imap.SearchSmallerKey)
	case s.matchAtomCI("UID"):
		if !s.sp() {
			return imap.SearchKey{}, s.fail("expected SP after UID")
		}
		set, ok := s.readSequenceSet()
		if !ok {
			return imap.SearchKey{}, s.fail("expected sequence set")
		}
		return imap.SearchUIDKey(set), nil
	case s.matchAtomCI("NOT"):
		if !s.sp() {
			return imap.SearchKey{}, s.fail("expected SP after NOT")
		}
		key, err := readSearchKey(s, depth-1)
		if err != nil {
			return imap.SearchKey{}, err
		}
		return imap.SearchNotKey(key), nil
	case s.matchAtomCI("OR"):
		if !s.sp() {
			return imap.SearchKey{}, s.fail("expected SP after OR")
		}
		a, err := readSearchKey(s, depth-1)
		if err != nil {
			return imap.SearchKey{}, err
		}
		if !s.sp() {
			return imap.SearchKey{}, s.fail("expected SP between OR keys")
		}
		b, err := readSearchKey(s, depth-1)
		if err != nil {
			return imap.SearchKey{}, err
		}
		return imap.SearchOrKey(a, b), nil
	}
	if set, ok := s.readSequenceSet(); ok {
		return imap.SearchSequenceSetKey(set), nil
	}
	return imap.SearchKey{}, s.fail("unrecognized search key")
}

func readSearchAStringKey(s *decodeState, build func(imap.AString) imap.SearchKey) (imap.SearchKey, error) {
	if !s.sp() {
		return imap.SearchKey{}, s.fail("expected SP before search value")
	}
	v, ok := s.readAString()
	if !ok {
		return imap.SearchKey{}, s.fail("expected search value")
	}
	return build(v), nil
}

func readSearchKeywordKey(s *decodeState, build func(imap.Atom) imap.SearchKey) (imap.SearchKey, error) {
	if !s.sp() {
		return imap.SearchKey{}, s.fail("expected SP before keyword")
	}
	a, ok := s.readAtom()
	if !ok {
		return imap.SearchKey{}, s.fail("expected keyword")
	}
	return build(a), nil
}

func readSearchDateKey(s *decodeState, build func(time.Time) imap.SearchKey) (imap.SearchKey, error) {
	if !s.sp() {
		return imap.SearchKey{}, s.fail("expected SP before date")
	}
	t, ok := s.readSearchDate()
	if !ok {
		return imap.SearchKey{}, s.fail("expected date")
	}
	return build(t), nil
}

func readSearchSizeKey(s *decodeState, build func(uint32) imap.SearchKey) (imap.SearchKey, error) {
	if !s.sp() {
		return imap.SearchKey{}, s.fail("expected SP before size")
	}
	n, ok := s.readNumber()
	if !ok {
		return imap.SearchKey{}, s.fail("expected size")
	}
	return build(n), nil
}
