package codec

import (
	"github.com/nugget/imapwire/imap"
)

// readMessageDataItems parses the parenthesized msg-att list of a
// FETCH response.
func readMessageDataItems(s *decodeState) ([]imap.MessageDataItem, error) {
	if !s.d.Byte('(') {
		return nil, s.fail("expected ( before message data items")
	}
	var items []imap.MessageDataItem
	first := true
	for {
		if s.d.Byte(')') {
			return items, nil
		}
		if !first && !s.sp() {
			return nil, s.fail("expected SP between message data items")
		}
		first = false
		item, err := readMessageDataItem(s)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func readMessageDataItem(s *decodeState) (imap.MessageDataItem, error) {
	switch {
	case s.matchAtomCI("FLAGS"):
		if !s.sp() {
			return imap.MessageDataItem{}, s.fail("expected SP after FLAGS")
		}
		var flags []imap.FlagFetch
		ok := s.readParenList(func() bool {
			f, ok := s.readFlagFetch()
			if ok {
				flags = append(flags, f)
			}
			return ok
		})
		if !ok {
			return imap.MessageDataItem{}, s.fail("expected flag-fetch list")
		}
		return imap.MessageDataItemFlags(flags), nil
	case s.matchAtomCI("ENVELOPE"):
		if !s.sp() {
			return imap.MessageDataItem{}, s.fail("expected SP after ENVELOPE")
		}
		env, err := readEnvelope(s)
		if err != nil {
			return imap.MessageDataItem{}, err
		}
		return imap.MessageDataItemEnvelope(env), nil
	case s.matchAtomCI("INTERNALDATE"):
		if !s.sp() {
			return imap.MessageDataItem{}, s.fail("expected SP after INTERNALDATE")
		}
		date, ok := s.readNString()
		if !ok {
			return imap.MessageDataItem{}, s.fail("expected internal date")
		}
		return imap.MessageDataItemInternalDate(date), nil
	case s.matchAtomCI("RFC822.SIZE"):
		if !s.sp() {
			return imap.MessageDataItem{}, s.fail("expected SP after RFC822.SIZE")
		}
		n, ok := s.readSize()
		if !ok {
			return imap.MessageDataItem{}, s.fail("expected size")
		}
		return imap.MessageDataItemRFC822Size(n), nil
	case s.matchAtomCI("UID"):
		if !s.sp() {
			return imap.MessageDataItem{}, s.fail("expected SP after UID")
		}
		n, ok := s.readNzNumber()
		if !ok {
			return imap.MessageDataItem{}, s.fail("expected UID")
		}
		return imap.MessageDataItemUID(n), nil
	case s.matchAtomCI("BODYSTRUCTURE"):
		if !s.sp() {
			return imap.MessageDataItem{}, s.fail("expected SP after BODYSTRUCTURE")
		}
		body, err := readBody(s, s.limit)
		if err != nil {
			return imap.MessageDataItem{}, err
		}
		return imap.MessageDataItemBodyStructure(body), nil
	}
	// BODY alone is ambiguous: "BODY SP body", or "BODY[section]<origin>
	// SP nstring". The bracket decides. "[" is an atom-char, so the
	// bracketed form is matched before matchAtomCI, which would refuse it.
	if r := s.d.Remaining(); len(r) > 4 && r[4] == '[' && equalsCI(string(r[:4]), "BODY") {
		s.d.Advance(5)
		return readBodySectionItem(s)
	}
	if s.matchAtomCI("BODY") {
		if s.d.Byte('[') {
			return readBodySectionItem(s)
		}
		if !s.sp() {
			return imap.MessageDataItem{}, s.fail("expected SP or [ after BODY")
		}
		body, err := readBody(s, s.limit)
		if err != nil {
			return imap.MessageDataItem{}, err
		}
		return imap.MessageDataItemBodyStructure(body), nil
	}
	return imap.MessageDataItem{}, s.fail("unrecognized message data item")
}

// readBodySectionItem parses the remainder of "BODY[" — the section
// text, the optional "<origin>" partial marker, and the nstring
// payload.
func readBodySectionItem(s *decodeState) (imap.MessageDataItem, error) {
	start := s.d.Pos()
	for {
		b, ok := s.d.Peek()
		if !ok || b == '\r' || b == '\n' {
			return imap.MessageDataItem{}, s.fail("unterminated body section")
		}
		if b == ']' {
			break
		}
		s.d.Advance(1)
	}
	section := string(s.d.Slice(start, s.d.Pos()))
	s.d.Advance(1) // the ]
	var origin uint32
	if s.d.Byte('<') {
		n, ok := s.readNumber()
		if !ok || !s.d.Byte('>') {
			return imap.MessageDataItem{}, s.fail("malformed partial origin")
		}
		origin = n
	}
	if !s.sp() {
		return imap.MessageDataItem{}, s.fail("expected SP before section payload")
	}
	payload, ok := s.readNString()
	if !ok {
		return imap.MessageDataItem{}, s.fail("expected section payload")
	}
	return imap.MessageDataItemBodySection(section, origin, payload), nil
}

// readEnvelope parses the ten-field envelope structure.
func readEnvelope(s *decodeState) (imap.Envelope, error) {
	if !s.d.Byte('(') {
		return imap.Envelope{}, s.fail("expected ( before envelope")
	}
	var env imap.Envelope
	var ok bool
	if env.Date, ok = s.readNString(); !ok {
		return imap.Envelope{}, s.fail("expected envelope date")
	}
	if !s.sp() {
		return imap.Envelope{}, s.fail("expected SP in envelope")
	}
	if env.Subject, ok = s.readNString(); !ok {
		return imap.Envelope{}, s.fail("expected envelope subject")
	}
	lists := []*imap.AddressList{&env.From, &env.Sender, &env.ReplyTo, &env.To, &env.CC, &env.BCC}
	for _, dst := range lists {
		if !s.sp() {
			return imap.Envelope{}, s.fail("expected SP in envelope")
		}
		list, err := readAddressList(s)
		if err != nil {
			return imap.Envelope{}, err
		}
		*dst = list
	}
	if !s.sp() {
		return imap.Envelope{}, s.fail("expected SP in envelope")
	}
	if env.InReplyTo, ok = s.readNString(); !ok {
		return imap.Envelope{}, s.fail("expected envelope in-reply-to")
	}
	if !s.sp() {
		return imap.Envelope{}, s.fail("expected SP in envelope")
	}
	if env.MessageID, ok = s.readNString(); !ok {
		return imap.Envelope{}, s.fail("expected envelope message-id")
	}
	if !s.d.Byte(')') {
		return imap.Envelope{}, s.fail("expected ) after envelope")
	}
	return env, nil
}

// readAddressList parses NIL or "(" 1*address ")".
func readAddressList(s *decodeState) (imap.AddressList, error) {
	if s.matchNil() {
		return imap.NewAddressList(nil), nil
	}
	if !s.d.Byte('(') {
		return imap.AddressList{}, s.fail("expected NIL or address list")
	}
	var addrs []imap.Address
	for {
		if s.d.Byte(')') {
			break
		}
		// The grammar packs addresses back to back, but a separating
		// space is tolerated since some servers emit one.
		s.d.SP()
		if s.d.Byte(')') {
			break
		}
		addr, err := readAddress(s)
		if err != nil {
			return imap.AddressList{}, err
		}
		addrs = append(addrs, addr)
	}
	if len(addrs) == 0 {
		return imap.AddressList{}, errSyntax(s.d.Pos(), "empty address list")
	}
	return imap.NewAddressList(addrs), nil
}

func readAddress(s *decodeState) (imap.Address, error) {
	if !s.d.Byte('(') {
		return imap.Address{}, s.fail("expected ( before address")
	}
	var addr imap.Address
	var ok bool
	if addr.Name, ok = s.readNString(); !ok {
		return imap.Address{}, s.fail("expected address name")
	}
	if !s.sp() {
		return imap.Address{}, s.fail("expected SP in address")
	}
	if addr.ADL, ok = s.readNString(); !ok {
		return imap.Address{}, s.fail("expected address adl")
	}
	if !s.sp() {
		return imap.Address{}, s.fail("expected SP in address")
	}
	if addr.Mailbox, ok = s.readNString(); !ok {
		return imap.Address{}, s.fail("expected address mailbox")
	}
	if !s.sp() {
		return imap.Address{}, s.fail("expected SP in address")
	}
	if addr.Host, ok = s.readNString(); !ok {
		return imap.Address{}, s.fail("expected address host")
	}
	if !s.d.Byte(')') {
		return imap.Address{}, s.fail("expected ) after address")
	}
	return addr, nil
}

// readBody parses the recursive body production with an explicit
// depth budget. Exhausting the budget fails with
// ParseErrorRecursionLimitExceeded instead of recursing further.
func readBody(s *decodeState, depth int) (imap.BodyStructure, error) {
	if depth <= 0 {
		return imap.BodyStructure{}, errRecursion(s.d.Pos())
	}
	if !s.d.Byte('(') {
		return imap.BodyStructure{}, s.fail("expected ( before body")
	}
	if b, _ := s.d.Peek(); b == '(' {
		return readBodyMulti(s, depth)
	}
	return readBodySingle(s, depth)
}

// readBodyMulti parses the tail of a multipart body: 1*body SP
// subtype [SP ext-mult] ")". The opening "(" was already consumed.
func readBodyMulti(s *decodeState, depth int) (imap.BodyStructure, error) {
	var parts []imap.BodyStructure
	for {
		if b, _ := s.d.Peek(); b != '(' {
			break
		}
		part, err := readBody(s, depth-1)
		if err != nil {
			return imap.BodyStructure{}, err
		}
		parts = append(parts, part)
	}
	if !s.sp() {
		return imap.BodyStructure{}, s.fail("expected SP after multipart bodies")
	}
	subtype, ok := s.readIString()
	if !ok {
		return imap.BodyStructure{}, s.fail("expected multipart subtype")
	}
	ext, err := readMultipartExt(s, depth)
	if err != nil {
		return imap.BodyStructure{}, err
	}
	if !s.d.Byte(')') {
		return imap.BodyStructure{}, s.fail("expected ) after multipart body")
	}
	body, berr := imap.NewMultiBodyStructure(parts, imap.AStringFromIString(subtype), ext)
	if berr != nil {
		return imap.BodyStructure{}, errSyntax(s.d.Pos(), berr.Error())
	}
	return body, nil
}

// readBodySingle parses the tail of a single-part body. The opening
// "(" was already consumed.
func readBodySingle(s *decodeState, depth int) (imap.BodyStructure, error) {
	mediaType, ok := s.readIString()
	if !ok {
		return imap.BodyStructure{}, s.fail("expected media type")
	}
	if !s.sp() {
		return imap.BodyStructure{}, s.fail("expected SP after media type")
	}
	mediaSubtype, ok := s.readIString()
	if !ok {
		return imap.BodyStructure{}, s.fail("expected media subtype")
	}
	if !s.sp() {
		return imap.BodyStructure{}, s.fail("expected SP after media subtype")
	}
	params, err := readBodyParams(s)
	if err != nil {
		return imap.BodyStructure{}, err
	}
	if !s.sp() {
		return imap.BodyStructure{}, s.fail("expected SP after body parameters")
	}
	id, ok := s.readNString()
	if !ok {
		return imap.BodyStructure{}, s.fail("expected body id")
	}
	if !s.sp() {
		return imap.BodyStructure{}, s.fail("expected SP after body id")
	}
	desc, ok := s.readNString()
	if !ok {
		return imap.BodyStructure{}, s.fail("expected body description")
	}
	if !s.sp() {
		return imap.BodyStructure{}, s.fail("expected SP after body description")
	}
	enc, ok := s.readIString()
	if !ok {
		return imap.BodyStructure{}, s.fail("expected body encoding")
	}
	if !s.sp() {
		return imap.BodyStructure{}, s.fail("expected SP after body encoding")
	}
	octets, ok := s.readSize()
	if !ok {
		return imap.BodyStructure{}, s.fail("expected body octet count")
	}

	typeAS := imap.AStringFromIString(mediaType)
	subtypeAS := imap.AStringFromIString(mediaSubtype)
	basic := imap.BasicFields{
		Params:      params,
		ID:          id,
		Description: desc,
		Encoding:    imap.NewContentEncoding(imap.AStringFromIString(enc)),
		Octets:      octets,
	}

	var specific imap.SpecificFields
	switch {
	case equalsCI(typeAS.String(), "MESSAGE") && equalsCI(subtypeAS.String(), "RFC822"):
		if !s.sp() {
			return imap.BodyStructure{}, s.fail("expected SP before embedded envelope")
		}
		env, err := readEnvelope(s)
		if err != nil {
			return imap.BodyStructure{}, err
		}
		if !s.sp() {
			return imap.BodyStructure{}, s.fail("expected SP before embedded body")
		}
		inner, err := readBody(s, depth-1)
		if err != nil {
			return imap.BodyStructure{}, err
		}
		if !s.sp() {
			return imap.BodyStructure{}, s.fail("expected SP before line count")
		}
		lines, ok := s.readSize()
		if !ok {
			return imap.BodyStructure{}, s.fail("expected line count")
		}
		specific = imap.SpecificFieldsMessageOf(env, &inner, lines)
	case equalsCI(typeAS.String(), "TEXT"):
		if !s.sp() {
			return imap.BodyStructure{}, s.fail("expected SP before line count")
		}
		lines, ok := s.readSize()
		if !ok {
			return imap.BodyStructure{}, s.fail("expected line count")
		}
		specific = imap.SpecificFieldsTextOf(subtypeAS, lines)
	default:
		specific = imap.SpecificFieldsBasicOf(typeAS, subtypeAS)
	}

	ext, err := readSinglePartExt(s, depth)
	if err != nil {
		return imap.BodyStructure{}, err
	}
	if !s.d.Byte(')') {
		return imap.BodyStructure{}, s.fail("expected ) after body")
	}
	return imap.NewSingleBodyStructure(basic, specific, ext), nil
}

// readBodyParams parses body-fld-param: NIL or "(" string SP string
// *(SP string SP string) ")".
func readBodyParams(s *decodeState) ([]imap.Parameter, error) {
	if s.matchNil() {
		return nil, nil
	}
	var params []imap.Parameter
	ok := s.readParenList(func() bool {
		attr, ok := s.readIString()
		if !ok || !s.sp() {
			return false
		}
		value, ok := s.readIString()
		if !ok {
			return false
		}
		params = append(params, imap.Parameter{
			Attribute: istringAsQuoted(attr),
			Value:     istringAsQuoted(value),
		})
		return true
	})
	if !ok {
		return nil, s.fail("expected NIL or parameter list")
	}
	return params, nil
}

// istringAsQuoted narrows an IString parameter to the Quoted form the
// data model stores for body parameters; a literal's payload is
// carried over as unvalidated quoted content (it cannot contain CRLF
// in any parameter a sane peer emits, and round-trips as a quoted
// string).
func istringAsQuoted(s imap.IString) imap.Quoted {
	switch v := s.(type) {
	case imap.Quoted:
		return v
	case imap.Literal:
		return imap.UnvalidatedQuoted(v.Bytes())
	}
	return imap.Quoted{}
}

// readSinglePartExt parses the optional body-ext-1part tail:
// [SP md5 [SP dsp [SP lang [SP loc *(SP ext)]]]].
func readSinglePartExt(s *decodeState, depth int) (*imap.SinglePartExtension, error) {
	save := s.d.Pos()
	if !s.sp() {
		return nil, nil
	}
	md5, ok := s.readNString()
	if !ok {
		s.d.SetPos(save)
		return nil, nil
	}
	ext := &imap.SinglePartExtension{MD5: md5}
	if err := readExtTail(s, depth, &ext.Disposition, &ext.Language, &ext.Location, &ext.Extensions); err != nil {
		return nil, err
	}
	return ext, nil
}

// readMultipartExt parses the optional body-ext-mpart tail:
// [SP params [SP dsp [SP lang [SP loc *(SP ext)]]]].
func readMultipartExt(s *decodeState, depth int) (*imap.MultipartExtension, error) {
	save := s.d.Pos()
	if !s.sp() {
		return nil, nil
	}
	params, err := readBodyParams(s)
	if err != nil {
		s.d.SetPos(save)
		return nil, nil
	}
	ext := &imap.MultipartExtension{Params: params}
	if err := readExtTail(s, depth, &ext.Disposition, &ext.Language, &ext.Location, &ext.Extensions); err != nil {
		return nil, err
	}
	return ext, nil
}

// readExtTail parses the shared [SP dsp [SP lang [SP loc *(SP ext)]]]
// suffix of both extension forms.
func readExtTail(s *decodeState, depth int, dsp **imap.Disposition, lang *[]imap.AString, loc *imap.NString, exts *[]imap.BodyExtension) error {
	save := s.d.Pos()
	if !s.sp() {
		return nil
	}
	d, err := readDisposition(s)
	if err != nil {
		s.d.SetPos(save)
		return nil
	}
	*dsp = d

	save = s.d.Pos()
	if !s.sp() {
		return nil
	}
	l, ok := readLanguage(s)
	if !ok {
		s.d.SetPos(save)
		return nil
	}
	*lang = l

	save = s.d.Pos()
	if !s.sp() {
		return nil
	}
	location, ok := s.readNString()
	if !ok {
		s.d.SetPos(save)
		return nil
	}
	*loc = location

	for {
		save = s.d.Pos()
		if !s.sp() {
			return nil
		}
		e, err := readBodyExtension(s, depth-1)
		if err != nil {
			if isRecursionErr(err) {
				return err
			}
			s.d.SetPos(save)
			return nil
		}
		*exts = append(*exts, e)
	}
}

func isRecursionErr(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.Kind == ParseErrorRecursionLimitExceeded
}

// readDisposition parses NIL or "(" string SP params ")".
func readDisposition(s *decodeState) (*imap.Disposition, error) {
	if s.matchNil() {
		return nil, nil
	}
	if !s.d.Byte('(') {
		return nil, s.fail("expected NIL or disposition")
	}
	typ, ok := s.readIString()
	if !ok || !s.sp() {
		return nil, s.fail("expected disposition type")
	}
	params, err := readBodyParams(s)
	if err != nil {
		return nil, err
	}
	if !s.d.Byte(')') {
		return nil, s.fail("expected ) after disposition")
	}
	return &imap.Disposition{Type: imap.AStringFromIString(typ), Params: params}, nil
}

// readLanguage parses body-fld-lang: nstring or "(" 1*string ")".
func readLanguage(s *decodeState) ([]imap.AString, bool) {
	if s.matchNil() {
		return nil, true
	}
	if b, _ := s.d.Peek(); b == '(' {
		var langs []imap.AString
		ok := s.readParenList(func() bool {
			l, ok := s.readIString()
			if ok {
				langs = append(langs, imap.AStringFromIString(l))
			}
			return ok
		})
		if !ok || len(langs) == 0 {
			return nil, false
		}
		return langs, true
	}
	l, ok := s.readIString()
	if !ok {
		return nil, false
	}
	return []imap.AString{imap.AStringFromIString(l)}, true
}

// readBodyExtension parses the recursive body-extension production
// with an explicit depth budget.
func readBodyExtension(s *decodeState, depth int) (imap.BodyExtension, error) {
	if depth <= 0 {
		return imap.BodyExtension{}, errRecursion(s.d.Pos())
	}
	if n, ok := s.readNumber(); ok {
		return imap.BodyExtensionOfNumber(n), nil
	}
	if s.d.Byte('(') {
		var items []imap.BodyExtension
		first := true
		for {
			if s.d.Byte(')') {
				break
			}
			if !first && !s.sp() {
				return imap.BodyExtension{}, s.fail("expected SP between body extensions")
			}
			first = false
			item, err := readBodyExtension(s, depth-1)
			if err != nil {
				return imap.BodyExtension{}, err
			}
			items = append(items, item)
		}
		if len(items) == 0 {
			return imap.BodyExtension{}, errSyntax(s.d.Pos(), "empty body extension list")
		}
		return imap.BodyExtensionOfList(items), nil
	}
	n, ok := s.readNString()
	if !ok {
		return imap.BodyExtension{}, s.fail("expected body extension")
	}
	return imap.BodyExtensionOfNString(n), nil
}
