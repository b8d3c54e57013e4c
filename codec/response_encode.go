package codec

import (
	"encoding/base64"

	"github.com/nugget/imapwire/imap"
	"github.com/nugget/imapwire/imapwire"
)

// encodeGreeting renders a greeting line.
func encodeGreeting(g imap.Greeting) imapwire.Encoded {
	e := imapwire.NewEncoder()
	e.Special('*').SP()
	switch g.Kind() {
	case imap.GreetingOK:
		e.Atom("OK")
	case imap.GreetingPreAuth:
		e.Atom("PREAUTH")
	case imap.GreetingBye:
		e.Atom("BYE")
	}
	e.SP()
	if code, ok := g.Code(); ok {
		encodeCode(e, code)
		e.SP()
	}
	e.Atom(g.Text().String()).CRLF()
	return e.Finish()
}

// encodeResponse renders a status, data, or continuation response.
func encodeResponse(r imap.Response, q imap.Quirks) imapwire.Encoded {
	e := imapwire.NewEncoder()
	switch r.Kind() {
	case imap.ResponseStatus:
		status, _ := r.Status()
		encodeStatus(e, status)
	case imap.ResponseData:
		data, _ := r.Data()
		encodeData(e, data, q)
	case imap.ResponseContinuation:
		cont, _ := r.Continuation()
		encodeContinuation(e, cont)
	}
	return e.Finish()
}

func encodeStatus(e *imapwire.Encoder, status imap.Status) {
	if tag, ok := status.Tag(); ok {
		e.Tag(tag)
	} else {
		e.Special('*')
	}
	e.SP().Atom(status.Kind().String()).SP()
	if code, ok := status.Code(); ok {
		encodeCode(e, code)
		e.SP()
	}
	e.Atom(status.Text().String()).CRLF()
}

func encodeContinuation(e *imapwire.Encoder, cont imap.CommandContinuationRequest) {
	e.Special('+').SP()
	if cont.Kind() == imap.ContinuationBase64 {
		e.Atom(base64.StdEncoding.EncodeToString(cont.Base64())).CRLF()
		return
	}
	if code, ok := cont.Code(); ok {
		encodeCode(e, code)
		e.SP()
	}
	e.Atom(cont.Text().String()).CRLF()
}

func encodeCode(e *imapwire.Encoder, code imap.Code) {
	e.Special('[')
	switch code.Kind() {
	case imap.CodeAlert:
		e.Atom("ALERT")
	case imap.CodeParse:
		e.Atom("PARSE")
	case imap.CodeReadOnly:
		e.Atom("READ-ONLY")
	case imap.CodeReadWrite:
		e.Atom("READ-WRITE")
	case imap.CodeTryCreate:
		e.Atom("TRYCREATE")
	case imap.CodeUIDNotSticky:
		e.Atom("UIDNOTSTICKY")
	case imap.CodeCompressionActive:
		e.Atom("COMPRESSIONACTIVE")
	case imap.CodeOverQuota:
		e.Atom("OVERQUOTA")
	case imap.CodeTooBig:
		e.Atom("TOOBIG")
	case imap.CodeUnknownCTE:
		e.Atom("UNKNOWN-CTE")
	case imap.CodeBadCharset:
		e.Atom("BADCHARSET")
		if charsets := code.Charsets(); len(charsets) > 0 {
			e.SP()
			e.List(len(charsets), func(i int) { encodeCharset(e, charsets[i]) })
		}
	case imap.CodeCapability:
		e.Atom("CAPABILITY")
		for _, c := range code.Capabilities() {
			e.SP().Atom(c.String())
		}
	case imap.CodePermanentFlags:
		e.Atom("PERMANENTFLAGS").SP()
		flags := code.PermanentFlags()
		e.List(len(flags), func(i int) { e.FlagPerm(flags[i]) })
	case imap.CodeUIDNext:
		e.Atom("UIDNEXT").SP().Number(code.Number())
	case imap.CodeUIDValidity:
		e.Atom("UIDVALIDITY").SP().Number(code.Number())
	case imap.CodeUnseen:
		e.Atom("UNSEEN").SP().Number(code.Number())
	case imap.CodeAppendUID:
		validity, uid := code.AppendUID()
		e.Atom("APPENDUID").SP().Number(validity).SP().Number(uid)
	case imap.CodeCopyUID:
		validity, src, dst := code.CopyUID()
		e.Atom("COPYUID").SP().Number(validity).SP().SequenceSet(src).SP().SequenceSet(dst)
	case imap.CodeOther:
		e.Atom(string(code.OtherBytes()))
	}
	e.Special(']')
}

func encodeData(e *imapwire.Encoder, data imap.Data, q imap.Quirks) {
	e.Special('*').SP()
	switch data.Kind() {
	case imap.DataCapability:
		e.Atom("CAPABILITY")
		for _, c := range data.Capabilities() {
			e.SP().Atom(c.String())
		}
	case imap.DataList:
		e.Atom("LIST").SP()
		encodeListData(e, data.List())
	case imap.DataLsub:
		e.Atom("LSUB").SP()
		encodeListData(e, data.List())
	case imap.DataStatus:
		status := data.Status()
		e.Atom("STATUS").SP().Mailbox(status.Mailbox).SP()
		e.List(len(status.Items), func(i int) {
			e.Atom(status.Items[i].Item.String()).SP().Number(status.Items[i].Value)
		})
	case imap.DataSearch:
		e.Atom("SEARCH")
		for _, n := range data.Search() {
			e.SP().Number(n)
		}
	case imap.DataFlags:
		e.Atom("FLAGS").SP()
		flags := data.Flags()
		e.List(len(flags), func(i int) { e.Flag(flags[i]) })
	case imap.DataExists:
		e.Number(data.Number()).SP().Atom("EXISTS")
	case imap.DataRecent:
		e.Number(data.Number()).SP().Atom("RECENT")
	case imap.DataExpunge:
		e.Number(data.Number()).SP().Atom("EXPUNGE")
	case imap.DataFetch:
		fetch := data.Fetch()
		e.Number(fetch.Seq).SP().Atom("FETCH").SP()
		e.List(len(fetch.Items), func(i int) { encodeMessageDataItem(e, fetch.Items[i]) })
	case imap.DataQuota:
		quota := data.Quota()
		e.Atom("QUOTA").SP().AString(quota.Root).SP()
		e.List(len(quota.Resources), func(i int) {
			r := quota.Resources[i]
			e.Atom(r.Resource.String()).SP().Number64(r.Usage).SP().Number64(r.Limit)
		})
	case imap.DataQuotaRoot:
		qr := data.QuotaRoot()
		e.Atom("QUOTAROOT").SP().Mailbox(qr.Mailbox)
		for _, root := range qr.Roots {
			e.SP().AString(root)
		}
	case imap.DataID:
		e.Atom("ID").SP()
		encodeIDFields(e, data.ID(), q)
	case imap.DataEnabled:
		e.Atom("ENABLED")
		for _, c := range data.Enabled() {
			e.SP().Atom(c.String())
		}
	}
	e.CRLF()
}

func encodeListData(e *imapwire.Encoder, list imap.ListData) {
	e.List(len(list.Attributes), func(i int) { e.Atom(list.Attributes[i].String()) })
	e.SP()
	if list.Delimiter.IsSet() {
		e.Quoted([]byte{list.Delimiter.Byte()})
	} else {
		e.Atom("NIL")
	}
	e.SP().Mailbox(list.Mailbox)
}

func encodeMessageDataItem(e *imapwire.Encoder, item imap.MessageDataItem) {
	switch item.Kind() {
	case imap.MessageDataFlags:
		e.Atom("FLAGS").SP()
		flags := item.Flags()
		e.List(len(flags), func(i int) { e.FlagFetch(flags[i]) })
	case imap.MessageDataEnvelope:
		e.Atom("ENVELOPE").SP()
		encodeEnvelope(e, item.Envelope())
	case imap.MessageDataInternalDate:
		e.Atom("INTERNALDATE").SP().NString(item.InternalDate())
	case imap.MessageDataRFC822Size:
		e.Atom("RFC822.SIZE").SP().Number(item.RFC822Size())
	case imap.MessageDataUID:
		e.Atom("UID").SP().Number(item.UID())
	case imap.MessageDataBodyStructure:
		e.Atom("BODYSTRUCTURE").SP()
		encodeBody(e, item.BodyStructureValue())
	case imap.MessageDataBodySection:
		section, origin, payload := item.Section()
		e.Atom("BODY").Special('[').Atom(section).Special(']')
		if origin > 0 {
			e.Sprintf("<%d>", origin)
		}
		e.SP().NString(payload)
	}
}

func encodeEnvelope(e *imapwire.Encoder, env imap.Envelope) {
	e.Special('(')
	e.NString(env.Date).SP().NString(env.Subject)
	for _, list := range []imap.AddressList{env.From, env.Sender, env.ReplyTo, env.To, env.CC, env.BCC} {
		e.SP()
		encodeAddressList(e, list)
	}
	e.SP().NString(env.InReplyTo).SP().NString(env.MessageID)
	e.Special(')')
}

func encodeAddressList(e *imapwire.Encoder, list imap.AddressList) {
	if list.IsEmpty() {
		e.Atom("NIL")
		return
	}
	e.Special('(')
	for _, addr := range list.Addresses() {
		e.Special('(')
		e.NString(addr.Name).SP().NString(addr.ADL).SP().NString(addr.Mailbox).SP().NString(addr.Host)
		e.Special(')')
	}
	e.Special(')')
}

// encodeAStringAsString writes an AString in string (quoted/literal)
// position: the IString form verbatim, or the atom's bytes quoted,
// since a bare atom is not grammatical here.
func encodeAStringAsString(e *imapwire.Encoder, a imap.AString) {
	if s, ok := a.IString(); ok {
		e.IString(s)
		return
	}
	atom, _ := a.Atom()
	e.Quoted(atom.Bytes())
}

func encodeBody(e *imapwire.Encoder, body imap.BodyStructure) {
	e.Special('(')
	if parts, subtype, ext, ok := body.Multi(); ok {
		for _, part := range parts {
			encodeBody(e, part)
		}
		e.SP()
		encodeAStringAsString(e, subtype)
		if ext != nil {
			e.SP()
			encodeBodyParams(e, ext.Params)
			encodeExtTail(e, ext.Disposition, ext.Language, ext.Location, ext.Extensions)
		}
		e.Special(')')
		return
	}

	basic, specific, ext, _ := body.Single()
	switch specific.Kind() {
	case imap.SpecificFieldsText:
		subtype, _ := specific.Text()
		e.Quoted([]byte("TEXT")).SP()
		encodeAStringAsString(e, subtype)
	case imap.SpecificFieldsMessage:
		e.Quoted([]byte("MESSAGE")).SP().Quoted([]byte("RFC822"))
	default:
		typ, subtype := specific.BasicTypeSubtype()
		encodeAStringAsString(e, typ)
		e.SP()
		encodeAStringAsString(e, subtype)
	}
	e.SP()
	encodeBodyParams(e, basic.Params)
	e.SP().NString(basic.ID)
	e.SP().NString(basic.Description)
	e.SP()
	encodeAStringAsString(e, basic.Encoding.AString())
	e.SP().Number(basic.Octets)

	switch specific.Kind() {
	case imap.SpecificFieldsText:
		_, lines := specific.Text()
		e.SP().Number(lines)
	case imap.SpecificFieldsMessage:
		env, inner, lines := specific.Message()
		e.SP()
		encodeEnvelope(e, env)
		e.SP()
		if inner != nil {
			encodeBody(e, *inner)
		}
		e.SP().Number(lines)
	}

	if ext != nil {
		e.SP().NString(ext.MD5)
		encodeExtTail(e, ext.Disposition, ext.Language, ext.Location, ext.Extensions)
	}
	e.Special(')')
}

func encodeBodyParams(e *imapwire.Encoder, params []imap.Parameter) {
	if len(params) == 0 {
		e.Atom("NIL")
		return
	}
	e.List(len(params), func(i int) {
		e.Quoted(params[i].Attribute.Bytes()).SP().Quoted(params[i].Value.Bytes())
	})
}

// encodeExtTail writes the shared disposition/language/location/
// extension suffix of both extension forms. Each field is only
// emitted when it or a later field is present, matching the
// position-dependent grammar.
func encodeExtTail(e *imapwire.Encoder, dsp *imap.Disposition, lang []imap.AString, loc imap.NString, exts []imap.BodyExtension) {
	haveLoc := loc.IsPresent() || len(exts) > 0
	haveLang := len(lang) > 0 || haveLoc
	haveDsp := dsp != nil || haveLang
	if !haveDsp {
		return
	}
	e.SP()
	if dsp == nil {
		e.Atom("NIL")
	} else {
		e.Special('(')
		encodeAStringAsString(e, dsp.Type)
		e.SP()
		encodeBodyParams(e, dsp.Params)
		e.Special(')')
	}
	if !haveLang {
		return
	}
	e.SP()
	switch len(lang) {
	case 0:
		e.Atom("NIL")
	case 1:
		encodeAStringAsString(e, lang[0])
	default:
		e.List(len(lang), func(i int) { encodeAStringAsString(e, lang[i]) })
	}
	if !haveLoc {
		return
	}
	e.SP().NString(loc)
	for _, ext := range exts {
		e.SP()
		encodeBodyExtension(e, ext)
	}
}

func encodeBodyExtension(e *imapwire.Encoder, ext imap.BodyExtension) {
	switch ext.Kind() {
	case imap.BodyExtensionNumber:
		e.Number(ext.NumberValue())
	case imap.BodyExtensionNString:
		e.NString(ext.NStringValue())
	case imap.BodyExtensionList:
		items := ext.ListValue()
		e.List(len(items), func(i int) { encodeBodyExtension(e, items[i]) })
	}
}
