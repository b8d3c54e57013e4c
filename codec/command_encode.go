package codec

import (
	"encoding/base64"

	"github.com/nugget/imapwire/imap"
	"github.com/nugget/imapwire/imapwire"
)

// encodeCommand renders a complete command as a fragment sequence.
func encodeCommand(cmd imap.Command, q imap.Quirks) imapwire.Encoded {
	e := imapwire.NewEncoder()
	e.Tag(cmd.Tag).SP()
	encodeCommandBody(e, cmd.Body, q)
	e.CRLF()
	return e.Finish()
}

func encodeCommandBody(e *imapwire.Encoder, body imap.CommandBody, q imap.Quirks) {
	switch c := body.(type) {
	case imap.CapabilityCmd, imap.NoopCmd, imap.LogoutCmd, imap.StartTLSCmd,
		imap.CheckCmd, imap.CloseCmd, imap.ExpungeCmd, imap.IdleCmd, imap.UnselectCmd:
		e.Atom(body.CommandName())
	case imap.LoginCmd:
		e.Atom("LOGIN").SP().AString(c.Username).SP().AString(c.Password.Expose())
	case imap.AuthenticateCmd:
		e.Atom("AUTHENTICATE").SP().Atom(c.Mechanism.String())
		if c.InitialResponse != nil {
			data := c.InitialResponse.Expose()
			e.SP()
			if len(data) == 0 {
				e.Special('=')
			} else {
				e.Atom(base64.StdEncoding.EncodeToString(data))
			}
		}
	case imap.SelectCmd:
		e.Atom("SELECT").SP().Mailbox(c.Mailbox)
	case imap.ExamineCmd:
		e.Atom("EXAMINE").SP().Mailbox(c.Mailbox)
	case imap.CreateCmd:
		e.Atom("CREATE").SP().Mailbox(c.Mailbox)
	case imap.DeleteCmd:
		e.Atom("DELETE").SP().Mailbox(c.Mailbox)
	case imap.SubscribeCmd:
		e.Atom("SUBSCRIBE").SP().Mailbox(c.Mailbox)
	case imap.UnsubscribeCmd:
		e.Atom("UNSUBSCRIBE").SP().Mailbox(c.Mailbox)
	case imap.RenameCmd:
		e.Atom("RENAME").SP().Mailbox(c.From).SP().Mailbox(c.To)
	case imap.ListCmd:
		e.Atom("LIST").SP().Mailbox(c.Reference).SP().AString(c.MailboxWildcard)
	case imap.LsubCmd:
		e.Atom("LSUB").SP().Mailbox(c.Reference).SP().AString(c.MailboxWildcard)
	case imap.StatusCmd:
		e.Atom("STATUS").SP().Mailbox(c.Mailbox).SP()
		items := c.Items.Slice()
		e.List(len(items), func(i int) { e.Atom(items[i].String()) })
	case imap.AppendCmd:
		e.Atom("APPEND").SP().Mailbox(c.Mailbox).SP()
		if len(c.Flags) > 0 {
			e.List(len(c.Flags), func(i int) { e.Flag(c.Flags[i]) })
			e.SP()
		}
		if c.Date != nil {
			e.DateTime(*c.Date).SP()
		}
		e.IString(c.Message)
	case imap.SearchCmd:
		if c.UID {
			e.Atom("UID").SP()
		}
		e.Atom("SEARCH")
		if c.Charset != nil {
			e.SP().Atom("CHARSET").SP()
			encodeCharset(e, *c.Charset)
		}
		for _, key := range c.Keys.Slice() {
			e.SP()
			encodeSearchKey(e, key)
		}
	case imap.FetchCmd:
		if c.UID {
			e.Atom("UID").SP()
		}
		e.Atom("FETCH").SP().SequenceSet(c.SequenceSet).SP()
		items := c.Items.Slice()
		if len(items) == 1 {
			encodeFetchItem(e, items[0])
		} else {
			e.List(len(items), func(i int) { encodeFetchItem(e, items[i]) })
		}
	case imap.StoreCmd:
		if c.UID {
			e.Atom("UID").SP()
		}
		e.Atom("STORE").SP().SequenceSet(c.SequenceSet).SP()
		switch c.Kind {
		case imap.StoreAdd:
			e.Special('+')
		case imap.StoreRemove:
			e.Special('-')
		}
		e.Atom("FLAGS")
		if c.Silent {
			e.Atom(".SILENT")
		}
		e.SP()
		e.List(len(c.Flags), func(i int) { e.StoreFlag(c.Flags[i]) })
	case imap.CopyCmd:
		if c.UID {
			e.Atom("UID").SP()
		}
		e.Atom("COPY").SP().SequenceSet(c.SequenceSet).SP().Mailbox(c.Mailbox)
	case imap.MoveCmd:
		if c.UID {
			e.Atom("UID").SP()
		}
		e.Atom("MOVE").SP().SequenceSet(c.SequenceSet).SP().Mailbox(c.Mailbox)
	case imap.EnableCmd:
		e.Atom("ENABLE")
		for _, cap := range c.Capabilities.Slice() {
			e.SP().Atom(cap.String())
		}
	case imap.CompressCmd:
		e.Atom("COMPRESS").SP().Atom(c.Algorithm.String())
	case imap.IDCmd:
		e.Atom("ID").SP()
		encodeIDFields(e, c.Fields, q)
	case imap.GetQuotaCmd:
		e.Atom("GETQUOTA").SP().AString(c.Root)
	case imap.GetQuotaRootCmd:
		e.Atom("GETQUOTAROOT").SP().Mailbox(c.Mailbox)
	case imap.SetQuotaCmd:
		e.Atom("SETQUOTA").SP().AString(c.Root).SP()
		e.List(len(c.Limits), func(i int) {
			e.Atom(c.Limits[i].Resource.String()).SP().Number64(c.Limits[i].Limit)
		})
	}
}

// encodeIDFields writes an ID field/value list. A nil slice is the
// NIL wire form; an empty non-nil slice is "()" unless the
// IDEmptyToNil quirk folds it to NIL too.
func encodeIDFields(e *imapwire.Encoder, fields []imap.IDField, q imap.Quirks) {
	if fields == nil || (len(fields) == 0 && q.IDEmptyToNil) {
		e.Atom("NIL")
		return
	}
	e.Special('(')
	for i, f := range fields {
		if i > 0 {
			e.SP()
		}
		e.Quoted(f.Key.Bytes()).SP().NString(f.Value)
	}
	e.Special(')')
}

func encodeCharset(e *imapwire.Encoder, cs imap.Charset) {
	if a, ok := cs.Atom(); ok {
		e.Atom(a.String())
		return
	}
	qd, _ := cs.Quoted()
	e.Quoted(qd.Bytes())
}

func encodeFetchItem(e *imapwire.Encoder, item imap.FetchItem) {
	switch item.Kind() {
	case imap.FetchItemMacroAll:
		e.Atom("ALL")
	case imap.FetchItemMacroFast:
		e.Atom("FAST")
	case imap.FetchItemMacroFull:
		e.Atom("FULL")
	case imap.FetchItemEnvelope:
		e.Atom("ENVELOPE")
	case imap.FetchItemFlags:
		e.Atom("FLAGS")
	case imap.FetchItemInternalDate:
		e.Atom("INTERNALDATE")
	case imap.FetchItemRFC822Size:
		e.Atom("RFC822.SIZE")
	case imap.FetchItemUID:
		e.Atom("UID")
	case imap.FetchItemBodyStructure:
		e.Atom("BODY")
	case imap.FetchItemBodyStructureExtended:
		e.Atom("BODYSTRUCTURE")
	case imap.FetchItemBodySection:
		if item.Peek() {
			e.Atom("BODY.PEEK")
		} else {
			e.Atom("BODY")
		}
		e.Special('[').Atom(item.Section()).Special(']')
		if p := item.Partial(); p != nil {
			e.Sprintf("<%d.%d>", p[0], p[1])
		}
	}
}

func encodeSearchKey(e *imapwire.Encoder, key imap.SearchKey) {
	switch key.Kind() {
	case imap.SearchAll:
		e.Atom("ALL")
	case imap.SearchAnswered:
		e.Atom("ANSWERED")
	case imap.SearchDeleted:
		e.Atom("DELETED")
	case imap.SearchDraft:
		e.Atom("DRAFT")
	case imap.SearchFlagged:
		e.Atom("FLAGGED")
	case imap.SearchNew:
		e.Atom("NEW")
	case imap.SearchOld:
		e.Atom("OLD")
	case imap.SearchRecent:
		e.Atom("RECENT")
	case imap.SearchSeen:
		e.Atom("SEEN")
	case imap.SearchUnanswered:
		e.Atom("UNANSWERED")
	case imap.SearchUndeleted:
		e.Atom("UNDELETED")
	case imap.SearchUndraft:
		e.Atom("UNDRAFT")
	case imap.SearchUnflagged:
		e.Atom("UNFLAGGED")
	case imap.SearchUnseen:
		e.Atom("UNSEEN")
	case imap.SearchBcc:
		e.Atom("BCC").SP().AString(key.StringValue())
	case imap.SearchBody:
		e.Atom("BODY").SP().AString(key.StringValue())
	case imap.SearchCc:
		e.Atom("CC").SP().AString(key.StringValue())
	case imap.SearchFrom:
		e.Atom("FROM").SP().AString(key.StringValue())
	case imap.SearchSubject:
		e.Atom("SUBJECT").SP().AString(key.StringValue())
	case imap.SearchText:
		e.Atom("TEXT").SP().AString(key.StringValue())
	case imap.SearchTo:
		e.Atom("TO").SP().AString(key.StringValue())
	case imap.SearchKeyword:
		e.Atom("KEYWORD").SP().AString(key.StringValue())
	case imap.SearchUnkeyword:
		e.Atom("UNKEYWORD").SP().AString(key.StringValue())
	case imap.SearchHeader:
		e.Atom("HEADER").SP()
		if field, err := imap.TryAStringAsAtomOrQuoted([]byte(key.HeaderField())); err == nil {
			e.AString(field)
		} else {
			e.String([]byte(key.HeaderField()))
		}
		e.SP().AString(key.StringValue())
	case imap.SearchBefore:
		e.Atom("BEFORE").SP().Date(key.DateValue())
	case imap.SearchOn:
		e.Atom("ON").SP().Date(key.DateValue())
	case imap.SearchSince:
		e.Atom("SINCE").SP().Date(key.DateValue())
	case imap.SearchSentBefore:
		e.Atom("SENTBEFORE").SP().Date(key.DateValue())
	case imap.SearchSentOn:
		e.Atom("SENTON").SP().Date(key.DateValue())
	case imap.SearchSentSince:
		e.Atom("SENTSINCE").SP().Date(key.DateValue())
	case imap.SearchLarger:
		e.Atom("LARGER").SP().Number(key.SizeValue())
	case imap.SearchSmaller:
		e.Atom("SMALLER").SP().Number(key.SizeValue())
	case imap.SearchUID:
		e.Atom("UID").SP().SequenceSet(key.SequenceSetValue())
	case imap.SearchSequenceSet:
		e.SequenceSet(key.SequenceSetValue())
	case imap.SearchNot:
		e.Atom("NOT").SP()
		encodeSearchKey(e, key.SubKeys()[0])
	case imap.SearchOr:
		e.Atom("OR").SP()
		encodeSearchKey(e, key.SubKeys()[0])
		e.SP()
		encodeSearchKey(e, key.SubKeys()[1])
	case imap.SearchAnd:
		sub := key.SubKeys()
		e.List(len(sub), func(i int) { encodeSearchKey(e, sub[i]) })
	}
}
