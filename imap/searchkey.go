package imap

import "time"

// SearchKeyKind enumerates every leaf and combinator search-key allowed
// by the base grammar (RFC 3501 §6.4.4) plus SequenceSet, which the
// grammar treats as just another search-key alternative.
type SearchKeyKind int

const (
	SearchAll SearchKeyKind = iota
	SearchAnswered
	SearchBcc
	SearchBefore
	SearchBody
	SearchCc
	SearchDeleted
	SearchDraft
	SearchFlagged
	SearchFrom
	SearchHeader
	SearchKeyword
	SearchLarger
	SearchNew
	SearchNot
	SearchOld
	SearchOn
	SearchOr
	SearchRecent
	SearchSeen
	SearchSentBefore
	SearchSentOn
	SearchSentSince
	SearchSince
	SearchSmaller
	SearchSubject
	SearchText
	SearchTo
	SearchUID
	SearchUnanswered
	SearchUndeleted
	SearchUndraft
	SearchUnflagged
	SearchUnkeyword
	SearchUnseen
	SearchSequenceSet
	SearchAnd // a parenthesized group of search keys, all of which must match
)

// SearchKey is a single recursive search criterion. Recursion through
// Not/Or/And is unbounded by this type alone; the grammar engine that
// builds these values enforces a recursion depth limit (see the codec
// package) the same way it does for BodyExtension and body.
type SearchKey struct {
	kind SearchKeyKind

	str      AString // BCC/BODY/CC/FROM/KEYWORD/SUBJECT/TEXT/TO/UNKEYWORD value
	header   string  // HEADER field-name
	date     time.Time
	size     uint32
	sub      []SearchKey // NOT: len 1; OR: len 2; AND: any length
	seqSet   SequenceSet
}

func SearchAllKey() SearchKey      { return SearchKey{kind: SearchAll} }
func SearchAnsweredKey() SearchKey { return SearchKey{kind: SearchAnswered} }
func SearchDeletedKey() SearchKey  { return SearchKey{kind: SearchDeleted} }
func SearchDraftKey() SearchKey    { return SearchKey{kind: SearchDraft} }
func SearchFlaggedKey() SearchKey  { return SearchKey{kind: SearchFlagged} }
func SearchNewKey() SearchKey      { return SearchKey{kind: SearchNew} }
func SearchOldKey() SearchKey      { return SearchKey{kind: SearchOld} }
func SearchRecentKey() SearchKey   { return SearchKey{kind: SearchRecent} }
func SearchSeenKey() SearchKey     { return SearchKey{kind: SearchSeen} }
func SearchUnansweredKey() SearchKey { return SearchKey{kind: SearchUnanswered} }
func SearchUndeletedKey() SearchKey  { return SearchKey{kind: SearchUndeleted} }
func SearchUndraftKey() SearchKey    { return SearchKey{kind: SearchUndraft} }
func SearchUnflaggedKey() SearchKey  { return SearchKey{kind: SearchUnflagged} }
func SearchUnseenKey() SearchKey     { return SearchKey{kind: SearchUnseen} }

func searchStrKey(kind SearchKeyKind, s AString) SearchKey { return SearchKey{kind: kind, str: s} }

func SearchBccKey(s AString) SearchKey     { return searchStrKey(SearchBcc, s) }
func SearchBodyKey(s AString) SearchKey    { return searchStrKey(SearchBody, s) }
func SearchCcKey(s AString) SearchKey      { return searchStrKey(SearchCc, s) }
func SearchFromKey(s AString) SearchKey    { return searchStrKey(SearchFrom, s) }
func SearchSubjectKey(s AString) SearchKey { return searchStrKey(SearchSubject, s) }
func SearchTextKey(s AString) SearchKey    { return searchStrKey(SearchText, s) }
func SearchToKey(s AString) SearchKey      { return searchStrKey(SearchTo, s) }

func SearchKeywordKey(flag Atom) SearchKey {
	return SearchKey{kind: SearchKeyword, str: AStringFromAtom(flag)}
}
func SearchUnkeywordKey(flag Atom) SearchKey {
	return SearchKey{kind: SearchUnkeyword, str: AStringFromAtom(flag)}
}

func SearchHeaderKey(field string, value AString) SearchKey {
	return SearchKey{kind: SearchHeader, header: field, str: value}
}

func searchDateKey(kind SearchKeyKind, date time.Time) SearchKey {
	return SearchKey{kind: kind, date: date}
}

func SearchBeforeKey(date time.Time) SearchKey    { return searchDateKey(SearchBefore, date) }
func SearchOnKey(date time.Time) SearchKey        { return searchDateKey(SearchOn, date) }
func SearchSinceKey(date time.Time) SearchKey     { return searchDateKey(SearchSince, date) }
func SearchSentBeforeKey(date time.Time) SearchKey { return searchDateKey(SearchSentBefore, date) }
func SearchSentOnKey(date time.Time) SearchKey     { return searchDateKey(SearchSentOn, date) }
func SearchSentSinceKey(date time.Time) SearchKey  { return searchDateKey(SearchSentSince, date) }

func SearchLargerKey(n uint32) SearchKey  { return SearchKey{kind: SearchLarger, size: n} }
func SearchSmallerKey(n uint32) SearchKey { return SearchKey{kind: SearchSmaller, size: n} }

func SearchUIDKey(set SequenceSet) SearchKey        { return SearchKey{kind: SearchUID, seqSet: set} }
func SearchSequenceSetKey(set SequenceSet) SearchKey { return SearchKey{kind: SearchSequenceSet, seqSet: set} }

func SearchNotKey(key SearchKey) SearchKey { return SearchKey{kind: SearchNot, sub: []SearchKey{key}} }
func SearchOrKey(a, b SearchKey) SearchKey { return SearchKey{kind: SearchOr, sub: []SearchKey{a, b}} }
func SearchAndKey(keys []SearchKey) SearchKey { return SearchKey{kind: SearchAnd, sub: keys} }

func (k SearchKey) Kind() SearchKeyKind          { return k.kind }
func (k SearchKey) StringValue() AString         { return k.str }
func (k SearchKey) HeaderField() string          { return k.header }
func (k SearchKey) DateValue() time.Time         { return k.date }
func (k SearchKey) SizeValue() uint32            { return k.size }
func (k SearchKey) SubKeys() []SearchKey         { return k.sub }
func (k SearchKey) SequenceSetValue() SequenceSet { return k.seqSet }

func (k SearchKey) IntoOwned() SearchKey {
	out := k
	out.str = k.str.IntoOwned()
	if k.sub != nil {
		sub := make([]SearchKey, len(k.sub))
		for i, s := range k.sub {
			sub[i] = s.IntoOwned()
		}
		out.sub = sub
	}
	return out
}
