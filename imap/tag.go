package imap

// Tag is the short client-chosen token prefixing a command so the
// server can pair its tagged response to it. A Tag is atom-like but
// additionally forbids "+", since a leading "+" on a line is
// reserved for continuation requests.
type Tag struct {
	raw []byte
}

// TryTag validates b as a Tag: one or more atom-chars, none of which
// is "+", "*", or whitespace (whitespace is already excluded by the
// atom-char rule).
func TryTag(b []byte) (Tag, error) {
	if err := validateNonEmpty("Tag", b); err != nil {
		return Tag{}, err
	}
	for i, c := range b {
		if c == '+' {
			return Tag{}, errAt("Tag", b, i, `tag must not contain "+"`)
		}
		if c == '*' {
			return Tag{}, errAt("Tag", b, i, `tag must not contain "*"`)
		}
		if !isAtomChar(c) {
			return Tag{}, errAt("Tag", b, i, "illegal character")
		}
	}
	return Tag{raw: b}, nil
}

// UnvalidatedTag builds a Tag without checking b.
func UnvalidatedTag(b []byte) Tag { return Tag{raw: b} }

func (t Tag) String() string { return string(t.raw) }
func (t Tag) Bytes() []byte  { return t.raw }

func (t Tag) IntoOwned() Tag {
	if t.raw == nil {
		return t
	}
	cp := make([]byte, len(t.raw))
	copy(cp, t.raw)
	return Tag{raw: cp}
}

func (t Tag) Equal(o Tag) bool {
	return string(t.raw) == string(o.raw)
}
