package codec

import "github.com/nugget/imapwire/imap"

// QuirksConfig is the YAML-loadable mirror of imap.Quirks (see
// imap.Quirks for what each toggle does). Keeping it as a distinct,
// tagged struct rather than adding yaml tags to imap.Quirks itself
// means the data model stays free of a serialization dependency;
// only this package, which already owns parsing policy, knows how
// quirks are configured from the outside.
//
// A proxy can load a QuirksConfig per upstream server connection (one
// YAML document per known server quirk-set) and build the matching
// imap.Quirks at dial time.
type QuirksConfig struct {
	CRLFRelaxed    bool `yaml:"crlf_relaxed"`
	TrailingSpace  bool `yaml:"trailing_space"`
	MissingText    bool `yaml:"missing_text"`
	RectifyNumbers bool `yaml:"rectify_numbers"`
	IDEmptyToNil   bool `yaml:"id_empty_to_nil"`
}

// ToQuirks converts the YAML-loadable config into the imap.Quirks
// value the grammar engine actually consumes.
func (c QuirksConfig) ToQuirks() imap.Quirks {
	return imap.Quirks{
		CRLFRelaxed:    c.CRLFRelaxed,
		TrailingSpace:  c.TrailingSpace,
		MissingText:    c.MissingText,
		RectifyNumbers: c.RectifyNumbers,
		IDEmptyToNil:   c.IDEmptyToNil,
	}
}

// QuirksConfigFrom converts the other way, e.g. to persist a quirk
// set discovered at runtime back out to YAML.
func QuirksConfigFrom(q imap.Quirks) QuirksConfig {
	return QuirksConfig{
		CRLFRelaxed:    q.CRLFRelaxed,
		TrailingSpace:  q.TrailingSpace,
		MissingText:    q.MissingText,
		RectifyNumbers: q.RectifyNumbers,
		IDEmptyToNil:   q.IDEmptyToNil,
	}
}
