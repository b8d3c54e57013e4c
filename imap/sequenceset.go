package imap

import "fmt"

// SeqOrUid is a single sequence-number/UID position: either a
// positive integer or "*", meaning the largest number in use (for a
// UID set, the highest UID; for a sequence-number set, EXISTS).
type SeqOrUid struct {
	value uint32
	star  bool
}

// SeqOrUidNum wraps a concrete positive number. n must be nonzero;
// IMAP sequence numbers and UIDs are 1-based.
func SeqOrUidNum(n uint32) (SeqOrUid, error) {
	if n == 0 {
		return SeqOrUid{}, fmt.Errorf("imap: sequence number/UID must be nonzero")
	}
	return SeqOrUid{value: n}, nil
}

// SeqOrUidStar is "*", the largest number in use.
func SeqOrUidStar() SeqOrUid { return SeqOrUid{star: true} }

func (s SeqOrUid) IsStar() bool { return s.star }

// Num returns the wrapped number and true, or 0 and false if this is "*".
func (s SeqOrUid) Num() (uint32, bool) {
	if s.star {
		return 0, false
	}
	return s.value, true
}

func (s SeqOrUid) String() string {
	if s.star {
		return "*"
	}
	return fmt.Sprintf("%d", s.value)
}

// resolved returns the numeric value to use for ordering/comparison
// purposes, treating "*" as the largest possible value so that range
// endpoints involving it sort last.
func (s SeqOrUid) resolved() uint32 {
	if s.star {
		return ^uint32(0)
	}
	return s.value
}

// Sequence is a single member of a SequenceSet: either one SeqOrUid or
// an inclusive range "a:b". Range endpoints are unordered — 5:3 and
// 3:5 denote the same range — so construction normalizes them.
type Sequence struct {
	start, end SeqOrUid
	isRange    bool
}

// SequenceSingle wraps a single SeqOrUid.
func SequenceSingle(v SeqOrUid) Sequence { return Sequence{start: v, end: v} }

// SequenceRange builds an inclusive range between a and b, swapping
// them if necessary so that start ≤ end by resolved value (with "*"
// always resolving as the largest).
func SequenceRange(a, b SeqOrUid) Sequence {
	if a.resolved() > b.resolved() {
		a, b = b, a
	}
	return Sequence{start: a, end: b, isRange: true}
}

func (s Sequence) IsRange() bool { return s.isRange }

// Bounds returns the (start, end) endpoints. For a single value both
// are equal.
func (s Sequence) Bounds() (SeqOrUid, SeqOrUid) { return s.start, s.end }

func (s Sequence) String() string {
	if !s.isRange {
		return s.start.String()
	}
	return s.start.String() + ":" + s.end.String()
}

// SequenceSet is a comma-separated, non-empty list of Sequence.
type SequenceSet struct {
	seqs Vec1[Sequence]
}

// NewSequenceSet builds a SequenceSet from a non-empty slice of
// Sequence. An empty sequence set is not allowed by the grammar.
func NewSequenceSet(seqs []Sequence) (SequenceSet, error) {
	v, err := NewVec1(seqs)
	if err != nil {
		return SequenceSet{}, fmt.Errorf("imap: sequence-set: %w", err)
	}
	return SequenceSet{seqs: v}, nil
}

func (s SequenceSet) Sequences() []Sequence { return s.seqs.Slice() }

func (s SequenceSet) String() string {
	out := ""
	for i, seq := range s.seqs.Slice() {
		if i > 0 {
			out += ","
		}
		out += seq.String()
	}
	return out
}

// Contains reports whether n (a resolved sequence number or UID, with
// largestKnown substituting for "*") is a member of the set.
func (s SequenceSet) Contains(n, largestKnown uint32) bool {
	resolve := func(v SeqOrUid) uint32 {
		if v.IsStar() {
			return largestKnown
		}
		num, _ := v.Num()
		return num
	}
	for _, seq := range s.seqs.Slice() {
		lo := resolve(seq.start)
		hi := resolve(seq.end)
		if lo > hi {
			lo, hi = hi, lo
		}
		if n >= lo && n <= hi {
			return true
		}
	}
	return false
}
