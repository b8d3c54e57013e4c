package imap

import "testing"

func mustSeqNum(t *testing.T, n uint32) SeqOrUid {
	t.Helper()
	v, err := SeqOrUidNum(n)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestSeqOrUidZeroRejected(t *testing.T) {
	if _, err := SeqOrUidNum(0); err == nil {
		t.Fatal("0 is not a valid sequence number or UID")
	}
}

func TestSequenceRangeNormalizesEndpoints(t *testing.T) {
	a := SequenceRange(mustSeqNum(t, 5), mustSeqNum(t, 3))
	b := SequenceRange(mustSeqNum(t, 3), mustSeqNum(t, 5))
	if a.String() != b.String() || a.String() != "3:5" {
		t.Fatalf("5:3 and 3:5 must normalize identically, got %q and %q", a, b)
	}

	// "*" resolves as the largest value, so it always lands at the
	// high end.
	c := SequenceRange(SeqOrUidStar(), mustSeqNum(t, 4))
	if c.String() != "4:*" {
		t.Fatalf("got %q, want 4:*", c)
	}
}

func TestSequenceSetString(t *testing.T) {
	set, err := NewSequenceSet([]Sequence{
		SequenceSingle(mustSeqNum(t, 1)),
		SequenceRange(mustSeqNum(t, 3), mustSeqNum(t, 5)),
		SequenceSingle(SeqOrUidStar()),
	})
	if err != nil {
		t.Fatal(err)
	}
	if set.String() != "1,3:5,*" {
		t.Fatalf("got %q", set.String())
	}
}

func TestSequenceSetEmptyRejected(t *testing.T) {
	if _, err := NewSequenceSet(nil); err == nil {
		t.Fatal("an empty sequence set is not grammatical")
	}
}

func TestSequenceSetContains(t *testing.T) {
	set, err := NewSequenceSet([]Sequence{
		SequenceRange(mustSeqNum(t, 3), mustSeqNum(t, 5)),
		SequenceRange(mustSeqNum(t, 7), SeqOrUidStar()),
	})
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		n    uint32
		want bool
	}{
		{2, false},
		{3, true},
		{5, true},
		{6, false},
		{7, true},
		{10, true},
		{11, false},
	}
	for _, c := range cases {
		if got := set.Contains(c.n, 10); got != c.want {
			t.Errorf("Contains(%d, 10) = %v, want %v", c.n, got, c.want)
		}
	}
}

func TestMailboxInboxCaseInsensitive(t *testing.T) {
	for _, spelling := range []string{"INBOX", "inbox", "InBoX"} {
		a, err := TryAStringAsAtomOrQuoted([]byte(spelling))
		if err != nil {
			t.Fatal(err)
		}
		m := MailboxFromAString(a)
		if !m.IsInbox() {
			t.Errorf("%q should be the INBOX singleton", spelling)
		}
		if m.String() != "INBOX" {
			t.Errorf("%q should render canonically, got %q", spelling, m.String())
		}
	}

	a, _ := TryAStringAsAtomOrQuoted([]byte("Archive"))
	b, _ := TryAStringAsAtomOrQuoted([]byte("archive"))
	if MailboxFromAString(a).Equal(MailboxFromAString(b)) {
		t.Error("non-INBOX mailboxes compare byte-exact")
	}
}

func TestStoreFlagRefusesRecent(t *testing.T) {
	recent, err := TryAtom([]byte("Recent"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewStoreFlag(FlagExtension(recent)); err == nil {
		t.Fatal("\\Recent must not be storable")
	}
	if _, err := NewStoreFlag(FlagSystem(SystemFlagSeen)); err != nil {
		t.Fatalf("\\Seen must be storable: %v", err)
	}
}
