package items

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTableRoundTrip(t *testing.T) {
	data := sampleData()
	tbl, err := NewTable(data)
	if err != nil {
		t.Fatal(err)
	}

	for i, p := range tbl.All() {
		if diff := cmp.Diff(sampleRecord(i), p.Record()); diff != "" {
			t.Fatalf("record %d mismatch (-want +got):\n%s", i, diff)
		}
		checkInvariant(t, p)
	}

	got := tbl.Bytes()
	if !bytes.Equal(got, data) {
		t.Fatalf("Bytes() differs from decoded data")
	}

	// Bytes returns a new buffer each time.
	got[0] ^= 0xFF
	if !bytes.Equal(tbl.Bytes(), data) {
		t.Fatalf("Bytes() result aliases the table")
	}

	tbl2, err := NewTable(tbl.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	for i := range Count {
		if diff := cmp.Diff(tbl.At(i).Record(), tbl2.At(i).Record()); diff != "" {
			t.Fatalf("record %d mismatch after round trip (-want +got):\n%s", i, diff)
		}
	}
}

func TestSetOrder(t *testing.T) {
	tbl := sampleTable(t)

	// logical set -> position in rom
	want := []int{1, 0, 2, 4, 6, 5, 3}
	for set, phys := range want {
		for cond := range LapRankCount {
			if got, want := tbl.MatchRace(set, MatchRaceCondition(cond)), tbl.At(phys*3+cond); got != want {
				t.Errorf("MatchRace(%d, %d) is not record %d", set, cond, phys*3+cond)
			}
			if got, want := tbl.GrandPrix(set, GrandprixCondition(cond)), tbl.At(21+phys*3+cond); got != want {
				t.Errorf("GrandPrix(%d, %d) is not record %d", set, cond, 21+phys*3+cond)
			}
		}
	}
}

func TestIndexesAreDistinct(t *testing.T) {
	tbl := sampleTable(t)

	seen := make(map[*Probability]string)
	add := func(p *Probability, name string) {
		if prev, ok := seen[p]; ok {
			t.Fatalf("%s and %s share the same record", prev, name)
		}
		seen[p] = name
	}
	for set := range SetCount {
		for cond := range LapRankCount {
			add(tbl.MatchRace(set, MatchRaceCondition(cond)), describe(matchRaceIndex(set, MatchRaceCondition(cond))))
			add(tbl.GrandPrix(set, GrandprixCondition(cond)), describe(grandPrixIndex(set, GrandprixCondition(cond))))
		}
	}
	if len(seen) != 42 {
		t.Fatalf("got %d distinct records, want 42", len(seen))
	}
	if _, ok := seen[tbl.Battle()]; ok {
		t.Fatalf("battle record reachable from grand prix or match race")
	}

	for range 3 {
		if tbl.Battle() != tbl.At(42) {
			t.Fatalf("Battle() is not record 42")
		}
	}
}

func TestLocate(t *testing.T) {
	for i := range Count {
		mode, set, cond := Locate(i)
		if got := Index(mode, set, cond); got != i {
			t.Errorf("Index(Locate(%d)) = %d", i, got)
		}
	}

	tests := []struct {
		i    int
		mode Mode
		set  int
		cond int
	}{
		{0, MatchRace, 1, 0},
		{3, MatchRace, 0, 0},
		{20, MatchRace, 4, 2},
		{24, GrandPrix, 0, 0},
		{41, GrandPrix, 4, 2},
		{42, Battle, 0, 0},
	}
	for _, tt := range tests {
		mode, set, cond := Locate(tt.i)
		if mode != tt.mode || set != tt.set || cond != tt.cond {
			t.Errorf("Locate(%d) = %s, %d, %d, want %s, %d, %d", tt.i, mode, set, cond, tt.mode, tt.set, tt.cond)
		}
	}
}

func TestInvalidSetPanics(t *testing.T) {
	tbl := sampleTable(t)
	tests := []struct {
		name string
		f    func()
	}{
		{"gp negative set", func() { tbl.GrandPrix(-1, Lap1First) }},
		{"gp set 7", func() { tbl.GrandPrix(SetCount, Lap1First) }},
		{"gp condition 3", func() { tbl.GrandPrix(0, GrandprixCondition(3)) }},
		{"match set 7", func() { tbl.MatchRace(SetCount, MatchLap1) }},
		{"match condition 3", func() { tbl.MatchRace(0, MatchRaceCondition(3)) }},
		{"locate negative index", func() { Locate(-1) }},
		{"locate index 43", func() { Locate(Count) }},
	}
	for _, tt := range tests {
		if yes, _ := hasPanicked(tt.f); !yes {
			t.Errorf("%s: should have panicked", tt.name)
		}
	}
}

func TestSetBytesSize(t *testing.T) {
	tbl := sampleTable(t)
	before := tbl.Bytes()

	for _, n := range []int{0, Size - 1, Size + 1, 2 * Size} {
		err := tbl.SetBytes(make([]byte, n))
		if !errors.Is(err, ErrSize) {
			t.Fatalf("SetBytes(%d bytes) error = %v, want ErrSize", n, err)
		}
		var serr *SizeError
		if !errors.As(err, &serr) || serr.Len != n {
			t.Fatalf("SetBytes(%d bytes) error = %v, want SizeError{%d}", n, err, n)
		}
		if !bytes.Equal(tbl.Bytes(), before) {
			t.Fatalf("SetBytes(%d bytes) modified the table", n)
		}
	}

	if _, err := NewTable(make([]byte, 10)); !errors.Is(err, ErrSize) {
		t.Fatalf("NewTable(10 bytes) error = %v, want ErrSize", err)
	}
}

func TestSetBytesInvalidRecord(t *testing.T) {
	tbl := sampleTable(t)
	before := tbl.Bytes()

	// All records changed but the last one is broken.
	data := make([]byte, Size)
	for i := range Count {
		EncodeRecord(data[i*RecordSize:], sampleRecord(i+1))
	}
	data[Size-1] = 0x90

	err := tbl.SetBytes(data)
	if !errors.Is(err, ErrUnknownDisplayMode) {
		t.Fatalf("SetBytes error = %v, want ErrUnknownDisplayMode", err)
	}
	t.Log(err)
	if !bytes.Equal(tbl.Bytes(), before) {
		t.Fatalf("failed SetBytes partially modified the table")
	}
}

func TestSetBytesKeepsRecords(t *testing.T) {
	tbl := sampleTable(t)
	gp := tbl.GrandPrix(3, Lap2To5SecondToFourth)
	battle := tbl.Battle()
	saved := gp.Record()

	notified := 0
	gp.OnChange(func(*Probability) { notified++ })

	data := make([]byte, Size)
	for i := range Count {
		EncodeRecord(data[i*RecordSize:], sampleRecord(i+2))
	}
	if err := tbl.SetBytes(data); err != nil {
		t.Fatal(err)
	}

	if tbl.GrandPrix(3, Lap2To5SecondToFourth) != gp || tbl.Battle() != battle {
		t.Fatalf("SetBytes replaced records")
	}
	idx := grandPrixIndex(3, Lap2To5SecondToFourth)
	if diff := cmp.Diff(sampleRecord(idx+2), gp.Record()); diff != "" {
		t.Fatalf("record not updated in place (-want +got):\n%s", diff)
	}
	if !tbl.Modified() || !gp.Modified() {
		t.Fatalf("Modified() = false after SetBytes changed the records")
	}
	if notified != 1 {
		t.Fatalf("OnChange called %d times, want 1", notified)
	}

	tbl.Reset()
	if diff := cmp.Diff(saved, gp.Record()); diff != "" {
		t.Fatalf("Reset did not undo SetBytes (-want +got):\n%s", diff)
	}
	if !bytes.Equal(tbl.Bytes(), sampleData()) {
		t.Fatalf("Reset did not restore the original encoding")
	}
}

func TestSetBytesUnchangedRecords(t *testing.T) {
	tbl := sampleTable(t)
	p := tbl.MatchRace(2, MatchLap1)
	p.OnChange(func(*Probability) { t.Fatalf("OnChange called for an unchanged record") })

	data := sampleData()
	other := Count - 1
	EncodeRecord(data[other*RecordSize:], sampleRecord(other+1))
	if err := tbl.SetBytes(data); err != nil {
		t.Fatal(err)
	}

	if p.Modified() {
		t.Errorf("unchanged record marked modified")
	}
	if !tbl.Battle().Modified() {
		t.Errorf("changed battle record not marked modified")
	}
}

func TestEmptyTable(t *testing.T) {
	var tbl Table
	if tbl.Modified() {
		t.Errorf("Modified() = true on an empty table")
	}
	if b := tbl.Bytes(); b != nil {
		t.Errorf("Bytes() = %d bytes on an empty table, want nil", len(b))
	}
	tbl.Reset()
	tbl.ResetModifiedState()
	if _, err := tbl.MarshalJSON(); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("MarshalJSON error = %v, want ErrEmptyTable", err)
	}
	if _, err := tbl.MarshalYAML(); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("MarshalYAML error = %v, want ErrEmptyTable", err)
	}

	if err := tbl.SetBytes(sampleData()); err != nil {
		t.Fatal(err)
	}
	if tbl.Modified() {
		t.Errorf("Modified() = true after the first SetBytes")
	}
	if !bytes.Equal(tbl.Bytes(), sampleData()) {
		t.Errorf("Bytes() mismatch after the first SetBytes")
	}
}

func TestTableModified(t *testing.T) {
	tbl := sampleTable(t)
	if tbl.Modified() {
		t.Fatalf("Modified() = true on a new table")
	}

	p := tbl.MatchRace(5, MatchLap2To5Second)
	saved := p.Record()
	p.SetWeight(Mushroom, p.Weight(Mushroom)+1)
	if !tbl.Modified() {
		t.Fatalf("Modified() = false after a record changed")
	}

	tbl.ResetModifiedState()
	if tbl.Modified() {
		t.Fatalf("Modified() = true after ResetModifiedState")
	}
	changed := p.Record()

	if err := tbl.Battle().SetDisplayed(NoGhosts); err != nil {
		t.Fatal(err)
	}
	p.SetWeight(Mushroom, 0)
	tbl.Reset()

	if tbl.Modified() {
		t.Fatalf("Modified() = true after Reset")
	}
	if diff := cmp.Diff(changed, p.Record()); diff != "" {
		t.Fatalf("Reset mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(sampleRecord(Count-1), tbl.Battle().Record()); diff != "" {
		t.Fatalf("battle Reset mismatch (-want +got):\n%s", diff)
	}
	if saved == changed {
		t.Fatalf("test record did not change")
	}
}
