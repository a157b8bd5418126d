package items

import (
	"errors"
	"fmt"
	"iter"

	"kartedit/log"
)

const (
	// SetCount is the number of probability sets.
	SetCount = 7
	// LapRankCount is the number of lap/rank conditions per set and mode.
	LapRankCount = 3
	// ModeCount is the number of race modes with sets: grand prix and match race.
	ModeCount = 2

	// Count is the number of records in a table. The last one is for battle mode.
	Count = SetCount*LapRankCount*ModeCount + 1

	// Size is the size of an encoded table.
	Size = Count * RecordSize
)

// setOrder maps a probability set number to its position in the ROM, where
// sets are not stored in order.
var setOrder = [SetCount]int{1, 0, 2, 4, 6, 5, 3}

// Mode is a race mode.
type Mode uint8

const (
	MatchRace Mode = iota
	GrandPrix
	Battle
)

func (m Mode) String() string {
	switch m {
	case MatchRace:
		return "matchrace"
	case GrandPrix:
		return "grandprix"
	case Battle:
		return "battle"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "matchrace", "match":
		*m = MatchRace
	case "grandprix", "gp":
		*m = GrandPrix
	case "battle":
		*m = Battle
	default:
		return fmt.Errorf("unknown race mode %q", text)
	}
	return nil
}

// ErrSize is matched by every SizeError.
var ErrSize = errors.New("invalid item probabilities size")

// A SizeError reports a buffer that is not Size bytes long.
type SizeError struct {
	Len int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("item probabilities must be %d bytes, got %d", Size, e.Len)
}

func (e *SizeError) Unwrap() error { return ErrSize }

// A Table holds all the item probability records of the game.
//
// Records are stored match race first (7 sets of 3 conditions), then grand
// prix (same layout), then the battle mode record.
//
// The zero Table is empty: it has no records until the first successful
// SetBytes, UnmarshalYAML or UnmarshalJSON, which takes the initial
// checkpoint. Bytes returns nil and Modified false on an empty table.
type Table struct {
	recs [Count]*Probability
}

// NewTable decodes a table from data, which must be Size bytes long.
func NewTable(data []byte) (*Table, error) {
	t := &Table{}
	if err := t.SetBytes(data); err != nil {
		return nil, err
	}
	return t, nil
}

// SetBytes decodes all records from data. On error, t is left unchanged.
//
// The first call on an empty table takes the checkpoint of every record.
// Afterwards records are updated in place, so pointers returned by t stay
// valid; the records whose value changes are marked modified and notify
// their callbacks, and Reset brings back the last checkpoint.
func (t *Table) SetBytes(data []byte) error {
	if len(data) != Size {
		return &SizeError{Len: len(data)}
	}

	var recs [Count]Record
	for i := range recs {
		off := i * RecordSize
		rec, err := DecodeRecord(data[off : off+RecordSize])
		if err != nil {
			return fmt.Errorf("record %d (%s): %w", i, describe(i), err)
		}
		recs[i] = rec
	}

	if t.empty() {
		for i, rec := range recs {
			t.recs[i] = &Probability{}
			t.recs[i].load(rec)
		}
		log.ModItems.Debugf("decoded %d item probability records", Count)
		return nil
	}

	n := 0
	for i, rec := range recs {
		if t.recs[i].set(rec) {
			n++
		}
	}
	log.ModItems.Debugf("decoded %d item probability records, %d changed", Count, n)
	return nil
}

func (t *Table) empty() bool { return t.recs[0] == nil }

// Bytes returns the encoding of t, in a newly allocated buffer.
func (t *Table) Bytes() []byte {
	if t.empty() {
		return nil
	}
	data := make([]byte, Size)
	for i, p := range t.recs {
		off := i * RecordSize
		p.Encode(data[off : off+RecordSize])
	}
	return data
}

func checkSet(set int) {
	if set < 0 || set >= SetCount {
		panic(fmt.Sprintf("items: probability set %d out of range [0,%d)", set, SetCount))
	}
}

func grandPrixIndex(set int, cond GrandprixCondition) int {
	checkSet(set)
	if cond >= LapRankCount {
		panic(fmt.Sprintf("items: invalid grand prix condition %d", cond))
	}
	return setOrder[set]*LapRankCount + int(cond) + LapRankCount*SetCount
}

func matchRaceIndex(set int, cond MatchRaceCondition) int {
	checkSet(set)
	if cond >= LapRankCount {
		panic(fmt.Sprintf("items: invalid match race condition %d", cond))
	}
	return setOrder[set]*LapRankCount + int(cond)
}

// GrandPrix returns the record of probability set set used in grand prix
// under condition cond. It panics if set or cond are out of range.
func (t *Table) GrandPrix(set int, cond GrandprixCondition) *Probability {
	return t.recs[grandPrixIndex(set, cond)]
}

// MatchRace returns the record of probability set set used in match race
// under condition cond. It panics if set or cond are out of range.
func (t *Table) MatchRace(set int, cond MatchRaceCondition) *Probability {
	return t.recs[matchRaceIndex(set, cond)]
}

// Battle returns the battle mode record.
func (t *Table) Battle() *Probability {
	return t.recs[Count-1]
}

// At returns the record at index i, in ROM order.
func (t *Table) At(i int) *Probability {
	return t.recs[i]
}

// All iterates over records in ROM order.
func (t *Table) All() iter.Seq2[int, *Probability] {
	return func(yield func(int, *Probability) bool) {
		for i, p := range t.recs {
			if !yield(i, p) {
				return
			}
		}
	}
}

// Locate returns the race mode, probability set and condition of the record
// at index i. For the battle record, set and cond are 0. It panics if i is
// out of range.
func Locate(i int) (mode Mode, set int, cond int) {
	if i < 0 || i >= Count {
		panic(fmt.Sprintf("items: record index %d out of range [0,%d)", i, Count))
	}
	if i == Count-1 {
		return Battle, 0, 0
	}
	mode = MatchRace
	if i >= LapRankCount*SetCount {
		mode = GrandPrix
		i -= LapRankCount * SetCount
	}
	phys, cond := i/LapRankCount, i%LapRankCount
	for s, p := range setOrder {
		if p == phys {
			set = s
			break
		}
	}
	return mode, set, cond
}

// Index returns the index of the record for mode, set and condition; the
// reverse of Locate.
func Index(mode Mode, set int, cond int) int {
	switch mode {
	case GrandPrix:
		return grandPrixIndex(set, GrandprixCondition(cond))
	case MatchRace:
		return matchRaceIndex(set, MatchRaceCondition(cond))
	}
	return Count - 1
}

func describe(i int) string {
	mode, set, cond := Locate(i)
	switch mode {
	case GrandPrix:
		return fmt.Sprintf("grandprix set %d %s", set, GrandprixCondition(cond))
	case MatchRace:
		return fmt.Sprintf("matchrace set %d %s", set, MatchRaceCondition(cond))
	}
	return "battle"
}

// Modified reports whether any record changed since the last checkpoint.
func (t *Table) Modified() bool {
	if t.empty() {
		return false
	}
	for _, p := range t.recs {
		if p.Modified() {
			return true
		}
	}
	return false
}

// ResetModifiedState takes a checkpoint of every record.
func (t *Table) ResetModifiedState() {
	if t.empty() {
		return
	}
	for _, p := range t.recs {
		p.ResetModifiedState()
	}
}

// Reset restores every record to its last checkpoint.
func (t *Table) Reset() {
	if t.empty() {
		return
	}
	for _, p := range t.recs {
		p.Reset()
	}
}
