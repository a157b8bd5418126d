package items

import (
	"errors"
	"fmt"
)

// ErrEmptyTable is returned when encoding a Table that holds no records.
var ErrEmptyTable = errors.New("empty item probability table")

// entry is a record along with its position, as it appears in text
// documents.
type entry struct {
	Mode Mode
	Set  int
	Cond int
	Record
}

func (en entry) index() (int, error) {
	switch en.Mode {
	case Battle:
		return Count - 1, nil
	case GrandPrix, MatchRace:
	default:
		return 0, fmt.Errorf("unknown race mode %d", en.Mode)
	}
	if en.Set < 0 || en.Set >= SetCount {
		return 0, fmt.Errorf("probability set %d out of range [0,%d)", en.Set, SetCount)
	}
	if en.Cond < 0 || en.Cond >= LapRankCount {
		return 0, fmt.Errorf("condition %d out of range [0,%d)", en.Cond, LapRankCount)
	}
	return Index(en.Mode, en.Set, en.Cond), nil
}

// entries lists the records of t in logical order: grand prix sets, match
// race sets, then battle.
func (t *Table) entries() ([]entry, error) {
	if t.empty() {
		return nil, ErrEmptyTable
	}
	entries := make([]entry, 0, Count)
	for _, mode := range []Mode{GrandPrix, MatchRace} {
		for set := range SetCount {
			for cond := range LapRankCount {
				rec := t.recs[Index(mode, set, cond)].Record()
				entries = append(entries, entry{Mode: mode, Set: set, Cond: cond, Record: rec})
			}
		}
	}
	return append(entries, entry{Mode: Battle, Record: t.Battle().Record()}), nil
}

// apply replaces every record of t with entries, which must hold each
// record exactly once. On error, t is left unchanged.
func (t *Table) apply(entries []entry) error {
	if len(entries) != Count {
		return fmt.Errorf("expected %d records, got %d", Count, len(entries))
	}

	var seen [Count]bool
	data := make([]byte, Size)
	for n, en := range entries {
		i, err := en.index()
		if err != nil {
			return fmt.Errorf("record %d: %w", n, err)
		}
		if seen[i] {
			return fmt.Errorf("record %d: duplicate %s", n, describe(i))
		}
		seen[i] = true

		if err := en.Record.validate(); err != nil {
			return fmt.Errorf("%s: %w", describe(i), err)
		}
		EncodeRecord(data[i*RecordSize:], en.Record)
	}
	return t.SetBytes(data)
}
