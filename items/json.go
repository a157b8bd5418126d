package items

import (
	"fmt"

	"github.com/go-faster/jx"
)

// MarshalJSON implements json.Marshaler.
func (t *Table) MarshalJSON() ([]byte, error) {
	entries, err := t.entries()
	if err != nil {
		return nil, err
	}

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("items")
	e.ArrStart()
	for _, en := range entries {
		e.ObjStart()
		e.FieldStart("mode")
		e.Str(en.Mode.String())
		if en.Mode != Battle {
			e.FieldStart("set")
			e.Int(en.Set)
			e.FieldStart("condition")
			e.Str(conditionName(en.Mode, en.Cond))
		}
		e.FieldStart("display")
		e.Str(en.Displayed.String())
		for _, k := range Kinds {
			e.FieldStart(k.key())
			e.Int(en.Weights[k])
		}
		e.FieldStart("lightning")
		e.Int(en.Lightning())
		e.ObjEnd()
	}
	e.ArrEnd()
	e.ObjEnd()
	return e.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. The document must hold every
// record, otherwise t is left unchanged.
func (t *Table) UnmarshalJSON(data []byte) error {
	var entries []entry
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "items" {
			return d.Skip()
		}
		return d.Arr(func(d *jx.Decoder) error {
			en, err := decodeJSONEntry(d)
			if err != nil {
				return fmt.Errorf("record %d: %w", len(entries), err)
			}
			entries = append(entries, en)
			return nil
		})
	})
	if err != nil {
		return err
	}
	return t.apply(entries)
}

func decodeJSONEntry(d *jx.Decoder) (entry, error) {
	var (
		en      entry
		hasMode bool
		hasSet  bool
		cond    string
	)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "mode":
			s, err := d.Str()
			if err != nil {
				return err
			}
			hasMode = true
			return en.Mode.UnmarshalText([]byte(s))
		case "set":
			v, err := d.Int()
			if err != nil {
				return err
			}
			en.Set, hasSet = v, true
		case "condition":
			s, err := d.Str()
			if err != nil {
				return err
			}
			cond = s
		case "display":
			s, err := d.Str()
			if err != nil {
				return err
			}
			return en.Displayed.UnmarshalText([]byte(s))
		case "lightning":
			return d.Skip()
		default:
			k, err := KindByName(key)
			if err != nil {
				return err
			}
			v, err := d.Int()
			if err != nil {
				return err
			}
			en.Weights[k] = v
		}
		return nil
	})
	if err != nil {
		return en, err
	}

	if !hasMode {
		return en, fmt.Errorf("missing race mode")
	}
	if en.Mode != Battle && !hasSet {
		return en, fmt.Errorf("missing probability set")
	}
	en.Cond, err = ParseCondition(en.Mode, cond)
	return en, err
}
