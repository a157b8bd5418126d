package items

import (
	"kartedit/log"
)

// checkpoint holds the last saved encoding of a record and whether the
// record changed since.
type checkpoint struct {
	backup   [RecordSize]byte
	modified bool
}

func (cp *checkpoint) save(r Record) {
	EncodeRecord(cp.backup[:], r)
	cp.modified = false
}

func (cp *checkpoint) restore() Record {
	// The backup always comes from EncodeRecord on a valid record.
	r, err := DecodeRecord(cp.backup[:])
	if err != nil {
		panic("items: corrupted record backup: " + err.Error())
	}
	cp.modified = false
	return r
}

// A Probability holds the item weights the item box uses for one race
// condition. The eight weights and lightning always add up to TotalCount.
//
// A Probability is not safe for concurrent use.
type Probability struct {
	rec      Record
	cp       checkpoint
	onChange []func(*Probability)
}

// NewProbability decodes a Probability from a 9-byte record.
func NewProbability(p []byte) (*Probability, error) {
	rec, err := DecodeRecord(p)
	if err != nil {
		return nil, err
	}
	prob := &Probability{}
	prob.load(rec)
	return prob, nil
}

// load replaces the whole state with r and takes a checkpoint.
func (p *Probability) load(r Record) {
	p.rec = r
	p.cp.save(r)
}

// set replaces the whole state with r, keeping the checkpoint. It reports
// whether the value changed.
func (p *Probability) set(r Record) bool {
	if r == p.rec {
		return false
	}
	p.rec = r
	p.changed()
	return true
}

// Record returns the current value of p.
func (p *Probability) Record() Record { return p.rec }

// Encode writes the 9-byte encoding of p into dst.
func (p *Probability) Encode(dst []byte) { EncodeRecord(dst, p.rec) }

// OnChange registers fn to be called after every change of p.
func (p *Probability) OnChange(fn func(*Probability)) {
	p.onChange = append(p.onChange, fn)
}

func (p *Probability) changed() {
	p.cp.modified = true
	for _, fn := range p.onChange {
		fn(p)
	}
}

// Weight returns the weight of kind k.
func (p *Probability) Weight(k Kind) int { return p.rec.Weights[k] }

// Sum returns the sum of the eight stored weights.
func (p *Probability) Sum() int { return p.rec.Sum() }

// Lightning returns the lightning weight, what the eight weights leave of
// TotalCount.
func (p *Probability) Lightning() int { return p.rec.Lightning() }

// Total returns the eight weights plus lightning. It is always TotalCount.
func (p *Probability) Total() int { return p.Sum() + p.Lightning() }

// Percent returns the chance, in percent, to get an item of kind k.
func (p *Probability) Percent(k Kind) float64 {
	return float64(p.Weight(k)) * 100 / TotalCount
}

// LightningPercent returns the chance, in percent, to get lightning.
func (p *Probability) LightningPercent() float64 {
	return float64(p.Lightning()) * 100 / TotalCount
}

// SetWeight sets the weight of kind k to v.
//
// v is lowered if needed so the eight weights never add up to more than
// TotalCount, the surplus of the other weights staying untouched. Negative
// values are raised to 0.
func (p *Probability) SetWeight(k Kind, v int) {
	if v < 0 {
		v = 0
	}
	rest := p.Sum() - p.rec.Weights[k]
	if rest+v > TotalCount {
		v = TotalCount - rest
	}
	if v == p.rec.Weights[k] {
		return
	}

	log.ModItems.Debugf("%s weight %d -> %d", k, p.rec.Weights[k], v)
	p.rec.Weights[k] = v
	p.changed()
}

// Displayed returns the display mode.
func (p *Probability) Displayed() DisplayMode { return p.rec.Displayed }

// SetDisplayed changes the display mode, zeroing the weights of the items
// m hides. With NoCoinsOrLightnings, coins are zeroed and the resulting
// lightning weight moves to ghost, so lightning ends up at 0.
//
// Zeroed weights are not restored when switching back to a less restrictive
// mode.
func (p *Probability) SetDisplayed(m DisplayMode) error {
	if !m.Valid() {
		return &DisplayModeError{Tag: byte(m)}
	}
	if m == p.rec.Displayed {
		return nil
	}

	w := &p.rec.Weights
	switch m {
	case NoCoinsOrLightnings:
		w[Coins] = 0
		w[Ghost] += p.rec.Lightning()
	case NoFeathers:
		w[Feather] = 0
	case NoGhosts:
		w[Ghost] = 0
	case NoGhostsOrFeathers:
		w[Ghost] = 0
		w[Feather] = 0
	}

	log.ModItems.Debugf("display mode %s -> %s", p.rec.Displayed, m)
	p.rec.Displayed = m
	p.changed()
	return nil
}

// Modified reports whether p changed since the last checkpoint.
func (p *Probability) Modified() bool { return p.cp.modified }

// ResetModifiedState takes a checkpoint of the current state.
func (p *Probability) ResetModifiedState() { p.cp.save(p.rec) }

// Reset restores the state of the last checkpoint.
func (p *Probability) Reset() {
	changed := p.cp.modified
	p.rec = p.cp.restore()
	if changed {
		for _, fn := range p.onChange {
			fn(p)
		}
	}
}
