package items

import "testing"

func hasPanicked(f func()) (yes bool, msg any) {
	defer func() {
		msg = recover()
		if msg != nil {
			yes = true
		}
	}()
	f()
	return yes, msg
}

// sampleRecord returns a valid record, different for each i.
func sampleRecord(i int) Record {
	var r Record
	for k := range r.Weights {
		r.Weights[k] = (i + k) % 5
	}
	r.Displayed = DisplayModes[i%len(DisplayModes)]
	return r
}

// sampleData returns the encoding of a table made of sample records.
func sampleData() []byte {
	data := make([]byte, Size)
	for i := range Count {
		EncodeRecord(data[i*RecordSize:], sampleRecord(i))
	}
	return data
}

func sampleTable(t *testing.T) *Table {
	t.Helper()

	tbl, err := NewTable(sampleData())
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func newProbability(t *testing.T, weights [KindCount]int, mode DisplayMode) *Probability {
	t.Helper()

	var buf [RecordSize]byte
	EncodeRecord(buf[:], Record{Weights: weights, Displayed: mode})
	p, err := NewProbability(buf[:])
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func checkInvariant(t *testing.T, p *Probability) {
	t.Helper()

	for _, k := range Kinds {
		if w := p.Weight(k); w < 0 || w > TotalCount {
			t.Fatalf("%s weight %d out of range", k, w)
		}
	}
	if p.Lightning() < 0 {
		t.Fatalf("negative lightning %d", p.Lightning())
	}
	if got := p.Sum() + p.Lightning(); got != TotalCount {
		t.Fatalf("weights + lightning = %d, want %d", got, TotalCount)
	}
	if got := p.Total(); got != TotalCount {
		t.Fatalf("Total() = %d, want %d", got, TotalCount)
	}
}
