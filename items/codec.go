package items

import (
	"errors"
	"fmt"
)

const (
	// TotalCount is what the eight weights and lightning always add up to.
	TotalCount = 32

	// RecordSize is the size of an encoded record: 8 weights and the display
	// mode tag.
	RecordSize = KindCount + 1
)

// A Record is the plain value of an item probability record.
type Record struct {
	Weights   [KindCount]int
	Displayed DisplayMode
}

// Sum returns the sum of the eight weights.
func (r Record) Sum() int {
	sum := 0
	for _, w := range r.Weights {
		sum += w
	}
	return sum
}

// Lightning returns the weight left over for lightning.
func (r Record) Lightning() int {
	return TotalCount - r.Sum()
}

// ErrMalformedRecord is matched by every RecordError.
var ErrMalformedRecord = errors.New("malformed item probability record")

// A RecordError reports a cumulative weight byte that cannot be decoded.
type RecordError struct {
	Offset int  // byte offset within the record
	Value  byte // offending cumulative value
	Total  int  // running total before that byte
}

func (e *RecordError) Error() string {
	if int(e.Value) > TotalCount {
		return fmt.Sprintf("cumulative weight %d at byte %d exceeds %d", e.Value, e.Offset, TotalCount)
	}
	return fmt.Sprintf("cumulative weight %d at byte %d is below running total %d", e.Value, e.Offset, e.Total)
}

func (e *RecordError) Unwrap() error { return ErrMalformedRecord }

// DecodeRecord decodes a 9-byte record.
//
// Weights are stored as a cumulative run: a zero byte means a zero weight,
// any other byte is the running sum of the non-zero weights up to and
// including this one. The last byte is the display mode tag.
func DecodeRecord(p []byte) (Record, error) {
	var r Record
	if len(p) != RecordSize {
		return r, fmt.Errorf("record must be %d bytes, got %d", RecordSize, len(p))
	}

	total := 0
	for i := range KindCount {
		v := p[i]
		switch {
		case v == 0:
			continue
		case int(v) <= total || int(v) > TotalCount:
			return r, &RecordError{Offset: i, Value: v, Total: total}
		}
		r.Weights[i] = int(v) - total
		total = int(v)
	}

	r.Displayed = DisplayMode(p[KindCount])
	if !r.Displayed.Valid() {
		return r, &DisplayModeError{Tag: p[KindCount]}
	}
	return r, nil
}

// EncodeRecord encodes r into the first RecordSize bytes of dst.
// r must satisfy the weight invariants (each weight >= 0, sum <= 32).
func EncodeRecord(dst []byte, r Record) {
	_ = dst[RecordSize-1]

	total := 0
	for i, w := range r.Weights {
		if w == 0 {
			dst[i] = 0
			continue
		}
		total += w
		dst[i] = byte(total)
	}
	dst[KindCount] = byte(r.Displayed)
}

// validate checks the invariants EncodeRecord relies on.
func (r Record) validate() error {
	for i, w := range r.Weights {
		if w < 0 || w > TotalCount {
			return fmt.Errorf("%s weight %d out of range [0,%d]", Kind(i), w, TotalCount)
		}
	}
	if sum := r.Sum(); sum > TotalCount {
		return fmt.Errorf("weights add up to %d, more than %d", sum, TotalCount)
	}
	if !r.Displayed.Valid() {
		return &DisplayModeError{Tag: byte(r.Displayed)}
	}
	return nil
}
