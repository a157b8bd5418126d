package editor

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"kartedit/items"
)

func TestVerify(t *testing.T) {
	dir := t.TempDir()

	bad := itemsData(0)
	bad[5*items.RecordSize+2] = 0xFF // cumulative run over 32

	nonCanonical := writeROM(t, dir, "checksum.sfc", itemsData(2))
	buf := readFile(t, nonCanonical)
	buf[0x20] ^= 0x01 // breaks the checksum, outside of item probabilities
	if err := os.WriteFile(nonCanonical, buf, 0644); err != nil {
		t.Fatal(err)
	}

	paths := []string{
		writeROM(t, dir, "good.sfc", itemsData(0)),
		writeROM(t, dir, "bad.sfc", bad),
		filepath.Join(dir, "missing.sfc"),
		nonCanonical,
	}

	reports := Verify(context.Background(), paths, testConfig())
	if len(reports) != len(paths) {
		t.Fatalf("got %d reports, want %d", len(reports), len(paths))
	}
	for i, rep := range reports {
		if rep.Path != paths[i] {
			t.Errorf("report %d is for %s, want %s", i, rep.Path, paths[i])
		}
	}

	if rep := reports[0]; rep.Err != nil || !rep.ChecksumOK || !rep.Canonical || rep.Title != "KART TEST" {
		t.Errorf("good rom report = %+v", rep)
	}
	if rep := reports[1]; !errors.Is(rep.Err, items.ErrMalformedRecord) {
		t.Errorf("bad rom error = %v, want items.ErrMalformedRecord", rep.Err)
	}
	if rep := reports[2]; !errors.Is(rep.Err, fs.ErrNotExist) {
		t.Errorf("missing rom error = %v, want fs.ErrNotExist", rep.Err)
	}
	if rep := reports[3]; rep.Err != nil || rep.ChecksumOK || !rep.Canonical {
		t.Errorf("bad checksum rom report = %+v", rep)
	}
}

func TestVerifyCanceled(t *testing.T) {
	path := writeROM(t, t.TempDir(), "good.sfc", itemsData(0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reports := Verify(ctx, []string{path, path}, testConfig())
	for _, rep := range reports {
		if !errors.Is(rep.Err, context.Canceled) {
			t.Errorf("report error = %v, want context.Canceled", rep.Err)
		}
	}
}
