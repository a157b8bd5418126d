// package rom implements reading and writing of SNES cartridge images, with
// or without a copier header.
package rom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"kartedit/log"
)

// CopierHeaderSize is the size of the header some copiers prepend to images.
const CopierHeaderSize = 512

// A ROM is a cartridge image.
type ROM struct {
	header
	copier []byte // copier header, or empty
	data   []byte // image, without copier header
}

// Open loads a rom from file.
func Open(path string) (*ROM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rom := new(ROM)
	if _, err := rom.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rom, nil
}

// ReadFrom implements io.ReaderFrom interface
func (rom *ROM) ReadFrom(r io.Reader) (int64, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	data := buf
	var copier []byte
	if len(buf)%1024 == CopierHeaderSize {
		copier, data = buf[:CopierHeaderSize], buf[CopierHeaderSize:]
	}
	if err := rom.decode(data); err != nil {
		return 0, fmt.Errorf("failed to decode header: %w", err)
	}
	rom.copier = copier
	rom.data = data

	log.ModROM.WithFields(log.Fields{
		"size":   len(data),
		"copier": len(copier) != 0,
		"layout": rom.layout,
	}).Debugf("rom loaded")
	return int64(len(buf)), nil
}

// Len returns the size of the image, copier header excluded.
func (rom *ROM) Len() int { return len(rom.data) }

// HasCopierHeader reports whether the image came with a copier header.
func (rom *ROM) HasCopierHeader() bool { return len(rom.copier) != 0 }

// ErrRange is matched by every RangeError.
var ErrRange = errors.New("out of rom bounds")

// A RangeError reports an access outside of the image.
type RangeError struct {
	Off, Len, Size int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("range [0x%X,0x%X) outside of rom (size 0x%X)", e.Off, e.Off+e.Len, e.Size)
}

func (e *RangeError) Unwrap() error { return ErrRange }

func (rom *ROM) checkRange(off, n int) error {
	if off < 0 || n < 0 || off+n > len(rom.data) {
		return &RangeError{Off: off, Len: n, Size: len(rom.data)}
	}
	return nil
}

// Slice returns a copy of the n bytes at offset off.
func (rom *ROM) Slice(off, n int) ([]byte, error) {
	if err := rom.checkRange(off, n); err != nil {
		return nil, err
	}
	return bytes.Clone(rom.data[off : off+n]), nil
}

// Patch overwrites the image with p, starting at offset off.
func (rom *ROM) Patch(off int, p []byte) error {
	if err := rom.checkRange(off, len(p)); err != nil {
		return err
	}
	copy(rom.data[off:], p)
	log.ModROM.Debugf("patched %d bytes at 0x%06X", len(p), off)
	return nil
}

// WriteTo implements io.WriterTo interface. The copier header, if any, is
// written back.
func (rom *ROM) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, p := range [][]byte{rom.copier, rom.data} {
		n, err := w.Write(p)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Save writes the rom to path. The file is replaced atomically, keeping its
// permissions; a new file is created with mode 0644.
func (rom *ROM) Save(path string) error {
	mode := fs.FileMode(0644)
	switch fi, err := os.Stat(path); {
	case err == nil:
		mode = fi.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := rom.WriteTo(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
