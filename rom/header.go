package rom

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"
	"strings"
)

// Layout is the memory mapping of a cartridge.
type Layout uint8

const (
	LoROM Layout = iota
	HiROM
)

func (l Layout) String() string {
	if l == HiROM {
		return "HiROM"
	}
	return "LoROM"
}

// Internal header locations, in the image.
const (
	loROMHeader = 0x7FC0
	hiROMHeader = 0xFFC0

	headerSize = 0x20
	titleLen   = 21
)

// Offsets within the internal header.
const (
	hdrMapMode    = 0x15
	hdrCartType   = 0x16
	hdrROMSize    = 0x17
	hdrRAMSize    = 0x18
	hdrRegion     = 0x19
	hdrVersion    = 0x1B
	hdrComplement = 0x1C
	hdrChecksum   = 0x1E
)

type header struct {
	layout Layout
	off    int // offset of the internal header in the image
	raw    [headerSize]byte
}

// decode finds and decodes the internal header. The header whose checksum
// and complement match wins, LoROM first.
func (hdr *header) decode(p []byte) error {
	if len(p) < loROMHeader+headerSize {
		return fmt.Errorf("too small, needs at least %d bytes", loROMHeader+headerSize)
	}

	candidates := []struct {
		layout Layout
		off    int
	}{{LoROM, loROMHeader}, {HiROM, hiROMHeader}}

	found := false
	for _, c := range candidates {
		if c.off+headerSize > len(p) {
			continue
		}
		raw := p[c.off : c.off+headerSize]
		csum := binary.LittleEndian.Uint16(raw[hdrChecksum:])
		comp := binary.LittleEndian.Uint16(raw[hdrComplement:])
		if csum^comp == 0xFFFF {
			hdr.layout, hdr.off = c.layout, c.off
			found = true
			break
		}
	}
	if !found {
		// No valid checksum pair, rely on the mapping mode byte.
		hdr.layout, hdr.off = LoROM, loROMHeader
		if len(p) >= hiROMHeader+headerSize && p[hiROMHeader+hdrMapMode]&0x01 != 0 {
			hdr.layout, hdr.off = HiROM, hiROMHeader
		}
	}
	copy(hdr.raw[:], p[hdr.off:hdr.off+headerSize])
	return nil
}

// Title returns the game title stored in the internal header.
func (hdr *header) Title() string {
	return strings.TrimRight(string(bytes.TrimRight(hdr.raw[:titleLen], "\x00")), " ")
}

// Layout returns the memory mapping of the cartridge.
func (hdr *header) Layout() Layout { return hdr.layout }

// Region returns the destination code.
func (hdr *header) Region() uint8 { return hdr.raw[hdrRegion] }

// Version returns the mask ROM version.
func (hdr *header) Version() uint8 { return hdr.raw[hdrVersion] }

// Checksum returns the checksum stored in the internal header.
func (hdr *header) Checksum() uint16 {
	return binary.LittleEndian.Uint16(hdr.raw[hdrChecksum:])
}

// ComputeChecksum computes the checksum of the current image. For sizes
// that are not a power of two, the part past the largest power of two is
// mirrored to fill it.
func (rom *ROM) ComputeChecksum() uint16 {
	data := rom.data
	if len(data) == 0 {
		return 0
	}

	base := 1 << (bits.Len(uint(len(data))) - 1)
	var sum uint32
	for _, b := range data[:base] {
		sum += uint32(b)
	}
	if rest := data[base:]; len(rest) > 0 {
		var rsum uint32
		for _, b := range rest {
			rsum += uint32(b)
		}
		sum += rsum * uint32(base/len(rest))
	}
	return uint16(sum)
}

// UpdateChecksum recomputes the checksum and its complement and stores them
// in the internal header.
func (rom *ROM) UpdateChecksum() {
	pair := rom.data[rom.off+hdrComplement : rom.off+hdrComplement+4]
	binary.LittleEndian.PutUint16(pair[0:], 0xFFFF)
	binary.LittleEndian.PutUint16(pair[2:], 0x0000)

	csum := rom.ComputeChecksum()
	binary.LittleEndian.PutUint16(pair[0:], ^csum)
	binary.LittleEndian.PutUint16(pair[2:], csum)
	copy(rom.raw[:], rom.data[rom.off:rom.off+headerSize])
}

// PrintInfos writes a summary of the rom to w.
func (rom *ROM) PrintInfos(w io.Writer) {
	fmt.Fprintf(w, "Title:         %s\n", rom.Title())
	fmt.Fprintf(w, "Layout:        %s\n", rom.Layout())
	fmt.Fprintf(w, "Size:          %d KiB\n", rom.Len()/1024)
	fmt.Fprintf(w, "Copier header: %t\n", rom.HasCopierHeader())
	fmt.Fprintf(w, "Map mode:      0x%02X\n", rom.raw[hdrMapMode])
	fmt.Fprintf(w, "Cart type:     0x%02X\n", rom.raw[hdrCartType])
	fmt.Fprintf(w, "ROM size:      0x%02X\n", rom.raw[hdrROMSize])
	fmt.Fprintf(w, "RAM size:      0x%02X\n", rom.raw[hdrRAMSize])
	fmt.Fprintf(w, "Region:        0x%02X\n", rom.Region())
	fmt.Fprintf(w, "Version:       1.%d\n", rom.Version())

	csum := rom.ComputeChecksum()
	status := "ok"
	if csum != rom.Checksum() {
		status = fmt.Sprintf("mismatch, computed 0x%04X", csum)
	}
	fmt.Fprintf(w, "Checksum:      0x%04X (%s)\n", rom.Checksum(), status)
}
