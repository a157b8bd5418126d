package items

import (
	"errors"
	"fmt"
)

// DisplayMode tells which items the item box never shows for a record.
// Its value is the tag byte stored after the weights of a record.
type DisplayMode uint8

const (
	AllItems DisplayMode = 0x80 + iota
	NoFeathers
	NoCoinsOrLightnings
	NoGhosts
	NoGhostsOrFeathers
)

// DisplayModes lists the known display modes in tag order.
var DisplayModes = []DisplayMode{AllItems, NoFeathers, NoCoinsOrLightnings, NoGhosts, NoGhostsOrFeathers}

var displayModeNames = map[DisplayMode]string{
	AllItems:            "all-items",
	NoFeathers:          "no-feathers",
	NoCoinsOrLightnings: "no-coins-or-lightnings",
	NoGhosts:            "no-ghosts",
	NoGhostsOrFeathers:  "no-ghosts-or-feathers",
}

// ErrUnknownDisplayMode is matched by every DisplayModeError.
var ErrUnknownDisplayMode = errors.New("unknown display mode")

// A DisplayModeError reports a tag byte outside of the known display modes.
type DisplayModeError struct {
	Tag byte
}

func (e *DisplayModeError) Error() string {
	return fmt.Sprintf("unknown display mode tag 0x%02X", e.Tag)
}

func (e *DisplayModeError) Unwrap() error { return ErrUnknownDisplayMode }

// Valid reports whether m is one of the known display modes.
func (m DisplayMode) Valid() bool {
	return m >= AllItems && m <= NoGhostsOrFeathers
}

func (m DisplayMode) String() string {
	if name, ok := displayModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("DisplayMode(0x%02X)", uint8(m))
}

// Hides reports whether items of kind k never show up in the item box.
func (m DisplayMode) Hides(k Kind) bool {
	switch m {
	case NoFeathers:
		return k == Feather
	case NoCoinsOrLightnings:
		return k == Coins
	case NoGhosts:
		return k == Ghost
	case NoGhostsOrFeathers:
		return k == Ghost || k == Feather
	}
	return false
}

// HidesLightning reports whether lightning never shows up in the item box.
func (m DisplayMode) HidesLightning() bool {
	return m == NoCoinsOrLightnings
}

func (m DisplayMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, &DisplayModeError{Tag: byte(m)}
	}
	return []byte(displayModeNames[m]), nil
}

func (m *DisplayMode) UnmarshalText(text []byte) error {
	for mode, name := range displayModeNames {
		if name == string(text) {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("%w %q", ErrUnknownDisplayMode, text)
}
