package items

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Kind

// Kind identifies one of the weighted items. The declaration order is the
// order in which weights are stored in a record.
type Kind uint8

const (
	Mushroom Kind = iota
	Feather
	Star
	Banana
	GreenShell
	RedShell
	Ghost
	Coins

	KindCount = 8
)

// Kinds lists every weighted item, in record order.
var Kinds = [KindCount]Kind{Mushroom, Feather, Star, Banana, GreenShell, RedShell, Ghost, Coins}

// KindByName returns the item kind whose name matches s, ignoring case.
func KindByName(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(k.String(), s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown item %q", s)
}

// key is the lower-case name used in text documents.
func (k Kind) key() string {
	return strings.ToLower(k.String())
}
