package items

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type yamlDoc struct {
	Items []yamlEntry `yaml:"items"`
}

type yamlEntry struct {
	Mode      *Mode       `yaml:"mode"`
	Set       *int        `yaml:"set,omitempty"`
	Condition string      `yaml:"condition,omitempty"`
	Display   DisplayMode `yaml:"display"`

	Mushroom   int `yaml:"mushroom"`
	Feather    int `yaml:"feather"`
	Star       int `yaml:"star"`
	Banana     int `yaml:"banana"`
	GreenShell int `yaml:"greenshell"`
	RedShell   int `yaml:"redshell"`
	Ghost      int `yaml:"ghost"`
	Coins      int `yaml:"coins"`

	// Lightning is only informative, it is ignored when decoding.
	Lightning int `yaml:"lightning"`
}

func (ye *yamlEntry) weights() []*int {
	return []*int{&ye.Mushroom, &ye.Feather, &ye.Star, &ye.Banana, &ye.GreenShell, &ye.RedShell, &ye.Ghost, &ye.Coins}
}

// MarshalYAML implements yaml.Marshaler.
func (t *Table) MarshalYAML() (any, error) {
	entries, err := t.entries()
	if err != nil {
		return nil, err
	}

	var doc yamlDoc
	for _, en := range entries {
		mode := en.Mode
		ye := yamlEntry{
			Mode:      &mode,
			Display:   en.Displayed,
			Lightning: en.Lightning(),
		}
		if en.Mode != Battle {
			set := en.Set
			ye.Set = &set
			ye.Condition = conditionName(en.Mode, en.Cond)
		}
		for i, w := range ye.weights() {
			*w = en.Weights[i]
		}
		doc.Items = append(doc.Items, ye)
	}
	return doc, nil
}

// UnmarshalYAML implements yaml.Unmarshaler. The document must hold every
// record, otherwise t is left unchanged.
func (t *Table) UnmarshalYAML(value *yaml.Node) error {
	var doc yamlDoc
	if err := value.Decode(&doc); err != nil {
		return err
	}

	entries := make([]entry, 0, len(doc.Items))
	for n, ye := range doc.Items {
		if ye.Mode == nil {
			return fmt.Errorf("record %d: missing race mode", n)
		}
		en := entry{Mode: *ye.Mode}
		if en.Mode != Battle {
			if ye.Set == nil {
				return fmt.Errorf("record %d: missing probability set", n)
			}
			cond, err := ParseCondition(en.Mode, ye.Condition)
			if err != nil {
				return fmt.Errorf("record %d: %w", n, err)
			}
			en.Set, en.Cond = *ye.Set, cond
		}
		en.Displayed = ye.Display
		for i, w := range ye.weights() {
			en.Weights[i] = *w
		}
		entries = append(entries, en)
	}
	return t.apply(entries)
}
