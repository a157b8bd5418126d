package editor

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"kartedit/items"
)

// Format is a file format for item probabilities.
type Format uint8

const (
	FormatRaw  Format = iota // the bytes as stored in the rom
	FormatYAML               // human readable document
	FormatJSON
)

var formatNames = [...]string{"raw", "yaml", "json"}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

func (f Format) MarshalText() ([]byte, error) {
	if int(f) >= len(formatNames) {
		return nil, fmt.Errorf("unknown format %d", f)
	}
	return []byte(f.String()), nil
}

func (f *Format) UnmarshalText(text []byte) error {
	for i, name := range formatNames {
		if name == string(text) {
			*f = Format(i)
			return nil
		}
	}
	return fmt.Errorf("unknown format %q", text)
}

// FormatFromPath guesses the format of a file from its extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return FormatRaw
}

// Encode encodes t in format f.
func Encode(t *items.Table, f Format) ([]byte, error) {
	switch f {
	case FormatRaw:
		return t.Bytes(), nil
	case FormatYAML:
		return yaml.Marshal(t)
	case FormatJSON:
		return t.MarshalJSON()
	}
	return nil, fmt.Errorf("unknown format %d", f)
}

var errEmptyDocument = errors.New("empty document")

// Decode replaces the records of t with data, in format f. On error t is
// left unchanged.
func Decode(t *items.Table, data []byte, f Format) error {
	switch f {
	case FormatRaw:
		return t.SetBytes(data)
	case FormatYAML:
		if len(bytes.TrimSpace(data)) == 0 {
			return errEmptyDocument
		}
		return yaml.Unmarshal(data, t)
	case FormatJSON:
		return t.UnmarshalJSON(data)
	}
	return fmt.Errorf("unknown format %d", f)
}
