// Package editor loads the item probabilities of a rom, and saves them back.
package editor

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"kartedit/items"
	"kartedit/log"
	"kartedit/rom"
)

// ErrNoOffset is returned when the location of the item probabilities in the
// rom is not configured.
var ErrNoOffset = errors.New("item probabilities offset not configured")

// A Session is a rom opened for editing.
type Session struct {
	Items *items.Table

	rom  *rom.ROM
	path string
	cfg  Config
}

// Open opens the rom at path and decodes its item probabilities.
func Open(path string, cfg Config) (*Session, error) {
	if cfg.Items.Offset <= 0 {
		return nil, ErrNoOffset
	}

	r, err := rom.Open(path)
	if err != nil {
		return nil, err
	}
	data, err := r.Slice(cfg.Items.Offset, items.Size)
	if err != nil {
		return nil, fmt.Errorf("item probabilities: %w", err)
	}
	t, err := items.NewTable(data)
	if err != nil {
		return nil, fmt.Errorf("item probabilities at 0x%06X: %w", cfg.Items.Offset, err)
	}

	log.ModEdit.WithField("offset", fmt.Sprintf("0x%06X", cfg.Items.Offset)).Infof("opened %s", path)
	return &Session{Items: t, rom: r, path: path, cfg: cfg}, nil
}

// ROM returns the underlying rom.
func (s *Session) ROM() *rom.ROM { return s.rom }

// Path returns the path the rom was opened from.
func (s *Session) Path() string { return s.path }

// Modified reports whether the item probabilities changed since the rom was
// opened or last saved.
func (s *Session) Modified() bool { return s.Items.Modified() }

// Canonical reports whether encoding the item probabilities gives back the
// bytes currently stored in the rom.
func (s *Session) Canonical() (bool, error) {
	stored, err := s.rom.Slice(s.cfg.Items.Offset, items.Size)
	if err != nil {
		return false, err
	}
	return bytes.Equal(stored, s.Items.Bytes()), nil
}

// Save writes the item probabilities into the rom and saves it at path, or
// where it was opened from if path is empty.
func (s *Session) Save(path string) error {
	if path == "" {
		path = s.path
	}
	if err := s.rom.Patch(s.cfg.Items.Offset, s.Items.Bytes()); err != nil {
		return err
	}
	if s.cfg.General.FixChecksum {
		s.rom.UpdateChecksum()
	}
	if s.cfg.General.Backup {
		if err := backup(path); err != nil {
			return fmt.Errorf("backup: %w", err)
		}
	}
	if err := s.rom.Save(path); err != nil {
		return err
	}

	s.Items.ResetModifiedState()
	s.path = path
	log.ModEdit.Infof("saved %s", path)
	return nil
}

// backup copies the file at path, if any, to path.bak.
func backup(path string) error {
	buf, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path+".bak", buf, 0644)
}

// ImportItems replaces the item probabilities with the content of the file
// at path. On error, the item probabilities are left unchanged.
func (s *Session) ImportItems(path string, f Format) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	if err := Decode(s.Items, data, f); err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	log.ModEdit.Infof("imported item probabilities from %s (%s)", path, f)
	return nil
}

// ExportItems writes the item probabilities to the file at path.
func (s *Session) ExportItems(path string, f Format) error {
	data, err := Encode(s.Items, f)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	log.ModEdit.Infof("exported item probabilities to %s (%s)", path, f)
	return nil
}
