package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kartedit/editor"
	"kartedit/items"
	"kartedit/log"
)

func showMain(args Show, cfg editor.Config) error {
	s, err := editor.Open(args.RomPath, cfg)
	if err != nil {
		return err
	}

	sel := selection{set: args.Set}
	if args.Mode != "all" {
		var m items.Mode
		if err := m.UnmarshalText([]byte(args.Mode)); err != nil {
			return err
		}
		sel.mode = &m
	}
	if sel.set >= items.SetCount {
		return fmt.Errorf("probability set %d out of range [0,%d)", sel.set, items.SetCount)
	}

	printTables(stdout, s.Items, sel, newStyles(args.Plain))
	return nil
}

func editMain(args Edit, cfg editor.Config) error {
	var mode items.Mode
	if err := mode.UnmarshalText([]byte(args.Mode)); err != nil {
		return err
	}
	if mode != items.Battle && (args.Set < 0 || args.Set >= items.SetCount) {
		return fmt.Errorf("probability set %d out of range [0,%d)", args.Set, items.SetCount)
	}
	if mode != items.Battle && args.Cond == "" {
		return errors.New("--cond is required for " + mode.String())
	}
	cond, err := items.ParseCondition(mode, args.Cond)
	if err != nil {
		return err
	}

	var display items.DisplayMode
	if args.Display != "" {
		if err := display.UnmarshalText([]byte(args.Display)); err != nil {
			return err
		}
	}

	weights := make(map[items.Kind]int, len(args.Item))
	for name, w := range args.Item {
		k, err := items.KindByName(name)
		if err != nil {
			return err
		}
		weights[k] = w
	}

	s, err := editor.Open(args.RomPath, cfg)
	if err != nil {
		return err
	}

	p := s.Items.At(items.Index(mode, args.Set, cond))
	p.OnChange(func(p *items.Probability) {
		log.ModCLI.Debugf("record changed, lightning=%d", p.Lightning())
	})

	if args.Display != "" {
		if err := p.SetDisplayed(display); err != nil {
			return err
		}
	}
	for _, k := range items.Kinds {
		w, ok := weights[k]
		if !ok {
			continue
		}
		if p.Displayed().Hides(k) {
			log.ModCLI.Warnf("%s is hidden by display mode %s", k, p.Displayed())
		}
		p.SetWeight(k, w)
		if got := p.Weight(k); got != w {
			log.ModCLI.Warnf("%s weight clamped from %d to %d", k, w, got)
		}
	}

	st := newStyles(false)
	fmt.Fprintln(stdout, st.title.Render(describeRecord(mode, args.Set, cond)))
	printHeader(stdout, "", st)
	printRecord(stdout, "", p, st)

	if !s.Modified() {
		fmt.Fprintln(stdout, "nothing changed")
		return nil
	}
	return s.Save(args.Out)
}

func describeRecord(mode items.Mode, set, cond int) string {
	switch mode {
	case items.GrandPrix:
		return fmt.Sprintf("Grand prix, set %d, %s", set, items.GrandprixCondition(cond))
	case items.MatchRace:
		return fmt.Sprintf("Match race, set %d, %s", set, items.MatchRaceCondition(cond))
	}
	return "Battle"
}

func fileFormat(name, path string) editor.Format {
	if name == "auto" {
		return editor.FormatFromPath(path)
	}
	var f editor.Format
	if err := f.UnmarshalText([]byte(name)); err != nil {
		// Values are restricted by the enum tag.
		panic(err)
	}
	return f
}

func exportMain(args Export, cfg editor.Config) error {
	s, err := editor.Open(args.RomPath, cfg)
	if err != nil {
		return err
	}
	return s.ExportItems(args.File, fileFormat(args.Format, args.File))
}

func importMain(args Import, cfg editor.Config) error {
	s, err := editor.Open(args.RomPath, cfg)
	if err != nil {
		return err
	}
	if err := s.ImportItems(args.File, fileFormat(args.Format, args.File)); err != nil {
		return err
	}
	if !s.Modified() {
		fmt.Fprintln(stdout, "nothing changed")
		return nil
	}
	return s.Save(args.Out)
}

// verifyMain prints a line per rom, it returns false if any rom failed.
func verifyMain(ctx context.Context, args Verify, cfg editor.Config) bool {
	st := newStyles(false)
	ok := true
	for _, rep := range editor.Verify(ctx, args.RomPaths, cfg) {
		if rep.Err != nil {
			ok = false
			fmt.Fprintf(stdout, "%s %s: %v\n", st.err.Render("FAIL"), rep.Path, rep.Err)
			continue
		}

		var notes []string
		if !rep.ChecksumOK {
			notes = append(notes, "bad checksum")
		}
		if !rep.Canonical {
			notes = append(notes, "non canonical encoding")
		}
		status := st.ok.Render("OK")
		if len(notes) != 0 {
			status = st.warn.Render("OK")
		}
		line := fmt.Sprintf("%s %s (%s)", status, rep.Path, rep.Title)
		if len(notes) != 0 {
			line += ": " + strings.Join(notes, ", ")
		}
		fmt.Fprintln(stdout, line)
	}
	return ok
}
