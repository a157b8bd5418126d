package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kartedit/items"
)

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	cell      lipgloss.Style
	zero      lipgloss.Style
	hidden    lipgloss.Style
	lightning lipgloss.Style
	ok        lipgloss.Style
	warn      lipgloss.Style
	err       lipgloss.Style
}

// ANSI Color reference
// 1	Red
// 2	Green
// 3	Yellow
// 4	Blue
// 6	Cyan
// 8	Bright Black (Gray)
// 15	Bright White

func newStyles(plain bool) styles {
	const cellWidth = 7
	if plain {
		cell := lipgloss.NewStyle().Width(cellWidth)
		return styles{
			title:     lipgloss.NewStyle(),
			header:    cell,
			cell:      cell,
			zero:      cell,
			hidden:    cell,
			lightning: cell,
			ok:        lipgloss.NewStyle(),
			warn:      lipgloss.NewStyle(),
			err:       lipgloss.NewStyle(),
		}
	}

	cell := lipgloss.NewStyle().Width(cellWidth)
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(15)).Background(lipgloss.ANSIColor(4)),
		header:    cell.Bold(true).Foreground(lipgloss.ANSIColor(6)),
		cell:      cell,
		zero:      cell.Foreground(lipgloss.ANSIColor(8)),
		hidden:    cell.Strikethrough(true).Foreground(lipgloss.ANSIColor(8)),
		lightning: cell.Bold(true).Foreground(lipgloss.ANSIColor(3)),
		ok:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(2)),
		warn:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)),
		err:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(15)).Background(lipgloss.ANSIColor(1)),
	}
}

// short column names, in record order.
var kindHeaders = [items.KindCount]string{"Mush", "Feath", "Star", "Banana", "Green", "Red", "Ghost", "Coins"}

const labelWidth = 18

// selection restricts the records printed by printTables.
type selection struct {
	mode *items.Mode // nil for all modes
	set  int         // -1 for all sets
}

func (sel selection) has(mode items.Mode) bool {
	return sel.mode == nil || *sel.mode == mode
}

func printTables(w io.Writer, t *items.Table, sel selection, st styles) {
	if sel.has(items.GrandPrix) {
		fmt.Fprintln(w, st.title.Render("Grand prix"))
		printMode(w, t, items.GrandPrix, sel.set, st)
	}
	if sel.has(items.MatchRace) {
		fmt.Fprintln(w, st.title.Render("Match race"))
		printMode(w, t, items.MatchRace, sel.set, st)
	}
	if sel.has(items.Battle) {
		fmt.Fprintln(w, st.title.Render("Battle"))
		printHeader(w, "", st)
		printRecord(w, "", t.Battle(), st)
	}
}

func printMode(w io.Writer, t *items.Table, mode items.Mode, onlySet int, st styles) {
	for set := range items.SetCount {
		if onlySet >= 0 && set != onlySet {
			continue
		}
		printHeader(w, fmt.Sprintf("Set %d", set), st)
		for cond := range items.LapRankCount {
			p := t.At(items.Index(mode, set, cond))
			var name string
			if mode == items.GrandPrix {
				name = items.GrandprixCondition(cond).String()
			} else {
				name = items.MatchRaceCondition(cond).String()
			}
			printRecord(w, name, p, st)
		}
		fmt.Fprintln(w)
	}
}

func printHeader(w io.Writer, label string, st styles) {
	var sb strings.Builder
	sb.WriteString(st.header.Width(labelWidth).Render(label))
	for _, h := range kindHeaders {
		sb.WriteString(st.header.Render(h))
	}
	sb.WriteString(st.header.Render("Light"))
	sb.WriteString(st.header.Render("Display"))
	fmt.Fprintln(w, sb.String())
}

// printRecord prints the weights of p on a single line, after label.
func printRecord(w io.Writer, label string, p *items.Probability, st styles) {
	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Width(labelWidth).Render(label))
	mode := p.Displayed()
	for _, k := range items.Kinds {
		v := strconv.Itoa(p.Weight(k))
		switch {
		case mode.Hides(k):
			sb.WriteString(st.hidden.Render(v))
		case p.Weight(k) == 0:
			sb.WriteString(st.zero.Render(v))
		default:
			sb.WriteString(st.cell.Render(v))
		}
	}

	light := strconv.Itoa(p.Lightning())
	if mode.HidesLightning() {
		sb.WriteString(st.hidden.Render(light))
	} else {
		sb.WriteString(st.lightning.Render(light))
	}
	sb.WriteString(" " + mode.String())
	fmt.Fprintln(w, sb.String())
}
