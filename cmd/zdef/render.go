package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/wippyai/zdef/errors"
	"github.com/wippyai/zdef/layout"
	"github.com/wippyai/zdef/types"
	"github.com/wippyai/zdef/witgen"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD866"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// renderer formats descriptors as text, styled only for terminals.
type renderer struct {
	calc   *layout.Calculator
	styled bool
	wit    bool
}

func newRenderer(pointerSize uint32, styled, wit bool) *renderer {
	return &renderer{calc: layout.NewCalculator(pointerSize), styled: styled, wit: wit}
}

func (r *renderer) style(s lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}
	return s.Render(text)
}

func (r *renderer) descriptor(d *types.Descriptor) string {
	var b strings.Builder

	switch {
	case d.IsStruct():
		fmt.Fprintf(&b, "%s %s  size %s, align %d\n",
			r.style(titleStyle, "struct"), r.style(nameStyle, d.Name),
			humanize.IBytes(uint64(d.ABI.Size)), d.ABI.Align)
		r.fieldTable(&b, d)
	case d.IsFunction():
		fmt.Fprintf(&b, "%s %s  id %d\n", r.style(titleStyle, "fn"), r.style(nameStyle, d.Name), d.ID)
		fmt.Fprintf(&b, "  abi   %s\n", r.style(typeStyle, d.ABI.String()))
		fmt.Fprintf(&b, "  host  %s\n", d.Host)
	default:
		info := r.calc.Calculate(d.ABI)
		fmt.Fprintf(&b, "%s %s\n", r.style(titleStyle, "type"), r.style(nameStyle, d.Name))
		fmt.Fprintf(&b, "  abi   %s  (%s, align %d)\n", r.style(typeStyle, d.ABI.String()), humanize.IBytes(uint64(info.Size)), info.Align)
		fmt.Fprintf(&b, "  host  %s\n", d.Host)
	}

	if r.wit {
		b.WriteString(r.witLine(d))
	}
	return b.String()
}

func (r *renderer) fieldTable(b *strings.Builder, d *types.Descriptor) {
	rows := [][]string{{"offset", "size", "field", "abi", "host"}}
	for i, f := range d.ABI.Fields {
		info := r.calc.Calculate(f.Shape)
		rows = append(rows, []string{
			fmt.Sprint(f.Offset),
			fmt.Sprint(info.Size),
			f.Name,
			f.Shape.String(),
			d.Host.Fields[i].Type.String(),
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}
	for n, row := range rows {
		b.WriteString("  ")
		for i, cell := range row {
			pad := strings.Repeat(" ", widths[i]-len(cell))
			switch {
			case n == 0:
				cell = r.style(helpStyle, cell)
			case i == 3:
				cell = r.style(typeStyle, cell)
			}
			b.WriteString(cell)
			if i < len(row)-1 {
				b.WriteString(pad + "  ")
			}
		}
		b.WriteByte('\n')
	}
}

func (r *renderer) witLine(d *types.Descriptor) string {
	switch {
	case d.IsFunction():
		f, err := witgen.Function(d)
		if err != nil {
			return "  wit   " + r.style(errorStyle, err.Error()) + "\n"
		}
		return "  wit   " + f.String() + "\n"
	case d.IsStruct():
		td, err := witgen.Record(d)
		if err != nil {
			return "  wit   " + r.style(errorStyle, err.Error()) + "\n"
		}
		anon := *td
		anon.Name = nil
		return "  wit   " + *td.Name + " = " + witgen.TypeName(&anon) + "\n"
	}
	t, err := witgen.Type(d.ABI)
	if err != nil {
		return "  wit   " + r.style(errorStyle, err.Error()) + "\n"
	}
	return "  wit   " + witgen.TypeName(t) + "\n"
}

func (r *renderer) diagnostics(diags []*errors.Error) string {
	var b strings.Builder
	for _, d := range diags {
		s := warnStyle
		if d.Kind == errors.KindSyntax {
			s = errorStyle
		}
		b.WriteString(r.style(s, d.Error()))
		b.WriteByte('\n')
	}
	return b.String()
}
