package cmd

import (
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/dshills/findex/pkg/types"
)

// printer writes command output, colored only on a terminal
type printer struct {
	w     io.Writer
	size  *color.Color
	dir   *color.Color
	file  *color.Color
	name  *color.Color
	score *color.Color
	label *color.Color
}

// newPrinter creates a printer for w. Color is used only when w is a TTY
// and noColor is false.
func newPrinter(w io.Writer, noColor bool) *printer {
	p := &printer{
		w:     w,
		size:  color.New(color.FgGreen),
		dir:   color.New(color.FgBlue),
		file:  color.New(color.FgYellow),
		name:  color.New(color.FgCyan, color.Bold),
		score: color.New(color.FgMagenta),
		label: color.New(color.Bold),
	}

	enabled := !noColor && isTerminal(w)
	for _, c := range []*color.Color{p.size, p.dir, p.file, p.name, p.score, p.label} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// isTerminal reports whether w is a terminal file
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// entryLine prints "<size>\t<path>" with the size right-aligned
func (p *printer) entryLine(e types.Entry) {
	pathColor := p.file
	if e.IsDir {
		pathColor = p.dir
	}
	_, _ = p.size.Fprintf(p.w, "%9s", humanize.Bytes(e.SizeBytes))
	_, _ = io.WriteString(p.w, "\t")
	_, _ = pathColor.Fprintln(p.w, e.Path)
}

// matchLine prints "<name>: <path> (<size>)"
func (p *printer) matchLine(e types.Entry) {
	_, _ = p.name.Fprint(p.w, e.Name)
	_, _ = io.WriteString(p.w, ": ")
	pathColor := p.file
	if e.IsDir {
		pathColor = p.dir
	}
	_, _ = pathColor.Fprint(p.w, e.Path)
	_, _ = io.WriteString(p.w, " (")
	_, _ = p.size.Fprint(p.w, humanize.Bytes(e.SizeBytes))
	_, _ = io.WriteString(p.w, ")\n")
}

// rankedLine prints "<id>: <name> <path> <similarity>"
func (p *printer) rankedLine(r types.RankedResult) {
	_, _ = p.label.Fprintf(p.w, "%d:", r.ID)
	_, _ = io.WriteString(p.w, " ")
	_, _ = p.name.Fprint(p.w, r.Name)
	_, _ = io.WriteString(p.w, " ")
	_, _ = p.file.Fprint(p.w, r.Path)
	_, _ = io.WriteString(p.w, " ")
	_, _ = p.score.Fprintf(p.w, "%.6f", r.Similarity)
	_, _ = io.WriteString(p.w, "\n")
}

// field prints an aligned "label value" status line
func (p *printer) field(label, value string) {
	_, _ = p.label.Fprintf(p.w, "%-16s", label+":")
	_, _ = io.WriteString(p.w, value+"\n")
}
