package diff

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/oneconcern/bommon/pkg/tree"
)

// Report is the outcome of a comparison
type Report struct {
	First  tree.Key
	Second tree.Key

	CrossProject bool
	IncludeFiles bool

	// widths of the first two columns of the text report
	FirstWidth  int
	SecondWidth int

	// Results sorted by pair key
	Results []Result

	table Table
}

// Table of the pairs compared
func (r *Report) Table() Table {
	return r.table
}

// Differences counts the pairs that are not identical
func (r *Report) Differences() int {
	count := 0
	for _, result := range r.Results {
		if result.Kind != Identical {
			count++
		}
	}
	return count
}

// RenderOption tunes the text report
type RenderOption func(*renderer)

// SortByLibtype groups the report by libtype
func SortByLibtype(enabled bool) RenderOption {
	return func(r *renderer) {
		r.sortByLibtype = enabled
	}
}

// Color paints differing, removed and added lines
func Color(enabled bool) RenderOption {
	return func(r *renderer) {
		r.color = enabled
	}
}

type renderer struct {
	w             *bufio.Writer
	report        *Report
	sortByLibtype bool
	color         bool
	headerDone    bool
	paint         map[byte]*color.Color
}

func paints() map[byte]*color.Color {
	m := map[byte]*color.Color{
		'!': color.New(color.FgYellow),
		'-': color.New(color.FgRed),
		'+': color.New(color.FgGreen),
	}
	for _, c := range m {
		c.EnableColor()
	}
	return m
}

// Write renders the text report: a header, then one line per pair that is not identical,
// followed by the differences between files when they are compared.
func (r *Report) Write(w io.Writer, opts ...RenderOption) error {
	rd := &renderer{w: bufio.NewWriter(w), report: r}
	for _, apply := range opts {
		apply(rd)
	}
	if rd.color {
		rd.paint = paints()
	}

	if rd.sortByLibtype {
		for _, libtype := range r.table.Libtypes() {
			for _, result := range r.Results {
				if result.Pair.Libtype == libtype {
					rd.result(result)
				}
			}
		}
	} else {
		for _, result := range r.Results {
			rd.result(result)
		}
	}

	if r.IncludeFiles {
		rd.plain("To see the differences between files, run the following command:")
		rd.plain("  > bommon file diff file#ver1 file#ver2")
		rd.plain("For example:")
		rd.plain("  > bommon file diff i10/ar_lib/rtl/dev/rtl/top.v#4 i10/ar_lib/rtl/dev/rtl/top.v#5")
	}
	return rd.w.Flush()
}

func (rd *renderer) plain(line string) {
	_, _ = rd.w.WriteString(line + "\n")
}

func (rd *renderer) line(prefix byte, format string, args ...interface{}) {
	line := string(prefix) + " " + fmt.Sprintf(format, args...)
	if rd.color {
		line = rd.paint[prefix].Sprint(line)
	}
	rd.plain(line)
}

func (rd *renderer) header() {
	if rd.headerDone {
		return
	}
	rd.headerDone = true
	r := rd.report
	w1, w2 := r.FirstWidth, r.SecondWidth

	pv := r.First.Project + "/" + r.First.Variant
	if r.First.Project != r.Second.Project || r.First.Variant != r.Second.Variant {
		pv += "--" + r.Second.Project + "/" + r.Second.Variant
	}
	rd.plain(fmt.Sprintf("# %-*s %-*s %s", w1, "Project/IP", w2, "BOM 1", "BOM 2"))
	rd.plain(fmt.Sprintf("# %-*s %-*s %s", w1, pv, w2, r.First.Config, r.Second.Config))
	rd.plain(fmt.Sprintf("# %-*s %-*s %s", w1, "Project/IP/Deliverable", w2, "Lib/Rel/BOM", "Lib/Rel/BOM"))
}

func lrc(k *tree.Key) string {
	return k.Library + "/" + k.Release + "/" + k.Config
}

func (rd *renderer) result(result Result) {
	rd.header()
	r := rd.report
	w1, w2 := r.FirstWidth, r.SecondWidth
	pair := result.Pair
	pvl := pair.Project + "/" + pair.Variant + "/" + pair.Libtype

	switch result.Kind {
	case Differing:
		if pair.CrossProject {
			pvl = pair.Key
		}
		rd.line('!', "%-*s %-*s %s", w1, pvl, w2, lrc(pair.First), lrc(pair.Second))
	case FirstOnly:
		rd.line('-', "%-*s %-*s", w1, pvl, w2, lrc(pair.First))
	case SecondOnly:
		rd.line('+', "%-*s %-*s %s", w1, pvl, w2, "", lrc(pair.Second))
	default:
		return
	}

	for _, f := range result.Files {
		switch f.Kind {
		case Differing:
			rd.line('!', "%s", f.Name)
			rd.line('!', "%-*s %-*s %s", w1, "Library", w2, f.First.Library, f.Second.Library)
			rd.line('!', "%-*s %-*s %s", w1, "Version", w2, strconv.Itoa(f.First.Version), strconv.Itoa(f.Second.Version))
		case FirstOnly:
			rd.line('-', "%s", f.Name)
			rd.line('-', "%-*s %-*s", w1, "Library", w2, f.First.Library)
			rd.line('-', "%-*s %-*s", w1, "Version", w2, strconv.Itoa(f.First.Version))
		case SecondOnly:
			rd.line('+', "%s", f.Name)
			rd.line('+', "%-*s %-*s %s", w1, "Library", w2, "", f.Second.Library)
			rd.line('+', "%-*s %-*s %s", w1, "Version", w2, "", strconv.Itoa(f.Second.Version))
		}
	}
}
