package diff

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/oneconcern/bommon/pkg/tree"
)

// WriteDump writes the libraries and releases of a decomposition, one location line followed by
// an indented line per library or release:
//
//	p/v/rtl
//	    library=dev release=REL1 config=REL1
//
// Entries come by composite configuration, then by full name. With sortByLibtype, they are grouped
// by libtype instead, then by variant, and only the first entry of each location is kept.
func WriteDump(w io.Writer, d Decomposition, sortByLibtype bool) error {
	bw := bufio.NewWriter(w)
	entry := func(s tree.Key) {
		_, _ = fmt.Fprintf(bw, "    library=%s release=%s config=%s\n", s.Library, s.Release, s.Config)
	}

	if sortByLibtype {
		simples := d.Simples()
		sort.SliceStable(simples, func(i, j int) bool {
			if simples[i].Libtype != simples[j].Libtype {
				return simples[i].Libtype < simples[j].Libtype
			}
			return simples[i].Variant < simples[j].Variant
		})
		seen := make(map[string]struct{}, len(simples))
		for _, s := range simples {
			pvl := s.Location().String()
			if _, ok := seen[pvl]; ok {
				continue
			}
			seen[pvl] = struct{}{}
			_, _ = bw.WriteString(pvl + "\n")
			entry(s)
		}
		return bw.Flush()
	}

	prev := ""
	for _, composite := range d.Composites() {
		simples := append([]tree.Key(nil), d[composite]...)
		tree.SortKeys(simples)
		for _, s := range simples {
			if pvl := s.Location().String(); pvl != prev {
				_, _ = bw.WriteString(pvl + "\n")
				prev = pvl
			}
			entry(s)
		}
	}
	return bw.Flush()
}
