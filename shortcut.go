package argbind

import (
	"strconv"
	"strings"
)

// assignShortcuts derives a short alias for every descriptor in the tree that has none. The
// candidate is the concatenated initials of the destination's underscore-separated segments
// (dry_run -> dr). A candidate identical to the destination itself (no underscores, single
// letter aside) is dropped rather than duplicated.
//
// Usage counts are tracked per candidate across the whole tree, seeded with every destination
// name; the Nth taker of a candidate (N >= 2) gets the numeral appended. Order is descriptor
// declaration order, so the assignment is deterministic and re-running it is a no-op: descriptors
// that already carry an alias are skipped.
func assignShortcuts(root *scope) {
	flat := root.flatten(nil)

	counts := make(map[string]int, len(flat))
	for _, a := range flat {
		counts[a.Dest]++
	}

	for _, a := range flat {
		if a.Positional || len(a.Aliases) > 0 {
			continue
		}
		cand := initials(a.Dest)
		if cand == a.Dest {
			continue
		}
		counts[cand]++
		if n := counts[cand]; n > 1 {
			cand += strconv.Itoa(n)
		}
		a.Aliases = append(a.Aliases, cand)
	}
}

func initials(dest string) string {
	var b strings.Builder
	for _, segment := range strings.Split(dest, "_") {
		if segment == "" {
			continue
		}
		b.WriteByte(segment[0])
	}
	return b.String()
}
