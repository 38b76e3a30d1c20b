package measureutil

import (
	"fmt"
	"io"
	"sort"

	"falcon-signature/measure"
)

// SnapshotAndReset returns the current counter values and clears them.
func SnapshotAndReset() map[string]float64 {
	snap := measure.Snapshot()
	measure.Reset()
	return snap
}

// Fprint writes a snapshot as sorted "name value" lines.
func Fprint(w io.Writer, snap map[string]float64) error {
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%-60s %g\n", k, snap[k]); err != nil {
			return err
		}
	}
	return nil
}
