// Package prof accumulates wall-clock time per named stage.
package prof

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// Entry aggregates every Track call made with one label.
type Entry struct {
	Label string
	Count int
	Total time.Duration
}

// Mean is the average duration of the stage.
func (e Entry) Mean() time.Duration {
	if e.Count == 0 {
		return 0
	}
	return e.Total / time.Duration(e.Count)
}

var (
	mu     sync.Mutex
	stages = map[string]*Entry{}
)

// Track adds the time elapsed since start to the named stage. Use as
// defer prof.Track(time.Now(), "stage").
func Track(start time.Time, name string) {
	elapsed := time.Since(start)
	mu.Lock()
	e, ok := stages[name]
	if !ok {
		e = &Entry{Label: name}
		stages[name] = e
	}
	e.Count++
	e.Total += elapsed
	mu.Unlock()
}

// SnapshotAndReset returns the stages sorted by label and clears them.
func SnapshotAndReset() []Entry {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Entry, 0, len(stages))
	for _, e := range stages {
		out = append(out, *e)
	}
	stages = map[string]*Entry{}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// Fprint writes one line per stage.
func Fprint(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%-32s n=%-6d total=%-12v mean=%v\n", e.Label, e.Count, e.Total, e.Mean()); err != nil {
			return err
		}
	}
	return nil
}
