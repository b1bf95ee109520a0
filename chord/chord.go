package chord

import (
	"fmt"
	"strings"

	"github.com/jsphweid/chordex/model"
	"golang.org/x/exp/slices"
)

// Analyzer names the chords formed by a set of held pitches. It holds no
// mutable state so one value can be shared between goroutines.
type Analyzer struct {
	catalog Catalog
}

var defaultAnalyzer = NewAnalyzer(catalog)

func NewAnalyzer(c Catalog) *Analyzer {
	return &Analyzer{catalog: c.Clone()}
}

func (a *Analyzer) Catalog() Catalog {
	return a.catalog.Clone()
}

// Analyze runs the default analyzer.
func Analyze(pitches []model.Pitch) []model.ChordMatch {
	return defaultAnalyzer.Analyze(pitches)
}

// Analyze returns every catalog shape the pitches form, in catalog order. A
// shape matches when some inversion of it has exactly the pitch classes of the
// input measured from the lowest pitch. Fewer than two pitches never match.
func (a *Analyzer) Analyze(pitches []model.Pitch) []model.ChordMatch {
	res := make([]model.ChordMatch, 0)
	if len(pitches) < 2 {
		return res
	}

	sorted := slices.Clone(pitches)
	slices.Sort(sorted)
	bass := sorted[0]
	normalized := normalize(sorted)

	for _, shape := range a.catalog {
		inversion, ok := matchShape(shape.Intervals, normalized)
		if !ok {
			continue
		}

		// n notes of the shape, k of them moved above the root: the root is
		// the (n-k)th lowest pitch
		root := NoteName(bass)
		if inversion > 0 {
			root = NoteName(sorted[len(shape.Intervals)-inversion])
		}
		res = append(res, model.ChordMatch{
			Shape:     shape.Name,
			Notation:  shape.Notation,
			Chord:     root + shape.Notation,
			Root:      root,
			Bass:      NoteName(bass),
			Inversion: inversion,
		})
	}
	return res
}

// normalize collapses sorted pitches to the distinct pitch classes above the
// first one, ascending.
func normalize(sorted []model.Pitch) []int {
	seen := make(map[int]bool)
	var res []int
	for _, p := range sorted {
		interval := mod12(p - sorted[0])
		if !seen[interval] {
			seen[interval] = true
			res = append(res, interval)
		}
	}
	slices.Sort(res)
	return res
}

func matchShape(intervals []int, normalized []int) (int, bool) {
	if len(intervals) != len(normalized) {
		return 0, false
	}

	rotated := slices.Clone(intervals)
	slices.Sort(rotated)
	for inversion := 0; inversion < len(rotated); inversion++ {
		if sameIntervals(rotated, normalized) {
			return inversion, true
		}
		rotated = invert(rotated)
	}
	return 0, false
}

// invert moves the lowest note up an octave and re-zeroes on the new lowest.
func invert(intervals []int) []int {
	res := make([]int, 0, len(intervals))
	res = append(res, intervals[1:]...)
	res = append(res, intervals[0]+12)
	base := res[0]
	for i := range res {
		res[i] = mod12(res[i] - base)
	}
	return res
}

func sameIntervals(a, b []int) bool {
	a = slices.Clone(a)
	slices.Sort(a)
	return slices.Equal(a, b)
}

func mod12(x int) int {
	return ((x % 12) + 12) % 12
}

// Describe renders a match for display, e.g. "Cmaj" or "Emaj7 (2nd inversion)".
func Describe(m model.ChordMatch) string {
	if m.Inversion == 0 {
		return m.Chord
	}
	return fmt.Sprintf("%s (%s inversion)", m.Chord, ordinal(m.Inversion))
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 10 {
	case 1:
		suffix = "st"
	case 2:
		suffix = "nd"
	case 3:
		suffix = "rd"
	}
	if n%100 >= 11 && n%100 <= 13 {
		suffix = "th"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// CreateChordKey returns a stable key for a set of notes, e.g. "60-64-67". The
// input is left untouched.
func CreateChordKey(notes []model.Pitch) string {
	sorted := slices.Clone(notes)
	slices.Sort(sorted)
	parts := make([]string, len(sorted))
	for i, note := range sorted {
		parts[i] = fmt.Sprint(note)
	}
	return strings.Join(parts, "-")
}
