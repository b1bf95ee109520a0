package chord

import (
	"github.com/jsphweid/chordex/model"
	"golang.org/x/exp/slices"
)

type Catalog []model.ChordShape

// intervals are offsets from the root, ninths and elevenths folded into the
// octave
var catalog = Catalog{
	{Name: "Major", Notation: "maj", Intervals: []int{0, 4, 7}},
	{Name: "Minor", Notation: "m", Intervals: []int{0, 3, 7}},
	{Name: "5th", Notation: "5", Intervals: []int{0, 7}},
	{Name: "Suspended 2nd", Notation: "sus2", Intervals: []int{0, 2, 7}},
	{Name: "Suspended 4th", Notation: "sus4", Intervals: []int{0, 5, 7}},
	{Name: "7th", Notation: "7", Intervals: []int{0, 4, 7, 10}},
	{Name: "Major 7th", Notation: "maj7", Intervals: []int{0, 4, 7, 11}},
	{Name: "Minor 7th", Notation: "m7", Intervals: []int{0, 3, 7, 10}},
	{Name: "7th Flat 5", Notation: "7b5", Intervals: []int{0, 4, 6, 10}},
	{Name: "7th Sharp 5", Notation: "7#5", Intervals: []int{0, 4, 8, 10}},
	{Name: "Minor 7th Flat 5th", Notation: "m7b5", Intervals: []int{0, 3, 6, 10}},
	{Name: "Minor Major 7th", Notation: "mMaj7", Intervals: []int{0, 3, 7, 11}},
	{Name: "7th Suspended 4th", Notation: "7sus4", Intervals: []int{0, 5, 7, 10}},
	{Name: "6th", Notation: "6", Intervals: []int{0, 4, 7, 9}},
	{Name: "Minor 6th", Notation: "m6", Intervals: []int{0, 3, 7, 9}},
	{Name: "6th Add 9", Notation: "6add9", Intervals: []int{0, 2, 4, 7, 9}},
	{Name: "9th", Notation: "9", Intervals: []int{0, 2, 4, 7, 10}},
	{Name: "Major 9th", Notation: "maj9", Intervals: []int{0, 2, 4, 7, 11}},
	{Name: "Minor 9th", Notation: "m9", Intervals: []int{0, 2, 3, 7, 10}},
	{Name: "Minor Major 9th", Notation: "mMaj9", Intervals: []int{0, 2, 3, 7, 11}},
	{Name: "11th", Notation: "11", Intervals: []int{0, 2, 4, 5, 7, 10}},
	{Name: "Major 11th", Notation: "maj11", Intervals: []int{0, 2, 4, 5, 7, 11}},
	{Name: "Minor 11th", Notation: "m11", Intervals: []int{0, 2, 3, 5, 7, 10}},
	{Name: "Diminished", Notation: "dim", Intervals: []int{0, 3, 6}},
	{Name: "Diminished 7th", Notation: "dim7", Intervals: []int{0, 3, 6, 9}},
	{Name: "Diminished Major 7th", Notation: "dimMaj7", Intervals: []int{0, 3, 6, 11}},
	{Name: "Augmented", Notation: "aug", Intervals: []int{0, 4, 8}},
	{Name: "Augmented Major 7th", Notation: "augMaj7", Intervals: []int{0, 4, 8, 11}},
}

// DefaultCatalog returns a copy of the built in chord table.
func DefaultCatalog() Catalog {
	return catalog.Clone()
}

func (c Catalog) Clone() Catalog {
	res := make(Catalog, len(c))
	for i, shape := range c {
		shape.Intervals = slices.Clone(shape.Intervals)
		res[i] = shape
	}
	return res
}
